package rest

import (
	"bytes"
	"encoding/json"
	"net/http"

	"bitbucket.org/kleinnic74/geodist/logging"
	"go.uber.org/zap"
)

type Responder interface {
	WithJSON(http.ResponseWriter, int, interface{})
	WithDetail(http.ResponseWriter, int, interface{})
}

type encoderFunc func(*json.Encoder) *json.Encoder

type responder struct {
	r              *http.Request
	encoderOptions encoderFunc
}

var (
	pretty  encoderFunc
	compact encoderFunc
)

func init() {
	pretty = func(encoder *json.Encoder) *json.Encoder {
		encoder.SetIndent("", "  ")
		return encoder
	}
	compact = func(e *json.Encoder) *json.Encoder { return e }
}

func Respond(r *http.Request) Responder {
	if r.URL.Query().Get("pretty") == "true" {
		return responder{r: r, encoderOptions: pretty}
	}
	return responder{r: r, encoderOptions: compact}
}

// WithDetail writes the error body used by every failing endpoint.
func (r responder) WithDetail(w http.ResponseWriter, status int, detail interface{}) {
	r.WithJSON(w, status, detailPayload{Detail: detail})
}

func (r responder) WithJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := r.encoderOptions(json.NewEncoder(&buf)).Encode(payload); err != nil {
		logging.From(r.r.Context()).Error("Failed to encode response",
			zap.String("method", r.r.Method),
			zap.String("path", r.r.URL.Path),
			zap.Error(err))
		buf.Reset()
		r.encoderOptions(json.NewEncoder(&buf)).Encode(detailPayload{Detail: "Internal Server Error"})
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

type detailPayload struct {
	Detail interface{} `json:"detail"`
}

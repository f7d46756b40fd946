package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const maxBodySize = 1 << 20

// fieldError is one entry of a 422 response, loc is the path to the
// offending value starting with "body" or "query".
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type validationError []fieldError

func (v validationError) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(e.Loc, "."), e.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func missing(loc ...string) fieldError {
	return fieldError{Loc: loc, Msg: "field required", Type: "value_error.missing"}
}

func notAnObject(loc ...string) fieldError {
	return fieldError{Loc: loc, Msg: "value is not a valid dict", Type: "type_error.dict"}
}

func notAFloat(loc ...string) fieldError {
	return fieldError{Loc: loc, Msg: "value is not a valid float", Type: "type_error.float"}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeObject reads a JSON object into its raw members.
func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if isNull(raw) {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func decodeFloat(obj map[string]json.RawMessage, name string, loc ...string) (float64, *fieldError) {
	fieldLoc := append(append([]string{}, loc...), name)
	raw, ok := obj[name]
	if !ok {
		e := missing(fieldLoc...)
		return 0, &e
	}
	f, ok := parseFloat(raw)
	if !ok {
		e := notAFloat(fieldLoc...)
		return 0, &e
	}
	return f, nil
}

// parseFloat accepts JSON numbers and strings holding a finite number.
func parseFloat(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// decodeJSONBody expects body to be limited with http.MaxBytesReader.
func decodeJSONBody(body io.Reader) (map[string]json.RawMessage, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, validationError{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "value_error.jsondecode"}}
	}
	obj, ok := decodeObject(data)
	if !ok {
		return nil, validationError{notAnObject("body")}
	}
	return obj, nil
}

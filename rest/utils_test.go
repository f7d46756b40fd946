package rest

import (
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponder(t *testing.T) {
	data := []struct {
		URL  string
		JSON string
	}{
		{"http://host/path?pretty=false", `{"id":"1234"}` + "\n"},
		{"http://host/path?pretty=true", `{
  "id": "1234"
}` + "\n"},
	}
	for _, d := range data {
		t.Run(d.URL, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, d.URL, nil)
			resp := httptest.NewRecorder()
			Respond(r).WithJSON(resp, http.StatusOK, struct {
				ID string `json:"id"`
			}{"1234"})
			body, err := io.ReadAll(resp.Result().Body)
			if err != nil {
				t.Fatalf("Failed to read response body: %s", err)
			}
			assert.Equal(t, d.JSON, string(body))
		})
	}
}

func TestResponderWithDetail(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://host/path", nil)
	resp := httptest.NewRecorder()
	Respond(r).WithDetail(resp, http.StatusNotFound, "City not found or API error")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"detail":"City not found or API error"}`, resp.Body.String())
}

func TestResponderRejectsUnencodablePayload(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://host/path", nil)
	resp := httptest.NewRecorder()
	Respond(r).WithJSON(resp, http.StatusOK, map[string]float64{"distance": math.NaN()})
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, resp.Body.String())
}

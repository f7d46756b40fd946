package rest

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"bitbucket.org/kleinnic74/geodist/domain/gps"
	"bitbucket.org/kleinnic74/geodist/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCoordinates(t *testing.T) {
	resolver := &stubResolver{places: map[string]gps.Coordinates{
		"Lima,Peru": gps.NewCoordinates(-12.0463731, -77.042754),
	}}
	router := newTestRouter(resolver)

	response := executeRequest(router, httptest.NewRequest(http.MethodGet, "/get_coordinates?city=Lima,Peru", nil))
	checkResponseCode(t, http.StatusOK, response)
	assert.Equal(t, "application/json", response.Header().Get("Content-Type"))

	var body map[string]float64
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
	assert.Len(t, body, 2)
	assert.InDelta(t, -12.0464, body["latitude"], 0.1)
	assert.InDelta(t, -77.0428, body["longitude"], 0.1)
	assert.Equal(t, []string{"Lima,Peru"}, resolver.calls)
}

func TestGetCoordinatesPassesNameUnchanged(t *testing.T) {
	resolver := &stubResolver{places: map[string]gps.Coordinates{
		"São Paulo, Brasil & co": gps.NewCoordinates(-23.55, -46.63),
	}}
	router := newTestRouter(resolver)

	response := executeRequest(router, httptest.NewRequest(http.MethodGet, "/get_coordinates?city=S%C3%A3o+Paulo%2C+Brasil+%26+co", nil))
	checkResponseCode(t, http.StatusOK, response)
	assert.Equal(t, []string{"São Paulo, Brasil & co"}, resolver.calls)
}

func TestGetCoordinatesNotFound(t *testing.T) {
	data := []struct {
		name     string
		resolver *stubResolver
	}{
		{"no match", &stubResolver{}},
		{"upstream status", &stubResolver{err: geocoding.NewLookupError("x", geocoding.ReasonStatus, errors.New("503"))}},
		{"unexpected error", &stubResolver{err: errors.New("boom")}},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			router := newTestRouter(d.resolver)
			response := executeRequest(router, httptest.NewRequest(http.MethodGet, "/get_coordinates?city=Atlantis", nil))
			checkResponseCode(t, http.StatusNotFound, response)
			assert.JSONEq(t, `{"detail":"City not found or API error"}`, response.Body.String())
		})
	}
}

func TestGetCoordinatesValidation(t *testing.T) {
	data := []struct {
		url      string
		expected string
	}{
		{"/get_coordinates", `{"detail":[{"loc":["query","city"],"msg":"field required","type":"value_error.missing"}]}`},
		{"/get_coordinates?town=Lima", `{"detail":[{"loc":["query","city"],"msg":"field required","type":"value_error.missing"}]}`},
	}
	for _, d := range data {
		t.Run(d.url, func(t *testing.T) {
			resolver := &stubResolver{}
			router := newTestRouter(resolver)
			response := executeRequest(router, httptest.NewRequest(http.MethodGet, d.url, nil))
			checkResponseCode(t, http.StatusUnprocessableEntity, response)
			assert.JSONEq(t, d.expected, response.Body.String())
			assert.Empty(t, resolver.calls, "resolver must not be called for invalid requests")
		})
	}
}

func TestGetCoordinatesPassesBlankNamesToResolver(t *testing.T) {
	for _, city := range []string{"", "   "} {
		resolver := &stubResolver{}
		router := newTestRouter(resolver)
		response := executeRequest(router, httptest.NewRequest(http.MethodGet, "/get_coordinates?city="+url.QueryEscape(city), nil))
		checkResponseCode(t, http.StatusNotFound, response)
		assert.JSONEq(t, `{"detail":"City not found or API error"}`, response.Body.String())
		assert.Equal(t, []string{city}, resolver.calls)
	}
}

func TestGetCoordinatesUsesLastCity(t *testing.T) {
	resolver := &stubResolver{places: map[string]gps.Coordinates{
		"Lima": gps.NewCoordinates(-12.0463731, -77.042754),
	}}
	router := newTestRouter(resolver)
	response := executeRequest(router, httptest.NewRequest(http.MethodGet, "/get_coordinates?city=Atlantis&city=Lima", nil))
	checkResponseCode(t, http.StatusOK, response)
	assert.Equal(t, []string{"Lima"}, resolver.calls)
}

func TestGetCoordinatesRejectsUnencodableCoordinates(t *testing.T) {
	resolver := &stubResolver{places: map[string]gps.Coordinates{
		"Nowhere": gps.NewCoordinates(math.NaN(), -77.04),
	}}
	response := executeRequest(newTestRouter(resolver), httptest.NewRequest(http.MethodGet, "/get_coordinates?city=Nowhere", nil))
	checkResponseCode(t, http.StatusInternalServerError, response)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, response.Body.String())
}

package rest

import (
	"net/http"

	"bitbucket.org/kleinnic74/geodist/geocoding"
	"bitbucket.org/kleinnic74/geodist/logging"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Message returned for any geocoding failure, the cause is only logged.
const cityNotFound = "City not found or API error"

type GeoHandler struct {
	resolver geocoding.Resolver
}

func NewGeoHandler(resolver geocoding.Resolver) *GeoHandler {
	return &GeoHandler{
		resolver: resolver,
	}
}

func (g *GeoHandler) InitRoutes(r *mux.Router) {
	r.HandleFunc("/get_coordinates", g.getCoordinates).Methods(http.MethodGet)
}

func (g *GeoHandler) getCoordinates(w http.ResponseWriter, r *http.Request) {
	values, ok := r.URL.Query()["city"]
	if !ok || len(values) == 0 {
		Respond(r).WithDetail(w, http.StatusUnprocessableEntity, validationError{missing("query", "city")})
		return
	}
	// repeated parameters: the last one wins
	city := values[len(values)-1]
	log, ctx := logging.FromWithNameAndFields(r.Context(), "geo", zap.String("city", city))
	coords, err := g.resolver.Geocode(ctx, city)
	if err != nil {
		log.Debug("Lookup failed", zap.String("reason", string(geocoding.ReasonOf(err))), zap.Error(err))
		Respond(r).WithDetail(w, http.StatusNotFound, cityNotFound)
		return
	}
	Respond(r).WithJSON(w, http.StatusOK, coords)
}

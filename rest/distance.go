package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"bitbucket.org/kleinnic74/geodist/domain/gps"
	"bitbucket.org/kleinnic74/geodist/logging"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type DistanceHandler struct{}

func NewDistanceHandler() *DistanceHandler {
	return &DistanceHandler{}
}

func (d *DistanceHandler) InitRoutes(r *mux.Router) {
	r.HandleFunc("/get_distance", d.getDistance).Methods(http.MethodPost)
}

type distanceRequest struct {
	Coords1 gps.Coordinates
	Coords2 gps.Coordinates
}

type distanceResponse struct {
	Distance float64 `json:"distance"`
}

func decodeCoordinates(body map[string]json.RawMessage, name string) (gps.Coordinates, validationError) {
	raw, ok := body[name]
	if !ok {
		return gps.Coordinates{}, validationError{missing("body", name)}
	}
	obj, ok := decodeObject(raw)
	if !ok {
		return gps.Coordinates{}, validationError{notAnObject("body", name)}
	}
	var errs validationError
	lat, err := decodeFloat(obj, "latitude", "body", name)
	if err != nil {
		errs = append(errs, *err)
	}
	lon, err := decodeFloat(obj, "longitude", "body", name)
	if err != nil {
		errs = append(errs, *err)
	}
	return gps.NewCoordinates(lat, lon), errs
}

func parseDistanceRequest(w http.ResponseWriter, r *http.Request) (distanceRequest, error) {
	defer r.Body.Close()
	body, err := decodeJSONBody(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return distanceRequest{}, err
	}
	var req distanceRequest
	var errs validationError
	var e validationError
	req.Coords1, e = decodeCoordinates(body, "coords1")
	errs = append(errs, e...)
	req.Coords2, e = decodeCoordinates(body, "coords2")
	errs = append(errs, e...)
	if len(errs) > 0 {
		return distanceRequest{}, errs
	}
	return req, nil
}

func (d *DistanceHandler) getDistance(w http.ResponseWriter, r *http.Request) {
	log, _ := logging.SubFrom(r.Context(), "distance")
	req, err := parseDistanceRequest(w, r)
	if err != nil {
		var invalid validationError
		if errors.As(err, &invalid) {
			log.Debug("Rejected distance request", zap.Error(err))
			Respond(r).WithDetail(w, http.StatusUnprocessableEntity, invalid)
			return
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Info("Rejected oversized distance request", zap.Int64("limit", tooLarge.Limit))
			Respond(r).WithDetail(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		log.Warn("Failed to read distance request", zap.Error(err))
		Respond(r).WithDetail(w, http.StatusBadRequest, "Could not read request body")
		return
	}
	km := req.Coords1.DistanceTo(req.Coords2)
	log.Debug("Computed distance",
		zap.Stringer("from", req.Coords1),
		zap.Stringer("to", req.Coords2),
		zap.Float64("km", km))
	Respond(r).WithJSON(w, http.StatusOK, distanceResponse{Distance: km})
}

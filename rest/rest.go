package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouteRegistrar is implemented by every handler group of the API.
type RouteRegistrar interface {
	InitRoutes(r *mux.Router)
}

// NewRouter returns a router answering unknown paths and methods with the
// same {"detail": ...} shape as the API handlers.
func NewRouter() *mux.Router {
	r := mux.NewRouter()
	// mux only runs middlewares on matched routes
	r.NotFoundHandler = instrument(http.HandlerFunc(notFound))
	r.MethodNotAllowedHandler = instrument(http.HandlerFunc(methodNotAllowed))
	r.Use(instrument)
	r.HandleFunc("/health", health).Methods(http.MethodGet)
	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	Respond(r).WithDetail(w, http.StatusNotFound, "Not Found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Respond(r).WithDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func health(w http.ResponseWriter, r *http.Request) {
	Respond(r).WithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

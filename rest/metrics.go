package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsHandler struct {
	handler http.Handler
}

func NewMetricsHandler(g prometheus.Gatherer) *MetricsHandler {
	return &MetricsHandler{
		handler: promhttp.HandlerFor(g, promhttp.HandlerOpts{}),
	}
}

func (m *MetricsHandler) InitRoutes(r *mux.Router) {
	r.Handle("/metrics", m.handler).Methods(http.MethodGet)
}

package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the API routes, the health check and the metrics endpoint.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) *mux.Router {
	router := mux.NewRouter()

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/categories", h.HandleCategories).Methods(http.MethodGet)
	v1.HandleFunc("/categories/{category}/nearest", h.HandleNearest).Methods(http.MethodGet)
	v1.HandleFunc("/refresh", h.HandleRefresh).Methods(http.MethodPost)

	router.HandleFunc("/healthz", h.HandleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return router
}

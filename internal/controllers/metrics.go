package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/helpify-project/roomscan/internal/router"
)

var _ router.Controller = (*MetricsController)(nil)

type MetricsController struct {
}

func (c *MetricsController) Register(router *mux.Router) {
	router.Handle("/metrics", promhttp.Handler()).
		Methods(http.MethodGet)
}

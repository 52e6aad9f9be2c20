// Package prometheus exposes the console registry for scraping.
package prometheus

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	registry *prometheus.Registry
	path     string
}

// New serves reg on path. Go runtime and process collectors are added to
// the registry.
func New(reg *prometheus.Registry, path string) *Handler {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if path == "" {
		path = "/metrics"
	}
	return &Handler{registry: reg, path: path}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET(h.path, h.Handler())
}

func (h *Handler) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
}

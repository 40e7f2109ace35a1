// Package httpapi assembles the gateway's HTTP surface. NewRouter is the
// single source of truth for routing, CORS, and rate limiting; both the
// standalone server and the on-demand function adapter serve it unchanged.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/yourorg/listing-gateway/internal/config"
	"github.com/yourorg/listing-gateway/internal/gateway"
	"github.com/yourorg/listing-gateway/internal/logger"
)

func NewRouter(cfg *config.Config, log zerolog.Logger) http.Handler {
	gw := gateway.New(cfg, log)

	r := chi.NewRouter()
	r.Use(logger.Middleware(log))
	r.Use(httprate.LimitByIP(100, 1*time.Minute)) // protect upstream quota
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(req *http.Request, origin string) bool {
			return cfg.OriginAllowed(origin)
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	RegisterProxy(r, ProxyDeps{Gateway: gw})
	RegisterHealth(r, HealthDeps{Config: cfg})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Non-preflight OPTIONS (no Access-Control-Request-Method header) skips
	// the cors handler; answer 200 with no body regardless of path.
	r.Options("/*", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

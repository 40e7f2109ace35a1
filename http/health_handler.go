package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/listing-gateway/internal/config"
)

type HealthDeps struct {
	Config *config.Config
}

func RegisterHealth(r chi.Router, d HealthDeps) {
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		services := map[string]string{}
		for _, p := range []string{config.ProviderSpark, config.ProviderIDX} {
			if d.Config.HasCredential(p) {
				services[p] = "configured"
			} else {
				services[p] = "not configured"
			}
		}
		render.JSON(w, req, map[string]any{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services":  services,
		})
	})

	// Informational only.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]any{
			"name":    "Real Estate 360 API Proxy",
			"version": "1.0.0",
			"endpoints": map[string]string{
				"spark":  "/api/spark/* - Spark API (Full MLS)",
				"idx":    "/api/idx/* - IDX Broker (Agent listings)",
				"health": "/health - Server health check",
			},
			"domains": d.Config.AllowedOrigins,
		})
	})
}

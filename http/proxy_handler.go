package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/listing-gateway/internal/gateway"
)

type ProxyDeps struct {
	Gateway *gateway.Gateway
}

// RegisterProxy mounts the provider forwarding routes. The wildcard segment
// is the upstream path; query params pass through untouched.
func RegisterProxy(r chi.Router, d ProxyDeps) {
	r.Get("/api/{provider}/*", func(w http.ResponseWriter, req *http.Request) {
		providerName := chi.URLParam(req, "provider")
		upstreamPath := chi.URLParam(req, "*")
		res := d.Gateway.Forward(req.Context(), providerName, upstreamPath, req.URL.Query())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(res.Status)
		_, _ = w.Write(res.Body)
	})
}

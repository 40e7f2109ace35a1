// Package handler adapts the gateway to on-demand function hosting. The
// router is identical to the one the standalone server runs; only the
// process lifecycle differs.
package handler

import (
	"net/http"
	"sync"

	httpapi "github.com/yourorg/listing-gateway/http"
	"github.com/yourorg/listing-gateway/internal/config"
	"github.com/yourorg/listing-gateway/internal/logger"
)

var (
	initOnce sync.Once
	router   http.Handler
)

// Handler is the function entry point. Instances are reused across
// invocations, so configuration and routing are resolved once.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(func() {
		cfg := config.Load()
		log := logger.New(cfg.Environment)
		cfg.LogMissing(log)
		router = httpapi.NewRouter(cfg, log)
	})
	router.ServeHTTP(w, r)
}

package main

import (
	"fmt"
	"net/http"

	httpapi "github.com/yourorg/listing-gateway/http"
	"github.com/yourorg/listing-gateway/internal/config"
	"github.com/yourorg/listing-gateway/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Environment)
	cfg.LogMissing(log)

	router := httpapi.NewRouter(cfg, log)

	log.Info().Int("port", cfg.Port).Str("env", cfg.Environment).Msg("listing gateway listening")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), router); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// Package config resolves process configuration once at startup. The
// resulting struct is passed explicitly to the gateway and client so tests
// can substitute fake credentials without touching the environment.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/yourorg/listing-gateway/internal/env"
)

// Provider route names.
const (
	ProviderSpark = "spark"
	ProviderIDX   = "idx"
)

var defaultOrigins = []string{
	"http://localhost:8080",
	"http://localhost:3000",
	"https://realestate36.realtor",
	"https://www.realestate36.realtor",
	"https://realestate360.realtor",
	"https://www.realestate360.realtor",
}

type Config struct {
	SparkAPIKey    string
	IDXAPIKey      string
	Port           int
	AllowedOrigins []string
	Environment    string // "development" permits any origin
}

// Load reads a .env file when present, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		SparkAPIKey: env.Get("SPARK_API_KEY", ""),
		IDXAPIKey:   env.Get("IDX_API_KEY", ""),
		Port:        env.GetInt("PORT", 3001),
		Environment: env.Get("APP_ENV", "development"),
	}
	if raw := env.Get("ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	} else {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, defaultOrigins...)
	}
	return cfg
}

// HasCredential reports whether the named provider is usable. A provider is
// usable iff its key is non-empty; key validity is only discovered by a
// failed upstream call.
func (c *Config) HasCredential(provider string) bool {
	switch provider {
	case ProviderSpark:
		return c.SparkAPIKey != ""
	case ProviderIDX:
		return c.IDXAPIKey != ""
	}
	return false
}

// OriginAllowed implements the CORS policy: listed origins always pass, and
// development mode passes everything.
func (c *Config) OriginAllowed(origin string) bool {
	if c.Environment == "development" {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if o == origin {
			return true
		}
	}
	return false
}

// LogMissing warns about providers that will be disabled for lack of a key.
// Non-fatal: the system continues without them.
func (c *Config) LogMissing(log zerolog.Logger) {
	for _, p := range []string{ProviderSpark, ProviderIDX} {
		if !c.HasCredential(p) {
			log.Warn().Str("provider", p).Msg("api key not configured, provider disabled")
		}
	}
}

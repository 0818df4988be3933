package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	httphandlers "walletadmin/internal/interfaces/http"
	"walletadmin/internal/shared/config"
	"walletadmin/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(log))
	if cfg.Telemetry.Enabled {
		r.Use(middleware.Telemetry(cfg.Telemetry.ServiceName))
		r.Use(middleware.Tracing)
	}
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", httphandlers.HandleHealth)
	httphandlers.NewAdminHandler(deps.Overview, deps.Transitions).Mount(r)

	if cfg.TLS.Enabled {
		log.Info().Msg("TLS security middleware enabled (HSTS)")
		return middleware.HSTS(r)
	}
	return r
}

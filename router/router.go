// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/quickly-spin/cliparse"
	"github.com/danielhkuo/quickly-spin/handlers"
	"github.com/danielhkuo/quickly-spin/middleware"
	"github.com/danielhkuo/quickly-spin/roster"
	"github.com/danielhkuo/quickly-spin/store"
)

// NewRouter wires every route over db. A nil clock means the real clock.
func NewRouter(db *sql.DB, cfg cliparse.Config, clock clockwork.Clock) http.Handler {
	mux := http.NewServeMux()

	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	// Initialize handlers
	svc := roster.NewService(store.New(db, clock))
	participantHandler := handlers.NewParticipantHandler(svc)
	configHandler := handlers.NewConfigHandler(svc)
	spinHandler := handlers.NewSpinHandler(svc, cfg, clock)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Roster and scores
	mux.HandleFunc("GET /participants", middleware.WithLogging(participantHandler.List))
	mux.HandleFunc("POST /participants", middleware.WithLogging(participantHandler.Create))
	mux.HandleFunc("DELETE /participants/{id}", middleware.WithLogging(participantHandler.Delete))
	mux.HandleFunc("PUT /participants/{id}/score", middleware.WithLogging(participantHandler.AdjustScore))
	mux.HandleFunc("PUT /participants/clear-points", middleware.WithLogging(participantHandler.ClearPoints))

	// Feature flags
	mux.HandleFunc("GET /config", middleware.WithLogging(configHandler.Get))

	// Wheel
	mux.HandleFunc("POST /spin", middleware.WithLogging(spinHandler.Spin))
	mux.HandleFunc("GET /ws/spin", middleware.WithLogging(spinHandler.Stream))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-spin API v1"))
	})

	return middleware.CORS(cfg.AllowedOrigins)(mux)
}

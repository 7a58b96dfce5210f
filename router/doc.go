// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Spin API.

# Route Registration

NewRouter creates the full handler, wrapped in CORS:

	handler := router.NewRouter(db, cfg, clockwork.NewRealClock())

# Endpoints

Health:

	GET /health

Participants:

	GET    /participants              - Ordered roster
	POST   /participants              - Add participant
	DELETE /participants/{id}         - Remove participant
	PUT    /participants/{id}/score   - Increase or decrease by one
	PUT    /participants/clear-points - Reset every score to zero

Config:

	GET /config - Feature flags (show_up_down)

Wheel:

	POST /spin    - Spin once and return the settled result
	GET  /ws/spin - Websocket spin session

# Handler Initialization

The router builds one store and roster service and shares them:

	svc := roster.NewService(store.New(db, clock))
	participantHandler := handlers.NewParticipantHandler(svc)
	configHandler := handlers.NewConfigHandler(svc)
	spinHandler := handlers.NewSpinHandler(svc, cfg, clock)

The clock drives store timestamps and spin animation; tests pass a fake.
*/
package router

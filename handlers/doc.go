// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP and websocket handlers for the Quickly Spin API.

# Handler Types

Each handler is a struct over the roster service:

  - ParticipantHandler: roster CRUD, score adjustment, clearing points
  - ConfigHandler: the show_up_down feature flag
  - SpinHandler: server-side spins over HTTP and websocket spin sessions

	svc := roster.NewService(store.New(db, clock))
	participantHandler := handlers.NewParticipantHandler(svc)
	spinHandler := handlers.NewSpinHandler(svc, cfg, clock)

# Participants

	GET    /participants                → List (score desc, then name)
	POST   /participants                → Create {"name": "..."}
	DELETE /participants/{id}           → Delete
	PUT    /participants/{id}/score     → AdjustScore {"direction": "increase"|"decrease"}
	PUT    /participants/clear-points   → ClearPoints

Names are trimmed and must be unique (case-sensitive). Scores never drop
below zero. ClearPoints on an empty roster answers 404 as an advisory.

# Spinning

POST /spin runs one spin on a controller bound to the request and responds
once it settles:

	{"spin_id": "...", "rotation": 1215, "winner_index": 1,
	 "winner": {...}, "awarded": true, "participants": [...], "scoreboard": [...]}

participants is the layout the spin resolved against, so
participants[winner_index] is the winner; scoreboard is re-read after the
award and may be ordered differently.

GET /ws/spin upgrades to a websocket session. The server sends the roster,
then for every {"type": "spin"} from the client sends that spin's layout,
streams frame messages, one result message and a fresh roster:

	{"type": "roster", "spin_id": "...", "participants": [...]}
	{"type": "frame", "spin_id": "...", "rotation": 412.7, "progress": 0.31}
	{"type": "result", "spin_id": "...", "winner_index": 1, "awarded": true, ...}
	{"type": "roster", "participants": [...]}

Problems arrive as {"type": "error", "message": "..."}. Closing the socket,
or shutting the server down, cancels a spin in flight and no point is
awarded.

# Error Handling

Errors return JSON with error and message fields:

	{"error": "Conflict", "message": "participant already exists"}

Status codes:
  - 400: invalid JSON, blank name, unknown direction
  - 404: participant not found
  - 409: duplicate name, empty roster, wheel already spinning
  - 500: anything else (logged, message is opaque)
*/
package handlers

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, message, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateParticipantRequest: name
  - AdjustScoreRequest: direction ("increase" or "decrease")
  - ClientMessage: websocket command from a wheel client ("spin")

# Response Types

Types for JSON responses:

  - MessageResponse: message
  - ClearPointsResponse: message, participants
  - ConfigResponse: show_up_down
  - SpinResponse: spin_id, rotation, winner_index, winner, awarded,
    participants (the resolved layout), scoreboard (after the award)
  - ErrorResponse: error, message

# Websocket Messages

Every server message carries a "type" field:

	roster → RosterMessage (ordered participants; with spin_id, a spin's layout)
	frame  → FrameMessage (rotation, progress)
	result → ResultMessage (winner, awarded, layout)
	error  → ErrorMessage

# Domain Types

  - Participant: id, name, score, created_at, updated_at
  - Flags: the global feature flag record

# Errors

Sentinel errors shared by every layer live in errors.go. Callers classify
them with errors.Is:

	if errors.Is(err, models.ErrNotFound) {
		// 404
	}
*/
package models

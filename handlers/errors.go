// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-spin/middleware"
	"github.com/danielhkuo/quickly-spin/models"
)

// writeServiceError maps roster and spin errors onto HTTP responses.
// Anything unclassified is logged and reported as an opaque 500.
func writeServiceError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, models.ErrInvalidName):
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
	case errors.Is(err, models.ErrInvalidDirection):
		middleware.ErrorResponse(w, http.StatusBadRequest, "direction must be increase or decrease")
	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "participant not found")
	case errors.Is(err, models.ErrDuplicateName):
		middleware.ErrorResponse(w, http.StatusConflict, "participant already exists")
	case errors.Is(err, models.ErrEmptyRoster):
		middleware.ErrorResponse(w, http.StatusConflict, "no participants to spin")
	case errors.Is(err, models.ErrNoParticipants):
		// Advisory: an empty reset is not a failure
		middleware.ErrorResponse(w, http.StatusNotFound, "No participants to reset")
	case errors.Is(err, models.ErrAlreadySpinning):
		middleware.ErrorResponse(w, http.StatusConflict, "wheel is already spinning")
	default:
		slog.Error("request failed", "action", action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

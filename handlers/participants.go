// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/quickly-spin/middleware"
	"github.com/danielhkuo/quickly-spin/models"
	"github.com/danielhkuo/quickly-spin/roster"
)

type ParticipantHandler struct {
	roster *roster.Service
}

func NewParticipantHandler(svc *roster.Service) *ParticipantHandler {
	return &ParticipantHandler{roster: svc}
}

// List handles GET /participants
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	participants, err := h.roster.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "list participants")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, participants)
}

// Create handles POST /participants
func (h *ParticipantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateParticipantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	p, err := h.roster.Add(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err, "create participant")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, p)
}

// Delete handles DELETE /participants/{id}
func (h *ParticipantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant id required")
		return
	}

	if err := h.roster.Remove(r.Context(), id); err != nil {
		writeServiceError(w, err, "delete participant")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Participant deleted",
	})
}

// AdjustScore handles PUT /participants/{id}/score
func (h *ParticipantHandler) AdjustScore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant id required")
		return
	}

	var req models.AdjustScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	p, err := h.roster.Adjust(r.Context(), id, req.Direction)
	if err != nil {
		writeServiceError(w, err, "adjust score")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, p)
}

// ClearPoints handles PUT /participants/clear-points
func (h *ParticipantHandler) ClearPoints(w http.ResponseWriter, r *http.Request) {
	participants, err := h.roster.Reset(r.Context())
	if err != nil {
		writeServiceError(w, err, "clear points")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ClearPointsResponse{
		Message:      fmt.Sprintf("Reset %s to zero", english.Plural(len(participants), "participant", "")),
		Participants: participants,
	})
}

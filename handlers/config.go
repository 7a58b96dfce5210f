// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-spin/middleware"
	"github.com/danielhkuo/quickly-spin/models"
	"github.com/danielhkuo/quickly-spin/roster"
)

type ConfigHandler struct {
	roster *roster.Service
}

func NewConfigHandler(svc *roster.Service) *ConfigHandler {
	return &ConfigHandler{roster: svc}
}

// Get handles GET /config
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	flags, err := h.roster.Flags(r.Context())
	if err != nil {
		writeServiceError(w, err, "read config")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ConfigResponse{
		ShowUpDown: flags.ShowUpDown,
	})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/quickly-spin/cliparse"
	"github.com/danielhkuo/quickly-spin/middleware"
	"github.com/danielhkuo/quickly-spin/models"
	"github.com/danielhkuo/quickly-spin/roster"
	"github.com/danielhkuo/quickly-spin/spin"
)

const writeWait = 10 * time.Second

type SpinHandler struct {
	roster   *roster.Service
	clock    clockwork.Clock
	options  []spin.Option
	upgrader websocket.Upgrader
}

// NewSpinHandler builds the spin endpoints. Extra options are applied after
// the configured duration and frame interval.
func NewSpinHandler(svc *roster.Service, cfg cliparse.Config, clock clockwork.Clock, opts ...spin.Option) *SpinHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	options := []spin.Option{
		spin.WithDuration(cfg.SpinDuration),
		spin.WithFrameInterval(cfg.FrameInterval),
	}
	return &SpinHandler{
		roster:  svc,
		clock:   clock,
		options: append(options, opts...),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     allowOrigins(cfg.AllowedOrigins),
		},
	}
}

func allowOrigins(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(origins) == 0 || slices.Contains(origins, "*") {
			return true
		}
		return slices.Contains(origins, origin)
	}
}

func (h *SpinHandler) newController(ctx context.Context) *spin.Controller {
	return spin.NewController(ctx, h.clock, h.roster, h.options...)
}

// Spin handles POST /spin. The spin runs to completion before responding;
// if the client goes away first the spin is cancelled and nothing is awarded.
func (h *SpinHandler) Spin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	participants, err := h.roster.List(ctx)
	if err != nil {
		writeServiceError(w, err, "load roster for spin")
		return
	}

	ctrl := h.newController(ctx)
	defer ctrl.Close()

	results, err := ctrl.Spin(participants, nil)
	if err != nil {
		writeServiceError(w, err, "start spin")
		return
	}

	result, ok := <-results
	if !ok {
		slog.Info("spin abandoned by client", "remote", middleware.GetClientIP(r))
		return
	}
	if result.Err != nil && !errors.Is(result.Err, models.ErrNotFound) {
		writeServiceError(w, result.Err, "award spin")
		return
	}

	scoreboard, err := h.roster.List(ctx)
	if err != nil {
		writeServiceError(w, err, "reload roster after spin")
		return
	}

	// The award may reorder the scoreboard; wedges keep the resolved layout
	middleware.JSONResponse(w, http.StatusOK, models.SpinResponse{
		SpinID:       result.SpinID,
		Rotation:     result.Rotation,
		WinnerIndex:  result.WinnerIndex,
		Winner:       result.Winner,
		Awarded:      result.Awarded != nil,
		Participants: result.Roster,
		Scoreboard:   scoreboard,
	})
}

// Stream handles GET /ws/spin. Each connection is one session with its own
// controller; the session ends when the client disconnects or the server
// shuts down, cancelling any spin in flight.
func (h *SpinHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	s := &session{
		id:     uuid.NewString(),
		conn:   conn,
		roster: h.roster,
		ctx:    ctx,
		ctrl:   h.newController(ctx),
	}
	slog.Info("spin session opened", "session_id", s.id, "remote", middleware.GetClientIP(r))

	// Closing the socket unblocks the read loop at shutdown
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	if err := s.sendRoster(); err == nil {
		s.readLoop()
	}

	cancel()
	s.ctrl.Close()
	s.wg.Wait()
	conn.Close()

	slog.Info("spin session closed", "session_id", s.id)
}

type session struct {
	id     string
	conn   *websocket.Conn
	roster *roster.Service
	ctx    context.Context
	ctrl   *spin.Controller

	// gorilla connections allow one concurrent writer
	writeMu sync.Mutex
	wg      sync.WaitGroup
}

func (s *session) send(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(v)
}

func (s *session) sendError(message string) {
	if err := s.send(models.ErrorMessage{Type: models.MessageError, Message: message}); err != nil {
		slog.Debug("failed to send websocket error", "session_id", s.id, "error", err)
	}
}

func (s *session) sendRoster() error {
	participants, err := s.roster.List(s.ctx)
	if err != nil {
		if s.ctx.Err() != nil {
			return err
		}
		slog.Error("failed to load roster", "session_id", s.id, "error", err)
		s.sendError("failed to load participants")
		return err
	}
	return s.send(models.RosterMessage{Type: models.MessageRoster, Participants: participants})
}

func (s *session) readLoop() {
	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && s.ctx.Err() == nil {
				slog.Warn("spin session read failed", "session_id", s.id, "error", err)
			}
			return
		}

		var msg models.ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.sendError("Invalid JSON")
			continue
		}

		switch msg.Type {
		case models.MessageSpin:
			s.startSpin()
		default:
			s.sendError(fmt.Sprintf("unknown message type %q", msg.Type))
		}
	}
}

func (s *session) startSpin() {
	participants, err := s.roster.List(s.ctx)
	if err != nil {
		slog.Error("failed to load roster for spin", "session_id", s.id, "error", err)
		s.sendError("failed to load participants")
		return
	}

	// The layout this spin resolves against goes out ahead of its first frame
	var layoutOnce sync.Once
	sendLayout := func(spinID string) {
		layoutOnce.Do(func() {
			err := s.send(models.RosterMessage{
				Type:         models.MessageRoster,
				SpinID:       spinID,
				Participants: participants,
			})
			if err != nil {
				slog.Debug("failed to send spin layout", "session_id", s.id, "error", err)
			}
		})
	}

	results, err := s.ctrl.Spin(participants, func(f spin.Frame) {
		sendLayout(f.SpinID)
		err := s.send(models.FrameMessage{
			Type:     models.MessageFrame,
			SpinID:   f.SpinID,
			Rotation: f.Rotation,
			Progress: f.Progress,
		})
		if err != nil {
			slog.Debug("failed to send frame", "session_id", s.id, "error", err)
		}
	})
	switch {
	case errors.Is(err, models.ErrAlreadySpinning):
		s.sendError("wheel is already spinning")
		return
	case errors.Is(err, models.ErrEmptyRoster):
		s.sendError("no participants to spin")
		return
	case err != nil:
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.deliver(results, sendLayout)
	}()
}

func (s *session) deliver(results <-chan spin.Result, sendLayout func(spinID string)) {
	result, ok := <-results
	if !ok {
		return
	}
	sendLayout(result.SpinID)

	if result.Err != nil && !errors.Is(result.Err, models.ErrNotFound) {
		s.sendError("failed to award point")
	}

	err := s.send(models.ResultMessage{
		Type:         models.MessageResult,
		SpinID:       result.SpinID,
		Rotation:     result.Rotation,
		WinnerIndex:  result.WinnerIndex,
		Winner:       result.Winner,
		Awarded:      result.Awarded != nil,
		Participants: result.Roster,
	})
	if err != nil {
		slog.Debug("failed to send spin result", "session_id", s.id, "error", err)
		return
	}

	s.sendRoster()
}

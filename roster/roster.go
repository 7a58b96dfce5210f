// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/quickly-spin/models"
)

// Store defines what the service needs from the score store
type Store interface {
	List(ctx context.Context) ([]models.Participant, error)
	Create(ctx context.Context, name string) (*models.Participant, error)
	Delete(ctx context.Context, id string) error
	Adjust(ctx context.Context, id string, delta int) (*models.Participant, error)
	Reset(ctx context.Context) ([]models.Participant, error)
	Flags(ctx context.Context) (models.Flags, error)
}

// Service validates roster operations and funnels every score mutation
// through the store's atomic operations
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns the roster ordered by score descending, then name ascending.
// Both wheel rendering and winner resolution use this ordering.
func (s *Service) List(ctx context.Context) ([]models.Participant, error) {
	participants, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

// Add creates a participant after trimming surrounding whitespace
func (s *Service) Add(ctx context.Context, name string) (*models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrInvalidName
	}

	p, err := s.store.Create(ctx, name)
	if errors.Is(err, models.ErrDuplicateName) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	slog.Info("participant created", "participant_id", p.ID, "name", p.Name)
	return p, nil
}

// Remove hard-deletes a participant
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	slog.Info("participant deleted", "participant_id", id)
	return nil
}

// Adjust applies a manual increase or decrease
func (s *Service) Adjust(ctx context.Context, id, direction string) (*models.Participant, error) {
	var delta int
	switch direction {
	case models.DirectionIncrease:
		delta = 1
	case models.DirectionDecrease:
		delta = -1
	default:
		return nil, models.ErrInvalidDirection
	}

	p, err := s.adjust(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	slog.Info("score adjusted", "participant_id", p.ID, "direction", direction, "score", p.Score)
	return p, nil
}

// Award is the spin-triggered increase, issued once per settled spin
func (s *Service) Award(ctx context.Context, id string) (*models.Participant, error) {
	p, err := s.adjust(ctx, id, 1)
	if err != nil {
		return nil, err
	}

	slog.Info("spin point awarded", "participant_id", p.ID, "name", p.Name, "score", p.Score)
	return p, nil
}

func (s *Service) adjust(ctx context.Context, id string, delta int) (*models.Participant, error) {
	p, err := s.store.Adjust(ctx, id, delta)
	if errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to adjust score: %w", err)
	}
	return p, nil
}

// Reset zeroes every score. ErrNoParticipants is advisory: it comes back with
// the (empty) roster rather than instead of it.
func (s *Service) Reset(ctx context.Context) ([]models.Participant, error) {
	participants, err := s.store.Reset(ctx)
	if errors.Is(err, models.ErrNoParticipants) {
		return participants, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reset scores: %w", err)
	}

	slog.Info("scores reset", "participants", len(participants))
	return participants, nil
}

// Flags reads the feature flags
func (s *Service) Flags(ctx context.Context) (models.Flags, error) {
	flags, err := s.store.Flags(ctx)
	if err != nil {
		return models.Flags{}, fmt.Errorf("failed to read flags: %w", err)
	}
	return flags, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/quickly-spin/db"
	"github.com/danielhkuo/quickly-spin/models"
)

const participantColumns = `id, name, score, created_at, updated_at`

// Store is the durable score store. Every mutation is a single statement or
// a single transaction, so concurrent callers never lose updates.
type Store struct {
	db    *sql.DB
	clock clockwork.Clock
}

func New(conn *sql.DB, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{db: conn, clock: clock}
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC()
}

// List returns every participant ordered by score descending, then name ascending
func (s *Store) List(ctx context.Context) ([]models.Participant, error) {
	return queryParticipants(ctx, s.db, `
		SELECT `+participantColumns+`
		FROM participant
		ORDER BY score DESC, name ASC
	`)
}

// Get returns a single participant
func (s *Store) Get(ctx context.Context, id string) (*models.Participant, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+participantColumns+`
		FROM participant
		WHERE id = $1
	`, id)

	p, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query participant: %w", err)
	}
	return p, nil
}

// Create inserts a participant with a zero score. name must already be trimmed.
func (s *Store) Create(ctx context.Context, name string) (*models.Participant, error) {
	now := s.now()
	p := models.Participant{
		ID:        uuid.NewString(),
		Name:      name,
		Score:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO participant (id, name, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Name, p.Score, p.CreatedAt, p.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return nil, models.ErrDuplicateName
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert participant: %w", err)
	}

	return &p, nil
}

// Delete removes a participant. A second delete of the same id is ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM participant WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Adjust adds delta to a participant's score in one UPDATE, clamping at zero
// and refreshing updated_at.
func (s *Store) Adjust(ctx context.Context, id string, delta int) (*models.Participant, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE participant
		SET score = CASE WHEN score + $1 < 0 THEN 0 ELSE score + $1 END,
		    updated_at = $2
		WHERE id = $3
		RETURNING `+participantColumns,
		delta, s.now(), id)

	p, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to adjust score: %w", err)
	}
	return p, nil
}

// Reset zeroes every score and returns the updated roster. The returned rows
// come from the UPDATE itself, so a concurrent award can never appear in them.
// An empty roster returns ErrNoParticipants alongside the empty list.
func (s *Store) Reset(ctx context.Context) ([]models.Participant, error) {
	participants, err := queryParticipants(ctx, s.db, `
		UPDATE participant
		SET score = 0, updated_at = $1
		RETURNING `+participantColumns,
		s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to reset scores: %w", err)
	}

	// RETURNING has no ORDER BY; every score is zero, so this is name order
	slices.SortFunc(participants, compareParticipants)

	if len(participants) == 0 {
		return participants, models.ErrNoParticipants
	}
	return participants, nil
}

// compareParticipants is the scoreboard order: score descending, then name.
func compareParticipants(a, b models.Participant) int {
	return cmp.Or(cmp.Compare(b.Score, a.Score), strings.Compare(a.Name, b.Name))
}

// Flags reads the global configuration record. A missing row reads as defaults.
func (s *Store) Flags(ctx context.Context) (models.Flags, error) {
	var flags models.Flags
	err := s.db.QueryRowContext(ctx, `
		SELECT show_up_down FROM app_config WHERE id = 1
	`).Scan(&flags.ShowUpDown)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Flags{}, nil
	}
	if err != nil {
		return models.Flags{}, fmt.Errorf("failed to query config: %w", err)
	}
	return flags, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type scanner interface {
	Scan(dest ...any) error
}

func queryParticipants(ctx context.Context, q queryer, query string, args ...any) ([]models.Participant, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

func scanParticipant(row scanner) (*models.Participant, error) {
	var p models.Participant
	if err := row.Scan(&p.ID, &p.Name, &p.Score, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

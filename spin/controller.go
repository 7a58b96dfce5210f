// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package spin

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/quickly-spin/models"
	"github.com/danielhkuo/quickly-spin/wheel"
)

const (
	DefaultDuration      = 3000 * time.Millisecond
	DefaultFrameInterval = 16 * time.Millisecond

	// Every spin adds between 3 and 6 full turns
	MinExtraDegrees   = 1080.0
	ExtraDegreesRange = 1080.0
)

type State int

const (
	Idle State = iota
	Spinning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Spinning:
		return "spinning"
	default:
		return "unknown"
	}
}

// Awarder commits the point for a settled spin
type Awarder interface {
	Award(ctx context.Context, id string) (*models.Participant, error)
}

// Frame is one animation step
type Frame struct {
	SpinID   string
	Rotation float64
	Progress float64
}

// Result describes a settled spin. Err carries the award failure, if any;
// models.ErrNotFound means the winner was deleted while the wheel turned.
type Result struct {
	SpinID      string
	Roster      []models.Participant
	Rotation    float64
	WinnerIndex int
	Winner      models.Participant
	Awarded     *models.Participant
	Err         error
}

type Option func(*Controller)

// WithDuration sets how long a spin animates
func WithDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithFrameInterval sets the time between frames
func WithFrameInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.frameInterval = d
		}
	}
}

// WithRandom replaces the uniform [0, 1) source used for the spin magnitude
func WithRandom(random func() float64) Option {
	return func(c *Controller) {
		if random != nil {
			c.random = random
		}
	}
}

// Controller owns the rotation of one session's wheel. It is Idle until Spin,
// Spinning until the animation settles or the session ends.
type Controller struct {
	clock         clockwork.Clock
	awarder       Awarder
	random        func() float64
	duration      time.Duration
	frameInterval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	state    State
	rotation float64
	closed   bool
}

// NewController creates a controller bound to ctx; cancelling ctx tears it
// down the same way Close does.
func NewController(ctx context.Context, clock clockwork.Clock, awarder Awarder, opts ...Option) *Controller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	ctx, cancel := context.WithCancel(ctx)
	c := &Controller{
		clock:         clock,
		awarder:       awarder,
		random:        rand.Float64,
		duration:      DefaultDuration,
		frameInterval: DefaultFrameInterval,
		ctx:           ctx,
		cancel:        cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Rotation is the cumulative angle of the wheel
func (c *Controller) Rotation() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

// Spin starts animating roster, which must be the same ordered snapshot used
// to lay out the wedges. It returns immediately. The channel delivers exactly
// one Result if the spin settles and is closed without a value if the
// controller is torn down first. onFrame may be nil.
func (c *Controller) Spin(roster []models.Participant, onFrame func(Frame)) (<-chan Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.ctx.Err() != nil {
		return nil, models.ErrControllerClosed
	}
	if c.state != Idle {
		return nil, models.ErrAlreadySpinning
	}
	if len(roster) == 0 {
		return nil, models.ErrEmptyRoster
	}

	start := c.rotation
	s := &spin{
		id:      uuid.NewString(),
		roster:  slices.Clone(roster),
		start:   start,
		target:  start + MinExtraDegrees + c.random()*ExtraDegreesRange,
		began:   c.clock.Now(),
		ticker:  c.clock.NewTicker(c.frameInterval),
		onFrame: onFrame,
		results: make(chan Result, 1),
	}
	c.state = Spinning

	slog.Debug("spin started", "spin_id", s.id, "participants", len(s.roster), "target", s.target)

	c.wg.Add(1)
	go c.run(s)

	return s.results, nil
}

// Close cancels any in-flight spin without awarding and waits for it to stop.
// Further spins are rejected.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

type spin struct {
	id      string
	roster  []models.Participant
	start   float64
	target  float64
	began   time.Time
	ticker  clockwork.Ticker
	onFrame func(Frame)
	results chan Result
}

func (c *Controller) run(s *spin) {
	defer c.wg.Done()
	defer close(s.results)
	defer s.ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			c.abort(s)
			return
		case <-s.ticker.Chan():
		}

		// A tick racing teardown must not settle the spin
		if c.ctx.Err() != nil {
			c.abort(s)
			return
		}

		progress := float64(c.clock.Since(s.began)) / float64(c.duration)
		if progress > 1 {
			progress = 1
		}
		rotation := wheel.Interpolate(s.start, s.target, progress)

		c.mu.Lock()
		c.rotation = rotation
		c.mu.Unlock()

		if s.onFrame != nil {
			s.onFrame(Frame{SpinID: s.id, Rotation: rotation, Progress: progress})
		}

		if progress >= 1 {
			break
		}
	}

	c.settle(s)
}

func (c *Controller) abort(s *spin) {
	c.mu.Lock()
	c.state = Idle
	c.mu.Unlock()

	slog.Info("spin cancelled", "spin_id", s.id)
}

func (c *Controller) settle(s *spin) {
	c.mu.Lock()
	c.state = Idle
	c.rotation = s.target
	c.mu.Unlock()

	index, winner, err := wheel.Pick(s.roster, s.target)
	if err != nil {
		// The snapshot is non-empty and the target finite, so this is a bug
		slog.Error("spin could not resolve a winner", "spin_id", s.id, "error", err)
		return
	}

	result := Result{
		SpinID:      s.id,
		Roster:      s.roster,
		Rotation:    s.target,
		WinnerIndex: index,
		Winner:      winner,
	}

	// Past this point the spin has settled; session teardown must not cut the award short
	awarded, err := c.awarder.Award(context.WithoutCancel(c.ctx), winner.ID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		slog.Warn("spin winner no longer exists", "spin_id", s.id, "participant_id", winner.ID)
		result.Err = err
	case err != nil:
		slog.Error("failed to award spin point", "spin_id", s.id, "participant_id", winner.ID, "error", err)
		result.Err = err
	default:
		result.Awarded = awarded
	}

	slog.Info("spin settled",
		"spin_id", s.id,
		"rotation", s.target,
		"winner_index", index,
		"winner", winner.Name,
		"awarded", result.Awarded != nil,
	)

	s.results <- result
}

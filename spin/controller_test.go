// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package spin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/quickly-spin/models"
	"github.com/danielhkuo/quickly-spin/roster"
	"github.com/danielhkuo/quickly-spin/store"
	"github.com/danielhkuo/quickly-spin/testutil"
)

const (
	testDuration = 3 * time.Second
	testFrame    = 100 * time.Millisecond
)

type fakeAwarder struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (a *fakeAwarder) Award(ctx context.Context, id string) (*models.Participant, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, id)
	if a.err != nil {
		return nil, a.err
	}
	return &models.Participant{ID: id, Score: len(a.calls)}, nil
}

func (a *fakeAwarder) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}

// testRoster is already in roster order: B(5), A(3), C(1)
func testRoster() []models.Participant {
	return []models.Participant{
		{ID: "b", Name: "B", Score: 5},
		{ID: "a", Name: "A", Score: 3},
		{ID: "c", Name: "C", Score: 1},
	}
}

func fixedRandom(v float64) Option {
	return WithRandom(func() float64 { return v })
}

func newTestController(t *testing.T, clock clockwork.Clock, awarder Awarder, random float64) *Controller {
	t.Helper()
	c := NewController(context.Background(), clock, awarder,
		WithDuration(testDuration),
		WithFrameInterval(testFrame),
		fixedRandom(random),
	)
	t.Cleanup(c.Close)
	return c
}

func frameRecorder() (chan Frame, func(Frame)) {
	frames := make(chan Frame, 256)
	return frames, func(f Frame) { frames <- f }
}

func waitFrame(t *testing.T, frames <-chan Frame) Frame {
	t.Helper()
	select {
	case f := <-frames:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for frame")
		return Frame{}
	}
}

func waitResult(t *testing.T, results <-chan Result) (Result, bool) {
	t.Helper()
	select {
	case r, ok := <-results:
		return r, ok
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for result")
		return Result{}, false
	}
}

// runToCompletion advances the clock frame by frame until the spin settles
func runToCompletion(t *testing.T, clock *clockwork.FakeClock, frames <-chan Frame) []Frame {
	t.Helper()
	var seen []Frame
	for i := 0; i < int(testDuration/testFrame); i++ {
		clock.Advance(testFrame)
		seen = append(seen, waitFrame(t, frames))
	}
	return seen
}

func TestSpin_SettlesAndAwardsOnce(t *testing.T) {
	clock := clockwork.NewFakeClock()
	awarder := &fakeAwarder{}
	// 1080 + 0.5*1080 = 1620 → normalized 180 → wedge 1 of 3
	c := newTestController(t, clock, awarder, 0.5)

	frames, onFrame := frameRecorder()
	results, err := c.Spin(testRoster(), onFrame)
	if err != nil {
		t.Fatal(err)
	}
	if c.State() != Spinning {
		t.Errorf("Expected spinning, got %s", c.State())
	}

	seen := runToCompletion(t, clock, frames)

	result, ok := waitResult(t, results)
	if !ok {
		t.Fatal("Result channel closed without a result")
	}

	if result.Rotation != 1620 {
		t.Errorf("Expected rotation 1620, got %v", result.Rotation)
	}
	if result.WinnerIndex != 1 || result.Winner.ID != "a" {
		t.Errorf("Expected winner A at index 1, got %s at %d", result.Winner.Name, result.WinnerIndex)
	}
	if result.Err != nil || result.Awarded == nil {
		t.Errorf("Expected successful award, got awarded=%v err=%v", result.Awarded, result.Err)
	}
	if calls := awarder.Calls(); len(calls) != 1 || calls[0] != "a" {
		t.Errorf("Expected exactly one award for a, got %v", calls)
	}

	// Monotonic frames ending exactly on the rotation handed to the selector
	prev := 0.0
	for i, f := range seen {
		if f.Rotation < prev {
			t.Fatalf("Frame %d went backwards: %v < %v", i, f.Rotation, prev)
		}
		if f.SpinID != result.SpinID {
			t.Errorf("Frame %d has spin id %s, expected %s", i, f.SpinID, result.SpinID)
		}
		prev = f.Rotation
	}
	last := seen[len(seen)-1]
	if last.Progress != 1 || last.Rotation != result.Rotation {
		t.Errorf("Last frame %+v does not match settled rotation %v", last, result.Rotation)
	}

	if _, open := <-results; open {
		t.Error("Expected results channel to be closed after the result")
	}
	if c.State() != Idle {
		t.Errorf("Expected idle, got %s", c.State())
	}
	if c.Rotation() != 1620 {
		t.Errorf("Expected controller rotation 1620, got %v", c.Rotation())
	}
}

func TestSpin_Rejections(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := newTestController(t, clock, &fakeAwarder{}, 0.1)

	if _, err := c.Spin(nil, nil); !errors.Is(err, models.ErrEmptyRoster) {
		t.Errorf("Expected ErrEmptyRoster, got %v", err)
	}
	if _, err := c.Spin([]models.Participant{}, nil); !errors.Is(err, models.ErrEmptyRoster) {
		t.Errorf("Expected ErrEmptyRoster for empty slice, got %v", err)
	}
	if c.State() != Idle {
		t.Errorf("Rejected spin changed state to %s", c.State())
	}

	if _, err := c.Spin(testRoster(), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Spin(testRoster(), nil); !errors.Is(err, models.ErrAlreadySpinning) {
		t.Errorf("Expected ErrAlreadySpinning, got %v", err)
	}

	c.Close()
	if _, err := c.Spin(testRoster(), nil); !errors.Is(err, models.ErrControllerClosed) {
		t.Errorf("Expected ErrControllerClosed, got %v", err)
	}
}

func TestSpin_CloseCancelsWithoutAward(t *testing.T) {
	clock := clockwork.NewFakeClock()
	awarder := &fakeAwarder{}
	c := newTestController(t, clock, awarder, 0.5)

	frames, onFrame := frameRecorder()
	results, err := c.Spin(testRoster(), onFrame)
	if err != nil {
		t.Fatal(err)
	}

	// Partway through the animation
	for i := 0; i < 10; i++ {
		clock.Advance(testFrame)
		waitFrame(t, frames)
	}

	c.Close()

	if _, ok := waitResult(t, results); ok {
		t.Error("Cancelled spin delivered a result")
	}

	clock.Advance(testDuration)
	if calls := awarder.Calls(); len(calls) != 0 {
		t.Errorf("Cancelled spin awarded points: %v", calls)
	}
	if c.State() != Idle {
		t.Errorf("Expected idle after teardown, got %s", c.State())
	}
}

func TestSpin_ParentContextCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	awarder := &fakeAwarder{}
	ctx, cancel := context.WithCancel(context.Background())
	c := NewController(ctx, clock, awarder, WithDuration(testDuration), WithFrameInterval(testFrame))
	defer c.Close()

	results, err := c.Spin(testRoster(), nil)
	if err != nil {
		t.Fatal(err)
	}

	cancel()

	if _, ok := waitResult(t, results); ok {
		t.Error("Spin settled after its session ended")
	}
	if len(awarder.Calls()) != 0 {
		t.Error("Expected no award after session teardown")
	}
	if _, err := c.Spin(testRoster(), nil); !errors.Is(err, models.ErrControllerClosed) {
		t.Errorf("Expected ErrControllerClosed, got %v", err)
	}
}

func TestSpin_DeletedWinnerSoftFails(t *testing.T) {
	clock := clockwork.NewFakeClock()
	awarder := &fakeAwarder{err: models.ErrNotFound}
	c := newTestController(t, clock, awarder, 0.5)

	frames, onFrame := frameRecorder()
	results, err := c.Spin(testRoster(), onFrame)
	if err != nil {
		t.Fatal(err)
	}
	runToCompletion(t, clock, frames)

	result, ok := waitResult(t, results)
	if !ok {
		t.Fatal("Expected a result")
	}
	if !errors.Is(result.Err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", result.Err)
	}
	if result.Awarded != nil {
		t.Error("Expected no awarded participant")
	}
	if result.Winner.ID != "a" {
		t.Errorf("Winner still resolves from the snapshot, got %s", result.Winner.ID)
	}
	if c.State() != Idle {
		t.Errorf("Expected idle, got %s", c.State())
	}
}

func TestSpin_UsesSnapshot(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := newTestController(t, clock, &fakeAwarder{}, 0.5)

	participants := testRoster()
	frames, onFrame := frameRecorder()
	results, err := c.Spin(participants, onFrame)
	if err != nil {
		t.Fatal(err)
	}

	// Caller mutates its slice mid-spin
	participants[1] = models.Participant{ID: "x", Name: "X"}

	runToCompletion(t, clock, frames)
	result, _ := waitResult(t, results)
	if result.Winner.ID != "a" {
		t.Errorf("Expected winner from snapshot (a), got %s", result.Winner.ID)
	}
}

func TestSpin_ExtraDegreesAndAccumulation(t *testing.T) {
	tests := []struct {
		name   string
		random float64
		extra  float64
	}{
		{"minimum", 0, 1080},
		{"midpoint", 0.5, 1620},
		{"near maximum", 0.999, 1080 + 0.999*1080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := clockwork.NewFakeClock()
			c := newTestController(t, clock, &fakeAwarder{}, tt.random)

			var previous float64
			for round := 1; round <= 2; round++ {
				frames, onFrame := frameRecorder()
				results, err := c.Spin(testRoster(), onFrame)
				if err != nil {
					t.Fatal(err)
				}
				runToCompletion(t, clock, frames)
				result, ok := waitResult(t, results)
				if !ok {
					t.Fatal("Expected a result")
				}

				extra := result.Rotation - previous
				if extra < MinExtraDegrees || extra >= MinExtraDegrees+ExtraDegreesRange {
					t.Errorf("Round %d: extra degrees %v outside [1080, 2160)", round, extra)
				}
				if diff := extra - tt.extra; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("Round %d: expected extra %v, got %v", round, tt.extra, extra)
				}
				previous = result.Rotation
			}
		})
	}
}

// TestSpin_EndToEnd runs the controller against the real store:
// A(3), B(5), C(1) orders to [B, A, C]; 1215° settles on A.
func TestSpin_EndToEnd(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	a := testutil.CreateTestParticipant(t, conn, "A", 3)
	testutil.CreateTestParticipant(t, conn, "B", 5)
	testutil.CreateTestParticipant(t, conn, "C", 1)

	svc := roster.NewService(store.New(conn, nil))
	snapshot, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if snapshot[0].Name != "B" || snapshot[1].Name != "A" || snapshot[2].Name != "C" {
		t.Fatalf("Unexpected roster order: %v", snapshot)
	}

	clock := clockwork.NewFakeClock()
	// 1080 + 0.125*1080 = 1215 ≡ 495 ≡ 135 (mod 360) → normalized 225 → index 1
	c := newTestController(t, clock, svc, 0.125)

	frames, onFrame := frameRecorder()
	results, err := c.Spin(snapshot, onFrame)
	if err != nil {
		t.Fatal(err)
	}
	runToCompletion(t, clock, frames)

	result, ok := waitResult(t, results)
	if !ok {
		t.Fatal("Expected a result")
	}
	if result.Winner.ID != a.ID {
		t.Fatalf("Expected A to win, got %s", result.Winner.Name)
	}
	if result.Awarded == nil || result.Awarded.Score != 4 {
		t.Errorf("Expected awarded score 4, got %+v", result.Awarded)
	}
	if got := testutil.GetTestScore(t, conn, a.ID); got != 4 {
		t.Errorf("Expected persisted score 4, got %d", got)
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Spinning.String() != "spinning" || State(9).String() != "unknown" {
		t.Error("Unexpected state names")
	}
}

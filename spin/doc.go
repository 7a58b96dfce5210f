// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package spin animates the wheel and commits exactly one point per settled spin.

# Lifecycle

A Controller belongs to one session (a websocket connection or a single
POST /spin request). It moves between two states:

	Idle ──Spin──▶ Spinning ──settle──▶ Idle
	                  │
	                  └──Close / ctx done──▶ Idle (no award)

Spin picks a target rotation of current + [1080, 2160) degrees, then emits
frames on a clockwork ticker following the wheel.Ease curve. The final frame
is exactly the target, which is the same value handed to wheel.Pick.

# Awarding

When the animation settles the controller resolves the winner from the
roster snapshot passed to Spin and calls Awarder.Award once. If the winner
was deleted mid-spin the award soft-fails: Result.Err is models.ErrNotFound
and Result.Awarded is nil.

# Teardown

Close, or cancelling the context given to NewController, stops the ticker
and closes the result channel without a value. A torn-down spin never
awards. Close waits for the spin goroutine to exit.

# Example

	c := spin.NewController(ctx, clockwork.NewRealClock(), rosterService)
	defer c.Close()

	results, err := c.Spin(snapshot, func(f spin.Frame) {
		send(f)
	})
	if err != nil {
		return err
	}
	if result, ok := <-results; ok {
		// result.Winner, result.Awarded
	}
*/
package spin

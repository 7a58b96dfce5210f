// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package wheel maps wheel rotations to winners.

Everything here is pure: no state, no I/O, no randomness. Randomness enters
upstream as the rotation passed in.

# Selection

For an ordered roster of N participants each wedge is 360/N degrees wide and
participant i owns [i*360/N, (i+1)*360/N). A rotation r resolves as:

	normalized := (360 - r mod 360) mod 360
	index      := floor(normalized / (360/N)), clamped to [0, N-1]

	index, winner, err := wheel.Pick(roster, rotation)

Select(n, r) == Select(n, r + 360*k) for every integer k.

# Animation Curve

Ease is the cubic ease-out 1-(1-p)^3. Interpolate(start, target, p) is
monotonically non-decreasing for target >= start and lands exactly on target
at p = 1.
*/
package wheel

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wheel

import (
	"math"

	"github.com/danielhkuo/quickly-spin/models"
)

// FullTurn is one revolution in degrees
const FullTurn = 360.0

// Normalize maps a cumulative wheel rotation to the angle under the fixed
// pointer, in [0, 360). The wheel turns one way and the pointer reads the
// opposite sense, hence 360 - r.
func Normalize(rotation float64) float64 {
	n := math.Mod(FullTurn-math.Mod(rotation, FullTurn), FullTurn)
	if n < 0 {
		n += FullTurn
	}
	if n >= FullTurn {
		n = 0
	}
	return n
}

// WedgeWidth is the angle owned by each of n participants
func WedgeWidth(n int) float64 {
	return FullTurn / float64(n)
}

// WedgeStart is the angle at which wedge i of n begins
func WedgeStart(i, n int) float64 {
	return float64(i) * WedgeWidth(n)
}

// Select returns the index of the wedge under the pointer for a roster of
// size n. Wedge i owns [i*w, (i+1)*w).
func Select(n int, rotation float64) (int, error) {
	if n <= 0 {
		return 0, models.ErrEmptyRoster
	}
	if math.IsNaN(rotation) || math.IsInf(rotation, 0) {
		return 0, models.ErrInvalidRotation
	}

	index := int(math.Floor(Normalize(rotation) / WedgeWidth(n)))
	if index < 0 {
		index = 0
	}
	if index > n-1 {
		index = n - 1
	}
	return index, nil
}

// Pick resolves the winner of an ordered roster snapshot
func Pick(roster []models.Participant, rotation float64) (int, models.Participant, error) {
	index, err := Select(len(roster), rotation)
	if err != nil {
		return 0, models.Participant{}, err
	}
	return index, roster[index], nil
}

// Ease is the cubic ease-out curve, 1 - (1-p)^3, with p clamped to [0, 1]
func Ease(progress float64) float64 {
	if progress <= 0 {
		return 0
	}
	if progress >= 1 {
		return 1
	}
	inv := 1 - progress
	return 1 - inv*inv*inv
}

// Interpolate returns the eased rotation between start and target. At
// progress 1 it returns target exactly, so the last frame drawn and the angle
// handed to Select are the same value.
func Interpolate(start, target, progress float64) float64 {
	if progress >= 1 {
		return target
	}
	return start + (target-start)*Ease(progress)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Invalid input
var (
	ErrInvalidName      = errors.New("name is required")
	ErrInvalidDirection = errors.New("direction must be increase or decrease")
	ErrInvalidRotation  = errors.New("rotation must be a finite number")
)

// Store outcomes
var (
	ErrNotFound       = errors.New("participant not found")
	ErrDuplicateName  = errors.New("participant already exists")
	ErrNoParticipants = errors.New("no participants found")
)

// Spin controller outcomes
var (
	ErrEmptyRoster      = errors.New("cannot spin an empty roster")
	ErrAlreadySpinning  = errors.New("wheel is already spinning")
	ErrControllerClosed = errors.New("spin controller is closed")
)

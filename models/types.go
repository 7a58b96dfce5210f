package models

import "time"

// Score adjustment directions
const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// Websocket message types
const (
	MessageRoster = "roster"
	MessageFrame  = "frame"
	MessageResult = "result"
	MessageError  = "error"
	MessageSpin   = "spin"
)

// Request types

type CreateParticipantRequest struct {
	Name string `json:"name"`
}

type AdjustScoreRequest struct {
	Direction string `json:"direction"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type ClearPointsResponse struct {
	Message      string        `json:"message"`
	Participants []Participant `json:"participants"`
}

type ConfigResponse struct {
	ShowUpDown bool `json:"show_up_down"`
}

// SpinResponse carries the wedge layout the spin resolved against in
// Participants, so Participants[WinnerIndex] is always Winner. Scoreboard is
// the roster re-read after the award.
type SpinResponse struct {
	SpinID       string        `json:"spin_id"`
	Rotation     float64       `json:"rotation"`
	WinnerIndex  int           `json:"winner_index"`
	Winner       Participant   `json:"winner"`
	Awarded      bool          `json:"awarded"`
	Participants []Participant `json:"participants"`
	Scoreboard   []Participant `json:"scoreboard"`
}

// Domain types

type Participant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Flags is the single global configuration record
type Flags struct {
	ShowUpDown bool `json:"show_up_down"`
}

// Websocket messages

// ClientMessage is anything a wheel client sends over /ws/spin
type ClientMessage struct {
	Type string `json:"type"`
}

// RosterMessage with a SpinID is the wedge layout for that spin and always
// precedes its first frame.
type RosterMessage struct {
	Type         string        `json:"type"`
	SpinID       string        `json:"spin_id,omitempty"`
	Participants []Participant `json:"participants"`
}

type FrameMessage struct {
	Type     string  `json:"type"`
	SpinID   string  `json:"spin_id"`
	Rotation float64 `json:"rotation"`
	Progress float64 `json:"progress"`
}

type ResultMessage struct {
	Type         string        `json:"type"`
	SpinID       string        `json:"spin_id"`
	Rotation     float64       `json:"rotation"`
	WinnerIndex  int           `json:"winner_index"`
	Winner       Participant   `json:"winner"`
	Awarded      bool          `json:"awarded"`
	Participants []Participant `json:"participants"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

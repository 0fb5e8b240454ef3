package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	Rows     = 6
	Cols     = 7
	ConnectN = 4

	// NoColumn is returned for search nodes that do not choose a move.
	NoColumn = -1
)

type Cell int8

const (
	Empty Cell = iota
	PlayerPiece
	EnginePiece
)

// Side is a Cell that names one of the two players. Empty is not a side:
// functions taking a Side treat it as matching nothing.
type Side = Cell

func (c Cell) IsSide() bool {
	return c == PlayerPiece || c == EnginePiece
}

// Opponent returns the other player, or Empty for anything that is not a side.
func Opponent(side Side) Side {
	switch side {
	case EnginePiece:
		return PlayerPiece
	case PlayerPiece:
		return EnginePiece
	}
	return Empty
}

func (c Cell) String() string {
	switch c {
	case PlayerPiece:
		return "player"
	case EnginePiece:
		return "engine"
	default:
		return "empty"
	}
}

var (
	ErrNoOpenRow        = errors.New("no open row in column")
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrInvalidBoard     = errors.New("invalid board")
	ErrUnknownTag       = errors.New("unknown message tag")
	ErrMalformedMessage = errors.New("malformed message")
)

type Outcome string

const (
	OutcomeNone       Outcome = ""
	OutcomeWin        Outcome = "win"
	OutcomeLoss       Outcome = "loss"
	OutcomeDraw       Outcome = "draw"
	OutcomeTerminated Outcome = "terminated"
)

type SessionMode string

const (
	ModeCreate SessionMode = "create"
	ModeJoin   SessionMode = "join"
)

type MoveRequest struct {
	Board   [][]int `json:"board"`
	Encoded string  `json:"encoded"`
}

type MoveResponse struct {
	Column int    `json:"column"`
	Score  int    `json:"score"`
	Nodes  uint64 `json:"nodes"`
}

type KafkaEventType string

const (
	EventGameStarted   KafkaEventType = "GAME_STARTED"
	EventMoveMade      KafkaEventType = "MOVE_MADE"
	EventGameCompleted KafkaEventType = "GAME_COMPLETED"
)

type GameStartedEvent struct {
	Type      KafkaEventType `json:"type"`
	SessionID uuid.UUID      `json:"session_id"`
	GameID    string         `json:"game_id,omitempty"`
	Mode      SessionMode    `json:"mode"`
	Timestamp time.Time      `json:"timestamp"`
}

type MoveMadeEvent struct {
	Type       KafkaEventType `json:"type"`
	SessionID  uuid.UUID      `json:"session_id"`
	Side       string         `json:"side"`
	Column     int            `json:"column"`
	Row        int            `json:"row"`
	MoveNumber int            `json:"move_number"`
	Board      string         `json:"board"`
	Timestamp  time.Time      `json:"timestamp"`
}

type GameCompletedEvent struct {
	Type       KafkaEventType `json:"type"`
	SessionID  uuid.UUID      `json:"session_id"`
	Outcome    Outcome        `json:"outcome"`
	TotalMoves int            `json:"total_moves"`
	Duration   int            `json:"duration_seconds"`
	Timestamp  time.Time      `json:"timestamp"`
}

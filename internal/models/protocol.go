package models

import (
	"fmt"
	"strconv"
	"strings"
)

type Tag string

const (
	TagGameStart  Tag = "GAMESTART"
	TagOpponent   Tag = "OPPONENT"
	TagWin        Tag = "WIN"
	TagLoss       Tag = "LOSS"
	TagDraw       Tag = "DRAW"
	TagTerminated Tag = "TERMINATED"
	TagPlay       Tag = "PLAY"
)

// Message is one text frame of the game coordinator protocol: TAG or TAG:ARG.
type Message struct {
	Tag    Tag
	Column int
}

func (t Tag) IsFinal() bool {
	switch t {
	case TagWin, TagLoss, TagDraw, TagTerminated:
		return true
	}
	return false
}

func (t Tag) Outcome() Outcome {
	switch t {
	case TagWin:
		return OutcomeWin
	case TagLoss:
		return OutcomeLoss
	case TagDraw:
		return OutcomeDraw
	case TagTerminated:
		return OutcomeTerminated
	}
	return OutcomeNone
}

func ParseMessage(raw string) (Message, error) {
	raw = strings.TrimSpace(raw)
	tag, arg, hasArg := strings.Cut(raw, ":")
	msg := Message{Tag: Tag(tag), Column: NoColumn}

	switch msg.Tag {
	case TagOpponent, TagPlay:
		if !hasArg {
			return msg, fmt.Errorf("%w: %s requires a column", ErrMalformedMessage, tag)
		}
		col, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return msg, fmt.Errorf("%w: %q is not a column", ErrMalformedMessage, arg)
		}
		if col < 0 || col >= Cols {
			return msg, fmt.Errorf("%w: column %d: %w", ErrMalformedMessage, col, ErrColumnOutOfRange)
		}
		msg.Column = col
	case TagGameStart, TagWin, TagLoss, TagDraw, TagTerminated:
		if hasArg {
			return msg, fmt.Errorf("%w: %s takes no argument", ErrMalformedMessage, tag)
		}
	default:
		return msg, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return msg, nil
}

func FormatPlay(col int) string {
	return fmt.Sprintf("%s:%d", TagPlay, col)
}

package session

import (
	"connect4engine/internal/bot"
	"connect4engine/internal/models"
	"connect4engine/pkg/logger"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Engine interface {
	Choose(board models.Board) (bot.Result, error)
}

type Publisher interface {
	PublishGameStarted(event models.GameStartedEvent) error
	PublishMoveMade(event models.MoveMadeEvent) error
	PublishGameCompleted(event models.GameCompletedEvent) error
}

// Conn is the subset of *websocket.Conn a session needs.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Session plays one game against a remote coordinator. It owns the
// authoritative board and is driven by one goroutine.
type Session struct {
	ID     uuid.UUID
	Mode   models.SessionMode
	GameID string

	conn   Conn
	engine Engine
	events *eventQueue

	board     models.Board
	moves     int
	startedAt time.Time
}

// New creates a session. A nil publisher disables events; otherwise events
// are published in the background until Close.
func New(conn Conn, mode models.SessionMode, gameID string, engine Engine, publisher Publisher) *Session {
	s := &Session{
		ID:        uuid.New(),
		Mode:      mode,
		GameID:    gameID,
		conn:      conn,
		engine:    engine,
		board:     models.NewBoard(),
		startedAt: time.Now(),
	}
	if publisher != nil {
		s.events = newEventQueue(publisher)
	}
	return s
}

// Close waits for queued events to be published. Events raised after Close
// are dropped. It does not close the connection.
func (s *Session) Close() {
	if s.events != nil {
		s.events.close()
	}
}

func (s *Session) publish(fn func(Publisher) error) {
	if s.events != nil {
		s.events.push(fn)
	}
}

// URL builds ws://<server>/create or ws://<server>/join/<gameID>.
func URL(server string, mode models.SessionMode, gameID string) (string, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return "", errors.New("server address is required")
	}
	if !strings.Contains(server, "://") {
		server = "ws://" + server
	}
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("invalid server address: %w", err)
	}

	switch mode {
	case models.ModeCreate:
		u = u.JoinPath("create")
	case models.ModeJoin:
		if gameID == "" {
			return "", errors.New("game id is required to join a game")
		}
		u = u.JoinPath("join", gameID)
	default:
		return "", fmt.Errorf("unknown session mode %q", mode)
	}
	return u.String(), nil
}

func Dial(ctx context.Context, server string, mode models.SessionMode, gameID string) (*websocket.Conn, error) {
	addr, err := URL(server, mode, gameID)
	if err != nil {
		return nil, err
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	logger.Log.Info("Connected to game server", zap.String("url", addr), zap.String("mode", string(mode)))
	return conn, nil
}

func (s *Session) Board() models.Board {
	return s.board
}

// Run reads messages until the game ends, the connection fails or ctx is
// cancelled. Queued events are flushed before it returns.
func (s *Session) Run(ctx context.Context) (models.Outcome, error) {
	defer s.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return models.OutcomeNone, ctx.Err()
			}
			return models.OutcomeNone, fmt.Errorf("read from game server: %w", err)
		}

		reply, outcome, err := s.Handle(string(data))
		if errors.Is(err, models.ErrUnknownTag) {
			logger.Log.Warn("Ignoring unknown message", zap.String("message", string(data)))
			continue
		}
		if err != nil {
			return models.OutcomeNone, err
		}

		if reply != "" {
			if err := s.conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
				return models.OutcomeNone, fmt.Errorf("write to game server: %w", err)
			}
		}
		if outcome != models.OutcomeNone {
			return outcome, nil
		}
	}
}

// Handle applies one raw message to the board. It returns the reply to send,
// if any, and the outcome once the game is over.
func (s *Session) Handle(raw string) (string, models.Outcome, error) {
	msg, err := models.ParseMessage(raw)
	if err != nil {
		return "", models.OutcomeNone, err
	}

	switch {
	case msg.Tag == models.TagGameStart:
		s.reset()
		if s.Mode != models.ModeCreate {
			return "", models.OutcomeNone, nil
		}
		reply, err := s.engineMove()
		return reply, models.OutcomeNone, err

	case msg.Tag == models.TagOpponent:
		row, err := s.board.Drop(msg.Column, models.PlayerPiece)
		if err != nil {
			return "", models.OutcomeNone, fmt.Errorf("opponent move: %w", err)
		}
		s.recordMove(models.PlayerPiece, msg.Column, row)
		if s.board.IsTerminal() {
			logger.Log.Info("Board is decided after opponent move, waiting for result",
				zap.String("session_id", s.ID.String()))
			return "", models.OutcomeNone, nil
		}
		reply, err := s.engineMove()
		return reply, models.OutcomeNone, err

	case msg.Tag.IsFinal():
		outcome := msg.Tag.Outcome()
		s.finish(outcome)
		return "", outcome, nil
	}

	return "", models.OutcomeNone, fmt.Errorf("%w: unexpected %s from server", models.ErrMalformedMessage, msg.Tag)
}

func (s *Session) reset() {
	s.board = models.NewBoard()
	s.moves = 0
	s.startedAt = time.Now()

	logger.Log.Info("Game started", zap.String("session_id", s.ID.String()), zap.String("mode", string(s.Mode)))
	event := models.GameStartedEvent{
		Type:      models.EventGameStarted,
		SessionID: s.ID,
		GameID:    s.GameID,
		Mode:      s.Mode,
		Timestamp: s.startedAt,
	}
	s.publish(func(p Publisher) error { return p.PublishGameStarted(event) })
}

func (s *Session) engineMove() (string, error) {
	res, err := s.engine.Choose(s.board)
	if err != nil {
		return "", fmt.Errorf("engine: %w", err)
	}
	row, err := s.board.Drop(res.Column, models.EnginePiece)
	if err != nil {
		return "", fmt.Errorf("engine move: %w", err)
	}
	s.recordMove(models.EnginePiece, res.Column, row)
	return models.FormatPlay(res.Column), nil
}

func (s *Session) recordMove(side models.Side, col, row int) {
	s.moves++
	logger.Log.Debug("Move applied",
		zap.String("side", side.String()),
		zap.Int("column", col),
		zap.Int("row", row),
		zap.Int("move_number", s.moves),
	)
	event := models.MoveMadeEvent{
		Type:       models.EventMoveMade,
		SessionID:  s.ID,
		Side:       side.String(),
		Column:     col,
		Row:        row,
		MoveNumber: s.moves,
		Board:      s.board.Encode(),
		Timestamp:  time.Now(),
	}
	s.publish(func(p Publisher) error { return p.PublishMoveMade(event) })
}

func (s *Session) finish(outcome models.Outcome) {
	duration := int(time.Since(s.startedAt).Seconds())
	logger.Log.Info("Game over",
		zap.String("session_id", s.ID.String()),
		zap.String("outcome", string(outcome)),
		zap.Int("moves", s.moves),
		zap.Int("duration_seconds", duration),
	)
	event := models.GameCompletedEvent{
		Type:       models.EventGameCompleted,
		SessionID:  s.ID,
		Outcome:    outcome,
		TotalMoves: s.moves,
		Duration:   duration,
		Timestamp:  time.Now(),
	}
	s.publish(func(p Publisher) error { return p.PublishGameCompleted(event) })
}

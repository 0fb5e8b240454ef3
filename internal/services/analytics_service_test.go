package services

import (
	"encoding/json"
	"testing"

	"connect4engine/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopularColumns(t *testing.T) {
	as := NewAnalyticsService()
	for _, col := range []int{3, 3, 3, 2, 4, 4, -1, 7} {
		as.RecordDecision(col)
	}

	cols := as.GetPopularColumns()
	require.Len(t, cols, 3)
	assert.Equal(t, PopularColumn{Column: 3, Count: 3, Percentage: 50}, cols[0])
	assert.Equal(t, 4, cols[1].Column)
	assert.Equal(t, 2, cols[2].Column)
	assert.Equal(t, 6, as.GetStatistics().Decisions)
}

func TestProcessEvent(t *testing.T) {
	as := NewAnalyticsService()
	id := uuid.New()

	events := []interface{}{
		models.GameStartedEvent{Type: models.EventGameStarted, SessionID: id, Mode: models.ModeCreate},
		models.MoveMadeEvent{Type: models.EventMoveMade, SessionID: id, Side: "engine", Column: 3, MoveNumber: 1},
		models.MoveMadeEvent{Type: models.EventMoveMade, SessionID: id, Side: "player", Column: 2, MoveNumber: 2},
		models.GameCompletedEvent{Type: models.EventGameCompleted, SessionID: id, Outcome: models.OutcomeWin, TotalMoves: 2, Duration: 10},
		models.GameStartedEvent{Type: models.EventGameStarted, SessionID: uuid.New()},
		models.GameCompletedEvent{Type: models.EventGameCompleted, SessionID: id, Outcome: models.OutcomeLoss, TotalMoves: 4, Duration: 20},
	}
	for _, e := range events {
		data, err := json.Marshal(e)
		require.NoError(t, err)
		require.NoError(t, ProcessEvent(as, data))
	}

	stats := as.GetStatistics()
	assert.Equal(t, 2, stats.GamesStarted)
	assert.Equal(t, 2, stats.GamesCompleted)
	assert.Equal(t, 3, stats.MovesSeen)
	assert.Equal(t, 1, stats.Decisions)
	assert.Equal(t, 50.0, stats.EngineWinRate)
	assert.Equal(t, 3.0, stats.AvgMovesPerGame)
	assert.Equal(t, 15.0, stats.AvgGameDuration)
	assert.Equal(t, 1, stats.Outcomes[models.OutcomeLoss])

	assert.Error(t, ProcessEvent(as, []byte("not json")))
	assert.NoError(t, ProcessEvent(as, []byte(`{"type":"SOMETHING_ELSE"}`)))
}

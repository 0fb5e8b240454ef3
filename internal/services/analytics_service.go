package services

import (
	"connect4engine/internal/models"
	"connect4engine/pkg/logger"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// AnalyticsService aggregates engine decisions and game events in memory.
type AnalyticsService struct {
	mu           sync.RWMutex
	decisions    [models.Cols]int
	gamesStarted int
	movesSeen    int
	outcomes     map[models.Outcome]int
	totalMoves   int
	totalSeconds int
}

type GameAnalytics struct {
	GamesStarted    int                    `json:"games_started"`
	GamesCompleted  int                    `json:"games_completed"`
	Decisions       int                    `json:"decisions"`
	MovesSeen       int                    `json:"moves_seen"`
	Outcomes        map[models.Outcome]int `json:"outcomes"`
	EngineWinRate   float64                `json:"engine_win_rate"`
	AvgMovesPerGame float64                `json:"avg_moves_per_game"`
	AvgGameDuration float64                `json:"avg_game_duration"`
}

type PopularColumn struct {
	Column     int     `json:"column"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{outcomes: make(map[models.Outcome]int)}
}

func (as *AnalyticsService) RecordDecision(col int) {
	if col < 0 || col >= models.Cols {
		return
	}
	as.mu.Lock()
	as.decisions[col]++
	as.mu.Unlock()
}

func (as *AnalyticsService) ProcessGameStarted(event models.GameStartedEvent) {
	as.mu.Lock()
	as.gamesStarted++
	as.mu.Unlock()
	logger.Log.Info("Processed GAME_STARTED event", zap.String("session_id", event.SessionID.String()))
}

func (as *AnalyticsService) ProcessMoveMade(event models.MoveMadeEvent) {
	as.mu.Lock()
	as.movesSeen++
	if event.Side == models.EnginePiece.String() && event.Column >= 0 && event.Column < models.Cols {
		as.decisions[event.Column]++
	}
	as.mu.Unlock()
	logger.Log.Debug("Processed MOVE_MADE event",
		zap.String("session_id", event.SessionID.String()),
		zap.String("side", event.Side),
		zap.Int("column", event.Column),
	)
}

func (as *AnalyticsService) ProcessGameCompleted(event models.GameCompletedEvent) {
	as.mu.Lock()
	as.outcomes[event.Outcome]++
	as.totalMoves += event.TotalMoves
	as.totalSeconds += event.Duration
	as.mu.Unlock()

	stats := as.GetStatistics()
	logger.Log.Info("Processed GAME_COMPLETED event",
		zap.String("session_id", event.SessionID.String()),
		zap.String("outcome", string(event.Outcome)),
		zap.Int("games_completed", stats.GamesCompleted),
		zap.Float64("engine_win_rate", stats.EngineWinRate),
	)
}

func (as *AnalyticsService) GetStatistics() *GameAnalytics {
	as.mu.RLock()
	defer as.mu.RUnlock()

	stats := &GameAnalytics{
		GamesStarted: as.gamesStarted,
		MovesSeen:    as.movesSeen,
		Outcomes:     make(map[models.Outcome]int, len(as.outcomes)),
	}
	for outcome, n := range as.outcomes {
		stats.Outcomes[outcome] = n
		stats.GamesCompleted += n
	}
	for _, n := range as.decisions {
		stats.Decisions += n
	}
	if stats.GamesCompleted > 0 {
		completed := float64(stats.GamesCompleted)
		stats.EngineWinRate = float64(as.outcomes[models.OutcomeWin]) / completed * 100
		stats.AvgMovesPerGame = float64(as.totalMoves) / completed
		stats.AvgGameDuration = float64(as.totalSeconds) / completed
	}
	return stats
}

// GetPopularColumns returns columns the engine has chosen, most frequent first.
func (as *AnalyticsService) GetPopularColumns() []PopularColumn {
	as.mu.RLock()
	defer as.mu.RUnlock()

	total := 0
	for _, n := range as.decisions {
		total += n
	}

	var columns []PopularColumn
	for col, n := range as.decisions {
		if n == 0 {
			continue
		}
		columns = append(columns, PopularColumn{
			Column:     col,
			Count:      n,
			Percentage: float64(n) * 100 / float64(total),
		})
	}
	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].Count > columns[j].Count
	})
	return columns
}

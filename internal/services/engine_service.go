package services

import (
	"connect4engine/internal/bot"
	"connect4engine/internal/config"
	"connect4engine/internal/models"
	"connect4engine/pkg/logger"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EngineService serialises searches on a single Bot.
type EngineService struct {
	bot       *bot.Bot
	mu        sync.Mutex
	analytics *AnalyticsService
}

func NewEngineService(cfg *config.Config, analytics *AnalyticsService) *EngineService {
	botCfg := bot.Config{Depth: cfg.Engine.Depth}
	if cfg.Engine.RandomTieBreak {
		seed := cfg.Engine.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		botCfg.Rand = rand.New(rand.NewSource(seed))
	}
	return NewEngineServiceWithBot(bot.New(botCfg), analytics)
}

func NewEngineServiceWithBot(b *bot.Bot, analytics *AnalyticsService) *EngineService {
	return &EngineService{bot: b, analytics: analytics}
}

func (es *EngineService) Depth() int {
	return es.bot.Depth()
}

func (es *EngineService) Choose(board models.Board) (bot.Result, error) {
	es.mu.Lock()
	defer es.mu.Unlock()

	start := time.Now()
	res, err := es.bot.Search(board)
	if err != nil {
		logger.Log.Warn("Engine search rejected board", zap.Error(err), zap.String("board", board.Encode()))
		return res, err
	}

	logger.Log.Debug("Engine chose column",
		zap.Int("column", res.Column),
		zap.Int("score", res.Score),
		zap.Uint64("nodes", res.Nodes),
		zap.Duration("elapsed", time.Since(start)),
	)
	if es.analytics != nil {
		es.analytics.RecordDecision(res.Column)
	}
	return res, nil
}

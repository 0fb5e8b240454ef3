package main

import (
	"connect4engine/internal/config"
	"connect4engine/internal/services"
	"connect4engine/pkg/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Log.Info("Starting Connect4 engine analytics consumer",
		zap.String("env", cfg.Server.Env),
		zap.Strings("kafka_brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.TopicEvents),
	)

	analyticsService := services.NewAnalyticsService()

	kafkaConsumer, err := services.NewKafkaConsumer(cfg, analyticsService)
	if err != nil {
		logger.Log.Fatal("Failed to create Kafka consumer", zap.Error(err))
	}
	defer kafkaConsumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		logger.Log.Info("Kafka consumer started, waiting for events...")
		kafkaConsumer.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutdown signal received, stopping consumer...")
	cancel()

	stats := analyticsService.GetStatistics()
	logger.Log.Info("Analytics consumer stopped",
		zap.Int("games_completed", stats.GamesCompleted),
		zap.Int("decisions", stats.Decisions),
		zap.Float64("engine_win_rate", stats.EngineWinRate),
	)
}

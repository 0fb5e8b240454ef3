package main

import (
	"bufio"
	"connect4engine/internal/config"
	"connect4engine/internal/models"
	"connect4engine/internal/services"
	"connect4engine/internal/session"
	"connect4engine/pkg/logger"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	server := flag.String("server", cfg.Session.ServerAddr, "game server address (host:port)")
	mode := flag.String("mode", cfg.Session.Mode, "create a new game (c) or join an existing one (j)")
	gameID := flag.String("game", cfg.Session.GameID, "game id to join")
	depth := flag.Int("depth", cfg.Engine.Depth, "minimax search depth")
	flag.Parse()
	cfg.Engine.Depth = *depth

	if err := logger.Init(cfg.Server.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	in := bufio.NewReader(os.Stdin)
	if *server == "" {
		*server = prompt(in, "Server IP: ")
	}
	if *mode == "" {
		*mode = prompt(in, "Join game or create game? (j/c): ")
	}
	sessionMode, ok := parseMode(*mode)
	if !ok {
		fmt.Println("Invalid protocol!")
		os.Exit(1)
	}
	if sessionMode == models.ModeJoin && *gameID == "" {
		*gameID = prompt(in, "Game ID: ")
	}

	publisher, err := services.NewEventPublisher(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()

	engine := services.NewEngineService(cfg, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := session.Dial(ctx, *server, sessionMode, *gameID)
	if err != nil {
		logger.Log.Fatal("Failed to connect", zap.Error(err))
	}
	defer conn.Close()

	s := session.New(conn, sessionMode, *gameID, engine, publisher)
	outcome, err := s.Run(ctx)
	if err != nil {
		logger.Log.Error("Session ended with error", zap.Error(err), zap.String("board", s.Board().Encode()))
		os.Exit(1)
	}
	fmt.Println(strings.ToUpper(string(outcome)))
}

func prompt(in *bufio.Reader, question string) string {
	fmt.Print(question)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func parseMode(s string) (models.SessionMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "create":
		return models.ModeCreate, true
	case "j", "join":
		return models.ModeJoin, true
	}
	return "", false
}

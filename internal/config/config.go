package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Engine  EngineConfig
	Session SessionConfig
	Kafka   KafkaConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type EngineConfig struct {
	Depth int

	// Seed for the tie-break random source. Zero seeds from the clock.
	Seed int64

	// RandomTieBreak selects a random initial column at each node instead
	// of the first legal one. The first column searched always replaces it,
	// so the chosen move is the same either way.
	RandomTieBreak bool
}

type SessionConfig struct {
	ServerAddr string
	Mode       string
	GameID     string
}

type KafkaConfig struct {
	Brokers     []string
	TopicEvents string
	GroupID     string
	Username    string
	Password    string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Engine: EngineConfig{
			Depth:          getEnvAsInt("ENGINE_DEPTH", 5),
			Seed:           getEnvAsInt64("ENGINE_SEED", 0),
			RandomTieBreak: getEnvAsBool("ENGINE_RANDOM_TIEBREAK", false),
		},
		Session: SessionConfig{
			ServerAddr: getEnv("GAME_SERVER", ""),
			Mode:       getEnv("GAME_MODE", ""),
			GameID:     getEnv("GAME_ID", ""),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(getEnv("KAFKA_BROKERS", "")),
			TopicEvents: getEnv("KAFKA_TOPIC_EVENTS", "connect4.engine.events"),
			GroupID:     getEnv("KAFKA_GROUP_ID", "connect4-engine-analytics"),
			Username:    getEnv("KAFKA_USERNAME", ""),
			Password:    getEnv("KAFKA_PASSWORD", ""),
		},
	}

	return config, nil
}

func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// splitList drops empty entries, so an unset variable yields no brokers.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package services

import (
	"connect4engine/internal/config"
	"connect4engine/internal/models"
	"connect4engine/pkg/logger"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/scram"
	"go.uber.org/zap"
)

type EventPublisher interface {
	PublishGameStarted(event models.GameStartedEvent) error
	PublishMoveMade(event models.MoveMadeEvent) error
	PublishGameCompleted(event models.GameCompletedEvent) error
	Close() error
}

// NewEventPublisher returns a Kafka producer, or a no-op publisher when no
// brokers are configured.
func NewEventPublisher(cfg *config.Config) (EventPublisher, error) {
	if !cfg.KafkaEnabled() {
		logger.Log.Info("Kafka disabled, engine events will not be published")
		return NopPublisher{}, nil
	}
	return NewKafkaProducer(cfg)
}

type NopPublisher struct{}

func (NopPublisher) PublishGameStarted(models.GameStartedEvent) error { return nil }
func (NopPublisher) PublishMoveMade(models.MoveMadeEvent) error { return nil }
func (NopPublisher) PublishGameCompleted(models.GameCompletedEvent) error { return nil }
func (NopPublisher) Close() error { return nil }

type KafkaProducer struct {
	writer *kafka.Writer
	config *config.Config
}

func saslMechanism(cfg *config.Config) (sasl.Mechanism, *tls.Config, error) {
	if cfg.Kafka.Username == "" {
		return nil, nil, nil
	}
	mechanism, err := scram.Mechanism(scram.SHA256, cfg.Kafka.Username, cfg.Kafka.Password)
	if err != nil {
		return nil, nil, err
	}
	return mechanism, &tls.Config{}, nil
}

func NewKafkaProducer(cfg *config.Config) (*KafkaProducer, error) {
	mechanism, tlsCfg, err := saslMechanism(cfg)
	if err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.TopicEvents,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		Compression:  kafka.Snappy,
		Transport: &kafka.Transport{
			SASL: mechanism,
			TLS:  tlsCfg,
		},
	}

	kp := &KafkaProducer{
		writer: writer,
		config: cfg,
	}

	logger.Log.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.TopicEvents),
	)

	return kp, nil
}

func (kp *KafkaProducer) PublishGameStarted(event models.GameStartedEvent) error {
	return kp.publish(event.SessionID, event)
}

func (kp *KafkaProducer) PublishMoveMade(event models.MoveMadeEvent) error {
	return kp.publish(event.SessionID, event)
}

func (kp *KafkaProducer) PublishGameCompleted(event models.GameCompletedEvent) error {
	return kp.publish(event.SessionID, event)
}

// Events are keyed by session so one game stays on one partition.
func (kp *KafkaProducer) publish(sessionID uuid.UUID, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("Failed to marshal event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(sessionID.String()),
		Value: data,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = kp.writer.WriteMessages(ctx, msg)
	if err != nil {
		logger.Log.Error("Kafka write failed", zap.Error(err))
		return err
	}

	logger.Log.Debug("Event published to Kafka", zap.Int("size", len(data)))
	return nil
}

func (kp *KafkaProducer) Close() error {
	if kp.writer != nil {
		return kp.writer.Close()
	}
	return nil
}

type KafkaConsumer struct {
	reader    *kafka.Reader
	analytics *AnalyticsService
}

func NewKafkaConsumer(cfg *config.Config, analytics *AnalyticsService) (*KafkaConsumer, error) {
	if !cfg.KafkaEnabled() {
		return nil, errors.New("no kafka brokers configured")
	}
	mechanism, tlsCfg, err := saslMechanism(cfg)
	if err != nil {
		return nil, err
	}

	dialer := &kafka.Dialer{
		Timeout:       10 * time.Second,
		DualStack:     true,
		SASLMechanism: mechanism,
		TLS:           tlsCfg,
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.TopicEvents,
		GroupID:        cfg.Kafka.GroupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
		Dialer:         dialer,
	})

	logger.Log.Info("Kafka consumer initialized",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.TopicEvents),
		zap.String("group", cfg.Kafka.GroupID),
	)

	return &KafkaConsumer{
		reader:    reader,
		analytics: analytics,
	}, nil
}

func (kc *KafkaConsumer) Start(ctx context.Context) {
	logger.Log.Info("Starting Kafka consumer...")

	for {
		msg, err := kc.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Log.Info("Kafka consumer stopped")
				return
			}
			logger.Log.Error("Kafka read error", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		if err := ProcessEvent(kc.analytics, msg.Value); err != nil {
			logger.Log.Error("Failed to process event", zap.Error(err), zap.Int64("offset", msg.Offset))
		}
	}
}

// ProcessEvent decodes one JSON event and hands it to the analytics service.
func ProcessEvent(analytics *AnalyticsService, value []byte) error {
	var baseEvent struct {
		Type models.KafkaEventType `json:"type"`
	}
	if err := json.Unmarshal(value, &baseEvent); err != nil {
		return err
	}

	switch baseEvent.Type {
	case models.EventGameStarted:
		var event models.GameStartedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		analytics.ProcessGameStarted(event)
	case models.EventMoveMade:
		var event models.MoveMadeEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		analytics.ProcessMoveMade(event)
	case models.EventGameCompleted:
		var event models.GameCompletedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		analytics.ProcessGameCompleted(event)
	default:
		logger.Log.Warn("Ignoring unknown event type", zap.String("type", string(baseEvent.Type)))
	}
	return nil
}

func (kc *KafkaConsumer) Close() error {
	if kc.reader != nil {
		return kc.reader.Close()
	}
	return nil
}

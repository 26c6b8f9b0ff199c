package gates

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"

	"mobypark/pkg/logger"
)

// Controller opens physical gates. The session flow treats a failed open as a
// hard failure on entry and as an irregular exit on the way out.
type Controller interface {
	OpenGate(ctx context.Context, lotID int64, licensePlate string, direction Direction) error
	Close() error
}

// KafkaControllerConfig contains configuration for the Kafka gate controller
type KafkaControllerConfig struct {
	Brokers   []string
	Topic     string
	RetryMax  int
	TimeoutMs int
}

// DefaultKafkaControllerConfig returns a default controller configuration
func DefaultKafkaControllerConfig() *KafkaControllerConfig {
	return &KafkaControllerConfig{
		Brokers:   []string{"localhost:9092"},
		Topic:     "gate-commands",
		RetryMax:  3,
		TimeoutMs: 10000,
	}
}

// kafkaController publishes gate commands to Kafka. The barrier hardware at
// each lot consumes its own partition, keyed by lot id so commands for one
// gate stay ordered.
type kafkaController struct {
	producer sarama.SyncProducer
	config   *KafkaControllerConfig
	logger   *logger.Logger
}

// NewKafkaController creates a gate controller backed by a Kafka sync producer
func NewKafkaController(config *KafkaControllerConfig, log *logger.Logger) (Controller, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaController{
		producer: producer,
		config:   config,
		logger:   log,
	}, nil
}

func (k *kafkaController) OpenGate(ctx context.Context, lotID int64, licensePlate string, direction Direction) error {
	command := &GateCommand{
		ParkingLotID: lotID,
		LicensePlate: licensePlate,
		Direction:    direction,
		IssuedAt:     time.Now(),
	}

	messageBytes, err := command.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal gate command: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: k.config.Topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(lotID, 10)),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("direction"), Value: []byte(direction)},
			{Key: []byte("issued_at"), Value: []byte(command.IssuedAt.Format(time.RFC3339))},
		},
		Timestamp: command.IssuedAt,
	}

	partition, offset, err := k.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send gate command: %w", err)
	}

	k.logger.LogGateCommand(ctx, lotID, licensePlate, string(direction))
	k.logger.Debug("gate command published",
		"topic", k.config.Topic,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (k *kafkaController) Close() error {
	if k.producer != nil {
		if err := k.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

// logController just records gate commands. Used in development and as a
// fallback when Kafka is disabled or unreachable.
type logController struct {
	logger *logger.Logger
}

func NewLogController(log *logger.Logger) Controller {
	return &logController{logger: log}
}

func (l *logController) OpenGate(ctx context.Context, lotID int64, licensePlate string, direction Direction) error {
	l.logger.LogGateCommand(ctx, lotID, licensePlate, string(direction))
	return nil
}

func (l *logController) Close() error {
	return nil
}

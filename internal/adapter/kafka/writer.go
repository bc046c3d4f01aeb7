package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/delivery-area-service/internal/config"
	"github.com/couchcryptid/delivery-area-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes verdict events to a Kafka topic.
// It implements httpadapter.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured verdict topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaVerdictTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes a single verdict event, keyed by its ID.
func (w *Writer) Publish(ctx context.Context, ev domain.VerdictEvent) error {
	msg, err := serializeToMessage(ev)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write verdict event: %w", err)
	}
	w.logger.Debug("verdict event published", "event_id", ev.ID, "tier", ev.Tier)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a VerdictEvent into a Kafka message.
func serializeToMessage(ev domain.VerdictEvent) (kafkago.Message, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize verdict event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(ev.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "tier", Value: []byte(ev.Tier)},
			{Key: "is_valid", Value: []byte(strconv.FormatBool(ev.IsValid))},
			{Key: "checked_at", Value: []byte(ev.CheckedAt.Format(time.RFC3339))},
		},
	}, nil
}

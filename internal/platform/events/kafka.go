package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"murmur/internal/platform/logger"
)

// KafkaConfig holds the optional Kafka mirror configuration
type KafkaConfig struct {
	Brokers []string
	Topic   string
	Enabled bool
}

// KafkaMirror copies published-response events onto a Kafka topic.
// When unconfigured it runs in log-only mode and Publish is a no-op
type KafkaMirror struct {
	writer  *kafka.Writer
	topic   string
	enabled bool
	log     logger.Logger
}

// NewKafkaMirror constructs the mirror. A nil or disabled config yields
// log-only mode rather than an error
func NewKafkaMirror(cfg *KafkaConfig, log logger.Logger) *KafkaMirror {
	if cfg == nil || !cfg.Enabled || len(cfg.Brokers) == 0 {
		log.Info().Msg("kafka mirror disabled, events stay in-process")
		return &KafkaMirror{enabled: false, log: log}
	}

	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    &kafka.Transport{Dial: dialer.DialFunc},
	}

	log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("kafka mirror initialized")
	return &KafkaMirror{writer: w, topic: cfg.Topic, enabled: true, log: log}
}

// Publish writes one event keyed by response id
func (m *KafkaMirror) Publish(ctx context.Context, ev ResponsePublished) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if !m.enabled || m.writer == nil {
		m.log.Debug().RawJSON("payload", payload).Msg("kafka disabled, event logged only")
		return nil
	}
	return m.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.ResponseID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(m.topic)},
		},
	})
}

// Close closes the underlying writer when one exists
func (m *KafkaMirror) Close() error {
	if m.writer == nil {
		return nil
	}
	return m.writer.Close()
}

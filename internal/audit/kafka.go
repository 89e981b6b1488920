package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Kafka publishes audit events to a topic. Delivery is asynchronous; produce
// errors are logged, not returned, matching the best-effort contract.
type Kafka struct {
	client *kgo.Client
	logger *slog.Logger
}

// NewKafka connects to the given brokers and produces to topic.
func NewKafka(brokers []string, topic string, logger *slog.Logger) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Kafka{client: client, logger: logger}, nil
}

func (k *Kafka) Emit(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	rec := &kgo.Record{Key: []byte(e.Hash), Value: value}
	k.client.Produce(ctx, rec, func(_ *kgo.Record, err error) {
		if err != nil {
			k.logger.Error("audit event publish failed", "action", e.Action, "hash", e.Hash, "error", err)
		}
	})
	return nil
}

func (k *Kafka) Close() error {
	k.client.Close()
	return nil
}

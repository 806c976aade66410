package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/config"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/logger"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/segmentio/kafka-go"
)

// Consumer reads domain events from one topic as part of a consumer
// group. Offsets commit only after the handler succeeds, so a crashed
// handler replays its event on the next fetch.
type Consumer struct {
	reader *kafka.Reader
}

type EventHandler func(ctx context.Context, event models.Event) error

func NewConsumer(cfg *config.Config, topic string, groupID string) *Consumer {
	if groupID == "" {
		groupID = cfg.KafkaGroupID
	}
	return &Consumer{reader: kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})}
}

// Consume blocks, dispatching each fetched event to handler until ctx is
// cancelled. Undecodable messages are committed and skipped; handler
// errors leave the offset uncommitted for redelivery.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		message, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Log.WithError(err).Error("event fetch failed")
			continue
		}

		var event models.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			logger.Log.WithError(err).WithFields(map[string]interface{}{
				"topic":     message.Topic,
				"partition": message.Partition,
				"offset":    message.Offset,
			}).Error("event decode failed, skipping")
			c.reader.CommitMessages(ctx, message)
			continue
		}

		if err := handler(ctx, event); err != nil {
			logger.Log.WithError(err).WithFields(map[string]interface{}{
				"event_id":   event.ID,
				"event_type": event.Type,
			}).Error("event handler failed")
			continue
		}

		if err := c.reader.CommitMessages(ctx, message); err != nil {
			logger.Log.WithError(err).Error("offset commit failed")
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

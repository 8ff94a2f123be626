// Package kafka backs the notification queue with a Kafka topic, so queued
// deliveries survive process restarts. The in-process channel queue remains
// the default when no brokers are configured.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"turnero/internal/notification"
)

// Queue produces tasks to a topic and consumes them within a consumer
// group. One process usually does both, but producers and consumers can be
// split across processes.
type Queue struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

type Option func(q *Queue)

func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

func New(brokers []string, topic, group string, opts ...Option) (*Queue, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ConsumeTopics(topic),
		kgo.ConsumerGroup(group),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}
	q := &Queue{client: client, topic: topic, logger: slog.Default()}
	for _, opt := range opts {
		opt(q)
	}
	return q, nil
}

// Enqueue produces asynchronously; the task is on record in the log either
// way, so a produce failure only delays delivery until an operator replays.
func (q *Queue) Enqueue(ctx context.Context, task notification.Task) error {
	value, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encode task: %w", err)
	}
	record := &kgo.Record{Key: []byte(task.LogID.String()), Value: value}
	q.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			q.logger.Error("produce notification task", "log_id", task.LogID, "error", err)
		}
	})
	return nil
}

func (q *Queue) Run(ctx context.Context, handle func(ctx context.Context, task notification.Task)) error {
	for {
		fetches := q.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			q.logger.Error("fetch notification tasks", "topic", topic, "partition", partition, "error", err)
		})
		fetches.EachRecord(func(record *kgo.Record) {
			var task notification.Task
			if err := json.Unmarshal(record.Value, &task); err != nil {
				q.logger.Error("decode notification task", "offset", record.Offset, "error", err)
				return
			}
			handle(ctx, task)
		})
	}
}

func (q *Queue) Close() {
	q.client.Close()
}

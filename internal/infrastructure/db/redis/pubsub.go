package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ecoquest/sustainability-api/internal/api/metrics"
	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

// TaskEventPublisher announces new tasks on a Redis Pub/Sub channel.
type TaskEventPublisher struct {
	client  *redis.Client
	channel string
}

func NewTaskEventPublisher(client *redis.Client, channel string) *TaskEventPublisher {
	return &TaskEventPublisher{client: client, channel: channel}
}

func (p *TaskEventPublisher) PublishTaskCreated(ctx context.Context, event domain.TaskCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		metrics.TaskEventsTotal.WithLabelValues("publish_failed").Inc()
		return fmt.Errorf("encode task event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		metrics.TaskEventsTotal.WithLabelValues("publish_failed").Inc()
		return fmt.Errorf("publish task event: %w", err)
	}
	metrics.TaskEventsTotal.WithLabelValues("published").Inc()
	return nil
}

// TaskEventSink receives decoded events, e.g. the queue dispatcher.
type TaskEventSink interface {
	Enqueue(ctx context.Context, event domain.TaskCreatedEvent) error
}

// TaskEventSubscriber forwards task-created events from Redis to a sink.
type TaskEventSubscriber struct {
	client  *redis.Client
	channel string
	sink    TaskEventSink
	log     zerolog.Logger

	wg sync.WaitGroup
}

func NewTaskEventSubscriber(client *redis.Client, channel string, sink TaskEventSink, log zerolog.Logger) *TaskEventSubscriber {
	return &TaskEventSubscriber{client: client, channel: channel, sink: sink, log: log}
}

// Start subscribes and waits for Redis to confirm before returning, so events
// published afterwards are not missed. Consumption stops when ctx is cancelled.
func (s *TaskEventSubscriber) Start(ctx context.Context) error {
	sub := s.client.Subscribe(ctx, s.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", s.channel, err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer sub.Close()
		s.consume(ctx, sub.Channel())
	}()

	s.log.Info().Str("channel", s.channel).Msg("task event subscriber started")
	return nil
}

// Wait blocks until the consumer goroutine has exited.
func (s *TaskEventSubscriber) Wait() {
	s.wg.Wait()
}

func (s *TaskEventSubscriber) consume(ctx context.Context, ch <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event domain.TaskCreatedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				metrics.TaskEventsTotal.WithLabelValues("decode_failed").Inc()
				s.log.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping undecodable task event")
				continue
			}
			if err := s.sink.Enqueue(ctx, event); err != nil {
				return
			}
		}
	}
}

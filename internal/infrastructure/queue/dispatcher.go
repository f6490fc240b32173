package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ecoquest/sustainability-api/internal/api/metrics"
	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes task-created events to a fixed set of workers using
// consistent hashing on the user id, guaranteeing per-user event ordering.
type Dispatcher struct {
	workers []chan domain.TaskCreatedEvent
	handler ports.TaskEventHandler
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, handler ports.TaskEventHandler, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.TaskCreatedEvent, numWorkers),
		handler: handler,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.TaskCreatedEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue sends an event to the worker responsible for its user. It blocks
// once that worker's buffer is full, until space frees up or ctx is done.
func (d *Dispatcher) Enqueue(ctx context.Context, event domain.TaskCreatedEvent) error {
	id := d.shardIndex(event.UserID)
	ch := d.workers[id]
	select {
	case ch <- event:
		metrics.TaskEventsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.TaskCreatedEvent) {
	defer d.wg.Done()
	depth := metrics.TaskEventsQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if err := d.handler.HandleTaskCreated(ctx, event); err != nil {
				metrics.TaskEventsTotal.WithLabelValues("handle_failed").Inc()
				d.log.Error().Err(err).
					Str("task_id", event.TaskID).
					Int("worker_id", id).
					Msg("task event handling failed")
				continue
			}
			metrics.TaskEventsTotal.WithLabelValues("handled").Inc()
		}
	}
}

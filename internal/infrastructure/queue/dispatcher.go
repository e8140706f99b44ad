package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/inventory-app/inventory-api/internal/core/ports"
	"github.com/inventory-app/inventory-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Remover deletes a stored image by name.
type Remover interface {
	Remove(ctx context.Context, name string) error
}

// Dispatcher removes discarded product images on a fixed set of workers.
// Names are sharded with a hash so a name is always handled by the same
// worker.
type Dispatcher struct {
	workers []chan string
	remover Remover
	log     zerolog.Logger
}

var _ ports.ImageJanitor = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, remover Remover, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		remover: remover,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules name for removal. It never blocks the caller: when the
// worker's buffer is full the name is dropped and logged.
func (d *Dispatcher) Enqueue(name string) {
	idx := d.shardIndex(name)
	select {
	case d.workers[idx] <- name:
		metrics.ImageCleanupQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.ImageCleanupTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("image_name", name).Int("worker_id", idx).Msg("cleanup queue full, image left on disk")
	}
}

// shardIndex maps an image name deterministically to a worker index.
func (d *Dispatcher) shardIndex(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	depth := metrics.ImageCleanupQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			if err := d.remover.Remove(ctx, name); err != nil {
				metrics.ImageCleanupTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("image_name", name).
					Int("worker_id", id).
					Msg("image removal failed")
				continue
			}
			metrics.ImageCleanupTotal.WithLabelValues("ok").Inc()
		}
	}
}

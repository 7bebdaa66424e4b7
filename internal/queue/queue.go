package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"propscout/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// IngestQueue buffers batches of incoming property records between the API
// and the batch processors. Pushes are non-blocking: a full queue is
// reported to the caller instead of stalling the request.
type IngestQueue struct {
	batches  chan []*models.Property
	done     chan struct{}
	capacity int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.Property) error
}

// NewIngestQueue creates a queue holding up to bufferSize batches.
func NewIngestQueue(bufferSize int, logger *logrus.Logger) *IngestQueue {
	return &IngestQueue{
		batches:  make(chan []*models.Property, bufferSize),
		done:     make(chan struct{}),
		capacity: bufferSize,
		logger:   logger,
		handlers: make([]func([]*models.Property) error, 0),
	}
}

// Push adds a batch to the queue.
func (q *IngestQueue) Push(batch []*models.Property) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	select {
	case q.batches <- batch:
		q.logger.WithField("batch_size", len(batch)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe registers a handler that is called for each batch.
func (q *IngestQueue) Subscribe(handler func([]*models.Property) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins dispatching batches to subscribed handlers. Batches are
// independent, so multiple dispatchers may drain the queue concurrently.
func (q *IngestQueue) Start(dispatchers int) {
	if dispatchers < 1 {
		dispatchers = 1
	}
	for i := 0; i < dispatchers; i++ {
		go q.dispatch()
	}
}

func (q *IngestQueue) dispatch() {
	for {
		select {
		case <-q.done:
			return
		case batch := <-q.batches:
			q.deliver(batch)
		}
	}
}

func (q *IngestQueue) deliver(batch []*models.Property) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close stops the queue and rejects further pushes.
func (q *IngestQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.batches)
	return nil
}

// Len returns the number of batches waiting in the queue.
func (q *IngestQueue) Len() int {
	return len(q.batches)
}

// IsClosed reports whether the queue has been closed.
func (q *IngestQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

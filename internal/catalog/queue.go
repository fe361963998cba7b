package catalog

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"homeworth/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("import queue is full")
	ErrQueueClosed = errors.New("import queue is closed")
)

// ReferenceQueue buffers property reference batches between the admin
// import endpoint and the batch importer workers.
type ReferenceQueue struct {
	items    chan []*models.Property
	done     chan struct{}
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.Property) error
}

// NewReferenceQueue creates a queue buffering up to bufferSize batches.
func NewReferenceQueue(bufferSize int, logger *logrus.Logger) *ReferenceQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &ReferenceQueue{
		items:  make(chan []*models.Property, bufferSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Push enqueues a batch without blocking; a full queue is the caller's
// signal to back off.
func (q *ReferenceQueue) Push(batch []*models.Property) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	select {
	case q.items <- batch:
		q.logger.WithField("batch_size", len(batch)).Debug("Queued reference batch")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe registers a handler invoked for every dequeued batch.
func (q *ReferenceQueue) Subscribe(handler func([]*models.Property) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins draining the queue.
func (q *ReferenceQueue) Start() {
	go q.process()
}

func (q *ReferenceQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case batch := <-q.items:
			q.dispatch(batch)
		}
	}
}

func (q *ReferenceQueue) dispatch(batch []*models.Property) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Reference batch handler failed")
		}
	}
}

// Close stops the queue and rejects further pushes.
func (q *ReferenceQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	close(q.done)
	return nil
}

// Len returns the number of batches waiting in the queue.
func (q *ReferenceQueue) Len() int {
	return len(q.items)
}

// IsClosed reports whether the queue has been closed.
func (q *ReferenceQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const sendTimeout = 10 * time.Second

// Dispatcher queues messages for a single worker. Failures are logged and
// never reach the caller.
type Dispatcher struct {
	sender Sender
	queue  chan Message
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sender Sender, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.sender.Send(ctx, msg); err != nil {
			logrus.WithError(err).WithField("kind", msg.Kind).Error("notification send failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	if d == nil {
		return
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	select {
	case d.queue <- msg:
	default:
		logrus.WithField("kind", msg.Kind).Warn("notification queue full, dropping message")
	}
}

func (d *Dispatcher) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

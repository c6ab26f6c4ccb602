package infrastructure

import (
	"context"
	"sync"

	"github.com/draftea/feature-showcase/shared/events"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	_ events.Publisher  = (*MemoryEventBus)(nil)
	_ events.Subscriber = (*MemoryEventBus)(nil)
)

type memorySubscription struct {
	pattern events.Topic
	handler events.EventHandler
}

// MemoryEventBus delivers events to in-process subscribers on a single
// dispatcher goroutine, in publish order. Publish never waits on handlers, so
// a handler may publish follow-up events into the same bus.
type MemoryEventBus struct {
	logger *zap.Logger

	subMux        sync.RWMutex
	subscriptions []memorySubscription

	mux     sync.Mutex
	pending []*events.Event
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewMemoryEventBus starts a bus whose pending queue is preallocated to capacity
func NewMemoryEventBus(capacity int, logger *zap.Logger) *MemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	if capacity < 0 {
		capacity = 0
	}
	bus := &MemoryEventBus{
		logger:  logger,
		pending: make([]*events.Event, 0, capacity),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go bus.dispatch()
	return bus
}

// Subscribe registers handler for every topic matching eventType
func (b *MemoryEventBus) Subscribe(_ context.Context, eventType string, handler events.EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	b.subMux.Lock()
	defer b.subMux.Unlock()
	b.subscriptions = append(b.subscriptions, memorySubscription{
		pattern: events.Topic(eventType),
		handler: handler,
	})
	return nil
}

// Publish appends events to the pending queue and returns without waiting for delivery
func (b *MemoryEventBus) Publish(ctx context.Context, evts ...*events.Event) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "failed to enqueue event")
	}

	b.mux.Lock()
	if b.closed {
		b.mux.Unlock()
		return errors.New("event bus is closed")
	}
	b.pending = append(b.pending, evts...)
	b.mux.Unlock()

	b.notify()
	return nil
}

// Close delivers what is already queued and stops the dispatcher
func (b *MemoryEventBus) Close() error {
	b.mux.Lock()
	if b.closed {
		b.mux.Unlock()
		return nil
	}
	b.closed = true
	b.mux.Unlock()

	b.notify()
	<-b.done
	return nil
}

func (b *MemoryEventBus) notify() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *MemoryEventBus) dispatch() {
	defer close(b.done)

	for {
		b.mux.Lock()
		batch := b.pending
		b.pending = nil
		closed := b.closed
		b.mux.Unlock()

		if len(batch) == 0 {
			if closed {
				return
			}
			<-b.wake
			continue
		}

		for _, event := range batch {
			b.deliver(event)
		}
	}
}

func (b *MemoryEventBus) deliver(event *events.Event) {
	b.subMux.RLock()
	subscriptions := b.subscriptions
	b.subMux.RUnlock()

	for _, sub := range subscriptions {
		if !event.Topic.Matches(sub.pattern) {
			continue
		}
		if err := sub.handler.Handle(context.Background(), event); err != nil {
			b.logger.Error("event handler failed",
				zap.String("event_id", event.ID.String()),
				zap.String("topic", event.Topic.String()),
				zap.Error(err),
			)
		}
	}
}

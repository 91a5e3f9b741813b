// Package events provides the in-process publish/subscribe bus services use
// to announce domain changes (uploads, toggles, subscriptions). The cache
// layer subscribes for invalidation.
package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event names published by the service layer.
const (
	VideoUploaded       = "video.uploaded"
	VideoDeleted        = "video.deleted"
	LikeToggled         = "like.toggled"
	SubscriptionCreated = "subscription.created"
)

// Event is a domain notification.
type Event struct {
	Name       string
	Payload    map[string]interface{}
	OccurredAt time.Time
}

// Handler consumes an event. Handlers run asynchronously; failures are
// logged and never propagate to the publisher.
type Handler func(ctx context.Context, event Event)

// Bus fans events out to subscribers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewBus creates an event bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event name.
func (b *Bus) Subscribe(name string, handler Handler) {
	b.mu.Lock()
	b.handlers[name] = append(b.handlers[name], handler)
	b.mu.Unlock()
}

// Publish dispatches the event to all subscribers without blocking the
// caller.
func (b *Bus) Publish(name string, payload map[string]interface{}) {
	event := Event{Name: name, Payload: payload, OccurredAt: time.Now()}

	b.mu.RLock()
	handlers := b.handlers[name]
	b.mu.RUnlock()

	for _, handler := range handlers {
		h := handler
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event handler panicked",
						zap.String("event", name), zap.Any("panic", r))
				}
			}()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			h(ctx, event)
		}()
	}
}

// Drain waits for in-flight handlers to finish. Called during shutdown.
func (b *Bus) Drain() {
	b.wg.Wait()
}

// util/event_bus.go

package util

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/blog-api/logging"
)

// Event types published by the services.
const (
	EventPostCreated      = "post.created"
	EventPostUpdated      = "post.updated"
	EventPostDeleted      = "post.deleted"
	EventCategoryCreated  = "category.created"
	EventCategoryUpdated  = "category.updated"
	EventCategoryDeleted  = "category.deleted"
	EventCommentCreated   = "comment.created"
	EventCommentModerated = "comment.moderated"
	EventCommentDeleted   = "comment.deleted"
	EventMediaUploaded    = "media.uploaded"
	EventMediaDeleted     = "media.deleted"
	EventAuthLogin        = "auth.login"
	EventAuthLoginFailed  = "auth.login_failed"
	EventAuthorRegistered = "auth.registered"
)

// Event represents an event in the system
type Event struct {
	Type    string
	Payload interface{}
}

// ChangePayload describes who changed what.
type ChangePayload struct {
	Resource   string
	ResourceID string
	Actor      string
	Details    interface{}
}

// EventHandler is a function that handles an event
type EventHandler func(context.Context, Event) error

// EventBus manages event subscriptions and publications
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	errorChan   chan error
	wg          sync.WaitGroup
}

// NewEventBus creates a new EventBus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]EventHandler),
		errorChan:   make(chan error, 100),
	}
}

// Subscribe adds a new subscriber for a specific event type
func (eb *EventBus) Subscribe(eventType string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers[eventType] = append(eb.subscribers[eventType], handler)
}

// SubscribeAll registers handler for each of eventTypes.
func (eb *EventBus) SubscribeAll(handler EventHandler, eventTypes ...string) {
	for _, t := range eventTypes {
		eb.Subscribe(t, handler)
	}
}

// Publish sends an event to all subscribers. Handlers run detached from the
// request context so they outlive the response.
func (eb *EventBus) Publish(ctx context.Context, eventType string, payload interface{}) {
	eb.mu.RLock()
	handlers := eb.subscribers[eventType]
	eb.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	event := Event{
		Type:    eventType,
		Payload: payload,
	}
	detached := context.WithoutCancel(ctx)

	for _, handler := range handlers {
		eb.wg.Add(1)
		go func(h EventHandler) {
			defer eb.wg.Done()
			if err := h(detached, event); err != nil {
				select {
				case eb.errorChan <- fmt.Errorf("%s handler: %w", eventType, err):
				default:
					logger.Error("Error channel full, logging event handler error",
						zap.Error(err),
						zap.String("eventType", eventType))
				}
			}
		}(handler)
	}
}

// Start begins processing events and handling errors
func (eb *EventBus) Start(ctx context.Context) {
	go eb.processErrors(ctx)
}

// Wait blocks until every in-flight handler returns.
func (eb *EventBus) Wait() {
	eb.wg.Wait()
}

func (eb *EventBus) processErrors(ctx context.Context) {
	for {
		select {
		case err := <-eb.errorChan:
			logger.Error("Event handler error", zap.Error(err))
		case <-ctx.Done():
			return
		}
	}
}

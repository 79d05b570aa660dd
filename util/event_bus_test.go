package util

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dev-mohitbeniwal/blog-api/model"
)

func TestEventBusFanOut(t *testing.T) {
	bus := NewEventBus()
	var calls int64
	handler := func(ctx context.Context, e Event) error {
		atomic.AddInt64(&calls, 1)
		return nil
	}
	bus.Subscribe(EventPostCreated, handler)
	bus.SubscribeAll(handler, EventPostCreated, EventPostDeleted)

	bus.Publish(context.Background(), EventPostCreated, "p")
	bus.Publish(context.Background(), EventPostDeleted, "p")
	bus.Publish(context.Background(), EventMediaDeleted, "nobody listens")
	bus.Wait()

	assert.Equal(t, int64(3), atomic.LoadInt64(&calls))
}

func TestEventBusDetachesFromRequestContext(t *testing.T) {
	bus := NewEventBus()
	var sawCancelled atomic.Bool
	bus.Subscribe(EventCommentCreated, func(ctx context.Context, e Event) error {
		sawCancelled.Store(ctx.Err() != nil)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, EventCommentCreated, nil)
	bus.Wait()

	assert.False(t, sawCancelled.Load())
}

func TestNotificationServiceHandlers(t *testing.T) {
	n := NewNotificationService()
	ctx := context.Background()

	err := n.handleCommentCreated(ctx, Event{Type: EventCommentCreated, Payload: ChangePayload{
		Resource: "comment",
		Details:  model.Comment{ID: 1, PostID: 2, Status: model.CommentStatusPending},
	}})
	assert.NoError(t, err)

	err = n.handleCommentCreated(ctx, Event{Type: EventCommentCreated, Payload: "bogus"})
	assert.Error(t, err)

	err = n.handlePostChange(ctx, Event{Type: EventPostUpdated, Payload: ChangePayload{
		Resource: "post",
		Details:  model.Post{ID: 1, Status: model.PostStatusDraft},
	}})
	assert.NoError(t, err)

	assert.Error(t, n.NotifyCommentPending(ctx, model.Comment{Status: "weird"}))
}

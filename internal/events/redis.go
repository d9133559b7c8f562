package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"library-api/pkg/logger"
)

// RedisBroker publishes and subscribes to new-book events over redis pub/sub
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

// PublishNewBook fires the event after the book has been committed.
// Publish failures are surfaced to the caller; the write itself is not
// rolled back for a lost notification.
func (b *RedisBroker) PublishNewBook(ctx context.Context, event NewBookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal new book event: %w", err)
	}

	if err := b.client.Publish(ctx, NewBookChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish new book event: %w", err)
	}

	return nil
}

// SubscribeNewBooks returns a channel of decoded events plus a cancel
// function. The channel closes when ctx is done or cancel is called.
func (b *RedisBroker) SubscribeNewBooks(ctx context.Context) (<-chan NewBookEvent, func()) {
	sub := b.client.Subscribe(ctx, NewBookChannel)
	out := make(chan NewBookEvent)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var event NewBookEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Error("decode new book event", err)
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() { _ = sub.Close() }
	return out, cancel
}

var _ Publisher = (*RedisBroker)(nil)

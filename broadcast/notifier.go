// Package broadcast carries the "data changed" signal between clients.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering, durability, or retries. The channel transports no chat data:
// consumers react to a notification by re-reading the store, an
// idempotent operation, so a lost or duplicated signal is harmless.
package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const (
	// Channel is the single pub/sub topic of the system.
	Channel = "chat-messages"
	// EventNewMessage tells subscribers a message was created.
	EventNewMessage = "new-message"
)

// Notification is the wire envelope. Payload is a bare refresh flag:
// subscribers never learn what changed, only that something did.
type Notification struct {
	Event   string `json:"event"`
	Refresh bool   `json:"refresh"`
}

type INotifier interface {
	Publish(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan Notification, error)
}

// RedisNotifier implements the signal over a Redis pub/sub channel.
type RedisNotifier struct {
	rdb *redis.Client
	log *slog.Logger
}

func NewRedisNotifier(rdb *redis.Client, log *slog.Logger) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, log: log}
}

// Publish fires a refresh notification at every current subscriber,
// including the publisher itself. Subscribers that are offline miss it
// for good.
func (n *RedisNotifier) Publish(ctx context.Context) error {
	payload, err := json.Marshal(Notification{Event: EventNewMessage, Refresh: true})
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, Channel, payload).Err()
}

// Subscribe delivers notifications until the context ends. Malformed
// payloads and foreign events are dropped, not surfaced.
func (n *RedisNotifier) Subscribe(ctx context.Context) (<-chan Notification, error) {
	pubsub := n.rdb.Subscribe(ctx, Channel)
	// Confirm the subscription before handing the channel out.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan Notification)
	go func() {
		defer close(out)
		defer func() {
			n.log.Debug("Unsubscribing from broadcast channel")
			_ = pubsub.Close()
		}()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var notification Notification
				if err := json.Unmarshal([]byte(msg.Payload), &notification); err != nil {
					n.log.Debug("Dropping malformed notification", "error", err)
					continue
				}
				if notification.Event != EventNewMessage {
					continue
				}
				select {
				case out <- notification:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

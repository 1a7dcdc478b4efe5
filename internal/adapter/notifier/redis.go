// Package notifier bridges the in-process hub to Redis pub/sub so that
// events reach observers connected to other processes.
package notifier

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/qvo1811/restaurant-backend/internal/core/notify"
)

const channelPrefix = "notify:"

// envelope is the wire form of one event. Origin identifies the publishing
// process so relayed messages are not fed back into the hub they came from.
type envelope struct {
	Origin string          `json:"origin"`
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data"`
}

type RedisBridge struct {
	hub    *notify.Hub
	client *redis.Client
	origin string
}

func NewRedisBridge(hub *notify.Hub, client *redis.Client) *RedisBridge {
	return &RedisBridge{
		hub:    hub,
		client: client,
		origin: uuid.NewString(),
	}
}

// Publish delivers locally and broadcasts to peer processes. Both paths are
// best-effort; a Redis failure is logged and never surfaced.
func (b *RedisBridge) Publish(ctx context.Context, group string, ev notify.Event) {
	b.hub.Publish(ctx, group, ev)

	data, err := json.Marshal(ev.Data)
	if err != nil {
		log.Printf("notify: marshal %s payload: %v", ev.Name, err)
		return
	}
	msg, err := json.Marshal(envelope{Origin: b.origin, Event: ev.Name, Data: data})
	if err != nil {
		log.Printf("notify: marshal %s envelope: %v", ev.Name, err)
		return
	}

	if err := b.client.Publish(ctx, channelPrefix+group, msg).Err(); err != nil {
		log.Printf("notify: redis publish %s to %s: %v", ev.Name, group, err)
	}
}

// Run relays events published by peer processes into the local hub. It
// blocks until ctx is cancelled.
func (b *RedisBridge) Run(ctx context.Context) error {
	pubsub := b.client.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.Printf("notify: bad envelope on %s: %v", msg.Channel, err)
				continue
			}
			if env.Origin == b.origin {
				continue
			}

			group := strings.TrimPrefix(msg.Channel, channelPrefix)
			b.hub.Publish(ctx, group, notify.Event{Name: env.Event, Data: env.Data})
		}
	}
}

package notifier

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qvo1811/restaurant-backend/internal/core/notify"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisBridge_RelaysAcrossProcesses(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Two bridges stand in for two server processes.
	hubA := notify.NewHub()
	hubB := notify.NewHub()
	bridgeA := NewRedisBridge(hubA, client)
	bridgeB := NewRedisBridge(hubB, client)

	go bridgeA.Run(ctx)
	go bridgeB.Run(ctx)
	time.Sleep(200 * time.Millisecond) // let subscriptions settle

	subB := hubB.Subscribe(notify.GroupAdmins)
	defer subB.Close()

	bridgeA.Publish(ctx, notify.GroupAdmins, notify.Event{
		Name: notify.EventNewOrderReceived,
		Data: notify.NewOrderData{OrderID: 5},
	})

	select {
	case ev := <-subB.C:
		if ev.Name != notify.EventNewOrderReceived {
			t.Errorf("expected %s, got %s", notify.EventNewOrderReceived, ev.Name)
		}
		var data notify.NewOrderData
		if err := json.Unmarshal(ev.Data.(json.RawMessage), &data); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if data.OrderID != 5 {
			t.Errorf("expected order id 5, got %d", data.OrderID)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("remote hub did not receive the relayed event")
	}
}

func TestRedisBridge_DoesNotEchoOwnEvents(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := notify.NewHub()
	bridge := NewRedisBridge(hub, client)
	go bridge.Run(ctx)
	time.Sleep(200 * time.Millisecond)

	sub := hub.Subscribe(notify.GroupUser(7))
	defer sub.Close()

	bridge.Publish(ctx, notify.GroupUser(7), notify.Event{
		Name: notify.EventOrderStatusChanged,
		Data: notify.StatusChangedData{OrderID: 7, Status: "PREPARING"},
	})

	// Exactly one delivery: the local one. The relayed copy is dropped by
	// origin matching.
	select {
	case <-sub.C:
	case <-time.After(3 * time.Second):
		t.Fatal("local delivery missing")
	}

	select {
	case ev := <-sub.C:
		t.Fatalf("event echoed back through redis: %v", ev)
	case <-time.After(500 * time.Millisecond):
	}
}

package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_FanOutToGroup(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	first := hub.Subscribe(GroupAdmins)
	defer first.Close()
	second := hub.Subscribe(GroupAdmins)
	defer second.Close()

	hub.Publish(ctx, GroupAdmins, Event{Name: EventNewOrderReceived, Data: NewOrderData{OrderID: 5}})

	for _, sub := range []*Subscription{first, second} {
		select {
		case ev := <-sub.C:
			assert.Equal(t, EventNewOrderReceived, ev.Name)
			assert.Equal(t, NewOrderData{OrderID: 5}, ev.Data)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestHub_GroupIsolation(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	user7 := hub.Subscribe(GroupUser(7))
	defer user7.Close()
	user8 := hub.Subscribe(GroupUser(8))
	defer user8.Close()

	hub.Publish(ctx, GroupUser(7), Event{Name: EventOrderStatusChanged, Data: StatusChangedData{OrderID: 1, Status: "PREPARING"}})

	select {
	case ev := <-user7.C:
		assert.Equal(t, EventOrderStatusChanged, ev.Name)
	case <-time.After(time.Second):
		t.Fatal("owner did not receive event")
	}

	select {
	case ev := <-user8.C:
		t.Fatalf("unexpected event for other user: %v", ev)
	default:
	}
}

func TestHub_MultiGroupSubscription(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	// An admin session listens on its own user group and the admin group.
	sub := hub.Subscribe(GroupUser(1), GroupAdmins)
	defer sub.Close()

	hub.Publish(ctx, GroupUser(1), Event{Name: EventOrderStatusChanged})
	hub.Publish(ctx, GroupAdmins, Event{Name: EventDashboardUpdated})

	var names []string
	for range 2 {
		select {
		case ev := <-sub.C:
			names = append(names, ev.Name)
		case <-time.After(time.Second):
			t.Fatal("missing event")
		}
	}
	assert.ElementsMatch(t, []string{EventOrderStatusChanged, EventDashboardUpdated}, names)
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	sub := hub.Subscribe(GroupAdmins)
	defer sub.Close()

	// Nobody drains the subscription; publishing past the buffer must
	// drop events instead of blocking.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			hub.Publish(ctx, GroupAdmins, Event{Name: EventDashboardUpdated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHub_ClosedSubscriptionStopsReceiving(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	sub := hub.Subscribe(GroupAdmins)
	sub.Close()
	sub.Close() // idempotent

	hub.Publish(ctx, GroupAdmins, Event{Name: EventDashboardUpdated})

	_, open := <-sub.C
	require.False(t, open, "channel should be closed")
}

func TestHub_PublishToEmptyGroup(t *testing.T) {
	hub := NewHub()
	// No subscribers and no queueing for offline observers.
	hub.Publish(context.Background(), GroupUser(42), Event{Name: EventOrderStatusChanged})
}

// Package notify fans order events out to connected observers. Delivery is
// best-effort: a publish never blocks the caller, there is no queueing for
// offline subscribers, and a subscriber whose buffer is full misses the event.
package notify

import (
	"context"
	"log"
	"sync"
)

const subscriberBuffer = 16

// Hub routes events to the current subscribers of a group. Groups are keyed
// by GroupUser / GroupAdmins. There is one Hub per process, constructed in
// main and passed by reference; it is never ambient state.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{groups: make(map[string]map[*Subscription]struct{})}
}

// Subscription is one observer's membership in one or more groups. Events
// arrive on C until Close is called.
type Subscription struct {
	C <-chan Event

	hub    *Hub
	ch     chan Event
	groups []string
	once   sync.Once
}

// Subscribe registers an observer for the given groups.
func (h *Hub) Subscribe(groups ...string) *Subscription {
	ch := make(chan Event, subscriberBuffer)
	sub := &Subscription{C: ch, hub: h, ch: ch, groups: groups}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, g := range groups {
		set, ok := h.groups[g]
		if !ok {
			set = make(map[*Subscription]struct{})
			h.groups[g] = set
		}
		set[sub] = struct{}{}
	}
	return sub
}

// Close removes the subscription from all groups and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		for _, g := range s.groups {
			if set, ok := s.hub.groups[g]; ok {
				delete(set, s)
				if len(set) == 0 {
					delete(s.hub.groups, g)
				}
			}
		}
		s.hub.mu.Unlock()
		close(s.ch)
	})
}

// Publish delivers ev to every current subscriber of group. Subscribers that
// cannot accept the event immediately are skipped.
func (h *Hub) Publish(ctx context.Context, group string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.groups[group] {
		select {
		case sub.ch <- ev:
		default:
			log.Printf("notify: dropped %s for slow subscriber in %s", ev.Name, group)
		}
	}
}

package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/qvo1811/restaurant-backend/internal/core/domain"
	"github.com/qvo1811/restaurant-backend/internal/core/notify"
)

// EventsHandler streams order notifications to the caller over SSE. Each
// connection subscribes to the caller's user group; admin sessions also
// join the admin group.
type EventsHandler struct {
	hub *notify.Hub
}

func NewEventsHandler(hub *notify.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	caller, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, fmt.Errorf("%w: missing identity", domain.ErrUnauthenticated))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, fmt.Errorf("streaming unsupported"))
		return
	}

	groups := []string{notify.GroupUser(caller.UserID)}
	if caller.IsAdmin() {
		groups = append(groups, notify.GroupAdmins)
	}
	sub := h.hub.Subscribe(groups...)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-sub.C:
			data, err := json.Marshal(ev.Data)
			if err != nil {
				log.Printf("events: marshal %s: %v", ev.Name, err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data)
			flusher.Flush()
		}
	}
}

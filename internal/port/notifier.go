package port

import (
	"context"

	"github.com/qvo1811/restaurant-backend/internal/core/notify"
)

// Notifier is the publish side of the notification channel. Implementations
// are fire-and-forget: Publish must not block on slow observers and returns
// nothing for the caller to act on.
type Notifier interface {
	Publish(ctx context.Context, group string, ev notify.Event)
}

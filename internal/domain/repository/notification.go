package repository

import (
	"context"
	"hydration/internal/domain/entity"
)

// NotificationBackend schedules, lists and cancels notifications.
type NotificationBackend interface {
	// Schedule registers a notification and returns its identifier.
	Schedule(ctx context.Context, content entity.NotificationContent, trigger entity.Trigger) (string, error)
	// ListScheduled returns every notification currently registered, regardless of tag.
	ListScheduled(ctx context.Context) ([]entity.ScheduledReminder, error)
	// Cancel removes a notification by identifier.
	Cancel(ctx context.Context, identifier string) error
}

// Deliverer hands a fired notification to the user.
type Deliverer interface {
	Deliver(ctx context.Context, content entity.NotificationContent) error
}

package repository

import (
	"context"
	"hydration/internal/domain/entity"
)

// ScheduledReminderRepository persists the notification backend's registry.
type ScheduledReminderRepository interface {
	// FindAll retrieves every registered notification, oldest first.
	FindAll(ctx context.Context) ([]entity.ScheduledReminder, error)
	// FindByID retrieves a notification by its identifier.
	FindByID(ctx context.Context, id string) (*entity.ScheduledReminder, error)
	// Create stores a new notification.
	Create(ctx context.Context, reminder *entity.ScheduledReminder) error
	// Delete removes a notification by identifier. Deleting a missing row is not an error.
	Delete(ctx context.Context, id string) error
}

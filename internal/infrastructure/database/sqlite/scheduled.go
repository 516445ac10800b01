package sqlite

import (
	"context"
	"errors"
	"fmt"
	"hydration/internal/domain/entity"
	"hydration/internal/domain/repository"

	"gorm.io/gorm"
)

type scheduledReminderRepository struct {
	db *gorm.DB
}

// NewScheduledReminderRepository creates a new instance of ScheduledReminderRepository.
func NewScheduledReminderRepository(db *gorm.DB) repository.ScheduledReminderRepository {
	return &scheduledReminderRepository{db: db}
}

// FindAll retrieves every registered notification, oldest first.
func (r *scheduledReminderRepository) FindAll(ctx context.Context) ([]entity.ScheduledReminder, error) {
	var reminders []entity.ScheduledReminder
	if err := r.db.WithContext(ctx).Order("created_at asc, id asc").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("failed to list scheduled notifications: %w", err)
	}
	return reminders, nil
}

// FindByID retrieves a notification by its identifier.
func (r *scheduledReminderRepository) FindByID(ctx context.Context, id string) (*entity.ScheduledReminder, error) {
	var reminder entity.ScheduledReminder
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("scheduled notification %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to find scheduled notification %s: %w", id, err)
	}
	return &reminder, nil
}

// Create stores a new notification.
func (r *scheduledReminderRepository) Create(ctx context.Context, reminder *entity.ScheduledReminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("failed to create scheduled notification %s: %w", reminder.ID, err)
	}
	return nil
}

// Delete removes a notification by identifier.
func (r *scheduledReminderRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ScheduledReminder{}).Error; err != nil {
		return fmt.Errorf("failed to delete scheduled notification %s: %w", id, err)
	}
	return nil
}

package service

import (
	"context"
	"hydration/internal/domain/entity"
)

// ReminderService keeps the notification backend in line with the user's hydration reminder preference.
// Operations never return errors: failures are logged and reported as false.
type ReminderService interface {
	// SetEnabled persists the toggle and reschedules (true) or cancels (false) the reminders.
	SetEnabled(ctx context.Context, enabled bool) bool
	// SetInterval persists a new interval and reschedules if reminders are enabled.
	SetInterval(ctx context.Context, intervalSeconds int) bool
	// Reschedule replaces every tagged notification with a fresh generation for intervalSeconds.
	Reschedule(ctx context.Context, intervalSeconds int, opts ...RescheduleOption) bool
	// CancelAll cancels every tagged notification.
	CancelAll(ctx context.Context) bool
	// CancelTagged cancels every tagged notification and returns the identifiers that could not be cancelled.
	CancelTagged(ctx context.Context) ([]string, error)
	// SendTestNow fires a notification immediately and restarts the recurring countdown.
	SendTestNow(ctx context.Context) bool
	// Sync makes the backend match the loaded preference. Called once on startup.
	Sync(ctx context.Context) bool
	// Preference returns the current preference snapshot.
	Preference() entity.ReminderPreference
	// ListTagged returns the notifications that belong to the reminder.
	ListTagged(ctx context.Context) ([]entity.ScheduledReminder, error)
}

// RescheduleOption customizes a Reschedule call.
type RescheduleOption func(*rescheduleOptions)

type rescheduleOptions struct {
	startDelaySeconds int
	fireImmediately   bool
}

// WithStartDelay sets the wait before the first recurring fire.
// Zero also schedules an immediate notification and pushes the first recurring fire to one full interval.
func WithStartDelay(seconds int) RescheduleOption {
	return func(o *rescheduleOptions) {
		o.startDelaySeconds = seconds
	}
}

// FireImmediately adds a one-shot notification with no delay.
func FireImmediately() RescheduleOption {
	return func(o *rescheduleOptions) {
		o.fireImmediately = true
	}
}

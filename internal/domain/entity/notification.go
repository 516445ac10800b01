package entity

import (
	"hydration/internal/domain/constant"
	"time"
)

// NotificationData is the opaque payload carried by a notification.
type NotificationData struct {
	Type string `json:"type"`
}

// NotificationContent is what the user sees, plus the tag payload.
type NotificationContent struct {
	Title string           `json:"title"`
	Body  string           `json:"body"`
	Data  NotificationData `json:"data"`
}

// Trigger tells the backend when to fire.
type Trigger struct {
	Kind constant.TriggerKind
	// IntervalSeconds is the repeat period. Zero for immediate triggers.
	IntervalSeconds int
	// DelaySeconds is the wait before the first fire of a repeating trigger.
	DelaySeconds int
}

// ImmediateTrigger fires once with no delay.
func ImmediateTrigger() Trigger {
	return Trigger{Kind: constant.TriggerImmediate}
}

// RepeatingTrigger fires after delaySeconds, then every intervalSeconds.
func RepeatingTrigger(intervalSeconds, delaySeconds int) Trigger {
	return Trigger{
		Kind:            constant.TriggerRepeating,
		IntervalSeconds: intervalSeconds,
		DelaySeconds:    delaySeconds,
	}
}

// ScheduledReminder is a notification registered with the backend.
// The backend owns these rows; the reminder service only ever reads them through ListScheduled.
type ScheduledReminder struct {
	ID              string               `gorm:"column:id;primaryKey"`
	Tag             string               `gorm:"column:tag;index"`
	Title           string               `gorm:"column:title"`
	Body            string               `gorm:"column:body;type:text"`
	TriggerKind     constant.TriggerKind `gorm:"column:trigger_kind"`
	IntervalSeconds int                  `gorm:"column:interval_seconds"`
	FirstFireAt     time.Time            `gorm:"column:first_fire_at"`
	CreatedAt       time.Time            `gorm:"column:created_at"`
}

// TableName specifies the table name for the ScheduledReminder entity.
func (ScheduledReminder) TableName() string {
	return "scheduled_notification"
}

// Content rebuilds the notification content from the stored row.
func (r *ScheduledReminder) Content() NotificationContent {
	return NotificationContent{
		Title: r.Title,
		Body:  r.Body,
		Data:  NotificationData{Type: r.Tag},
	}
}

// IsRepeating reports whether the entry fires more than once.
func (r *ScheduledReminder) IsRepeating() bool {
	return r.TriggerKind == constant.TriggerRepeating
}

// Period returns the repeat period.
func (r *ScheduledReminder) Period() time.Duration {
	return time.Duration(r.IntervalSeconds) * time.Second
}

// NextFireAfter returns the first fire time strictly after t.
// Immediate entries return FirstFireAt unchanged.
func (r *ScheduledReminder) NextFireAfter(t time.Time) time.Time {
	if !r.IsRepeating() || r.IntervalSeconds <= 0 || t.Before(r.FirstFireAt) {
		return r.FirstFireAt
	}
	period := r.Period()
	n := t.Sub(r.FirstFireAt)/period + 1
	return r.FirstFireAt.Add(n * period)
}

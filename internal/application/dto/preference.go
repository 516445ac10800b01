package dto

import (
	"hydration/internal/domain/constant"
	"hydration/internal/domain/entity"
	"time"
)

// PreferenceResponse is the DTO describing the reminder settings and what is scheduled.
type PreferenceResponse struct {
	Enabled          bool                `json:"enabled"`
	IntervalSeconds  int                 `json:"interval_seconds"`
	State            string              `json:"state"`
	AllowedIntervals []int               `json:"allowed_intervals"`
	Scheduled        []ScheduledResponse `json:"scheduled"`
}

// ScheduledResponse is the DTO for one backend notification.
type ScheduledResponse struct {
	ID              string    `json:"id"`
	Trigger         string    `json:"trigger"`
	IntervalSeconds int       `json:"interval_seconds,omitempty"`
	FirstFireAt     time.Time `json:"first_fire_at"`
}

// ToPreferenceResponse builds the settings DTO.
func ToPreferenceResponse(p entity.ReminderPreference, scheduled []entity.ScheduledReminder) PreferenceResponse {
	list := make([]ScheduledResponse, len(scheduled))
	for i, r := range scheduled {
		list[i] = ScheduledResponse{
			ID:              r.ID,
			Trigger:         string(r.TriggerKind),
			IntervalSeconds: r.IntervalSeconds,
			FirstFireAt:     r.FirstFireAt,
		}
	}
	return PreferenceResponse{
		Enabled:          p.Enabled,
		IntervalSeconds:  p.IntervalSeconds,
		State:            p.State().String(),
		AllowedIntervals: constant.AllowedIntervals,
		Scheduled:        list,
	}
}

// SetEnabledRequest is the DTO for toggling reminders.
type SetEnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

// SetIntervalRequest is the DTO for changing the reminder interval.
type SetIntervalRequest struct {
	IntervalSeconds int `json:"interval_seconds"`
}

// ErrorResponse is returned with non-2xx statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}

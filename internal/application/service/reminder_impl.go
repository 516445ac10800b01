package service

import (
	"context"
	"fmt"
	"hydration/internal/domain/constant"
	"hydration/internal/domain/entity"
	"hydration/internal/domain/repository"
	appErrors "hydration/internal/pkg/errors"
	"hydration/internal/pkg/logger"
	"hydration/internal/pkg/metrics"
	"sync"
)

type reminderService struct {
	store    repository.KeyValueStore
	backend  repository.NotificationBackend
	recorder metrics.Recorder
	log      logger.Logger

	// mu serializes every public operation so cancel-then-schedule sequences never interleave.
	mu   sync.Mutex
	pref entity.ReminderPreference
}

// NewReminderService creates a new instance of ReminderService implementation.
// pref is the preference loaded at startup (see LoadPreference); the service owns it from here on.
func NewReminderService(
	store repository.KeyValueStore,
	backend repository.NotificationBackend,
	pref entity.ReminderPreference,
	recorder metrics.Recorder,
	log logger.Logger,
) ReminderService {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &reminderService{
		store:    store,
		backend:  backend,
		recorder: recorder,
		log:      log,
		pref:     pref,
	}
}

func reminderContent() entity.NotificationContent {
	return entity.NotificationContent{
		Title: constant.ReminderTitle,
		Body:  constant.ReminderBody,
		Data:  entity.NotificationData{Type: constant.ReminderTag},
	}
}

// SetEnabled persists the toggle and reschedules or cancels the reminders.
func (s *reminderService) SetEnabled(ctx context.Context, enabled bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := saveEnabled(ctx, s.store, enabled); err != nil {
		s.log.Error(fmt.Sprintf("Failed to persist hydration enabled=%t", enabled), err)
		return false
	}
	s.pref.Enabled = enabled
	s.log.Info(fmt.Sprintf("Hydration reminders now %s", s.pref))

	if enabled {
		return s.reschedule(ctx, s.pref.IntervalSeconds, newRescheduleOptions())
	}
	return s.cancelAll(ctx)
}

// SetInterval persists a new interval and reschedules if reminders are enabled.
func (s *reminderService) SetInterval(ctx context.Context, intervalSeconds int) bool {
	if intervalSeconds <= 0 {
		s.log.Warn(fmt.Sprintf("Rejected hydration interval %d: %v", intervalSeconds, appErrors.ErrInvalidInterval))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := saveInterval(ctx, s.store, intervalSeconds); err != nil {
		s.log.Error(fmt.Sprintf("Failed to persist hydration interval %d", intervalSeconds), err)
		return false
	}
	s.pref.IntervalSeconds = intervalSeconds

	if !s.pref.Enabled {
		s.log.Info(fmt.Sprintf("Hydration interval set to %ds while disabled; nothing scheduled", intervalSeconds))
		return true
	}
	return s.reschedule(ctx, intervalSeconds, newRescheduleOptions())
}

// Reschedule replaces every tagged notification with a fresh generation for intervalSeconds.
func (s *reminderService) Reschedule(ctx context.Context, intervalSeconds int, opts ...RescheduleOption) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reschedule(ctx, intervalSeconds, newRescheduleOptions(opts...))
}

// CancelAll cancels every tagged notification.
func (s *reminderService) CancelAll(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelAll(ctx)
}

// CancelTagged cancels every tagged notification and returns the identifiers that could not be cancelled.
func (s *reminderService) CancelTagged(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelTagged(ctx)
}

// SendTestNow fires a notification immediately.
// When reminders are enabled this is a full reschedule, so the recurring countdown restarts too.
// When disabled only the immediate notification is scheduled.
func (s *reminderService) SendTestNow(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pref.Enabled {
		if _, err := s.backend.Schedule(ctx, reminderContent(), entity.ImmediateTrigger()); err != nil {
			s.log.Error("Failed to schedule test hydration notification", fmt.Errorf("%w: %v", appErrors.ErrBackend, err))
			return false
		}
		s.log.Info("Scheduled test hydration notification (reminders disabled, no recurring entry)")
		return true
	}
	return s.reschedule(ctx, s.pref.IntervalSeconds, newRescheduleOptions(WithStartDelay(0), FireImmediately()))
}

// Sync makes the backend match the loaded preference.
// An enabled preference whose recurring entry survived a restart with the same period is left alone.
func (s *reminderService) Sync(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pref.Enabled {
		return s.cancelAll(ctx)
	}

	tagged, err := s.listTagged(ctx)
	if err != nil {
		s.log.Error("Failed to list hydration notifications during sync", err)
		return false
	}
	repeating := 0
	matching := false
	for i := range tagged {
		if tagged[i].IsRepeating() {
			repeating++
			matching = tagged[i].IntervalSeconds == s.pref.IntervalSeconds
		}
	}
	if repeating == 1 && matching {
		s.log.Info(fmt.Sprintf("Hydration schedule already matches %s", s.pref))
		return true
	}
	s.log.Info(fmt.Sprintf("Hydration schedule out of date (%d recurring entries), rescheduling", repeating))
	return s.reschedule(ctx, s.pref.IntervalSeconds, newRescheduleOptions())
}

// Preference returns the current preference snapshot.
func (s *reminderService) Preference() entity.ReminderPreference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pref
}

// ListTagged returns the notifications that belong to the reminder.
func (s *reminderService) ListTagged(ctx context.Context) ([]entity.ScheduledReminder, error) {
	return s.listTagged(ctx)
}

func newRescheduleOptions(opts ...RescheduleOption) rescheduleOptions {
	o := rescheduleOptions{startDelaySeconds: constant.DefaultStartDelaySeconds}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// reschedule must be called with s.mu held.
func (s *reminderService) reschedule(ctx context.Context, intervalSeconds int, o rescheduleOptions) (ok bool) {
	defer func() { s.recorder.IncReschedule(metrics.ResultLabel(ok)) }()

	if intervalSeconds <= 0 {
		s.log.Warn(fmt.Sprintf("Refusing to reschedule with interval %d: %v", intervalSeconds, appErrors.ErrInvalidInterval))
		return false
	}

	if err := saveInterval(ctx, s.store, intervalSeconds); err != nil {
		s.log.Error(fmt.Sprintf("Failed to persist hydration interval %d before rescheduling", intervalSeconds), err)
		return false
	}
	s.pref.IntervalSeconds = intervalSeconds

	failed, err := s.cancelTagged(ctx)
	if err != nil {
		// Without a listing we cannot cancel; scheduling now would leave two generations alive.
		s.log.Error("Failed to list hydration notifications before rescheduling", err)
		return false
	}
	ok = len(failed) == 0

	content := reminderContent()
	if o.fireImmediately || o.startDelaySeconds == 0 {
		if _, err := s.backend.Schedule(ctx, content, entity.ImmediateTrigger()); err != nil {
			s.log.Error("Failed to schedule immediate hydration notification", fmt.Errorf("%w: %v", appErrors.ErrBackend, err))
			ok = false
		}
	}

	delay := o.startDelaySeconds
	if delay <= 0 {
		delay = intervalSeconds
	}
	id, err := s.backend.Schedule(ctx, content, entity.RepeatingTrigger(intervalSeconds, delay))
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to schedule recurring hydration notification every %ds", intervalSeconds), fmt.Errorf("%w: %v", appErrors.ErrBackend, err))
		return false
	}

	s.log.Info(fmt.Sprintf("Scheduled hydration notification %s every %ds, first in %ds (immediate=%t)",
		id, intervalSeconds, delay, o.fireImmediately || o.startDelaySeconds == 0))
	return ok
}

// cancelAll must be called with s.mu held.
func (s *reminderService) cancelAll(ctx context.Context) bool {
	failed, err := s.cancelTagged(ctx)
	ok := err == nil && len(failed) == 0
	s.recorder.IncCancel(metrics.ResultLabel(ok))
	if err != nil {
		s.log.Error("Failed to list hydration notifications for cancellation", err)
	}
	return ok
}

// cancelTagged cancels every tagged entry, continuing past individual failures.
// The returned error is non-nil only when the backend could not be listed.
func (s *reminderService) cancelTagged(ctx context.Context) ([]string, error) {
	tagged, err := s.listTagged(ctx)
	if err != nil {
		return nil, err
	}

	var failed []string
	for i := range tagged {
		id := tagged[i].ID
		if err := s.backend.Cancel(ctx, id); err != nil {
			s.log.Error(fmt.Sprintf("Failed to cancel hydration notification %s", id), fmt.Errorf("%w: %v", appErrors.ErrBackend, err))
			failed = append(failed, id)
			continue
		}
		s.log.Debug(fmt.Sprintf("Cancelled hydration notification %s", id))
	}
	if len(tagged) > 0 {
		s.log.Info(fmt.Sprintf("Cancelled %d of %d hydration notifications", len(tagged)-len(failed), len(tagged)))
	}
	return failed, nil
}

func (s *reminderService) listTagged(ctx context.Context) ([]entity.ScheduledReminder, error) {
	all, err := s.backend.ListScheduled(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrBackend, err)
	}
	tagged := make([]entity.ScheduledReminder, 0, len(all))
	for _, r := range all {
		if r.Tag == constant.ReminderTag {
			tagged = append(tagged, r)
		}
	}
	return tagged, nil
}

package handler

import (
	"context"
	"hydration/internal/application/service"
	"hydration/internal/domain/constant"
	"hydration/internal/domain/entity"
	appErrors "hydration/internal/pkg/errors"
	"sync"
	"time"
)

type fakeReminderService struct {
	mu       sync.Mutex
	pref     entity.ReminderPreference
	fail     bool
	failList bool
	calls    []string
}

var _ service.ReminderService = (*fakeReminderService)(nil)

func newFakeReminderService() *fakeReminderService {
	return &fakeReminderService{pref: entity.DefaultPreference()}
}

func (f *fakeReminderService) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeReminderService) SetEnabled(_ context.Context, enabled bool) bool {
	f.record("SetEnabled")
	if f.fail {
		return false
	}
	f.pref.Enabled = enabled
	return true
}

func (f *fakeReminderService) SetInterval(_ context.Context, intervalSeconds int) bool {
	f.record("SetInterval")
	if f.fail || intervalSeconds <= 0 {
		return false
	}
	f.pref.IntervalSeconds = intervalSeconds
	return true
}

func (f *fakeReminderService) Reschedule(context.Context, int, ...service.RescheduleOption) bool {
	f.record("Reschedule")
	return !f.fail
}

func (f *fakeReminderService) CancelAll(context.Context) bool {
	f.record("CancelAll")
	return !f.fail
}

func (f *fakeReminderService) CancelTagged(context.Context) ([]string, error) {
	f.record("CancelTagged")
	return nil, nil
}

func (f *fakeReminderService) SendTestNow(context.Context) bool {
	f.record("SendTestNow")
	return !f.fail
}

func (f *fakeReminderService) Sync(context.Context) bool {
	f.record("Sync")
	return !f.fail
}

func (f *fakeReminderService) Preference() entity.ReminderPreference {
	return f.pref
}

func (f *fakeReminderService) ListTagged(context.Context) ([]entity.ScheduledReminder, error) {
	if f.failList {
		return nil, appErrors.ErrBackend
	}
	if !f.pref.Enabled {
		return nil, nil
	}
	return []entity.ScheduledReminder{{
		ID:              "r-1",
		Tag:             constant.ReminderTag,
		TriggerKind:     constant.TriggerRepeating,
		IntervalSeconds: f.pref.IntervalSeconds,
		FirstFireAt:     time.Now().Add(time.Minute),
	}}, nil
}

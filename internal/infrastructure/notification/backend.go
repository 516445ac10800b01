package notification

import (
	"context"
	"errors"
	"fmt"
	"hydration/internal/domain/constant"
	"hydration/internal/domain/entity"
	"hydration/internal/domain/repository"
	"hydration/internal/infrastructure/scheduler"
	appErrors "hydration/internal/pkg/errors"
	"hydration/internal/pkg/logger"
	"hydration/internal/pkg/metrics"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// deliveryTimeout bounds a single delivery attempt from a cron job.
const deliveryTimeout = 15 * time.Second

// LocalBackend is a NotificationBackend that keeps its registry in a repository
// and fires entries from the in-process cron scheduler.
type LocalBackend struct {
	repo      repository.ScheduledReminderRepository
	cron      *scheduler.Scheduler
	deliverer repository.Deliverer
	recorder  metrics.Recorder
	log       logger.Logger
	now       func() time.Time

	mu   sync.Mutex
	jobs map[string]cron.EntryID // identifier -> cron entry
}

// NewLocalBackend creates a LocalBackend. Call Restore once before use to re-arm persisted entries.
func NewLocalBackend(
	repo repository.ScheduledReminderRepository,
	cronScheduler *scheduler.Scheduler,
	deliverer repository.Deliverer,
	recorder metrics.Recorder,
	log logger.Logger,
) *LocalBackend {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &LocalBackend{
		repo:      repo,
		cron:      cronScheduler,
		deliverer: deliverer,
		recorder:  recorder,
		log:       log,
		now:       time.Now,
		jobs:      make(map[string]cron.EntryID),
	}
}

// Schedule registers a notification and returns its identifier.
func (b *LocalBackend) Schedule(ctx context.Context, content entity.NotificationContent, trigger entity.Trigger) (string, error) {
	now := b.now()
	row := &entity.ScheduledReminder{
		ID:          uuid.NewString(),
		Tag:         content.Data.Type,
		Title:       content.Title,
		Body:        content.Body,
		TriggerKind: trigger.Kind,
		CreatedAt:   now,
	}

	switch trigger.Kind {
	case constant.TriggerImmediate:
		row.FirstFireAt = now
	case constant.TriggerRepeating:
		if trigger.IntervalSeconds <= 0 {
			return "", fmt.Errorf("%w: repeating trigger needs a positive interval, got %d", appErrors.ErrInvalidTrigger, trigger.IntervalSeconds)
		}
		delay := trigger.DelaySeconds
		if delay < 0 {
			delay = 0
		}
		row.IntervalSeconds = trigger.IntervalSeconds
		row.FirstFireAt = now.Add(time.Duration(delay) * time.Second)
	default:
		return "", fmt.Errorf("%w: %q", appErrors.ErrInvalidTrigger, trigger.Kind)
	}

	if err := b.repo.Create(ctx, row); err != nil {
		return "", fmt.Errorf("%w: %v", appErrors.ErrBackend, err)
	}
	b.arm(*row)
	b.log.Debug(fmt.Sprintf("Scheduled %s notification %s (tag=%s) first at %v", row.TriggerKind, row.ID, row.Tag, row.FirstFireAt))
	return row.ID, nil
}

// ListScheduled returns every notification currently registered.
func (b *LocalBackend) ListScheduled(ctx context.Context) ([]entity.ScheduledReminder, error) {
	rows, err := b.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrBackend, err)
	}
	return rows, nil
}

// Cancel removes a notification by identifier.
func (b *LocalBackend) Cancel(ctx context.Context, identifier string) error {
	if _, err := b.repo.FindByID(ctx, identifier); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			b.disarm(identifier)
			return fmt.Errorf("%w: %s", appErrors.ErrNotificationNotFound, identifier)
		}
		return fmt.Errorf("%w: %v", appErrors.ErrBackend, err)
	}
	if err := b.repo.Delete(ctx, identifier); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrBackend, err)
	}
	b.disarm(identifier)
	b.log.Debug(fmt.Sprintf("Cancelled notification %s", identifier))
	return nil
}

// Restore re-arms persisted repeating notifications on their original phase and
// drops immediate ones, which are stale once the process that scheduled them is gone.
func (b *LocalBackend) Restore(ctx context.Context) error {
	rows, err := b.repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrBackend, err)
	}

	restored, dropped := 0, 0
	for _, row := range rows {
		if row.IsRepeating() && row.IntervalSeconds > 0 {
			b.arm(row)
			restored++
			continue
		}
		if err := b.repo.Delete(ctx, row.ID); err != nil {
			b.log.Error(fmt.Sprintf("Failed to drop stale notification %s during restore", row.ID), err)
			continue
		}
		dropped++
	}

	b.log.Info(fmt.Sprintf("Notification restore complete. Restored: %d, Dropped stale: %d", restored, dropped))
	return nil
}

// Armed reports how many notifications currently have a cron entry.
func (b *LocalBackend) Armed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.jobs)
}

func (b *LocalBackend) arm(row entity.ScheduledReminder) {
	var schedule cron.Schedule
	if row.IsRepeating() {
		schedule = scheduler.Every(row.FirstFireAt, row.Period())
	} else {
		schedule = scheduler.Once(row.FirstFireAt)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if old, ok := b.jobs[row.ID]; ok {
		b.cron.RemoveJob(old)
	}
	b.jobs[row.ID] = b.cron.AddSchedule(schedule, func() { b.fire(row) })
	b.recorder.SetScheduled(len(b.jobs))
}

func (b *LocalBackend) disarm(identifier string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if entryID, ok := b.jobs[identifier]; ok {
		b.cron.RemoveJob(entryID)
		delete(b.jobs, identifier)
	}
	b.recorder.SetScheduled(len(b.jobs))
}

// fire runs on the cron goroutine.
func (b *LocalBackend) fire(row entity.ScheduledReminder) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	b.log.Info(fmt.Sprintf("Firing %s notification %s (tag=%s)", row.TriggerKind, row.ID, row.Tag))
	b.recorder.IncFired(string(row.TriggerKind))
	if err := b.deliverer.Deliver(ctx, row.Content()); err != nil {
		b.log.Error(fmt.Sprintf("Failed to deliver notification %s", row.ID), fmt.Errorf("%w: %v", appErrors.ErrDelivery, err))
	}

	if row.IsRepeating() {
		return
	}
	// One-shot entries leave the registry once fired.
	if err := b.repo.Delete(ctx, row.ID); err != nil {
		b.log.Error(fmt.Sprintf("Failed to remove fired notification %s", row.ID), err)
	}
	b.disarm(row.ID)
}

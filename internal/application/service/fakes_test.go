package service

import (
	"context"
	"errors"
	"fmt"
	"hydration/internal/domain/constant"
	"hydration/internal/domain/entity"
	"sort"
	"sync"
	"time"
)

var errInjected = errors.New("injected failure")

type memoryStore struct {
	mu      sync.Mutex
	data    map[string]string
	failGet bool
	failSet bool
	sets    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]string{}}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return "", false, errInjected
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errInjected
	}
	m.sets++
	m.data[key] = value
	return nil
}

type fakeBackend struct {
	mu           sync.Mutex
	seq          int
	entries      map[string]entity.ScheduledReminder
	failSchedule bool
	failList     bool
	failCancel   map[string]bool
	cancelled    []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		entries:    map[string]entity.ScheduledReminder{},
		failCancel: map[string]bool{},
	}
}

func (b *fakeBackend) Schedule(_ context.Context, content entity.NotificationContent, trigger entity.Trigger) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failSchedule {
		return "", errInjected
	}
	b.seq++
	id := fmt.Sprintf("n-%03d", b.seq)
	now := time.Now()
	first := now
	if trigger.Kind == constant.TriggerRepeating {
		first = now.Add(time.Duration(trigger.DelaySeconds) * time.Second)
	}
	b.entries[id] = entity.ScheduledReminder{
		ID:              id,
		Tag:             content.Data.Type,
		Title:           content.Title,
		Body:            content.Body,
		TriggerKind:     trigger.Kind,
		IntervalSeconds: trigger.IntervalSeconds,
		FirstFireAt:     first,
		CreatedAt:       now,
	}
	return id, nil
}

func (b *fakeBackend) ListScheduled(context.Context) ([]entity.ScheduledReminder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failList {
		return nil, errInjected
	}
	out := make([]entity.ScheduledReminder, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *fakeBackend) Cancel(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failCancel[id] {
		return errInjected
	}
	if _, ok := b.entries[id]; !ok {
		return errors.New("unknown id")
	}
	delete(b.entries, id)
	b.cancelled = append(b.cancelled, id)
	return nil
}

// put inserts an entry directly, bypassing Schedule.
func (b *fakeBackend) put(r entity.ScheduledReminder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[r.ID] = r
}

func (b *fakeBackend) tagged() []entity.ScheduledReminder {
	all, _ := b.ListScheduled(context.Background())
	var out []entity.ScheduledReminder
	for _, r := range all {
		if r.Tag == constant.ReminderTag {
			out = append(out, r)
		}
	}
	return out
}

func (b *fakeBackend) taggedOfKind(kind constant.TriggerKind) []entity.ScheduledReminder {
	var out []entity.ScheduledReminder
	for _, r := range b.tagged() {
		if r.TriggerKind == kind {
			out = append(out, r)
		}
	}
	return out
}

type countingRecorder struct {
	mu          sync.Mutex
	reschedules map[string]int
	cancels     map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{reschedules: map[string]int{}, cancels: map[string]int{}}
}

func (c *countingRecorder) IncReschedule(result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reschedules[result]++
}

func (c *countingRecorder) IncCancel(result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancels[result]++
}

func (c *countingRecorder) IncFired(string)  {}
func (c *countingRecorder) SetScheduled(int) {}

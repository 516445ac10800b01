package scheduler

import (
	"fmt"
	"sync"
	"time"
)

// OnceSchedule fires a single time at At and never again.
// It implements cron.Schedule.
type OnceSchedule struct {
	At time.Time

	mu   sync.Mutex
	used bool
}

// Once returns a schedule firing once at t. A t in the past fires as soon as the job is added.
func Once(t time.Time) *OnceSchedule {
	return &OnceSchedule{At: t}
}

// Next returns At the first time it is asked and the zero time afterwards,
// which tells cron the entry will not run again.
func (s *OnceSchedule) Next(time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.used {
		return time.Time{}
	}
	s.used = true
	return s.At
}

func (s *OnceSchedule) String() string {
	return fmt.Sprintf("once@%s", s.At.Format(time.RFC3339))
}

// EverySchedule fires at First and then every Period.
// Unlike cron.ConstantDelaySchedule the phase is anchored on First, so a restored
// schedule keeps firing on the same boundaries it had before a restart.
type EverySchedule struct {
	First  time.Time
	Period time.Duration
}

// Every returns a schedule anchored on first. Periods under one second are raised to one second.
func Every(first time.Time, period time.Duration) EverySchedule {
	if period < time.Second {
		period = time.Second
	}
	return EverySchedule{First: first, Period: period}
}

// Next returns the first fire time strictly after t.
func (s EverySchedule) Next(t time.Time) time.Time {
	if t.Before(s.First) {
		return s.First
	}
	n := t.Sub(s.First)/s.Period + 1
	return s.First.Add(n * s.Period)
}

func (s EverySchedule) String() string {
	return fmt.Sprintf("every %s from %s", s.Period, s.First.Format(time.RFC3339))
}

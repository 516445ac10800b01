package main

import (
	"hydration/internal/application/dto"
	appErrors "hydration/internal/pkg/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateInterval(t *testing.T) {
	assert.NoError(t, validateInterval(90*time.Minute))
	assert.NoError(t, validateInterval(4*time.Hour))
	assert.ErrorIs(t, validateInterval(45*time.Minute), appErrors.ErrInvalidInterval)
	assert.ErrorIs(t, validateInterval(0), appErrors.ErrInvalidInterval)
	assert.ErrorIs(t, validateInterval(time.Hour+500*time.Millisecond), appErrors.ErrInvalidInterval)
}

func TestFormatStatus(t *testing.T) {
	out := formatStatus(&dto.PreferenceResponse{
		State:           "enabled",
		IntervalSeconds: 5400,
		Scheduled: []dto.ScheduledResponse{
			{ID: "a", Trigger: "repeating", IntervalSeconds: 5400, FirstFireAt: time.Now()},
			{ID: "b", Trigger: "immediate", FirstFireAt: time.Now()},
		},
	})
	assert.Contains(t, out, "state:    enabled")
	assert.Contains(t, out, "interval: 1h30m0s")
	assert.Contains(t, out, "- a repeating every 1h30m0s from")
	assert.Contains(t, out, "- b immediate at")
}

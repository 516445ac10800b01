package line

import (
	"hydration/internal/domain/constant"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalLabel(t *testing.T) {
	assert.Equal(t, "30分", IntervalLabel(1800))
	assert.Equal(t, "1時間", IntervalLabel(3600))
	assert.Equal(t, "1時間30分", IntervalLabel(5400))
	assert.Equal(t, "4時間", IntervalLabel(14400))
}

func TestParseIntervalLabel_RoundTripsAllowedIntervals(t *testing.T) {
	for _, v := range constant.AllowedIntervals {
		got, ok := ParseIntervalLabel(IntervalLabel(v))
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
	_, ok := ParseIntervalLabel("5分")
	assert.False(t, ok)
}

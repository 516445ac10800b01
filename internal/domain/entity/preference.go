package entity

import (
	"fmt"
	"hydration/internal/domain/constant"
	"time"
)

// ReminderPreference is the user's reminder choice. One per installation.
type ReminderPreference struct {
	Enabled         bool
	IntervalSeconds int
}

// DefaultPreference is applied on first run.
func DefaultPreference() ReminderPreference {
	return ReminderPreference{
		Enabled:         true,
		IntervalSeconds: constant.DefaultIntervalSeconds,
	}
}

// State maps the preference onto the feature state machine.
func (p ReminderPreference) State() constant.FeatureState {
	if p.Enabled {
		return constant.StateEnabled
	}
	return constant.StateDisabled
}

// Interval returns the interval as a duration.
func (p ReminderPreference) Interval() time.Duration {
	return time.Duration(p.IntervalSeconds) * time.Second
}

func (p ReminderPreference) String() string {
	if !p.Enabled {
		return "Disabled"
	}
	return fmt.Sprintf("Enabled(%d)", p.IntervalSeconds)
}

// KeyValue is a row of the durable key-value store.
type KeyValue struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value;type:text"`
}

// TableName specifies the table name for the KeyValue entity.
func (KeyValue) TableName() string {
	return "kv_store"
}

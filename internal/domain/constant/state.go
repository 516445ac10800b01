package constant

// FeatureState is the per-installation reminder state.
type FeatureState int

const (
	// StateDisabled means no hydration notification is scheduled.
	StateDisabled FeatureState = iota
	// StateEnabled means one generation of hydration notifications is scheduled.
	StateEnabled
)

func (s FeatureState) String() string {
	switch s {
	case StateEnabled:
		return "enabled"
	default:
		return "disabled"
	}
}

// TriggerKind tells the notification backend when an entry fires.
type TriggerKind string

const (
	// TriggerImmediate fires once, with no delay.
	TriggerImmediate TriggerKind = "immediate"
	// TriggerRepeating fires after a first delay and then every interval until cancelled.
	TriggerRepeating TriggerKind = "repeating"
)

package constant

// ReminderTag classifies backend notifications as belonging to the hydration reminder.
const ReminderTag = "hydration"

// Store keys for the persisted preference.
const (
	KeyHydrationEnabled  = "hydration_enabled"
	KeyHydrationInterval = "hydration_interval"
)

const (
	// DefaultIntervalSeconds is used when no interval has been persisted yet (2h).
	DefaultIntervalSeconds = 7200
	// DefaultStartDelaySeconds is the first-fire delay when a caller does not pass one.
	DefaultStartDelaySeconds = 60
)

// Notification text sent with every reminder.
const (
	ReminderTitle = "💧 水分補給の時間です"
	ReminderBody  = "コップ一杯の水を飲みましょう。"
)

// AllowedIntervals lists the interval choices offered by the settings surfaces:
// 30m, 1h, 1h30, 2h, 3h, 4h. The scheduler itself accepts any positive value.
var AllowedIntervals = []int{1800, 3600, 5400, 7200, 10800, 14400}

// IsAllowedInterval reports whether seconds is one of AllowedIntervals.
func IsAllowedInterval(seconds int) bool {
	for _, v := range AllowedIntervals {
		if v == seconds {
			return true
		}
	}
	return false
}

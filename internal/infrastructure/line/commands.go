package line

import (
	"fmt"
	"hydration/internal/domain/constant"
)

// Chat commands understood by the settings conversation.
const (
	CommandSettings = "設定"
	CommandOn       = "オン"
	CommandOff      = "オフ"
	CommandTest     = "テスト"
	CommandHelp     = "使い方"
)

// IntervalLabel renders an interval in seconds as a chip label, e.g. 5400 -> "1時間30分".
func IntervalLabel(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%d時間%d分", h, m)
	case h > 0:
		return fmt.Sprintf("%d時間", h)
	default:
		return fmt.Sprintf("%d分", m)
	}
}

// ParseIntervalLabel maps a chip label back to one of the allowed intervals.
func ParseIntervalLabel(label string) (int, bool) {
	for _, v := range constant.AllowedIntervals {
		if IntervalLabel(v) == label {
			return v, true
		}
	}
	return 0, false
}

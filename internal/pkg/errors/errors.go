package errors

import "errors"

// Custom application errors
var (
	// Store read/write failed
	ErrPersistence = errors.New("設定の保存または読み込みに失敗しました")
	// Schedule, list or cancel on the notification backend failed
	ErrBackend = errors.New("通知バックエンドの操作に失敗しました")
	// Cancel of an identifier the backend does not know
	ErrNotificationNotFound = errors.New("通知が見つかりません")
	// Interval must be a positive number of seconds
	ErrInvalidInterval = errors.New("無効な通知間隔です")
	// Trigger kind not understood by the backend
	ErrInvalidTrigger = errors.New("無効なトリガーです")
	// LINE or NATS delivery failed
	ErrDelivery = errors.New("通知の配信に失敗しました")
	// Settings change attempted by someone other than the owner
	ErrUnauthorized = errors.New("この操作は許可されていません")
	// Bad environment configuration
	ErrInvalidConfiguration = errors.New("設定値が無効です")
)

package delivery

import (
	"context"
	"fmt"
	"hydration/internal/domain/entity"
	"hydration/internal/pkg/logger"
)

// LogDeliverer writes fired notifications to the log. Used in development.
type LogDeliverer struct {
	log logger.Logger
}

// NewLogDeliverer creates a LogDeliverer.
func NewLogDeliverer(log logger.Logger) *LogDeliverer {
	return &LogDeliverer{log: log}
}

// Deliver logs content.
func (d *LogDeliverer) Deliver(_ context.Context, content entity.NotificationContent) error {
	d.log.Info(fmt.Sprintf("🔔 [%s] %s %s", content.Data.Type, content.Title, content.Body))
	return nil
}

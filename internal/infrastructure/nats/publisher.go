package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"hydration/internal/domain/entity"
	"time"
)

// FiredEvent is the JSON published when a notification fires.
type FiredEvent struct {
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	Type    string    `json:"type"`
	FiredAt time.Time `json:"fired_at"`
}

// Publisher delivers fired notifications as NATS messages, for a device gateway to pick up.
type Publisher struct {
	conn    *Conn
	subject string
	now     func() time.Time
}

// NewPublisher creates a Publisher on subject.
func NewPublisher(conn *Conn, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject, now: time.Now}
}

// Deliver publishes content on the configured subject.
func (p *Publisher) Deliver(_ context.Context, content entity.NotificationContent) error {
	data, err := encodeFired(content, p.now())
	if err != nil {
		return err
	}
	if err := p.conn.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

func encodeFired(content entity.NotificationContent, at time.Time) ([]byte, error) {
	data, err := json.Marshal(FiredEvent{
		Title:   content.Title,
		Body:    content.Body,
		Type:    content.Data.Type,
		FiredAt: at.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal fired event: %w", err)
	}
	return data, nil
}

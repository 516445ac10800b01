package nats

import (
	"context"
	"fmt"
	"hydration/internal/pkg/logger"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Conn holds a NATS connection and its JetStream context.
type Conn struct {
	nc  *nats.Conn
	js  jetstream.JetStream
	log logger.Logger
}

// Connect dials url and creates a JetStream context.
func Connect(url string, log logger.Logger) (*Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("hydration-reminder"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	log.Info(fmt.Sprintf("Connected to NATS at %s", url))
	return &Conn{nc: nc, js: js, log: log}, nil
}

// KeyValue gets the bucket, creating it when it does not exist yet.
func (c *Conn) KeyValue(ctx context.Context, bucket string) (jetstream.KeyValue, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	kv, err := c.js.KeyValue(ctx, bucket)
	if err == nil {
		return kv, nil
	}

	kv, err = c.js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "Hydration reminder settings",
		History:     1, // Keep only latest value
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create KV bucket %s: %w", bucket, err)
	}
	c.log.Info(fmt.Sprintf("Created NATS KV bucket %s", bucket))
	return kv, nil
}

// Close drains and closes the connection.
func (c *Conn) Close() error {
	if c.nc == nil {
		return nil
	}
	if err := c.nc.Drain(); err != nil {
		c.nc.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}

package nats

import (
	"context"
	"errors"
	"fmt"
	"hydration/internal/domain/repository"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
)

// keyValueStore implements repository.KeyValueStore on a JetStream KV bucket.
type keyValueStore struct {
	kv jetstream.KeyValue
}

// NewKeyValueStore wraps a NATS KV bucket.
func NewKeyValueStore(kv jetstream.KeyValue) repository.KeyValueStore {
	return &keyValueStore{kv: kv}
}

// Get retrieves a value by key.
func (s *keyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	entry, err := s.kv.Get(ctx, bucketKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return string(entry.Value()), true, nil
}

// Set stores value at key.
func (s *keyValueStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.kv.Put(ctx, bucketKey(key), []byte(value)); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// bucketKey maps store keys onto the NATS key alphabet, which has no room for spaces or wildcards.
func bucketKey(key string) string {
	return strings.NewReplacer(" ", "_", "*", "_", ">", "_").Replace(key)
}

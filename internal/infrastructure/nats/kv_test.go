package nats

import (
	"context"
	"errors"
	"hydration/internal/domain/constant"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntry struct {
	jetstream.KeyValueEntry
	value []byte
}

func (e fakeEntry) Value() []byte { return e.value }

// fakeBucket implements the subset of jetstream.KeyValue the store uses.
type fakeBucket struct {
	jetstream.KeyValue
	data    map[string][]byte
	deleted map[string]bool
	fail    bool
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{data: map[string][]byte{}, deleted: map[string]bool{}}
}

func (b *fakeBucket) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	if b.fail {
		return nil, errors.New("nats: timeout")
	}
	if b.deleted[key] {
		return nil, jetstream.ErrKeyDeleted
	}
	v, ok := b.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}
	return fakeEntry{value: v}, nil
}

func (b *fakeBucket) Put(_ context.Context, key string, value []byte) (uint64, error) {
	if b.fail {
		return 0, errors.New("nats: timeout")
	}
	b.data[key] = value
	delete(b.deleted, key)
	return uint64(len(b.data)), nil
}

func TestKeyValueStore(t *testing.T) {
	ctx := context.Background()
	bucket := newFakeBucket()
	store := NewKeyValueStore(bucket)

	_, found, err := store.Get(ctx, constant.KeyHydrationInterval)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, constant.KeyHydrationInterval, "3600"))
	v, found, err := store.Get(ctx, constant.KeyHydrationInterval)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "3600", v)

	bucket.deleted[constant.KeyHydrationEnabled] = true
	_, found, err = store.Get(ctx, constant.KeyHydrationEnabled)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKeyValueStore_Failure(t *testing.T) {
	bucket := newFakeBucket()
	bucket.fail = true
	store := NewKeyValueStore(bucket)

	_, _, err := store.Get(context.Background(), constant.KeyHydrationEnabled)
	assert.Error(t, err)
	assert.Error(t, store.Set(context.Background(), constant.KeyHydrationEnabled, "true"))
}

package sqlite

import (
	"context"
	"errors"
	"hydration/internal/domain/constant"
	"hydration/internal/domain/entity"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), gormlogger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestKeyValueStore(t *testing.T) {
	ctx := context.Background()
	store := NewKeyValueStore(openTestDB(t))

	_, found, err := store.Get(ctx, constant.KeyHydrationInterval)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, constant.KeyHydrationInterval, "3600"))
	require.NoError(t, store.Set(ctx, constant.KeyHydrationInterval, "1800"))

	v, found, err := store.Get(ctx, constant.KeyHydrationInterval)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1800", v)
}

func TestKeyValueStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	db, err := Open(path, gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, NewKeyValueStore(db).Set(ctx, constant.KeyHydrationEnabled, "false"))
	require.NoError(t, Close(db))

	db, err = Open(path, gormlogger.Silent)
	require.NoError(t, err)
	defer Close(db)
	v, found, err := NewKeyValueStore(db).Get(ctx, constant.KeyHydrationEnabled)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "false", v)
}

func TestScheduledReminderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewScheduledReminderRepository(openTestDB(t))
	now := time.Now().UTC().Truncate(time.Second)

	first := &entity.ScheduledReminder{
		ID:              "a",
		Tag:             constant.ReminderTag,
		Title:           "t",
		Body:            "b",
		TriggerKind:     constant.TriggerRepeating,
		IntervalSeconds: 3600,
		FirstFireAt:     now.Add(time.Minute),
		CreatedAt:       now,
	}
	second := &entity.ScheduledReminder{
		ID:          "b",
		Tag:         constant.ReminderTag,
		TriggerKind: constant.TriggerImmediate,
		FirstFireAt: now,
		CreatedAt:   now.Add(time.Second),
	}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, 3600, all[0].IntervalSeconds)
	assert.True(t, all[0].IsRepeating())
	assert.True(t, all[0].FirstFireAt.Equal(first.FirstFireAt))

	got, err := repo.FindByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, constant.TriggerImmediate, got.TriggerKind)

	require.NoError(t, repo.Delete(ctx, "b"))
	require.NoError(t, repo.Delete(ctx, "b"))
	_, err = repo.FindByID(ctx, "b")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

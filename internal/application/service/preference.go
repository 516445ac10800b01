package service

import (
	"context"
	"fmt"
	"hydration/internal/domain/constant"
	"hydration/internal/domain/entity"
	"hydration/internal/domain/repository"
	appErrors "hydration/internal/pkg/errors"
	"hydration/internal/pkg/logger"
	"strconv"
)

// LoadPreference reads the persisted preference, writing defaults for any key that is absent or unreadable.
// It returns the defaults together with an ErrPersistence error when the store itself fails.
func LoadPreference(ctx context.Context, store repository.KeyValueStore, log logger.Logger) (entity.ReminderPreference, error) {
	pref := entity.DefaultPreference()

	enabledStr, found, err := store.Get(ctx, constant.KeyHydrationEnabled)
	if err != nil {
		return pref, fmt.Errorf("%w: %v", appErrors.ErrPersistence, err)
	}
	enabledOK := false
	if found {
		if v, parseErr := strconv.ParseBool(enabledStr); parseErr == nil {
			pref.Enabled = v
			enabledOK = true
		} else {
			log.Warn(fmt.Sprintf("Stored %s=%q is not a boolean, resetting to default", constant.KeyHydrationEnabled, enabledStr))
		}
	}
	if !enabledOK {
		if err := saveEnabled(ctx, store, pref.Enabled); err != nil {
			return pref, err
		}
	}

	intervalStr, found, err := store.Get(ctx, constant.KeyHydrationInterval)
	if err != nil {
		return pref, fmt.Errorf("%w: %v", appErrors.ErrPersistence, err)
	}
	intervalOK := false
	if found {
		if v, parseErr := strconv.Atoi(intervalStr); parseErr == nil && v > 0 {
			pref.IntervalSeconds = v
			intervalOK = true
		} else {
			log.Warn(fmt.Sprintf("Stored %s=%q is not a positive integer, resetting to default", constant.KeyHydrationInterval, intervalStr))
		}
	}
	if !intervalOK {
		if err := saveInterval(ctx, store, pref.IntervalSeconds); err != nil {
			return pref, err
		}
	}

	log.Info(fmt.Sprintf("Loaded hydration preference: %s", pref))
	return pref, nil
}

func saveEnabled(ctx context.Context, store repository.KeyValueStore, enabled bool) error {
	if err := store.Set(ctx, constant.KeyHydrationEnabled, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrPersistence, err)
	}
	return nil
}

func saveInterval(ctx context.Context, store repository.KeyValueStore, intervalSeconds int) error {
	if err := store.Set(ctx, constant.KeyHydrationInterval, strconv.Itoa(intervalSeconds)); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrPersistence, err)
	}
	return nil
}

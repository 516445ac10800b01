package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	appErrors "hydration/internal/pkg/errors"
)

// Store drivers
const (
	StoreSQLite = "sqlite"
	StoreNATS   = "nats"
)

// Delivery channels
const (
	DeliveryLINE = "line"
	DeliveryNATS = "nats"
	DeliveryLog  = "log"
)

// Config holds the service configuration read from the environment.
type Config struct {
	Port     int
	DBPath   string
	LogLevel string

	StoreDriver  string
	NATSURL      string
	NATSKVBucket string
	NATSSubject  string

	Delivery           string
	ChannelSecret      string
	ChannelAccessToken string
	LineTargetUserID   string
	LineOwnerUserID    string
}

// Load reads the configuration from environment variables, applying defaults.
// A .env file, if present, has already been loaded by godotenv/autoload in main.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads the configuration through getenv.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:               8080,
		DBPath:             valueOr(getenv("DB_PATH"), "hydration.db"),
		LogLevel:           valueOr(getenv("LOG_LEVEL"), "info"),
		StoreDriver:        strings.ToLower(valueOr(getenv("STORE_DRIVER"), StoreSQLite)),
		NATSURL:            valueOr(getenv("NATS_URL"), "nats://127.0.0.1:4222"),
		NATSKVBucket:       valueOr(getenv("NATS_KV_BUCKET"), "hydration-settings"),
		NATSSubject:        valueOr(getenv("NATS_SUBJECT"), "hydration.reminders.fired"),
		Delivery:           strings.ToLower(valueOr(getenv("DELIVERY"), DeliveryLog)),
		ChannelSecret:      getenv("CHANNEL_SECRET"),
		ChannelAccessToken: getenv("CHANNEL_ACCESS_TOKEN"),
		LineTargetUserID:   getenv("LINE_TARGET_USER_ID"),
		LineOwnerUserID:    getenv("LINE_OWNER_USER_ID"),
	}

	if portStr := getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return nil, fmt.Errorf("%w: PORT=%q", appErrors.ErrInvalidConfiguration, portStr)
		}
		cfg.Port = port
	}

	switch cfg.StoreDriver {
	case StoreSQLite, StoreNATS:
	default:
		return nil, fmt.Errorf("%w: STORE_DRIVER=%q", appErrors.ErrInvalidConfiguration, cfg.StoreDriver)
	}

	switch cfg.Delivery {
	case DeliveryLog, DeliveryNATS:
	case DeliveryLINE:
		if cfg.LineTargetUserID == "" {
			return nil, fmt.Errorf("%w: DELIVERY=line requires LINE_TARGET_USER_ID", appErrors.ErrInvalidConfiguration)
		}
	default:
		return nil, fmt.Errorf("%w: DELIVERY=%q", appErrors.ErrInvalidConfiguration, cfg.Delivery)
	}

	return cfg, nil
}

// LineEnabled reports whether LINE credentials are present.
func (c *Config) LineEnabled() bool {
	return c.ChannelSecret != "" && c.ChannelAccessToken != ""
}

// NeedsNATS reports whether any component is configured to use NATS.
func (c *Config) NeedsNATS() bool {
	return c.StoreDriver == StoreNATS || c.Delivery == DeliveryNATS
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

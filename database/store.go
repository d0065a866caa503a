package database

import (
	"log/slog"
	"time"
)

// StoreOption configures a ContactStore or NoteStore
type StoreOption func(*storeConfig)

type storeConfig struct {
	now func() time.Time
}

// WithClock replaces the time source used for createdAt and updatedAt
func WithClock(now func() time.Time) StoreOption {
	return func(c *storeConfig) {
		c.now = now
	}
}

func newStoreConfig(opts []StoreOption) storeConfig {
	cfg := storeConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// timestamp returns the current time at storage precision
func (c storeConfig) timestamp() time.Time {
	return c.now().UTC().Truncate(time.Millisecond)
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// Package store opens the backend selected by the environment. The handle
// is created on first use so a process without credentials still starts;
// the configuration error surfaces at the first store access instead.
package store

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"

	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/store/memstore"
	"github.com/Zachkp/portfolio/internal/store/rest"
	"github.com/Zachkp/portfolio/internal/store/sqlite"
)

const (
	DriverREST   = "rest"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config selects and configures the backend.
type Config struct {
	Driver     string `env:"STORE_DRIVER" envDefault:"rest"`
	URL        string `env:"SUPABASE_URL"`
	AnonKey    string `env:"SUPABASE_ANON_KEY"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"portfolio.db"`
}

// ConfigError reports missing or unusable store settings.
type ConfigError struct {
	Missing []string
	Err     error
}

func (e *ConfigError) Error() string {
	if len(e.Missing) > 0 {
		return "store env vars missing: set " + strings.Join(e.Missing, " and ")
	}
	return fmt.Sprintf("store config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, &ConfigError{Err: fmt.Errorf("parse env: %w", err)}
	}
	return cfg, nil
}

// Open builds the backend described by cfg.
func Open(cfg Config) (domain.Store, error) {
	switch cfg.Driver {
	case DriverREST, "":
		var missing []string
		if cfg.URL == "" {
			missing = append(missing, "SUPABASE_URL")
		}
		if cfg.AnonKey == "" {
			missing = append(missing, "SUPABASE_ANON_KEY")
		}
		if len(missing) > 0 {
			return nil, &ConfigError{Missing: missing}
		}
		c, err := rest.New(cfg.URL, cfg.AnonKey, nil)
		if err != nil {
			return nil, &ConfigError{Err: err}
		}
		return c, nil
	case DriverSQLite:
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return repo, nil
	case DriverMemory:
		return memstore.New(), nil
	}
	return nil, &ConfigError{Err: fmt.Errorf("unknown driver %q", cfg.Driver)}
}

// Handle lazily opens one store and hands it to every caller.
type Handle struct {
	mu    sync.Mutex
	load  func() (Config, error)
	store domain.Store
}

// NewHandle returns a handle that reads its configuration with load on
// first use. A failed open is not cached, so the next call tries again.
func NewHandle(load func() (Config, error)) *Handle {
	return &Handle{load: load}
}

// Get returns the store, opening it on first call.
func (h *Handle) Get() (domain.Store, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.store != nil {
		return h.store, nil
	}

	cfg, err := h.load()
	if err != nil {
		return nil, err
	}
	st, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	h.store = st
	return st, nil
}

// Close releases the store if it was opened and holds resources.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}
	h.store = nil
	return nil
}

var defaultHandle = NewHandle(LoadConfig)

// Default returns the process-wide store, opening it from the environment
// on first call.
func Default() (domain.Store, error) {
	return defaultHandle.Get()
}

// CloseDefault closes the process-wide store.
func CloseDefault() error {
	return defaultHandle.Close()
}

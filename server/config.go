// Package server exposes the Shrdlite session server: an HTTP API, backed
// by a persistence layer, wrapping the planning core of internal/blocks in
// short-lived named sessions.
package server

import (
	"fmt"
	"os"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/dao/sqlite"
)

const (
	MaxSecretSize = 64
	MinSecretSize = 32

	// DefaultSearchBudget bounds how long a single utterance's A* search
	// may run before the pipeline gives up.
	DefaultSearchBudget = 5 * time.Second
)

// Config is a configuration for a Shrdlite session server.
type Config struct {
	// TokenSecret signs session JWTs. If not provided, a default (insecure)
	// key is used.
	TokenSecret []byte

	// DataDir is the directory the sqlite persistence layer stores its
	// database file in.
	DataDir string

	// WorldDir is the directory POST /api/v1/sessions loads named world
	// fixtures from.
	WorldDir string

	// SearchBudget bounds how long a single utterance's A* search may run.
	// If zero, DefaultSearchBudget is used.
	SearchBudget time.Duration

	// UnauthDelayMillis is additional time to wait, in milliseconds, before
	// responding to a request that was unauthorized or unauthenticated.
	// Defaults to 1000ms; a negative value disables the delay.
	UnauthDelayMillis int
}

// UnauthDelay returns the configured delay as a time.Duration.
func (cfg Config) UnauthDelay() time.Duration {
	if cfg.UnauthDelayMillis < 1 {
		return 0
	}
	return time.Millisecond * time.Duration(cfg.UnauthDelayMillis)
}

// FillDefaults returns a copy of cfg with unset fields set to their
// defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg

	if newCFG.TokenSecret == nil {
		newCFG.TokenSecret = []byte("DEFAULT_TOKEN_SECRET-DO_NOT_USE_IN_PROD!")
	}
	if newCFG.DataDir == "" {
		newCFG.DataDir = "."
	}
	if newCFG.WorldDir == "" {
		newCFG.WorldDir = "."
	}
	if newCFG.SearchBudget == 0 {
		newCFG.SearchBudget = DefaultSearchBudget
	}
	if newCFG.UnauthDelayMillis == 0 {
		newCFG.UnauthDelayMillis = 1000
	}

	return newCFG
}

// Validate returns an error if cfg has invalid field values. Call it on the
// return value of FillDefaults if defaults are in use.
func (cfg Config) Validate() error {
	if len(cfg.TokenSecret) < MinSecretSize {
		return fmt.Errorf("token secret: must be at least %d bytes, but is %d", MinSecretSize, len(cfg.TokenSecret))
	}
	if len(cfg.TokenSecret) > MaxSecretSize {
		return fmt.Errorf("token secret: must be no more than %d bytes, but is %d", MaxSecretSize, len(cfg.TokenSecret))
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("data dir must be set")
	}
	if cfg.WorldDir == "" {
		return fmt.Errorf("world dir must be set")
	}
	return nil
}

// Connect opens the sqlite store rooted at cfg.DataDir, creating it if
// needed.
func (cfg Config) Connect() (dao.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0770); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := sqlite.NewDatastore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite: %w", err)
	}
	return st, nil
}

// Package store persists PointLedger state in a key-value layer.
//
// Every value is a YAML document stored as text under one of the State* keys.
// Reads never fail the caller: a missing key or a value that cannot be decoded
// falls back to the default for that key.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// State keys, one per persisted record.
const (
	KeyTasks           = "tasks"
	KeyCompleted       = "completed"
	KeyTimedMinutes    = "timed"
	KeyProtein         = "protein"
	KeyApplications    = "applications"
	KeyWorkout         = "workout"
	KeyExerciseHistory = "exercise-history"
	KeyExercises       = "exercises"
	KeyHistory         = "history"
	KeyLastSaved       = "last-saved"
)

// Keys lists every state key.
var Keys = []string{
	KeyTasks, KeyCompleted, KeyTimedMinutes, KeyProtein, KeyApplications,
	KeyWorkout, KeyExerciseHistory, KeyExercises, KeyHistory, KeyLastSaved,
}

// Store is a textual key-value layer.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown store backend")

// Open builds the configured backend.
func Open(ctx context.Context, opts Options, log *zap.Logger) (Store, error) {
	var (
		s   Store
		err error
	)
	switch opts.Backend {
	case BackendFile, "":
		s, err = OpenFile(opts.Path, log)
	case BackendSQLite:
		s, err = OpenSQLite(ctx, opts.Path)
	case BackendRedis:
		s, err = OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix)
	case BackendMemory:
		s = NewMemory()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Encode renders v as the textual value stored under a key.
func Encode(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}
	return string(data), nil
}

// Load decodes the value stored under key, or returns def when the key is
// missing, the read fails, or the value is malformed.
func Load[T any](ctx context.Context, s Store, log *zap.Logger, key string, def T) T {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		log.Warn("state read failed, using default", zap.String("key", key), zap.Error(err))
		return def
	}
	if !ok || raw == "" {
		return def
	}
	var out T
	if err := yaml.Unmarshal([]byte(raw), &out); err != nil {
		log.Warn("state decode failed, using default", zap.String("key", key), zap.Error(err))
		return def
	}
	return out
}

// Package store persists each entity collection as one JSON value per key.
// Plain reads are fail-soft: a missing key, a backend error or a malformed
// value all yield the caller's default. Writes overwrite the whole collection.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/jobpilot/internal/observability"
	"go.uber.org/zap"
)

// Collection keys.
const (
	KeyCVs               = "cvs"
	KeyApplications      = "applications"
	KeyGenerationHistory = "generationHistory"
	KeyChatMessages      = "chatMessages"
	KeyEmailTemplates    = "emailTemplates"
	KeyUserName          = "userName"
	KeyTheme             = "theme"
)

// Backend is a raw key-value store.
type Backend interface {
	// Load returns the stored value and whether the key exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Store reads and writes typed collections on a Backend.
type Store struct {
	backend Backend
	logger  *zap.Logger
}

// New wraps backend. A nil logger disables logging.
func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger}
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Remove deletes a key.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key, or def when it is missing or unreadable.
func Get[T any](ctx context.Context, s *Store, key string, def T) T {
	v, err := load(ctx, s, key, def)
	if err != nil {
		s.logger.Debug("store read failed, using default", zap.String("key", key), zap.Error(err))
		return def
	}
	return v
}

// Set overwrites the value stored under key.
func Set[T any](ctx context.Context, s *Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		observability.ObserveStoreWrite(key, err)
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	err = s.backend.Save(ctx, key, raw)
	observability.ObserveStoreWrite(key, err)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Update reads key, applies fn and writes the result back. Unlike Get, a
// backend read error aborts the update. A missing key or a malformed value
// starts from def. Concurrent updates of the same key are not serialized;
// the last write wins.
func Update[T any](ctx context.Context, s *Store, key string, def T, fn func(T) (T, error)) (T, error) {
	var zero T
	cur, err := load(ctx, s, key, def)
	if err != nil {
		return zero, err
	}
	next, err := fn(cur)
	if err != nil {
		return zero, err
	}
	if err := Set(ctx, s, key, next); err != nil {
		return zero, err
	}
	return next, nil
}

// load is Get without the fail-soft handling of backend errors.
func load[T any](ctx context.Context, s *Store, key string, def T) (T, error) {
	raw, ok, err := s.backend.Load(ctx, key)
	if err != nil {
		return def, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Debug("stored value is not valid JSON, using default", zap.String("key", key), zap.Error(err))
		return def, nil
	}
	return v, nil
}

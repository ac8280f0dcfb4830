// Package storage provides the key/value stores behind the cart hand-off
// channels: a TTL'd in-memory store for tab-scoped data and SQL-backed stores
// for data that must survive a reload.
package storage

import (
	"context"
	"errors"
	"log/slog"
)

// ErrUnavailable is returned by stores that cannot be reached.
var ErrUnavailable = errors.New("storage unavailable")

// Store is a string key/value store.
type Store interface {
	// Get reports the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type scoped struct {
	inner  Store
	prefix string
}

// Scoped namespaces every key of inner under owner.
func Scoped(inner Store, owner string) Store {
	return &scoped{inner: inner, prefix: owner + ":"}
}

func (s *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, s.prefix+key)
}

type safe struct {
	inner Store
	name  string
	log   *slog.Logger
}

// Safe absorbs every failure of inner. Reads that fail report the key as
// absent and failed writes are dropped; both are logged at warn level.
func Safe(inner Store, name string, log *slog.Logger) Store {
	if log == nil {
		log = slog.Default()
	}
	return &safe{inner: inner, name: name, log: log}
}

func (s *safe) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.inner.Get(ctx, key)
	if err != nil {
		s.log.Warn("storage read failed", slog.String("store", s.name), slog.String("key", key), slog.Any("err", err))
		return "", false, nil
	}
	return v, ok, nil
}

func (s *safe) Set(ctx context.Context, key, value string) error {
	if err := s.inner.Set(ctx, key, value); err != nil {
		s.log.Warn("storage write failed", slog.String("store", s.name), slog.String("key", key), slog.Any("err", err))
	}
	return nil
}

func (s *safe) Remove(ctx context.Context, key string) error {
	if err := s.inner.Remove(ctx, key); err != nil {
		s.log.Warn("storage remove failed", slog.String("store", s.name), slog.String("key", key), slog.Any("err", err))
	}
	return nil
}

// Disabled is a Store that refuses every operation, standing in for a
// browser with storage turned off.
type Disabled struct{}

func (Disabled) Get(context.Context, string) (string, bool, error) { return "", false, ErrUnavailable }
func (Disabled) Set(context.Context, string, string) error         { return ErrUnavailable }
func (Disabled) Remove(context.Context, string) error              { return ErrUnavailable }

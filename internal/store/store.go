// Package store implements the portal's record stores: each entity collection
// is one JSON document under a well-known key, read and rewritten whole on
// every operation. Collections stay small (dozens to low hundreds of rows),
// so linear scans are fine.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"zenweb/internal/storage"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrLocationInUse = errors.New("location is referenced by hardware")
)

// ValidationError reports a rejected field; handlers map it to a 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NewID generates a record id: unix milliseconds plus a short random suffix.
func NewID(now time.Time) string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + hex.EncodeToString(b)
}

// loadSlice reads a collection. Absent or unparseable payloads load as an
// empty collection; there is no deeper corruption recovery.
func loadSlice[T any](ctx context.Context, kv storage.KV, key string) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return []T{}, nil
	}
	return out, nil
}

func saveSlice[T any](ctx context.Context, kv storage.KV, key string, items []T) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, b)
}

// loadDoc reads a singleton record; ok is false when absent or unparseable.
func loadDoc[T any](ctx context.Context, kv storage.KV, key string) (T, bool, error) {
	var doc T
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return doc, false, err
	}
	if len(raw) == 0 {
		return doc, false, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		var zero T
		return zero, false, nil
	}
	return doc, true, nil
}

func saveDoc[T any](ctx context.Context, kv storage.KV, key string, doc T) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, b)
}

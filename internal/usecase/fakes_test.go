package usecase

import (
	"context"
	"errors"
	"sync"

	"resume-studio/internal/storage"
)

var errUnavailable = errors.New("storage unavailable")

// flakyKV wraps a memory scope and fails the operations switched on.
type flakyKV struct {
	mu      sync.Mutex
	inner   storage.KeyValue
	failGet bool
	failSet bool
	failDel bool
}

func newFlakyKV() *flakyKV {
	return &flakyKV{inner: storage.Scope(storage.NewMemory(), "test")}
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return "", errUnavailable
	}
	return f.inner.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return errUnavailable
	}
	return f.inner.Set(ctx, key, value)
}

func (f *flakyKV) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failDel
	f.mu.Unlock()
	if fail {
		return errUnavailable
	}
	return f.inner.Remove(ctx, key)
}

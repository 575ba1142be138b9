package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"resume-studio/internal/model"
	"resume-studio/internal/storage"
	apperrors "resume-studio/pkg/errors"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	DefaultSessionCapacity = 1000
	DefaultSessionIdleTTL  = 30 * time.Minute
)

// Sessions keeps loaded engines in a bounded cache keyed by session id.
// An engine evicted for size or idleness reloads from storage on the next
// request; unsaved preview edits it held are dropped.
type Sessions struct {
	mu       sync.Mutex
	store    storage.Store
	logger   *zap.Logger
	capacity int
	idleTTL  time.Duration
	engines  *expirable.LRU[string, *Engine]
}

type SessionsOption func(*Sessions)

func WithSessionCapacity(n int) SessionsOption {
	return func(s *Sessions) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func WithSessionIdleTTL(d time.Duration) SessionsOption {
	return func(s *Sessions) {
		if d > 0 {
			s.idleTTL = d
		}
	}
}

func NewSessions(store storage.Store, logger *zap.Logger, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		store:    store,
		logger:   logger,
		capacity: DefaultSessionCapacity,
		idleTTL:  DefaultSessionIdleTTL,
	}
	for _, o := range opts {
		o(s)
	}
	s.engines = expirable.NewLRU[string, *Engine](s.capacity, func(id string, _ *Engine) {
		s.logger.Debug("Session engine evicted", zap.String("session", id))
	}, s.idleTTL)
	return s
}

// KeyValue returns the storage scope of a session.
func (s *Sessions) KeyValue(id string) storage.KeyValue {
	return storage.Scope(s.store, id)
}

// Engine returns the session's engine, loading it on first use. Every
// call restarts the engine's idle timer.
func (s *Sessions) Engine(ctx context.Context, id string) *Engine {
	s.mu.Lock()
	e, ok := s.engines.Get(id)
	if !ok {
		e = NewEngine(s.KeyValue(id), s.logger.With(zap.String("session", id)))
	}
	s.engines.Add(id, e)
	s.mu.Unlock()

	e.EnsureLoaded(ctx)
	return e
}

// Len is the number of cached engines.
func (s *Sessions) Len() int {
	return s.engines.Len()
}

func (s *Sessions) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engines.Remove(id)
}

// Achievements returns the session's achievement book.
func (s *Sessions) Achievements(id string) *AchievementBook {
	return NewAchievementBook(s.KeyValue(id), s.logger.With(zap.String("session", id)))
}

// Start runs the initial creation flow: name and email must be present;
// the personal info and the default customization are written and the
// session's engine is reloaded from them.
func (s *Sessions) Start(ctx context.Context, id string, info model.PersonalInfo) (*model.StartValidation, error) {
	v := model.ValidateStart(info)
	if !v.Valid {
		return v, nil
	}

	kv := s.KeyValue(id)
	for _, item := range []struct {
		key   string
		value interface{}
	}{
		{model.KeyPersonalInfo, info},
		{model.KeyCustomization, model.DefaultCustomization()},
	} {
		b, err := json.Marshal(item.value)
		if err != nil {
			return v, apperrors.NewStorageError("failed to encode value", "start", item.key, err)
		}
		if err := kv.Set(ctx, item.key, string(b)); err != nil {
			s.logger.Error("Failed to create resume", zap.String("session", id), zap.Error(err))
			return v, apperrors.NewStorageError("failed to create resume", "start", item.key, err)
		}
	}

	s.Forget(id)
	s.Engine(ctx, id)
	s.logger.Info("Resume created", zap.String("session", id))
	return v, nil
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"resume-studio/internal/model"
	"resume-studio/internal/storage"
	"resume-studio/internal/summary"
	apperrors "resume-studio/pkg/errors"

	"go.uber.org/zap"
)

type State int

const (
	StateLoadingDefaults State = iota
	StateReady
)

// Engine owns the current PersonalInfo and ResumeCustomization of one
// session. Updates replace values whole; nothing is merged.
type Engine struct {
	loadMu  sync.Mutex
	mu      sync.Mutex
	kv      storage.KeyValue
	logger  *zap.Logger
	session model.Session
	state   State
}

// NewEngine starts with defaults. Call Load to read the persisted values.
func NewEngine(kv storage.KeyValue, logger *zap.Logger) *Engine {
	return &Engine{
		kv:      kv,
		logger:  logger,
		session: model.DefaultSession(),
		state:   StateLoadingDefaults,
	}
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Load reads both persisted values. A missing, unreadable or malformed
// value falls back to its default; the problem is logged and never
// returned.
func (e *Engine) Load(ctx context.Context) model.Session {
	info := model.DefaultPersonalInfo()
	if raw, ok := e.read(ctx, model.KeyPersonalInfo); ok {
		if v, err := model.DecodePersonalInfo(raw); err != nil {
			e.logger.Warn("Stored personal info is malformed, using defaults", zap.Error(err))
		} else {
			info = v
		}
	}

	cust := model.DefaultCustomization()
	if raw, ok := e.read(ctx, model.KeyCustomization); ok {
		if v, err := model.DecodeCustomization(raw); err != nil {
			e.logger.Warn("Stored customization is malformed, using defaults", zap.Error(err))
		} else {
			cust = v
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = model.Session{PersonalInfo: info, Customization: cust}
	e.state = StateReady
	return e.session
}

// EnsureLoaded runs Load once, the first time the engine is used.
func (e *Engine) EnsureLoaded(ctx context.Context) {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()
	if e.State() == StateLoadingDefaults {
		e.Load(ctx)
	}
}

func (e *Engine) read(ctx context.Context, key string) ([]byte, bool) {
	raw, err := e.kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		e.logger.Warn("Failed to read stored value, using defaults", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return []byte(raw), true
}

// Snapshot returns a copy of the current values.
func (e *Engine) Snapshot() model.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// UpdateCustomization replaces the customization. The caller passes the
// complete next value.
func (e *Engine) UpdateCustomization(c model.ResumeCustomization) error {
	if err := c.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Customization = c
	return nil
}

func (e *Engine) UpdatePersonalInfo(info model.PersonalInfo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.PersonalInfo = info
}

// Save persists both values. On failure the in-memory values are kept and
// a StorageError is returned.
func (e *Engine) Save(ctx context.Context) error {
	s := e.Snapshot()
	if err := e.write(ctx, model.KeyPersonalInfo, s.PersonalInfo); err != nil {
		return err
	}
	if err := e.write(ctx, model.KeyCustomization, s.Customization); err != nil {
		return err
	}
	e.logger.Debug("Resume saved")
	return nil
}

func (e *Engine) write(ctx context.Context, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return apperrors.NewStorageError("failed to encode value", "save", key, err)
	}
	if err := e.kv.Set(ctx, key, string(b)); err != nil {
		e.logger.Error("Failed to persist value", zap.String("key", key), zap.Error(err))
		return apperrors.NewStorageError("failed to save resume", "save", key, err)
	}
	return nil
}

// Reset restores both defaults and clears both persisted entries. The
// in-memory reset happens even if clearing storage fails.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	e.session = model.DefaultSession()
	e.state = StateReady
	e.mu.Unlock()

	for _, key := range []string{model.KeyPersonalInfo, model.KeyCustomization} {
		if err := e.kv.Remove(ctx, key); err != nil {
			e.logger.Error("Failed to clear stored value", zap.String("key", key), zap.Error(err))
			return apperrors.NewStorageError("failed to reset resume", "reset", key, err)
		}
	}
	return nil
}

// GenerateSummaryInto replaces the summary with a generated one and
// persists the personal info right away.
func (e *Engine) GenerateSummaryInto(ctx context.Context) (string, error) {
	e.mu.Lock()
	text := summary.Generate(e.session.PersonalInfo, summary.Options{})
	e.session.PersonalInfo.Summary = text
	info := e.session.PersonalInfo
	e.mu.Unlock()

	if err := e.write(ctx, model.KeyPersonalInfo, info); err != nil {
		return text, err
	}
	return text, nil
}

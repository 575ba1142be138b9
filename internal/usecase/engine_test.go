package usecase

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"resume-studio/internal/model"
	"resume-studio/internal/render"
	"resume-studio/internal/storage"
	"resume-studio/internal/summary"
	apperrors "resume-studio/pkg/errors"

	"go.uber.org/zap"
)

func newTestEngine(kv storage.KeyValue) *Engine {
	e := NewEngine(kv, zap.NewNop())
	e.Load(context.Background())
	return e
}

func renderInteractive(t *testing.T, s model.Session) string {
	t.Helper()
	doc, err := render.Compose(render.Interactive, s, model.SeedContent())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	var buf bytes.Buffer
	if err := render.RenderDocument(&buf, doc); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestEngine_StartsWithDefaults(t *testing.T) {
	e := NewEngine(newFlakyKV(), zap.NewNop())
	if e.State() != StateLoadingDefaults {
		t.Fatal("new engine should be loading defaults")
	}
	got := e.Load(context.Background())
	if e.State() != StateReady {
		t.Fatal("engine not ready after Load")
	}
	if !reflect.DeepEqual(got, model.DefaultSession()) {
		t.Fatalf("Load on empty storage = %+v", got)
	}
}

func TestEngine_LoadFallsBackSilently(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		setup func(*flakyKV)
	}{
		{"malformed json", func(kv *flakyKV) {
			_ = kv.Set(ctx, model.KeyPersonalInfo, "{not json")
			_ = kv.Set(ctx, model.KeyCustomization, "[]")
		}},
		{"unknown theme", func(kv *flakyKV) {
			_ = kv.Set(ctx, model.KeyCustomization,
				`{"theme":"neon","fontSize":"medium","spacing":"standard","visibleSections":{"summary":true,"experience":true,"projects":true,"education":true,"achievements":true,"skills":true}}`)
		}},
		{"missing visibility key", func(kv *flakyKV) {
			_ = kv.Set(ctx, model.KeyCustomization,
				`{"theme":"modern","fontSize":"medium","spacing":"standard","visibleSections":{"summary":true}}`)
		}},
		{"unreadable storage", func(kv *flakyKV) { kv.failGet = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newFlakyKV()
			tt.setup(kv)
			e := NewEngine(kv, zap.NewNop())
			got := e.Load(ctx)
			if !reflect.DeepEqual(got, model.DefaultSession()) {
				t.Fatalf("Load = %+v, want defaults", got)
			}
		})
	}
}

func TestEngine_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	e := newTestEngine(kv)

	info := model.DefaultPersonalInfo()
	info.Name = "Jordan Lee"
	info.LinkedIn = ""
	e.UpdatePersonalInfo(info)
	cust := model.ResumeCustomization{
		Theme:           model.ThemeTech,
		FontSize:        model.FontSmall,
		Spacing:         model.SpacingSpacious,
		VisibleSections: model.AllSectionsVisible().With(model.SectionSkills, false),
	}
	if err := e.UpdateCustomization(cust); err != nil {
		t.Fatal(err)
	}
	if err := e.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := newTestEngine(kv).Snapshot()
	want := model.Session{PersonalInfo: info, Customization: cust}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reloaded = %+v\nwant %+v", got, want)
	}
}

func TestEngine_UpdateCustomizationRejectsUnknown(t *testing.T) {
	e := newTestEngine(newFlakyKV())
	bad := model.DefaultCustomization()
	bad.FontSize = "xl"
	err := e.UpdateCustomization(bad)
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if e.Snapshot().Customization != model.DefaultCustomization() {
		t.Fatal("rejected update changed the customization")
	}
}

func TestEngine_SaveFailureIsSurfaced(t *testing.T) {
	kv := newFlakyKV()
	e := newTestEngine(kv)
	cust := model.DefaultCustomization()
	cust.Theme = model.ThemeClassic
	_ = e.UpdateCustomization(cust)

	kv.failSet = true
	err := e.Save(context.Background())
	var se *apperrors.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want StorageError", err)
	}
	if !errors.Is(err, errUnavailable) {
		t.Fatal("StorageError should wrap the store failure")
	}
	if e.Snapshot().Customization.Theme != model.ThemeClassic {
		t.Fatal("in-memory value lost after failed save")
	}
}

func TestEngine_ResetMatchesFreshSession(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	e := newTestEngine(kv)

	info := model.DefaultPersonalInfo()
	info.Name = "Someone Else"
	e.UpdatePersonalInfo(info)
	cust := model.DefaultCustomization()
	cust.Theme = model.ThemeModern
	cust.VisibleSections.Projects = false
	_ = e.UpdateCustomization(cust)
	if err := e.Save(ctx); err != nil {
		t.Fatal(err)
	}

	if err := e.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	fresh := newTestEngine(newFlakyKV())
	if got, want := renderInteractive(t, e.Snapshot()), renderInteractive(t, fresh.Snapshot()); got != want {
		t.Fatal("reset output differs from a fresh session")
	}
	for _, key := range []string{model.KeyPersonalInfo, model.KeyCustomization} {
		if _, err := kv.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("%s still stored after reset: %v", key, err)
		}
	}

	// idempotent
	if err := e.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(e.Snapshot(), model.DefaultSession()) {
		t.Fatal("second reset changed the session")
	}
	if !reflect.DeepEqual(newTestEngine(kv).Snapshot(), model.DefaultSession()) {
		t.Fatal("reload after reset is not the default session")
	}
}

func TestEngine_ResetFailureStillResetsMemory(t *testing.T) {
	kv := newFlakyKV()
	e := newTestEngine(kv)
	info := model.DefaultPersonalInfo()
	info.Name = "X"
	e.UpdatePersonalInfo(info)

	kv.failDel = true
	var se *apperrors.StorageError
	if err := e.Reset(context.Background()); !errors.As(err, &se) {
		t.Fatalf("err = %v, want StorageError", err)
	}
	if e.Snapshot().PersonalInfo.Name != "Alex Thompson" {
		t.Fatal("in-memory reset did not happen")
	}
}

func TestEngine_GenerateSummaryIntoPersists(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	e := newTestEngine(kv)
	info := model.DefaultPersonalInfo()
	info.GitHub = ""
	e.UpdatePersonalInfo(info)

	text, err := e.GenerateSummaryInto(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := summary.Generate(info, summary.Options{}); text != want {
		t.Fatalf("summary = %q, want %q", text, want)
	}
	if e.Snapshot().PersonalInfo.Summary != text {
		t.Fatal("summary not applied in memory")
	}

	stored := newTestEngine(kv).Snapshot()
	if stored.PersonalInfo.Summary != text {
		t.Fatal("summary not persisted without an explicit save")
	}
	if _, err := kv.Get(ctx, model.KeyCustomization); !errors.Is(err, storage.ErrNotFound) {
		t.Fatal("generating a summary should only write personal info")
	}
}

func TestEngine_GenerateSummaryIntoStorageFailure(t *testing.T) {
	kv := newFlakyKV()
	e := newTestEngine(kv)
	kv.failSet = true
	text, err := e.GenerateSummaryInto(context.Background())
	var se *apperrors.StorageError
	if !errors.As(err, &se) || se.Key != model.KeyPersonalInfo {
		t.Fatalf("err = %v, want StorageError on personal info", err)
	}
	if e.Snapshot().PersonalInfo.Summary != text {
		t.Fatal("generated summary should stay in memory")
	}
}

func TestEngine_UpdatesAreWholeReplacement(t *testing.T) {
	e := newTestEngine(newFlakyKV())
	e.UpdatePersonalInfo(model.PersonalInfo{Name: "Only Name"})
	got := e.Snapshot().PersonalInfo
	if got.Email != "" || got.Summary != "" {
		t.Fatalf("fields were merged: %+v", got)
	}
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"resume-studio/internal/model"
	"resume-studio/internal/storage"
	apperrors "resume-studio/pkg/errors"

	"go.uber.org/zap"
)

// Outcome of an achievement mutation. OutcomeNotPermitted is not an error:
// it means the target is a demo record and nothing was changed.
type Outcome string

const (
	OutcomeAdded        Outcome = "added"
	OutcomeUpdated      Outcome = "updated"
	OutcomeDeleted      Outcome = "deleted"
	OutcomeNotPermitted Outcome = "not_permitted"
)

// AchievementRef addresses a record: a demo record or a user record, by
// position in its own list.
type AchievementRef struct {
	Demo  bool
	Index int
}

// AchievementView is one listed record.
type AchievementView struct {
	Demo     bool `json:"demo"`
	Index    int  `json:"index"`
	Verified bool `json:"verified"`
	model.StoredAchievement
}

// AchievementBook manages the user records stored under KeyAchievements.
type AchievementBook struct {
	kv     storage.KeyValue
	logger *zap.Logger
}

func NewAchievementBook(kv storage.KeyValue, logger *zap.Logger) *AchievementBook {
	return &AchievementBook{kv: kv, logger: logger}
}

// List returns the user records. Missing, unreadable or malformed data
// reads as an empty list.
func (b *AchievementBook) List(ctx context.Context) []model.StoredAchievement {
	items, err := b.load(ctx)
	if err != nil {
		b.logger.Warn("Failed to read achievements", zap.Error(err))
		return []model.StoredAchievement{}
	}
	return items
}

// load separates storage failures (returned) from bad data (empty list).
func (b *AchievementBook) load(ctx context.Context) ([]model.StoredAchievement, error) {
	raw, err := b.kv.Get(ctx, model.KeyAchievements)
	if errors.Is(err, storage.ErrNotFound) {
		return []model.StoredAchievement{}, nil
	}
	if err != nil {
		return nil, err
	}
	items, err := model.DecodeAchievements([]byte(raw))
	if err != nil {
		b.logger.Warn("Stored achievements are malformed, treating as empty", zap.Error(err))
		return []model.StoredAchievement{}, nil
	}
	return items, nil
}

func (b *AchievementBook) store(ctx context.Context, op string, items []model.StoredAchievement) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return apperrors.NewStorageError("failed to encode achievements", op, model.KeyAchievements, err)
	}
	if err := b.kv.Set(ctx, model.KeyAchievements, string(raw)); err != nil {
		b.logger.Error("Failed to persist achievements", zap.String("operation", op), zap.Error(err))
		return apperrors.NewStorageError("failed to save achievements", op, model.KeyAchievements, err)
	}
	return nil
}

func (b *AchievementBook) current(ctx context.Context, op string) ([]model.StoredAchievement, error) {
	items, err := b.load(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read achievements", op, model.KeyAchievements, err)
	}
	return items, nil
}

func validateAchievement(item model.StoredAchievement) error {
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return apperrors.NewValidationError("title is required", "title", item.Title)
	}
	if err := model.ValidateValue(model.SchemaAchievements, []model.StoredAchievement{item}); err != nil {
		return apperrors.NewValidationError(err.Error(), "type", string(item.Type))
	}
	return nil
}

func (b *AchievementBook) Add(ctx context.Context, item model.StoredAchievement) (Outcome, error) {
	if err := validateAchievement(item); err != nil {
		return "", err
	}
	items, err := b.current(ctx, "add")
	if err != nil {
		return "", err
	}
	if err := b.store(ctx, "add", append(items, item)); err != nil {
		return "", err
	}
	return OutcomeAdded, nil
}

// Edit replaces a user record. Demo records are never touched.
func (b *AchievementBook) Edit(ctx context.Context, ref AchievementRef, item model.StoredAchievement) (Outcome, error) {
	if ref.Demo {
		return OutcomeNotPermitted, nil
	}
	if err := validateAchievement(item); err != nil {
		return "", err
	}
	items, err := b.current(ctx, "edit")
	if err != nil {
		return "", err
	}
	if ref.Index < 0 || ref.Index >= len(items) {
		return "", apperrors.NewNotFoundError("achievement", ref.Index)
	}
	items[ref.Index] = item
	if err := b.store(ctx, "edit", items); err != nil {
		return "", err
	}
	return OutcomeUpdated, nil
}

// Delete removes a user record. Demo records are never touched.
func (b *AchievementBook) Delete(ctx context.Context, ref AchievementRef) (Outcome, error) {
	if ref.Demo {
		return OutcomeNotPermitted, nil
	}
	items, err := b.current(ctx, "delete")
	if err != nil {
		return "", err
	}
	if ref.Index < 0 || ref.Index >= len(items) {
		return "", apperrors.NewNotFoundError("achievement", ref.Index)
	}
	items = append(items[:ref.Index], items[ref.Index+1:]...)
	if err := b.store(ctx, "delete", items); err != nil {
		return "", err
	}
	return OutcomeDeleted, nil
}

// Views lists the demo records followed by the user records.
func (b *AchievementBook) Views(ctx context.Context) []AchievementView {
	views := SeedAchievements()
	for i, it := range b.List(ctx) {
		views = append(views, AchievementView{Index: i, StoredAchievement: it})
	}
	return views
}

// Content is the demo content extended by the user records.
func (b *AchievementBook) Content(ctx context.Context) model.Content {
	content, skipped := model.SeedContent().WithAchievements(b.List(ctx))
	for _, it := range skipped {
		b.logger.Warn("Skipping achievement of unknown type", zap.String("type", string(it.Type)), zap.String("title", it.Title))
	}
	return content
}

// SeedAchievements lists the demo content in the stored record shape.
func SeedAchievements() []AchievementView {
	seed := model.SeedContent()
	var out []AchievementView
	add := func(verified bool, it model.StoredAchievement) {
		out = append(out, AchievementView{Demo: true, Index: len(out), Verified: verified, StoredAchievement: it})
	}
	for _, e := range seed.Experiences {
		add(e.Verified, model.StoredAchievement{
			Type:              model.AchievementInternship,
			Title:             e.Title,
			CompanyOrPlatform: e.Company,
			DateOrDuration:    e.Duration,
			Extra:             strings.Join(e.Details, "\n"),
		})
	}
	for _, c := range seed.Certifications {
		add(c.Verified, model.StoredAchievement{
			Type:              model.AchievementCourse,
			Title:             c.Title,
			CompanyOrPlatform: c.Platform,
			DateOrDuration:    c.Completed,
		})
	}
	for _, a := range seed.Achievements {
		add(a.Verified, model.StoredAchievement{
			Type:              model.AchievementHackathon,
			Title:             a.Title,
			CompanyOrPlatform: a.Subtitle,
			DateOrDuration:    a.Date,
		})
	}
	for _, p := range seed.Projects {
		add(p.Verified, model.StoredAchievement{
			Type:              model.AchievementProject,
			Title:             p.Title,
			CompanyOrPlatform: p.Tech,
			DateOrDuration:    p.Status,
			Extra:             p.Description,
		})
	}
	return out
}

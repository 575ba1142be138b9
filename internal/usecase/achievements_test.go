package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"resume-studio/internal/model"
	apperrors "resume-studio/pkg/errors"

	"go.uber.org/zap"
)

func hackathon(title string) model.StoredAchievement {
	return model.StoredAchievement{
		Type:              model.AchievementHackathon,
		Title:             title,
		CompanyOrPlatform: "DevJam",
		DateOrDuration:    "May 2025",
	}
}

func TestAchievementBook_AddEditDelete(t *testing.T) {
	ctx := context.Background()
	book := NewAchievementBook(newFlakyKV(), zap.NewNop())

	for _, title := range []string{"First", "Second"} {
		out, err := book.Add(ctx, hackathon(title))
		if err != nil || out != OutcomeAdded {
			t.Fatalf("Add(%s) = %v, %v", title, out, err)
		}
	}
	out, err := book.Edit(ctx, AchievementRef{Index: 1}, hackathon("Second, edited"))
	if err != nil || out != OutcomeUpdated {
		t.Fatalf("Edit = %v, %v", out, err)
	}
	out, err = book.Delete(ctx, AchievementRef{Index: 0})
	if err != nil || out != OutcomeDeleted {
		t.Fatalf("Delete = %v, %v", out, err)
	}

	got := book.List(ctx)
	if want := []model.StoredAchievement{hackathon("Second, edited")}; !reflect.DeepEqual(got, want) {
		t.Fatalf("List = %+v", got)
	}
}

func TestAchievementBook_DemoRecordsAreBlocked(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	book := NewAchievementBook(kv, zap.NewNop())
	if _, err := book.Add(ctx, hackathon("Mine")); err != nil {
		t.Fatal(err)
	}
	before, _ := kv.Get(ctx, model.KeyAchievements)

	out, err := book.Edit(ctx, AchievementRef{Demo: true, Index: 0}, hackathon("Hijacked"))
	if err != nil || out != OutcomeNotPermitted {
		t.Fatalf("Edit demo = %v, %v", out, err)
	}
	out, err = book.Delete(ctx, AchievementRef{Demo: true, Index: 0})
	if err != nil || out != OutcomeNotPermitted {
		t.Fatalf("Delete demo = %v, %v", out, err)
	}

	after, _ := kv.Get(ctx, model.KeyAchievements)
	if before != after {
		t.Fatalf("stored achievements changed:\n%s\n%s", before, after)
	}
}

func TestAchievementBook_Errors(t *testing.T) {
	ctx := context.Background()
	book := NewAchievementBook(newFlakyKV(), zap.NewNop())

	var ve *apperrors.ValidationError
	if _, err := book.Add(ctx, model.StoredAchievement{Type: "award", Title: "X"}); !errors.As(err, &ve) {
		t.Errorf("unknown type: err = %v", err)
	}
	if _, err := book.Add(ctx, model.StoredAchievement{Type: model.AchievementCourse, Title: " "}); !errors.As(err, &ve) {
		t.Errorf("blank title: err = %v", err)
	}

	var ae *apperrors.AppError
	if _, err := book.Delete(ctx, AchievementRef{Index: 3}); !errors.As(err, &ae) || ae.StatusCode != 404 {
		t.Errorf("out of range: err = %v", err)
	}
}

func TestAchievementBook_StorageFailure(t *testing.T) {
	kv := newFlakyKV()
	book := NewAchievementBook(kv, zap.NewNop())
	kv.failSet = true
	var se *apperrors.StorageError
	if _, err := book.Add(context.Background(), hackathon("X")); !errors.As(err, &se) {
		t.Fatalf("err = %v, want StorageError", err)
	}
}

func TestAchievementBook_MalformedReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	_ = kv.Set(ctx, model.KeyAchievements, `{"oops":true}`)
	book := NewAchievementBook(kv, zap.NewNop())
	if got := book.List(ctx); len(got) != 0 {
		t.Fatalf("List = %+v, want empty", got)
	}
	if !reflect.DeepEqual(book.Content(ctx), model.SeedContent()) {
		t.Fatal("content should equal the demo content")
	}
}

func TestAchievementBook_ContentIncludesUserRecords(t *testing.T) {
	ctx := context.Background()
	book := NewAchievementBook(newFlakyKV(), zap.NewNop())
	_, _ = book.Add(ctx, model.StoredAchievement{
		Type:              model.AchievementInternship,
		Title:             "Backend Intern",
		CompanyOrPlatform: "Acme",
		DateOrDuration:    "Summer 2025",
		Extra:             "- Built APIs\n- Wrote tests",
	})
	c := book.Content(ctx)
	last := c.Experiences[len(c.Experiences)-1]
	if last.Title != "Backend Intern" || last.Verified || !reflect.DeepEqual(last.Details, []string{"Built APIs", "Wrote tests"}) {
		t.Fatalf("mapped experience = %+v", last)
	}
}

func TestAchievementBook_Views(t *testing.T) {
	ctx := context.Background()
	book := NewAchievementBook(newFlakyKV(), zap.NewNop())
	_, _ = book.Add(ctx, hackathon("Mine"))

	views := book.Views(ctx)
	seeds := SeedAchievements()
	if len(views) != len(seeds)+1 {
		t.Fatalf("views = %d, want %d", len(views), len(seeds)+1)
	}
	user := views[len(views)-1]
	if user.Demo || user.Index != 0 || user.Verified || user.Title != "Mine" {
		t.Fatalf("user view = %+v", user)
	}
	for i, v := range seeds {
		if !v.Demo || v.Index != i {
			t.Fatalf("seed view %d = %+v", i, v)
		}
	}
	var unverified int
	for _, v := range seeds {
		if !v.Verified {
			unverified++
		}
	}
	if unverified != 1 {
		t.Fatalf("unverified demo records = %d, want the in-progress project only", unverified)
	}
}

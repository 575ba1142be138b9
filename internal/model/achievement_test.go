package model

import "testing"

func TestWithAchievementsMapsByType(t *testing.T) {
	seed := SeedContent()
	items := []StoredAchievement{
		{Type: AchievementInternship, Title: "Backend Intern", CompanyOrPlatform: "Acme", DateOrDuration: "2025", Extra: "- Built APIs\n\n• Wrote tests"},
		{Type: AchievementCourse, Title: "Go Basics", CompanyOrPlatform: "Coursera", DateOrDuration: "Jan 2025"},
		{Type: AchievementHackathon, Title: "Winner", CompanyOrPlatform: "HackNight", DateOrDuration: "Mar 2025"},
		{Type: AchievementProject, Title: "CLI", CompanyOrPlatform: "Go", Extra: "  A tool.  "},
		{Type: "volunteering", Title: "ignored"},
	}

	out, skipped := seed.WithAchievements(items)

	if len(skipped) != 1 || skipped[0].Title != "ignored" {
		t.Fatalf("unexpected skipped: %+v", skipped)
	}
	if len(out.Experiences) != len(seed.Experiences)+1 {
		t.Fatalf("experience count: %d", len(out.Experiences))
	}
	exp := out.Experiences[len(out.Experiences)-1]
	if exp.Verified || exp.Company != "Acme" || len(exp.Details) != 2 || exp.Details[1] != "Wrote tests" {
		t.Fatalf("unexpected experience: %+v", exp)
	}
	cert := out.Certifications[len(out.Certifications)-1]
	if cert.Title != "Go Basics" || cert.Verified {
		t.Fatalf("unexpected certification: %+v", cert)
	}
	ach := out.Achievements[len(out.Achievements)-1]
	if ach.Subtitle != "HackNight" || ach.Date != "Mar 2025" {
		t.Fatalf("unexpected achievement: %+v", ach)
	}
	proj := out.Projects[len(out.Projects)-1]
	if proj.Status != UnverifiedStatus || proj.Description != "A tool." {
		t.Fatalf("unexpected project: %+v", proj)
	}
	if len(seed.Experiences) != 2 {
		t.Fatal("seed content was modified")
	}
}

func TestDecodeAchievements(t *testing.T) {
	items, err := DecodeAchievements([]byte(`[{"type":"course","title":"X","companyOrPlatform":"Y","dateOrDuration":"Z","extra":""}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].Type != AchievementCourse {
		t.Fatalf("unexpected items: %+v", items)
	}
	if _, err := DecodeAchievements([]byte(`{"type":"course"}`)); err == nil {
		t.Fatal("expected non-array to be rejected")
	}
}

func TestValidateStart(t *testing.T) {
	ok := ValidateStart(PersonalInfo{Name: "Sam", Email: "sam@example.com"})
	if !ok.Valid || len(ok.Missing) != 0 {
		t.Fatalf("expected valid, got %+v", ok)
	}

	res := ValidateStart(PersonalInfo{Name: "   ", Email: ""})
	if res.Valid {
		t.Fatal("expected invalid")
	}
	if len(res.Missing) != 2 || res.Missing[0] != "name" || res.Missing[1] != "email" {
		t.Fatalf("unexpected missing: %v", res.Missing)
	}

	res = ValidateStart(PersonalInfo{Name: "Sam", Email: "not-an-email"})
	if !res.Valid {
		t.Fatalf("format must not be checked: %+v", res)
	}
}

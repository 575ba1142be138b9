package model

import (
	"encoding/json"
	"fmt"

	apperrors "resume-studio/pkg/errors"
)

// Keys under which the editor state is persisted inside a session scope.
const (
	KeyPersonalInfo  = "resumePersonalInfo"
	KeyCustomization = "resumeCustomization"
	KeyAchievements  = "resumeAchievements"
)

// PersonalInfo holds the identity/contact block and the free-text summary.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Summary  string `json:"summary"`
}

type Theme string

const (
	ThemeProfessional Theme = "professional"
	ThemeModern       Theme = "modern"
	ThemeClassic      Theme = "classic"
	ThemeTech         Theme = "tech"
)

func Themes() []Theme {
	return []Theme{ThemeProfessional, ThemeModern, ThemeClassic, ThemeTech}
}

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeProfessional, ThemeModern, ThemeClassic, ThemeTech:
		return t, nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown theme %q", s), "theme", s)
}

func (t *Theme) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTheme(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

func FontSizes() []FontSize {
	return []FontSize{FontSmall, FontMedium, FontLarge}
}

func ParseFontSize(s string) (FontSize, error) {
	switch f := FontSize(s); f {
	case FontSmall, FontMedium, FontLarge:
		return f, nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown font size %q", s), "fontSize", s)
}

func (f *FontSize) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseFontSize(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

type Spacing string

const (
	SpacingCompact  Spacing = "compact"
	SpacingStandard Spacing = "standard"
	SpacingSpacious Spacing = "spacious"
)

func Spacings() []Spacing {
	return []Spacing{SpacingCompact, SpacingStandard, SpacingSpacious}
}

func ParseSpacing(s string) (Spacing, error) {
	switch sp := Spacing(s); sp {
	case SpacingCompact, SpacingStandard, SpacingSpacious:
		return sp, nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown spacing %q", s), "spacing", s)
}

func (sp *Spacing) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseSpacing(s)
	if err != nil {
		return err
	}
	*sp = v
	return nil
}

// VisibleSections has one flag per toggleable section. The set of keys is
// fixed; rendering order comes from SectionOrder, never from this struct.
type VisibleSections struct {
	Summary      bool `json:"summary"`
	Experience   bool `json:"experience"`
	Projects     bool `json:"projects"`
	Education    bool `json:"education"`
	Achievements bool `json:"achievements"`
	Skills       bool `json:"skills"`
}

func AllSectionsVisible() VisibleSections {
	return VisibleSections{
		Summary:      true,
		Experience:   true,
		Projects:     true,
		Education:    true,
		Achievements: true,
		Skills:       true,
	}
}

func (v VisibleSections) Visible(k SectionKey) bool {
	switch k {
	case SectionSummary:
		return v.Summary
	case SectionExperience:
		return v.Experience
	case SectionProjects:
		return v.Projects
	case SectionEducation:
		return v.Education
	case SectionAchievements:
		return v.Achievements
	case SectionSkills:
		return v.Skills
	}
	return false
}

// With returns a copy with the flag for k set to on.
func (v VisibleSections) With(k SectionKey, on bool) VisibleSections {
	switch k {
	case SectionSummary:
		v.Summary = on
	case SectionExperience:
		v.Experience = on
	case SectionProjects:
		v.Projects = on
	case SectionEducation:
		v.Education = on
	case SectionAchievements:
		v.Achievements = on
	case SectionSkills:
		v.Skills = on
	}
	return v
}

// ResumeCustomization is the presentation preference set. It is replaced
// whole on every update.
type ResumeCustomization struct {
	Theme           Theme           `json:"theme"`
	FontSize        FontSize        `json:"fontSize"`
	Spacing         Spacing         `json:"spacing"`
	VisibleSections VisibleSections `json:"visibleSections"`
}

func (c ResumeCustomization) Validate() error {
	if _, err := ParseTheme(string(c.Theme)); err != nil {
		return err
	}
	if _, err := ParseFontSize(string(c.FontSize)); err != nil {
		return err
	}
	if _, err := ParseSpacing(string(c.Spacing)); err != nil {
		return err
	}
	return nil
}

// Session couples the two values that are loaded, saved and reset together.
type Session struct {
	PersonalInfo  PersonalInfo        `json:"personalInfo"`
	Customization ResumeCustomization `json:"customization"`
}

// DefaultPersonalInfo returns a fresh copy of the demo identity.
func DefaultPersonalInfo() PersonalInfo {
	return PersonalInfo{
		Name:     "Alex Thompson",
		Title:    "Full-Stack Developer & Software Engineer",
		Email:    "alex.thompson@email.com",
		Phone:    "+1 (555) 123-4567",
		Location: "San Francisco, CA",
		LinkedIn: "linkedin.com/in/alexthompson",
		GitHub:   "github.com/alexthompson",
		Summary:  "Results-driven Full-Stack Developer with 2+ years of experience building scalable web applications. Proven track record in hackathon competitions, internships at leading tech companies, and continuous learning through professional certifications. Passionate about creating innovative solutions and contributing to impactful projects.",
	}
}

// DefaultCustomization returns a fresh copy of the default preferences.
func DefaultCustomization() ResumeCustomization {
	return ResumeCustomization{
		Theme:           ThemeProfessional,
		FontSize:        FontMedium,
		Spacing:         SpacingStandard,
		VisibleSections: AllSectionsVisible(),
	}
}

func DefaultSession() Session {
	return Session{
		PersonalInfo:  DefaultPersonalInfo(),
		Customization: DefaultCustomization(),
	}
}

package render

import (
	"fmt"
	"html/template"

	"resume-studio/internal/model"
	apperrors "resume-studio/pkg/errors"
)

// Style is the interactive view's presentation derived from a customization.
type Style struct {
	Accent     string
	BodySize   string
	SectionGap string
}

// CSS renders the style as custom properties for the resume root element.
func (s Style) CSS() template.CSS {
	return template.CSS(fmt.Sprintf("--accent:%s;--body-size:%s;--section-gap:%s",
		s.Accent, s.BodySize, s.SectionGap))
}

// StyleFor maps theme, font size and spacing. Every enum value has a
// mapping; anything else is a ValidationError.
func StyleFor(c model.ResumeCustomization) (Style, error) {
	accent, ok := themeAccent(c.Theme)
	if !ok {
		return Style{}, apperrors.NewValidationError("unknown theme", "theme", string(c.Theme))
	}
	size, ok := fontScale(c.FontSize)
	if !ok {
		return Style{}, apperrors.NewValidationError("unknown font size", "fontSize", string(c.FontSize))
	}
	gap, ok := sectionGap(c.Spacing)
	if !ok {
		return Style{}, apperrors.NewValidationError("unknown spacing", "spacing", string(c.Spacing))
	}
	return Style{Accent: accent, BodySize: size, SectionGap: gap}, nil
}

func themeAccent(t model.Theme) (string, bool) {
	switch t {
	case model.ThemeProfessional:
		return "#2563eb", true
	case model.ThemeModern:
		return "#9333ea", true
	case model.ThemeClassic:
		return "#111827", true
	case model.ThemeTech:
		return "#16a34a", true
	}
	return "", false
}

func fontScale(f model.FontSize) (string, bool) {
	switch f {
	case model.FontSmall:
		return ".875rem", true
	case model.FontMedium:
		return "1rem", true
	case model.FontLarge:
		return "1.125rem", true
	}
	return "", false
}

func sectionGap(s model.Spacing) (string, bool) {
	switch s {
	case model.SpacingCompact:
		return "1rem", true
	case model.SpacingStandard:
		return "1.5rem", true
	case model.SpacingSpacious:
		return "2rem", true
	}
	return "", false
}

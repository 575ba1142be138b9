package render

import (
	"io"
	"regexp"
	"strings"

	"resume-studio/internal/model"
	apperrors "resume-studio/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// ResumeText is the plain-text copy of the header and summary.
func ResumeText(info model.PersonalInfo) string {
	var lines []string
	add := func(prefix, v string) {
		if v = strings.TrimSpace(v); v != "" {
			lines = append(lines, prefix+v)
		}
	}
	add("", info.Name)
	add("", info.Title)
	add("Email: ", info.Email)
	add("Phone: ", info.Phone)
	add("Location: ", info.Location)
	if summary := strings.TrimSpace(info.Summary); summary != "" {
		lines = append(lines, "", "Summary:", summary)
	}
	return strings.Join(lines, "\n")
}

// SummaryText fails with a ValidationError when there is nothing to copy.
func SummaryText(info model.PersonalInfo) (string, error) {
	s := strings.TrimSpace(info.Summary)
	if s == "" {
		return "", apperrors.NewValidationError("nothing to copy", "summary", "")
	}
	return s, nil
}

var spaceRun = regexp.MustCompile(`\s+`)

// DocumentText extracts readable lines from a rendered document or page,
// one per heading, paragraph or list item.
func DocumentText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}
	var lines []string
	doc.Find("h1, h2, h3, p, li").Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered("form, .controls, .notice").Length() > 0 || s.Is(".notice") {
			return
		}
		text := strings.TrimSpace(spaceRun.ReplaceAllString(s.Text(), " "))
		if text == "" {
			return
		}
		if s.Is("h2") && len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, text)
	})
	return strings.Join(lines, "\n"), nil
}

package render

import (
	"html/template"
	"net/url"
	"strings"

	"resume-studio/internal/model"

	"golang.org/x/net/publicsuffix"
)

// Badge marks an entry as verified or shows its unverified status.
type Badge struct {
	Label string
	Class string
}

func verifiedBadge(verified bool, status string) *Badge {
	if verified {
		return &Badge{Label: "Verified", Class: "badge badge-verified"}
	}
	if strings.TrimSpace(status) == "" {
		status = model.UnverifiedStatus
	}
	return &Badge{Label: status, Class: "badge badge-outline"}
}

// Entry is the uniform row every list section is drawn with.
type Entry struct {
	Title       string
	Subtitle    string
	Meta        string
	Period      string
	Description string
	Details     []string
	Badge       *Badge
}

type Contact struct {
	Kind  string
	Label string
	Href  string
}

type headerData struct {
	Name     string
	Title    string
	Contacts []Contact
}

type sectionData struct {
	Key     model.SectionKey
	Heading string
	Body    string
	Entries []Entry
	Groups  []SkillGroup
}

type SkillGroup struct {
	Label string
	Items []string
}

func newSection(key model.SectionKey) sectionData {
	return sectionData{Key: key, Heading: key.Heading()}
}

// Header renders name, title and the non-empty contact fields.
func Header(p Profile, info model.PersonalInfo) (template.HTML, error) {
	data := headerData{Name: info.Name, Title: info.Title}
	if v := strings.TrimSpace(info.Email); v != "" {
		data.Contacts = append(data.Contacts, Contact{Kind: "email", Label: v, Href: "mailto:" + v})
	}
	if v := strings.TrimSpace(info.Phone); v != "" {
		data.Contacts = append(data.Contacts, Contact{Kind: "phone", Label: v})
	}
	if v := strings.TrimSpace(info.Location); v != "" {
		data.Contacts = append(data.Contacts, Contact{Kind: "location", Label: v})
	}
	if v := strings.TrimSpace(info.LinkedIn); v != "" {
		href, label := contactLink(v)
		data.Contacts = append(data.Contacts, Contact{Kind: "linkedin", Label: label, Href: href})
	}
	if v := strings.TrimSpace(info.GitHub); v != "" {
		href, label := contactLink(v)
		data.Contacts = append(data.Contacts, Contact{Kind: "github", Label: label, Href: href})
	}
	return execute(p, "header", data)
}

// contactLink turns a profile field into a link when its host has a
// registrable domain; other values stay plain text.
func contactLink(raw string) (href, label string) {
	label = strings.TrimSpace(raw)
	candidate := label
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return "", label
	}
	etld, err := publicsuffix.EffectiveTLDPlusOne(u.Hostname())
	if err != nil {
		return "", label
	}
	if _, icann := publicsuffix.PublicSuffix(etld); !icann {
		return "", label
	}
	label = strings.TrimPrefix(candidate, "https://")
	label = strings.TrimPrefix(label, "http://")
	label = strings.TrimPrefix(label, "www.")
	return u.String(), strings.TrimSuffix(label, "/")
}

func Summary(p Profile, summary string) (template.HTML, error) {
	data := newSection(model.SectionSummary)
	data.Body = strings.TrimSpace(summary)
	return execute(p, "summary", data)
}

func Experience(p Profile, items []model.Experience) (template.HTML, error) {
	data := newSection(model.SectionExperience)
	for _, e := range items {
		data.Entries = append(data.Entries, Entry{
			Title:    e.Title,
			Subtitle: e.Company,
			Period:   e.Duration,
			Details:  append([]string(nil), e.Details...),
			Badge:    verifiedBadge(e.Verified, ""),
		})
	}
	return execute(p, "experience", data)
}

// Projects shows the status as the badge of an unverified project.
func Projects(p Profile, items []model.Project) (template.HTML, error) {
	data := newSection(model.SectionProjects)
	for _, pr := range items {
		entry := Entry{
			Title:       pr.Title,
			Meta:        pr.Tech,
			Description: pr.Description,
			Badge:       verifiedBadge(pr.Verified, pr.Status),
		}
		if pr.Verified {
			entry.Period = pr.Status
		}
		data.Entries = append(data.Entries, entry)
	}
	return execute(p, "projects", data)
}

// Education lists degrees followed by certifications in one uniform list.
// Degrees carry no verification flag and so no badge.
func Education(p Profile, degrees []model.Education, certs []model.Certification) (template.HTML, error) {
	data := newSection(model.SectionEducation)
	for _, d := range degrees {
		data.Entries = append(data.Entries, Entry{
			Title:    d.Degree,
			Subtitle: d.Institution,
			Period:   d.Years,
		})
	}
	for _, c := range certs {
		data.Entries = append(data.Entries, Entry{
			Title:    c.Title,
			Subtitle: c.Platform,
			Period:   c.Completed,
			Badge:    verifiedBadge(c.Verified, ""),
		})
	}
	return execute(p, "education", data)
}

func Achievements(p Profile, items []model.Achievement) (template.HTML, error) {
	data := newSection(model.SectionAchievements)
	for _, a := range items {
		data.Entries = append(data.Entries, Entry{
			Title:    a.Title,
			Subtitle: a.Subtitle,
			Period:   a.Date,
			Badge:    verifiedBadge(a.Verified, ""),
		})
	}
	return execute(p, "achievements", data)
}

func Skills(p Profile, s model.Skills) (template.HTML, error) {
	data := newSection(model.SectionSkills)
	data.Groups = []SkillGroup{
		{Label: "Languages", Items: append([]string(nil), s.Languages...)},
		{Label: "Frameworks", Items: append([]string(nil), s.Frameworks...)},
		{Label: "Tools", Items: append([]string(nil), s.Tools...)},
	}
	return execute(p, "skills", data)
}

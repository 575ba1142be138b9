// Package render draws a resume session as HTML. One composer serves both
// the interactive view and the print view; each Profile has its own
// template set defining the same template names.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"resume-studio/internal/model"
)

//go:embed templates
var templateFS embed.FS

type Profile int

const (
	Interactive Profile = iota
	Print
)

func (p Profile) String() string {
	switch p {
	case Interactive:
		return "interactive"
	case Print:
		return "print"
	}
	return fmt.Sprintf("profile(%d)", int(p))
}

// ParseProfile accepts "interactive" and "print".
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interactive", "":
		return Interactive, nil
	case "print":
		return Print, nil
	}
	return 0, fmt.Errorf("render: unknown profile %q", s)
}

var templateSets = map[Profile]*template.Template{
	Interactive: template.Must(parseSet(Interactive)),
	Print:       template.Must(parseSet(Print)),
}

var stylesheets = map[Profile]template.CSS{
	Interactive: mustStylesheet(Interactive),
	Print:       mustStylesheet(Print),
}

func parseSet(p Profile) (*template.Template, error) {
	return template.New(p.String()).
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/shared/*.tmpl", "templates/"+p.String()+"/*.tmpl")
}

func mustStylesheet(p Profile) template.CSS {
	b, err := templateFS.ReadFile("templates/" + p.String() + "/style.css")
	if err != nil {
		panic(err)
	}
	return template.CSS(b)
}

func execute(p Profile, name string, data interface{}) (template.HTML, error) {
	set, ok := templateSets[p]
	if !ok {
		return "", fmt.Errorf("render: unknown profile %v", p)
	}
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s %s: %w", p, name, err)
	}
	return template.HTML(buf.String()), nil
}

// Section is one rendered, visible section of a Document.
type Section struct {
	Key  model.SectionKey
	HTML template.HTML
}

// Document is a composed resume: the header plus the visible sections in
// fixed order.
type Document struct {
	Profile  Profile
	Name     string
	Classes  string
	Style    template.CSS
	Header   template.HTML
	Sections []Section
}

// Keys lists the rendered section keys in document order.
func (d *Document) Keys() []model.SectionKey {
	keys := make([]model.SectionKey, 0, len(d.Sections))
	for _, s := range d.Sections {
		keys = append(keys, s.Key)
	}
	return keys
}

// Compose renders every section whose visibility flag is set. The print
// profile ignores theme, font size and spacing.
func Compose(p Profile, s model.Session, c model.Content) (*Document, error) {
	doc := &Document{Profile: p, Name: s.PersonalInfo.Name}
	switch p {
	case Interactive:
		style, err := StyleFor(s.Customization)
		if err != nil {
			return nil, err
		}
		cust := s.Customization
		doc.Style = style.CSS()
		doc.Classes = fmt.Sprintf("resume theme-%s font-%s spacing-%s", cust.Theme, cust.FontSize, cust.Spacing)
	case Print:
		doc.Classes = "resume resume-print"
	default:
		return nil, fmt.Errorf("render: unknown profile %v", p)
	}

	header, err := Header(p, s.PersonalInfo)
	if err != nil {
		return nil, err
	}
	doc.Header = header

	for _, key := range model.SectionOrder() {
		if !s.Customization.VisibleSections.Visible(key) {
			continue
		}
		html, err := renderSection(p, key, s.PersonalInfo, c)
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, Section{Key: key, HTML: html})
	}
	return doc, nil
}

func renderSection(p Profile, key model.SectionKey, info model.PersonalInfo, c model.Content) (template.HTML, error) {
	switch key {
	case model.SectionSummary:
		return Summary(p, info.Summary)
	case model.SectionExperience:
		return Experience(p, c.Experiences)
	case model.SectionProjects:
		return Projects(p, c.Projects)
	case model.SectionEducation:
		return Education(p, c.Education, c.Certifications)
	case model.SectionAchievements:
		return Achievements(p, c.Achievements)
	case model.SectionSkills:
		return Skills(p, c.Skills)
	}
	return "", fmt.Errorf("render: unknown section %q", key)
}

// RenderDocument writes the document fragment without page chrome.
func RenderDocument(w io.Writer, d *Document) error {
	html, err := execute(d.Profile, "document", d)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, string(html))
	return err
}

// Notice is the one-line message shown after an operation.
type Notice struct {
	Kind    string
	Message string
}

// PageOptions carries the page chrome. Controls is only drawn by the
// interactive profile.
type PageOptions struct {
	Title    string
	Notice   *Notice
	Controls *Controls
}

type pageData struct {
	PageOptions
	Body       template.HTML
	Stylesheet template.CSS
}

// RenderPage writes a complete HTML page with the stylesheet inlined.
func RenderPage(w io.Writer, d *Document, opts PageOptions) error {
	body, err := execute(d.Profile, "document", d)
	if err != nil {
		return err
	}
	if opts.Title == "" {
		opts.Title = d.Name + " - Resume"
	}
	page, err := execute(d.Profile, "page", pageData{
		PageOptions: opts,
		Body:        body,
		Stylesheet:  stylesheets[d.Profile],
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, string(page))
	return err
}

// Option is one choice of a select control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

type SectionToggle struct {
	Key     model.SectionKey
	Label   string
	Checked bool
}

// Controls is the editing panel of the interactive page.
type Controls struct {
	Info      model.PersonalInfo
	Themes    []Option
	FontSizes []Option
	Spacings  []Option
	Sections  []SectionToggle
}

func NewControls(s model.Session) *Controls {
	c := &Controls{Info: s.PersonalInfo}
	cust := s.Customization
	for _, t := range model.Themes() {
		c.Themes = append(c.Themes, Option{Value: string(t), Label: title(string(t)), Selected: t == cust.Theme})
	}
	for _, f := range model.FontSizes() {
		c.FontSizes = append(c.FontSizes, Option{Value: string(f), Label: title(string(f)), Selected: f == cust.FontSize})
	}
	for _, sp := range model.Spacings() {
		c.Spacings = append(c.Spacings, Option{Value: string(sp), Label: title(string(sp)), Selected: sp == cust.Spacing})
	}
	for _, key := range model.SectionOrder() {
		c.Sections = append(c.Sections, SectionToggle{
			Key:     key,
			Label:   key.Heading(),
			Checked: cust.VisibleSections.Visible(key),
		})
	}
	return c
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// StartPage is the initial creation form.
type StartPage struct {
	Info    model.PersonalInfo
	Missing []string
	Notice  *Notice
}

func RenderStart(w io.Writer, sp StartPage) error {
	html, err := execute(Interactive, "start", struct {
		StartPage
		Stylesheet template.CSS
	}{sp, stylesheets[Interactive]})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, string(html))
	return err
}

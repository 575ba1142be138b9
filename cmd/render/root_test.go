package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-studio/internal/model"
	"resume-studio/internal/render"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSessionFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jo.yaml", `
personalInfo:
  name: Jo Park
  title: SRE
  email: jo@example.com
  phone: ""
  location: Seoul
  linkedin: ""
  github: github.com/jo
  summary: Keeps things up.
customization:
  theme: tech
  fontSize: small
  spacing: compact
  visibleSections:
    summary: true
    experience: true
    projects: false
    education: true
    achievements: true
    skills: false
achievements:
  - type: hackathon
    title: Winner
    companyOrPlatform: OpsJam
    dateOrDuration: "2025"
    extra: ""
`)
	s, content, err := loadSessionFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.PersonalInfo.Name != "Jo Park" || s.Customization.Theme != model.ThemeTech || s.Customization.VisibleSections.Projects {
		t.Fatalf("session = %+v", s)
	}
	last := content.Achievements[len(content.Achievements)-1]
	if last.Title != "Winner" || last.Verified {
		t.Fatalf("achievement = %+v", last)
	}
}

func TestLoadSessionFileDefaultsAndErrors(t *testing.T) {
	dir := t.TempDir()
	s, _, err := loadSessionFile(writeFile(t, dir, "empty.json", `{}`))
	if err != nil || s != model.DefaultSession() {
		t.Fatalf("empty file = %+v, %v", s, err)
	}
	if _, _, err := loadSessionFile(writeFile(t, dir, "bad.json", `{"customization":{"theme":"neon"}}`)); err == nil {
		t.Fatal("expected error for invalid customization")
	}
}

func TestRenderFileText(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "alex.json", `{}`)
	out, err := renderFile(in, render.Print, dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(out) != "alex.txt" {
		t.Fatalf("out = %s", out)
	}
	b, _ := os.ReadFile(out)
	if !strings.HasPrefix(string(b), "Alex Thompson\n") {
		t.Fatalf("text = %q", b)
	}
}

func executeRender(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderRejectsCollidingOutputs(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"a", "b"} {
		if err := os.Mkdir(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	a := writeFile(t, filepath.Join(dir, "a"), "cv.json", `{}`)
	b := writeFile(t, filepath.Join(dir, "b"), "cv.json", `{}`)
	out := filepath.Join(dir, "out")

	stdout, err := executeRender(t, "--out", out, "--profile", "print", "--text=false", a, b)
	if err == nil || !strings.Contains(err.Error(), "both render to") {
		t.Fatalf("err = %v, want collision error", err)
	}
	if stdout != "" {
		t.Fatalf("stdout = %q, want nothing written", stdout)
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Fatalf("output dir has %d files, want 0", len(entries))
	}
}

func TestRenderReportsOutputsInArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	var args []string
	var want []string
	out := filepath.Join(dir, "out")
	for _, name := range []string{"c", "a", "b", "d"} {
		args = append(args, writeFile(t, dir, name+".json", `{}`))
		want = append(want, "wrote "+filepath.Join(out, name+".html"))
	}

	stdout, err := executeRender(t, append([]string{"--out", out, "--profile", "print", "--text=false", "--workers", "4"}, args...)...)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Split(strings.TrimSpace(stdout), "\n"); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("stdout =\n%s\nwant\n%s", stdout, strings.Join(want, "\n"))
	}
	for _, name := range []string{"c", "a", "b", "d"} {
		if _, err := os.Stat(filepath.Join(out, name+".html")); err != nil {
			t.Fatal(err)
		}
	}
}

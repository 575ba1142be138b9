package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-studio/internal/model"
	"resume-studio/internal/render"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	outDir      string
	profileName string
	asText      bool
	workers     int
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "render <session-file>...",
	Short: "Render resume session files",
	Long: `Render one or more session files into HTML pages or plain text.

A session file is JSON or YAML with optional "personalInfo", "customization"
and "achievements" entries; missing entries use the defaults.

Example:
  render alex.yaml
  render --profile print --out build sessions/*.json
  render --text alex.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.Flags().StringVar(&outDir, "out", "resume-data/rendered", "Output directory")
	rootCmd.Flags().StringVar(&profileName, "profile", "interactive", "Layout: interactive or print")
	rootCmd.Flags().BoolVar(&asText, "text", false, "Write plain text instead of HTML")
	rootCmd.Flags().IntVar(&workers, "workers", 4, "Files rendered concurrently")
}

func runRender(cmd *cobra.Command, args []string) error {
	profile, err := render.ParseProfile(profileName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if workers < 1 {
		workers = 1
	}

	outputs := make([]string, len(args))
	owner := make(map[string]string, len(args))
	for i, path := range args {
		outputs[i] = outputPath(path, outDir, asText)
		if prev, ok := owner[outputs[i]]; ok {
			return fmt.Errorf("%s and %s both render to %s", prev, path, outputs[i])
		}
		owner[outputs[i]] = path
	}

	p := pool.New().WithMaxGoroutines(workers).WithErrors()
	for _, path := range args {
		p.Go(func() error {
			if _, err := renderFile(path, profile, outDir, asText); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}
	for _, out := range outputs {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	}
	return nil
}

// sessionFile mirrors the persisted keys; each part is validated with the
// same schemas as stored values.
type sessionFile struct {
	PersonalInfo  json.RawMessage `json:"personalInfo"`
	Customization json.RawMessage `json:"customization"`
	Achievements  json.RawMessage `json:"achievements"`
}

func loadSessionFile(path string) (model.Session, model.Content, error) {
	s := model.DefaultSession()
	content := model.SeedContent()

	raw, err := os.ReadFile(path)
	if err != nil {
		return s, content, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		var doc interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return s, content, fmt.Errorf("parse yaml: %w", err)
		}
		if raw, err = json.Marshal(doc); err != nil {
			return s, content, fmt.Errorf("convert yaml: %w", err)
		}
	}

	var f sessionFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return s, content, fmt.Errorf("parse session: %w", err)
	}
	if len(f.PersonalInfo) > 0 {
		if s.PersonalInfo, err = model.DecodePersonalInfo(f.PersonalInfo); err != nil {
			return s, content, fmt.Errorf("personalInfo: %w", err)
		}
	}
	if len(f.Customization) > 0 {
		if s.Customization, err = model.DecodeCustomization(f.Customization); err != nil {
			return s, content, fmt.Errorf("customization: %w", err)
		}
	}
	if len(f.Achievements) > 0 {
		items, err := model.DecodeAchievements(f.Achievements)
		if err != nil {
			return s, content, fmt.Errorf("achievements: %w", err)
		}
		content, _ = content.WithAchievements(items)
	}
	return s, content, nil
}

func renderFile(path string, profile render.Profile, dir string, text bool) (string, error) {
	s, content, err := loadSessionFile(path)
	if err != nil {
		return "", err
	}
	doc, err := render.Compose(profile, s, content)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := render.RenderPage(&buf, doc, render.PageOptions{}); err != nil {
		return "", err
	}

	out := outputPath(path, dir, text)
	data := buf.Bytes()
	if text {
		plain, err := render.DocumentText(&buf)
		if err != nil {
			return "", err
		}
		data = []byte(plain + "\n")
	}
	return out, os.WriteFile(out, data, 0o644)
}

// outputPath is <dir>/<input basename>.html, or .txt for text output.
func outputPath(path, dir string, text bool) string {
	ext := ".html"
	if text {
		ext = ".txt"
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(dir, base+ext)
}

// Package summary builds a short professional summary from personal info.
// Generation is deterministic and offline.
package summary

import (
	"strings"
	"unicode"

	"resume-studio/internal/model"
)

type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
)

const DefaultMaxSentences = 3

// Options tunes Generate. The zero value means professional tone and
// DefaultMaxSentences.
type Options struct {
	Tone         Tone
	MaxSentences int
}

func (o Options) withDefaults() Options {
	if o.Tone == "" {
		o.Tone = ToneProfessional
	}
	if o.MaxSentences <= 0 {
		o.MaxSentences = DefaultMaxSentences
	}
	return o
}

// Generate reads only Title, LinkedIn and GitHub from info.
func Generate(info model.PersonalInfo, opts Options) string {
	opts = opts.withDefaults()

	pieces := make([]string, 0, 3)

	if info.Title != "" {
		pieces = append(pieces, info.Title+" with proven experience in building scalable web applications and collaborating across teams.")
	} else {
		pieces = append(pieces, "Results-driven software professional with experience building web applications.")
	}

	var skills []string
	if info.LinkedIn != "" {
		skills = append(skills, "professional networking and open-source contributions")
	}
	if info.GitHub != "" {
		skills = append(skills, "hands-on projects and code samples")
	}
	if len(skills) > 0 {
		pieces = append(pieces, "Skilled in "+strings.Join(skills, " and ")+".")
	}

	if opts.Tone == ToneFriendly {
		pieces = append(pieces, "Eager to learn, collaborate, and deliver impact on user-facing products.")
	} else {
		pieces = append(pieces, "Passionate about delivering robust, maintainable solutions that drive measurable results.")
	}

	sentences := SplitSentences(strings.Join(pieces, " "))
	if len(sentences) > opts.MaxSentences {
		sentences = sentences[:opts.MaxSentences]
	}
	return strings.TrimSpace(strings.Join(sentences, " "))
}

// SplitSentences splits text at every whitespace run that directly follows
// a period. Empty pieces are dropped.
func SplitSentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' || i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		out = appendNonEmpty(out, string(runes[start:i+1]))
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(runes) {
		out = appendNonEmpty(out, string(runes[start:]))
	}
	return out
}

func appendNonEmpty(out []string, s string) []string {
	if s == "" {
		return out
	}
	return append(out, s)
}

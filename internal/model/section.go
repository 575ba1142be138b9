package model

import "fmt"

type SectionKey string

const (
	SectionSummary      SectionKey = "summary"
	SectionExperience   SectionKey = "experience"
	SectionProjects     SectionKey = "projects"
	SectionEducation    SectionKey = "education"
	SectionAchievements SectionKey = "achievements"
	SectionSkills       SectionKey = "skills"
)

// SectionOrder is the fixed document order of toggleable sections.
func SectionOrder() []SectionKey {
	return []SectionKey{
		SectionSummary,
		SectionExperience,
		SectionProjects,
		SectionEducation,
		SectionAchievements,
		SectionSkills,
	}
}

// Heading is the section title shown in every rendering of the document.
func (k SectionKey) Heading() string {
	switch k {
	case SectionSummary:
		return "Professional Summary"
	case SectionExperience:
		return "Experience"
	case SectionProjects:
		return "Projects"
	case SectionEducation:
		return "Education & Certifications"
	case SectionAchievements:
		return "Achievements"
	case SectionSkills:
		return "Skills"
	}
	panic(fmt.Sprintf("model: unknown section %q", string(k)))
}

package model

import (
	"strings"
)

type AchievementType string

const (
	AchievementInternship AchievementType = "internship"
	AchievementCourse     AchievementType = "course"
	AchievementHackathon  AchievementType = "hackathon"
	AchievementProject    AchievementType = "project"
)

// StoredAchievement is the user-created record persisted under
// KeyAchievements. Records are addressed by their position in the list.
type StoredAchievement struct {
	Type              AchievementType `json:"type"`
	Title             string          `json:"title"`
	CompanyOrPlatform string          `json:"companyOrPlatform"`
	DateOrDuration    string          `json:"dateOrDuration"`
	Extra             string          `json:"extra"`
}

// UnverifiedStatus labels user projects, which carry no verification.
const UnverifiedStatus = "Unverified"

// WithAchievements returns c extended by the user records, appended after
// the seed entries of the matching section. Records of an unknown type are
// skipped and reported back.
func (c Content) WithAchievements(items []StoredAchievement) (Content, []StoredAchievement) {
	out := Content{
		Experiences:    append([]Experience(nil), c.Experiences...),
		Projects:       append([]Project(nil), c.Projects...),
		Education:      append([]Education(nil), c.Education...),
		Certifications: append([]Certification(nil), c.Certifications...),
		Achievements:   append([]Achievement(nil), c.Achievements...),
		Skills: Skills{
			Languages:  append([]string(nil), c.Skills.Languages...),
			Frameworks: append([]string(nil), c.Skills.Frameworks...),
			Tools:      append([]string(nil), c.Skills.Tools...),
		},
	}
	var skipped []StoredAchievement
	for _, it := range items {
		switch it.Type {
		case AchievementInternship:
			out.Experiences = append(out.Experiences, Experience{
				Title:    it.Title,
				Company:  it.CompanyOrPlatform,
				Duration: it.DateOrDuration,
				Details:  detailLines(it.Extra),
			})
		case AchievementCourse:
			out.Certifications = append(out.Certifications, Certification{
				Title:     it.Title,
				Platform:  it.CompanyOrPlatform,
				Completed: it.DateOrDuration,
			})
		case AchievementHackathon:
			out.Achievements = append(out.Achievements, Achievement{
				Title:    it.Title,
				Subtitle: it.CompanyOrPlatform,
				Date:     it.DateOrDuration,
			})
		case AchievementProject:
			out.Projects = append(out.Projects, Project{
				Title:       it.Title,
				Tech:        it.CompanyOrPlatform,
				Status:      UnverifiedStatus,
				Description: strings.TrimSpace(it.Extra),
			})
		default:
			skipped = append(skipped, it)
		}
	}
	return out, skipped
}

func detailLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

package model

type Experience struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Duration string   `json:"duration"`
	Verified bool     `json:"verified,omitempty"`
	Details  []string `json:"details,omitempty"`
}

type Project struct {
	Title       string `json:"title"`
	Tech        string `json:"tech"`
	Status      string `json:"status"`
	Verified    bool   `json:"verified,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Years       string `json:"years"`
}

type Certification struct {
	Title     string `json:"title"`
	Platform  string `json:"platform"`
	Completed string `json:"completed"`
	Verified  bool   `json:"verified,omitempty"`
}

type Achievement struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Date     string `json:"date"`
	Verified bool   `json:"verified,omitempty"`
}

type Skills struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Tools      []string `json:"tools"`
}

// Content is everything the section renderers draw besides PersonalInfo.
type Content struct {
	Experiences    []Experience    `json:"experiences"`
	Projects       []Project       `json:"projects"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
	Achievements   []Achievement   `json:"achievements"`
	Skills         Skills          `json:"skills"`
}

// SeedContent returns the demo records. Each call builds new slices.
func SeedContent() Content {
	return Content{
		Experiences: []Experience{
			{
				Title:    "Software Engineering Intern",
				Company:  "TechCorp Inc.",
				Duration: "Jun 2024 - Aug 2024",
				Verified: true,
				Details: []string{
					"Developed RESTful APIs using Node.js and Express, improving response time by 40%",
					"Collaborated with cross-functional teams to deliver features for 100K+ users",
					"Implemented automated testing, increasing code coverage from 60% to 85%",
				},
			},
			{
				Title:    "Frontend Developer Intern",
				Company:  "StartupXYZ",
				Duration: "Jan 2024 - Mar 2024",
				Verified: true,
				Details: []string{
					"Built responsive web applications using React and TypeScript",
					"Optimized application performance, reducing load time by 30%",
					"Contributed to design system development and component library",
				},
			},
		},
		Projects: []Project{
			{
				Title:       "AI Resume Builder",
				Tech:        "React, Node.js, OpenAI API",
				Status:      "Completed",
				Verified:    true,
				Description: "Developed an intelligent resume building platform that auto-generates professional resumes from user achievements. Integrated OpenAI for smart content generation.",
			},
			{
				Title:       "E-Commerce Platform",
				Tech:        "Next.js, PostgreSQL, Stripe",
				Status:      "In Progress",
				Description: "Building a full-featured e-commerce solution with payment integration, inventory management, and real-time analytics dashboard.",
			},
		},
		Education: []Education{
			{Degree: "Bachelor of Science in Computer Science", Institution: "University of California, Berkeley", Years: "2022 - 2026"},
		},
		Certifications: []Certification{
			{Title: "Advanced React & TypeScript", Platform: "Udemy", Completed: "Sep 2024", Verified: true},
			{Title: "Full-Stack Web Development", Platform: "Coursera", Completed: "Jul 2024", Verified: true},
		},
		Achievements: []Achievement{
			{Title: "1st Place", Subtitle: "HackTheCity 2024", Date: "Oct 2024", Verified: true},
			{Title: "Top 10", Subtitle: "CodeFest National", Date: "Aug 2024", Verified: true},
		},
		Skills: Skills{
			Languages:  []string{"JavaScript", "TypeScript", "Python", "Java", "SQL"},
			Frameworks: []string{"React", "Next.js", "Node.js", "Express", "TailwindCSS"},
			Tools:      []string{"Git", "Docker", "PostgreSQL", "MongoDB", "AWS"},
		},
	}
}

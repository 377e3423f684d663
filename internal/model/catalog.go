package model

// PredefinedTechnologies is the built-in catalog of known technologies per
// category. Names not listed here are user-entered and classified as other.
var PredefinedTechnologies = map[TechnologyCategory][]string{
	CategoryFrontend: {
		"JavaScript", "TypeScript", "React", "Vue.js", "Angular", "Next.js", "HTML/CSS",
	},
	CategoryBackend: {
		"Java", "Python", "Node.js", "C#", "PHP", "Go", "Ruby",
	},
	CategoryFramework: {
		"Spring Boot", "Django", "Express.js", "Laravel", ".NET", "Ruby on Rails",
	},
	CategoryDatabase: {
		"MySQL", "PostgreSQL", "Oracle", "MongoDB", "Redis", "SQL Server",
	},
	CategoryCloud: {
		"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform",
	},
	CategoryDevTools: {
		"Git", "GitHub", "GitLab", "Jenkins", "GitHub Actions", "JIRA",
	},
}

// CategoryFor looks up a technology name in the catalog. The second result
// reports whether the name was found; on a miss the category is other.
// Categories are scanned in display order so the result is deterministic.
func CategoryFor(name string) (TechnologyCategory, bool) {
	for _, c := range TechnologyCategories {
		for _, known := range PredefinedTechnologies[c] {
			if known == name {
				return c, true
			}
		}
	}
	return CategoryOther, false
}

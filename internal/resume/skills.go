package resume

// Technical skills recognized by the parser, grouped by category. Matching is
// case-insensitive on word boundaries.
var skillsDB = map[string][]string{
	"Programming Languages": {"Python", "Java", "C++", "C#", "JavaScript", "TypeScript", "PHP", "Ruby", "Go", "Rust", "Swift", "Kotlin"},
	"Web Technologies":      {"HTML", "CSS", "React", "Angular", "Vue.js", "Node.js", "Django", "Flask", "Spring", "Express.js", "jQuery"},
	"Databases":             {"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Oracle", "SQLite", "Cassandra"},
	"Data Science & AI":     {"Machine Learning", "Deep Learning", "Data Science", "NLP", "Computer Vision", "TensorFlow", "Keras", "PyTorch", "Pandas", "NumPy", "SciPy", "Scikit-learn"},
	"DevOps & Cloud":        {"Docker", "Kubernetes", "AWS", "Azure", "GCP", "CI/CD", "Jenkins", "Git", "Linux", "Bash"},
	"Mobile Development":    {"Android", "iOS", "React Native", "Flutter", "Xamarin"},
	"Other":                 {"REST API", "GraphQL", "Microservices", "Agile", "Scrum", "TDD", "OOP"},
}

// SkillCategories returns the category names in no particular order.
func SkillCategories() []string {
	out := make([]string, 0, len(skillsDB))
	for c := range skillsDB {
		out = append(out, c)
	}
	return out
}

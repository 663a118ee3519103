package extractor

// DefaultSkills is the starter vocabulary written by scripts/seed_skills.
var DefaultSkills = []string{
	"Python", "Java", "JavaScript", "TypeScript", "Golang", "C++", "C#", "R", "SQL",
	"HTML", "CSS", "React", "Angular", "Node.js", "Django", "Flask", "Spring Boot",
	"Machine Learning", "Deep Learning", "Data Analysis", "Data Entry", "Power BI", "Tableau",
	"Excel", "MS Office", "Tally", "Git", "Docker", "Kubernetes", "AWS", "Azure",
	"Google Cloud", "Linux", "Networking", "Communication", "Teamwork", "Leadership",
	"Problem Solving", "Time Management", "Customer Service", "Sales", "Marketing",
	"Accounting", "Welding", "Electrician", "Plumbing", "Driving", "Tailoring", "Nursing",
}

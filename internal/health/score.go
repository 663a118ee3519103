// Package health scores how complete a candidate profile is.
package health

import (
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/profile-screener/internal/models"
)

const (
	MaxScore = 100

	minSkills         = 5
	pointsPerDocument = 3
	excellentFrom     = 90
	goodFrom          = 70
	averageFrom       = 50
)

// Row weights. Full credit on every row adds up to MaxScore.
const (
	weightName        = 5
	weightPhone       = 5
	weightEmail       = 5
	weightImage       = 5
	weightEducation   = 10
	weightInstitution = 5
	weightYear        = 5
	weightSkills      = 15
	weightPreferences = 10
	weightExperience  = 10
	weightLocation    = 5
	weightResume      = 10
	weightDocuments   = 10
)

type scorecard struct {
	score     int
	breakdown []models.BreakdownItem
	tips      []string
}

func (s *scorecard) row(label string, points, max int, tips ...string) {
	s.score += points
	s.breakdown = append(s.breakdown, models.BreakdownItem{Label: label, Points: points, Max: max})
	s.tips = append(s.tips, tips...)
}

// check awards max points when ok, otherwise zero points and the tip.
func (s *scorecard) check(ok bool, label string, max int, tip string) {
	if ok {
		s.row(label, max, max)
		return
	}
	s.row(label, 0, max, tip)
}

// Score computes the completeness score of a profile. The breakdown always
// has one entry per row and its points sum to Score.
func Score(p models.ProfileForm) models.HealthScore {
	s := &scorecard{tips: []string{}}

	s.check(len(strings.TrimSpace(p.Name)) > 1, "Full Name", weightName,
		"Add your full name to improve your profile")
	s.check(len(strings.TrimSpace(p.Phone)) >= 10, "Phone Number", weightPhone,
		"Add a valid 10-digit phone number")
	s.check(strings.Contains(p.Email, "@"), "Email Address", weightEmail,
		"Add your email address")
	s.check(p.ProfileImage, "Profile Image", weightImage,
		"Upload a profile photo to stand out")
	s.check(strings.TrimSpace(string(p.Education)) != "", "Education Qualification", weightEducation,
		"Select your highest education qualification")
	s.check(len(strings.TrimSpace(p.InstitutionName)) > 2, "Institution Details", weightInstitution,
		"Add your institution/college name")
	s.check(p.YearPassed > 0, "Year of Passing", weightYear,
		"Select your year of passing")

	skills(s, len(p.Skills))
	preferences(s, len(p.PreferredLocations) > 0, len(p.JobFunctions) > 0)

	s.check(p.ExperienceYears > 0 || p.IsFresher || len(p.ExperienceEntries) > 0, "Experience Details", weightExperience,
		"Add your experience details or mark as fresher")
	s.check(len(p.PreferredLocations) > 0, "Location/Address", weightLocation,
		"Select at least one preferred location")
	s.check(p.ResumeUploaded, "Resume Uploaded", weightResume,
		"Upload your resume PDF for better visibility")

	documents(s, p.DocumentCount())

	score := s.score
	if score > MaxScore {
		score = MaxScore
	}
	return models.HealthScore{
		Score:     score,
		MaxScore:  MaxScore,
		Grade:     GradeFor(score),
		Breakdown: s.breakdown,
		Tips:      s.tips,
	}
}

func skills(s *scorecard, count int) {
	switch {
	case count >= minSkills:
		s.row(fmt.Sprintf("Skills (%d+ added)", minSkills), weightSkills, weightSkills)
	case count > 0:
		points := int(math.Round(float64(weightSkills) * float64(count) / minSkills))
		s.row(fmt.Sprintf("Skills (%d/%d minimum)", count, minSkills), points, weightSkills,
			fmt.Sprintf("Add %d more skills (minimum %d required)", minSkills-count, minSkills))
	default:
		s.row("Skills (none added)", 0, weightSkills,
			fmt.Sprintf("Add at least %d skills, this is required", minSkills))
	}
}

func preferences(s *scorecard, hasLocation, hasFunctions bool) {
	switch {
	case hasLocation && hasFunctions:
		s.row("Job Preferences", weightPreferences, weightPreferences)
	case hasLocation || hasFunctions:
		var tips []string
		if !hasLocation {
			tips = append(tips, "Select your preferred job locations")
		}
		if !hasFunctions {
			tips = append(tips, "Select interested job functions")
		}
		s.row("Job Preferences (partial)", weightPreferences/2, weightPreferences, tips...)
	default:
		s.row("Job Preferences", 0, weightPreferences, "Add job location and function preferences")
	}
}

func documents(s *scorecard, count int) {
	if count == 0 {
		s.row("Documents (none uploaded)", 0, weightDocuments,
			"Upload identity card and certificates for verification")
		return
	}
	points := count * pointsPerDocument
	if points > weightDocuments {
		points = weightDocuments
	}
	s.row(fmt.Sprintf("Documents (%d uploaded)", count), points, weightDocuments)
}

func GradeFor(score int) models.Grade {
	switch {
	case score >= excellentFrom:
		return models.GradeExcellent
	case score >= goodFrom:
		return models.GradeGood
	case score >= averageFrom:
		return models.GradeAverage
	default:
		return models.GradeNeedsImprovement
	}
}

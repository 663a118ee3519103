package models

import "github.com/google/uuid"

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Color is the display color the presentation layer uses for the level.
func (l RiskLevel) Color() string {
	switch l {
	case RiskLow:
		return "green"
	case RiskMedium:
		return "orange"
	default:
		return "red"
	}
}

// CheckResult is the outcome of one field validator.
type CheckResult struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

type FraudReport struct {
	RiskScore    float64                `json:"risk_score"`
	RiskLevel    RiskLevel              `json:"risk_level"`
	TotalChecks  int                    `json:"total_checks"`
	PassedChecks int                    `json:"passed_checks"`
	FailedChecks int                    `json:"failed_checks"`
	Flags        []string               `json:"flags"`
	Checks       map[string]CheckResult `json:"checks"`
}

type BreakdownItem struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
	Max    int    `json:"max"`
}

type Grade string

const (
	GradeExcellent        Grade = "Excellent"
	GradeGood             Grade = "Good"
	GradeAverage          Grade = "Average"
	GradeNeedsImprovement Grade = "Needs Improvement"
)

type HealthScore struct {
	Score     int             `json:"score"`
	MaxScore  int             `json:"max_score"`
	Grade     Grade           `json:"grade"`
	Breakdown []BreakdownItem `json:"breakdown"`
	Tips      []string        `json:"tips"`
}

// DuplicateMatch points at an earlier submission with near-identical text.
type DuplicateMatch struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	Similarity   float32   `json:"similarity"`
}

// ScreeningReport is everything the presentation layer needs for one submission.
type ScreeningReport struct {
	RawText   string          `json:"raw_text"`
	Source    Source          `json:"source"`
	Extracted ExtractedRecord `json:"extracted"`
	Profile   ProfileForm     `json:"profile"`
	Fraud     FraudReport     `json:"fraud"`
	Health    HealthScore     `json:"health"`
	Duplicate *DuplicateMatch `json:"duplicate,omitempty"`
}

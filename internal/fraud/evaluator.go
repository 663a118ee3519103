// Package fraud validates candidate fields and aggregates the results into a
// risk report. Every validator treats an empty field as valid: missing data
// is a completeness problem, not a fraud signal.
package fraud

import (
	"math"
	"strings"

	"alfredoptarigan/profile-screener/internal/models"
)

// Check names, in evaluation order.
const (
	CheckPhoneName      = "phone"
	CheckEmailName      = "email"
	CheckNationalIDName = "national_id"
	CheckNameName       = "name"
	CheckSkillsName     = "skills"
	CheckExperienceName = "experience"
)

// CheckOrder lists the report's check names in the order they are evaluated.
var CheckOrder = []string{
	CheckPhoneName,
	CheckEmailName,
	CheckNationalIDName,
	CheckNameName,
	CheckSkillsName,
	CheckExperienceName,
}

const (
	DefaultPhoneLeadingDigits = "6789"

	mediumRiskFrom = 30.0
	highRiskFrom   = 60.0
)

type Config struct {
	// PhoneLeadingDigits lists the digits a valid mobile number may start with.
	PhoneLeadingDigits string
	// DisposableDomains are added to the built-in disposable domain list.
	DisposableDomains []string
}

// Evaluator runs the field validators. It holds only read-only tables and is
// safe for concurrent use.
type Evaluator struct {
	leadingDigits string
	disposable    map[string]bool
}

func NewEvaluator(cfg Config) *Evaluator {
	leading := DefaultPhoneLeadingDigits
	if d := strings.TrimSpace(cfg.PhoneLeadingDigits); d != "" && allDigits.MatchString(d) {
		leading = d
	}

	disposable := make(map[string]bool, len(disposableDomains)+len(cfg.DisposableDomains))
	for _, d := range disposableDomains {
		disposable[d] = true
	}
	for _, d := range cfg.DisposableDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			disposable[d] = true
		}
	}

	return &Evaluator{leadingDigits: leading, disposable: disposable}
}

type tally struct {
	report models.FraudReport
}

func (t *tally) add(name string, present bool, res models.CheckResult) {
	t.report.Checks[name] = res
	if !present {
		return
	}
	t.report.TotalChecks++
	if res.Valid {
		t.report.PassedChecks++
		return
	}
	t.report.FailedChecks++
	t.report.Flags = append(t.report.Flags, res.Issues...)
}

// Evaluate runs every validator against the form. Only present fields are
// counted, except experience which always counts.
func (e *Evaluator) Evaluate(form models.ProfileForm) models.FraudReport {
	t := &tally{report: models.FraudReport{
		Flags:  []string{},
		Checks: make(map[string]models.CheckResult, len(CheckOrder)),
	}}

	t.add(CheckPhoneName, present(form.Phone), e.CheckPhone(form.Phone))
	t.add(CheckEmailName, present(form.Email), e.CheckEmail(form.Email))
	t.add(CheckNationalIDName, present(form.NationalID), e.CheckNationalID(form.NationalID))
	t.add(CheckNameName, present(form.Name), e.CheckName(form.Name))
	t.add(CheckSkillsName, len(form.Skills) > 0, e.CheckSkills(form.Skills))
	t.add(CheckExperienceName, true, e.CheckExperience(form.ExperienceYears, form.ExperienceMonths))

	r := &t.report
	r.RiskScore = RiskScore(r.FailedChecks, r.TotalChecks, r.Flags)
	r.RiskLevel = LevelFor(r.RiskScore)
	return *r
}

// EvaluateRecord evaluates the fields found by the extractor, using the first
// email and phone.
func (e *Evaluator) EvaluateRecord(rec models.ExtractedRecord) models.FraudReport {
	return e.Evaluate(models.ProfileFromRecord(rec, false))
}

// RiskScore is the share of failed checks as a percentage plus a severity
// boost per issue, clamped to [0,100] and rounded to one decimal.
func RiskScore(failed, total int, issues []string) float64 {
	score := 0.0
	if total > 0 {
		score = float64(failed) / float64(total) * 100
	}
	for _, issue := range issues {
		score += severity(issue)
	}
	score = math.Max(0, math.Min(100, score))
	return math.Round(score*10) / 10
}

// severity returns the boost for one issue. The first matching category wins.
func severity(issue string) float64 {
	lower := strings.ToLower(issue)
	switch {
	case strings.Contains(lower, "fake"), strings.Contains(lower, "spam"):
		return 10
	case strings.Contains(lower, "disposable"):
		return 15
	case strings.Contains(lower, "test"), strings.Contains(lower, "placeholder"):
		return 10
	default:
		return 0
	}
}

func LevelFor(score float64) models.RiskLevel {
	switch {
	case score < mediumRiskFrom:
		return models.RiskLow
	case score < highRiskFrom:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

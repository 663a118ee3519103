package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/profile-screener/internal/models"
)

func cleanForm() models.ProfileForm {
	return models.ProfileForm{
		Name:       "Rajesh Kumar Sharma",
		Phone:      "9123456780",
		Email:      "rajesh.sharma@gmail.com",
		NationalID: "234567890123",
		Skills:     []string{"Python", "SQL"},
	}
}

func TestEvaluate_EmptyFormCountsOnlyExperience(t *testing.T) {
	report := NewEvaluator(Config{}).Evaluate(models.ProfileForm{})

	assert.Equal(t, 1, report.TotalChecks)
	assert.Equal(t, 1, report.PassedChecks)
	assert.Equal(t, 0, report.FailedChecks)
	assert.Equal(t, 0.0, report.RiskScore)
	assert.Equal(t, models.RiskLow, report.RiskLevel)
	assert.Empty(t, report.Flags)
	require.Len(t, report.Checks, len(CheckOrder))
	for _, name := range CheckOrder {
		assert.True(t, report.Checks[name].Valid, name)
	}
}

func TestEvaluate_CleanForm(t *testing.T) {
	report := NewEvaluator(Config{}).Evaluate(cleanForm())

	assert.Equal(t, 6, report.TotalChecks)
	assert.Equal(t, 6, report.PassedChecks)
	assert.Equal(t, 0.0, report.RiskScore)
	assert.Equal(t, models.RiskLow, report.RiskLevel)
}

func TestEvaluate_SingleFieldScenarios(t *testing.T) {
	tests := []struct {
		name  string
		form  models.ProfileForm
		score float64
		level models.RiskLevel
		flags int
	}{
		{"fake phone", models.ProfileForm{Phone: "9876543210"}, 70, models.RiskHigh, 2},
		{"disposable email", models.ProfileForm{Email: "a@mailinator.com"}, 65, models.RiskHigh, 2},
		{"placeholder name", models.ProfileForm{Name: "test"}, 60, models.RiskHigh, 1},
		{"duplicate skills", models.ProfileForm{Skills: []string{"Python", "Python", "SQL"}}, 50, models.RiskMedium, 1},
		{"unrealistic experience", models.ProfileForm{ExperienceYears: 55}, 100, models.RiskHigh, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewEvaluator(Config{}).Evaluate(tt.form)

			assert.Equal(t, tt.score, report.RiskScore)
			assert.Equal(t, tt.level, report.RiskLevel)
			assert.Len(t, report.Flags, tt.flags)
			assert.Equal(t, 1, report.FailedChecks)
		})
	}
}

func TestEvaluate_MixedFormRoundsScore(t *testing.T) {
	form := cleanForm()
	form.Phone = "5123456789"

	report := NewEvaluator(Config{}).Evaluate(form)

	assert.Equal(t, 6, report.TotalChecks)
	assert.Equal(t, 1, report.FailedChecks)
	assert.Equal(t, 16.7, report.RiskScore)
	assert.Equal(t, models.RiskLow, report.RiskLevel)
	assert.Equal(t, []string{"Phone number must start with one of 6789 (starts with 5)"}, report.Flags)
}

func TestEvaluate_MonotonicInFailures(t *testing.T) {
	e := NewEvaluator(Config{})
	form := cleanForm()
	steps := []func(*models.ProfileForm){
		func(f *models.ProfileForm) { f.Phone = "5123456789" },
		func(f *models.ProfileForm) { f.NationalID = "1345 6789 0123" },
		func(f *models.ProfileForm) { f.Email = "x@gmail" },
		func(f *models.ProfileForm) { f.Skills = append(f.Skills, "python") },
		func(f *models.ProfileForm) { f.Name = "admin" },
		func(f *models.ProfileForm) { f.ExperienceYears = 45 },
	}

	prev := e.Evaluate(form).RiskScore
	for i, step := range steps {
		step(&form)
		score := e.Evaluate(form).RiskScore
		assert.GreaterOrEqual(t, score, prev, "step %d", i)
		prev = score
	}
	assert.Equal(t, 100.0, prev)
}

func TestRiskScore(t *testing.T) {
	assert.Equal(t, 0.0, RiskScore(0, 0, nil))
	assert.Equal(t, 33.3, RiskScore(1, 3, []string{"plain issue"}))
	assert.Equal(t, 100.0, RiskScore(3, 3, []string{"fake", "fake", "spam"}))
	// first matching category wins for a single issue
	assert.Equal(t, 10.0, RiskScore(0, 1, []string{"Disposable/temporary email domain detected: spambox.us"}))

	for total := 1; total <= 6; total++ {
		for failed := 0; failed < total; failed++ {
			assert.GreaterOrEqual(t, RiskScore(failed+1, total+1, nil), RiskScore(failed, total, nil))
		}
	}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, models.RiskLow, LevelFor(29.9))
	assert.Equal(t, models.RiskMedium, LevelFor(30))
	assert.Equal(t, models.RiskMedium, LevelFor(59.9))
	assert.Equal(t, models.RiskHigh, LevelFor(60))
}

func TestEvaluateRecord(t *testing.T) {
	years := 3.5
	rec := models.ExtractedRecord{
		Name:            "Anita Desai",
		Emails:          []string{"anita@mailinator.com", "anita@gmail.com"},
		Phones:          []string{"9123456780"},
		ExperienceYears: &years,
	}

	report := NewEvaluator(Config{}).EvaluateRecord(rec)

	assert.Equal(t, 4, report.TotalChecks)
	assert.False(t, report.Checks[CheckEmailName].Valid)
	assert.True(t, report.Checks[CheckPhoneName].Valid)
}

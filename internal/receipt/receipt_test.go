package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/profile-screener/internal/models"
)

func TestString_ContainsLabelledValues(t *testing.T) {
	r := Receipt{
		SubmissionID: "3f0c2a56-8d7c-4a61-9d3b-0b1f6f1f4c11",
		GeneratedAt:  time.Date(2026, time.March, 1, 10, 30, 0, 0, time.UTC),
		Profile: models.ProfileForm{
			Name:               "Rajesh Kumar Sharma",
			Phone:              "9123456780",
			Email:              "rajesh.sharma@gmail.com",
			NationalID:         "2345 6789 0123",
			Education:          models.EducationUndergraduate,
			InstitutionName:    "JNTU Hyderabad",
			YearPassed:         2020,
			Skills:             []string{"Python", "SQL", " "},
			PreferredLocations: []string{"Hyderabad"},
			ExperienceYears:    3,
			ExperienceMonths:   6,
			IdentityCard:       true,
		},
		Fraud: models.FraudReport{
			RiskScore:    16.7,
			RiskLevel:    models.RiskLow,
			TotalChecks:  6,
			PassedChecks: 5,
			FailedChecks: 1,
			Flags:        []string{"Phone number must start with one of 6789 (starts with 5)"},
		},
		Health: models.HealthScore{
			Score:    72,
			MaxScore: 100,
			Grade:    models.GradeGood,
			Tips:     []string{"Upload a profile photo to stand out"},
		},
	}

	out, err := String(r)
	require.NoError(t, err)

	for _, line := range []string{
		"Submission ID       : 3f0c2a56-8d7c-4a61-9d3b-0b1f6f1f4c11",
		"Generated At        : 2026-03-01 10:30 UTC",
		"Name                : Rajesh Kumar Sharma",
		"National ID         : XXXX XXXX 0123",
		"Gender              : -",
		"Education           : Undergraduate (B.Tech/BE/BBA/BCA/BSc/BA/BCom)",
		"Year of Passing     : 2020",
		"Experience          : 3 years 6 months",
		"Skills              : Python, SQL",
		"Job Functions       : -",
		"Documents Uploaded  : 1",
		"Fraud Risk Level    : LOW",
		"Fraud Risk Score    : 16.7 / 100",
		"Checks Passed       : 5 of 6",
		"Profile Health      : 72 / 100 (Good)",
		"- Phone number must start with one of 6789 (starts with 5)",
		"- Upload a profile photo to stand out",
	} {
		assert.Contains(t, out, line+"\n")
	}
	assert.NotContains(t, out, "2345 6789")
}

func TestString_EmptyReceipt(t *testing.T) {
	out, err := String(Receipt{Profile: models.ProfileForm{IsFresher: true}})
	require.NoError(t, err)

	assert.Contains(t, out, "Name                : -\n")
	assert.Contains(t, out, "Experience          : Fresher\n")
	assert.NotContains(t, out, "FLAGS")
	assert.NotContains(t, out, "IMPROVEMENT TIPS")
	assert.True(t, strings.HasSuffix(out, "==========================================\n"))
}

func TestMaskNationalID(t *testing.T) {
	assert.Equal(t, "-", maskNationalID(""))
	assert.Equal(t, "123", maskNationalID("123"))
	assert.Equal(t, "XXXX XXXX 9012", maskNationalID("3456-7890-9012"))
}

// Package receipt renders the plain-text registration receipt a candidate can
// download after submitting the form.
package receipt

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"alfredoptarigan/profile-screener/internal/models"
)

const timeLayout = "2006-01-02 15:04 MST"

type Receipt struct {
	SubmissionID string
	GeneratedAt  time.Time
	Profile      models.ProfileForm
	Fraud        models.FraudReport
	Health       models.HealthScore
}

const body = `==========================================
        PROFILE REGISTRATION RECEIPT
==========================================
Submission ID       : {{ .SubmissionID | orDash }}
Generated At        : {{ .GeneratedAt | stamp }}

------------------ CANDIDATE -------------
Name                : {{ .Profile.Name | orDash }}
Phone               : {{ .Profile.Phone | orDash }}
Email               : {{ .Profile.Email | orDash }}
National ID         : {{ .Profile.NationalID | mask }}
Gender              : {{ .Profile.Gender | orDash }}
Education           : {{ education .Profile.Education }}
Institution         : {{ .Profile.InstitutionName | orDash }}
Year of Passing     : {{ year .Profile.YearPassed }}
Experience          : {{ experience .Profile }}
Skills              : {{ join .Profile.Skills }}
Preferred Locations : {{ join .Profile.PreferredLocations }}
Job Functions       : {{ join .Profile.JobFunctions }}
Documents Uploaded  : {{ .Profile.DocumentCount }}

------------------ ASSESSMENT ------------
Fraud Risk Level    : {{ .Fraud.RiskLevel }}
Fraud Risk Score    : {{ printf "%.1f" .Fraud.RiskScore }} / 100
Checks Passed       : {{ .Fraud.PassedChecks }} of {{ .Fraud.TotalChecks }}
Profile Health      : {{ .Health.Score }} / {{ .Health.MaxScore }} ({{ .Health.Grade }})
{{- if .Fraud.Flags }}

------------------ FLAGS -----------------
{{- range .Fraud.Flags }}
- {{ . }}
{{- end }}
{{- end }}
{{- if .Health.Tips }}

------------------ IMPROVEMENT TIPS ------
{{- range .Health.Tips }}
- {{ . }}
{{- end }}
{{- end }}
==========================================
`

var tmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"orDash":     orDash,
	"mask":       maskNationalID,
	"join":       joinList,
	"stamp":      stamp,
	"education":  education,
	"year":       year,
	"experience": experience,
}).Parse(body))

func Render(w io.Writer, r Receipt) error {
	if err := tmpl.Execute(w, r); err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}
	return nil
}

func String(r Receipt) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}

// maskNationalID keeps only the last four digits.
func maskNationalID(id string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, id)
	if digits == "" {
		return "-"
	}
	if len(digits) <= 4 {
		return digits
	}
	return "XXXX XXXX " + digits[len(digits)-4:]
}

func joinList(items []string) string {
	var kept []string
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return "-"
	}
	return strings.Join(kept, ", ")
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}

func education(level models.EducationLevel) string {
	if !level.Valid() {
		return orDash(string(level))
	}
	return level.Label()
}

func year(y int) string {
	if y <= 0 {
		return "-"
	}
	return fmt.Sprint(y)
}

func experience(p models.ProfileForm) string {
	switch {
	case p.ExperienceYears > 0 || p.ExperienceMonths > 0:
		return fmt.Sprintf("%d years %d months", p.ExperienceYears, p.ExperienceMonths)
	case p.IsFresher:
		return "Fresher"
	default:
		return "-"
	}
}

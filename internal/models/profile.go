package models

// ExperienceEntry is one row of the experience section of the registration form.
type ExperienceEntry struct {
	Company     string `json:"company"`
	Designation string `json:"designation,omitempty"`
	FromYear    int    `json:"from_year,omitempty"`
	ToYear      int    `json:"to_year,omitempty"`
}

// ProfileForm is the editable registration form, either prefilled from an
// ExtractedRecord or submitted by the candidate.
type ProfileForm struct {
	Name               string            `json:"name"`
	Phone              string            `json:"phone"`
	Email              string            `json:"email"`
	NationalID         string            `json:"national_id"`
	Gender             string            `json:"gender,omitempty"`
	Education          EducationLevel    `json:"education,omitempty"`
	InstitutionName    string            `json:"institution_name"`
	YearPassed         int               `json:"year_passed,omitempty"`
	Skills             []string          `json:"skills"`
	PreferredLocations []string          `json:"preferred_locations"`
	JobFunctions       []string          `json:"job_functions"`
	ExperienceYears    int               `json:"experience_years"`
	ExperienceMonths   int               `json:"experience_months"`
	IsFresher          bool              `json:"is_fresher"`
	ExperienceEntries  []ExperienceEntry `json:"experience_entries,omitempty"`
	ProfileImage       bool              `json:"profile_image"`
	ResumeUploaded     bool              `json:"resume_uploaded"`
	IdentityCard       bool              `json:"identity_card"`
	Certificates       []string          `json:"certificates,omitempty"`
}

// MaxCertificates is the number of certificate slots on the form.
const MaxCertificates = 3

// DocumentCount counts the identity card plus up to MaxCertificates certificates.
func (p ProfileForm) DocumentCount() int {
	count := 0
	if p.IdentityCard {
		count++
	}
	certs := 0
	for _, c := range p.Certificates {
		if c != "" {
			certs++
		}
	}
	if certs > MaxCertificates {
		certs = MaxCertificates
	}
	return count + certs
}

// ProfileFromRecord prefills the registration form from extracted fields.
func ProfileFromRecord(rec ExtractedRecord, resumeUploaded bool) ProfileForm {
	form := ProfileForm{
		Name:               rec.Name,
		Phone:              rec.PrimaryPhone(),
		Email:              rec.PrimaryEmail(),
		NationalID:         rec.NationalID,
		Education:          rec.EducationLevel,
		YearPassed:         rec.LatestYear(),
		Skills:             append([]string(nil), rec.Skills...),
		PreferredLocations: append([]string(nil), rec.Locations...),
		ResumeUploaded:     resumeUploaded,
	}
	if len(rec.Organizations) > 0 {
		form.InstitutionName = rec.Organizations[0]
	}
	if rec.ExperienceYears != nil {
		form.ExperienceYears, form.ExperienceMonths = SplitExperience(*rec.ExperienceYears)
	}
	return form
}

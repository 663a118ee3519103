package extractor

import (
	"math"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/profile-screener/internal/models"
)

const sampleResume = `Rajesh Kumar Sharma
Email: rajesh.sharma@gmail.com
Phone: 9876543210
Address: Flat 301, Jubilee Hills, Hyderabad, Telangana 500033

OBJECTIVE
Experienced software developer seeking challenging roles in IT.

EDUCATION
B.Tech in Computer Science - JNTU Hyderabad - 2020
Intermediate - Narayana Junior College, Hyderabad - 2016
SSC - Kendriya Vidyalaya, Secunderabad - 2014

SKILLS
Python, Java, JavaScript, SQL, React, Django, Machine Learning,
Data Analysis, Git, AWS, Docker, Linux, Communication, Teamwork

EXPERIENCE
Software Developer at TCS (2020 - 2023)
Intern at Infosys (2019 - 2020)

Aadhaar: 2345 6789 0123`

func fixedClock() time.Time {
	return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func newTestExtractor(vocab []string, opts ...Option) *Extractor {
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	return New(NewMatcher(vocab), opts...)
}

func TestExtract_SampleResume(t *testing.T) {
	e := newTestExtractor([]string{"Python", "Java", "SQL", "Kotlin", "Machine Learning"})

	rec := e.Extract(sampleResume)

	assert.Equal(t, sampleResume, rec.RawText)
	assert.Equal(t, "Rajesh Kumar Sharma", rec.Name)
	assert.Equal(t, []string{"rajesh.sharma@gmail.com"}, rec.Emails)
	assert.Equal(t, []string{"9876543210"}, rec.Phones)
	assert.Equal(t, "234567890123", rec.NationalID)
	assert.Equal(t, models.EducationUndergraduate, rec.EducationLevel)
	assert.Equal(t, []string{
		"Intermediate Narayana Junior College, Hyderabad 2016",
		"SSC Kendriya Vidyalaya, Secunderabad 2014",
	}, rec.Organizations)
	assert.Equal(t, []string{"Hyderabad", "Secunderabad"}, rec.Locations)
	assert.Equal(t, []int{2023, 2020, 2019, 2016, 2014}, rec.Years)
	assert.Equal(t, []string{"Java", "Machine Learning", "Python", "SQL"}, rec.Skills)
	assert.Nil(t, rec.ExperienceYears)
}

func TestExtract_BTechLineWithoutInstitutionKeyword(t *testing.T) {
	e := newTestExtractor(nil)

	rec := e.Extract("Profile\nB.Tech in Computer Science - JNTU Hyderabad - 2020\n")

	assert.Equal(t, models.EducationUndergraduate, rec.EducationLevel)
	assert.Empty(t, rec.Organizations)
	assert.Contains(t, rec.Years, 2020)

	rec = e.Extract("B.Tech - JNTU University, Hyderabad - 2020")
	require.Len(t, rec.Organizations, 1)
	assert.Contains(t, rec.Organizations[0], "JNTU")
}

func TestExtract_EmptyText(t *testing.T) {
	e := newTestExtractor([]string{"Python"})

	for _, text := range []string{"", "   \n\t  "} {
		rec := e.Extract(text)
		assert.True(t, rec.Empty())
		assert.Equal(t, text, rec.RawText)
	}
}

func TestExtract_RepairsInvalidUTF8(t *testing.T) {
	e := newTestExtractor([]string{"Python", "SQL"})

	rec := e.Extract("Rajesh Kumar\nrajesh@gmail.com\nB.Tech Caf\xe9 University 2020\nPython SQL")

	assert.Equal(t, "Rajesh Kumar", rec.Name)
	assert.Equal(t, []string{"rajesh@gmail.com"}, rec.Emails)
	assert.Equal(t, models.EducationUndergraduate, rec.EducationLevel)
	assert.Equal(t, []int{2020}, rec.Years)
	assert.Equal(t, []string{"Python", "SQL"}, rec.Skills)
	assert.True(t, utf8.ValidString(rec.RawText))
}

func TestExtract_Idempotent(t *testing.T) {
	e := newTestExtractor(DefaultSkills)

	first := e.Extract(sampleResume)
	second := e.Extract(sampleResume)

	assert.Equal(t, first, second)
}

func TestEducationFromText_Priority(t *testing.T) {
	tests := []struct {
		text string
		want models.EducationLevel
	}{
		{"SSC 2012, Intermediate 2014, B.Tech 2018, MBA 2020", models.EducationPostgraduate},
		{"Ph.D in Physics, M.Sc Physics", models.EducationPhD},
		{"Diploma in Mechanical Engineering, SSC", models.EducationDiploma},
		{"Completed 12th from state board", models.EducationIntermediate},
		{"Passed 10th class", models.EducationSSC},
		{"ITI Electrician trade", models.EducationITI},
		{"Good communication ability and opportunities", ""},
		{"International internship", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, EducationFromText(tt.text))
		})
	}
}

func TestExtractPhones(t *testing.T) {
	assert.Equal(t, []string{"9876543210"}, ExtractPhones("call +91 9876543210 or +91-9876543210", PhoneModeIndia))
	assert.Equal(t, []string{"8123456789"}, ExtractPhones("mobile: +918123456789", PhoneModeIndia))
	assert.Empty(t, ExtractPhones("office 5551234567", PhoneModeIndia))
	assert.Equal(t, []string{"5551234567"}, ExtractPhones("office +1 (555) 123-4567", PhoneModeGeneric))
}

func TestExtractYears_FilterAndOrder(t *testing.T) {
	years := ExtractYears("born 1975, joined 1999, left 2004, 2004 again, plan 2031, now 2026", 2026)

	assert.Equal(t, []int{2026, 2004, 1999}, years)
}

func TestExtractExperience(t *testing.T) {
	got := ExtractExperience("I have 5.5 years of experience in sales")
	require.NotNil(t, got)
	assert.Equal(t, 5.5, *got)

	years, months := models.SplitExperience(*got)
	assert.Equal(t, 5, years)
	assert.Equal(t, 6, months)

	got = ExtractExperience("3 yrs in retail")
	require.NotNil(t, got)
	assert.Equal(t, 3.0, *got)

	assert.Nil(t, ExtractExperience("no duration here"))
}

func TestSplitExperience_ClampsMonths(t *testing.T) {
	years, months := models.SplitExperience(1.999)
	assert.Equal(t, 1, years)
	assert.Equal(t, 11, months)
}

func TestSplitExperience_HugeDurationDoesNotOverflow(t *testing.T) {
	e := newTestExtractor(nil)
	rec := e.Extract("Asha Verma\n99999999999999999999 years of experience")
	require.NotNil(t, rec.ExperienceYears)

	form := models.ProfileFromRecord(rec, true)
	assert.Equal(t, math.MaxInt32, form.ExperienceYears)
	assert.Equal(t, 0, form.ExperienceMonths)
}

func TestExtractLocations_GazetteerOrder(t *testing.T) {
	got := ExtractLocations("Open to Pune, hyderabad or NEW DELHI. Not Hyderabadi food.")

	assert.Equal(t, []string{"Hyderabad", "New Delhi", "Pune"}, got)
}

func TestExtractLocations_KeepsShorterCityMentionedOnItsOwn(t *testing.T) {
	got := ExtractLocations("Worked in Delhi, now relocating to New Delhi")

	assert.Equal(t, []string{"New Delhi", "Delhi"}, got)
}

func TestExtract_VoiceUsesNameCue(t *testing.T) {
	e := newTestExtractor(nil)
	doc := models.RawDocument{
		Text:   "hello my name is priya reddy and my phone is 9123456780",
		Source: models.SourceVoice,
	}

	rec := e.ExtractDocument(doc)

	assert.Equal(t, "Priya Reddy", rec.Name)
	assert.Equal(t, []string{"9123456780"}, rec.Phones)
}

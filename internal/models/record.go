package models

import (
	"math"
	"strings"
)

// Source identifies where the text of a RawDocument came from.
type Source string

const (
	SourcePDF   Source = "pdf"
	SourceDOCX  Source = "docx"
	SourceImage Source = "image"
	SourceVoice Source = "voice"
	SourceText  Source = "text"
)

// RawDocument is the acquired plain text of an uploaded resume or a transcription.
type RawDocument struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

type EducationLevel string

const (
	EducationPhD           EducationLevel = "phd"
	EducationPostgraduate  EducationLevel = "postgraduate"
	EducationUndergraduate EducationLevel = "undergraduate"
	EducationDiploma       EducationLevel = "diploma"
	EducationIntermediate  EducationLevel = "intermediate"
	EducationSSC           EducationLevel = "ssc"
	EducationITI           EducationLevel = "iti"
)

var educationLabels = map[EducationLevel]string{
	EducationPhD:           "PhD",
	EducationPostgraduate:  "Post Graduate (M.Tech/ME/MBA/MCA/MSc/MA/MCom)",
	EducationUndergraduate: "Undergraduate (B.Tech/BE/BBA/BCA/BSc/BA/BCom)",
	EducationDiploma:       "Diploma",
	EducationIntermediate:  "Intermediate/12th",
	EducationSSC:           "SSC/10th",
	EducationITI:           "ITI",
}

// Label returns the display name used on the registration form and receipt.
func (e EducationLevel) Label() string {
	if label, ok := educationLabels[e]; ok {
		return label
	}
	return string(e)
}

// Valid reports whether e is one of the known categories.
func (e EducationLevel) Valid() bool {
	_, ok := educationLabels[e]
	return ok
}

// ExtractedRecord holds the candidate fields found in a RawDocument. Zero values mean
// "not found": an empty string, a nil slice, or a nil ExperienceYears.
type ExtractedRecord struct {
	RawText         string         `json:"raw_text"`
	Name            string         `json:"name,omitempty"`
	Emails          []string       `json:"emails,omitempty"`
	Phones          []string       `json:"phones,omitempty"`
	NationalID      string         `json:"national_id,omitempty"`
	EducationLevel  EducationLevel `json:"education_level,omitempty"`
	Organizations   []string       `json:"organizations,omitempty"`
	Locations       []string       `json:"locations,omitempty"`
	Years           []int          `json:"years,omitempty"`
	Skills          []string       `json:"skills,omitempty"`
	ExperienceYears *float64       `json:"experience_years,omitempty"`
}

func (r ExtractedRecord) PrimaryEmail() string {
	if len(r.Emails) == 0 {
		return ""
	}
	return r.Emails[0]
}

func (r ExtractedRecord) PrimaryPhone() string {
	if len(r.Phones) == 0 {
		return ""
	}
	return r.Phones[0]
}

// LatestYear returns the most recent year found, or 0.
func (r ExtractedRecord) LatestYear() int {
	if len(r.Years) == 0 {
		return 0
	}
	return r.Years[0]
}

// Empty reports whether no field at all was extracted.
func (r ExtractedRecord) Empty() bool {
	return strings.TrimSpace(r.Name) == "" &&
		len(r.Emails) == 0 &&
		len(r.Phones) == 0 &&
		r.NationalID == "" &&
		r.EducationLevel == "" &&
		len(r.Organizations) == 0 &&
		len(r.Locations) == 0 &&
		len(r.Years) == 0 &&
		len(r.Skills) == 0 &&
		r.ExperienceYears == nil
}

// maxExperienceYears bounds parsed durations so the conversion to int cannot overflow.
const maxExperienceYears = math.MaxInt32

// SplitExperience turns a fractional number of years into whole years and months.
// Months are floor(frac*12), clamped to 11.
func SplitExperience(years float64) (int, int) {
	if years <= 0 || math.IsNaN(years) {
		return 0, 0
	}
	if years > maxExperienceYears {
		years = maxExperienceYears
	}
	whole := int(years)
	months := int((years - float64(whole)) * 12)
	if months > 11 {
		months = 11
	}
	if months < 0 {
		months = 0
	}
	return whole, months
}

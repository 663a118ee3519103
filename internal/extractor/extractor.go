package extractor

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"alfredoptarigan/profile-screener/internal/models"
)

type PhoneMode string

const (
	// PhoneModeIndia accepts 10 contiguous digits starting with 6-9, optionally
	// prefixed with +91.
	PhoneModeIndia PhoneMode = "IN"
	// PhoneModeGeneric accepts a permissive international pattern.
	PhoneModeGeneric PhoneMode = "generic"
)

const (
	minYear            = 1980
	minOrganizationLen = 5
	maxOrganizationLen = 100
)

var (
	emailPattern        = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	indiaPhonePattern   = regexp.MustCompile(`(?:\+91[ \t-]?|\b91[ \t-]?|\b)[6-9]\d{9}\b`)
	genericPhonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[-. \t]?)?\(?\d{3}\)?[-. \t]?\d{3}[-. \t]?\d{4}`)
	nationalIDPattern   = regexp.MustCompile(`\b\d{4}[ \t-]?\d{4}[ \t-]?\d{4}\b`)
	yearPattern         = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	experiencePattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b(?:\s+of\s+experience)?`)
	nonDigit            = regexp.MustCompile(`\D`)
	nonOrgChars         = regexp.MustCompile(`[^\p{L}\p{N}\s,&.]`)
)

// Extractor turns raw text into an ExtractedRecord. It holds only read-only
// state after construction and is safe for concurrent use.
type Extractor struct {
	skills     *Matcher
	phoneMode  PhoneMode
	names      NameStrategy
	voiceNames NameStrategy
	now        func() time.Time
}

type Option func(*Extractor)

func WithPhoneMode(mode PhoneMode) Option {
	return func(e *Extractor) {
		if mode == PhoneModeGeneric {
			e.phoneMode = PhoneModeGeneric
		} else {
			e.phoneMode = PhoneModeIndia
		}
	}
}

// WithNameStrategy replaces the name heuristic used for documents.
func WithNameStrategy(s NameStrategy) Option {
	return func(e *Extractor) {
		e.names = s
	}
}

// WithVoiceNameStrategy replaces the name heuristic used for transcriptions.
func WithVoiceNameStrategy(s NameStrategy) Option {
	return func(e *Extractor) {
		e.voiceNames = s
	}
}

// WithClock fixes the time used to bound extracted years.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

func New(skills *Matcher, opts ...Option) *Extractor {
	e := &Extractor{
		skills:     skills,
		phoneMode:  PhoneModeIndia,
		names:      FirstLineStrategy{},
		voiceNames: ChainStrategy{CueStrategy{}, FirstLineStrategy{}},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Extractor) Skills() *Matcher {
	return e.skills
}

// ExtractDocument extracts fields from doc, using the dictation-aware name
// strategy for voice transcriptions.
func (e *Extractor) ExtractDocument(doc models.RawDocument) models.ExtractedRecord {
	if doc.Source == models.SourceVoice {
		return e.extract(doc.Text, e.voiceNames)
	}
	return e.extract(doc.Text, e.names)
}

// Extract extracts fields from text. It never fails: fields that cannot be
// found are left at their zero value and the input is kept in RawText.
func (e *Extractor) Extract(text string) models.ExtractedRecord {
	return e.extract(text, e.names)
}

func (e *Extractor) extract(text string, names NameStrategy) models.ExtractedRecord {
	// Stray bytes from legacy encodings become U+FFFD; the rest stays readable.
	text = strings.ToValidUTF8(text, "\uFFFD")
	rec := models.ExtractedRecord{RawText: text}
	if strings.TrimSpace(text) == "" {
		return rec
	}

	rec.Emails = ExtractEmails(text)
	rec.Phones = ExtractPhones(text, e.phoneMode)
	rec.NationalID = ExtractNationalID(text)
	if names != nil {
		rec.Name = names.ExtractName(text)
	}
	rec.EducationLevel = EducationFromText(text)
	rec.Organizations = ExtractOrganizations(text)
	rec.Locations = ExtractLocations(text)
	rec.Years = ExtractYears(text, e.now().Year())
	rec.Skills = e.skills.Match(text)
	rec.ExperienceYears = ExtractExperience(text)
	return rec
}

func ExtractEmails(text string) []string {
	return unique(emailPattern.FindAllString(text, -1))
}

// ExtractPhones returns phone numbers normalized to their trailing 10 digits.
func ExtractPhones(text string, mode PhoneMode) []string {
	pattern := indiaPhonePattern
	if mode == PhoneModeGeneric {
		pattern = genericPhonePattern
	}
	var phones []string
	for _, m := range pattern.FindAllString(text, -1) {
		if phone := NormalizePhone(m); phone != "" {
			phones = append(phones, phone)
		}
	}
	return unique(phones)
}

// NormalizePhone strips separators and any country code, keeping the last 10
// digits. Inputs with fewer than 10 digits are returned as bare digits.
func NormalizePhone(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	if len(digits) > 10 {
		return digits[len(digits)-10:]
	}
	return digits
}

// ExtractNationalID returns the first 12-digit 4-4-4 group, digits only.
// Only the shape is checked.
func ExtractNationalID(text string) string {
	m := nationalIDPattern.FindString(text)
	if m == "" {
		return ""
	}
	return nonDigit.ReplaceAllString(m, "")
}

func ExtractOrganizations(text string) []string {
	var orgs []string
	for _, line := range strings.Split(text, "\n") {
		if !matchesAny(institutionPatterns, line) {
			continue
		}
		cleaned := nonOrgChars.ReplaceAllString(line, " ")
		cleaned = strings.TrimSpace(spaceRun.ReplaceAllString(cleaned, " "))
		n := utf8.RuneCountInString(cleaned)
		if n >= minOrganizationLen && n <= maxOrganizationLen {
			orgs = append(orgs, cleaned)
		}
	}
	return unique(orgs)
}

// ExtractLocations returns gazetteer cities mentioned in text, in gazetteer order.
// A city whose every mention sits inside a longer matched city ("Delhi" in
// "New Delhi") is left out.
func ExtractLocations(text string) []string {
	spans := make([][][]int, len(cityPatterns))
	for i, city := range cityPatterns {
		spans[i] = city.pattern.FindAllStringIndex(text, -1)
	}

	var out []string
	for i, city := range cityPatterns {
		if len(spans[i]) == 0 {
			continue
		}
		standalone := false
		for _, span := range spans[i] {
			if !insideLongerCity(span, i, spans) {
				standalone = true
				break
			}
		}
		if standalone {
			out = append(out, city.keyword)
		}
	}
	return out
}

func insideLongerCity(span []int, self int, spans [][][]int) bool {
	for j, others := range spans {
		if j == self || len(cityPatterns[j].keyword) <= len(cityPatterns[self].keyword) {
			continue
		}
		for _, o := range others {
			if o[0] <= span[0] && span[1] <= o[1] {
				return true
			}
		}
	}
	return false
}

// ExtractYears returns distinct years in [1980, currentYear], most recent first.
func ExtractYears(text string, currentYear int) []int {
	seen := map[int]bool{}
	var years []int
	for _, m := range yearPattern.FindAllString(text, -1) {
		y, err := strconv.Atoi(m)
		if err != nil || y < minYear || y > currentYear || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// ExtractExperience returns the first "<N> years" duration found.
func ExtractExperience(text string) *float64 {
	m := experiencePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	years, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &years
}

func unique(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

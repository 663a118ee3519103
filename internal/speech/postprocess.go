package speech

import (
	"regexp"
	"strings"

	"alfredoptarigan/profile-screener/internal/extractor"
	"alfredoptarigan/profile-screener/internal/models"
)

var (
	spokenNameChars = regexp.MustCompile(`[^\p{L}\p{M}\s.]`)
	nonDigits       = regexp.MustCompile(`\D`)
	repeatedDigit   = regexp.MustCompile(`\b(double|triple)\s+(\p{L}+|\d+)`)
	spokenDigit     = regexp.MustCompile(`\b(zero|one|two|three|four|five|six|seven|eight|nine|oh|o|to|too|for|won|tree|ate|niner)\b`)
	skillSeparators = regexp.MustCompile(`(?i)[,;]|\band\b|\balso\b`)
)

var digitWords = map[string]string{
	"zero": "0", "one": "1", "two": "2", "three": "3",
	"four": "4", "five": "5", "six": "6", "seven": "7",
	"eight": "8", "nine": "9", "oh": "0", "o": "0",
	"to": "2", "too": "2", "for": "4", "won": "1",
	"tree": "3", "ate": "8", "niner": "9",
}

// Longer phrases come first so "at the rate of" is not cut short by "at".
var emailReplacements = []struct{ spoken, symbol string }{
	{" at the rate of ", "@"},
	{" at the rate ", "@"},
	{" at sign ", "@"},
	{" at ", "@"},
	{" dot ", "."},
	{" period ", "."},
	{" underscore ", "_"},
	{" hyphen ", "-"},
	{" dash ", "-"},
	{" space ", ""},
}

type educationKeyword struct {
	pattern *regexp.Regexp
	level   models.EducationLevel
}

func educationWord(keyword string, level models.EducationLevel) educationKeyword {
	return educationKeyword{pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`), level: level}
}

var belowSSC = regexp.MustCompile(`\bbelow\s+(?:10th|tenth)\b`)

var spokenEducation = []educationKeyword{
	educationWord("phd", models.EducationPhD),
	educationWord("doctorate", models.EducationPhD),
	educationWord("post graduate", models.EducationPostgraduate),
	educationWord("postgraduate", models.EducationPostgraduate),
	educationWord("masters", models.EducationPostgraduate),
	educationWord("mtech", models.EducationPostgraduate),
	educationWord("m tech", models.EducationPostgraduate),
	educationWord("mba", models.EducationPostgraduate),
	educationWord("mca", models.EducationPostgraduate),
	educationWord("msc", models.EducationPostgraduate),
	educationWord("undergraduate", models.EducationUndergraduate),
	educationWord("bachelors", models.EducationUndergraduate),
	educationWord("bachelor", models.EducationUndergraduate),
	educationWord("btech", models.EducationUndergraduate),
	educationWord("b tech", models.EducationUndergraduate),
	educationWord("degree", models.EducationUndergraduate),
	educationWord("graduation", models.EducationUndergraduate),
	educationWord("diploma", models.EducationDiploma),
	educationWord("intermediate", models.EducationIntermediate),
	educationWord("12th", models.EducationIntermediate),
	educationWord("inter", models.EducationIntermediate),
	educationWord("plus two", models.EducationIntermediate),
	educationWord("ssc", models.EducationSSC),
	educationWord("10th", models.EducationSSC),
	educationWord("tenth", models.EducationSSC),
	educationWord("matriculation", models.EducationSSC),
	educationWord("iti", models.EducationITI),
}

const (
	GenderMale        = "Male"
	GenderFemale      = "Female"
	GenderTransgender = "Transgender"
	GenderOther       = "Other"
)

var (
	maleWords   = []string{"male", "man", "boy", "purush", "पुरुष", "పురుషుడు"}
	femaleWords = []string{"female", "woman", "girl", "mahila", "महिला", "స్త్రీ"}
	transWords  = []string{"trans", "transgender"}
	otherWords  = []string{"other", "anya", "अन्य", "ఇతర"}
)

// Name keeps letters, spaces and periods and title cases the result.
func Name(text string) string {
	name := spokenNameChars.ReplaceAllString(text, "")
	return extractor.TitleCase(strings.Join(strings.Fields(name), " "))
}

// Phone converts a spoken number ("nine eight double four ...") to digits
// and keeps the trailing ten.
func Phone(text string) string {
	lower := strings.ToLower(text)
	lower = repeatedDigit.ReplaceAllStringFunc(lower, func(m string) string {
		parts := repeatedDigit.FindStringSubmatch(m)
		times := 2
		if parts[1] == "triple" {
			times = 3
		}
		token := parts[2]
		if d, ok := digitWords[token]; ok {
			return strings.Repeat(d, times)
		}
		if nonDigits.MatchString(token) {
			return m
		}
		return strings.Repeat(token[:1], times) + token[1:]
	})
	lower = spokenDigit.ReplaceAllStringFunc(lower, func(w string) string {
		return digitWords[w]
	})

	digits := nonDigits.ReplaceAllString(lower, "")
	if len(digits) >= 10 {
		return digits[len(digits)-10:]
	}
	return digits
}

// Email rebuilds an address from its spoken form ("john dot doe at gmail dot com").
func Email(text string) string {
	email := " " + strings.ToLower(strings.Join(strings.Fields(text), " ")) + " "
	for _, r := range emailReplacements {
		for strings.Contains(email, r.spoken) {
			email = strings.ReplaceAll(email, r.spoken, r.symbol)
		}
	}
	return strings.ReplaceAll(email, " ", "")
}

// Gender maps an answer in English, Hindi or Telugu to a form option.
// Unrecognized answers are returned title cased.
func Gender(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case containsAny(lower, transWords):
		return GenderTransgender
	case containsAny(lower, maleWords):
		if strings.Contains(lower, "female") || strings.Contains(lower, "woman") ||
			strings.Contains(lower, "mahila") || strings.Contains(lower, "महिला") {
			return GenderFemale
		}
		return GenderMale
	case containsAny(lower, femaleWords):
		return GenderFemale
	case containsAny(lower, otherWords):
		return GenderOther
	}
	return extractor.TitleCase(strings.TrimSpace(text))
}

// Education maps a spoken qualification to an education level. Answers below
// SSC and unrecognized answers report false.
func Education(text string) (models.EducationLevel, bool) {
	lower := strings.ToLower(strings.Join(strings.Fields(text), " "))
	if belowSSC.MatchString(lower) {
		return "", false
	}
	for _, kw := range spokenEducation {
		if kw.pattern.MatchString(lower) {
			return kw.level, true
		}
	}
	return "", false
}

// Skills splits a spoken list on commas, semicolons, "and" and "also".
func Skills(text string) []string {
	var skills []string
	seen := map[string]bool{}
	for _, raw := range skillSeparators.Split(text, -1) {
		skill := extractor.TitleCase(strings.Join(strings.Fields(raw), " "))
		if len([]rune(skill)) < 2 || seen[strings.ToLower(skill)] {
			continue
		}
		seen[strings.ToLower(skill)] = true
		skills = append(skills, skill)
	}
	return skills
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

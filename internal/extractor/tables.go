package extractor

import (
	"regexp"
	"strings"

	"alfredoptarigan/profile-screener/internal/models"
)

// Lines whose text matches one of these are document titles, never names.
var titleKeywords = []string{"resume", "résumé", "cv", "curriculum", "vitae", "portfolio", "biodata", "bio-data"}

type educationRule struct {
	level    models.EducationLevel
	keywords []string
}

// educationTable is checked top to bottom; the first level with a hit wins.
var educationTable = []educationRule{
	{models.EducationPhD, []string{"phd", "ph.d", "doctorate", "doctor of philosophy"}},
	{models.EducationPostgraduate, []string{
		"m.tech", "mtech", "m.e", "mba", "mca", "m.sc", "msc", "m.com", "mcom",
		"post graduate", "postgraduate", "post graduation", "masters", "master of",
	}},
	{models.EducationUndergraduate, []string{
		"b.tech", "btech", "b.e", "bba", "bca", "b.sc", "bsc", "b.com", "bcom",
		"bachelor", "bachelors", "undergraduate", "graduation",
	}},
	{models.EducationDiploma, []string{"diploma", "polytechnic"}},
	{models.EducationIntermediate, []string{"intermediate", "12th", "hsc", "higher secondary", "plus two"}},
	{models.EducationSSC, []string{"ssc", "10th", "tenth", "matriculation", "secondary school certificate"}},
	{models.EducationITI, []string{"iti", "i.t.i", "industrial training institute"}},
}

var institutionKeywords = []string{
	"university", "college", "institute", "institution", "school", "academy", "vidyalaya",
	"polytechnic", "ltd", "limited", "inc", "pvt", "llp", "llc", "corp", "corporation",
	"company", "technologies", "infotech",
}

// regionalCities come first so that local matches are listed before national ones.
var regionalCities = []string{
	"Hyderabad", "Secunderabad", "Warangal", "Karimnagar", "Nizamabad", "Khammam",
	"Vijayawada", "Visakhapatnam", "Vizag", "Guntur", "Tirupati", "Nellore", "Kurnool",
	"Rajahmundry", "Kakinada",
}

var nationalCities = []string{
	"Bangalore", "Bengaluru", "Chennai", "Mumbai", "New Delhi", "Delhi", "Pune", "Kolkata",
	"Ahmedabad", "Noida", "Gurgaon", "Gurugram", "Jaipur", "Lucknow", "Kochi", "Coimbatore",
	"Indore", "Bhopal", "Chandigarh", "Nagpur",
}

type keywordPattern struct {
	keyword string
	pattern *regexp.Regexp
}

type educationPattern struct {
	level    models.EducationLevel
	patterns []*regexp.Regexp
}

var (
	titlePatterns       = compileWords(titleKeywords)
	institutionPatterns = compileWords(institutionKeywords)
	cityPatterns        = compileKeywords(append(append([]string{}, regionalCities...), nationalCities...))
	educationPatterns   = compileEducation(educationTable)
)

// wordPattern matches keyword case-insensitively when it is not glued to a
// letter, digit or underscore on either side. Unlike \b this also works for
// keywords that begin or end with punctuation such as "m.e" or "c++".
func wordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(strings.ToLower(keyword)) + `(?:$|[^\p{L}\p{N}_])`)
}

func compileWords(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		out = append(out, wordPattern(w))
	}
	return out
}

func compileKeywords(words []string) []keywordPattern {
	out := make([]keywordPattern, 0, len(words))
	for _, w := range words {
		out = append(out, keywordPattern{keyword: w, pattern: wordPattern(w)})
	}
	return out
}

func compileEducation(table []educationRule) []educationPattern {
	out := make([]educationPattern, 0, len(table))
	for _, rule := range table {
		out = append(out, educationPattern{level: rule.level, patterns: compileWords(rule.keywords)})
	}
	return out
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// EducationFromText maps free text to the most senior education level it mentions.
func EducationFromText(text string) models.EducationLevel {
	lower := strings.ToLower(text)
	for _, rule := range educationPatterns {
		if matchesAny(rule.patterns, lower) {
			return rule.level
		}
	}
	return ""
}

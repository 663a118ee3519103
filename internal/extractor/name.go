package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameStrategy picks the candidate's name out of raw text. Implementations
// return "" when they find nothing.
type NameStrategy interface {
	ExtractName(text string) string
}

const (
	minNameLength = 2
	maxNameLength = 60
)

var (
	nonNameChars    = regexp.MustCompile(`[^\p{L}\p{M}\s.]`)
	spaceRun        = regexp.MustCompile(`\s+`)
	nameCue         = regexp.MustCompile(`(?i)\bname\s*(?:is|:|-)\s*([\p{L}\p{M} .]+)`)
	nameCueStopword = map[string]bool{
		"and": true, "my": true, "i": true, "from": true, "phone": true, "mobile": true,
		"email": true, "number": true, "with": true, "age": true,
	}
)

// FirstLineStrategy takes the first non-empty line that is not a document
// title. It is a weak heuristic: when the first line is a heading, an address
// or a contact line it will still be returned as the name.
type FirstLineStrategy struct{}

func (FirstLineStrategy) ExtractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if matchesAny(titlePatterns, line) {
			continue
		}
		return cleanName(line)
	}
	return ""
}

// CueStrategy looks for an explicit "name is X" or "name: X" phrase, which is
// how dictated input usually states it.
type CueStrategy struct{}

func (CueStrategy) ExtractName(text string) string {
	m := nameCue.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	var words []string
	for _, w := range strings.Fields(m[1]) {
		if nameCueStopword[strings.ToLower(strings.Trim(w, "."))] {
			break
		}
		words = append(words, w)
		if len(words) == 5 {
			break
		}
	}
	return cleanName(strings.TrimRight(strings.Join(words, " "), "."))
}

// ChainStrategy returns the first non-empty answer of its strategies.
type ChainStrategy []NameStrategy

func (c ChainStrategy) ExtractName(text string) string {
	for _, s := range c {
		if name := s.ExtractName(text); name != "" {
			return name
		}
	}
	return ""
}

// cleanName strips everything but letters, spaces and periods, then title
// cases the result. Results outside [2,60] characters are rejected.
func cleanName(raw string) string {
	name := nonNameChars.ReplaceAllString(raw, "")
	name = strings.TrimSpace(spaceRun.ReplaceAllString(name, " "))
	n := utf8.RuneCountInString(name)
	if n < minNameLength || n > maxNameLength {
		return ""
	}
	return TitleCase(name)
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

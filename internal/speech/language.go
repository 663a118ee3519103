package speech

import "strings"

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var (
	English = Language{Code: "en-US", Name: "English"}
	Hindi   = Language{Code: "hi-IN", Name: "Hindi"}
	Telugu  = Language{Code: "te-IN", Name: "Telugu"}
)

// Languages lists the supported languages. English is the default.
var Languages = []Language{English, Hindi, Telugu}

// Base returns the two-letter ISO 639-1 part of the code.
func (l Language) Base() string {
	base, _, _ := strings.Cut(l.Code, "-")
	return strings.ToLower(base)
}

// LookupLanguage accepts a BCP 47 code ("hi-IN"), its base ("hi") or the
// English name ("Hindi"). Anything else resolves to English.
func LookupLanguage(s string) Language {
	s = strings.TrimSpace(s)
	for _, l := range Languages {
		if strings.EqualFold(s, l.Code) || strings.EqualFold(s, l.Name) || strings.EqualFold(s, l.Base()) {
			return l
		}
	}
	return English
}

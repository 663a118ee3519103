package extractor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type skillPattern struct {
	name    string
	pattern *regexp.Regexp
}

// Matcher finds vocabulary skills in free text. Patterns are compiled once in
// NewMatcher; a Matcher is safe for concurrent use.
type Matcher struct {
	skills []skillPattern
}

// NewMatcher builds a matcher over vocab. Blank entries are ignored and
// entries differing only in case collapse to the first spelling seen.
func NewMatcher(vocab []string) *Matcher {
	seen := make(map[string]bool, len(vocab))
	var names []string
	for _, raw := range vocab {
		name := strings.TrimSpace(raw)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	m := &Matcher{skills: make([]skillPattern, 0, len(names))}
	for _, name := range names {
		m.skills = append(m.skills, skillPattern{name: name, pattern: wordPattern(name)})
	}
	return m
}

// Match returns the vocabulary entries that occur in text as whole words,
// in case-insensitive alphabetical order.
func (m *Matcher) Match(text string) []string {
	if m == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, s := range m.skills {
		if s.pattern.MatchString(text) {
			out = append(out, s.name)
		}
	}
	return out
}

// Canonical returns the vocabulary spelling of skill, if it is in the vocabulary.
func (m *Matcher) Canonical(skill string) (string, bool) {
	if m == nil {
		return "", false
	}
	key := strings.ToLower(strings.TrimSpace(skill))
	for _, s := range m.skills {
		if strings.ToLower(s.name) == key {
			return s.name, true
		}
	}
	return "", false
}

func (m *Matcher) Vocabulary() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.skills))
	for _, s := range m.skills {
		out = append(out, s.name)
	}
	return out
}

func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.skills)
}

type vocabularyFile struct {
	Skills []string `yaml:"skills"`
}

// LoadVocabulary reads a skills list from a CSV file (first column) or a YAML
// file (either a top-level list or a "skills" key). A missing file is not an
// error and yields an empty vocabulary.
func LoadVocabulary(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open skills file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return readYAMLVocabulary(f)
	default:
		return readCSVVocabulary(f)
	}
}

func readCSVVocabulary(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var skills []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse skills csv: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		if skill := strings.TrimSpace(row[0]); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills, nil
}

func readYAMLVocabulary(r io.Reader) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read skills yaml: %w", err)
	}

	var list []string
	if err := yaml.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var doc vocabularyFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse skills yaml: %w", err)
	}
	return doc.Skills, nil
}

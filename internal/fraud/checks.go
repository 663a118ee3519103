package fraud

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"alfredoptarigan/profile-screener/internal/models"
)

const (
	phoneLength       = 10
	nationalIDLength  = 12
	minLocalPart      = 2
	maxLocalPart      = 64
	numericLocalLimit = 8
	minNameLength     = 2
	maxNameLength     = 100
	maxSkills         = 50
	unrealisticYears  = 50.0
	verifyYears       = 40.0
)

var (
	emailFormat  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	separators   = regexp.MustCompile(`[\s\-]`)
	nameOddChars = regexp.MustCompile(`[^\p{L}\p{M}\s.\-']`)
	allDigits    = regexp.MustCompile(`^[0-9]+$`)
)

func result(issues []string) models.CheckResult {
	if issues == nil {
		issues = []string{}
	}
	return models.CheckResult{Valid: len(issues) == 0, Issues: issues}
}

// CheckPhone validates a 10-digit mobile number. Separators are ignored.
func (e *Evaluator) CheckPhone(phone string) models.CheckResult {
	if strings.TrimSpace(phone) == "" {
		return result(nil)
	}
	var issues []string
	clean := separators.ReplaceAllString(phone, "")

	if n := utf8.RuneCountInString(clean); n != phoneLength {
		issues = append(issues, fmt.Sprintf("Phone number must be exactly 10 digits (got %d)", n))
	}
	if !allDigits.MatchString(clean) {
		issues = append(issues, "Phone number contains non-numeric characters")
		return result(issues)
	}

	if !strings.ContainsRune(e.leadingDigits, rune(clean[0])) {
		issues = append(issues, fmt.Sprintf("Phone number must start with one of %s (starts with %c)", e.leadingDigits, clean[0]))
	}
	if identicalRunes(clean) {
		issues = append(issues, "Phone number has all identical digits, likely fake")
	}
	if clean == cyclicSequence(clean[0], len(clean), 1) {
		issues = append(issues, "Phone number is a sequential pattern, likely fake")
	}
	if clean == cyclicSequence(clean[0], len(clean), -1) {
		issues = append(issues, "Phone number is a reverse sequential pattern, likely fake")
	}
	if knownFakePhones[clean] {
		issues = append(issues, "Phone number matches a known fake pattern")
	}
	return result(issues)
}

// CheckEmail validates the address shape, its domain and its local part.
func (e *Evaluator) CheckEmail(email string) models.CheckResult {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return result(nil)
	}
	var issues []string
	if !emailFormat.MatchString(email) {
		issues = append(issues, "Email format is invalid")
	}

	parts := strings.Split(email, "@")
	if len(parts) < 2 {
		issues = append(issues, "Email format is malformed")
		return result(issues)
	}
	local, domain := parts[0], parts[1]

	if e.disposable[domain] {
		issues = append(issues, fmt.Sprintf("Disposable/temporary email domain detected: %s", domain))
	}
	if !strings.Contains(domain, ".") {
		issues = append(issues, "Email domain is invalid (no TLD)")
	}
	if len(local) < minLocalPart {
		issues = append(issues, "Email local part is too short")
	}
	if len(local) > maxLocalPart {
		issues = append(issues, "Email local part is too long")
	}
	if allDigits.MatchString(local) && len(local) > numericLocalLimit {
		issues = append(issues, "Email local part is all numbers, potentially auto-generated")
	}
	return result(issues)
}

// CheckNationalID validates the shape of a 12-digit national ID. There is no
// checksum verification.
func (e *Evaluator) CheckNationalID(id string) models.CheckResult {
	if strings.TrimSpace(id) == "" {
		return result(nil)
	}
	var issues []string
	clean := separators.ReplaceAllString(id, "")

	if n := utf8.RuneCountInString(clean); n != nationalIDLength {
		issues = append(issues, fmt.Sprintf("National ID must be 12 digits (got %d)", n))
	}
	if !allDigits.MatchString(clean) {
		issues = append(issues, "National ID contains non-numeric characters")
		return result(issues)
	}

	if clean[0] == '0' || clean[0] == '1' {
		issues = append(issues, "National ID cannot start with 0 or 1")
	}
	if identicalRunes(clean) {
		issues = append(issues, "National ID has all identical digits, likely fake")
	}
	if sequentialNationalIDs[clean] {
		issues = append(issues, "National ID is a sequential pattern, likely fake")
	}
	return result(issues)
}

// CheckName accepts letters and combining marks of any script plus spaces,
// periods, hyphens and apostrophes.
func (e *Evaluator) CheckName(name string) models.CheckResult {
	name = strings.TrimSpace(name)
	if name == "" {
		return result(nil)
	}
	var issues []string
	n := utf8.RuneCountInString(name)

	if n < minNameLength {
		issues = append(issues, "Name is too short (less than 2 characters)")
	}
	if n > maxNameLength {
		issues = append(issues, "Name is unusually long (more than 100 characters)")
	}
	if strings.IndexFunc(name, unicode.IsDigit) >= 0 {
		issues = append(issues, "Name contains numbers, likely invalid")
	}
	if nameOddChars.MatchString(name) {
		issues = append(issues, "Name contains unusual special characters")
	}
	if identicalRunes(strings.ReplaceAll(name, " ", "")) {
		issues = append(issues, "Name has all identical characters, likely fake")
	}
	if placeholderNames[strings.ToLower(name)] {
		issues = append(issues, fmt.Sprintf("Name '%s' appears to be a test/placeholder value", name))
	}
	return result(issues)
}

// CheckSkills flags oversized lists and case-insensitive repeats. Every
// repeat after the first occurrence is reported with its original spelling.
func (e *Evaluator) CheckSkills(skills []string) models.CheckResult {
	if len(skills) == 0 {
		return result(nil)
	}
	var issues []string
	if len(skills) > maxSkills {
		issues = append(issues, fmt.Sprintf("Too many skills listed (%d), possible spam", len(skills)))
	}

	seen := make(map[string]bool, len(skills))
	var dupes []string
	for _, s := range skills {
		key := strings.ToLower(strings.TrimSpace(s))
		if seen[key] {
			dupes = append(dupes, s)
		}
		seen[key] = true
	}
	if len(dupes) > 0 {
		issues = append(issues, fmt.Sprintf("Duplicate skills found: %s", strings.Join(dupes, ", ")))
	}
	return result(issues)
}

// CheckExperience flags implausible totals. Both thresholds can fire together.
func (e *Evaluator) CheckExperience(years, months int) models.CheckResult {
	var issues []string
	if years < 0 || months < 0 {
		issues = append(issues, "Experience cannot be negative")
	}
	total := float64(years) + float64(months)/12.0
	if total > unrealisticYears {
		issues = append(issues, fmt.Sprintf("Experience of %dy %dm (%.1f years) is unrealistic", years, months, total))
	}
	if total > verifyYears {
		issues = append(issues, fmt.Sprintf("Experience of %.1f years is unusually high, please verify", total))
	}
	return result(issues)
}

func identicalRunes(s string) bool {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return true
	}
	for _, r := range s[size:] {
		if r != first {
			return false
		}
	}
	return true
}

// cyclicSequence builds n digits starting at first, stepping by step and
// wrapping modulo 10.
func cyclicSequence(first byte, n, step int) string {
	start := int(first - '0')
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		d := ((start+i*step)%10 + 10) % 10
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}

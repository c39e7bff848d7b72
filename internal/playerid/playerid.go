package playerid

import (
	"strings"
	"time"
	"unicode"
)

// Derive computes the deterministic player key for a profile:
// the normalized email concatenated with the birth date as DDMMYYYY.
// Birth dates are expected as YYYY-MM-DD. It returns "" when the
// birth date is absent or unparseable, in which case exact-key
// matching is unavailable for that profile.
func Derive(email, birthDate string) string {
	if birthDate == "" {
		return ""
	}
	parsed, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return ""
	}
	return NormalizeEmail(email) + parsed.Format("02012006")
}

// NormalizeEmail lowercases the email and strips every non-alphanumeric rune.
func NormalizeEmail(email string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(email)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

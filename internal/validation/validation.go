// Package validation contains pure input checks used by the sign-in and
// sign-up screens. All helpers are synchronous and side-effect free.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailRe matches a conservative local@domain.tld shape. It deliberately does
// not attempt full RFC 5322 compliance; the backend is the final authority.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// specialChars is the fixed punctuation set a password must draw from.
const specialChars = `!@#$%^&*(),.?":{}|<>`

// Password rule violations, reported in full so the UI can render
// progressive strength feedback.
const (
	ProblemTooShort  = "password must be at least 8 characters"
	ProblemNoUpper   = "password must contain an uppercase letter"
	ProblemNoLower   = "password must contain a lowercase letter"
	ProblemNoDigit   = "password must contain a digit"
	ProblemNoSpecial = "password must contain a special character"
)

// Email reports whether s looks like a plausible e-mail address.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// PasswordResult is the outcome of a password strength check. Problems lists
// every violated rule, not just the first one found.
type PasswordResult struct {
	Valid    bool
	Problems []string
}

// Password checks s against the password policy: minimum length 8,
// at least one uppercase letter, one lowercase letter, one digit and one
// character from specialChars.
func Password(s string) PasswordResult {
	var problems []string

	if utf8.RuneCountInString(s) < 8 {
		problems = append(problems, ProblemTooShort)
	}

	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}

	if !upper {
		problems = append(problems, ProblemNoUpper)
	}
	if !lower {
		problems = append(problems, ProblemNoLower)
	}
	if !digit {
		problems = append(problems, ProblemNoDigit)
	}
	if !special {
		problems = append(problems, ProblemNoSpecial)
	}

	return PasswordResult{Valid: len(problems) == 0, Problems: problems}
}

// Name checks a display name: after trimming it must be non-empty and
// between 2 and 50 characters. On failure the second return value holds a
// user-facing reason.
func Name(s string) (bool, string) {
	trimmed := strings.TrimSpace(s)
	switch {
	case trimmed == "":
		return false, "name is required"
	case utf8.RuneCountInString(trimmed) < 2:
		return false, "name must be at least 2 characters"
	case utf8.RuneCountInString(trimmed) > 50:
		return false, "name must be at most 50 characters"
	}
	return true, ""
}

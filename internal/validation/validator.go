package validation

import (
	"regexp"
	"strings"

	"regapi/internal/model"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// SubmissionInput is the untrusted registration payload as received on
// the wire. Age and Interests use flexible scalar types because callers
// send both numbers and strings, and both arrays and single values.
type SubmissionInput struct {
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	Password  string           `json:"password"`
	Age       model.FlexInt    `json:"age"`
	Country   string           `json:"country"`
	Gender    string           `json:"gender"`
	Interests model.StringList `json:"interests"`
	Bio       string           `json:"bio"`
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidPhone reports whether s is an optional leading + followed by at
// least 10 digits/spaces/hyphens/parentheses.
func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// ValidPassword reports whether s is at least 8 characters and contains
// a lowercase letter, an uppercase letter, a digit, and one of @$!%*?&,
// using only those character classes. RE2 has no lookahead, so the
// class requirements are explicit scans.
func ValidPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("@$!%*?&", r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

// Validate checks every field rule independently and returns all
// failures as human-readable messages, in a fixed order. An empty slice
// means the input is valid. The password rule only applies when a
// password is present in the payload.
func Validate(in SubmissionInput) []string {
	var errs []string

	if len(strings.TrimSpace(in.FirstName)) < 2 {
		errs = append(errs, "First name must be at least 2 characters")
	}
	if len(strings.TrimSpace(in.LastName)) < 2 {
		errs = append(errs, "Last name must be at least 2 characters")
	}
	if !ValidEmail(in.Email) {
		errs = append(errs, "Invalid email address")
	}
	if !ValidPhone(in.Phone) {
		errs = append(errs, "Invalid phone number")
	}
	if in.Password != "" && !ValidPassword(in.Password) {
		errs = append(errs, "Password does not meet security requirements")
	}
	if !in.Age.Valid || in.Age.Value < 18 || in.Age.Value > 120 {
		errs = append(errs, "Age must be between 18 and 120")
	}
	if in.Country == "" {
		errs = append(errs, "Country is required")
	}
	if in.Gender == "" {
		errs = append(errs, "Gender is required")
	}

	return errs
}

package password

import (
	"strings"
	"unicode/utf8"
)

const specialChars = `!@#$%^&*(),.?":{}|<>`

type Requirement struct {
	Label string
	Met   bool
}

// Requirements lists the registration form's password rules in display order.
func Requirements(password string) []Requirement {
	return []Requirement{
		{Label: "At least 8 characters", Met: utf8.RuneCountInString(password) >= 8},
		{Label: "Contains a number", Met: strings.ContainsAny(password, "0123456789")},
		{Label: "Contains uppercase letter", Met: strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")},
		{Label: "Contains special character (!@#$%^&*)", Met: strings.ContainsAny(password, specialChars)},
	}
}

func IsStrong(password string) bool {
	for _, r := range Requirements(password) {
		if !r.Met {
			return false
		}
	}
	return true
}

// Unmet returns the labels of the rules password fails.
func Unmet(password string) []string {
	var out []string
	for _, r := range Requirements(password) {
		if !r.Met {
			out = append(out, r.Label)
		}
	}
	return out
}

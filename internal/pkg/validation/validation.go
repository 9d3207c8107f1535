package validation

import (
	"regexp"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// phoneRe mirrors a standard tel input: optional +, then 7-15 digits with
// optional spaces, dashes or dots between groups.
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 .\-]{5,18}[0-9]$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

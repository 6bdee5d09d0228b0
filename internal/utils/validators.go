package utils

import (
	"net/mail"
	"strings"
	"unicode"
)

// IsValidEmail reports whether the address parses per RFC 5322 and
// carries a domain with at least one dot. Deliverability is not checked.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}

// IsComplexPassword requires at least 8 characters spanning upper case,
// lower case, a digit, and a punctuation or symbol character.
func IsComplexPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

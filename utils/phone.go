package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhoneNumber strips formatting from a customer phone number for
// storage: digits only, with a leading + preserved when the caller supplied
// an international prefix. Empty input stays empty.
func NormalizePhoneNumber(phoneNumber string) string {
	trimmed := strings.TrimSpace(phoneNumber)
	if trimmed == "" {
		return ""
	}
	digits := nonDigits.ReplaceAllString(trimmed, "")
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "+") || strings.HasPrefix(trimmed, "00") {
		return "+" + strings.TrimLeft(digits, "0")
	}
	return digits
}

// ValidatePhoneNumber accepts anything that normalizes to 6-15 digits
// (E.164 bounds); the site sells internationally, so no country-specific
// prefix rules apply.
func ValidatePhoneNumber(phoneNumber string) bool {
	digits := nonDigits.ReplaceAllString(phoneNumber, "")
	return len(digits) >= 6 && len(digits) <= 15
}

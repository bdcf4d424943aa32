package utils

import "regexp"

// The customer phone number doubles as the lookup/cancel credential,
// so it is normalized once at write time and compared exactly after.

var nonDigit = regexp.MustCompile(`\D`)

// NormalizePhone strips everything except digits.
func NormalizePhone(phone string) string {
	return nonDigit.ReplaceAllString(phone, "")
}

// ValidPhone accepts any number with at least 6 digits. No per-country
// format rules; businesses serve walk-in customers from anywhere.
func ValidPhone(phone string) bool {
	return len(NormalizePhone(phone)) >= 6
}

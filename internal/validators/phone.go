package validators

import "strings"

const (
	minPhoneDigits = 10
	maxPhoneDigits = 13
)

// Digits strips everything that is not 0-9.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPlausiblePhone accepts BR numbers with DDD, optionally prefixed by 55.
func IsPlausiblePhone(phone string) bool {
	n := len(Digits(phone))
	return n >= minPhoneDigits && n <= maxPhoneDigits
}

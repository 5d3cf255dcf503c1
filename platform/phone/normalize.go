// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "AU"

// Compact removes every whitespace character from input.
func Compact(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
}

// Parseable reports whether input parses as a phone number, nationally under
// AU rules or with an explicit country code. It does not check the number is
// allocated.
func Parseable(input string) bool {
	compact := Compact(input)
	if compact == "" {
		return false
	}
	_, err := phonenumbers.Parse(compact, defaultRegion)
	return err == nil
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the compacted input.
func NormalizeE164(input string) string {
	compact := Compact(input)
	if compact == "" {
		return compact
	}

	number, err := phonenumbers.Parse(compact, defaultRegion)
	if err != nil {
		return compact
	}

	if !phonenumbers.IsValidNumber(number) {
		return compact
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// Key returns the comparison key for a phone number. Two inputs that differ only
// in spacing, or in national versus international notation, share a key.
func Key(input string) string {
	return NormalizeE164(input)
}

// Equal reports whether a and b identify the same number.
func Equal(a, b string) bool {
	ka, kb := Key(a), Key(b)
	return ka != "" && ka == kb
}

package validate

import (
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
)

// IsDestination reports whether s is acceptable as a withdrawal destination.
// All-digit destinations are treated as card numbers and must pass the Luhn
// check; anything else (wallet addresses, phone-style identifiers) only needs
// to be non-empty.
func IsDestination(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if isDigits(s) {
		return goluhn.Validate(s) == nil
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

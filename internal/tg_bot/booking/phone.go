package booking

import "strings"

// NormalizePhone reduces raw phone input to its digits with a single
// leading plus sign, regardless of how the user formatted it. ok is
// false when no digits survive the stripping; such input is rejected
// instead of being stored as a bare "+".
func NormalizePhone(raw string) (normalized string, ok bool) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "+" + digits.String(), digits.Len() > 0
}

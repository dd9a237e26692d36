// Package contact implements phone-number validation and normalization
// (§4.9): free-text intake is noisy, so this is a deliberately strict,
// deterministic filter rather than a full phone-numbering-plan parser.
package contact

import (
	"regexp"
	"strings"
)

var separators = strings.NewReplacer("(", "", ")", "", "-", "", ".", "", " ", "")

var phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)

// ParsedContact is the result of splitting a "Name - Phone" free-text
// line, or just a bare phone.
type ParsedContact struct {
	Name  string
	Phone string
}

// ParseFreeText splits a "Name - Phone" line into its parts. If no " - "
// separator is present, the whole line is treated as the phone and Name
// is left empty.
func ParseFreeText(line string) ParsedContact {
	line = strings.TrimSpace(line)
	if idx := strings.Index(line, " - "); idx >= 0 {
		return ParsedContact{
			Name:  strings.TrimSpace(line[:idx]),
			Phone: strings.TrimSpace(line[idx+3:]),
		}
	}
	return ParsedContact{Phone: line}
}

// Normalize validates raw and, on success, returns the canonical
// "+<digits>" form. It rejects anything that isn't plausibly a phone
// number: wrong length, too few unique digits, or an obvious monotonic
// run, both of which are patterns butt-dialed or placeholder input
// produces far more often than real numbers (§4.9).
func Normalize(raw string) (string, bool) {
	stripped := separators.Replace(strings.TrimSpace(raw))
	if !phonePattern.MatchString(stripped) {
		return "", false
	}

	digits := strings.TrimPrefix(stripped, "+")
	if lowVariety(digits) || isMonotonicRun(digits) {
		return "", false
	}

	return "+" + digits, true
}

func lowVariety(digits string) bool {
	seen := make(map[rune]struct{})
	for _, d := range digits {
		seen[d] = struct{}{}
	}
	return len(seen) <= 2
}

// isMonotonicRun detects sequences like "123456789" or "987654321" where
// every digit is exactly one more (or one less) than its predecessor.
func isMonotonicRun(digits string) bool {
	if len(digits) < 3 {
		return false
	}
	ascending, descending := true, true
	for i := 1; i < len(digits); i++ {
		diff := int(digits[i]) - int(digits[i-1])
		if diff != 1 {
			ascending = false
		}
		if diff != -1 {
			descending = false
		}
	}
	return ascending || descending
}

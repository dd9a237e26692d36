// Package budget is the single source of truth for budget bands (§4.1):
// the fixed buy/rent range tables, the "budget_N" button label grammar,
// and a deterministic free-text fallback parser for when a user types an
// amount instead of tapping a button.
package budget

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
)

// Band is one budget range. Max of 0 means unbounded ("750k+").
type Band struct {
	Index int
	Min   int64
	Max   int64 // 0 = unbounded
}

// Buy bands, AED (§4.1).
var buyBands = []Band{
	{Index: 0, Min: 0, Max: 150_000},
	{Index: 1, Min: 150_000, Max: 300_000},
	{Index: 2, Min: 300_000, Max: 500_000},
	{Index: 3, Min: 500_000, Max: 750_000},
	{Index: 4, Min: 750_000, Max: 0},
}

// Rent bands, AED annual (§4.1).
var rentBands = []Band{
	{Index: 0, Min: 0, Max: 50_000},
	{Index: 1, Min: 50_000, Max: 100_000},
	{Index: 2, Min: 100_000, Max: 200_000},
	{Index: 3, Min: 200_000, Max: 500_000},
	{Index: 4, Min: 500_000, Max: 0},
}

// BandsFor returns the band table for txType, buy by default.
func BandsFor(txType domain.TransactionType) []Band {
	if txType == domain.TransactionRent {
		return rentBands
	}
	return buyBands
}

// Label formats the button payload for a band, e.g. "budget_2".
func Label(b Band) string {
	return fmt.Sprintf("budget_%d", b.Index)
}

var labelPattern = regexp.MustCompile(`^budget_(\d)$`)

// ParseLabel is the left inverse of Label: given "budget_2" and the
// tenant's transaction type, it returns the matching Band (§8 round-trip
// property).
func ParseLabel(label string, txType domain.TransactionType) (Band, bool) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return Band{}, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return Band{}, false
	}
	for _, b := range BandsFor(txType) {
		if b.Index == idx {
			return b, true
		}
	}
	return Band{}, false
}

var numberPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(k|m|million|thousand)?`)

var persianWordMultipliers = map[string]int64{
	"هزار":   1_000,
	"میلیون": 1_000_000,
}

// ParseFreeText deterministically extracts a budget amount from free text
// the user typed instead of tapping a band button (e.g. "2M", "300k",
// "دو میلیون") and resolves it to the containing Band for txType. It never
// calls the AI Oracle: this is the cheap, deterministic path the state
// machine tries before falling back to the oracle (§4.1, §9).
func ParseFreeText(text string, txType domain.TransactionType) (Band, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))

	if amount, ok := parsePersianAmount(lower); ok {
		return bandContaining(amount, txType)
	}

	m := numberPattern.FindStringSubmatch(lower)
	if m == nil {
		return Band{}, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Band{}, false
	}
	switch m[2] {
	case "k", "thousand":
		value *= 1_000
	case "m", "million":
		value *= 1_000_000
	}
	return bandContaining(int64(value), txType)
}

// parsePersianAmount handles the common Farsi digit-word compositions the
// source's free-text intake needs to tolerate, e.g. "دو میلیون" (two
// million). Only the small closed vocabulary of digit words 1-10 plus the
// thousand/million multipliers is supported; anything richer is left to
// the AI Oracle.
func parsePersianAmount(text string) (int64, bool) {
	digitWords := map[string]int64{
		"یک": 1, "دو": 2, "سه": 3, "چهار": 4, "پنج": 5,
		"شش": 6, "هفت": 7, "هشت": 8, "نه": 9, "ده": 10,
	}
	tokens := strings.Fields(text)
	var total int64
	var matched bool
	for i := 0; i < len(tokens); i++ {
		if digit, ok := digitWords[tokens[i]]; ok {
			multiplier := int64(1)
			if i+1 < len(tokens) {
				if mult, ok := persianWordMultipliers[tokens[i+1]]; ok {
					multiplier = mult
					i++
				}
			}
			total += digit * multiplier
			matched = true
		} else if mult, ok := persianWordMultipliers[tokens[i]]; ok && matched {
			total *= mult
		}
	}
	return total, matched
}

func bandContaining(amount int64, txType domain.TransactionType) (Band, bool) {
	bands := BandsFor(txType)
	for _, b := range bands {
		if amount >= b.Min && (b.Max == 0 || amount < b.Max) {
			return b, true
		}
	}
	return Band{}, false
}

package models

import (
	"strconv"
	"strings"
)

// VisibleForCompare reports whether an ad may appear on the side-by-side
// comparison page. Compare visibility is deliberately wider than the public
// listing predicate: a previously-active, now-expired ad can still be
// compared, but a draft, pending or rejected ad cannot.
func (a *Ad) VisibleForCompare() bool {
	return a.IsPublished() || a.IsExpired()
}

// CompareSearchText synthesizes the text a compare-picker search runs
// against: the listing title plus a formatted price.
func (a *Ad) CompareSearchText() string {
	var b strings.Builder
	b.WriteString(a.Title)
	if a.Price != nil {
		b.WriteString(" ")
		b.WriteString(strconv.FormatFloat(*a.Price, 'f', -1, 64))
	}
	return b.String()
}

// MatchesCompareSearch tokenizes the search text on whitespace and requires
// every token to appear as a case-insensitive substring of the synthesized
// title-plus-price text.
func (a *Ad) MatchesCompareSearch(search string) bool {
	tokens := strings.Fields(search)
	if len(tokens) == 0 {
		return true
	}

	haystack := strings.ToLower(a.CompareSearchText())
	for _, token := range tokens {
		if !strings.Contains(haystack, strings.ToLower(token)) {
			return false
		}
	}
	return true
}

// SameType reports whether two ads share a normalized listing type.
func SameType(a, b *Ad) bool {
	return strings.EqualFold(string(a.ListingType), string(b.ListingType))
}

// Direction says which side of a numeric comparison is the better one
type Direction int

// enum values for Direction
const (
	LowerWins Direction = iota
	HigherWins
)

// Winner identifies which side of a field comparison won
type Winner string

// enum values for Winner
const (
	WinnerNone   Winner = "none"
	WinnerFirst  Winner = "first"
	WinnerSecond Winner = "second"
)

// CompareField is the single per-field comparator used for every compared
// attribute, so no field can grow divergent tie-breaking rules. A missing
// value on either side, or a tie, yields no winner; only a strictly better
// value wins.
func CompareField(first, second *float64, direction Direction) Winner {
	if first == nil || second == nil || *first == *second {
		return WinnerNone
	}

	firstBetter := *first < *second
	if direction == HigherWins {
		firstBetter = !firstBetter
	}

	if firstBetter {
		return WinnerFirst
	}
	return WinnerSecond
}

// Comparison is the result of resolving two ads for side-by-side display.
// SecondCleared is set when the two selections ended up with mismatched
// listing types and the second one was dropped rather than left inconsistent.
type Comparison struct {
	First         *Ad               `json:"first"`
	Second        *Ad               `json:"second,omitempty"`
	SecondCleared bool              `json:"second_cleared,omitempty"`
	Winners       map[string]Winner `json:"winners,omitempty"`
}

// Compared attribute names, as they appear in the winners map.
const (
	FieldPrice    = "price"
	FieldMileage  = "mileage"
	FieldYear     = "year"
	FieldEngineCC = "engine_capacity"
)

// ResolvePair computes per-field winners for two ads. Price and mileage are
// lower-wins; year and engine capacity are higher-wins.
func ResolvePair(first, second *Ad) Comparison {
	if !SameType(first, second) {
		return Comparison{First: first, SecondCleared: true}
	}

	return Comparison{
		First:  first,
		Second: second,
		Winners: map[string]Winner{
			FieldPrice:    CompareField(first.Price, second.Price, LowerWins),
			FieldMileage:  CompareField(intField(first.Mileage), intField(second.Mileage), LowerWins),
			FieldYear:     CompareField(intField(first.Year), intField(second.Year), HigherWins),
			FieldEngineCC: CompareField(intField(first.EngineCC), intField(second.EngineCC), HigherWins),
		},
	}
}

func intField(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

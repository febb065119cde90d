// Package rating canonicalizes provider star ratings.
//
// Google returns ratings either as a textual enum ("ONE".."FIVE", Business
// Profile API) or as a numeric value with possible fractions (Places API).
// Both collapse to an integer in [1,5]. Unrecognized or missing values
// default to 5, matching what the mapping has always done for unknown
// enum values.
package rating

import "math"

const Default = 5

var stars = map[string]int{
	"ONE":   1,
	"TWO":   2,
	"THREE": 3,
	"FOUR":  4,
	"FIVE":  5,
}

// FromStar maps a textual enum to 1..5, defaulting to 5.
func FromStar(s string) int {
	if v, ok := stars[s]; ok {
		return v
	}
	return Default
}

// FromNumeric rounds a numeric rating to the nearest integer and clamps it
// to [1,5]. Zero, NaN, and negatives count as missing and default to 5.
func FromNumeric(f float64) int {
	if math.IsNaN(f) || f <= 0 {
		return Default
	}
	n := int(math.Round(f))
	if n < 1 {
		n = 1
	}
	if n > 5 {
		n = 5
	}
	return n
}

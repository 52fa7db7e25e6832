// Package util provides small domain-agnostic helpers shared by the
// command surface: timecode formatting, pluralization, and generic
// bounds clamping.
package util

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// FormatTimecode renders seconds as "mm:ss.mmm". Negative and non-finite
// inputs render as zero. Hours fold into the minute field, matching how
// editing tools display long timelines.
func FormatTimecode(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(math.Round(seconds * 1000))
	minutes := totalMillis / 60000
	secs := (totalMillis % 60000) / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, secs, millis)
}

// Quantify returns a pluralized string representation of a count and its
// associated labels.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Clamp bounds value to [low, high].
func Clamp[T constraints.Ordered](value, low, high T) T {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

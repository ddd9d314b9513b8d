package view

import (
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/resume-review-dashboard/internal/types"
)

// Placeholder stands in for a value that must not be shown.
const Placeholder = "—"

// Score labels, best first.
const (
	LabelExcellent = "Excellent candidate – Highly recommended"
	LabelGood      = "Good candidate – Recommended"
	LabelAverage   = "Average candidate – Considerable"
	LabelPoor      = "Poor candidate – Not recommended"
)

// ScoreLabel maps any score to its qualitative label. Out-of-range values
// fall into the nearest bracket and NaN into the lowest.
func ScoreLabel(score float64) string {
	switch {
	case score >= 85:
		return LabelExcellent
	case score >= 70:
		return LabelGood
	case score >= 50:
		return LabelAverage
	default:
		return LabelPoor
	}
}

// Indicator is the trend marker next to a score in candidate lists.
type Indicator string

const (
	IndicatorUp   Indicator = "▲"
	IndicatorFlat Indicator = "▬"
	IndicatorDown Indicator = "▼"
)

// ScoreIndicator returns the trend marker for a score.
func ScoreIndicator(score float64) Indicator {
	switch {
	case score >= 85:
		return IndicatorUp
	case score >= 70:
		return IndicatorFlat
	default:
		return IndicatorDown
	}
}

// FormatScore renders a score without trailing zeros.
func FormatScore(score *float64) string {
	if score == nil || math.IsNaN(*score) {
		return Placeholder
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}

// FormatGPA renders a GPA with two decimals.
func FormatGPA(gpa *float64) string {
	if gpa == nil || math.IsNaN(*gpa) {
		return Placeholder
	}
	return strconv.FormatFloat(*gpa, 'f', 2, 64)
}

// FormatCount renders an optional count.
func FormatCount(n *int) string {
	if n == nil {
		return Placeholder
	}
	return strconv.Itoa(*n)
}

// FormatText renders an optional string.
func FormatText(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return Placeholder
	}
	return *s
}

// FormatDate renders a timestamp as "Jan 2, 2006".
func FormatDate(ts types.Timestamp) string {
	if ts.IsZero() {
		return Placeholder
	}
	return ts.Format("Jan 2, 2006")
}

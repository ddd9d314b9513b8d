package view

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-review-dashboard/internal/types"
)

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{-5, LabelPoor},
		{0, LabelPoor},
		{49, LabelPoor},
		{49.999, LabelPoor},
		{50, LabelAverage},
		{69, LabelAverage},
		{69.5, LabelAverage},
		{70, LabelGood},
		{84, LabelGood},
		{84.99, LabelGood},
		{85, LabelExcellent},
		{100, LabelExcellent},
		{150, LabelExcellent},
		{math.Inf(1), LabelExcellent},
		{math.Inf(-1), LabelPoor},
		{math.NaN(), LabelPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreLabel(tt.score), "score %v", tt.score)
	}
}

func TestScoreIndicator(t *testing.T) {
	assert.Equal(t, IndicatorUp, ScoreIndicator(85))
	assert.Equal(t, IndicatorFlat, ScoreIndicator(84))
	assert.Equal(t, IndicatorFlat, ScoreIndicator(70))
	assert.Equal(t, IndicatorDown, ScoreIndicator(69))
}

func ptr[T any](v T) *T { return &v }

func TestFormatters(t *testing.T) {
	assert.Equal(t, "92", FormatScore(ptr(92.0)))
	assert.Equal(t, "92.5", FormatScore(ptr(92.5)))
	assert.Equal(t, Placeholder, FormatScore(nil))
	assert.Equal(t, Placeholder, FormatScore(ptr(math.NaN())))

	assert.Equal(t, "3.80", FormatGPA(ptr(3.8)))
	assert.Equal(t, "4.00", FormatGPA(ptr(4.0)))
	assert.Equal(t, Placeholder, FormatGPA(nil))

	assert.Equal(t, "0", FormatCount(ptr(0)))
	assert.Equal(t, Placeholder, FormatCount(nil))

	assert.Equal(t, Placeholder, FormatText(ptr("  ")))
	assert.Equal(t, "Junior", FormatText(ptr("Junior")))

	ts := types.Timestamp{Time: time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Jan 15, 2024", FormatDate(ts))
	assert.Equal(t, Placeholder, FormatDate(types.Timestamp{}))
}

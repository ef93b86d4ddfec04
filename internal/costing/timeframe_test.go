package costing

import (
	"testing"

	"atlasbcp/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeframeToHours(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected float64
	}{
		{"empty", "", 0},
		{"whitespace only", "   ", 0},
		{"plain hours", "2 hours", 2},
		{"singular hour", "1 hour", 1},
		{"range of days averages", "1-2 days", 12},
		{"range with spaces", "1 - 2 days", 12},
		{"range with 'to'", "1 to 2 days", 12},
		{"single day", "1 day", 8},
		{"one week", "1 week", 40},
		{"two weeks", "2 weeks", 80},
		{"one month", "1 month", 160},
		{"one year", "1 year", 1920},
		{"thirty minutes", "30 minutes", 0.5},
		{"fractional weeks", "1.5 weeks", 60},
		{"unit embedded in sentence", "about 3 days of work", 24},
		{"ongoing maps to nominal", "ongoing", 1},
		{"asap maps to nominal", "asap", 1},
		{"start this week maps to nominal", "Start this week", 1},
		{"gibberish maps to nominal", "???", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, ParseTimeframeToHours(tc.input), 1e-9)
		})
	}
}

func TestSumStrategyHours(t *testing.T) {
	steps := []models.ActionStep{
		{Timeframe: "2 hours"},
		{Timeframe: "1-2 days"},
		{Timeframe: "ongoing"},
		{Timeframe: ""},
	}

	// 2 + 12 + 1 + 0
	assert.InDelta(t, 15.0, SumStrategyHours(steps), 1e-9)
}

func TestSumStrategyHoursEmpty(t *testing.T) {
	assert.Equal(t, 0.0, SumStrategyHours(nil))
}

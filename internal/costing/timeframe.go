package costing

import (
	"regexp"
	"strconv"
	"strings"
)

// Hours per unit word. Working-time factors: a day is 8 hours, a week 40, a
// month 160, a year 1920.
var unitHours = map[string]float64{
	"minute": 1.0 / 60.0,
	"min":    1.0 / 60.0,
	"hour":   1,
	"hr":     1,
	"day":    8,
	"week":   40,
	"month":  160,
	"year":   1920,
}

// e.g. "2 hours", "1-2 days", "1.5 weeks", "1 – 2 days"
var timeframePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:[-–—]|to)?\s*(\d+(?:\.\d+)?)?\s*(minute|min|hour|hr|day|week|month|year)s?\b`)

// nominalHours is assigned to special free text ("ongoing", "asap", "Start
// this week"). Effort estimates are deliberately approximate; a fixed nominal
// value beats failing the whole plan summary.
const nominalHours = 1

// ParseTimeframeToHours converts a free-text timeframe into estimated hours.
// Numeric ranges average their bounds. Empty input is 0; non-empty text with
// no recognizable quantity is the nominal 1 hour.
func ParseTimeframeToHours(text string) float64 {
	trimmed := strings.TrimSpace(strings.ToLower(text))
	if trimmed == "" {
		return 0
	}

	m := timeframePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return nominalHours
	}

	lo, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nominalHours
	}
	value := lo
	if m[2] != "" {
		hi, err := strconv.ParseFloat(m[2], 64)
		if err == nil {
			value = (lo + hi) / 2
		}
	}

	factor, ok := unitHours[m[3]]
	if !ok {
		return nominalHours
	}
	return value * factor
}

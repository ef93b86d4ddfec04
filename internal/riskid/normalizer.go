// Package riskid normalizes hazard identifiers into their canonical snake_case
// form. Every spelling the legacy data carries ("PowerOutage", "power outage",
// "power-outage") must collapse to the single code the catalog is keyed by.
package riskid

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CatchAll is the sentinel code for strategies that apply to every hazard.
// Strategies tagged with it are surfaced as universal, never under a specific risk.
const CatchAll = "all_hazards"

// stripAccents removes combining marks so locale-flavored ids normalize too
// (e.g. "sequía" -> "sequia").
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	camelBoundary   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	separators      = regexp.MustCompile(`[\s\-]+`)
	nonToken        = regexp.MustCompile(`[^a-z0-9_]+`)
	repeatedScore   = regexp.MustCompile(`_+`)
)

// synonyms is THE canonical alias table. The legacy scripts disagreed on several
// of these targets; this table is the product decision and the single source of
// truth. Keys and values are both in mechanically-normalized form.
var synonyms = map[string]string{
	"flooding":               "flood",
	"floods":                 "flood",
	"flash_flood":            "flood",
	"pandemic_disease":       "pandemic",
	"pandemic_impact":        "pandemic",
	"health_emergency":       "pandemic",
	"epidemic":               "pandemic",
	"cybersecurity_incident": "cyber_attack",
	"cyberattack":            "cyber_attack",
	"hurricanes":             "hurricane",
	"tropical_storm":         "hurricane",
	"tropical_cyclone":       "hurricane",
	"power_cut":              "power_outage",
	"blackout":               "power_outage",
	"electricity_outage":     "power_outage",
	"earth_quake":            "earthquake",
	"wildfire":               "fire",
	"fires":                  "fire",
	"drought_impact":         "drought",
	"general":                CatchAll,
	"all":                    CatchAll,
}

// canonical is the set of codes the seeded catalog ships with. Normalize does
// not restrict its output to this set; it exists for admin validation surfaces.
var canonical = []string{
	"hurricane",
	"flood",
	"earthquake",
	"drought",
	"fire",
	"landslide",
	"storm_surge",
	"power_outage",
	"water_outage",
	"cyber_attack",
	"equipment_failure",
	"supply_disruption",
	"pandemic",
	"civil_unrest",
	"crime",
	"staff_unavailability",
	"economic_downturn",
	"currency_devaluation",
}

// Normalize converts an arbitrary hazard identifier spelling into its canonical
// snake_case token. Pure and total: unparseable input degrades to best-effort
// snake_case, falsy input returns the empty string. Idempotent.
func Normalize(id string) string {
	if id == "" {
		return ""
	}

	s, _, err := transform.String(stripAccents, id)
	if err != nil {
		s = id
	}

	s = camelBoundary.ReplaceAllString(s, "${1}_${2}")
	s = acronymBoundary.ReplaceAllString(s, "${1}_${2}")
	s = strings.ToLower(s)
	s = separators.ReplaceAllString(s, "_")
	s = nonToken.ReplaceAllString(s, "")
	s = repeatedScore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")

	if target, ok := synonyms[s]; ok {
		return target
	}
	return s
}

// NormalizeAll normalizes every id, dropping entries that normalize to "".
func NormalizeAll(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n := Normalize(id); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// IsCatchAll reports whether the (already normalized) code is the universal sentinel.
func IsCatchAll(code string) bool {
	return code == CatchAll
}

// Canonical returns the codes of the seeded hazard catalog.
func Canonical() []string {
	out := make([]string, len(canonical))
	copy(out, canonical)
	return out
}

// Tokens splits a normalized code into its whole-word tokens ("power_outage"
// -> ["power","outage"]).
func Tokens(code string) []string {
	if code == "" {
		return nil
	}
	return strings.Split(code, "_")
}

package riskid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"camelCase splits", "PowerOutage", "power_outage"},
		{"lower camelCase splits", "powerOutage", "power_outage"},
		{"snake_case unchanged", "power_outage", "power_outage"},
		{"spaces collapse", "Power Outage", "power_outage"},
		{"hyphens collapse", "power-outage", "power_outage"},
		{"mixed separators", "  Power - Outage ", "power_outage"},
		{"punctuation stripped", "power.outage!", "poweroutage"},
		{"repeated underscores collapse", "power___outage", "power_outage"},
		{"accents stripped", "sequía", "sequia"},
		{"empty input", "", ""},
		{"synonym flooding", "flooding", "flood"},
		{"synonym Flooding", "Flooding", "flood"},
		{"synonym pandemicDisease", "pandemicDisease", "pandemic"},
		{"synonym health_emergency", "health_emergency", "pandemic"},
		{"synonym pandemic_impact", "pandemic_impact", "pandemic"},
		{"cyberAttack keeps snake form", "cyberAttack", "cyber_attack"},
		{"cybersecurity_incident folds in", "cybersecurity_incident", "cyber_attack"},
		{"single-word cyberattack folds in", "cyberattack", "cyber_attack"},
		{"blackout synonym", "Blackout", "power_outage"},
		{"tropical storm synonym", "Tropical Storm", "hurricane"},
		{"wildfire synonym", "wildfire", "fire"},
		{"general is catch-all", "general", CatchAll},
		{"unknown id passes through", "ZombieUprising", "zombie_uprising"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"PowerOutage", "power_outage", "Power Outage", "flooding", "cyberAttack",
		"Tropical Storm", "", "ZombieUprising", "héritage culturel",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", in)
	}

	// Synonym targets must themselves be canonical, otherwise idempotence breaks.
	for from, to := range synonyms {
		assert.Equal(t, to, Normalize(to), "synonym target %q (from %q) is not stable", to, from)
	}
}

func TestNormalizeEquivalenceClass(t *testing.T) {
	assert.Equal(t, Normalize("PowerOutage"), Normalize("power_outage"))
	assert.Equal(t, Normalize("power_outage"), Normalize("Power Outage"))
}

func TestNormalizeAll(t *testing.T) {
	out := NormalizeAll([]string{"Flooding", "", "PowerOutage", "!!"})
	assert.Equal(t, []string{"flood", "power_outage"}, out)
}

func TestIsCatchAll(t *testing.T) {
	assert.True(t, IsCatchAll(Normalize("all_hazards")))
	assert.True(t, IsCatchAll(Normalize("general")))
	assert.False(t, IsCatchAll("hurricane"))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"power", "outage"}, Tokens("power_outage"))
	assert.Nil(t, Tokens(""))
}

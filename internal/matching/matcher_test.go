package matching

import (
	"testing"

	"atlasbcp/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strategy(title string, primary, secondary []string) models.Strategy {
	return models.Strategy{
		ID:               uuid.New(),
		Title:            models.LocalizedString{"en": title},
		PrimaryHazards:   primary,
		SecondaryHazards: secondary,
	}
}

func titles(strategies []models.Strategy) []string {
	out := make([]string, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, s.Title.Get("en"))
	}
	return out
}

func TestMatchExactAndFanOut(t *testing.T) {
	hurricanePrep := strategy("Hurricane preparedness", []string{"hurricane"}, []string{"flood", "power_outage"})
	quakeDrill := strategy("Earthquake drills", []string{"earthquake"}, nil)

	res := Match([]string{"hurricane", "flood"}, []models.Strategy{hurricanePrep, quakeDrill})

	// S1 appears under both selected risks, S2 under neither, no gaps.
	assert.Equal(t, []string{"Hurricane preparedness"}, titles(res.ByRisk["hurricane"]))
	assert.Equal(t, []string{"Hurricane preparedness"}, titles(res.ByRisk["flood"]))
	assert.NotContains(t, titles(res.ByRisk["hurricane"]), "Earthquake drills")
	assert.Empty(t, res.Gaps)
	assert.Empty(t, res.Universal)
}

func TestMatchNormalizesSelectionAndCatalog(t *testing.T) {
	s := strategy("Backup power", []string{"PowerOutage"}, nil)

	res := Match([]string{"power outage"}, []models.Strategy{s})

	assert.Len(t, res.ByRisk["power_outage"], 1)
}

func TestMatchSubstringContainment(t *testing.T) {
	s := strategy("Storm shutters", []string{"storm_surge"}, nil)

	// "storm" is contained in "storm_surge".
	res := Match([]string{"storm"}, []models.Strategy{s})
	assert.Len(t, res.ByRisk["storm"], 1)
}

func TestMatchTokenOverlap(t *testing.T) {
	s := strategy("Water reserves", []string{"water_outage"}, nil)

	// No exact or substring match, but the whole-word token "outage" is shared.
	res := Match([]string{"outage_electrical"}, []models.Strategy{s})
	assert.Len(t, res.ByRisk["outage_electrical"], 1)
}

func TestMatchShortTokensDoNotOverlap(t *testing.T) {
	s := strategy("Misc", []string{"am_radio"}, nil)

	res := Match([]string{"am_procedure"}, []models.Strategy{s})
	assert.Contains(t, res.Gaps, "am_procedure")
}

func TestMatchUniversalStrategies(t *testing.T) {
	catchAll := strategy("Emergency contact list", []string{"all_hazards"}, nil)
	untagged := strategy("Insurance review", nil, nil)
	specific := strategy("Flood barrier", []string{"flood"}, nil)

	res := Match([]string{"flood"}, []models.Strategy{catchAll, untagged, specific})

	assert.Equal(t, []string{"Flood barrier"}, titles(res.ByRisk["flood"]))
	assert.ElementsMatch(t, []string{"Emergency contact list", "Insurance review"}, titles(res.Universal))
	assert.Empty(t, res.Gaps)
}

func TestMatchReportsCoverageGaps(t *testing.T) {
	s := strategy("Flood barrier", []string{"flood"}, nil)

	res := Match([]string{"flood", "volcanic_eruption"}, []models.Strategy{s})

	assert.Equal(t, []string{"volcanic_eruption"}, res.Gaps)
	assert.Len(t, res.ByRisk["flood"], 1)
	_, present := res.ByRisk["volcanic_eruption"]
	assert.False(t, present, "gap risks must not appear in ByRisk")
}

func TestMatchDedupesSelection(t *testing.T) {
	s := strategy("Flood barrier", []string{"flood"}, nil)

	res := Match([]string{"flood", "Flooding", "FLOOD"}, []models.Strategy{s})

	assert.Len(t, res.ByRisk, 1)
	assert.Len(t, res.ByRisk["flood"], 1)
}

func TestMatchEmptySelection(t *testing.T) {
	s := strategy("Flood barrier", []string{"flood"}, nil)

	res := Match(nil, []models.Strategy{s})

	assert.Empty(t, res.ByRisk)
	assert.Empty(t, res.Gaps)
}

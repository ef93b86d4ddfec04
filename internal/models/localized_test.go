package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestLocalizedStringGet(t *testing.T) {
	testCases := []struct {
		name     string
		ls       LocalizedString
		locale   string
		expected string
	}{
		{"exact locale", LocalizedString{"en": "Flood", "es": "Inundación"}, "es", "Inundación"},
		{"falls back to en", LocalizedString{"en": "Flood", "fr": "Inondation"}, "es", "Flood"},
		{"falls back to first populated locale", LocalizedString{"fr": "Inondation", "pt": "Inundação"}, "es", "Inondation"},
		{"skips empty values", LocalizedString{"es": "", "en": "Flood"}, "es", "Flood"},
		{"empty map", LocalizedString{}, "en", ""},
		{"nil map", nil, "en", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.ls.Get(tc.locale))
		})
	}
}

func TestLocalizedStringScan(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		var ls LocalizedString
		require.NoError(t, ls.Scan([]byte(`{"en":"Hurricane"}`)))
		assert.Equal(t, "Hurricane", ls["en"])
	})

	t.Run("string column value", func(t *testing.T) {
		var ls LocalizedString
		require.NoError(t, ls.Scan(`{"es":"Huracán"}`))
		assert.Equal(t, "Huracán", ls["es"])
	})

	t.Run("corrupt JSON degrades to empty", func(t *testing.T) {
		var ls LocalizedString
		require.NoError(t, ls.Scan([]byte(`{not json`)))
		assert.Empty(t, ls)
	})

	t.Run("nil degrades to empty", func(t *testing.T) {
		var ls LocalizedString
		require.NoError(t, ls.Scan(nil))
		assert.Empty(t, ls)
	})

	t.Run("unsupported type errors", func(t *testing.T) {
		var ls LocalizedString
		assert.Error(t, ls.Scan(42))
	})
}

func TestLocalizedStringValue(t *testing.T) {
	t.Run("nil map serializes as empty object", func(t *testing.T) {
		var ls LocalizedString
		v, err := ls.Value()
		require.NoError(t, err)
		assert.Equal(t, "{}", v)
	})

	t.Run("round trip", func(t *testing.T) {
		original := LocalizedString{"en": "Drought", "es": "Sequía"}
		v, err := original.Value()
		require.NoError(t, err)

		var scanned LocalizedString
		require.NoError(t, scanned.Scan(v))
		assert.Equal(t, original, scanned)
	})
}

func TestStringList(t *testing.T) {
	t.Run("nil list serializes as empty array", func(t *testing.T) {
		var sl StringList
		v, err := sl.Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("corrupt JSON degrades to empty", func(t *testing.T) {
		var sl StringList
		require.NoError(t, sl.Scan([]byte(`[broken`)))
		assert.Empty(t, sl)
	})

	t.Run("round trip", func(t *testing.T) {
		original := StringList{"flood", "hurricane"}
		v, err := original.Value()
		require.NoError(t, err)

		var scanned StringList
		require.NoError(t, scanned.Scan(v))
		assert.Equal(t, original, scanned)
	})

	t.Run("contains", func(t *testing.T) {
		sl := StringList{"flood", "hurricane"}
		assert.True(t, sl.Contains("flood"))
		assert.False(t, sl.Contains("drought"))
	})
}

func TestStrategyApplicableHazards(t *testing.T) {
	s := Strategy{
		PrimaryHazards:   StringList{"hurricane", "storm_surge"},
		SecondaryHazards: StringList{"flood"},
	}
	assert.Equal(t, []string{"hurricane", "storm_surge", "flood"}, s.ApplicableHazards())
}

func TestCountryMultiplierCategoryMultiplier(t *testing.T) {
	cm := CountryMultiplier{
		Construction: mustDecimal(t, "1.5"),
		Equipment:    mustDecimal(t, "1.2"),
		Service:      mustDecimal(t, "0.8"),
		Supplies:     mustDecimal(t, "1.1"),
	}

	assert.True(t, mustDecimal(t, "1.5").Equal(cm.CategoryMultiplier(CostConstruction)))
	assert.True(t, mustDecimal(t, "1.2").Equal(cm.CategoryMultiplier(CostEquipment)))
	assert.True(t, mustDecimal(t, "0.8").Equal(cm.CategoryMultiplier(CostService)))
	assert.True(t, mustDecimal(t, "1.1").Equal(cm.CategoryMultiplier(CostSupplies)))
	// Unknown categories scale by 1 rather than zeroing the line.
	assert.True(t, cm.CategoryMultiplier(CostCategory("unknown")).Equal(mustDecimal(t, "1")))
}

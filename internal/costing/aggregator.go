// Package costing computes implementation cost and effort totals for
// strategies. All functions are pure over already-fetched catalog data so the
// admin UI can recompute on every edit.
package costing

import (
	"atlasbcp/backend/internal/models"

	"github.com/shopspring/decimal"
)

// StrategyCost is the cost/effort summary of one strategy (or one whole plan
// when aggregated across strategies).
type StrategyCost struct {
	TotalUSD        decimal.Decimal `json:"total_usd"`
	TotalLocal      decimal.Decimal `json:"total_local"`
	CurrencyCode    string          `json:"currency_code"`
	CurrencySymbol  string          `json:"currency_symbol"`
	CalculatedHours float64         `json:"calculated_hours"`
}

// CalculateStrategyCost sums the itemized costs of the given action steps,
// scaled by the country's category multipliers, and converts the USD total to
// local currency. A nil multiplier record degrades to factor 1.0 and USD; a
// step without cost lines contributes exactly zero (rendered "$0", never a
// placeholder). Inputs are assumed validated (non-negative) by the admin write
// path.
func CalculateStrategyCost(actionSteps []models.ActionStep, cm *models.CountryMultiplier) StrategyCost {
	totalUSD := decimal.Zero
	for _, step := range actionSteps {
		for _, line := range step.CostLines {
			contribution := line.CostItem.BaseUSD.Mul(line.Quantity)
			if cm != nil {
				contribution = contribution.Mul(cm.CategoryMultiplier(line.CostItem.Category))
			}
			totalUSD = totalUSD.Add(contribution)
		}
	}

	cost := StrategyCost{
		TotalUSD:        totalUSD,
		TotalLocal:      totalUSD,
		CurrencyCode:    "USD",
		CurrencySymbol:  "$",
		CalculatedHours: SumStrategyHours(actionSteps),
	}
	if cm != nil {
		cost.TotalLocal = totalUSD.Mul(cm.ExchangeRateUSD)
		cost.CurrencyCode = cm.CurrencyCode
		cost.CurrencySymbol = cm.CurrencySymbol
	}
	return cost
}

// SumStrategyHours estimates the total implementation effort of the steps by
// parsing each step's free-text timeframe.
func SumStrategyHours(actionSteps []models.ActionStep) float64 {
	total := 0.0
	for _, step := range actionSteps {
		total += ParseTimeframeToHours(step.Timeframe)
	}
	return total
}

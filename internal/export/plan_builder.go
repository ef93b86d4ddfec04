// Package export renders a finalized (or draft) plan into a self-contained
// document: the full strategy detail, itemized costs and timelines localized
// for the plan's country and language. The document is what the frontend
// turns into a printable plan.
package export

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"atlasbcp/backend/internal/costing"
	"atlasbcp/backend/internal/matching"
	"atlasbcp/backend/internal/models"
)

// PlanDocument is the fully resolved export payload for one plan.
type PlanDocument struct {
	PlanID              uuid.UUID            `json:"plan_id"`
	BusinessName        string               `json:"business_name"`
	CountryCode         string               `json:"country_code"`
	Locale              string               `json:"locale"`
	Status              models.PlanStatus    `json:"status"`
	SelectedHazards     []string             `json:"selected_hazards"`
	Sections            []HazardSection      `json:"sections"`
	UniversalStrategies []StrategyDetail     `json:"universal_strategies"`
	CoverageGaps        []string             `json:"coverage_gaps"`
	Totals              costing.StrategyCost `json:"totals"`
}

// HazardSection groups the plan's strategies under one selected hazard.
type HazardSection struct {
	Hazard     string           `json:"hazard"`
	Strategies []StrategyDetail `json:"strategies"`
}

// StrategyDetail is one strategy rendered with localized text, its ordered
// steps and its priced cost summary.
type StrategyDetail struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Tier        models.StrategyTier  `json:"tier"`
	Steps       []StepDetail         `json:"steps"`
	Cost        costing.StrategyCost `json:"cost"`
}

// StepDetail is one action step with its itemized cost lines.
type StepDetail struct {
	Phase          models.StepPhase `json:"phase"`
	Position       int              `json:"position"`
	Title          string           `json:"title"`
	Timeframe      string           `json:"timeframe"`
	EstimatedHours float64          `json:"estimated_hours"`
	CostLines      []CostLineDetail `json:"cost_lines"`
}

// CostLineDetail is one priced resource on a step, pre-multiplied for the
// plan's country.
type CostLineDetail struct {
	Name     string              `json:"name"`
	Category models.CostCategory `json:"category"`
	Quantity decimal.Decimal     `json:"quantity"`
	UnitUSD  decimal.Decimal     `json:"unit_usd"`
	LineUSD  decimal.Decimal     `json:"line_usd"`
}

// BuildPlanDocument resolves the plan's strategy IDs against the catalog and
// renders the complete export document. Strategies are grouped under the
// selected hazards they cover; selections covering none of the selected
// hazards land in UniversalStrategies rather than being dropped.
func BuildPlanDocument(db *gorm.DB, plan *models.Plan) (*PlanDocument, error) {
	doc := &PlanDocument{
		PlanID:          plan.ID,
		BusinessName:    plan.BusinessName,
		CountryCode:     plan.CountryCode,
		Locale:          plan.Locale,
		Status:          plan.Status,
		SelectedHazards: plan.SelectedHazards,
		Sections:        []HazardSection{},
		CoverageGaps:    []string{},
		Totals: costing.StrategyCost{
			TotalUSD:       decimal.Zero,
			TotalLocal:     decimal.Zero,
			CurrencyCode:   "USD",
			CurrencySymbol: "$",
		},
	}

	var strategies []models.Strategy
	if len(plan.StrategyIDs) > 0 {
		err := db.Preload("ActionSteps", func(db *gorm.DB) *gorm.DB { return db.Order("action_steps.position") }).
			Preload("ActionSteps.CostLines.CostItem").
			Where("id IN ?", []string(plan.StrategyIDs)).
			Find(&strategies).Error
		if err != nil {
			return nil, err
		}
	}

	var cm *models.CountryMultiplier
	var record models.CountryMultiplier
	if err := db.Where("country_code = ?", plan.CountryCode).First(&record).Error; err == nil {
		cm = &record
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	result := matching.Match(plan.SelectedHazards, strategies)

	// Each strategy is priced once for the totals even when it covers several
	// of the selected hazards.
	counted := make(map[uuid.UUID]bool)
	addTotals := func(cost costing.StrategyCost, id uuid.UUID) {
		if counted[id] {
			return
		}
		counted[id] = true
		doc.Totals.TotalUSD = doc.Totals.TotalUSD.Add(cost.TotalUSD)
		doc.Totals.TotalLocal = doc.Totals.TotalLocal.Add(cost.TotalLocal)
		doc.Totals.CurrencyCode = cost.CurrencyCode
		doc.Totals.CurrencySymbol = cost.CurrencySymbol
		doc.Totals.CalculatedHours += cost.CalculatedHours
	}

	for _, hazard := range plan.SelectedHazards {
		matched, ok := result.ByRisk[hazard]
		if !ok || len(matched) == 0 {
			continue
		}
		section := HazardSection{Hazard: hazard}
		for _, s := range matched {
			detail := buildStrategyDetail(s, cm, plan.Locale)
			addTotals(detail.Cost, s.ID)
			section.Strategies = append(section.Strategies, detail)
		}
		doc.Sections = append(doc.Sections, section)
	}

	for _, s := range result.Universal {
		detail := buildStrategyDetail(s, cm, plan.Locale)
		addTotals(detail.Cost, s.ID)
		doc.UniversalStrategies = append(doc.UniversalStrategies, detail)
	}

	// Chosen strategies whose hazard lists miss every selected hazard still
	// belong to the plan: render and price them alongside the universal ones.
	for _, s := range strategies {
		if counted[s.ID] {
			continue
		}
		detail := buildStrategyDetail(s, cm, plan.Locale)
		addTotals(detail.Cost, s.ID)
		doc.UniversalStrategies = append(doc.UniversalStrategies, detail)
	}

	doc.CoverageGaps = append(doc.CoverageGaps, result.Gaps...)
	return doc, nil
}

func buildStrategyDetail(s models.Strategy, cm *models.CountryMultiplier, locale string) StrategyDetail {
	detail := StrategyDetail{
		ID:          s.ID,
		Title:       s.Title.Get(locale),
		Description: s.Description.Get(locale),
		Tier:        s.Tier,
		Cost:        costing.CalculateStrategyCost(s.ActionSteps, cm),
	}
	for _, step := range s.ActionSteps {
		detail.Steps = append(detail.Steps, buildStepDetail(step, cm, locale))
	}
	return detail
}

func buildStepDetail(step models.ActionStep, cm *models.CountryMultiplier, locale string) StepDetail {
	out := StepDetail{
		Phase:          step.Phase,
		Position:       step.Position,
		Title:          step.Title.Get(locale),
		Timeframe:      step.Timeframe,
		EstimatedHours: costing.ParseTimeframeToHours(step.Timeframe),
	}
	for _, line := range step.CostLines {
		unit := line.CostItem.BaseUSD
		if cm != nil {
			unit = unit.Mul(cm.CategoryMultiplier(line.CostItem.Category))
		}
		out.CostLines = append(out.CostLines, CostLineDetail{
			Name:     line.CostItem.Name.Get(locale),
			Category: line.CostItem.Category,
			Quantity: line.Quantity,
			UnitUSD:  unit,
			LineUSD:  unit.Mul(line.Quantity),
		})
	}
	return out
}

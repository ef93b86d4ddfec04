package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Custom types for Category, Tier, Phase, etc. to enforce specific values
type HazardCategory string
type StrategyTier string
type StepPhase string
type CostCategory string
type RiskLevel string
type PlanStatus string

const (
	HazardNatural       HazardCategory = "natural"
	HazardTechnological HazardCategory = "technological"
	HazardHuman         HazardCategory = "human"
	HazardEconomic      HazardCategory = "economic"

	TierEssential   StrategyTier = "essential"
	TierRecommended StrategyTier = "recommended"
	TierOptional    StrategyTier = "optional"

	PhaseBefore StepPhase = "before"
	PhaseDuring StepPhase = "during"
	PhaseAfter  StepPhase = "after"

	CostConstruction CostCategory = "construction"
	CostEquipment    CostCategory = "equipment"
	CostService      CostCategory = "service"
	CostSupplies     CostCategory = "supplies"

	RiskLevelLow     RiskLevel = "low"
	RiskLevelMedium  RiskLevel = "medium"
	RiskLevelHigh    RiskLevel = "high"
	RiskLevelExtreme RiskLevel = "extreme"

	PlanDraft PlanStatus = "draft"
	PlanFinal PlanStatus = "final"
)

// Hazard is one entry of the curated hazard catalog. Code is the canonical
// snake_case identifier (e.g. "power_outage") and is immutable once any
// strategy references it.
type Hazard struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	Code        string          `gorm:"size:100;not null;uniqueIndex" json:"code"`
	Category    HazardCategory  `gorm:"type:varchar(20);not null" json:"category"`
	Name        LocalizedString `gorm:"type:jsonb" json:"name"`
	Description LocalizedString `gorm:"type:jsonb" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (h *Hazard) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return
}

// Strategy is a mitigation plan covering one or more hazards, composed of
// ordered action steps. Hazard lists hold canonical hazard codes only; the
// write path normalizes and validates them against the hazard table.
type Strategy struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	Title            LocalizedString `gorm:"type:jsonb" json:"title"`
	Description      LocalizedString `gorm:"type:jsonb" json:"description"`
	Tier             StrategyTier    `gorm:"type:varchar(20);not null;default:'recommended'" json:"tier"`
	PrimaryHazards   StringList      `gorm:"type:jsonb" json:"primary_hazards"`
	SecondaryHazards StringList      `gorm:"type:jsonb" json:"secondary_hazards"`
	ActionSteps      []ActionStep    `gorm:"foreignKey:StrategyID" json:"action_steps,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (s *Strategy) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// ApplicableHazards returns primary followed by secondary hazard codes.
func (s *Strategy) ApplicableHazards() []string {
	out := make([]string, 0, len(s.PrimaryHazards)+len(s.SecondaryHazards))
	out = append(out, s.PrimaryHazards...)
	out = append(out, s.SecondaryHazards...)
	return out
}

// ActionStep is a single task within a strategy. Position orders steps inside
// the strategy; Timeframe is free text ("2 hours", "1-2 days") parsed by the
// costing package.
type ActionStep struct {
	ID         uuid.UUID            `gorm:"type:uuid;primary_key;" json:"id"`
	StrategyID uuid.UUID            `gorm:"type:uuid;not null;index" json:"strategy_id"`
	Phase      StepPhase            `gorm:"type:varchar(10);not null;default:'before'" json:"phase"`
	Position   int                  `gorm:"not null;default:0" json:"position"`
	Title      LocalizedString      `gorm:"type:jsonb" json:"title"`
	Timeframe  string               `gorm:"size:100" json:"timeframe"`
	CostLines  []ActionStepCostItem `gorm:"foreignKey:ActionStepID" json:"cost_lines,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

func (as *ActionStep) BeforeCreate(tx *gorm.DB) (err error) {
	if as.ID == uuid.Nil {
		as.ID = uuid.New()
	}
	return
}

// CostItem is a priced resource usable by action steps. BaseUSD is the point
// estimate; MinUSD/MaxUSD optionally bound it.
type CostItem struct {
	ID        uuid.UUID           `gorm:"type:uuid;primary_key;" json:"id"`
	Name      LocalizedString     `gorm:"type:jsonb" json:"name"`
	Category  CostCategory        `gorm:"type:varchar(20);not null" json:"category"`
	BaseUSD   decimal.Decimal     `gorm:"type:numeric(14,2);not null" json:"base_usd"`
	MinUSD    decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"min_usd"`
	MaxUSD    decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"max_usd"`
	Unit      string              `gorm:"size:50" json:"unit"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (ci *CostItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return
}

// ActionStepCostItem attaches a cost item to an action step with a quantity.
type ActionStepCostItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	ActionStepID uuid.UUID       `gorm:"type:uuid;not null;index:idx_step_cost_item,unique" json:"action_step_id"`
	CostItemID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_step_cost_item,unique" json:"cost_item_id"`
	Quantity     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:1" json:"quantity"`
	CostItem     CostItem        `gorm:"foreignKey:CostItemID" json:"cost_item,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (l *ActionStepCostItem) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

// CountryMultiplier holds the per-country cost scaling factors and currency
// data. Exactly one record per country code.
type CountryMultiplier struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	CountryCode     string          `gorm:"size:2;not null;uniqueIndex" json:"country_code"`
	CountryName     string          `gorm:"size:100" json:"country_name"`
	CurrencyCode    string          `gorm:"size:3;not null" json:"currency_code"`
	CurrencySymbol  string          `gorm:"size:8;not null" json:"currency_symbol"`
	ExchangeRateUSD decimal.Decimal `gorm:"type:numeric(14,6);not null" json:"exchange_rate_usd"`
	Construction    decimal.Decimal `gorm:"type:numeric(8,4);not null;default:1" json:"construction"`
	Equipment       decimal.Decimal `gorm:"type:numeric(8,4);not null;default:1" json:"equipment"`
	Service         decimal.Decimal `gorm:"type:numeric(8,4);not null;default:1" json:"service"`
	Supplies        decimal.Decimal `gorm:"type:numeric(8,4);not null;default:1" json:"supplies"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (cm *CountryMultiplier) BeforeCreate(tx *gorm.DB) (err error) {
	if cm.ID == uuid.Nil {
		cm.ID = uuid.New()
	}
	return
}

// CategoryMultiplier returns the scaling factor for a cost category.
// Unknown categories scale by 1.
func (cm *CountryMultiplier) CategoryMultiplier(category CostCategory) decimal.Decimal {
	switch category {
	case CostConstruction:
		return cm.Construction
	case CostEquipment:
		return cm.Equipment
	case CostService:
		return cm.Service
	case CostSupplies:
		return cm.Supplies
	default:
		return decimal.NewFromInt(1)
	}
}

// Country is a country served by the wizard, with its administrative units.
type Country struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	Code       string          `gorm:"size:2;not null;uniqueIndex" json:"code"`
	Name       LocalizedString `gorm:"type:jsonb" json:"name"`
	AdminUnits []AdminUnit     `gorm:"foreignKey:CountryID" json:"admin_units,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (c *Country) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// AdminUnit is a parish/province/district inside a country, carrying per-hazard
// risk levels used by the wizard's location step.
type AdminUnit struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	CountryID uuid.UUID       `gorm:"type:uuid;not null;index" json:"country_id"`
	Code      string          `gorm:"size:20" json:"code"`
	Name      LocalizedString `gorm:"type:jsonb" json:"name"`
	Risks     []AdminUnitRisk `gorm:"foreignKey:AdminUnitID" json:"risks,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (au *AdminUnit) BeforeCreate(tx *gorm.DB) (err error) {
	if au.ID == uuid.Nil {
		au.ID = uuid.New()
	}
	return
}

// AdminUnitRisk is the curated risk level of one hazard in one admin unit.
type AdminUnitRisk struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	AdminUnitID uuid.UUID `gorm:"type:uuid;not null;index:idx_unit_hazard,unique" json:"admin_unit_id"`
	HazardCode  string    `gorm:"size:100;not null;index:idx_unit_hazard,unique" json:"hazard_code"`
	Level       RiskLevel `gorm:"type:varchar(10);not null" json:"level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (aur *AdminUnitRisk) BeforeCreate(tx *gorm.DB) (err error) {
	if aur.ID == uuid.Nil {
		aur.ID = uuid.New()
	}
	return
}

// BusinessType classifies the wizard user's business (e.g. restaurant, farm).
type BusinessType struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	Name      LocalizedString `gorm:"type:jsonb" json:"name"`
	Sector    string          `gorm:"size:100" json:"sector"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (bt *BusinessType) BeforeCreate(tx *gorm.DB) (err error) {
	if bt.ID == uuid.Nil {
		bt.ID = uuid.New()
	}
	return
}

// Plan is a persisted wizard session snapshot: the user's selections plus
// denormalized totals computed at save/finalize time.
type Plan struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	BusinessName    string          `gorm:"size:255" json:"business_name"`
	CountryCode     string          `gorm:"size:2;not null" json:"country_code"`
	AdminUnitID     *uuid.UUID      `gorm:"type:uuid" json:"admin_unit_id,omitempty"`
	BusinessTypeID  *uuid.UUID      `gorm:"type:uuid" json:"business_type_id,omitempty"`
	Locale          string          `gorm:"size:8;not null;default:'en'" json:"locale"`
	SelectedHazards StringList      `gorm:"type:jsonb" json:"selected_hazards"`
	StrategyIDs     StringList      `gorm:"type:jsonb" json:"strategy_ids"`
	TotalUSD        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_usd"`
	TotalLocal      decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0" json:"total_local"`
	CurrencyCode    string          `gorm:"size:3;not null;default:'USD'" json:"currency_code"`
	CalculatedHours float64         `gorm:"not null;default:0" json:"calculated_hours"`
	Status          PlanStatus      `gorm:"type:varchar(10);not null;default:'draft'" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (p *Plan) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// AutoMigrateDB automatically migrates the schema.
func AutoMigrateDB(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Hazard{},
		&Strategy{},
		&ActionStep{},
		&CostItem{},
		&ActionStepCostItem{},
		&CountryMultiplier{},
		&Country{},
		&AdminUnit{},
		&AdminUnitRisk{},
		&BusinessType{},
		&Plan{},
	)
	return err
}

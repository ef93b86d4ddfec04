package handlers

import (
	"net/http"
	"strings"

	"atlasbcp/backend/internal/costing"
	"atlasbcp/backend/internal/database"
	"atlasbcp/backend/internal/export"
	"atlasbcp/backend/internal/matching"
	"atlasbcp/backend/internal/models"
	"atlasbcp/backend/internal/notifications"
	"atlasbcp/backend/internal/riskid"
	bcplog "atlasbcp/backend/pkg/log"
	bcpmetrics "atlasbcp/backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecommendationRequest is the wizard's "what should I do" call: the risks the
// user selected plus where they are.
type RecommendationRequest struct {
	Risks   []string `json:"risks" binding:"required,min=1"`
	Country string   `json:"country" binding:"required,len=2"`
	Locale  string   `json:"locale"`
}

// StrategyCard is one rendered recommendation: localized strings plus the
// computed cost/effort summary for the user's country.
type StrategyCard struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Tier        models.StrategyTier  `json:"tier"`
	StepCount   int                  `json:"step_count"`
	Cost        costing.StrategyCost `json:"cost"`
}

// RecommendationResponse groups strategy cards per selected risk. Gaps are
// first-class: a selected risk with no strategies is reported, never dropped.
type RecommendationResponse struct {
	ByRisk    map[string][]StrategyCard `json:"by_risk"`
	Universal []StrategyCard            `json:"universal"`
	Gaps      []string                  `json:"gaps"`
}

// GetRecommendationsHandler matches the user's selected risks against the
// strategy catalog and prices each recommendation for the user's country.
func GetRecommendationsHandler(c *gin.Context) {
	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	locale := req.Locale
	if locale == "" {
		locale = "en"
	}

	db := database.GetDB()
	strategies, err := loadStrategyCatalog(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load strategy catalog: " + err.Error()})
		return
	}

	countryCode := strings.ToUpper(req.Country)
	cm := fetchCountryMultiplier(db, countryCode)

	result := matching.Match(req.Risks, strategies)

	resp := RecommendationResponse{
		ByRisk: make(map[string][]StrategyCard, len(result.ByRisk)),
		Gaps:   []string{},
	}
	for risk, matched := range result.ByRisk {
		for _, s := range matched {
			resp.ByRisk[risk] = append(resp.ByRisk[risk], buildStrategyCard(s, cm, locale))
		}
	}
	for _, s := range result.Universal {
		resp.Universal = append(resp.Universal, buildStrategyCard(s, cm, locale))
	}

	if len(result.Gaps) > 0 {
		resp.Gaps = result.Gaps
		for _, hazard := range result.Gaps {
			bcpmetrics.CoverageGapCounter.WithLabelValues(hazard).Inc()
		}
		bcplog.L.Warn("Coverage gap: selected risks with no matching strategy",
			zap.Strings("hazards", result.Gaps), zap.String("country", countryCode))
		// Fire-and-forget; a slow admin webhook must not delay the wizard.
		go notifications.NotifyCoverageGaps(result.Gaps, countryCode)
	}

	c.JSON(http.StatusOK, resp)
}

func buildStrategyCard(s models.Strategy, cm *models.CountryMultiplier, locale string) StrategyCard {
	return StrategyCard{
		ID:          s.ID,
		Title:       s.Title.Get(locale),
		Description: s.Description.Get(locale),
		Tier:        s.Tier,
		StepCount:   len(s.ActionSteps),
		Cost:        costing.CalculateStrategyCost(s.ActionSteps, cm),
	}
}

// loadStrategyCatalog loads every strategy with ordered steps and cost lines.
func loadStrategyCatalog(db *gorm.DB) ([]models.Strategy, error) {
	var strategies []models.Strategy
	err := db.Preload("ActionSteps", func(db *gorm.DB) *gorm.DB { return db.Order("action_steps.position") }).
		Preload("ActionSteps.CostLines.CostItem").
		Order("created_at").
		Find(&strategies).Error
	return strategies, err
}

// fetchCountryMultiplier returns nil when the country has no record; the
// costing package degrades to USD with factor 1.0 in that case.
func fetchCountryMultiplier(db *gorm.DB, countryCode string) *models.CountryMultiplier {
	var cm models.CountryMultiplier
	if err := db.Where("country_code = ?", countryCode).First(&cm).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			bcplog.L.Error("Failed to fetch country multiplier, degrading to USD",
				zap.String("country", countryCode), zap.Error(err))
		}
		return nil
	}
	return &cm
}

// PlanPayload defines the structure for creating or updating a plan snapshot.
type PlanPayload struct {
	BusinessName    string   `json:"business_name" binding:"max=255"`
	CountryCode     string   `json:"country_code" binding:"required,len=2"`
	AdminUnitID     string   `json:"admin_unit_id"`
	BusinessTypeID  string   `json:"business_type_id"`
	Locale          string   `json:"locale"`
	SelectedHazards []string `json:"selected_hazards"`
	StrategyIDs     []string `json:"strategy_ids"`
}

func (p *PlanPayload) apply(plan *models.Plan) string {
	plan.BusinessName = p.BusinessName
	plan.CountryCode = strings.ToUpper(p.CountryCode)
	plan.Locale = p.Locale
	if plan.Locale == "" {
		plan.Locale = "en"
	}
	plan.SelectedHazards = riskid.NormalizeAll(p.SelectedHazards)

	// Strategy IDs feed uuid-typed queries downstream, so a malformed id is a
	// client error here, not a database error later.
	plan.StrategyIDs = models.StringList{}
	for _, raw := range p.StrategyIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return "Invalid strategy ID format: " + raw
		}
		plan.StrategyIDs = append(plan.StrategyIDs, id.String())
	}

	plan.AdminUnitID = nil
	if p.AdminUnitID != "" {
		id, err := uuid.Parse(p.AdminUnitID)
		if err != nil {
			return "Invalid admin unit ID format"
		}
		plan.AdminUnitID = &id
	}
	plan.BusinessTypeID = nil
	if p.BusinessTypeID != "" {
		id, err := uuid.Parse(p.BusinessTypeID)
		if err != nil {
			return "Invalid business type ID format"
		}
		plan.BusinessTypeID = &id
	}
	return ""
}

// computePlanTotals recomputes the plan's denormalized cost/effort totals from
// its chosen strategies. Pure recomputation over current state: calling it
// twice yields the same totals.
func computePlanTotals(db *gorm.DB, plan *models.Plan) error {
	plan.TotalUSD = decimal.Zero
	plan.TotalLocal = decimal.Zero
	plan.CurrencyCode = "USD"
	plan.CalculatedHours = 0

	if len(plan.StrategyIDs) == 0 {
		return nil
	}

	var strategies []models.Strategy
	err := db.Preload("ActionSteps", func(db *gorm.DB) *gorm.DB { return db.Order("action_steps.position") }).
		Preload("ActionSteps.CostLines.CostItem").
		Where("id IN ?", []string(plan.StrategyIDs)).
		Find(&strategies).Error
	if err != nil {
		return err
	}

	cm := fetchCountryMultiplier(db, plan.CountryCode)
	for _, s := range strategies {
		cost := costing.CalculateStrategyCost(s.ActionSteps, cm)
		plan.TotalUSD = plan.TotalUSD.Add(cost.TotalUSD)
		plan.TotalLocal = plan.TotalLocal.Add(cost.TotalLocal)
		plan.CurrencyCode = cost.CurrencyCode
		plan.CalculatedHours += cost.CalculatedHours
	}
	return nil
}

// CreatePlanHandler persists a draft plan snapshot with computed totals.
func CreatePlanHandler(c *gin.Context) {
	var payload PlanPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	var plan models.Plan
	if msg := payload.apply(&plan); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	plan.Status = models.PlanDraft

	db := database.GetDB()
	if err := computePlanTotals(db, &plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute plan totals: " + err.Error()})
		return
	}

	if err := db.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetPlanHandler fetches a plan snapshot by its ID.
func GetPlanHandler(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID format"})
		return
	}

	db := database.GetDB()
	var plan models.Plan
	if err := db.Where("id = ?", planID).First(&plan).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// UpdatePlanHandler updates a draft plan and recomputes its totals.
// Finalized plans are immutable snapshots.
func UpdatePlanHandler(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID format"})
		return
	}

	var payload PlanPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	db := database.GetDB()
	var plan models.Plan
	if err := db.Where("id = ?", planID).First(&plan).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan for update: " + err.Error()})
		return
	}
	if plan.Status == models.PlanFinal {
		c.JSON(http.StatusConflict, gin.H{"error": "Finalized plans cannot be modified"})
		return
	}

	if msg := payload.apply(&plan); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := computePlanTotals(db, &plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute plan totals: " + err.Error()})
		return
	}

	if err := db.Save(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// FinalizePlanHandler recomputes the totals and marks the plan final, inside a
// single transaction so the snapshot totals always match the status flip.
func FinalizePlanHandler(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID format"})
		return
	}

	db := database.GetDB()
	var plan models.Plan

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", planID).First(&plan).Error; err != nil {
			return err
		}
		if plan.Status == models.PlanFinal {
			return gorm.ErrDuplicatedKey
		}
		if err := computePlanTotals(tx, &plan); err != nil {
			return err
		}
		plan.Status = models.PlanFinal
		return tx.Save(&plan).Error
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, plan)
	case err == gorm.ErrRecordNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
	case err == gorm.ErrDuplicatedKey:
		c.JSON(http.StatusConflict, gin.H{"error": "Plan is already finalized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize plan: " + err.Error()})
	}
}

// DeletePlanHandler deletes a plan snapshot.
func DeletePlanHandler(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID format"})
		return
	}

	db := database.GetDB()
	result := db.Delete(&models.Plan{}, planID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan: " + result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully"})
}

// ExportPlanHandler renders the plan as a self-contained document with the
// full strategy detail, localized for the plan's stored locale.
func ExportPlanHandler(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID format"})
		return
	}

	db := database.GetDB()
	var plan models.Plan
	if err := db.Where("id = ?", planID).First(&plan).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan: " + err.Error()})
		return
	}

	doc, err := export.BuildPlanDocument(db, &plan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build plan document: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, doc)
}

package handlers

import (
	"fmt"
	"net/http"

	"atlasbcp/backend/internal/database"
	"atlasbcp/backend/internal/models"
	"atlasbcp/backend/internal/riskid"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StrategyPayload defines the structure for creating or updating a strategy.
// Hazard lists accept any legacy spelling and are normalized on write, so the
// stored lists only ever hold canonical codes.
type StrategyPayload struct {
	Title            models.LocalizedString `json:"title" binding:"required"`
	Description      models.LocalizedString `json:"description"`
	Tier             models.StrategyTier    `json:"tier" binding:"omitempty,oneof=essential recommended optional"`
	PrimaryHazards   []string               `json:"primary_hazards"`
	SecondaryHazards []string               `json:"secondary_hazards"`
}

// normalizeHazardLists normalizes both lists and verifies every non-sentinel
// code exists in the hazard catalog.
func (p *StrategyPayload) normalizeHazardLists(db *gorm.DB) (primary, secondary []string, err error) {
	primary = riskid.NormalizeAll(p.PrimaryHazards)
	secondary = riskid.NormalizeAll(p.SecondaryHazards)

	for _, code := range append(append([]string{}, primary...), secondary...) {
		if riskid.IsCatchAll(code) {
			continue
		}
		var count int64
		if dbErr := db.Model(&models.Hazard{}).Where("code = ?", code).Count(&count).Error; dbErr != nil {
			return nil, nil, fmt.Errorf("failed to validate hazard code %q: %w", code, dbErr)
		}
		if count == 0 {
			return nil, nil, fmt.Errorf("unknown hazard code %q", code)
		}
	}
	return primary, secondary, nil
}

// CreateStrategyHandler handles the creation of a new strategy.
func CreateStrategyHandler(c *gin.Context) {
	var payload StrategyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	db := database.GetDB()
	primary, secondary, err := payload.normalizeHazardLists(db)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy := models.Strategy{
		Title:            payload.Title,
		Description:      payload.Description,
		Tier:             payload.Tier,
		PrimaryHazards:   primary,
		SecondaryHazards: secondary,
	}
	if strategy.Tier == "" {
		strategy.Tier = models.TierRecommended
	}

	if err := db.Create(&strategy).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create strategy: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, strategy)
}

// ListStrategiesHandler lists strategies, optionally filtered by a hazard code
// (normalized before the containment query), paginated.
func ListStrategiesHandler(c *gin.Context) {
	db := database.GetDB()
	page, pageSize := GetPaginationParams(c)

	query := db.Model(&models.Strategy{})
	if hazard := c.Query("hazard"); hazard != "" {
		literal := jsonArrayLiteral(riskid.Normalize(hazard))
		query = query.Where("primary_hazards @> ? OR secondary_hazards @> ?", literal, literal)
	}
	if tier := c.Query("tier"); tier != "" {
		query = query.Where("tier = ?", tier)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count strategies: " + err.Error()})
		return
	}

	var strategies []models.Strategy
	err := query.Scopes(PaginateScope(page, pageSize)).
		Preload("ActionSteps", func(db *gorm.DB) *gorm.DB { return db.Order("action_steps.position") }).
		Preload("ActionSteps.CostLines.CostItem").
		Order("created_at").
		Find(&strategies).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list strategies: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Items:      strategies,
		TotalItems: totalItems,
		TotalPages: TotalPages(totalItems, pageSize),
		Page:       page,
		PageSize:   pageSize,
	})
}

// GetStrategyHandler fetches a single strategy with its steps and cost lines.
func GetStrategyHandler(c *gin.Context) {
	strategyID, err := uuid.Parse(c.Param("strategyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid strategy ID format"})
		return
	}

	db := database.GetDB()
	var strategy models.Strategy
	err = db.Preload("ActionSteps", func(db *gorm.DB) *gorm.DB { return db.Order("action_steps.position") }).
		Preload("ActionSteps.CostLines.CostItem").
		Where("id = ?", strategyID).
		First(&strategy).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Strategy not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch strategy: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, strategy)
}

// UpdateStrategyHandler updates an existing strategy's metadata and hazard lists.
func UpdateStrategyHandler(c *gin.Context) {
	strategyID, err := uuid.Parse(c.Param("strategyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid strategy ID format"})
		return
	}

	var payload StrategyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	db := database.GetDB()
	var strategy models.Strategy
	if err := db.Where("id = ?", strategyID).First(&strategy).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Strategy not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch strategy for update: " + err.Error()})
		return
	}

	primary, secondary, err := payload.normalizeHazardLists(db)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy.Title = payload.Title
	strategy.Description = payload.Description
	if payload.Tier != "" {
		strategy.Tier = payload.Tier
	}
	strategy.PrimaryHazards = primary
	strategy.SecondaryHazards = secondary

	if err := db.Save(&strategy).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update strategy: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, strategy)
}

// DeleteStrategyHandler deletes a strategy together with its action steps and
// their cost lines, in a single transaction.
func DeleteStrategyHandler(c *gin.Context) {
	strategyID, err := uuid.Parse(c.Param("strategyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid strategy ID format"})
		return
	}

	db := database.GetDB()
	var strategy models.Strategy
	if err := db.Where("id = ?", strategyID).First(&strategy).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Strategy not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch strategy for deletion: " + err.Error()})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var stepIDs []uuid.UUID
		if err := tx.Model(&models.ActionStep{}).Where("strategy_id = ?", strategyID).Pluck("id", &stepIDs).Error; err != nil {
			return err
		}
		if len(stepIDs) > 0 {
			if err := tx.Where("action_step_id IN ?", stepIDs).Delete(&models.ActionStepCostItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("strategy_id = ?", strategyID).Delete(&models.ActionStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Strategy{}, strategyID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete strategy: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Strategy deleted successfully"})
}

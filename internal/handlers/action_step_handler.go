package handlers

import (
	"net/http"

	"atlasbcp/backend/internal/database"
	"atlasbcp/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ActionStepPayload defines the structure for creating or updating an action step.
type ActionStepPayload struct {
	Phase     models.StepPhase       `json:"phase" binding:"required,oneof=before during after"`
	Position  int                    `json:"position" binding:"min=0"`
	Title     models.LocalizedString `json:"title" binding:"required"`
	Timeframe string                 `json:"timeframe" binding:"max=100"`
}

// CostLinePayload attaches a cost item to an action step with a quantity.
type CostLinePayload struct {
	CostItemID string           `json:"cost_item_id" binding:"required"`
	Quantity   *decimal.Decimal `json:"quantity"`
}

func fetchStrategyStep(c *gin.Context, db *gorm.DB) (*models.ActionStep, bool) {
	strategyID, err := uuid.Parse(c.Param("strategyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid strategy ID format"})
		return nil, false
	}
	stepID, err := uuid.Parse(c.Param("stepId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action step ID format"})
		return nil, false
	}

	var step models.ActionStep
	if err := db.Where("id = ? AND strategy_id = ?", stepID, strategyID).First(&step).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Action step not found in this strategy"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch action step: " + err.Error()})
		return nil, false
	}
	return &step, true
}

// CreateActionStepHandler adds an action step to a strategy. When no position
// is supplied, the step is appended after the current last one.
func CreateActionStepHandler(c *gin.Context) {
	strategyID, err := uuid.Parse(c.Param("strategyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid strategy ID format"})
		return
	}

	var payload ActionStepPayload
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch strategy: " + err.Error()})
		return
	}

	position := payload.Position
	if position == 0 {
		var maxPosition int
		row := db.Model(&models.ActionStep{}).Where("strategy_id = ?", strategyID).
			Select("COALESCE(MAX(position), -1)").Row()
		if err := row.Scan(&maxPosition); err == nil {
			position = maxPosition + 1
		}
	}

	step := models.ActionStep{
		StrategyID: strategyID,
		Phase:      payload.Phase,
		Position:   position,
		Title:      payload.Title,
		Timeframe:  payload.Timeframe,
	}

	if err := db.Create(&step).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create action step: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, step)
}

// UpdateActionStepHandler updates an action step's phase, position, title and timeframe.
func UpdateActionStepHandler(c *gin.Context) {
	var payload ActionStepPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	db := database.GetDB()
	step, ok := fetchStrategyStep(c, db)
	if !ok {
		return
	}

	step.Phase = payload.Phase
	step.Position = payload.Position
	step.Title = payload.Title
	step.Timeframe = payload.Timeframe

	if err := db.Save(step).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update action step: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, step)
}

// DeleteActionStepHandler removes an action step and its cost lines in one transaction.
func DeleteActionStepHandler(c *gin.Context) {
	db := database.GetDB()
	step, ok := fetchStrategyStep(c, db)
	if !ok {
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("action_step_id = ?", step.ID).Delete(&models.ActionStepCostItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ActionStep{}, step.ID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete action step: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Action step deleted successfully"})
}

// AttachCostLineHandler attaches a cost item to an action step with a quantity.
// Re-attaching an already attached item updates the quantity.
func AttachCostLineHandler(c *gin.Context) {
	var payload CostLinePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	costItemID, err := uuid.Parse(payload.CostItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cost item ID format"})
		return
	}

	quantity := decimal.NewFromInt(1)
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}
	if quantity.IsNegative() || quantity.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	db := database.GetDB()
	step, ok := fetchStrategyStep(c, db)
	if !ok {
		return
	}

	var costItem models.CostItem
	if err := db.Where("id = ?", costItemID).First(&costItem).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cost item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cost item: " + err.Error()})
		return
	}

	var line models.ActionStepCostItem
	err = db.Where("action_step_id = ? AND cost_item_id = ?", step.ID, costItemID).First(&line).Error
	switch {
	case err == nil:
		line.Quantity = quantity
		if err := db.Save(&line).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cost line: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, line)
	case err == gorm.ErrRecordNotFound:
		line = models.ActionStepCostItem{
			ActionStepID: step.ID,
			CostItemID:   costItemID,
			Quantity:     quantity,
		}
		if err := db.Create(&line).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach cost line: " + err.Error()})
			return
		}
		c.JSON(http.StatusCreated, line)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing cost line: " + err.Error()})
	}
}

// DetachCostLineHandler removes a cost item from an action step.
func DetachCostLineHandler(c *gin.Context) {
	costItemID, err := uuid.Parse(c.Param("costItemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cost item ID format"})
		return
	}

	db := database.GetDB()
	step, ok := fetchStrategyStep(c, db)
	if !ok {
		return
	}

	result := db.Where("action_step_id = ? AND cost_item_id = ?", step.ID, costItemID).Delete(&models.ActionStepCostItem{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach cost line: " + result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cost line not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cost line detached successfully"})
}

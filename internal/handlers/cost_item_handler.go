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

// CostItemPayload defines the structure for creating or updating a cost item.
// Numeric validation happens here, on the admin write path: the aggregator
// downstream assumes non-negative validated inputs.
type CostItemPayload struct {
	Name     models.LocalizedString `json:"name" binding:"required"`
	Category models.CostCategory    `json:"category" binding:"required,oneof=construction equipment service supplies"`
	BaseUSD  decimal.Decimal        `json:"base_usd" binding:"required"`
	MinUSD   *decimal.Decimal       `json:"min_usd"`
	MaxUSD   *decimal.Decimal       `json:"max_usd"`
	Unit     string                 `json:"unit" binding:"max=50"`
}

func (p *CostItemPayload) validateAmounts() string {
	if p.BaseUSD.IsNegative() {
		return "base_usd must not be negative"
	}
	if p.MinUSD != nil && p.MinUSD.IsNegative() {
		return "min_usd must not be negative"
	}
	if p.MaxUSD != nil && p.MaxUSD.IsNegative() {
		return "max_usd must not be negative"
	}
	if p.MinUSD != nil && p.MaxUSD != nil && p.MinUSD.GreaterThan(*p.MaxUSD) {
		return "min_usd must not exceed max_usd"
	}
	return ""
}

func (p *CostItemPayload) apply(item *models.CostItem) {
	item.Name = p.Name
	item.Category = p.Category
	item.BaseUSD = p.BaseUSD
	item.Unit = p.Unit
	item.MinUSD = decimal.NullDecimal{}
	item.MaxUSD = decimal.NullDecimal{}
	if p.MinUSD != nil {
		item.MinUSD = decimal.NewNullDecimal(*p.MinUSD)
	}
	if p.MaxUSD != nil {
		item.MaxUSD = decimal.NewNullDecimal(*p.MaxUSD)
	}
}

// CreateCostItemHandler handles the creation of a new cost item.
func CreateCostItemHandler(c *gin.Context) {
	var payload CostItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if msg := payload.validateAmounts(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var item models.CostItem
	payload.apply(&item)

	db := database.GetDB()
	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cost item: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListCostItemsHandler lists cost items, optionally filtered by category, paginated.
func ListCostItemsHandler(c *gin.Context) {
	db := database.GetDB()
	page, pageSize := GetPaginationParams(c)

	query := db.Model(&models.CostItem{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count cost items: " + err.Error()})
		return
	}

	var items []models.CostItem
	if err := query.Scopes(PaginateScope(page, pageSize)).Order("created_at").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cost items: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Items:      items,
		TotalItems: totalItems,
		TotalPages: TotalPages(totalItems, pageSize),
		Page:       page,
		PageSize:   pageSize,
	})
}

// GetCostItemHandler fetches a single cost item by its ID.
func GetCostItemHandler(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("costItemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cost item ID format"})
		return
	}

	db := database.GetDB()
	var item models.CostItem
	if err := db.Where("id = ?", itemID).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cost item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cost item: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateCostItemHandler updates an existing cost item.
func UpdateCostItemHandler(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("costItemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cost item ID format"})
		return
	}

	var payload CostItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if msg := payload.validateAmounts(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	db := database.GetDB()
	var item models.CostItem
	if err := db.Where("id = ?", itemID).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cost item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cost item for update: " + err.Error()})
		return
	}

	payload.apply(&item)

	if err := db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cost item: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteCostItemHandler deletes a cost item not attached to any action step.
func DeleteCostItemHandler(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("costItemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cost item ID format"})
		return
	}

	db := database.GetDB()
	var attached int64
	if err := db.Model(&models.ActionStepCostItem{}).Where("cost_item_id = ?", itemID).Count(&attached).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check cost item attachments: " + err.Error()})
		return
	}
	if attached > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cost item is attached to action steps and cannot be deleted"})
		return
	}

	result := db.Delete(&models.CostItem{}, itemID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cost item: " + result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cost item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cost item deleted successfully"})
}

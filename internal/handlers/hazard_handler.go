package handlers

import (
	"net/http"

	"atlasbcp/backend/internal/database"
	"atlasbcp/backend/internal/models"
	"atlasbcp/backend/internal/riskid"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HazardPayload defines the structure for creating or updating a hazard.
// Code may arrive in any legacy spelling; the handler normalizes it.
type HazardPayload struct {
	Code        string                 `json:"code" binding:"required,min=2,max=100"`
	Category    models.HazardCategory  `json:"category" binding:"required,oneof=natural technological human economic"`
	Name        models.LocalizedString `json:"name" binding:"required"`
	Description models.LocalizedString `json:"description"`
}

// CreateHazardHandler handles the creation of a new hazard catalog entry.
func CreateHazardHandler(c *gin.Context) {
	var payload HazardPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	code := riskid.Normalize(payload.Code)
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hazard code normalizes to an empty identifier"})
		return
	}
	if riskid.IsCatchAll(code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The catch-all sentinel cannot be a catalog hazard"})
		return
	}

	db := database.GetDB()
	hazard := models.Hazard{
		Code:        code,
		Category:    payload.Category,
		Name:        payload.Name,
		Description: payload.Description,
	}

	var existing models.Hazard
	if err := db.Where("code = ?", code).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A hazard with this canonical code already exists: " + code})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check for existing hazard: " + err.Error()})
		return
	}

	if err := db.Create(&hazard).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create hazard: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, hazard)
}

// ListHazardsHandler lists the hazard catalog, optionally filtered by category.
func ListHazardsHandler(c *gin.Context) {
	db := database.GetDB()
	query := db.Model(&models.Hazard{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var hazards []models.Hazard
	if err := query.Order("code").Find(&hazards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list hazards: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, hazards)
}

// GetHazardHandler fetches a single hazard by its ID.
func GetHazardHandler(c *gin.Context) {
	hazardID, err := uuid.Parse(c.Param("hazardId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hazard ID format"})
		return
	}

	db := database.GetDB()
	var hazard models.Hazard
	if err := db.Where("id = ?", hazardID).First(&hazard).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hazard not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hazard: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, hazard)
}

// UpdateHazardHandler updates an existing hazard. The canonical code is
// immutable once any strategy references it.
func UpdateHazardHandler(c *gin.Context) {
	hazardID, err := uuid.Parse(c.Param("hazardId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hazard ID format"})
		return
	}

	var payload HazardPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	db := database.GetDB()
	var hazard models.Hazard
	if err := db.Where("id = ?", hazardID).First(&hazard).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hazard not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hazard for update: " + err.Error()})
		return
	}

	newCode := riskid.Normalize(payload.Code)
	if newCode != hazard.Code {
		referencing, err := countStrategiesReferencingHazard(db, hazard.Code)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check strategy references: " + err.Error()})
			return
		}
		if referencing > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Hazard code is referenced by strategies and cannot be changed"})
			return
		}
		hazard.Code = newCode
	}

	hazard.Category = payload.Category
	hazard.Name = payload.Name
	hazard.Description = payload.Description

	if err := db.Save(&hazard).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update hazard: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, hazard)
}

// DeleteHazardHandler deletes a hazard that no strategy references.
func DeleteHazardHandler(c *gin.Context) {
	hazardID, err := uuid.Parse(c.Param("hazardId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hazard ID format"})
		return
	}

	db := database.GetDB()
	var hazard models.Hazard
	if err := db.Where("id = ?", hazardID).First(&hazard).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hazard not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hazard for deletion: " + err.Error()})
		return
	}

	referencing, err := countStrategiesReferencingHazard(db, hazard.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check strategy references: " + err.Error()})
		return
	}
	if referencing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Hazard is referenced by strategies and cannot be deleted"})
		return
	}

	if err := db.Delete(&models.Hazard{}, hazardID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete hazard: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hazard deleted successfully"})
}

func countStrategiesReferencingHazard(db *gorm.DB, code string) (int64, error) {
	var count int64
	literal := jsonArrayLiteral(code)
	err := db.Model(&models.Strategy{}).
		Where("primary_hazards @> ? OR secondary_hazards @> ?", literal, literal).
		Count(&count).Error
	return count, err
}

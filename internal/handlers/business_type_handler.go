package handlers

import (
	"net/http"

	"atlasbcp/backend/internal/database"
	"atlasbcp/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessTypePayload defines the structure for creating or updating a business type.
type BusinessTypePayload struct {
	Name   models.LocalizedString `json:"name" binding:"required"`
	Sector string                 `json:"sector" binding:"max=100"`
}

// CreateBusinessTypeHandler creates a business type.
func CreateBusinessTypeHandler(c *gin.Context) {
	var payload BusinessTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	bt := models.BusinessType{Name: payload.Name, Sector: payload.Sector}

	db := database.GetDB()
	if err := db.Create(&bt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create business type: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, bt)
}

// ListBusinessTypesHandler lists all business types.
func ListBusinessTypesHandler(c *gin.Context) {
	db := database.GetDB()
	var types []models.BusinessType
	if err := db.Order("sector, created_at").Find(&types).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list business types: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, types)
}

// UpdateBusinessTypeHandler updates a business type.
func UpdateBusinessTypeHandler(c *gin.Context) {
	typeID, err := uuid.Parse(c.Param("typeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business type ID format"})
		return
	}

	var payload BusinessTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	db := database.GetDB()
	var bt models.BusinessType
	if err := db.Where("id = ?", typeID).First(&bt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch business type for update: " + err.Error()})
		return
	}

	bt.Name = payload.Name
	bt.Sector = payload.Sector

	if err := db.Save(&bt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update business type: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, bt)
}

// DeleteBusinessTypeHandler deletes a business type.
func DeleteBusinessTypeHandler(c *gin.Context) {
	typeID, err := uuid.Parse(c.Param("typeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business type ID format"})
		return
	}

	db := database.GetDB()
	result := db.Delete(&models.BusinessType{}, typeID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete business type: " + result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business type not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Business type deleted successfully"})
}

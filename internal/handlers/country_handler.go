package handlers

import (
	"net/http"
	"strings"

	"atlasbcp/backend/internal/database"
	"atlasbcp/backend/internal/models"
	"atlasbcp/backend/internal/riskid"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CountryPayload defines the structure for creating or updating a country.
type CountryPayload struct {
	Code string                 `json:"code" binding:"required,len=2"`
	Name models.LocalizedString `json:"name" binding:"required"`
}

// AdminUnitPayload defines the structure for creating or updating an
// administrative unit (parish/province/district).
type AdminUnitPayload struct {
	Code string                 `json:"code" binding:"max=20"`
	Name models.LocalizedString `json:"name" binding:"required"`
}

// AdminUnitRiskPayload sets the curated risk level of one hazard in a unit.
type AdminUnitRiskPayload struct {
	HazardCode string           `json:"hazard_code" binding:"required"`
	Level      models.RiskLevel `json:"level" binding:"required,oneof=low medium high extreme"`
}

// CreateCountryHandler creates a country.
func CreateCountryHandler(c *gin.Context) {
	var payload CountryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	db := database.GetDB()
	country := models.Country{
		Code: strings.ToUpper(payload.Code),
		Name: payload.Name,
	}

	if err := db.Create(&country).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create country: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, country)
}

// ListCountriesHandler lists countries with their admin units.
func ListCountriesHandler(c *gin.Context) {
	db := database.GetDB()
	var countries []models.Country
	if err := db.Preload("AdminUnits").Order("code").Find(&countries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list countries: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, countries)
}

// GetCountryHandler fetches one country with units and their risk levels.
func GetCountryHandler(c *gin.Context) {
	countryID, err := uuid.Parse(c.Param("countryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid country ID format"})
		return
	}

	db := database.GetDB()
	var country models.Country
	if err := db.Preload("AdminUnits.Risks").Where("id = ?", countryID).First(&country).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch country: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, country)
}

// UpdateCountryHandler updates a country's code and name.
func UpdateCountryHandler(c *gin.Context) {
	countryID, err := uuid.Parse(c.Param("countryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid country ID format"})
		return
	}

	var payload CountryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	db := database.GetDB()
	var country models.Country
	if err := db.Where("id = ?", countryID).First(&country).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch country for update: " + err.Error()})
		return
	}

	country.Code = strings.ToUpper(payload.Code)
	country.Name = payload.Name

	if err := db.Save(&country).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update country: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, country)
}

// DeleteCountryHandler deletes a country with its units and risk rows in one transaction.
func DeleteCountryHandler(c *gin.Context) {
	countryID, err := uuid.Parse(c.Param("countryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid country ID format"})
		return
	}

	db := database.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		var unitIDs []uuid.UUID
		if err := tx.Model(&models.AdminUnit{}).Where("country_id = ?", countryID).Pluck("id", &unitIDs).Error; err != nil {
			return err
		}
		if len(unitIDs) > 0 {
			if err := tx.Where("admin_unit_id IN ?", unitIDs).Delete(&models.AdminUnitRisk{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("country_id = ?", countryID).Delete(&models.AdminUnit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Country{}, countryID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete country: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Country deleted successfully"})
}

// CreateAdminUnitHandler adds an administrative unit to a country.
func CreateAdminUnitHandler(c *gin.Context) {
	countryID, err := uuid.Parse(c.Param("countryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid country ID format"})
		return
	}

	var payload AdminUnitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	db := database.GetDB()
	var country models.Country
	if err := db.Where("id = ?", countryID).First(&country).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch country: " + err.Error()})
		return
	}

	unit := models.AdminUnit{
		CountryID: countryID,
		Code:      payload.Code,
		Name:      payload.Name,
	}
	if err := db.Create(&unit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin unit: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, unit)
}

// SetAdminUnitRiskHandler sets or updates the risk level of a hazard in a unit.
// The hazard code is normalized before storage.
func SetAdminUnitRiskHandler(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("unitId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admin unit ID format"})
		return
	}

	var payload AdminUnitRiskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	hazardCode := riskid.Normalize(payload.HazardCode)
	if hazardCode == "" || riskid.IsCatchAll(hazardCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hazard code"})
		return
	}

	db := database.GetDB()
	var unit models.AdminUnit
	if err := db.Where("id = ?", unitID).First(&unit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin unit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admin unit: " + err.Error()})
		return
	}

	var risk models.AdminUnitRisk
	err = db.Where("admin_unit_id = ? AND hazard_code = ?", unitID, hazardCode).First(&risk).Error
	switch {
	case err == nil:
		risk.Level = payload.Level
		if err := db.Save(&risk).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update admin unit risk: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, risk)
	case err == gorm.ErrRecordNotFound:
		risk = models.AdminUnitRisk{
			AdminUnitID: unitID,
			HazardCode:  hazardCode,
			Level:       payload.Level,
		}
		if err := db.Create(&risk).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin unit risk: " + err.Error()})
			return
		}
		c.JSON(http.StatusCreated, risk)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing admin unit risk: " + err.Error()})
	}
}

// DeleteAdminUnitHandler removes a unit and its risk rows in one transaction.
func DeleteAdminUnitHandler(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("unitId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admin unit ID format"})
		return
	}

	db := database.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("admin_unit_id = ?", unitID).Delete(&models.AdminUnitRisk{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.AdminUnit{}, unitID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete admin unit: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin unit deleted successfully"})
}

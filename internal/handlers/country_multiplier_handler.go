package handlers

import (
	"net/http"
	"strings"

	"atlasbcp/backend/internal/database"
	"atlasbcp/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CountryMultiplierPayload defines the structure for creating or updating a
// country multiplier record. All factors and the exchange rate must be positive;
// that is enforced here so the aggregator never sees invalid numbers.
type CountryMultiplierPayload struct {
	CountryCode     string          `json:"country_code" binding:"required,len=2"`
	CountryName     string          `json:"country_name" binding:"max=100"`
	CurrencyCode    string          `json:"currency_code" binding:"required,len=3"`
	CurrencySymbol  string          `json:"currency_symbol" binding:"required,max=8"`
	ExchangeRateUSD decimal.Decimal `json:"exchange_rate_usd" binding:"required"`
	Construction    decimal.Decimal `json:"construction" binding:"required"`
	Equipment       decimal.Decimal `json:"equipment" binding:"required"`
	Service         decimal.Decimal `json:"service" binding:"required"`
	Supplies        decimal.Decimal `json:"supplies" binding:"required"`
}

func (p *CountryMultiplierPayload) validateFactors() string {
	factors := map[string]decimal.Decimal{
		"exchange_rate_usd": p.ExchangeRateUSD,
		"construction":      p.Construction,
		"equipment":         p.Equipment,
		"service":           p.Service,
		"supplies":          p.Supplies,
	}
	for name, f := range factors {
		if !f.IsPositive() {
			return name + " must be positive"
		}
	}
	return ""
}

func (p *CountryMultiplierPayload) apply(cm *models.CountryMultiplier) {
	cm.CountryCode = strings.ToUpper(p.CountryCode)
	cm.CountryName = p.CountryName
	cm.CurrencyCode = strings.ToUpper(p.CurrencyCode)
	cm.CurrencySymbol = p.CurrencySymbol
	cm.ExchangeRateUSD = p.ExchangeRateUSD
	cm.Construction = p.Construction
	cm.Equipment = p.Equipment
	cm.Service = p.Service
	cm.Supplies = p.Supplies
}

// CreateCountryMultiplierHandler creates the multiplier record for a country.
// Exactly one record may exist per country code.
func CreateCountryMultiplierHandler(c *gin.Context) {
	var payload CountryMultiplierPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if msg := payload.validateFactors(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	db := database.GetDB()
	code := strings.ToUpper(payload.CountryCode)

	var existing models.CountryMultiplier
	if err := db.Where("country_code = ?", code).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A multiplier record already exists for country " + code})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check for existing multiplier: " + err.Error()})
		return
	}

	var cm models.CountryMultiplier
	payload.apply(&cm)

	if err := db.Create(&cm).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create country multiplier: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cm)
}

// ListCountryMultipliersHandler lists all multiplier records.
func ListCountryMultipliersHandler(c *gin.Context) {
	db := database.GetDB()
	var multipliers []models.CountryMultiplier
	if err := db.Order("country_code").Find(&multipliers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list country multipliers: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, multipliers)
}

// GetCountryMultiplierHandler fetches the multiplier record for a country code.
func GetCountryMultiplierHandler(c *gin.Context) {
	code := strings.ToUpper(c.Param("countryCode"))

	db := database.GetDB()
	var cm models.CountryMultiplier
	if err := db.Where("country_code = ?", code).First(&cm).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "No multiplier record for country " + code})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch country multiplier: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, cm)
}

// UpdateCountryMultiplierHandler updates the multiplier record for a country code.
func UpdateCountryMultiplierHandler(c *gin.Context) {
	code := strings.ToUpper(c.Param("countryCode"))

	var payload CountryMultiplierPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if msg := payload.validateFactors(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if strings.ToUpper(payload.CountryCode) != code {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Country code in payload does not match path"})
		return
	}

	db := database.GetDB()
	var cm models.CountryMultiplier
	if err := db.Where("country_code = ?", code).First(&cm).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "No multiplier record for country " + code})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch country multiplier for update: " + err.Error()})
		return
	}

	payload.apply(&cm)

	if err := db.Save(&cm).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update country multiplier: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, cm)
}

// DeleteCountryMultiplierHandler deletes the multiplier record for a country code.
// Cost displays for that country degrade to USD with factor 1.0 afterwards.
func DeleteCountryMultiplierHandler(c *gin.Context) {
	code := strings.ToUpper(c.Param("countryCode"))

	db := database.GetDB()
	result := db.Where("country_code = ?", code).Delete(&models.CountryMultiplier{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete country multiplier: " + result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No multiplier record for country " + code})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Country multiplier deleted successfully"})
}

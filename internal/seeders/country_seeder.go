package seeders

import (
	"log"

	"atlasbcp/backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedCountryData populates the starter countries, their cost multipliers and
// the Jamaican parishes with curated risk levels.
func SeedCountryData(db *gorm.DB) error {
	log.Println("Seeding countries and cost multipliers...")

	countries := []models.Country{
		{Code: "JM", Name: models.LocalizedString{"en": "Jamaica"}},
		{Code: "TT", Name: models.LocalizedString{"en": "Trinidad and Tobago"}},
		{Code: "BB", Name: models.LocalizedString{"en": "Barbados"}},
		{Code: "DO", Name: models.LocalizedString{"en": "Dominican Republic", "es": "República Dominicana"}},
	}

	countryMap := make(map[string]models.Country)
	for _, country := range countries {
		result := db.Where(models.Country{Code: country.Code}).FirstOrCreate(&country)
		if result.Error != nil {
			log.Printf("Error seeding country '%s': %v", country.Code, result.Error)
			return result.Error
		}
		countryMap[country.Code] = country
	}

	multipliers := []models.CountryMultiplier{
		{CountryCode: "JM", CountryName: "Jamaica", CurrencyCode: "JMD", CurrencySymbol: "J$",
			ExchangeRateUSD: decimal.NewFromFloat(155.50),
			Construction:    decimal.NewFromFloat(1.5), Equipment: decimal.NewFromFloat(1.2),
			Service: decimal.NewFromFloat(0.8), Supplies: decimal.NewFromFloat(1.1)},
		{CountryCode: "TT", CountryName: "Trinidad and Tobago", CurrencyCode: "TTD", CurrencySymbol: "TT$",
			ExchangeRateUSD: decimal.NewFromFloat(6.78),
			Construction:    decimal.NewFromFloat(1.3), Equipment: decimal.NewFromFloat(1.15),
			Service: decimal.NewFromFloat(0.9), Supplies: decimal.NewFromFloat(1.05)},
		{CountryCode: "BB", CountryName: "Barbados", CurrencyCode: "BBD", CurrencySymbol: "Bds$",
			ExchangeRateUSD: decimal.NewFromFloat(2.0),
			Construction:    decimal.NewFromFloat(1.6), Equipment: decimal.NewFromFloat(1.25),
			Service: decimal.NewFromFloat(1.0), Supplies: decimal.NewFromFloat(1.15)},
		{CountryCode: "DO", CountryName: "Dominican Republic", CurrencyCode: "DOP", CurrencySymbol: "RD$",
			ExchangeRateUSD: decimal.NewFromFloat(59.40),
			Construction:    decimal.NewFromFloat(1.1), Equipment: decimal.NewFromFloat(1.1),
			Service: decimal.NewFromFloat(0.7), Supplies: decimal.NewFromFloat(0.95)},
	}

	for _, cm := range multipliers {
		result := db.Where(models.CountryMultiplier{CountryCode: cm.CountryCode}).FirstOrCreate(&cm)
		if result.Error != nil {
			log.Printf("Error seeding country multiplier '%s': %v", cm.CountryCode, result.Error)
			return result.Error
		}
	}

	if jm, ok := countryMap["JM"]; ok {
		if err := seedJamaicanParishes(db, jm.ID); err != nil {
			return err
		}
	}

	log.Println("Countries and cost multipliers seeded.")
	return nil
}

func seedJamaicanParishes(db *gorm.DB, countryID uuid.UUID) error {
	parishes := []struct {
		code  string
		name  string
		risks map[string]models.RiskLevel
	}{
		{"KGN", "Kingston", map[string]models.RiskLevel{
			"hurricane": models.RiskLevelHigh, "earthquake": models.RiskLevelHigh,
			"flood": models.RiskLevelMedium, "crime": models.RiskLevelHigh}},
		{"STA", "Saint Andrew", map[string]models.RiskLevel{
			"hurricane": models.RiskLevelHigh, "landslide": models.RiskLevelMedium,
			"flood": models.RiskLevelMedium}},
		{"POR", "Portland", map[string]models.RiskLevel{
			"hurricane": models.RiskLevelExtreme, "flood": models.RiskLevelHigh,
			"landslide": models.RiskLevelHigh}},
		{"STE", "Saint Elizabeth", map[string]models.RiskLevel{
			"drought": models.RiskLevelHigh, "hurricane": models.RiskLevelMedium}},
		{"CLA", "Clarendon", map[string]models.RiskLevel{
			"flood": models.RiskLevelHigh, "drought": models.RiskLevelMedium,
			"hurricane": models.RiskLevelMedium}},
	}

	for _, p := range parishes {
		unit := models.AdminUnit{
			CountryID: countryID,
			Code:      p.code,
			Name:      models.LocalizedString{"en": p.name},
		}
		result := db.Where(models.AdminUnit{CountryID: countryID, Code: p.code}).FirstOrCreate(&unit)
		if result.Error != nil {
			log.Printf("Error seeding parish '%s': %v", p.code, result.Error)
			return result.Error
		}

		for hazardCode, level := range p.risks {
			risk := models.AdminUnitRisk{AdminUnitID: unit.ID, HazardCode: hazardCode, Level: level}
			result := db.Where(models.AdminUnitRisk{AdminUnitID: unit.ID, HazardCode: hazardCode}).
				Attrs(models.AdminUnitRisk{Level: level}).
				FirstOrCreate(&risk)
			if result.Error != nil {
				log.Printf("Error seeding risk '%s' for parish '%s': %v", hazardCode, p.code, result.Error)
				return result.Error
			}
		}
	}
	return nil
}

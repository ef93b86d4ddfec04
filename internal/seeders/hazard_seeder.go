package seeders

import (
	"log"

	"atlasbcp/backend/internal/models"

	"gorm.io/gorm"
)

// SeedHazardCatalog populates the curated hazard catalog. Codes here are the
// source of truth the normalizer's canonical list mirrors.
func SeedHazardCatalog(db *gorm.DB) error {
	log.Println("Seeding hazard catalog...")

	hazards := []models.Hazard{
		{Code: "hurricane", Category: models.HazardNatural,
			Name: models.LocalizedString{"en": "Hurricane", "es": "Huracán"}},
		{Code: "flood", Category: models.HazardNatural,
			Name: models.LocalizedString{"en": "Flood", "es": "Inundación"}},
		{Code: "earthquake", Category: models.HazardNatural,
			Name: models.LocalizedString{"en": "Earthquake", "es": "Terremoto"}},
		{Code: "drought", Category: models.HazardNatural,
			Name: models.LocalizedString{"en": "Drought", "es": "Sequía"}},
		{Code: "fire", Category: models.HazardNatural,
			Name: models.LocalizedString{"en": "Fire", "es": "Incendio"}},
		{Code: "landslide", Category: models.HazardNatural,
			Name: models.LocalizedString{"en": "Landslide", "es": "Deslizamiento de tierra"}},
		{Code: "storm_surge", Category: models.HazardNatural,
			Name: models.LocalizedString{"en": "Storm surge", "es": "Marejada ciclónica"}},
		{Code: "power_outage", Category: models.HazardTechnological,
			Name: models.LocalizedString{"en": "Power outage", "es": "Corte de energía"}},
		{Code: "water_outage", Category: models.HazardTechnological,
			Name: models.LocalizedString{"en": "Water outage", "es": "Corte de agua"}},
		{Code: "cyber_attack", Category: models.HazardTechnological,
			Name: models.LocalizedString{"en": "Cyber attack", "es": "Ciberataque"}},
		{Code: "equipment_failure", Category: models.HazardTechnological,
			Name: models.LocalizedString{"en": "Equipment failure", "es": "Falla de equipo"}},
		{Code: "supply_disruption", Category: models.HazardTechnological,
			Name: models.LocalizedString{"en": "Supply disruption", "es": "Interrupción de suministro"}},
		{Code: "pandemic", Category: models.HazardHuman,
			Name: models.LocalizedString{"en": "Pandemic", "es": "Pandemia"}},
		{Code: "civil_unrest", Category: models.HazardHuman,
			Name: models.LocalizedString{"en": "Civil unrest", "es": "Disturbios civiles"}},
		{Code: "crime", Category: models.HazardHuman,
			Name: models.LocalizedString{"en": "Crime", "es": "Delincuencia"}},
		{Code: "staff_unavailability", Category: models.HazardHuman,
			Name: models.LocalizedString{"en": "Staff unavailability", "es": "Falta de personal"}},
		{Code: "economic_downturn", Category: models.HazardEconomic,
			Name: models.LocalizedString{"en": "Economic downturn", "es": "Recesión económica"}},
		{Code: "currency_devaluation", Category: models.HazardEconomic,
			Name: models.LocalizedString{"en": "Currency devaluation", "es": "Devaluación de la moneda"}},
	}

	for _, hazard := range hazards {
		result := db.Where(models.Hazard{Code: hazard.Code}).FirstOrCreate(&hazard)
		if result.Error != nil {
			log.Printf("Error seeding hazard '%s': %v", hazard.Code, result.Error)
			return result.Error
		}
	}
	log.Println("Hazard catalog seeded.")
	return nil
}

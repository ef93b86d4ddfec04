package seeders

import (
	"log"

	"atlasbcp/backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedBusinessTypes populates the business type picklist used by the wizard.
func SeedBusinessTypes(db *gorm.DB) error {
	log.Println("Seeding business types...")

	types := []models.BusinessType{
		{Sector: "hospitality", Name: models.LocalizedString{"en": "Restaurant or bar", "es": "Restaurante o bar"}},
		{Sector: "hospitality", Name: models.LocalizedString{"en": "Guest house or hotel", "es": "Casa de huéspedes u hotel"}},
		{Sector: "retail", Name: models.LocalizedString{"en": "Shop or grocery", "es": "Tienda o colmado"}},
		{Sector: "agriculture", Name: models.LocalizedString{"en": "Farm or fishery", "es": "Finca o pesquería"}},
		{Sector: "services", Name: models.LocalizedString{"en": "Salon or barbershop", "es": "Salón o barbería"}},
		{Sector: "services", Name: models.LocalizedString{"en": "Transport operator", "es": "Operador de transporte"}},
		{Sector: "manufacturing", Name: models.LocalizedString{"en": "Small manufacturer", "es": "Pequeño fabricante"}},
	}

	for _, bt := range types {
		result := db.Where("sector = ? AND name->>'en' = ?", bt.Sector, bt.Name["en"]).FirstOrCreate(&bt)
		if result.Error != nil {
			log.Printf("Error seeding business type '%s': %v", bt.Name["en"], result.Error)
			return result.Error
		}
	}
	log.Println("Business types seeded.")
	return nil
}

// SeedStarterStrategies populates a small starter set of strategies with
// itemized, costed action steps so a fresh install produces useful
// recommendations immediately.
func SeedStarterStrategies(db *gorm.DB) error {
	log.Println("Seeding starter strategies...")

	var count int64
	if err := db.Model(&models.Strategy{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Strategies already present, skipping starter set.")
		return nil
	}

	items := map[string]models.CostItem{
		"plywood_sheet": {
			Name:     models.LocalizedString{"en": "Plywood sheet (4x8 ft)", "es": "Lámina de contrachapado (4x8 pies)"},
			Category: models.CostConstruction,
			BaseUSD:  decimal.NewFromFloat(35),
			MinUSD:   decimal.NewNullDecimal(decimal.NewFromFloat(25)),
			MaxUSD:   decimal.NewNullDecimal(decimal.NewFromFloat(50)),
			Unit:     "sheet",
		},
		"portable_generator": {
			Name:     models.LocalizedString{"en": "Portable generator (3kW)", "es": "Generador portátil (3kW)"},
			Category: models.CostEquipment,
			BaseUSD:  decimal.NewFromFloat(600),
			Unit:     "unit",
		},
		"water_tank": {
			Name:     models.LocalizedString{"en": "Water storage tank (400 gal)", "es": "Tanque de agua (400 gal)"},
			Category: models.CostEquipment,
			BaseUSD:  decimal.NewFromFloat(350),
			Unit:     "tank",
		},
		"cloud_backup": {
			Name:     models.LocalizedString{"en": "Cloud backup subscription", "es": "Suscripción de respaldo en la nube"},
			Category: models.CostService,
			BaseUSD:  decimal.NewFromFloat(10),
			Unit:     "month",
		},
		"first_aid_kit": {
			Name:     models.LocalizedString{"en": "First aid kit", "es": "Botiquín de primeros auxilios"},
			Category: models.CostSupplies,
			BaseUSD:  decimal.NewFromFloat(40),
			Unit:     "kit",
		},
	}
	for key, item := range items {
		result := db.Where("name->>'en' = ?", item.Name["en"]).FirstOrCreate(&item)
		if result.Error != nil {
			log.Printf("Error seeding cost item '%s': %v", key, result.Error)
			return result.Error
		}
		items[key] = item
	}

	type stepSpec struct {
		phase     models.StepPhase
		title     models.LocalizedString
		timeframe string
		lines     map[string]float64
	}
	strategies := []struct {
		title     models.LocalizedString
		desc      models.LocalizedString
		tier      models.StrategyTier
		primary   models.StringList
		secondary models.StringList
		steps     []stepSpec
	}{
		{
			title:     models.LocalizedString{"en": "Protect your building before a storm", "es": "Proteja su edificio antes de una tormenta"},
			desc:      models.LocalizedString{"en": "Board up openings and secure loose items before hurricane season peaks."},
			tier:      models.TierEssential,
			primary:   models.StringList{"hurricane", "storm_surge"},
			secondary: models.StringList{"flood"},
			steps: []stepSpec{
				{models.PhaseBefore, models.LocalizedString{"en": "Measure and cut plywood for windows and doors"}, "1-2 days", map[string]float64{"plywood_sheet": 8}},
				{models.PhaseBefore, models.LocalizedString{"en": "Secure or store loose outdoor items"}, "4 hours", nil},
				{models.PhaseAfter, models.LocalizedString{"en": "Inspect the building and document damage"}, "1 day", nil},
			},
		},
		{
			title:     models.LocalizedString{"en": "Keep the power on", "es": "Mantenga la energía"},
			desc:      models.LocalizedString{"en": "A small generator and a fuel plan keep refrigeration and lights running through outages."},
			tier:      models.TierRecommended,
			primary:   models.StringList{"power_outage"},
			secondary: models.StringList{"hurricane"},
			steps: []stepSpec{
				{models.PhaseBefore, models.LocalizedString{"en": "Buy and install a portable generator"}, "1 week", map[string]float64{"portable_generator": 1}},
				{models.PhaseDuring, models.LocalizedString{"en": "Run essential equipment only, on a fuel schedule"}, "", nil},
			},
		},
		{
			title:   models.LocalizedString{"en": "Store emergency water", "es": "Almacene agua de emergencia"},
			desc:    models.LocalizedString{"en": "On-site water storage covers drinking and sanitation through supply interruptions."},
			tier:    models.TierRecommended,
			primary: models.StringList{"water_outage", "drought"},
			steps: []stepSpec{
				{models.PhaseBefore, models.LocalizedString{"en": "Install a water storage tank"}, "2-3 days", map[string]float64{"water_tank": 1}},
			},
		},
		{
			title:   models.LocalizedString{"en": "Back up your business records", "es": "Respalde sus registros comerciales"},
			desc:    models.LocalizedString{"en": "Off-site copies of records, contacts and licences survive any local disaster."},
			tier:    models.TierEssential,
			primary: models.StringList{},
			steps: []stepSpec{
				{models.PhaseBefore, models.LocalizedString{"en": "Set up an automatic cloud backup"}, "2 hours", map[string]float64{"cloud_backup": 12}},
				{models.PhaseBefore, models.LocalizedString{"en": "Photograph inventory and equipment for insurance"}, "half day", nil},
			},
		},
		{
			title:   models.LocalizedString{"en": "Prepare a staff emergency plan", "es": "Prepare un plan de emergencia para el personal"},
			desc:    models.LocalizedString{"en": "A contact tree, meeting point and first aid supplies keep people safe and reachable."},
			tier:    models.TierEssential,
			primary: models.StringList{},
			steps: []stepSpec{
				{models.PhaseBefore, models.LocalizedString{"en": "Write the contact tree and pick a meeting point"}, "2 hours", nil},
				{models.PhaseBefore, models.LocalizedString{"en": "Stock first aid supplies"}, "1 hour", map[string]float64{"first_aid_kit": 2}},
			},
		},
	}

	for _, def := range strategies {
		err := db.Transaction(func(tx *gorm.DB) error {
			strategy := models.Strategy{
				Title:            def.title,
				Description:      def.desc,
				Tier:             def.tier,
				PrimaryHazards:   def.primary,
				SecondaryHazards: def.secondary,
			}
			if err := tx.Create(&strategy).Error; err != nil {
				return err
			}
			for i, st := range def.steps {
				step := models.ActionStep{
					StrategyID: strategy.ID,
					Phase:      st.phase,
					Position:   i + 1,
					Title:      st.title,
					Timeframe:  st.timeframe,
				}
				if err := tx.Create(&step).Error; err != nil {
					return err
				}
				for itemKey, qty := range st.lines {
					line := models.ActionStepCostItem{
						ActionStepID: step.ID,
						CostItemID:   items[itemKey].ID,
						Quantity:     decimal.NewFromFloat(qty),
					}
					if err := tx.Create(&line).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("Error seeding strategy '%s': %v", def.title["en"], err)
			return err
		}
	}

	log.Println("Starter strategies seeded.")
	return nil
}

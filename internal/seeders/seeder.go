package seeders

import (
	"atlasbcp/backend/internal/models"
	bcplog "atlasbcp/backend/pkg/log"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations runs the GORM auto-migration for all models.
func RunMigrations(db *gorm.DB) error {
	log := bcplog.L.Named("RunMigrations")
	log.Info("Auto-migrating database schema...")

	if err := models.AutoMigrateDB(db); err != nil {
		log.Error("GORM AutoMigrate failed", zap.Error(err))
		return err
	}

	log.Info("Database schema migration completed successfully.")
	return nil
}

// SeedInitialData populates the database with the starter content catalog.
// Every seeder is idempotent: rerunning against a seeded database is a no-op.
func SeedInitialData(db *gorm.DB) error {
	log := bcplog.L.Named("SeedInitialData")
	log.Info("Seeding initial data...")

	if err := SeedHazardCatalog(db); err != nil {
		log.Error("Failed to seed hazard catalog", zap.Error(err))
		return err
	}

	if err := SeedCountryData(db); err != nil {
		log.Error("Failed to seed countries and multipliers", zap.Error(err))
		return err
	}

	if err := SeedBusinessTypes(db); err != nil {
		log.Error("Failed to seed business types", zap.Error(err))
		return err
	}

	if err := SeedStarterStrategies(db); err != nil {
		log.Error("Failed to seed starter strategies", zap.Error(err))
		return err
	}

	log.Info("Initial data seeding completed successfully.")
	return nil
}

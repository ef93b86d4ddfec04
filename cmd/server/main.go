package main

import (
	"fmt"
	"os"

	"atlasbcp/backend/internal/database"
	"atlasbcp/backend/internal/router"
	"atlasbcp/backend/internal/seeders"
	appCfg "atlasbcp/backend/pkg/config"
	bcplog "atlasbcp/backend/pkg/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func buildDSN() string {
	sslMode := "disable"
	if appCfg.Cfg.EnableDBSSL {
		sslMode = "require"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		appCfg.Cfg.DBHost, appCfg.Cfg.DBPort, appCfg.Cfg.DBUser,
		appCfg.Cfg.DBPassword, appCfg.Cfg.DBName, sslMode)
}

// runSeed migrates the schema and loads the starter content catalog.
func runSeed() {
	if err := database.ConnectDB(buildDSN()); err != nil {
		bcplog.L.Fatal("Failed to connect to database for seeding", zap.Error(err))
	}

	db := database.GetDB()
	if err := seeders.RunMigrations(db); err != nil {
		bcplog.L.Fatal("Schema migration failed", zap.Error(err))
	}
	if err := seeders.SeedInitialData(db); err != nil {
		bcplog.L.Fatal("Data seeding failed", zap.Error(err))
	}

	bcplog.L.Info("Seeding complete.")
}

func startServer() {
	if err := database.ConnectDB(buildDSN()); err != nil {
		bcplog.L.Fatal("Failed to connect to database", zap.Error(err))
	}
	bcplog.L.Info("Database connection established.")

	if err := seeders.RunMigrations(database.GetDB()); err != nil {
		bcplog.L.Fatal("Schema migration failed", zap.Error(err))
	}

	if appCfg.Cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.SetupRouter(bcplog.L)

	addr := ":" + appCfg.Cfg.Port
	bcplog.L.Info("Starting server", zap.String("addr", addr))
	if err := engine.Run(addr); err != nil {
		bcplog.L.Fatal("Failed to start server", zap.Error(err))
	}
}

func main() {
	defer func() { _ = bcplog.L.Sync() }()

	if len(os.Args) > 1 && os.Args[1] == "seed" {
		runSeed()
		return
	}
	startServer()
}

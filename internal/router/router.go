package router

import (
	"net/http"
	"time"

	"atlasbcp/backend/internal/database"
	"atlasbcp/backend/internal/handlers"
	bcpmiddleware "atlasbcp/backend/internal/middleware"
	bcplog "atlasbcp/backend/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin engine with all routes mounted.
func SetupRouter(log *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(bcpmiddleware.Metrics())
	router.Use(bcpmiddleware.GinZap(log, time.RFC3339, true))
	router.Use(bcpmiddleware.GinRecovery(log, time.RFC3339, true, true))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", healthCheckHandler)

	setupAdminRoutes(router)
	setupWizardRoutes(router)

	return router
}

func healthCheckHandler(c *gin.Context) {
	sqlDB, err := database.DB.DB()
	if err != nil {
		bcplog.L.Error("Failed to get DB instance for health check", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "database instance error"})
		return
	}

	if err = sqlDB.Ping(); err != nil {
		bcplog.L.Error("Database ping failed during health check", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "database ping failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "connected",
	})
}

// setupAdminRoutes mounts the content-management surface. Authentication is
// enforced upstream by the gateway, so these routes carry no auth middleware.
func setupAdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/v1/admin")
	{
		hazards := admin.Group("/hazards")
		{
			hazards.POST("", handlers.CreateHazardHandler)
			hazards.GET("", handlers.ListHazardsHandler)
			hazards.GET("/:hazardId", handlers.GetHazardHandler)
			hazards.PUT("/:hazardId", handlers.UpdateHazardHandler)
			hazards.DELETE("/:hazardId", handlers.DeleteHazardHandler)
		}

		strategies := admin.Group("/strategies")
		{
			strategies.POST("", handlers.CreateStrategyHandler)
			strategies.GET("", handlers.ListStrategiesHandler)
			strategies.GET("/:strategyId", handlers.GetStrategyHandler)
			strategies.PUT("/:strategyId", handlers.UpdateStrategyHandler)
			strategies.DELETE("/:strategyId", handlers.DeleteStrategyHandler)

			steps := strategies.Group("/:strategyId/action-steps")
			{
				steps.POST("", handlers.CreateActionStepHandler)
				steps.PUT("/:stepId", handlers.UpdateActionStepHandler)
				steps.DELETE("/:stepId", handlers.DeleteActionStepHandler)
				steps.POST("/:stepId/cost-lines", handlers.AttachCostLineHandler)
				steps.DELETE("/:stepId/cost-lines/:costItemId", handlers.DetachCostLineHandler)
			}
		}

		costItems := admin.Group("/cost-items")
		{
			costItems.POST("", handlers.CreateCostItemHandler)
			costItems.GET("", handlers.ListCostItemsHandler)
			costItems.GET("/:costItemId", handlers.GetCostItemHandler)
			costItems.PUT("/:costItemId", handlers.UpdateCostItemHandler)
			costItems.DELETE("/:costItemId", handlers.DeleteCostItemHandler)
		}

		multipliers := admin.Group("/country-multipliers")
		{
			multipliers.POST("", handlers.CreateCountryMultiplierHandler)
			multipliers.GET("", handlers.ListCountryMultipliersHandler)
			multipliers.GET("/:countryCode", handlers.GetCountryMultiplierHandler)
			multipliers.PUT("/:countryCode", handlers.UpdateCountryMultiplierHandler)
			multipliers.DELETE("/:countryCode", handlers.DeleteCountryMultiplierHandler)
		}

		countries := admin.Group("/countries")
		{
			countries.POST("", handlers.CreateCountryHandler)
			countries.GET("", handlers.ListCountriesHandler)
			countries.GET("/:countryId", handlers.GetCountryHandler)
			countries.PUT("/:countryId", handlers.UpdateCountryHandler)
			countries.DELETE("/:countryId", handlers.DeleteCountryHandler)
			countries.POST("/:countryId/admin-units", handlers.CreateAdminUnitHandler)
		}

		adminUnits := admin.Group("/admin-units")
		{
			adminUnits.PUT("/:unitId/risks", handlers.SetAdminUnitRiskHandler)
			adminUnits.DELETE("/:unitId", handlers.DeleteAdminUnitHandler)
		}

		businessTypes := admin.Group("/business-types")
		{
			businessTypes.POST("", handlers.CreateBusinessTypeHandler)
			businessTypes.GET("", handlers.ListBusinessTypesHandler)
			businessTypes.PUT("/:typeId", handlers.UpdateBusinessTypeHandler)
			businessTypes.DELETE("/:typeId", handlers.DeleteBusinessTypeHandler)
		}

		admin.GET("/reports/coverage", handlers.GetCoverageReportHandler)
	}
}

// setupWizardRoutes mounts the end-user wizard surface.
func setupWizardRoutes(r *gin.Engine) {
	wizard := r.Group("/api/v1/wizard")
	{
		wizard.POST("/recommendations", handlers.GetRecommendationsHandler)

		plans := wizard.Group("/plans")
		{
			plans.POST("", handlers.CreatePlanHandler)
			plans.GET("/:planId", handlers.GetPlanHandler)
			plans.PUT("/:planId", handlers.UpdatePlanHandler)
			plans.DELETE("/:planId", handlers.DeletePlanHandler)
			plans.POST("/:planId/finalize", handlers.FinalizePlanHandler)
			plans.GET("/:planId/export", handlers.ExportPlanHandler)
		}
	}
}

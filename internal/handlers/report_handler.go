package handlers

import (
	"net/http"

	"atlasbcp/backend/internal/database"
	"atlasbcp/backend/internal/matching"
	"atlasbcp/backend/internal/models"
	"atlasbcp/backend/internal/riskid"

	"github.com/gin-gonic/gin"
)

// HazardCoverage is one row of the admin coverage report.
type HazardCoverage struct {
	HazardCode    string `json:"hazard_code"`
	StrategyCount int    `json:"strategy_count"`
	Covered       bool   `json:"covered"`
}

// CoverageReport summarizes how well the strategy catalog covers the hazard
// catalog. Uncovered hazards are the gaps wizard users would hit.
type CoverageReport struct {
	Coverage            []HazardCoverage `json:"coverage"`
	UncoveredHazards    []string         `json:"uncovered_hazards"`
	MissingFromCatalog  []string         `json:"missing_from_catalog"`
	UniversalStrategies int              `json:"universal_strategies"`
}

// GetCoverageReportHandler runs the matcher over the full hazard catalog so
// admins can spot hazards no strategy addresses before users do.
func GetCoverageReportHandler(c *gin.Context) {
	db := database.GetDB()

	var hazards []models.Hazard
	if err := db.Order("code").Find(&hazards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load hazard catalog: " + err.Error()})
		return
	}

	var strategies []models.Strategy
	if err := db.Find(&strategies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load strategy catalog: " + err.Error()})
		return
	}

	codes := make(models.StringList, 0, len(hazards))
	for _, h := range hazards {
		codes = append(codes, h.Code)
	}

	result := matching.Match(codes, strategies)

	report := CoverageReport{UniversalStrategies: len(result.Universal)}
	for _, code := range codes {
		matched := result.ByRisk[code]
		report.Coverage = append(report.Coverage, HazardCoverage{
			HazardCode:    code,
			StrategyCount: len(matched),
			Covered:       len(matched) > 0,
		})
	}
	report.UncoveredHazards = result.Gaps
	if report.UncoveredHazards == nil {
		report.UncoveredHazards = []string{}
	}

	// Surface standard hazard codes the catalog has not been seeded with yet.
	report.MissingFromCatalog = []string{}
	for _, code := range riskid.Canonical() {
		if !codes.Contains(code) {
			report.MissingFromCatalog = append(report.MissingFromCatalog, code)
		}
	}

	c.JSON(http.StatusOK, report)
}

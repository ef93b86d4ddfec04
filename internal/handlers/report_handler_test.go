package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"atlasbcp/backend/internal/models"
	"atlasbcp/backend/internal/riskid"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCoverageReportHandler(t *testing.T) {
	router := testRouter()
	router.GET("/reports/coverage", GetCoverageReportHandler)

	t.Run("Reports per-hazard coverage and catalog gaps", func(t *testing.T) {
		floodName, _ := json.Marshal(models.LocalizedString{"en": "Flood"})
		outageName, _ := json.Marshal(models.LocalizedString{"en": "Power outage"})
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "hazards" ORDER BY code`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "category", "name", "created_at", "updated_at"}).
				AddRow(uuid.New(), "flood", string(models.HazardNatural), floodName, time.Now(), time.Now()).
				AddRow(uuid.New(), "power_outage", string(models.HazardTechnological), outageName, time.Now(), time.Now()))

		title, _ := json.Marshal(models.LocalizedString{"en": "Raise stock off the floor"})
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "strategies"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "tier", "primary_hazards", "secondary_hazards"}).
				AddRow(uuid.New(), title, string(models.TierEssential), []byte(`["flood"]`), []byte(`[]`)))

		req, _ := http.NewRequest(http.MethodGet, "/reports/coverage", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var report CoverageReport
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
		require.Len(t, report.Coverage, 2)
		assert.Equal(t, "flood", report.Coverage[0].HazardCode)
		assert.True(t, report.Coverage[0].Covered)
		assert.Equal(t, "power_outage", report.Coverage[1].HazardCode)
		assert.False(t, report.Coverage[1].Covered)
		assert.Equal(t, []string{"power_outage"}, report.UncoveredHazards)

		// Two of the standard codes are seeded, the rest are flagged.
		assert.Len(t, report.MissingFromCatalog, len(riskid.Canonical())-2)
		assert.Contains(t, report.MissingFromCatalog, "earthquake")
		assert.NotContains(t, report.MissingFromCatalog, "flood")
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

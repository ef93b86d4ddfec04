package export

import (
	"database/sql"
	"regexp"
	"testing"

	"atlasbcp/backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	var db *sql.DB
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func jamaicaMultiplier() *models.CountryMultiplier {
	return &models.CountryMultiplier{
		CountryCode:     "JM",
		CurrencyCode:    "JMD",
		CurrencySymbol:  "J$",
		ExchangeRateUSD: decimal.NewFromFloat(155.50),
		Construction:    decimal.NewFromFloat(1.5),
		Equipment:       decimal.NewFromInt(1),
		Service:         decimal.NewFromInt(1),
		Supplies:        decimal.NewFromInt(1),
	}
}

func TestBuildStrategyDetail(t *testing.T) {
	strategy := models.Strategy{
		ID:          uuid.New(),
		Title:       models.LocalizedString{"en": "Board up windows", "es": "Proteger las ventanas"},
		Description: models.LocalizedString{"en": "Cover openings with plywood."},
		Tier:        models.TierEssential,
		ActionSteps: []models.ActionStep{
			{
				Phase:     models.PhaseBefore,
				Position:  1,
				Title:     models.LocalizedString{"en": "Cut plywood to size"},
				Timeframe: "1-2 days",
				CostLines: []models.ActionStepCostItem{
					{
						Quantity: decimal.NewFromInt(2),
						CostItem: models.CostItem{
							Name:     models.LocalizedString{"en": "Plywood sheet"},
							Category: models.CostConstruction,
							BaseUSD:  decimal.NewFromInt(100),
						},
					},
				},
			},
		},
	}

	detail := buildStrategyDetail(strategy, jamaicaMultiplier(), "es")

	assert.Equal(t, "Proteger las ventanas", detail.Title)
	// es description is absent, falls back to en
	assert.Equal(t, "Cover openings with plywood.", detail.Description)
	require.Len(t, detail.Steps, 1)

	step := detail.Steps[0]
	assert.Equal(t, models.PhaseBefore, step.Phase)
	assert.InDelta(t, 12.0, step.EstimatedHours, 0.001)
	require.Len(t, step.CostLines, 1)

	// 100 USD * 1.5 construction multiplier = 150/unit, 2 units = 300
	line := step.CostLines[0]
	assert.True(t, decimal.NewFromInt(150).Equal(line.UnitUSD), "unit: %s", line.UnitUSD)
	assert.True(t, decimal.NewFromInt(300).Equal(line.LineUSD), "line: %s", line.LineUSD)
	assert.True(t, decimal.NewFromInt(300).Equal(detail.Cost.TotalUSD), "total: %s", detail.Cost.TotalUSD)
	assert.Equal(t, "JMD", detail.Cost.CurrencyCode)
}

func TestBuildStrategyDetailWithoutMultiplier(t *testing.T) {
	strategy := models.Strategy{
		ID:    uuid.New(),
		Title: models.LocalizedString{"en": "Back up records"},
		ActionSteps: []models.ActionStep{
			{
				Phase: models.PhaseBefore,
				Title: models.LocalizedString{"en": "Set up cloud backup"},
				CostLines: []models.ActionStepCostItem{
					{
						Quantity: decimal.NewFromInt(12),
						CostItem: models.CostItem{
							Name:     models.LocalizedString{"en": "Backup subscription"},
							Category: models.CostService,
							BaseUSD:  decimal.NewFromInt(10),
						},
					},
				},
			},
		},
	}

	detail := buildStrategyDetail(strategy, nil, "en")

	require.Len(t, detail.Steps, 1)
	require.Len(t, detail.Steps[0].CostLines, 1)
	line := detail.Steps[0].CostLines[0]
	assert.True(t, decimal.NewFromInt(10).Equal(line.UnitUSD))
	assert.True(t, decimal.NewFromInt(120).Equal(line.LineUSD))
	assert.Equal(t, "USD", detail.Cost.CurrencyCode)
}

func TestBuildPlanDocumentKeepsUncoveredSelections(t *testing.T) {
	db, mock := newMockDB(t)

	strategyID := uuid.New()
	stepID := uuid.New()
	costItemID := uuid.New()

	plan := models.Plan{
		ID:              uuid.New(),
		BusinessName:    "Harbour Bakery",
		CountryCode:     "TT",
		Locale:          "en",
		Status:          models.PlanDraft,
		SelectedHazards: models.StringList{"flood"},
		StrategyIDs:     models.StringList{strategyID.String()},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "strategies" WHERE id IN ($1)`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "tier", "primary_hazards", "secondary_hazards"}).
			AddRow(strategyID, []byte(`{"en":"Secure heavy shelving"}`), []byte(`{"en":"Anchor shelving to walls."}`),
				string(models.TierRecommended), []byte(`["earthquake"]`), []byte(`[]`)))
	mock.ExpectQuery(`SELECT \* FROM "action_steps" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "strategy_id", "phase", "position", "title", "timeframe"}).
			AddRow(stepID, strategyID, string(models.PhaseBefore), 1, []byte(`{"en":"Install wall anchors"}`), "1 day"))
	mock.ExpectQuery(`SELECT \* FROM "action_step_cost_items" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action_step_id", "cost_item_id", "quantity"}).
			AddRow(uuid.New(), stepID, costItemID, "2"))
	mock.ExpectQuery(`SELECT \* FROM "cost_items" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "base_usd"}).
			AddRow(costItemID, []byte(`{"en":"Anchor kit"}`), string(models.CostSupplies), "50"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "country_multipliers" WHERE country_code = $1`)).
		WithArgs("TT", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	doc, err := BuildPlanDocument(db, &plan)
	require.NoError(t, err)

	// The chosen strategy covers no selected hazard, so it has no hazard
	// section, but it stays in the document and its cost counts.
	assert.Empty(t, doc.Sections)
	require.Len(t, doc.UniversalStrategies, 1)
	assert.Equal(t, strategyID, doc.UniversalStrategies[0].ID)
	assert.Equal(t, "Secure heavy shelving", doc.UniversalStrategies[0].Title)
	assert.Equal(t, []string{"flood"}, doc.CoverageGaps)
	assert.True(t, decimal.NewFromInt(100).Equal(doc.Totals.TotalUSD), "total: %s", doc.Totals.TotalUSD)
	assert.InDelta(t, 8.0, doc.Totals.CalculatedHours, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildPlanDocumentEmptyPlan(t *testing.T) {
	db, mock := newMockDB(t)

	plan := models.Plan{
		ID:              uuid.New(),
		BusinessName:    "Corner Shop",
		CountryCode:     "JM",
		Locale:          "en",
		Status:          models.PlanDraft,
		SelectedHazards: models.StringList{"flood"},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "country_multipliers" WHERE country_code = $1`)).
		WithArgs("JM", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	doc, err := BuildPlanDocument(db, &plan)
	require.NoError(t, err)

	assert.Equal(t, plan.ID, doc.PlanID)
	assert.Empty(t, doc.Sections)
	assert.Empty(t, doc.UniversalStrategies)
	// The one selected hazard has no covering strategy.
	assert.Equal(t, []string{"flood"}, doc.CoverageGaps)
	assert.True(t, doc.Totals.TotalUSD.IsZero())
	assert.Equal(t, "USD", doc.Totals.CurrencyCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

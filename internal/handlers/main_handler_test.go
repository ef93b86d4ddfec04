package handlers

import (
	"database/sql"
	"log"
	"os"
	"testing"

	"atlasbcp/backend/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var mockDB *gorm.DB
var sqlMock sqlmock.Sqlmock

// TestMain wires a sqlmock-backed GORM instance into the package-global DB so
// handlers run against scripted queries.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	var db *sql.DB
	db, sqlMock, err = sqlmock.New()
	if err != nil {
		log.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	dialector := postgres.New(postgres.Config{
		Conn: db,
	})

	mockDB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to open GORM with mock: %v", err)
	}
	database.DB = mockDB

	os.Exit(m.Run())
}

func testRouter() *gin.Engine {
	return gin.New()
}

// Common mock data
var testHazardID = uuid.New()
var testStrategyID = uuid.New()
var testPlanID = uuid.New()

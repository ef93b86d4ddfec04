package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"atlasbcp/backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func hazardRows(h models.Hazard) *sqlmock.Rows {
	name, _ := json.Marshal(h.Name)
	desc, _ := json.Marshal(h.Description)
	return sqlmock.NewRows([]string{"id", "code", "category", "name", "description", "created_at", "updated_at"}).
		AddRow(h.ID, h.Code, h.Category, name, desc, time.Now(), time.Now())
}

func TestCreateHazardHandler(t *testing.T) {
	router := testRouter()
	router.POST("/hazards", CreateHazardHandler)

	t.Run("Normalizes the code before storing", func(t *testing.T) {
		payload := HazardPayload{
			Code:     "Flooding",
			Category: models.HazardNatural,
			Name:     models.LocalizedString{"en": "Flood"},
		}
		body, _ := json.Marshal(payload)

		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "hazards" WHERE code = $1`)).
			WithArgs("flood", 1).
			WillReturnError(gorm.ErrRecordNotFound)
		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`INSERT INTO "hazards"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
		sqlMock.ExpectCommit()

		req, _ := http.NewRequest(http.MethodPost, "/hazards", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var created models.Hazard
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
		assert.Equal(t, "flood", created.Code)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Rejects the catch-all sentinel as a catalog entry", func(t *testing.T) {
		payload := HazardPayload{
			Code:     "all",
			Category: models.HazardNatural,
			Name:     models.LocalizedString{"en": "Everything"},
		}
		body, _ := json.Marshal(payload)

		req, _ := http.NewRequest(http.MethodPost, "/hazards", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Conflict on duplicate canonical code", func(t *testing.T) {
		payload := HazardPayload{
			Code:     "floods",
			Category: models.HazardNatural,
			Name:     models.LocalizedString{"en": "Flood"},
		}
		body, _ := json.Marshal(payload)

		existing := models.Hazard{ID: testHazardID, Code: "flood", Category: models.HazardNatural,
			Name: models.LocalizedString{"en": "Flood"}}
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "hazards" WHERE code = $1`)).
			WithArgs("flood", 1).
			WillReturnRows(hazardRows(existing))

		req, _ := http.NewRequest(http.MethodPost, "/hazards", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Invalid payload - missing code", func(t *testing.T) {
		body := []byte(`{"category":"natural","name":{"en":"Flood"}}`)

		req, _ := http.NewRequest(http.MethodPost, "/hazards", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateHazardHandler(t *testing.T) {
	router := testRouter()
	router.PUT("/hazards/:hazardId", UpdateHazardHandler)

	t.Run("Code change blocked while strategies reference it", func(t *testing.T) {
		existing := models.Hazard{ID: testHazardID, Code: "flood", Category: models.HazardNatural,
			Name: models.LocalizedString{"en": "Flood"}}
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "hazards" WHERE id = $1`)).
			WithArgs(testHazardID, 1).
			WillReturnRows(hazardRows(existing))
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "strategies"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		payload := HazardPayload{
			Code:     "coastal_flood",
			Category: models.HazardNatural,
			Name:     models.LocalizedString{"en": "Coastal flood"},
		}
		body, _ := json.Marshal(payload)

		req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/hazards/%s", testHazardID), bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Name-only update leaves the code untouched", func(t *testing.T) {
		existing := models.Hazard{ID: testHazardID, Code: "flood", Category: models.HazardNatural,
			Name: models.LocalizedString{"en": "Flood"}}
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "hazards" WHERE id = $1`)).
			WithArgs(testHazardID, 1).
			WillReturnRows(hazardRows(existing))
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(`UPDATE "hazards"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		payload := HazardPayload{
			Code:     "Flooding", // normalizes back to the stored code
			Category: models.HazardNatural,
			Name:     models.LocalizedString{"en": "Flood", "es": "Inundación"},
		}
		body, _ := json.Marshal(payload)

		req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/hazards/%s", testHazardID), bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var updated models.Hazard
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
		assert.Equal(t, "flood", updated.Code)
		assert.Equal(t, "Inundación", updated.Name["es"])
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestDeleteHazardHandler(t *testing.T) {
	router := testRouter()
	router.DELETE("/hazards/:hazardId", DeleteHazardHandler)

	t.Run("Deletes an unreferenced hazard", func(t *testing.T) {
		existing := models.Hazard{ID: testHazardID, Code: "flood", Category: models.HazardNatural,
			Name: models.LocalizedString{"en": "Flood"}}
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "hazards" WHERE id = $1`)).
			WithArgs(testHazardID, 1).
			WillReturnRows(hazardRows(existing))
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "strategies"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(`DELETE FROM "hazards"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/hazards/%s", testHazardID), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Refuses to delete a referenced hazard", func(t *testing.T) {
		existing := models.Hazard{ID: testHazardID, Code: "flood", Category: models.HazardNatural,
			Name: models.LocalizedString{"en": "Flood"}}
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "hazards" WHERE id = $1`)).
			WithArgs(testHazardID, 1).
			WillReturnRows(hazardRows(existing))
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "strategies"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/hazards/%s", testHazardID), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Invalid hazard ID", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, "/hazards/not-a-uuid", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

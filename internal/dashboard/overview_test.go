package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coatops-backend/internal/database"
	"coatops-backend/internal/inventory"
	"coatops-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New()
	app.Get("/api/dashboard/overview", OverviewHandler())
	return app
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func TestOverview(t *testing.T) {
	app := setupTestApp(t)

	powder := models.Powder{Name: "RAL 9016", CurrentStockKg: 50, SafetyStockKg: 20}
	require.NoError(t, database.DB.Create(&powder).Error)
	_, err := inventory.RecordTransaction(powder.ID, models.TransactionConsume, 40, "job 7")
	require.NoError(t, err)

	require.NoError(t, database.DB.Create(&models.GasLog{Date: today(), QuantityM3: 12}).Error)
	require.NoError(t, database.DB.Create(&models.QCCheck{JobRef: "WO-1", Date: today(), Passed: true,
		SurfaceClean: true, ThicknessOK: true, AdhesionOK: true, VisualOK: true}).Error)
	require.NoError(t, database.DB.Create(&models.QCCheck{JobRef: "WO-2", Date: today()}).Error)
	require.NoError(t, database.DB.Create(&models.Job{Title: "Batch", Status: models.JobStatusPending, Date: today()}).Error)
	require.NoError(t, database.DB.Create(&models.Job{Title: "Shipped", Status: models.JobStatusDone, Date: today()}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/overview", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var overview OverviewResponse
	require.NoError(t, json.Unmarshal(raw, &overview))

	assert.Equal(t, 1, overview.Inventory.TotalSkus)
	assert.Equal(t, 10.0, overview.Inventory.TotalStockKg)
	assert.Equal(t, 1, overview.Inventory.LowStockCount)
	assert.Equal(t, 40.0, overview.TodayUsageKg)
	assert.Equal(t, 12.0, overview.TodayGasM3)
	assert.Equal(t, int64(1), overview.OpenJobs)
	assert.Equal(t, 2, overview.QC.Total)
	assert.Equal(t, 0.5, overview.QC.PassRate)
}

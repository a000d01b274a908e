package qc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coatops-backend/internal/database"

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
	api := app.Group("/api")
	api.Post("/qc-checks", CreateQCCheckHandler())
	api.Get("/qc-checks/summary", QCSummaryHandler())
	api.Get("/qc-checks", ListQCChecksHandler())
	return app
}

func postCheck(t *testing.T, app *fiber.App, body fiber.Map) (*http.Response, QCCheckResponse) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/qc-checks", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var created QCCheckResponse
	if resp.StatusCode == fiber.StatusCreated {
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &created))
	}
	return resp, created
}

func TestCreateQCCheck_DerivesPassed(t *testing.T) {
	app := setupTestApp(t)

	resp, created := postCheck(t, app, fiber.Map{
		"job_ref":       "WO-1042",
		"surface_clean": true,
		"thickness_ok":  true,
		"adhesion_ok":   true,
		"visual_ok":     true,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.True(t, created.Passed)

	// One failing point fails the whole check, whatever the client claims.
	resp, created = postCheck(t, app, fiber.Map{
		"job_ref":       "WO-1043",
		"surface_clean": true,
		"thickness_ok":  false,
		"adhesion_ok":   true,
		"visual_ok":     true,
		"passed":        true,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.False(t, created.Passed)
}

func TestCreateQCCheck_RequiresJobRef(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := postCheck(t, app, fiber.Map{"job_ref": "  "})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestQCSummary(t *testing.T) {
	app := setupTestApp(t)

	all := fiber.Map{"surface_clean": true, "thickness_ok": true, "adhesion_ok": true, "visual_ok": true}
	for i := 0; i < 3; i++ {
		body := fiber.Map{"job_ref": fmt.Sprintf("WO-%d", i)}
		for k, v := range all {
			body[k] = v
		}
		resp, _ := postCheck(t, app, body)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	resp, _ := postCheck(t, app, fiber.Map{"job_ref": "WO-9", "surface_clean": true})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	s, err := Stats()
	require.NoError(t, err)
	assert.Equal(t, QCSummary{Total: 4, Passed: 3, Failed: 1, PassRate: 0.75}, s)
}

func TestQCSummary_Empty(t *testing.T) {
	setupTestApp(t)

	s, err := Stats()
	require.NoError(t, err)
	assert.Equal(t, QCSummary{}, s)
}

package projectController

import (
	"academy/config"
	"academy/database"
	"academy/models"
	projectValidator "academy/validators/project"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUnlockApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	user := models.User{Name: "Buyer", Email: "buyer@example.com", Password: "x", Roles: models.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	authStub := func(c *fiber.Ctx) error {
		c.Locals("userId", user.ID)
		return c.Next()
	}
	app.Post("/api/unlock", authStub, projectValidator.UnlockRequest(), SubmitUnlockRequest)
	app.Get("/api/unlock/status", authStub, projectValidator.UnlockLookup(), GetUnlockStatus)
	return app, db
}

func postUnlock(t *testing.T, app *fiber.App, body map[string]interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/unlock", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSubmitUnlockRequestLifecycle(t *testing.T) {
	app, db := setupUnlockApp(t)

	body := map[string]interface{}{
		"item_id":   uint(7),
		"item_type": "PROJECT",
		"proof_url": "https://proofs.example.com/receipt.png",
	}

	// First submission creates a pending request with an order ref
	resp := postUnlock(t, app, body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var item models.SavedItem
	require.NoError(t, db.Where("item_id = ? AND item_type = ?", 7, models.ItemTypeProject).First(&item).Error)
	assert.NotEmpty(t, item.OrderRef)
	meta := models.ParseUnlockMetadata(item.Metadata)
	require.NotNil(t, meta)
	assert.Equal(t, models.UnlockStatusPending, meta.Status)

	// Resubmitting while pending conflicts
	resp = postUnlock(t, app, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// An approved item also blocks resubmission
	meta.Status = models.UnlockStatusApproved
	item.Metadata = models.MarshalUnlockMetadata(meta)
	require.NoError(t, db.Save(&item).Error)
	resp = postUnlock(t, app, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// A rejected item starts a fresh pending cycle in place
	meta.Status = models.UnlockStatusRejected
	meta.Notes = "Proof unreadable"
	item.Metadata = models.MarshalUnlockMetadata(meta)
	require.NoError(t, db.Save(&item).Error)
	resp = postUnlock(t, app, body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	db.Model(&models.SavedItem{}).Where("item_id = ? AND item_type = ?", 7, models.ItemTypeProject).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.Where("item_id = ?", 7).First(&item).Error)
	meta = models.ParseUnlockMetadata(item.Metadata)
	require.NotNil(t, meta)
	assert.Equal(t, models.UnlockStatusPending, meta.Status)
	assert.Empty(t, meta.Notes)
}

func TestSubmitUnlockRequestValidation(t *testing.T) {
	app, _ := setupUnlockApp(t)

	resp := postUnlock(t, app, map[string]interface{}{
		"item_id":   uint(7),
		"item_type": "SUBSCRIPTION",
		"proof_url": "https://proofs.example.com/receipt.png",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = postUnlock(t, app, map[string]interface{}{
		"item_id":   uint(7),
		"item_type": "PROJECT",
		"proof_url": "ftp://nope",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGetUnlockStatus(t *testing.T) {
	app, _ := setupUnlockApp(t)

	// No request yet: null status
	req := httptest.NewRequest(http.MethodGet, "/api/unlock/status?item_id=7&item_type=PROJECT", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	postUnlock(t, app, map[string]interface{}{
		"item_id":   uint(7),
		"item_type": "PROJECT",
		"proof_url": "https://proofs.example.com/receipt.png",
	})

	req = httptest.NewRequest(http.MethodGet, "/api/unlock/status?item_id=7&item_type=PROJECT", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Status bool `json:"status"`
		Data   struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Status)
	assert.Equal(t, models.UnlockStatusPending, envelope.Data.Status)
}

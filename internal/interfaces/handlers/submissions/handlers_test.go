package submissions

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"vibemarket-backend/internal/application/access"
	subsvc "vibemarket-backend/internal/application/submission"
	"vibemarket-backend/internal/domain"
	"vibemarket-backend/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSubmissionsTest(t *testing.T, caller *access.Identity) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Vibe{}, &domain.VibeEvent{}))

	h := &Handlers{Service: &subsvc.Service{DB: db, PaymentLink: "https://buy.stripe.com/test"}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if caller != nil {
			middleware.SetIdentity(c, caller)
		}
		return c.Next()
	})
	app.Post("/vibes", h.Submit)
	return app, db
}

func post(t *testing.T, app *fiber.App, body interface{}) (int, map[string]interface{}) {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/vibes", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// A client trying to pick its own owner, status and votes gets the server's values.
func TestSubmit_ServerOwnsIdentityFields(t *testing.T) {
	app, db := setupSubmissionsTest(t, &access.Identity{ID: "user-priya", Email: "priya@example.com"})

	code, out := post(t, app, map[string]interface{}{
		"title":        "Invoice Ninja",
		"description":  "Invoices for freelancers",
		"live_url":     "https://invoice-ninja.vercel.app",
		"tool":         "v0",
		"tags":         []string{"finance"},
		"plan":         "paid",
		"creator_name": "Mallory",
		"user_id":      "someone-else",
		"status":       "approved",
		"votes":        9000,
	})
	require.Equal(t, 201, code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "payment", data["next_step"])
	assert.Equal(t, "https://buy.stripe.com/test", data["payment_url"])

	var stored domain.Vibe
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "priya", stored.CreatorName)
	assert.Equal(t, "user-priya", stored.UserID)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Zero(t, stored.Votes)
}

func TestSubmit_ValidationErrorListsFields(t *testing.T) {
	app, db := setupSubmissionsTest(t, &access.Identity{ID: "u", Email: "u@example.com"})

	code, out := post(t, app, map[string]interface{}{"title": "", "description": "d", "live_url": "https://x.io", "tool": "v0"})
	assert.Equal(t, 400, code)
	details := out["error"].(map[string]interface{})["details"].(map[string]interface{})
	fields := details["fields"].([]interface{})
	require.Len(t, fields, 1)
	assert.Equal(t, "title", fields[0].(map[string]interface{})["field"])

	var count int64
	db.Model(&domain.Vibe{}).Count(&count)
	assert.Zero(t, count)
}

func TestSubmit_Anonymous(t *testing.T) {
	app, _ := setupSubmissionsTest(t, nil)
	code, _ := post(t, app, map[string]interface{}{"title": "x", "description": "d", "live_url": "https://x.io", "tool": "v0"})
	assert.Equal(t, 401, code)
}

func TestSubmit_InvalidBody(t *testing.T) {
	app, _ := setupSubmissionsTest(t, &access.Identity{ID: "u"})
	req := httptest.NewRequest("POST", "/vibes", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

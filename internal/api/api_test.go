package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"brandbase/internal/api/middleware"
	"brandbase/internal/api/registry"
	"brandbase/internal/api/validator"
	"brandbase/internal/config"
	"brandbase/internal/db"
	"brandbase/internal/models"
	"brandbase/internal/routes"
	"brandbase/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestAPI wires the authenticated /api group the same way the server
// does, backed by an in-memory database.
func newTestAPI(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "api-test-secret")

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	// Each connection to :memory: is its own database; pin the pool to one.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() { db.DB = prev })

	e := echo.New()
	e.Validator = validator.NewValidator()

	api := e.Group("/api")
	auth := middleware.NewAuthMiddleware()
	api.Use(auth.Middleware())
	registry.RegisterCRUDRoutes(api, gdb)

	return e, gdb
}

func createUser(t *testing.T, gdb *gorm.DB, email string, tier models.Tier) (*models.User, string) {
	t.Helper()

	user := &models.User{Email: email, Name: "Test", Role: models.UserRoleUser, Tier: tier}
	require.NoError(t, gdb.Create(user).Error)

	token, err := utils.GenerateJWT(*user)
	require.NoError(t, err)
	return user, token
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAPI_MissingTokenIsUnauthorized(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/posts", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Unauthorized", body["error"])
}

func TestAPI_GarbageTokenIsUnauthorized(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/posts", "not-a-jwt", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_NewAccountSeesEmptyChannels(t *testing.T) {
	e, gdb := newTestAPI(t)
	_, token := createUser(t, gdb, "fresh@example.com", models.TierGold)

	rec := doJSON(e, http.MethodGet, "/api/channels", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]models.Channel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	channels, ok := body["channels"]
	require.True(t, ok, "response must wrap the list in the resource name")
	require.Empty(t, channels)
}

func TestAPI_RegisterSelectGoldThenListChannels(t *testing.T) {
	e, gdb := newTestAPI(t)
	routes.SetupAuthRoutes(e, gdb, config.LoadTestConfig())

	rec := doJSON(e, http.MethodPost, "/api/auth/register", "",
		`{"email":"a@x.com","password":"pw1pw1pw1","name":"Ana"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/auth/login", "",
		`{"email":"a@x.com","password":"pw1pw1pw1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var tokens map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))
	token := tokens["token"]
	require.NotEmpty(t, token)

	rec = doJSON(e, http.MethodPost, "/api/auth/select-tier", token, `{"tier":"gold"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, gdb.Where("email = ?", "a@x.com").First(&user).Error)
	require.Equal(t, models.TierGold, user.Tier)

	rec = doJSON(e, http.MethodGet, "/api/channels", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]models.Channel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	channels, ok := body["channels"]
	require.True(t, ok, "response must wrap the list in the resource name")
	require.Empty(t, channels)
}

func TestAPI_CreatePostDefaultsToDraft(t *testing.T) {
	e, gdb := newTestAPI(t)
	user, token := createUser(t, gdb, "writer@example.com", models.TierGold)

	rec := doJSON(e, http.MethodPost, "/api/posts", token, `{"title":"Hello world"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	post := body["post"]
	require.Equal(t, user.ID, post.UserID)

	var stored models.Post
	require.NoError(t, gdb.Where("id = ?", post.ID).First(&stored).Error)
	require.Equal(t, models.PostStatusDraft, stored.Status)
}

func TestAPI_UpdateForeignCampaignReadsAsMissing(t *testing.T) {
	e, gdb := newTestAPI(t)
	alice, _ := createUser(t, gdb, "alice@example.com", models.TierGold)
	_, bobToken := createUser(t, gdb, "bob@example.com", models.TierGold)

	campaign := &models.Campaign{UserID: alice.ID, Name: "Spring Launch"}
	require.NoError(t, gdb.Create(campaign).Error)

	rec := doJSON(e, http.MethodPut, "/api/campaigns", bobToken,
		`{"id":"`+campaign.ID+`","name":"Hijacked"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Not found", body["error"])

	var kept models.Campaign
	require.NoError(t, gdb.Where("id = ?", campaign.ID).First(&kept).Error)
	require.Equal(t, "Spring Launch", kept.Name)
}

func TestAPI_DeleteWithIDInBody(t *testing.T) {
	e, gdb := newTestAPI(t)
	owner, token := createUser(t, gdb, "owner@example.com", models.TierGold)

	channel := &models.Channel{UserID: owner.ID, Platform: "instagram", Handle: "@brand"}
	require.NoError(t, gdb.Create(channel).Error)

	rec := doJSON(e, http.MethodDelete, "/api/channels", token, `{"id":"`+channel.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	gdb.Model(&models.Channel{}).Where("id = ?", channel.ID).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestAPI_BasicTierGetsUpgradeRequired(t *testing.T) {
	e, gdb := newTestAPI(t)
	_, token := createUser(t, gdb, "free@example.com", models.TierBasic)

	for _, path := range []string{"/api/posts", "/api/channels", "/api/contacts", "/api/growth"} {
		rec := doJSON(e, http.MethodGet, path, token, "")
		require.Equal(t, http.StatusForbidden, rec.Code, "path %s", path)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "Upgrade required", body["error"])
	}
}

func TestAPI_TierChangeTakesEffectWithoutRelogin(t *testing.T) {
	e, gdb := newTestAPI(t)
	user, token := createUser(t, gdb, "upgrader@example.com", models.TierBasic)

	rec := doJSON(e, http.MethodGet, "/api/posts", token, "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Simulates the payment webhook flipping the tier; the token is minted
	// before the change and stays the same.
	require.NoError(t, gdb.Model(user).Update("tier", models.TierGold).Error)

	rec = doJSON(e, http.MethodGet, "/api/posts", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_PostFiltersByStatus(t *testing.T) {
	e, gdb := newTestAPI(t)
	owner, token := createUser(t, gdb, "owner@example.com", models.TierGold)

	require.NoError(t, gdb.Create(&models.Post{UserID: owner.ID, Title: "draft one"}).Error)
	require.NoError(t, gdb.Create(&models.Post{UserID: owner.ID, Title: "live one", Status: models.PostStatusPublished}).Error)

	rec := doJSON(e, http.MethodGet, "/api/posts?status=published", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body["posts"], 1)
	require.Equal(t, "live one", body["posts"][0].Title)
}

func TestAPI_ContactSearch(t *testing.T) {
	e, gdb := newTestAPI(t)
	owner, token := createUser(t, gdb, "owner@example.com", models.TierGold)

	require.NoError(t, gdb.Create(&models.Contact{UserID: owner.ID, Name: "Jane Cooper", Email: "jane@corp.com"}).Error)
	require.NoError(t, gdb.Create(&models.Contact{UserID: owner.ID, Name: "Max Miller", Email: "max@corp.com"}).Error)

	rec := doJSON(e, http.MethodGet, "/api/contacts?search=jane", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body["contacts"], 1)
	require.Equal(t, "Jane Cooper", body["contacts"][0].Name)
}

func TestAPI_CalendarMergesSpecialDates(t *testing.T) {
	e, gdb := newTestAPI(t)
	owner, token := createUser(t, gdb, "owner@example.com", models.TierGold)

	require.NoError(t, gdb.Create(&models.CalendarEvent{
		UserID:    owner.ID,
		Title:     "Product drop",
		StartDate: mustTime(t, "2026-11-05T09:00:00Z"),
	}).Error)

	rec := doJSON(e, http.MethodGet, "/api/calendar?month=11&year=2026", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]models.CalendarEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	events := body["events"]
	require.Len(t, events, 4) // one stored + three retail dates

	var specialCount int
	for _, ev := range events {
		if strings.HasPrefix(ev.ID, "special-") {
			specialCount++
		}
	}
	require.Equal(t, 3, specialCount)
}

func TestAPI_VoucherDeleteDeactivates(t *testing.T) {
	e, gdb := newTestAPI(t)
	owner, token := createUser(t, gdb, "owner@example.com", models.TierGold)

	voucher := &models.Voucher{UserID: owner.ID, Code: "KEEPME"}
	require.NoError(t, gdb.Create(voucher).Error)

	rec := doJSON(e, http.MethodDelete, "/api/vouchers", token, `{"id":"`+voucher.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.Voucher
	require.NoError(t, gdb.Where("id = ?", voucher.ID).First(&stored).Error)
	require.False(t, stored.IsActive)
}

func TestAPI_VoucherRedeemEndpoint(t *testing.T) {
	e, gdb := newTestAPI(t)
	owner, token := createUser(t, gdb, "owner@example.com", models.TierGold)

	voucher := &models.Voucher{UserID: owner.ID, Code: "WELCOME10", UsageLimit: 1}
	require.NoError(t, gdb.Create(voucher).Error)

	rec := doJSON(e, http.MethodPost, "/api/vouchers/redeem", token,
		`{"code":"WELCOME10","redeemedBy":"storefront"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/vouchers/redeem", token,
		`{"code":"WELCOME10","redeemedBy":"storefront"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

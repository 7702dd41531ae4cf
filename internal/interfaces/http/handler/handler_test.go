package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	cartapp "github.com/parcelcart/backend/internal/application/cart"
	parcelapp "github.com/parcelcart/backend/internal/application/parcel"
	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/infrastructure/auth"
	"github.com/parcelcart/backend/internal/infrastructure/cache"
	"github.com/parcelcart/backend/internal/infrastructure/config"
	"github.com/parcelcart/backend/internal/infrastructure/persistence"
	"github.com/parcelcart/backend/internal/infrastructure/persistence/models"
	"github.com/parcelcart/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testProductID = "2898"

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	tokens *auth.FormTokenService
}

type envOption func(*config.ParcelConfig)

func requireTokens(cfg *config.ParcelConfig) {
	cfg.RequireFormToken = true
}

func setupTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	parcelCfg := config.ParcelConfig{
		ProductID:       testProductID,
		Currency:        "EUR",
		CurrencySymbol:  "€",
		FormTokenSecret: "handler-test-secret",
	}
	for _, opt := range opts {
		opt(&parcelCfg)
	}

	binder := parcel.NewBinder(parcel.NewPricingEngine(parcel.DefaultTierTable()), testProductID)
	tokens := auth.NewFormTokenService(parcelCfg)

	quoteService := parcelapp.NewQuoteService(binder, tokens, parcelapp.QuoteServiceConfig{
		Currency:       "EUR",
		CurrencySymbol: "€",
	})
	cartService := cartapp.NewCartService(persistence.NewGormCartRepository(db), binder, tokens, cartapp.CartServiceConfig{
		Currency:         "EUR",
		CurrencySymbol:   "€",
		RequireFormToken: parcelCfg.RequireFormToken,
	})
	checkoutService := cartapp.NewCheckoutService(
		persistence.NewGormOrderRepository(db),
		persistence.NewGormCheckoutTransactor(db),
		binder,
		cache.NewMemoryStore(),
		cartapp.CheckoutServiceConfig{CurrencySymbol: "€"},
	)

	middleware.SetupValidator()
	router := gin.New()
	router.Use(middleware.RequestID())

	parcelHandler := NewParcelHandler(quoteService)
	router.GET("/parcel/tiers", parcelHandler.GetTiers)
	router.GET("/parcel/form-tokens", parcelHandler.IssueFormTokens)
	router.POST("/parcel/quote", parcelHandler.Quote)

	cartHandler := NewCartHandler(cartService, checkoutService)
	router.POST("/carts", cartHandler.Create)
	router.GET("/carts/:id", cartHandler.Get)
	router.POST("/carts/:id/items", cartHandler.AddItem)
	router.DELETE("/carts/:id/items/:key", cartHandler.RemoveLine)
	router.POST("/carts/:id/checkout", cartHandler.Checkout)
	router.GET("/orders/:id", cartHandler.GetOrder)

	return &testEnv{router: router, tokens: tokens}
}

func (e *testEnv) do(method, path string, body io.Reader, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postJSON(path, body string) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, path, strings.NewReader(body), http.Header{"Content-Type": {"application/json"}})
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, path, strings.NewReader(form.Encode()),
		http.Header{"Content-Type": {"application/x-www-form-urlencoded"}})
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) APIResponse[T] {
	t.Helper()
	var resp APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func (e *testEnv) createCart(t *testing.T) cartapp.CartResponse {
	t.Helper()
	w := e.postJSON("/carts", `{}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[cartapp.CartResponse](t, w).Data
}

func parcelForm() url.Values {
	return url.Values{
		"product_id":  {testProductID},
		"category":    {"Electronics"},
		"description": {"Headphones"},
		"length_cm":   {"25"},
		"width_cm":    {"20"},
		"height_cm":   {"10"},
		"weight_kg":   {"1,5"},
		"units":       {"2"},
		"fragile":     {"1"},
	}
}

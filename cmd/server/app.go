package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/parcelcart/backend/docs"
	cartapp "github.com/parcelcart/backend/internal/application/cart"
	parcelapp "github.com/parcelcart/backend/internal/application/parcel"
	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/domain/shared"
	"github.com/parcelcart/backend/internal/domain/shared/valueobject"
	"github.com/parcelcart/backend/internal/infrastructure/auth"
	"github.com/parcelcart/backend/internal/infrastructure/config"
	"github.com/parcelcart/backend/internal/infrastructure/logger"
	"github.com/parcelcart/backend/internal/infrastructure/persistence"
	"github.com/parcelcart/backend/internal/infrastructure/telemetry"
	"github.com/parcelcart/backend/internal/interfaces/http/dto"
	"github.com/parcelcart/backend/internal/interfaces/http/handler"
	"github.com/parcelcart/backend/internal/interfaces/http/middleware"
	"github.com/parcelcart/backend/internal/interfaces/http/router"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// serverDeps are the long-lived resources the HTTP engine is built on
type serverDeps struct {
	cfg         *config.Config
	log         *zap.Logger
	db          *persistence.Database
	idempotency shared.IdempotencyStore
	telemetry   *telemetry.Providers
}

// newEngine wires services, handlers and middleware. The returned stop
// function releases background workers owned by the engine.
func newEngine(deps serverDeps) (*gin.Engine, func(), error) {
	cfg := deps.cfg

	tiers, err := cfg.Parcel.TierTable()
	if err != nil {
		return nil, nil, fmt.Errorf("parcel tiers: %w", err)
	}
	currency, err := valueobject.ParseCurrency(cfg.Parcel.Currency)
	if err != nil {
		return nil, nil, fmt.Errorf("parcel currency: %w", err)
	}

	binder := parcel.NewBinder(parcel.NewPricingEngine(tiers), cfg.Parcel.ProductID)
	tokens := auth.NewFormTokenService(cfg.Parcel)

	quoteService := parcelapp.NewQuoteService(binder, tokens, parcelapp.QuoteServiceConfig{
		Currency:       currency,
		CurrencySymbol: cfg.Parcel.CurrencySymbol,
	})
	cartService := cartapp.NewCartService(persistence.NewGormCartRepository(deps.db.DB), binder, tokens, cartapp.CartServiceConfig{
		Currency:         currency,
		CurrencySymbol:   cfg.Parcel.CurrencySymbol,
		RequireFormToken: cfg.Parcel.RequireFormToken,
	})
	checkoutService := cartapp.NewCheckoutService(
		persistence.NewGormOrderRepository(deps.db.DB),
		persistence.NewGormCheckoutTransactor(deps.db.DB),
		binder,
		deps.idempotency,
		cartapp.CheckoutServiceConfig{
			CurrencySymbol: cfg.Parcel.CurrencySymbol,
			IdempotencyTTL: cfg.Checkout.IdempotencyTTL,
		},
	)

	var meter metric.Meter
	if deps.telemetry != nil && deps.telemetry.MetricsEnabled() {
		meter = deps.telemetry.Meter("parcelcart")
		pm, err := telemetry.NewParcelMetrics(meter)
		if err != nil {
			deps.log.Warn("Parcel metrics disabled", zap.Error(err))
		} else {
			quoteService.SetParcelMetrics(pm)
			cartService.SetParcelMetrics(pm)
			checkoutService.SetParcelMetrics(pm)
		}
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, nil, fmt.Errorf("trusted proxies: %w", err)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.log))
	engine.Use(logger.Recovery(deps.log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	})...)
	engine.Use(middleware.HTTPMetrics(meter))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(deps.db))
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})

	stop := func() {}
	var quoteGuards []gin.HandlerFunc
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		quoteGuards = append(quoteGuards, middleware.RateLimit(limiter))
		stop = limiter.Stop
	}

	cartHandler := handler.NewCartHandler(cartService, checkoutService)
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.ParcelRoutes(handler.NewParcelHandler(quoteService), quoteGuards...)).
		Register(router.CartRoutes(cartHandler)).
		Register(router.OrderRoutes(cartHandler)).
		Register(router.SystemRoutes(handler.NewSystemHandler(handler.ServiceInfo{
			Name:      cfg.Telemetry.ServiceName,
			Version:   telemetry.ServiceVersion,
			ProductID: cfg.Parcel.ProductID,
			Currency:  cfg.Parcel.Currency,
			TierCount: len(cfg.Parcel.Tiers),
		}))).
		Setup()

	return engine, stop, nil
}

// healthHandler pings the database with a two second budget and reports
// the pool alongside the verdict.
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code, dbState := "healthy", http.StatusOK, "ok"
		if err := db.Ping(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			status, code, dbState = "unhealthy", http.StatusServiceUnavailable, "error"
		}

		body := gin.H{
			"status":   status,
			"time":     time.Now().UTC().Format(time.RFC3339),
			"database": dbState,
		}
		if pool, err := db.Stats(); err == nil {
			body["pool"] = pool
		}
		c.JSON(code, body)
	}
}

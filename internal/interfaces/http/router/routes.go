package router

import (
	"github.com/gin-gonic/gin"
	"github.com/parcelcart/backend/internal/interfaces/http/handler"
)

// ParcelRoutes exposes the quote form. The extra middleware (usually a
// rate limiter) only guards the parcel endpoints.
func ParcelRoutes(h *handler.ParcelHandler, middleware ...gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("parcel", "/parcel").
		Use(middleware...).
		GET("/tiers", h.GetTiers).
		GET("/form-tokens", h.IssueFormTokens).
		POST("/quote", h.Quote)
}

// CartRoutes exposes carts, their lines and checkout
func CartRoutes(h *handler.CartHandler) *DomainGroup {
	return NewDomainGroup("cart", "/carts").
		POST("", h.Create).
		GET("/:id", h.Get).
		POST("/:id/items", h.AddItem).
		DELETE("/:id/items/:key", h.RemoveLine).
		POST("/:id/checkout", h.Checkout)
}

// OrderRoutes exposes placed orders
func OrderRoutes(h *handler.CartHandler) *DomainGroup {
	return NewDomainGroup("order", "/orders").
		GET("/:id", h.GetOrder)
}

// SystemRoutes exposes service information
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").
		GET("/info", h.GetSystemInfo).
		GET("/ping", h.Ping)
}

package handler

import (
	"github.com/gin-gonic/gin"
	cartapp "github.com/parcelcart/backend/internal/application/cart"
	"github.com/parcelcart/backend/internal/interfaces/http/middleware"
)

// IdempotencyKeyHeader carries the client's checkout key
const IdempotencyKeyHeader = "Idempotency-Key"

// matches the orders.idempotency_key column
const maxIdempotencyKeyLength = 128

// CartHandler handles cart and checkout endpoints
type CartHandler struct {
	BaseHandler
	cartService     *cartapp.CartService
	checkoutService *cartapp.CheckoutService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService, checkoutService *cartapp.CheckoutService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

// Create godoc
// @ID           createCart
// @Summary      Open a cart
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        request body cartapp.CreateCartRequest false "Cart currency"
// @Success      201 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /carts [post]
func (h *CartHandler) Create(c *gin.Context) {
	var req cartapp.CreateCartRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	}

	cart, err := h.cartService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cart)
}

// Get godoc
// @ID           getCart
// @Summary      Get a cart with recalculated totals
// @Tags         carts
// @Produce      json
// @Param        id path string true "Cart ID" format(uuid)
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /carts/{id} [get]
func (h *CartHandler) Get(c *gin.Context) {
	cartID, ok := h.parseUUIDParam(c, "id", "cart")
	if !ok {
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), cartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem godoc
// @ID           addCartItem
// @Summary      Add a parcel to the cart
// @Description  Each accepted submission becomes its own cart line
// @Tags         carts
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id path string true "Cart ID" format(uuid)
// @Success      201 {object} APIResponse[cartapp.AddItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /carts/{id}/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, ok := h.parseUUIDParam(c, "id", "cart")
	if !ok {
		return
	}

	var req cartapp.AddItemRequest
	if !middleware.Bind(c, &req) {
		return
	}

	resp, err := h.cartService.AddItem(c.Request.Context(), cartID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RemoveLine godoc
// @ID           removeCartLine
// @Summary      Remove a cart line
// @Tags         carts
// @Produce      json
// @Param        id  path string true "Cart ID" format(uuid)
// @Param        key path string true "Line key"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /carts/{id}/items/{key} [delete]
func (h *CartHandler) RemoveLine(c *gin.Context) {
	cartID, ok := h.parseUUIDParam(c, "id", "cart")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveLine(c.Request.Context(), cartID, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Checkout godoc
// @ID           checkoutCart
// @Summary      Place an order from the cart
// @Tags         carts
// @Produce      json
// @Param        id              path   string true  "Cart ID" format(uuid)
// @Param        Idempotency-Key header string false "Client idempotency key"
// @Success      201 {object} APIResponse[cartapp.OrderResponse]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /carts/{id}/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	cartID, ok := h.parseUUIDParam(c, "id", "cart")
	if !ok {
		return
	}

	key := c.GetHeader(IdempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLength {
		h.BadRequest(c, "Idempotency key is too long")
		return
	}

	order, err := h.checkoutService.Checkout(c.Request.Context(), cartID, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetOrder godoc
// @ID           getOrder
// @Summary      Get a placed order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[cartapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /orders/{id} [get]
func (h *CartHandler) GetOrder(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.checkoutService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

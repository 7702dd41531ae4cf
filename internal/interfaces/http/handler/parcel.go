package handler

import (
	"github.com/gin-gonic/gin"
	parcelapp "github.com/parcelcart/backend/internal/application/parcel"
	"github.com/parcelcart/backend/internal/interfaces/http/middleware"
)

// ParcelHandler serves the parcel quote form
type ParcelHandler struct {
	BaseHandler
	quoteService *parcelapp.QuoteService
}

// NewParcelHandler creates a new ParcelHandler
func NewParcelHandler(quoteService *parcelapp.QuoteService) *ParcelHandler {
	return &ParcelHandler{
		quoteService: quoteService,
	}
}

// GetTiers godoc
// @ID           getParcelTiers
// @Summary      List the parcel tier table
// @Description  Returns the pricing tiers in precedence order
// @Tags         parcel
// @Produce      json
// @Success      200 {object} APIResponse[parcelapp.TierTableResponse]
// @Router       /parcel/tiers [get]
func (h *ParcelHandler) GetTiers(c *gin.Context) {
	h.Success(c, h.quoteService.Tiers())
}

// IssueFormTokens godoc
// @ID           issueParcelFormTokens
// @Summary      Issue anti-forgery tokens for the parcel form
// @Tags         parcel
// @Produce      json
// @Success      200 {object} APIResponse[parcelapp.FormTokensResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /parcel/form-tokens [get]
func (h *ParcelHandler) IssueFormTokens(c *gin.Context) {
	tokens, err := h.quoteService.IssueFormTokens(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tokens)
}

// Quote godoc
// @ID           quoteParcel
// @Summary      Price a parcel
// @Description  Prices one parcel from raw measurements. Accepts JSON or form data.
// @Tags         parcel
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Success      200 {object} APIResponse[parcelapp.QuoteResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /parcel/quote [post]
func (h *ParcelHandler) Quote(c *gin.Context) {
	var req parcelapp.QuoteRequest
	if !middleware.Bind(c, &req) {
		return
	}

	quote, err := h.quoteService.Quote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

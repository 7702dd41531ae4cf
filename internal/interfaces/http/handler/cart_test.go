package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	cartapp "github.com/parcelcart/backend/internal/application/cart"
	"github.com/parcelcart/backend/internal/infrastructure/auth"
	"github.com/parcelcart/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartHandler_Create(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("default currency without body", func(t *testing.T) {
		w := env.do(http.MethodPost, "/carts", nil, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := decode[cartapp.CartResponse](t, w)
		assert.Equal(t, "EUR", resp.Data.Currency)
		assert.Zero(t, resp.Data.LineCount)
	})

	t.Run("requested currency", func(t *testing.T) {
		w := env.postJSON("/carts", `{"currency":"usd"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "USD", decode[cartapp.CartResponse](t, w).Data.Currency)
	})

	t.Run("unknown currency", func(t *testing.T) {
		w := env.postJSON("/carts", `{"currency":"ZZZZ"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decode[any](t, w).Error.Code)
	})
}

func TestCartHandler_AddItem(t *testing.T) {
	env := setupTestEnv(t)
	c := env.createCart(t)
	path := "/carts/" + c.ID.String() + "/items"

	first := env.postForm(path, parcelForm())
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	second := env.postForm(path, parcelForm())
	require.Equal(t, http.StatusCreated, second.Code, second.Body.String())

	firstResp := decode[cartapp.AddItemResponse](t, first)
	secondResp := decode[cartapp.AddItemResponse](t, second)
	assert.NotEqual(t, firstResp.Data.LineKey, secondResp.Data.LineKey)

	cart := secondResp.Data.Cart
	require.Equal(t, 2, cart.LineCount)
	for _, line := range cart.Lines {
		assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(62)))
		assert.NotEmpty(t, line.ParcelLineID)
		assert.Len(t, line.Summary, 8)
	}
	assert.Equal(t, "€124.00", cart.FormattedTotal)

	get := env.do(http.MethodGet, "/carts/"+c.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, 2, decode[cartapp.CartResponse](t, get).Data.LineCount)
}

func TestCartHandler_AddItem_Rejections(t *testing.T) {
	env := setupTestEnv(t)
	c := env.createCart(t)
	path := "/carts/" + c.ID.String() + "/items"

	with := func(key, value string) url.Values {
		form := parcelForm()
		form.Set(key, value)
		return form
	}

	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantCode   string
	}{
		{"missing category", with("category", ""), http.StatusBadRequest, dto.ErrCodeMissingField},
		{"markup only description", with("description", "<b></b>"), http.StatusBadRequest, dto.ErrCodeMissingField},
		{"non numeric length", with("length_cm", "abc"), http.StatusBadRequest, dto.ErrCodeInvalidNumeric},
		{"over the weight limit", with("weight_kg", "40"), http.StatusUnprocessableEntity, dto.ErrCodeOutOfBounds},
		{"other product", with("product_id", "sku-1"), http.StatusUnprocessableEntity, dto.ErrCodeProductNotSupported},
		{"missing product", with("product_id", ""), http.StatusBadRequest, dto.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.postForm(path, tt.form)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, decode[any](t, w).Error.Code)
		})
	}

	get := env.do(http.MethodGet, "/carts/"+c.ID.String(), nil, nil)
	assert.Zero(t, decode[cartapp.CartResponse](t, get).Data.LineCount)
}

func TestCartHandler_AddItem_FormToken(t *testing.T) {
	env := setupTestEnv(t, requireTokens)
	c := env.createCart(t)
	path := "/carts/" + c.ID.String() + "/items"

	w := env.postForm(path, parcelForm())
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrCodeSecurityCheckFailed, decode[any](t, w).Error.Code)

	quoteToken, err := env.tokens.Issue(auth.ActionQuote)
	require.NoError(t, err)
	form := parcelForm()
	form.Set("form_token", quoteToken.Token)
	w = env.postForm(path, form)
	assert.Equal(t, http.StatusForbidden, w.Code)

	cartToken, err := env.tokens.Issue(auth.ActionAddToCart)
	require.NoError(t, err)
	form.Set("form_token", cartToken.Token)
	w = env.postForm(path, form)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCartHandler_RemoveLine(t *testing.T) {
	env := setupTestEnv(t)
	c := env.createCart(t)

	added := env.postForm("/carts/"+c.ID.String()+"/items", parcelForm())
	require.Equal(t, http.StatusCreated, added.Code)
	key := decode[cartapp.AddItemResponse](t, added).Data.LineKey

	w := env.do(http.MethodDelete, "/carts/"+c.ID.String()+"/items/"+key, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Zero(t, decode[cartapp.CartResponse](t, w).Data.LineCount)

	w = env.do(http.MethodDelete, "/carts/"+c.ID.String()+"/items/"+key, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartHandler_InvalidIDs(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/carts/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid cart ID format", decode[any](t, w).Error.Message)

	w = env.do(http.MethodGet, "/carts/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/orders/nope", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_Checkout(t *testing.T) {
	env := setupTestEnv(t)
	c := env.createCart(t)
	require.Equal(t, http.StatusCreated, env.postForm("/carts/"+c.ID.String()+"/items", parcelForm()).Code)

	header := http.Header{IdempotencyKeyHeader: {"checkout-1"}}
	w := env.do(http.MethodPost, "/carts/"+c.ID.String()+"/checkout", nil, header)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	order := decode[cartapp.OrderResponse](t, w).Data
	assert.Equal(t, "PLACED", order.Status)
	assert.Equal(t, "€62.00", order.FormattedTotal)
	require.Len(t, order.Lines, 1)
	assert.NotEmpty(t, order.Lines[0].Meta)

	t.Run("replayed key", func(t *testing.T) {
		w := env.do(http.MethodPost, "/carts/"+c.ID.String()+"/checkout", nil, header)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeDuplicateRequest, decode[any](t, w).Error.Code)
	})

	t.Run("cart is emptied", func(t *testing.T) {
		w := env.do(http.MethodPost, "/carts/"+c.ID.String()+"/checkout", nil, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, decode[any](t, w).Error.Code)
	})

	t.Run("order can be read back", func(t *testing.T) {
		w := env.do(http.MethodGet, "/orders/"+order.ID.String(), nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, order.ID, decode[cartapp.OrderResponse](t, w).Data.ID)
	})

	t.Run("oversized key", func(t *testing.T) {
		long := make([]byte, maxIdempotencyKeyLength+1)
		for i := range long {
			long[i] = 'k'
		}
		w := env.do(http.MethodPost, "/carts/"+c.ID.String()+"/checkout", nil,
			http.Header{IdempotencyKeyHeader: {string(long)}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

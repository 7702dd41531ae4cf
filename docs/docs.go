// Package docs registers the OpenAPI document served under /swagger.
// Keep it in step with the handler annotations; swag init -g cmd/server/main.go
// regenerates it.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/parcel/tiers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["parcel"],
                "summary": "List the parcel tier table",
                "description": "Returns the pricing tiers in precedence order",
                "operationId": "getParcelTiers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/parcel.TierTableResponse"}}
                }
            }
        },
        "/parcel/form-tokens": {
            "get": {
                "produces": ["application/json"],
                "tags": ["parcel"],
                "summary": "Issue anti-forgery tokens for the parcel form",
                "operationId": "issueParcelFormTokens",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/parcel.FormTokensResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/parcel/quote": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["parcel"],
                "summary": "Price a parcel",
                "description": "Prices one parcel from raw measurements. Accepts JSON or form data.",
                "operationId": "quoteParcel",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/parcel.QuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/parcel.QuoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/carts": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Open a cart",
                "operationId": "createCart",
                "parameters": [
                    {"name": "request", "in": "body", "schema": {"$ref": "#/definitions/cart.CreateCartRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/cart.CartResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/carts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Get a cart with recalculated totals",
                "operationId": "getCart",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid", "description": "Cart ID"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.CartResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/carts/{id}/items": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Add a parcel to the cart",
                "description": "Each accepted submission becomes its own cart line",
                "operationId": "addCartItem",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid", "description": "Cart ID"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cart.AddItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/cart.AddItemResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/carts/{id}/items/{key}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Remove a cart line",
                "operationId": "removeCartLine",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid", "description": "Cart ID"},
                    {"name": "key", "in": "path", "required": true, "type": "string", "description": "Line key"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.CartResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/carts/{id}/checkout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Place an order from the cart",
                "operationId": "checkoutCart",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid", "description": "Cart ID"},
                    {"name": "Idempotency-Key", "in": "header", "type": "string", "description": "Client idempotency key"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/cart.OrderResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get a placed order",
                "operationId": "getOrder",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid", "description": "Order ID"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.OrderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/system/info": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Service information",
                "description": "Version, uptime and the active parcel pricing setup",
                "operationId": "getSystemSystemInfo",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SystemInfoResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/dto.ErrorInfo"}
            }
        },
        "dto.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "ERR_OUT_OF_BOUNDS"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/dto.ValidationDetail"}}
            }
        },
        "dto.ValidationDetail": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "parcel.QuoteRequest": {
            "type": "object",
            "properties": {
                "length_cm": {"type": "string", "example": "50"},
                "width_cm": {"type": "string", "example": "50"},
                "height_cm": {"type": "string", "example": "25"},
                "weight_kg": {"type": "string", "example": "4"},
                "form_token": {"type": "string"}
            }
        },
        "parcel.QuoteResponse": {
            "type": "object",
            "properties": {
                "unit_price": {"type": "number"},
                "formatted_price": {"type": "string"},
                "volume_m3": {"type": "number"},
                "currency": {"type": "string"}
            }
        },
        "parcel.TierResponse": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "max_weight_kg": {"type": "number"},
                "max_volume_m3": {"type": "number"},
                "base_price": {"type": "number"},
                "formatted_price": {"type": "string"}
            }
        },
        "parcel.TierTableResponse": {
            "type": "object",
            "properties": {
                "product_id": {"type": "string"},
                "currency": {"type": "string"},
                "currency_symbol": {"type": "string"},
                "tiers": {"type": "array", "items": {"$ref": "#/definitions/parcel.TierResponse"}}
            }
        },
        "parcel.FormTokensResponse": {
            "type": "object",
            "properties": {
                "quote": {"type": "object"},
                "add_to_cart": {"type": "object"}
            }
        },
        "parcel.MetaPair": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "cart.CreateCartRequest": {
            "type": "object",
            "properties": {
                "currency": {"type": "string", "example": "GBP"}
            }
        },
        "cart.AddItemRequest": {
            "type": "object",
            "required": ["product_id"],
            "properties": {
                "product_id": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "length_cm": {"type": "string"},
                "width_cm": {"type": "string"},
                "height_cm": {"type": "string"},
                "weight_kg": {"type": "string"},
                "units": {"type": "string"},
                "fragile": {"type": "string"},
                "form_token": {"type": "string"}
            }
        },
        "cart.CartLineResponse": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "product_id": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "number"},
                "line_total": {"type": "number"},
                "parcel_line_id": {"type": "string"},
                "summary": {"type": "array", "items": {"$ref": "#/definitions/parcel.MetaPair"}},
                "added_at": {"type": "string", "format": "date-time"}
            }
        },
        "cart.CartResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "currency": {"type": "string"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/cart.CartLineResponse"}},
                "line_count": {"type": "integer"},
                "total": {"type": "number"},
                "formatted_total": {"type": "string"},
                "version": {"type": "integer"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "cart.AddItemResponse": {
            "type": "object",
            "properties": {
                "line_key": {"type": "string"},
                "cart": {"$ref": "#/definitions/cart.CartResponse"}
            }
        },
        "cart.OrderLineResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "product_id": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "number"},
                "amount": {"type": "number"},
                "meta": {"type": "array", "items": {"$ref": "#/definitions/parcel.MetaPair"}}
            }
        },
        "cart.OrderResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "cart_id": {"type": "string", "format": "uuid"},
                "status": {"type": "string"},
                "currency": {"type": "string"},
                "total_amount": {"type": "number"},
                "formatted_total": {"type": "string"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/cart.OrderLineResponse"}},
                "placed_at": {"type": "string", "format": "date-time"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "handler.SystemInfoResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "parcelcart"},
                "version": {"type": "string", "example": "1.0.0"},
                "go_version": {"type": "string"},
                "started_at": {"type": "string"},
                "uptime_seconds": {"type": "integer"},
                "parcel": {
                    "type": "object",
                    "properties": {
                        "product_id": {"type": "string", "example": "2898"},
                        "currency": {"type": "string", "example": "EUR"},
                        "tiers": {"type": "integer", "example": 4}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Parcel Cart API",
	Description:      "Parcel tier pricing with cart and order line binding",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

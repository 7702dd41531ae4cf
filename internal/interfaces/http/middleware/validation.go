package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/parcelcart/backend/internal/domain/shared/valueobject"
	"github.com/parcelcart/backend/internal/interfaces/http/dto"
)

var validatorSetup sync.Once

// SetupValidator registers the "currency" tag on gin's validator and makes
// error field names follow the json tag, or the form tag when json is unset.
func SetupValidator() {
	validatorSetup.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(wireName)
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			_, err := valueobject.ParseCurrency(fl.Field().String())
			return err == nil
		})
	})
}

func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return ""
}

// Bind decodes the request into obj with gin's content-type binding. On
// failure it writes the 400 and returns false.
func Bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		HandleValidationError(c, err)
		return false
	}
	return true
}

// HandleValidationError writes a 400 for a failed bind. Tag failures become
// ERR_VALIDATION with one detail per field; anything else is a malformed body.
func HandleValidationError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, FormatValidationErrors(fieldErrs, GetRequestID(c)))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeBadRequest, "Malformed request body", GetRequestID(c)))
}

// FormatValidationErrors builds the ERR_VALIDATION envelope for err.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var fieldErrs validator.ValidationErrors
	errors.As(err, &fieldErrs)

	details := make([]dto.ValidationDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: getValidationMessage(fe)})
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

var fixedMessages = map[string]string{
	"required": "This field is required",
	"uuid":     "Invalid UUID format",
	"currency": "Must be an ISO 4217 currency code",
}

var boundMessages = map[string]string{
	"oneof": "Must be one of: ",
	"gte":   "Must be greater than or equal to ",
	"lte":   "Must be less than or equal to ",
	"gt":    "Must be greater than ",
	"lt":    "Must be less than ",
}

func getValidationMessage(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}
	if prefix, ok := boundMessages[fe.Tag()]; ok {
		return prefix + fe.Param()
	}

	suffix := ""
	if fe.Kind() == reflect.String {
		suffix = " characters"
	}
	switch fe.Tag() {
	case "min":
		return "Must be at least " + fe.Param() + suffix
	case "max":
		return "Must be at most " + fe.Param() + suffix
	case "len":
		return "Must be exactly " + fe.Param() + suffix
	}
	return "Invalid value"
}

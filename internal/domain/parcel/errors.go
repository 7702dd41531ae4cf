package parcel

import "github.com/parcelcart/backend/internal/domain/shared"

// Rejection codes. Every rejection is user-correctable.
const (
	CodeMissingField        = "MISSING_FIELD"
	CodeInvalidNumeric      = "INVALID_NUMERIC"
	CodeOutOfBounds         = "OUT_OF_BOUNDS"
	CodeSecurityCheckFailed = "SECURITY_CHECK_FAILED"
	CodeProductNotSupported = "PRODUCT_NOT_SUPPORTED"
)

var (
	ErrMissingField        = shared.NewDomainError(CodeMissingField, "A required field is missing.")
	ErrCategoryRequired    = ErrMissingField.WithMessage("Please choose a parcel category.")
	ErrDescriptionRequired = ErrMissingField.WithMessage("Please enter a description of the parcel.")
	ErrInvalidDimensions   = shared.NewDomainError(CodeInvalidNumeric, "Please enter valid dimensions and weight.")
	ErrOutOfBounds         = shared.NewDomainError(CodeOutOfBounds, "This parcel is outside the allowed size/weight limits.")

	ErrSecurityCheckFailed = shared.NewDomainError(CodeSecurityCheckFailed, "Security check failed.")
	// ErrStaleForm is the add-to-cart flavour of a failed anti-forgery check
	ErrStaleForm = ErrSecurityCheckFailed.WithMessage("Please refresh the page and try again.")

	ErrProductNotSupported = shared.NewDomainError(CodeProductNotSupported, "This product does not accept parcel details.")
)

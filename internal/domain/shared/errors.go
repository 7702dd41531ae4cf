package shared

// DomainError is a business failure with a stable code. The HTTP layer maps
// the code to a status; Message is safe to show to the customer.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// NewDomainError declares a sentinel.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func (e *DomainError) Error() string { return e.Message }

// Unwrap exposes the infrastructure error recorded by Wrap.
func (e *DomainError) Unwrap() error { return e.cause }

// Is matches any DomainError with the same code, so errors.Is(err, ErrNotFound)
// holds for specialised copies too.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// WithMessage copies e with a customer-facing message for one situation.
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{Code: e.Code, Message: message, cause: e.cause}
}

// Wrap copies e and records cause for logs and errors.As.
func (e *DomainError) Wrap(cause error) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, cause: cause}
}

var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrDuplicateRequest    = NewDomainError("DUPLICATE_REQUEST", "This request has already been processed")
)

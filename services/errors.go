package services

import (
	"net/http"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
)

// ErrorKind tags every terminal outcome of the payment pipeline. Each kind
// maps to exactly one HTTP status at the controller boundary.
type ErrorKind int

const (
	ErrKindValidation ErrorKind = iota + 1
	ErrKindRateLimited
	ErrKindCustomPricing
	ErrKindAmountLimit
	ErrKindPaymentProcessor
	ErrKindUnknown
)

// PaymentError is the tagged failure variant returned by the pipeline.
// ErrKindUnknown messages are logged server-side and never shown verbatim
// to the client.
type PaymentError struct {
	Kind    ErrorKind
	Message string
	Details []models.FieldError // populated for ErrKindValidation only
}

func (e *PaymentError) Error() string { return e.Message }

func validationError(details []models.FieldError) *PaymentError {
	return &PaymentError{
		Kind:    ErrKindValidation,
		Message: "Invalid order request",
		Details: details,
	}
}

// ServiceError is a typed error with an HTTP status code, used by the
// gallery, blog, contact, booking and retouch services.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// ProviderError is returned by PaymentProvider implementations when the
// processor rejected the request. StatusCode carries the processor's HTTP
// status so the pipeline can classify 4xx rejections separately from
// infrastructure failures.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string { return e.Message }

// StatusForKind maps a pipeline error kind to its HTTP status. Custom
// pricing and the amount ceiling are client-resolvable 400s, not 5xx.
func StatusForKind(kind ErrorKind) int {
	switch kind {
	case ErrKindValidation, ErrKindCustomPricing, ErrKindAmountLimit, ErrKindPaymentProcessor:
		return http.StatusBadRequest
	case ErrKindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

package services

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"

	"github.com/go-playground/validator/v10"
)

// RequestValidator schema-checks inbound payloads. It always collects the
// full violation list so the client can fix everything in one round trip.
type RequestValidator struct {
	validate *validator.Validate
	pricing  PricingConfig
}

func NewRequestValidator(pricing PricingConfig) *RequestValidator {
	v := validator.New()

	// report json field names, not Go struct names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RequestValidator{validate: v, pricing: pricing}
}

// ValidateOrder checks an order request field by field. A nil return means
// the request is valid. Unknown service ids are a validation error rather
// than silently pricing to zero; the custom-priced catalog entries still
// pass through to the quote path.
func (rv *RequestValidator) ValidateOrder(req *models.OrderRequest) []models.FieldError {
	violations := rv.structViolations(req)

	if req.ServiceID != "" && !rv.pricing.Known(req.ServiceID) {
		violations = append(violations, models.FieldError{
			Field:   "serviceId",
			Message: "unknown service",
		})
	}

	return violations
}

// ValidateContact checks a contact form submission.
func (rv *RequestValidator) ValidateContact(req *models.ContactRequest) []models.FieldError {
	return rv.structViolations(req)
}

// ValidateBooking checks a booking request, including that the session type
// exists in the catalog.
func (rv *RequestValidator) ValidateBooking(req *models.BookingRequest) []models.FieldError {
	violations := rv.structViolations(req)

	if req.SessionType != "" && !rv.pricing.Known(req.SessionType) {
		violations = append(violations, models.FieldError{
			Field:   "sessionType",
			Message: "unknown session type",
		})
	}

	return violations
}

func (rv *RequestValidator) structViolations(req interface{}) []models.FieldError {
	err := rv.validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// validator.InvalidValidationError: a nil or non-struct argument
		return []models.FieldError{{Field: "", Message: "malformed request"}}
	}

	violations := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, models.FieldError{
			Field:   fieldPath(fe),
			Message: violationMessage(fe),
		})
	}
	return violations
}

// fieldPath turns "OrderRequest.customerInfo.email" into "customerInfo.email".
func fieldPath(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

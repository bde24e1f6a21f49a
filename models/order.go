package models

// CustomerInfo is the customer block of a retouch order or booking request.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company" validate:"omitempty,max=100"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
}

// OrderRequest is the untrusted payload of POST /payment-intents. It is
// validated once and never mutated afterwards.
type OrderRequest struct {
	ServiceID    string       `json:"serviceId" validate:"required"`
	Quantity     int          `json:"quantity" validate:"required,gte=1,lte=50"`
	RushDelivery bool         `json:"rushDelivery"`
	CustomerInfo CustomerInfo `json:"customerInfo" validate:"required"`
}

// FieldError is a single validation violation, reported as a
// (field path, message) pair so the client can show every problem at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PaymentIntentResponse is what a successful pipeline run returns to the
// client; the client secret drives the Stripe confirmation on the front end.
type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

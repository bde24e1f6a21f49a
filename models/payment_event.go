package models

import "time"

// PaymentEvent is the SNS payload published when a payment reaches a final
// state. Amount is in minor units; the raw customer email is never included.
type PaymentEvent struct {
	Type              string    `json:"type"` // "payment_succeeded" or "payment_failed"
	PaymentID         string    `json:"payment_id"`
	ServiceID         string    `json:"service_id"`
	Quantity          int       `json:"quantity"`
	RushDelivery      bool      `json:"rush_delivery"`
	Amount            int64     `json:"amount"`
	Currency          string    `json:"currency"`
	CustomerEmailHash string    `json:"customer_email_hash"`
	Timestamp         time.Time `json:"timestamp"` // UTC event time
}

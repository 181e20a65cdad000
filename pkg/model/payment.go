package model

import (
	"time"
)

// PaymentIntent carries the processor's client secret back to the frontend,
// which completes the card flow against the processor directly.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

// Payment records a completed Stripe charge. It is written exactly once and
// never mutated; the referenced booking is flipped to paid in the same
// transaction.
type Payment struct {
	ID            string    `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BookingID     string    `json:"bookingId" bson:"bookingId" validate:"required,mongodb"`
	Email         string    `json:"email" bson:"email" validate:"required,email"`
	Price         float64   `json:"price" bson:"price" validate:"min=0"`
	TransactionID string    `json:"transactionId" bson:"transactionId" validate:"required"`
	CreatedAt     time.Time `json:"createdAt,omitempty" bson:"createdAt"`
}

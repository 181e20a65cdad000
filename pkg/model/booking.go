package model

import (
	"time"
)

type Booking struct {
	ID              string    `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	AppointmentDate string    `json:"appointmentDate" bson:"appointmentDate" validate:"required"`
	Email           string    `json:"email" bson:"email" validate:"required,email"`
	PatientName     string    `json:"patient,omitempty" bson:"patient,omitempty" validate:"omitempty,max=100"`
	Phone           string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Treatment       string    `json:"treatment" bson:"treatment" validate:"required,min=2,max=100"`
	Slot            string    `json:"slot" bson:"slot" validate:"required"`
	Price           float64   `json:"price" bson:"price" validate:"min=0"`
	Paid            bool      `json:"paid" bson:"paid"`
	TransactionID   string    `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty" bson:"createdAt"`
}

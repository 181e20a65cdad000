package model

import (
	"time"
)

type Doctor struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Specialty string    `json:"specialty" bson:"specialty" validate:"required,min=2,max=100"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty" validate:"omitempty,url"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt"`
}

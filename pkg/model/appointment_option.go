package model

// AppointmentOption is one treatment from the catalog. The catalog is
// maintained out of band; this service only reads it.
type AppointmentOption struct {
	ID    string   `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name  string   `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Price float64  `json:"price" bson:"price" validate:"min=0"`
	Slots []string `json:"slots" bson:"slots" validate:"required"`
}

// SpecialtyOption is the name-only projection of the catalog used by
// client-side treatment pickers.
type SpecialtyOption struct {
	ID   string `json:"_id,omitempty" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
}

package model

import (
	"time"
)

const RoleAdmin = "admin"

type User struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=100"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Role      string    `json:"role,omitempty" bson:"role,omitempty" validate:"omitempty,oneof=admin"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt"`
}

// IsAdmin reports whether the user carries the admin role. A missing role
// attribute is not an error, it just means a regular patient account.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

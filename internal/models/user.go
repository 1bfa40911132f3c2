package models

import "time"

// User roles
const (
	RoleStandard      = "standard"
	RoleAdministrador = "administrador"
)

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Points    int64     `gorm:"not null;default:0" json:"points"`
	Role      string    `gorm:"not null;default:'standard'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the administrador role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdministrador
}

package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	Phone        *string `gorm:"size:20;uniqueIndex" json:"phone"`
	Email        string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`

	Category string `gorm:"size:20;not null" json:"category"`
	Initials string `gorm:"size:3;uniqueIndex;not null" json:"initials"`
	Role     string `gorm:"size:20;default:'user'" json:"role"`

	// Access window. Admins never carry an expiry date.
	AccessExpiry *time.Time `gorm:"column:fin_acceso;type:date" json:"fin_acceso"`
	Active       bool       `gorm:"column:activo;default:true" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

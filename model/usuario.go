package model

import (
	"time"
)

// Usuario is an account that can log into the API
type Usuario struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Email              string     `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	PasswordHash       string     `gorm:"not null" json:"-"` // Never expose password in JSON
	Nombre             string     `gorm:"type:varchar(100)" json:"nombre"`
	Apellido           string     `gorm:"type:varchar(100)" json:"apellido"`
	Legajo             int        `json:"legajo"`
	Documento          int        `json:"documento"`
	RolID              *uint      `gorm:"index" json:"rol"`
	IsActive           bool       `gorm:"not null" json:"is_active"`
	IsStaff            bool       `gorm:"not null" json:"is_staff"`
	HasChangedPassword bool       `gorm:"not null" json:"has_changed_password"`
	LastLogin          *time.Time `json:"last_login"`
	TokenVersion       int        `gorm:"default:0" json:"-"` // Increment to invalidate all user tokens

	// Relationships
	Rol            *Rol                `gorm:"foreignKey:RolID;constraint:OnDelete:SET NULL" json:"-"`
	TokenBlacklist []JWTTokenBlacklist `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// RoleName returns the rol descripcion, or "" when the usuario has none.
func (u *Usuario) RoleName() string {
	if u.Rol == nil {
		return ""
	}
	return u.Rol.Descripcion
}

// IsAdmin reports whether the usuario may manage accounts.
func (u *Usuario) IsAdmin() bool {
	return u.IsStaff || u.RoleName() == RolAdministrador
}

// FullName joins nombre and apellido.
func (u *Usuario) FullName() string {
	switch {
	case u.Nombre == "":
		return u.Apellido
	case u.Apellido == "":
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellido
}

package model

import "time"

// Built-in roles created by the seeder
const (
	RolAdministrador = "Administrador"
	RolDepartamento  = "Departamento"
	RolDocente       = "Docente"
)

// Rol groups usuarios by what they may do in the frontend
type Rol struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Descripcion string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"descripcion"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Rol) TableName() string {
	return "roles"
}

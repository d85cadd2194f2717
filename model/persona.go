package model

import (
	"time"
)

// Persona is the identity shared by every personnel role
type Persona struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Nombre        string    `gorm:"type:varchar(100);not null" json:"nombre"`
	Apellido      string    `gorm:"type:varchar(100);not null;index" json:"apellido"`
	Telefono      string    `gorm:"type:varchar(50)" json:"telefono"`
	Dni           string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"dni"`
	Estado        Estado    `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`
	Email         string    `gorm:"type:varchar(254)" json:"email"`
	Interno       string    `gorm:"type:varchar(20)" json:"interno"`
	Legajo        string    `gorm:"type:varchar(20);index" json:"legajo"`
	TituloID      *uint     `gorm:"index" json:"titulo"`
	FechaCreacion time.Time `gorm:"autoCreateTime" json:"fecha_creacion"`

	// Relationships
	Titulo *TipoTitulo `gorm:"foreignKey:TituloID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Persona) TableName() string {
	return "personas"
}

// NombreCompleto renders "Apellido, Nombre" as listed in the admin.
func (p *Persona) NombreCompleto() string {
	if p == nil {
		return ""
	}
	return p.Apellido + ", " + p.Nombre
}

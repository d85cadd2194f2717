package model

import (
	"time"
)

// JefeDepartamento designates a Jefe to head a Departamento
type JefeDepartamento struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	DepartamentoID uint       `gorm:"not null;index" json:"departamento"`
	JefeID         uint       `gorm:"not null;index" json:"jefe"`
	ResolucionID   uint       `gorm:"not null;index" json:"resolucion"`
	Observaciones  string     `gorm:"type:varchar(500)" json:"observaciones"`
	Estado         Estado     `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`
	FechaDeInicio  *time.Time `json:"fecha_de_inicio"`
	FechaDeFin     *time.Time `gorm:"index" json:"fecha_de_fin"`
	Notificado     bool       `gorm:"not null" json:"notificado"`

	// Relationships
	Departamento *Departamento `gorm:"foreignKey:DepartamentoID;constraint:OnDelete:CASCADE" json:"-"`
	Jefe         *Jefe         `gorm:"foreignKey:JefeID;constraint:OnDelete:CASCADE" json:"-"`
	Resolucion   *Resolucion   `gorm:"foreignKey:ResolucionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (JefeDepartamento) TableName() string {
	return "jefe_departamentos"
}

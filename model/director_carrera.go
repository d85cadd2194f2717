package model

import (
	"time"
)

// DirectorCarrera designates a Director to lead a Carrera
type DirectorCarrera struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CarreraID     uint       `gorm:"not null;index" json:"carrera"`
	DirectorID    uint       `gorm:"not null;index" json:"director"`
	ResolucionID  uint       `gorm:"not null;index" json:"resolucion"`
	Observaciones string     `gorm:"type:varchar(500)" json:"observaciones"`
	Estado        Estado     `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`
	FechaDeInicio *time.Time `json:"fecha_de_inicio"`
	FechaDeFin    *time.Time `json:"fecha_de_fin"`

	// Relationships
	Carrera    *Carrera    `gorm:"foreignKey:CarreraID;constraint:OnDelete:CASCADE" json:"-"`
	Director   *Director   `gorm:"foreignKey:DirectorID;constraint:OnDelete:CASCADE" json:"-"`
	Resolucion *Resolucion `gorm:"foreignKey:ResolucionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (DirectorCarrera) TableName() string {
	return "director_carreras"
}

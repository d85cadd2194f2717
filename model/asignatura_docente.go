package model

import (
	"time"
)

// AsignaturaDocente designates a Docente to teach an Asignatura under a Resolucion
type AsignaturaDocente struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	AsignaturaID       uint       `gorm:"not null;index" json:"asignatura"`
	DocenteID          uint       `gorm:"not null;index" json:"docente"`
	ResolucionID       uint       `gorm:"not null;index" json:"resolucion"`
	Condicion          string     `gorm:"type:varchar(50)" json:"condicion"`
	Cargo              string     `gorm:"type:varchar(50)" json:"cargo"`
	Dedicacion         string     `gorm:"type:varchar(50)" json:"dedicacion"`
	Observaciones      string     `gorm:"type:varchar(500)" json:"observaciones"`
	Estado             Estado     `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`
	FechaDeInicio      *time.Time `json:"fecha_de_inicio"`
	FechaDeVencimiento *time.Time `gorm:"index" json:"fecha_de_vencimiento"`
	Notificado         bool       `gorm:"not null" json:"notificado"`

	// Relationships
	Asignatura *Asignatura `gorm:"foreignKey:AsignaturaID;constraint:OnDelete:CASCADE" json:"-"`
	Docente    *Docente    `gorm:"foreignKey:DocenteID;constraint:OnDelete:CASCADE" json:"-"`
	Resolucion *Resolucion `gorm:"foreignKey:ResolucionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AsignaturaDocente) TableName() string {
	return "asignatura_docentes"
}

package model

import (
	"time"

	"gorm.io/datatypes"
)

// Notificacion tipos
const (
	NotificacionInfo        = "info"
	NotificacionVencimiento = "vencimiento"
)

// Notificacion is a message addressed to a Persona
type Notificacion struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	PersonaID     uint           `gorm:"not null;index" json:"persona"`
	Mensaje       string         `gorm:"type:text;not null" json:"mensaje"`
	Tipo          string         `gorm:"type:varchar(30);not null;default:'info'" json:"tipo"`
	Leido         bool           `gorm:"not null;index" json:"leido"`
	FechaCreacion time.Time      `gorm:"autoCreateTime" json:"fecha_creacion"`
	Metadata      datatypes.JSON `json:"metadata,omitempty"`

	// Relationships
	Persona *Persona `gorm:"foreignKey:PersonaID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Notificacion) TableName() string {
	return "notificaciones"
}

// NotificacionMetadata links a vencimiento notice to its designation
type NotificacionMetadata struct {
	Designacion   string `json:"designacion"` // asignatura_docente, jefe_departamento
	DesignacionID uint   `json:"designacion_id"`
	Vencimiento   string `json:"vencimiento"`
}

package model

import (
	"time"
)

// Resolucion issuers
const (
	ResolucionRector           = "Rector"
	ResolucionDecano           = "Decano"
	ResolucionConsejoSuperior  = "Consejo_Superior"
	ResolucionConsejoDirectivo = "Consejo_Directivo"
)

// ResolucionTipos lists the accepted Resolucion.Tipo values
var ResolucionTipos = []string{ResolucionRector, ResolucionDecano, ResolucionConsejoSuperior, ResolucionConsejoDirectivo}

// Resolucion is the administrative act backing a designation
type Resolucion struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Nexpediente   string     `gorm:"type:varchar(50);not null;index" json:"nexpediente"`
	Nresolucion   string     `gorm:"type:varchar(50);not null;index" json:"nresolucion"`
	Tipo          string     `gorm:"type:varchar(30);not null" json:"tipo"`
	FechaCreacion time.Time  `gorm:"autoCreateTime" json:"fecha_creacion"`
	Fecha         *time.Time `json:"fecha"`
	Adjunto       string     `gorm:"type:varchar(255)" json:"adjunto"` // media key of the PDF
	Observaciones string     `gorm:"type:varchar(500)" json:"observaciones"`
	Estado        Estado     `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`
}

func (Resolucion) TableName() string {
	return "resoluciones"
}

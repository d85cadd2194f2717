package model

// NoDocente is a non-teaching staff member
type NoDocente struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	PersonaID     uint   `gorm:"not null;index" json:"persona"`
	Observaciones string `gorm:"type:varchar(500)" json:"observaciones"`
	Estado        Estado `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`

	// Relationships
	Persona *Persona `gorm:"foreignKey:PersonaID;constraint:OnDelete:CASCADE" json:"-"`
}

func (NoDocente) TableName() string {
	return "no_docentes"
}

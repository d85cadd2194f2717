package model

// Docente is a teaching staff member
type Docente struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	PersonaID     uint   `gorm:"not null;index" json:"persona"`
	Observaciones string `gorm:"type:varchar(500)" json:"observaciones"`
	Estado        Estado `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`
	Dedicacion    string `gorm:"type:varchar(50)" json:"dedicacion"`

	// Relationships
	Persona *Persona `gorm:"foreignKey:PersonaID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Docente) TableName() string {
	return "docentes"
}

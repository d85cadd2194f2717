package model

// AsignaturaCarrera places an Asignatura in the plan of a Carrera
type AsignaturaCarrera struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	AsignaturaID uint   `gorm:"not null;uniqueIndex:idx_asignatura_carrera" json:"asignatura"`
	CarreraID    uint   `gorm:"not null;uniqueIndex:idx_asignatura_carrera" json:"carrera"`
	Estado       Estado `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`

	// Relationships
	Asignatura *Asignatura `gorm:"foreignKey:AsignaturaID;constraint:OnDelete:CASCADE" json:"-"`
	Carrera    *Carrera    `gorm:"foreignKey:CarreraID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AsignaturaCarrera) TableName() string {
	return "asignatura_carreras"
}

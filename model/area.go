package model

// Area is a subdivision of a Departamento
type Area struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	DepartamentoID uint   `gorm:"not null;index" json:"departamento"`
	Nombre         string `gorm:"type:varchar(150);not null" json:"nombre"`
	Estado         Estado `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`

	// Relationships
	Departamento *Departamento `gorm:"foreignKey:DepartamentoID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Area) TableName() string {
	return "areas"
}

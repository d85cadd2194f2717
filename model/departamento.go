package model

// Departamento is an academic department of the faculty
type Departamento struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Nombre   string `gorm:"type:varchar(150);uniqueIndex;not null" json:"nombre"`
	Telefono string `gorm:"type:varchar(50)" json:"telefono"`
	Estado   Estado `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`
	Interno  string `gorm:"type:varchar(20)" json:"interno"`
}

func (Departamento) TableName() string {
	return "departamentos"
}

package model

// Asignatura tipos
const (
	AsignaturaElectiva    = "Electiva"
	AsignaturaObligatoria = "Obligatoria"
)

// Asignatura is a subject taught by a Departamento
type Asignatura struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	AreaID         *uint  `gorm:"index" json:"area"`
	DepartamentoID uint   `gorm:"not null;index" json:"departamento"`
	Codigo         string `gorm:"type:varchar(20);not null;index" json:"codigo"`
	Nombre         string `gorm:"type:varchar(150);not null" json:"nombre"`
	Modulo         string `gorm:"type:varchar(50)" json:"modulo"`
	Programa       string `gorm:"type:varchar(255)" json:"programa"`
	Tipo           string `gorm:"type:varchar(20);not null" json:"tipo"`
	Estado         Estado `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`

	// Relationships
	Area         *Area         `gorm:"foreignKey:AreaID;constraint:OnDelete:SET NULL" json:"-"`
	Departamento *Departamento `gorm:"foreignKey:DepartamentoID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Asignatura) TableName() string {
	return "asignaturas"
}

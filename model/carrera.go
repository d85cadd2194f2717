package model

// Carrera tipos
const (
	CarreraGrado    = "Grado"
	CarreraPregrado = "Pregrado"
	CarreraPosgrado = "Posgrado"
)

// Carrera is a degree programme
type Carrera struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Nombre      string `gorm:"type:varchar(150);not null" json:"nombre"`
	Tipo        string `gorm:"type:varchar(20);not null" json:"tipo"`
	Planestudio string `gorm:"type:varchar(100)" json:"planestudio"`
	Sede        string `gorm:"type:varchar(100)" json:"sede"`
	Estado      Estado `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`
}

func (Carrera) TableName() string {
	return "carreras"
}

package model

// TipoTitulo is an academic degree a Persona can hold
type TipoTitulo struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Nombre      string `gorm:"type:varchar(100);not null" json:"nombre"`
	Descripcion string `gorm:"type:varchar(255)" json:"descripcion"`
	Estado      Estado `gorm:"type:varchar(1);not null;default:'1'" json:"estado"`
}

func (TipoTitulo) TableName() string {
	return "tipo_titulos"
}

package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// CarreraInput is the write side of a carrera
type CarreraInput struct {
	Nombre      string       `json:"nombre" validate:"required,max=150"`
	Tipo        string       `json:"tipo" validate:"required,oneof=Grado Pregrado Posgrado"`
	Planestudio string       `json:"planestudio" validate:"max=100"`
	Sede        string       `json:"sede" validate:"max=100"`
	Estado      model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
}

func (in *CarreraInput) Load(m *model.Carrera) {
	in.Nombre = m.Nombre
	in.Tipo = m.Tipo
	in.Planestudio = m.Planestudio
	in.Sede = m.Sede
	in.Estado = m.Estado
}

func (in *CarreraInput) Validate(*gorm.DB, uint) validation.Errors { return nil }

func (in *CarreraInput) Apply(m *model.Carrera) {
	m.Nombre = validation.SanitizeString(in.Nombre)
	m.Tipo = in.Tipo
	m.Planestudio = validation.SanitizeString(in.Planestudio)
	m.Sede = validation.SanitizeString(in.Sede)
	m.Estado = in.Estado.OrDefault()
}

// CarreraOutput is the wire shape of a carrera
type CarreraOutput struct {
	ID          uint         `json:"id"`
	Nombre      string       `json:"nombre"`
	Tipo        string       `json:"tipo"`
	Planestudio string       `json:"planestudio"`
	Sede        string       `json:"sede"`
	Estado      model.Estado `json:"estado"`
}

func NewCarrera(m *model.Carrera) *CarreraOutput {
	if m == nil {
		return nil
	}
	return &CarreraOutput{ID: m.ID, Nombre: m.Nombre, Tipo: m.Tipo, Planestudio: m.Planestudio, Sede: m.Sede, Estado: m.Estado}
}

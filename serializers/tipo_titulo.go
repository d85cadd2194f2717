package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// TipoTituloInput is the write side of a tipo de título
type TipoTituloInput struct {
	Nombre      string       `json:"nombre" validate:"required,max=100"`
	Descripcion string       `json:"descripcion" validate:"max=255"`
	Estado      model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
}

func (in *TipoTituloInput) Load(m *model.TipoTitulo) {
	in.Nombre = m.Nombre
	in.Descripcion = m.Descripcion
	in.Estado = m.Estado
}

func (in *TipoTituloInput) Validate(*gorm.DB, uint) validation.Errors { return nil }

func (in *TipoTituloInput) Apply(m *model.TipoTitulo) {
	m.Nombre = validation.SanitizeString(in.Nombre)
	m.Descripcion = validation.SanitizeText(in.Descripcion)
	m.Estado = in.Estado.OrDefault()
}

// TipoTituloOutput is the wire shape of a tipo de título
type TipoTituloOutput struct {
	ID          uint         `json:"id"`
	Nombre      string       `json:"nombre"`
	Descripcion string       `json:"descripcion"`
	Estado      model.Estado `json:"estado"`
}

// NewTipoTitulo renders m, nil for nil.
func NewTipoTitulo(m *model.TipoTitulo) *TipoTituloOutput {
	if m == nil {
		return nil
	}
	return &TipoTituloOutput{ID: m.ID, Nombre: m.Nombre, Descripcion: m.Descripcion, Estado: m.Estado}
}

package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// AreaInput is the write side of an area
type AreaInput struct {
	Departamento PK           `json:"departamento" validate:"required"`
	Nombre       string       `json:"nombre" validate:"required,max=150"`
	Estado       model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
}

func (in *AreaInput) Load(m *model.Area) {
	in.Departamento = PK(m.DepartamentoID)
	in.Nombre = m.Nombre
	in.Estado = m.Estado
}

func (in *AreaInput) Validate(db *gorm.DB, _ uint) validation.Errors {
	errs := validation.Errors{}
	checkPK(db, errs, "departamento", &model.Departamento{}, in.Departamento)
	return errs
}

func (in *AreaInput) Apply(m *model.Area) {
	m.DepartamentoID = uint(in.Departamento)
	m.Nombre = validation.SanitizeString(in.Nombre)
	m.Estado = in.Estado.OrDefault()
}

// AreaOutput is the wire shape of an area
type AreaOutput struct {
	ID           uint         `json:"id"`
	Departamento uint         `json:"departamento"`
	Nombre       string       `json:"nombre"`
	Estado       model.Estado `json:"estado"`
}

func NewArea(m *model.Area) *AreaOutput {
	if m == nil {
		return nil
	}
	return &AreaOutput{ID: m.ID, Departamento: m.DepartamentoID, Nombre: m.Nombre, Estado: m.Estado}
}

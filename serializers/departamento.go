package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// DepartamentoInput is the write side of a departamento
type DepartamentoInput struct {
	Nombre   string       `json:"nombre" validate:"required,max=150"`
	Telefono string       `json:"telefono" validate:"max=50"`
	Estado   model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
	Interno  string       `json:"interno" validate:"max=20"`
}

func (in *DepartamentoInput) Load(m *model.Departamento) {
	in.Nombre = m.Nombre
	in.Telefono = m.Telefono
	in.Estado = m.Estado
	in.Interno = m.Interno
}

func (in *DepartamentoInput) Validate(db *gorm.DB, id uint) validation.Errors {
	errs := validation.Errors{}
	checkUnique(db, errs, "nombre", "nombre", &model.Departamento{}, validation.SanitizeString(in.Nombre), id, "departamento")
	return errs
}

func (in *DepartamentoInput) Apply(m *model.Departamento) {
	m.Nombre = validation.SanitizeString(in.Nombre)
	m.Telefono = validation.SanitizeString(in.Telefono)
	m.Estado = in.Estado.OrDefault()
	m.Interno = validation.SanitizeString(in.Interno)
}

// DepartamentoOutput is the wire shape of a departamento
type DepartamentoOutput struct {
	ID       uint         `json:"id"`
	Nombre   string       `json:"nombre"`
	Telefono string       `json:"telefono"`
	Estado   model.Estado `json:"estado"`
	Interno  string       `json:"interno"`
}

func NewDepartamento(m *model.Departamento) *DepartamentoOutput {
	if m == nil {
		return nil
	}
	return &DepartamentoOutput{ID: m.ID, Nombre: m.Nombre, Telefono: m.Telefono, Estado: m.Estado, Interno: m.Interno}
}

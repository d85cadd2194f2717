package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// RolInput is the write side of a rol
type RolInput struct {
	Descripcion string `json:"descripcion" validate:"required,max=100"`
}

func (in *RolInput) Load(m *model.Rol) {
	in.Descripcion = m.Descripcion
}

func (in *RolInput) Validate(db *gorm.DB, id uint) validation.Errors {
	errs := validation.Errors{}
	checkUnique(db, errs, "descripcion", "descripcion", &model.Rol{}, validation.SanitizeString(in.Descripcion), id, "rol")
	return errs
}

func (in *RolInput) Apply(m *model.Rol) {
	m.Descripcion = validation.SanitizeString(in.Descripcion)
}

// RolOutput is the wire shape of a rol
type RolOutput struct {
	ID          uint   `json:"id"`
	Descripcion string `json:"descripcion"`
}

// NewRol renders m.
func NewRol(m *model.Rol) *RolOutput {
	if m == nil {
		return nil
	}
	return &RolOutput{ID: m.ID, Descripcion: m.Descripcion}
}

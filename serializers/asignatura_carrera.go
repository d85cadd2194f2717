package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// AsignaturaCarreraInput is the write side of an asignatura in a carrera plan
type AsignaturaCarreraInput struct {
	Asignatura PK           `json:"asignatura" validate:"required"`
	Carrera    PK           `json:"carrera" validate:"required"`
	Estado     model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
}

func (in *AsignaturaCarreraInput) Load(m *model.AsignaturaCarrera) {
	in.Asignatura = PK(m.AsignaturaID)
	in.Carrera = PK(m.CarreraID)
	in.Estado = m.Estado
}

func (in *AsignaturaCarreraInput) Validate(db *gorm.DB, id uint) validation.Errors {
	errs := validation.Errors{}
	checkPK(db, errs, "asignatura", &model.Asignatura{}, in.Asignatura)
	checkPK(db, errs, "carrera", &model.Carrera{}, in.Carrera)
	if len(errs) > 0 {
		return errs
	}

	var count int64
	q := db.Model(&model.AsignaturaCarrera{}).Where("asignatura_id = ? AND carrera_id = ?", uint(in.Asignatura), uint(in.Carrera))
	if id != 0 {
		q = q.Where("id <> ?", id)
	}
	if err := q.Count(&count).Error; err == nil && count > 0 {
		errs.Add("non_field_errors", "The fields asignatura, carrera must make a unique set.")
	}
	return errs
}

func (in *AsignaturaCarreraInput) Apply(m *model.AsignaturaCarrera) {
	m.AsignaturaID = uint(in.Asignatura)
	m.CarreraID = uint(in.Carrera)
	m.Estado = in.Estado.OrDefault()
}

// AsignaturaCarreraOutput is the wire shape of an asignatura in a carrera plan
type AsignaturaCarreraOutput struct {
	ID         uint         `json:"id"`
	Asignatura uint         `json:"asignatura"`
	Carrera    uint         `json:"carrera"`
	Estado     model.Estado `json:"estado"`
}

func NewAsignaturaCarrera(m *model.AsignaturaCarrera) *AsignaturaCarreraOutput {
	if m == nil {
		return nil
	}
	return &AsignaturaCarreraOutput{ID: m.ID, Asignatura: m.AsignaturaID, Carrera: m.CarreraID, Estado: m.Estado}
}

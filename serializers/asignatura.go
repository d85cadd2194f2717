package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// AsignaturaInput is the write side of an asignatura
type AsignaturaInput struct {
	Area         *PK          `json:"area"`
	Departamento PK           `json:"departamento" validate:"required"`
	Codigo       string       `json:"codigo" validate:"required,max=20"`
	Nombre       string       `json:"nombre" validate:"required,max=150"`
	Modulo       string       `json:"modulo" validate:"max=50"`
	Programa     string       `json:"programa" validate:"max=255"`
	Tipo         string       `json:"tipo" validate:"required,oneof=Electiva Obligatoria"`
	Estado       model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
}

func (in *AsignaturaInput) Load(m *model.Asignatura) {
	area := PKOf(m.AreaID)
	in.Area = &area
	in.Departamento = PK(m.DepartamentoID)
	in.Codigo = m.Codigo
	in.Nombre = m.Nombre
	in.Modulo = m.Modulo
	in.Programa = m.Programa
	in.Tipo = m.Tipo
	in.Estado = m.Estado
}

func (in *AsignaturaInput) Validate(db *gorm.DB, _ uint) validation.Errors {
	errs := validation.Errors{}
	checkPK(db, errs, "departamento", &model.Departamento{}, in.Departamento)
	if in.Area != nil && *in.Area != 0 {
		checkPK(db, errs, "area", &model.Area{}, *in.Area)

		var area model.Area
		if err := db.Select("departamento_id").First(&area, uint(*in.Area)).Error; err == nil &&
			in.Departamento != 0 && area.DepartamentoID != uint(in.Departamento) {
			errs.Add("area", "El área no pertenece al departamento indicado.")
		}
	}
	return errs
}

func (in *AsignaturaInput) Apply(m *model.Asignatura) {
	m.AreaID = nil
	if in.Area != nil {
		m.AreaID = in.Area.Ptr()
	}
	m.DepartamentoID = uint(in.Departamento)
	m.Codigo = validation.SanitizeString(in.Codigo)
	m.Nombre = validation.SanitizeString(in.Nombre)
	m.Modulo = validation.SanitizeString(in.Modulo)
	m.Programa = validation.SanitizeString(in.Programa)
	m.Tipo = in.Tipo
	m.Estado = in.Estado.OrDefault()
}

// AsignaturaOutput is the wire shape of an asignatura
type AsignaturaOutput struct {
	ID           uint         `json:"id"`
	Area         *uint        `json:"area"`
	Departamento uint         `json:"departamento"`
	Codigo       string       `json:"codigo"`
	Nombre       string       `json:"nombre"`
	Modulo       string       `json:"modulo"`
	Programa     string       `json:"programa"`
	Tipo         string       `json:"tipo"`
	Estado       model.Estado `json:"estado"`
}

func NewAsignatura(m *model.Asignatura) *AsignaturaOutput {
	if m == nil {
		return nil
	}
	return &AsignaturaOutput{
		ID:           m.ID,
		Area:         m.AreaID,
		Departamento: m.DepartamentoID,
		Codigo:       m.Codigo,
		Nombre:       m.Nombre,
		Modulo:       m.Modulo,
		Programa:     m.Programa,
		Tipo:         m.Tipo,
		Estado:       m.Estado,
	}
}

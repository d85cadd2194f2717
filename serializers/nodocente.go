package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// NoDocenteInput is the write side of a no docente
type NoDocenteInput struct {
	Persona       PK           `json:"persona" validate:"required"`
	Observaciones string       `json:"observaciones" validate:"max=500"`
	Estado        model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
}

func (in *NoDocenteInput) Load(m *model.NoDocente) {
	in.Persona = PK(m.PersonaID)
	in.Observaciones = m.Observaciones
	in.Estado = m.Estado
}

func (in *NoDocenteInput) Validate(db *gorm.DB, _ uint) validation.Errors {
	errs := validation.Errors{}
	checkPK(db, errs, "persona", &model.Persona{}, in.Persona)
	return errs
}

func (in *NoDocenteInput) Apply(m *model.NoDocente) {
	m.PersonaID = uint(in.Persona)
	m.Observaciones = validation.SanitizeText(in.Observaciones)
	m.Estado = in.Estado.OrDefault()
}

// NoDocenteOutput is the wire shape of a no docente
type NoDocenteOutput struct {
	ID             uint           `json:"id"`
	Persona        uint           `json:"persona"`
	PersonaDetalle *PersonaOutput `json:"persona_detalle"`
	Observaciones  string         `json:"observaciones"`
	Estado         model.Estado   `json:"estado"`
}

func NewNoDocente(m *model.NoDocente) *NoDocenteOutput {
	if m == nil {
		return nil
	}
	return &NoDocenteOutput{
		ID:             m.ID,
		Persona:        m.PersonaID,
		PersonaDetalle: NewPersona(m.Persona),
		Observaciones:  m.Observaciones,
		Estado:         m.Estado,
	}
}

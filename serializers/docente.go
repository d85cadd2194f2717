package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// DocenteInput is the write side of a docente
type DocenteInput struct {
	Persona       PK           `json:"persona" validate:"required"`
	Observaciones string       `json:"observaciones" validate:"max=500"`
	Estado        model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
	Dedicacion    string       `json:"dedicacion" validate:"max=50"`
}

func (in *DocenteInput) Load(m *model.Docente) {
	in.Persona = PK(m.PersonaID)
	in.Observaciones = m.Observaciones
	in.Estado = m.Estado
	in.Dedicacion = m.Dedicacion
}

func (in *DocenteInput) Validate(db *gorm.DB, _ uint) validation.Errors {
	errs := validation.Errors{}
	checkPK(db, errs, "persona", &model.Persona{}, in.Persona)
	return errs
}

func (in *DocenteInput) Apply(m *model.Docente) {
	m.PersonaID = uint(in.Persona)
	m.Observaciones = validation.SanitizeText(in.Observaciones)
	m.Estado = in.Estado.OrDefault()
	m.Dedicacion = validation.SanitizeString(in.Dedicacion)
}

// DocenteOutput is the wire shape of a docente
type DocenteOutput struct {
	ID             uint           `json:"id"`
	Persona        uint           `json:"persona"`
	PersonaDetalle *PersonaOutput `json:"persona_detalle"`
	Observaciones  string         `json:"observaciones"`
	Estado         model.Estado   `json:"estado"`
	Dedicacion     string         `json:"dedicacion"`
}

// NewDocente renders m, nil for nil.
func NewDocente(m *model.Docente) *DocenteOutput {
	if m == nil {
		return nil
	}
	return &DocenteOutput{
		ID:             m.ID,
		Persona:        m.PersonaID,
		PersonaDetalle: NewPersona(m.Persona),
		Observaciones:  m.Observaciones,
		Estado:         m.Estado,
		Dedicacion:     m.Dedicacion,
	}
}

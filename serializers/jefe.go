package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// JefeInput is the write side of a jefe
type JefeInput struct {
	Persona       PK           `json:"persona" validate:"required"`
	Observaciones string       `json:"observaciones" validate:"max=500"`
	Estado        model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
}

func (in *JefeInput) Load(m *model.Jefe) {
	in.Persona = PK(m.PersonaID)
	in.Observaciones = m.Observaciones
	in.Estado = m.Estado
}

func (in *JefeInput) Validate(db *gorm.DB, _ uint) validation.Errors {
	errs := validation.Errors{}
	checkPK(db, errs, "persona", &model.Persona{}, in.Persona)
	return errs
}

func (in *JefeInput) Apply(m *model.Jefe) {
	m.PersonaID = uint(in.Persona)
	m.Observaciones = validation.SanitizeText(in.Observaciones)
	m.Estado = in.Estado.OrDefault()
}

// JefeOutput is the wire shape of a jefe
type JefeOutput struct {
	ID             uint           `json:"id"`
	Persona        uint           `json:"persona"`
	PersonaDetalle *PersonaOutput `json:"persona_detalle"`
	Observaciones  string         `json:"observaciones"`
	Estado         model.Estado   `json:"estado"`
}

func NewJefe(m *model.Jefe) *JefeOutput {
	if m == nil {
		return nil
	}
	return &JefeOutput{
		ID:             m.ID,
		Persona:        m.PersonaID,
		PersonaDetalle: NewPersona(m.Persona),
		Observaciones:  m.Observaciones,
		Estado:         m.Estado,
	}
}

// JefeDetail nests the persona in place of its id, as list_jefes_persona returns it.
type JefeDetail struct {
	ID            uint           `json:"id"`
	Persona       *PersonaOutput `json:"persona"`
	Observaciones string         `json:"observaciones"`
	Estado        model.Estado   `json:"estado"`
}

func NewJefeDetail(m *model.Jefe) *JefeDetail {
	if m == nil {
		return nil
	}
	return &JefeDetail{
		ID:            m.ID,
		Persona:       NewPersona(m.Persona),
		Observaciones: m.Observaciones,
		Estado:        m.Estado,
	}
}

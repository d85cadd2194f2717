package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// DirectorInput is the write side of a director
type DirectorInput struct {
	Persona       PK           `json:"persona" validate:"required"`
	Observaciones string       `json:"observaciones" validate:"max=500"`
	Estado        model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
}

func (in *DirectorInput) Load(m *model.Director) {
	in.Persona = PK(m.PersonaID)
	in.Observaciones = m.Observaciones
	in.Estado = m.Estado
}

func (in *DirectorInput) Validate(db *gorm.DB, _ uint) validation.Errors {
	errs := validation.Errors{}
	checkPK(db, errs, "persona", &model.Persona{}, in.Persona)
	return errs
}

func (in *DirectorInput) Apply(m *model.Director) {
	m.PersonaID = uint(in.Persona)
	m.Observaciones = validation.SanitizeText(in.Observaciones)
	m.Estado = in.Estado.OrDefault()
}

// DirectorOutput is the wire shape of a director
type DirectorOutput struct {
	ID             uint           `json:"id"`
	Persona        uint           `json:"persona"`
	PersonaDetalle *PersonaOutput `json:"persona_detalle"`
	Observaciones  string         `json:"observaciones"`
	Estado         model.Estado   `json:"estado"`
}

func NewDirector(m *model.Director) *DirectorOutput {
	if m == nil {
		return nil
	}
	return &DirectorOutput{
		ID:             m.ID,
		Persona:        m.PersonaID,
		PersonaDetalle: NewPersona(m.Persona),
		Observaciones:  m.Observaciones,
		Estado:         m.Estado,
	}
}

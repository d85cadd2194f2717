package serializers

import (
	"time"

	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// PersonaInput is the write side of a persona
type PersonaInput struct {
	Nombre   string       `json:"nombre" validate:"required,max=100"`
	Apellido string       `json:"apellido" validate:"required,max=100"`
	Telefono string       `json:"telefono" validate:"max=50"`
	Dni      string       `json:"dni" validate:"required,max=20"`
	Estado   model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
	Email    string       `json:"email" validate:"omitempty,email,max=254"`
	Interno  string       `json:"interno" validate:"max=20"`
	Legajo   string       `json:"legajo" validate:"max=20"`
	Titulo   *PK          `json:"titulo"`
}

func (in *PersonaInput) Load(m *model.Persona) {
	in.Nombre = m.Nombre
	in.Apellido = m.Apellido
	in.Telefono = m.Telefono
	in.Dni = m.Dni
	in.Estado = m.Estado
	in.Email = m.Email
	in.Interno = m.Interno
	in.Legajo = m.Legajo
	titulo := PKOf(m.TituloID)
	in.Titulo = &titulo
}

func (in *PersonaInput) Validate(db *gorm.DB, id uint) validation.Errors {
	errs := validation.Errors{}
	checkUnique(db, errs, "dni", "dni", &model.Persona{}, in.Dni, id, "persona")
	if in.Titulo != nil {
		checkPK(db, errs, "titulo", &model.TipoTitulo{}, *in.Titulo)
	}
	return errs
}

func (in *PersonaInput) Apply(m *model.Persona) {
	m.Nombre = validation.SanitizeString(in.Nombre)
	m.Apellido = validation.SanitizeString(in.Apellido)
	m.Telefono = validation.SanitizeString(in.Telefono)
	m.Dni = validation.SanitizeString(in.Dni)
	m.Estado = in.Estado.OrDefault()
	m.Email = normalizeEmail(in.Email)
	m.Interno = validation.SanitizeString(in.Interno)
	m.Legajo = validation.SanitizeString(in.Legajo)
	m.TituloID = nil
	if in.Titulo != nil {
		m.TituloID = in.Titulo.Ptr()
	}
}

// PersonaOutput is the wire shape of a persona
type PersonaOutput struct {
	ID            uint              `json:"id"`
	Nombre        string            `json:"nombre"`
	Apellido      string            `json:"apellido"`
	Telefono      string            `json:"telefono"`
	Dni           string            `json:"dni"`
	Estado        model.Estado      `json:"estado"`
	Email         string            `json:"email"`
	Interno       string            `json:"interno"`
	Legajo        string            `json:"legajo"`
	Titulo        *uint             `json:"titulo"`
	TituloDetalle *TipoTituloOutput `json:"titulo_detalle"`
	FechaCreacion time.Time         `json:"fecha_creacion"`
}

// NewPersona renders m with its título inline, nil for nil.
func NewPersona(m *model.Persona) *PersonaOutput {
	if m == nil {
		return nil
	}
	return &PersonaOutput{
		ID:            m.ID,
		Nombre:        m.Nombre,
		Apellido:      m.Apellido,
		Telefono:      m.Telefono,
		Dni:           m.Dni,
		Estado:        m.Estado,
		Email:         m.Email,
		Interno:       m.Interno,
		Legajo:        m.Legajo,
		Titulo:        m.TituloID,
		TituloDetalle: NewTipoTitulo(m.Titulo),
		FechaCreacion: m.FechaCreacion,
	}
}

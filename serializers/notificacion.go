package serializers

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// NotificacionInput is the write side of a notificacion
type NotificacionInput struct {
	Persona  PK              `json:"persona" validate:"required"`
	Mensaje  string          `json:"mensaje" validate:"required,max=2000"`
	Tipo     string          `json:"tipo" validate:"omitempty,oneof=info vencimiento"`
	Leido    bool            `json:"leido"`
	Metadata json.RawMessage `json:"metadata"`
}

func (in *NotificacionInput) Load(m *model.Notificacion) {
	in.Persona = PK(m.PersonaID)
	in.Mensaje = m.Mensaje
	in.Tipo = m.Tipo
	in.Leido = m.Leido
	in.Metadata = json.RawMessage(m.Metadata)
}

func (in *NotificacionInput) Validate(db *gorm.DB, _ uint) validation.Errors {
	errs := validation.Errors{}
	checkPK(db, errs, "persona", &model.Persona{}, in.Persona)
	if len(in.Metadata) > 0 && string(in.Metadata) != "null" {
		var obj map[string]any
		if err := json.Unmarshal(in.Metadata, &obj); err != nil {
			errs.Add("metadata", "Value must be valid JSON object.")
		}
	}
	return errs
}

func (in *NotificacionInput) Apply(m *model.Notificacion) {
	m.PersonaID = uint(in.Persona)
	m.Mensaje = validation.SanitizeText(in.Mensaje)
	m.Tipo = in.Tipo
	if m.Tipo == "" {
		m.Tipo = model.NotificacionInfo
	}
	m.Leido = in.Leido
	m.Metadata = nil
	if len(in.Metadata) > 0 && string(in.Metadata) != "null" {
		m.Metadata = datatypes.JSON(in.Metadata)
	}
}

// NotificacionOutput is the wire shape of a notificacion
type NotificacionOutput struct {
	ID            uint            `json:"id"`
	Persona       uint            `json:"persona"`
	Mensaje       string          `json:"mensaje"`
	Tipo          string          `json:"tipo"`
	Leido         bool            `json:"leido"`
	FechaCreacion time.Time       `json:"fecha_creacion"`
	Metadata      json.RawMessage `json:"metadata"`
}

func NewNotificacion(m *model.Notificacion) *NotificacionOutput {
	if m == nil {
		return nil
	}
	out := &NotificacionOutput{
		ID:            m.ID,
		Persona:       m.PersonaID,
		Mensaje:       m.Mensaje,
		Tipo:          m.Tipo,
		Leido:         m.Leido,
		FechaCreacion: m.FechaCreacion,
		Metadata:      json.RawMessage("null"),
	}
	if len(m.Metadata) > 0 {
		out.Metadata = json.RawMessage(m.Metadata)
	}
	return out
}

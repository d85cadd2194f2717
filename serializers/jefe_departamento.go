package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// JefeDepartamentoCreate is the write side of a jefe designation
type JefeDepartamentoCreate struct {
	Departamento  PK           `json:"departamento" validate:"required"`
	Jefe          PK           `json:"jefe" validate:"required"`
	Resolucion    PK           `json:"resolucion" validate:"required"`
	Observaciones string       `json:"observaciones" validate:"max=500"`
	Estado        model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
	FechaDeInicio *DateTime    `json:"fecha_de_inicio"`
	FechaDeFin    *DateTime    `json:"fecha_de_fin"`
	Notificado    *bool        `json:"notificado"`
}

func (in *JefeDepartamentoCreate) Load(m *model.JefeDepartamento) {
	in.Departamento = PK(m.DepartamentoID)
	in.Jefe = PK(m.JefeID)
	in.Resolucion = PK(m.ResolucionID)
	in.Observaciones = m.Observaciones
	in.Estado = m.Estado
	in.FechaDeInicio = NewDateTime(m.FechaDeInicio)
	in.FechaDeFin = NewDateTime(m.FechaDeFin)
	notificado := m.Notificado
	in.Notificado = &notificado
}

func (in *JefeDepartamentoCreate) Validate(db *gorm.DB, _ uint) validation.Errors {
	errs := validation.Errors{}
	checkPK(db, errs, "departamento", &model.Departamento{}, in.Departamento)
	checkPK(db, errs, "jefe", &model.Jefe{}, in.Jefe)
	checkPK(db, errs, "resolucion", &model.Resolucion{}, in.Resolucion)
	checkPeriod(errs, "fecha_de_fin", in.FechaDeInicio.Ptr(), in.FechaDeFin.Ptr())
	return errs
}

func (in *JefeDepartamentoCreate) Apply(m *model.JefeDepartamento) {
	m.DepartamentoID = uint(in.Departamento)
	m.JefeID = uint(in.Jefe)
	m.ResolucionID = uint(in.Resolucion)
	m.Observaciones = validation.SanitizeText(in.Observaciones)
	m.Estado = in.Estado.OrDefault()
	m.FechaDeInicio = in.FechaDeInicio.Ptr()
	fin := in.FechaDeFin.Ptr()
	if !sameTime(m.FechaDeFin, fin) {
		m.Notificado = false
	}
	m.FechaDeFin = fin
	if in.Notificado != nil {
		m.Notificado = *in.Notificado
	}
}

// JefeDepartamentoOutput is the create response, relations as ids
type JefeDepartamentoOutput struct {
	ID            uint         `json:"id"`
	Departamento  uint         `json:"departamento"`
	Jefe          uint         `json:"jefe"`
	Resolucion    uint         `json:"resolucion"`
	Observaciones string       `json:"observaciones"`
	Estado        model.Estado `json:"estado"`
	FechaDeInicio *DateTime    `json:"fecha_de_inicio"`
	FechaDeFin    *DateTime    `json:"fecha_de_fin"`
	Notificado    bool         `json:"notificado"`
}

func NewJefeDepartamento(m *model.JefeDepartamento) *JefeDepartamentoOutput {
	if m == nil {
		return nil
	}
	return &JefeDepartamentoOutput{
		ID:            m.ID,
		Departamento:  m.DepartamentoID,
		Jefe:          m.JefeID,
		Resolucion:    m.ResolucionID,
		Observaciones: m.Observaciones,
		Estado:        m.Estado,
		FechaDeInicio: NewDateTime(m.FechaDeInicio),
		FechaDeFin:    NewDateTime(m.FechaDeFin),
		Notificado:    m.Notificado,
	}
}

// JefeDepartamentoDetail expands departamento, jefe and resolucion inline
type JefeDepartamentoDetail struct {
	ID            uint                `json:"id"`
	Departamento  *DepartamentoOutput `json:"departamento"`
	Jefe          *JefeOutput         `json:"jefe"`
	Resolucion    *ResolucionOutput   `json:"resolucion"`
	Observaciones string              `json:"observaciones"`
	Estado        model.Estado        `json:"estado"`
	FechaDeInicio *DateTime           `json:"fecha_de_inicio"`
	FechaDeFin    *DateTime           `json:"fecha_de_fin"`
	Notificado    bool                `json:"notificado"`
}

// JefeDepartamentoPreload lists the relations JefeDepartamentoDetail reads.
var JefeDepartamentoPreload = []string{"Departamento", "Jefe.Persona.Titulo", "Resolucion"}

func NewJefeDepartamentoDetail(m *model.JefeDepartamento) *JefeDepartamentoDetail {
	if m == nil {
		return nil
	}
	return &JefeDepartamentoDetail{
		ID:            m.ID,
		Departamento:  NewDepartamento(m.Departamento),
		Jefe:          NewJefe(m.Jefe),
		Resolucion:    NewResolucion(m.Resolucion),
		Observaciones: m.Observaciones,
		Estado:        m.Estado,
		FechaDeInicio: NewDateTime(m.FechaDeInicio),
		FechaDeFin:    NewDateTime(m.FechaDeFin),
		Notificado:    m.Notificado,
	}
}

package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// AsignaturaDocenteCreate is the write side of a docente designation. The
// create form posts fecha_inicio and fecha_fin, accepted as aliases.
type AsignaturaDocenteCreate struct {
	Asignatura         PK           `json:"asignatura" validate:"required"`
	Docente            PK           `json:"docente" validate:"required"`
	Resolucion         PK           `json:"resolucion" validate:"required"`
	Condicion          string       `json:"condicion" validate:"max=50"`
	Cargo              string       `json:"cargo" validate:"max=50"`
	Dedicacion         string       `json:"dedicacion" validate:"max=50"`
	Observaciones      string       `json:"observaciones" validate:"max=500"`
	Estado             model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
	FechaDeInicio      *DateTime    `json:"fecha_de_inicio"`
	FechaDeVencimiento *DateTime    `json:"fecha_de_vencimiento"`
	FechaInicio        *DateTime    `json:"fecha_inicio"`
	FechaFin           *DateTime    `json:"fecha_fin"`
	Notificado         *bool        `json:"notificado"`
}

func (in *AsignaturaDocenteCreate) Load(m *model.AsignaturaDocente) {
	in.Asignatura = PK(m.AsignaturaID)
	in.Docente = PK(m.DocenteID)
	in.Resolucion = PK(m.ResolucionID)
	in.Condicion = m.Condicion
	in.Cargo = m.Cargo
	in.Dedicacion = m.Dedicacion
	in.Observaciones = m.Observaciones
	in.Estado = m.Estado
	in.FechaDeInicio = NewDateTime(m.FechaDeInicio)
	in.FechaDeVencimiento = NewDateTime(m.FechaDeVencimiento)
	notificado := m.Notificado
	in.Notificado = &notificado
}

func (in *AsignaturaDocenteCreate) Validate(db *gorm.DB, _ uint) validation.Errors {
	errs := validation.Errors{}
	checkPK(db, errs, "asignatura", &model.Asignatura{}, in.Asignatura)
	checkPK(db, errs, "docente", &model.Docente{}, in.Docente)
	checkPK(db, errs, "resolucion", &model.Resolucion{}, in.Resolucion)
	checkPeriod(errs, "fecha_de_vencimiento",
		pickDate(in.FechaInicio, in.FechaDeInicio), pickDate(in.FechaFin, in.FechaDeVencimiento))
	return errs
}

func (in *AsignaturaDocenteCreate) Apply(m *model.AsignaturaDocente) {
	m.AsignaturaID = uint(in.Asignatura)
	m.DocenteID = uint(in.Docente)
	m.ResolucionID = uint(in.Resolucion)
	m.Condicion = validation.SanitizeString(in.Condicion)
	m.Cargo = validation.SanitizeString(in.Cargo)
	m.Dedicacion = validation.SanitizeString(in.Dedicacion)
	m.Observaciones = validation.SanitizeText(in.Observaciones)
	m.Estado = in.Estado.OrDefault()
	m.FechaDeInicio = pickDate(in.FechaInicio, in.FechaDeInicio)
	vencimiento := pickDate(in.FechaFin, in.FechaDeVencimiento)
	if !sameTime(m.FechaDeVencimiento, vencimiento) {
		// a new end date deserves a new notice
		m.Notificado = false
	}
	m.FechaDeVencimiento = vencimiento
	if in.Notificado != nil {
		m.Notificado = *in.Notificado
	}
}

// AsignaturaDocenteOutput is the create response, relations as ids
type AsignaturaDocenteOutput struct {
	ID                 uint         `json:"id"`
	Asignatura         uint         `json:"asignatura"`
	Docente            uint         `json:"docente"`
	Resolucion         uint         `json:"resolucion"`
	Condicion          string       `json:"condicion"`
	Cargo              string       `json:"cargo"`
	Dedicacion         string       `json:"dedicacion"`
	Observaciones      string       `json:"observaciones"`
	Estado             model.Estado `json:"estado"`
	FechaDeInicio      *DateTime    `json:"fecha_de_inicio"`
	FechaDeVencimiento *DateTime    `json:"fecha_de_vencimiento"`
	Notificado         bool         `json:"notificado"`
}

func NewAsignaturaDocente(m *model.AsignaturaDocente) *AsignaturaDocenteOutput {
	if m == nil {
		return nil
	}
	return &AsignaturaDocenteOutput{
		ID:                 m.ID,
		Asignatura:         m.AsignaturaID,
		Docente:            m.DocenteID,
		Resolucion:         m.ResolucionID,
		Condicion:          m.Condicion,
		Cargo:              m.Cargo,
		Dedicacion:         m.Dedicacion,
		Observaciones:      m.Observaciones,
		Estado:             m.Estado,
		FechaDeInicio:      NewDateTime(m.FechaDeInicio),
		FechaDeVencimiento: NewDateTime(m.FechaDeVencimiento),
		Notificado:         m.Notificado,
	}
}

// AsignaturaDocenteDetail expands asignatura, docente and resolucion inline
type AsignaturaDocenteDetail struct {
	ID                 uint              `json:"id"`
	Asignatura         *AsignaturaOutput `json:"asignatura"`
	Docente            *DocenteOutput    `json:"docente"`
	Resolucion         *ResolucionOutput `json:"resolucion"`
	Condicion          string            `json:"condicion"`
	Cargo              string            `json:"cargo"`
	Dedicacion         string            `json:"dedicacion"`
	Observaciones      string            `json:"observaciones"`
	Estado             model.Estado      `json:"estado"`
	FechaDeInicio      *DateTime         `json:"fecha_de_inicio"`
	FechaDeVencimiento *DateTime         `json:"fecha_de_vencimiento"`
	Notificado         bool              `json:"notificado"`
}

// AsignaturaDocentePreload lists the relations AsignaturaDocenteDetail reads.
var AsignaturaDocentePreload = []string{"Asignatura", "Docente.Persona.Titulo", "Resolucion"}

func NewAsignaturaDocenteDetail(m *model.AsignaturaDocente) *AsignaturaDocenteDetail {
	if m == nil {
		return nil
	}
	return &AsignaturaDocenteDetail{
		ID:                 m.ID,
		Asignatura:         NewAsignatura(m.Asignatura),
		Docente:            NewDocente(m.Docente),
		Resolucion:         NewResolucion(m.Resolucion),
		Condicion:          m.Condicion,
		Cargo:              m.Cargo,
		Dedicacion:         m.Dedicacion,
		Observaciones:      m.Observaciones,
		Estado:             m.Estado,
		FechaDeInicio:      NewDateTime(m.FechaDeInicio),
		FechaDeVencimiento: NewDateTime(m.FechaDeVencimiento),
		Notificado:         m.Notificado,
	}
}

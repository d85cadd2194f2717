package serializers

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// DirectorCarreraCreate is the write side of a director designation
type DirectorCarreraCreate struct {
	Carrera       PK           `json:"carrera" validate:"required"`
	Director      PK           `json:"director" validate:"required"`
	Resolucion    PK           `json:"resolucion" validate:"required"`
	Observaciones string       `json:"observaciones" validate:"max=500"`
	Estado        model.Estado `json:"estado" validate:"omitempty,oneof=0 1"`
	FechaDeInicio *DateTime    `json:"fecha_de_inicio"`
	FechaDeFin    *DateTime    `json:"fecha_de_fin"`
}

func (in *DirectorCarreraCreate) Load(m *model.DirectorCarrera) {
	in.Carrera = PK(m.CarreraID)
	in.Director = PK(m.DirectorID)
	in.Resolucion = PK(m.ResolucionID)
	in.Observaciones = m.Observaciones
	in.Estado = m.Estado
	in.FechaDeInicio = NewDateTime(m.FechaDeInicio)
	in.FechaDeFin = NewDateTime(m.FechaDeFin)
}

func (in *DirectorCarreraCreate) Validate(db *gorm.DB, _ uint) validation.Errors {
	errs := validation.Errors{}
	checkPK(db, errs, "carrera", &model.Carrera{}, in.Carrera)
	checkPK(db, errs, "director", &model.Director{}, in.Director)
	checkPK(db, errs, "resolucion", &model.Resolucion{}, in.Resolucion)
	checkPeriod(errs, "fecha_de_fin", in.FechaDeInicio.Ptr(), in.FechaDeFin.Ptr())
	return errs
}

func (in *DirectorCarreraCreate) Apply(m *model.DirectorCarrera) {
	m.CarreraID = uint(in.Carrera)
	m.DirectorID = uint(in.Director)
	m.ResolucionID = uint(in.Resolucion)
	m.Observaciones = validation.SanitizeText(in.Observaciones)
	m.Estado = in.Estado.OrDefault()
	m.FechaDeInicio = in.FechaDeInicio.Ptr()
	m.FechaDeFin = in.FechaDeFin.Ptr()
}

// DirectorCarreraOutput is the create response, relations as ids
type DirectorCarreraOutput struct {
	ID            uint         `json:"id"`
	Carrera       uint         `json:"carrera"`
	Director      uint         `json:"director"`
	Resolucion    uint         `json:"resolucion"`
	Observaciones string       `json:"observaciones"`
	Estado        model.Estado `json:"estado"`
	FechaDeInicio *DateTime    `json:"fecha_de_inicio"`
	FechaDeFin    *DateTime    `json:"fecha_de_fin"`
}

func NewDirectorCarrera(m *model.DirectorCarrera) *DirectorCarreraOutput {
	if m == nil {
		return nil
	}
	return &DirectorCarreraOutput{
		ID:            m.ID,
		Carrera:       m.CarreraID,
		Director:      m.DirectorID,
		Resolucion:    m.ResolucionID,
		Observaciones: m.Observaciones,
		Estado:        m.Estado,
		FechaDeInicio: NewDateTime(m.FechaDeInicio),
		FechaDeFin:    NewDateTime(m.FechaDeFin),
	}
}

// DirectorCarreraDetail expands carrera, director and resolucion inline
type DirectorCarreraDetail struct {
	ID            uint              `json:"id"`
	Carrera       *CarreraOutput    `json:"carrera"`
	Director      *DirectorOutput   `json:"director"`
	Resolucion    *ResolucionOutput `json:"resolucion"`
	Observaciones string            `json:"observaciones"`
	Estado        model.Estado      `json:"estado"`
	FechaDeInicio *DateTime         `json:"fecha_de_inicio"`
	FechaDeFin    *DateTime         `json:"fecha_de_fin"`
}

// DirectorCarreraPreload lists the relations DirectorCarreraDetail reads.
var DirectorCarreraPreload = []string{"Carrera", "Director.Persona.Titulo", "Resolucion"}

func NewDirectorCarreraDetail(m *model.DirectorCarrera) *DirectorCarreraDetail {
	if m == nil {
		return nil
	}
	return &DirectorCarreraDetail{
		ID:            m.ID,
		Carrera:       NewCarrera(m.Carrera),
		Director:      NewDirector(m.Director),
		Resolucion:    NewResolucion(m.Resolucion),
		Observaciones: m.Observaciones,
		Estado:        m.Estado,
		FechaDeInicio: NewDateTime(m.FechaDeInicio),
		FechaDeFin:    NewDateTime(m.FechaDeFin),
	}
}

package admin

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/viewset"
)

var (
	personaRelation      = map[string]viewset.Relation{"persona": {Column: "persona_id", Table: "personas"}}
	departamentoRelation = viewset.Relation{Column: "departamento_id", Table: "departamentos"}
)

func estado(e model.Estado) string {
	if e.Activo() {
		return "Activo"
	}
	return "Inactivo"
}

func persona(p *model.Persona) string {
	return p.NombreCompleto()
}

// NewDefaultSite registers every model the console lists.
func NewDefaultSite(db *gorm.DB) *Site {
	s := NewSite(db)

	Register(s, "usuario", ModelAdmin[model.Usuario]{
		VerboseName: "Usuarios",
		Preload:     []string{"Rol"},
		ListDisplay: []Column[model.Usuario]{
			{Name: "email", Value: func(m *model.Usuario) any { return m.Email }},
			{Name: "nombre", Value: func(m *model.Usuario) any { return m.FullName() }},
			{Name: "rol", Value: func(m *model.Usuario) any { return m.RoleName() }},
			{Name: "is_staff", Value: func(m *model.Usuario) any { return m.IsStaff }},
			{Name: "is_active", Value: func(m *model.Usuario) any { return m.IsActive }},
		},
		ListFilter:   []string{"is_staff", "is_active", "rol"},
		Relations:    map[string]viewset.Relation{"rol": {Column: "rol_id", Table: "roles"}},
		SearchFields: []string{"email", "nombre", "apellido"},
		Ordering:     []string{"email"},
	})

	Register(s, "rol", ModelAdmin[model.Rol]{
		VerboseName: "Roles",
		ListDisplay: []Column[model.Rol]{
			{Name: "descripcion", Value: func(m *model.Rol) any { return m.Descripcion }},
		},
		SearchFields: []string{"descripcion"},
	})

	Register(s, "tipotitulo", ModelAdmin[model.TipoTitulo]{
		VerboseName: "Tipos de título",
		ListDisplay: []Column[model.TipoTitulo]{
			{Name: "nombre", Value: func(m *model.TipoTitulo) any { return m.Nombre }},
			{Name: "estado", Value: func(m *model.TipoTitulo) any { return estado(m.Estado) }},
		},
		ListFilter: []string{"estado"},
		Ordering:   []string{"nombre"},
	})

	Register(s, "persona", ModelAdmin[model.Persona]{
		VerboseName: "Personas",
		ListDisplay: []Column[model.Persona]{
			{Name: "persona", Value: func(m *model.Persona) any { return persona(m) }},
			{Name: "dni", Value: func(m *model.Persona) any { return m.Dni }},
			{Name: "legajo", Value: func(m *model.Persona) any { return m.Legajo }},
			{Name: "estado", Value: func(m *model.Persona) any { return estado(m.Estado) }},
		},
		ListFilter:   []string{"estado", "apellido"},
		SearchFields: []string{"nombre", "apellido", "dni"},
		Ordering:     []string{"apellido", "nombre"},
		ListPerPage:  25,
	})

	Register(s, "docente", ModelAdmin[model.Docente]{
		VerboseName: "Docentes",
		Preload:     []string{"Persona"},
		ListDisplay: []Column[model.Docente]{
			{Name: "persona", Value: func(m *model.Docente) any { return persona(m.Persona) }},
		},
		ListFilter:  []string{"persona__apellido", "observaciones", "estado"},
		Relations:   personaRelation,
		ListPerPage: 15,
	})

	Register(s, "nodocente", ModelAdmin[model.NoDocente]{
		VerboseName: "No docentes",
		Preload:     []string{"Persona"},
		ListDisplay: []Column[model.NoDocente]{
			{Name: "persona", Value: func(m *model.NoDocente) any { return persona(m.Persona) }},
			{Name: "estado", Value: func(m *model.NoDocente) any { return estado(m.Estado) }},
		},
		ListFilter: []string{"persona__apellido", "estado"},
		Relations:  personaRelation,
	})

	Register(s, "jefe", ModelAdmin[model.Jefe]{
		VerboseName: "Jefes",
		Preload:     []string{"Persona"},
		ListDisplay: []Column[model.Jefe]{
			{Name: "persona", Value: func(m *model.Jefe) any { return persona(m.Persona) }},
			{Name: "estado", Value: func(m *model.Jefe) any { return estado(m.Estado) }},
		},
		ListFilter: []string{"persona__apellido", "estado"},
		Relations:  personaRelation,
	})

	Register(s, "director", ModelAdmin[model.Director]{
		VerboseName: "Directores",
		Preload:     []string{"Persona"},
		ListDisplay: []Column[model.Director]{
			{Name: "persona", Value: func(m *model.Director) any { return persona(m.Persona) }},
			{Name: "estado", Value: func(m *model.Director) any { return estado(m.Estado) }},
		},
		ListFilter: []string{"persona__apellido", "estado"},
		Relations:  personaRelation,
	})

	Register(s, "departamento", ModelAdmin[model.Departamento]{
		VerboseName: "Departamentos",
		ListDisplay: []Column[model.Departamento]{
			{Name: "nombre", Value: func(m *model.Departamento) any { return m.Nombre }},
			{Name: "telefono", Value: func(m *model.Departamento) any { return m.Telefono }},
			{Name: "interno", Value: func(m *model.Departamento) any { return m.Interno }},
			{Name: "estado", Value: func(m *model.Departamento) any { return estado(m.Estado) }},
		},
		ListFilter:   []string{"estado"},
		SearchFields: []string{"nombre"},
		Ordering:     []string{"nombre"},
	})

	Register(s, "area", ModelAdmin[model.Area]{
		VerboseName: "Áreas",
		Preload:     []string{"Departamento"},
		ListDisplay: []Column[model.Area]{
			{Name: "nombre", Value: func(m *model.Area) any { return m.Nombre }},
			{Name: "departamento", Value: func(m *model.Area) any {
				if m.Departamento == nil {
					return nil
				}
				return m.Departamento.Nombre
			}},
			{Name: "estado", Value: func(m *model.Area) any { return estado(m.Estado) }},
		},
		ListFilter: []string{"departamento", "estado"},
		Relations:  map[string]viewset.Relation{"departamento": departamentoRelation},
		Ordering:   []string{"nombre"},
	})

	Register(s, "carrera", ModelAdmin[model.Carrera]{
		VerboseName: "Carreras",
		ListDisplay: []Column[model.Carrera]{
			{Name: "nombre", Value: func(m *model.Carrera) any { return m.Nombre }},
			{Name: "tipo", Value: func(m *model.Carrera) any { return m.Tipo }},
			{Name: "sede", Value: func(m *model.Carrera) any { return m.Sede }},
			{Name: "estado", Value: func(m *model.Carrera) any { return estado(m.Estado) }},
		},
		ListFilter:   []string{"tipo", "sede", "estado"},
		SearchFields: []string{"nombre"},
		Ordering:     []string{"nombre"},
	})

	Register(s, "asignatura", ModelAdmin[model.Asignatura]{
		VerboseName: "Asignaturas",
		ListDisplay: []Column[model.Asignatura]{
			{Name: "codigo", Value: func(m *model.Asignatura) any { return m.Codigo }},
			{Name: "nombre", Value: func(m *model.Asignatura) any { return m.Nombre }},
			{Name: "tipo", Value: func(m *model.Asignatura) any { return m.Tipo }},
			{Name: "estado", Value: func(m *model.Asignatura) any { return estado(m.Estado) }},
		},
		ListFilter:   []string{"departamento", "tipo", "estado"},
		Relations:    map[string]viewset.Relation{"departamento": departamentoRelation},
		SearchFields: []string{"codigo", "nombre"},
		Ordering:     []string{"codigo"},
	})

	Register(s, "asignaturacarrera", ModelAdmin[model.AsignaturaCarrera]{
		VerboseName: "Asignaturas por carrera",
		Preload:     []string{"Asignatura", "Carrera"},
		ListDisplay: []Column[model.AsignaturaCarrera]{
			{Name: "asignatura", Value: func(m *model.AsignaturaCarrera) any {
				if m.Asignatura == nil {
					return nil
				}
				return m.Asignatura.Nombre
			}},
			{Name: "carrera", Value: func(m *model.AsignaturaCarrera) any {
				if m.Carrera == nil {
					return nil
				}
				return m.Carrera.Nombre
			}},
		},
		ListFilter: []string{"carrera", "estado"},
		Relations:  map[string]viewset.Relation{"carrera": {Column: "carrera_id", Table: "carreras"}},
	})

	Register(s, "resolucion", ModelAdmin[model.Resolucion]{
		VerboseName: "Resoluciones",
		ListDisplay: []Column[model.Resolucion]{
			{Name: "nresolucion", Value: func(m *model.Resolucion) any { return m.Nresolucion }},
			{Name: "nexpediente", Value: func(m *model.Resolucion) any { return m.Nexpediente }},
			{Name: "tipo", Value: func(m *model.Resolucion) any { return m.Tipo }},
			{Name: "fecha", Value: func(m *model.Resolucion) any { return m.Fecha }},
		},
		ListFilter:   []string{"tipo", "estado"},
		SearchFields: []string{"nresolucion", "nexpediente"},
		Ordering:     []string{"-fecha_creacion"},
	})

	Register(s, "asignaturadocente", ModelAdmin[model.AsignaturaDocente]{
		VerboseName: "Designaciones de docentes",
		Preload:     []string{"Asignatura", "Docente.Persona"},
		ListDisplay: []Column[model.AsignaturaDocente]{
			{Name: "docente", Value: func(m *model.AsignaturaDocente) any {
				if m.Docente == nil {
					return nil
				}
				return persona(m.Docente.Persona)
			}},
			{Name: "asignatura", Value: func(m *model.AsignaturaDocente) any {
				if m.Asignatura == nil {
					return nil
				}
				return m.Asignatura.Nombre
			}},
			{Name: "cargo", Value: func(m *model.AsignaturaDocente) any { return m.Cargo }},
			{Name: "fecha_de_vencimiento", Value: func(m *model.AsignaturaDocente) any { return m.FechaDeVencimiento }},
			{Name: "notificado", Value: func(m *model.AsignaturaDocente) any { return m.Notificado }},
		},
		ListFilter: []string{"estado", "notificado", "cargo"},
		Ordering:   []string{"fecha_de_vencimiento"},
	})

	Register(s, "jefedepartamento", ModelAdmin[model.JefeDepartamento]{
		VerboseName: "Jefes de departamento",
		Preload:     []string{"Departamento", "Jefe.Persona"},
		ListDisplay: []Column[model.JefeDepartamento]{
			{Name: "jefe", Value: func(m *model.JefeDepartamento) any {
				if m.Jefe == nil {
					return nil
				}
				return persona(m.Jefe.Persona)
			}},
			{Name: "departamento", Value: func(m *model.JefeDepartamento) any {
				if m.Departamento == nil {
					return nil
				}
				return m.Departamento.Nombre
			}},
			{Name: "fecha_de_fin", Value: func(m *model.JefeDepartamento) any { return m.FechaDeFin }},
			{Name: "notificado", Value: func(m *model.JefeDepartamento) any { return m.Notificado }},
		},
		ListFilter: []string{"estado", "notificado", "departamento"},
		Relations:  map[string]viewset.Relation{"departamento": departamentoRelation},
		Ordering:   []string{"fecha_de_fin"},
	})

	Register(s, "directorcarrera", ModelAdmin[model.DirectorCarrera]{
		VerboseName: "Directores de carrera",
		Preload:     []string{"Carrera", "Director.Persona"},
		ListDisplay: []Column[model.DirectorCarrera]{
			{Name: "director", Value: func(m *model.DirectorCarrera) any {
				if m.Director == nil {
					return nil
				}
				return persona(m.Director.Persona)
			}},
			{Name: "carrera", Value: func(m *model.DirectorCarrera) any {
				if m.Carrera == nil {
					return nil
				}
				return m.Carrera.Nombre
			}},
			{Name: "fecha_de_fin", Value: func(m *model.DirectorCarrera) any { return m.FechaDeFin }},
		},
		ListFilter: []string{"estado"},
		Ordering:   []string{"fecha_de_fin"},
	})

	Register(s, "notificacion", ModelAdmin[model.Notificacion]{
		VerboseName: "Notificaciones",
		Preload:     []string{"Persona"},
		ListDisplay: []Column[model.Notificacion]{
			{Name: "persona", Value: func(m *model.Notificacion) any { return persona(m.Persona) }},
			{Name: "tipo", Value: func(m *model.Notificacion) any { return m.Tipo }},
			{Name: "leido", Value: func(m *model.Notificacion) any { return m.Leido }},
			{Name: "fecha_creacion", Value: func(m *model.Notificacion) any { return m.FechaCreacion }},
		},
		ListFilter: []string{"tipo", "leido"},
		Ordering:   []string{"-fecha_creacion"},
	})

	registerLogs(s)
	return s
}

package router

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	notificacion_handlers "github.com/facet-unt/departamentos-api/handlers/notificacion"
	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/serializers"
	"github.com/facet-unt/departamentos-api/services"
	"github.com/facet-unt/departamentos-api/utils/logger"
	"github.com/facet-unt/departamentos-api/utils/viewset"
)

var (
	personaRelation      = viewset.Relation{Column: "persona_id", Table: "personas"}
	departamentoRelation = viewset.Relation{Column: "departamento_id", Table: "departamentos"}
	asignaturaRelation   = viewset.Relation{Column: "asignatura_id", Table: "asignaturas"}
	carreraRelation      = viewset.Relation{Column: "carrera_id", Table: "carreras"}
	resolucionRelation   = viewset.Relation{Column: "resolucion_id", Table: "resoluciones"}
)

// personal filters shared by docente, nodocente, jefe and director
var (
	personalFilters = []string{"persona", "persona__apellido", "persona__apellido__icontains", "persona__dni", "observaciones", "observaciones__icontains", "estado"}
	personalSearch  = []string{"persona__nombre", "persona__apellido", "persona__dni"}
)

// DepartamentosRouter registers the personnel, academic and designation resources
func DepartamentosRouter(d Deps) *DefaultRouter {
	r := NewDefaultRouter()
	db := d.DB

	r.Register("persona", viewset.New(db, viewset.Config[model.Persona, serializers.PersonaInput]{
		Name:           "Persona",
		Preload:        []string{"Titulo"},
		Ordering:       []string{"apellido", "nombre"},
		OrderingFields: []string{"apellido", "nombre", "dni", "legajo", "fecha_creacion"},
		Filters:        []string{"nombre", "nombre__icontains", "apellido", "apellido__icontains", "dni", "legajo", "estado", "titulo"},
		Relations:      map[string]viewset.Relation{"titulo": {Column: "titulo_id", Table: "tipo_titulos"}},
		SearchFields:   []string{"nombre", "apellido", "dni", "legajo", "email"},
		PageSize:       d.PageSize,
		Read:           func(m *model.Persona) any { return serializers.NewPersona(m) },
	}), "persona")

	r.Register("docente", viewset.New(db, viewset.Config[model.Docente, serializers.DocenteInput]{
		Name:            "Docente",
		Preload:         []string{"Persona.Titulo"},
		OrderingFields:  []string{"estado", "dedicacion"},
		Filters:         append([]string{"dedicacion"}, personalFilters...),
		Relations:       map[string]viewset.Relation{"persona": personaRelation},
		SearchFields:    personalSearch,
		ActiveByDefault: true,
		PageSize:        d.PageSize,
		Read:            func(m *model.Docente) any { return serializers.NewDocente(m) },
	}), "docente")

	r.Register("nodocente", viewset.New(db, viewset.Config[model.NoDocente, serializers.NoDocenteInput]{
		Name:            "NoDocente",
		Preload:         []string{"Persona.Titulo"},
		OrderingFields:  []string{"estado"},
		Filters:         personalFilters,
		Relations:       map[string]viewset.Relation{"persona": personaRelation},
		SearchFields:    personalSearch,
		ActiveByDefault: true,
		PageSize:        d.PageSize,
		Read:            func(m *model.NoDocente) any { return serializers.NewNoDocente(m) },
	}), "nodocente")

	var jefes *viewset.ModelViewSet[model.Jefe, serializers.JefeInput, *serializers.JefeInput]
	jefes = viewset.New(db, viewset.Config[model.Jefe, serializers.JefeInput]{
		Name:            "Jefe",
		Preload:         []string{"Persona.Titulo"},
		OrderingFields:  []string{"estado"},
		Filters:         personalFilters,
		Relations:       map[string]viewset.Relation{"persona": personaRelation},
		SearchFields:    personalSearch,
		ActiveByDefault: true,
		PageSize:        d.PageSize,
		Read:            func(m *model.Jefe) any { return serializers.NewJefe(m) },
		Actions: []viewset.Action{{
			Name:    "list_jefes_persona",
			Method:  fiber.MethodGet,
			Summary: "Jefes with their persona expanded",
			Handler: func(c *fiber.Ctx) error {
				return jefes.ListWith(func(m *model.Jefe) any { return serializers.NewJefeDetail(m) })(c)
			},
		}},
	})
	r.Register("jefe", jefes, "jefe")

	r.Register("director", viewset.New(db, viewset.Config[model.Director, serializers.DirectorInput]{
		Name:            "Director",
		Preload:         []string{"Persona.Titulo"},
		OrderingFields:  []string{"estado"},
		Filters:         personalFilters,
		Relations:       map[string]viewset.Relation{"persona": personaRelation},
		SearchFields:    personalSearch,
		ActiveByDefault: true,
		PageSize:        d.PageSize,
		Read:            func(m *model.Director) any { return serializers.NewDirector(m) },
	}), "director")

	r.Register("departamento", viewset.New(db, viewset.Config[model.Departamento, serializers.DepartamentoInput]{
		Name:           "Departamento",
		Ordering:       []string{"nombre"},
		OrderingFields: []string{"nombre", "estado"},
		Filters:        []string{"nombre", "nombre__icontains", "estado"},
		SearchFields:   []string{"nombre"},
		PageSize:       d.PageSize,
		Read:           func(m *model.Departamento) any { return serializers.NewDepartamento(m) },
	}), "departamento")

	r.Register("area", viewset.New(db, viewset.Config[model.Area, serializers.AreaInput]{
		Name:           "Area",
		Ordering:       []string{"nombre"},
		OrderingFields: []string{"nombre", "estado"},
		Filters:        []string{"departamento", "nombre", "nombre__icontains", "estado", "departamento__nombre__icontains"},
		Relations:      map[string]viewset.Relation{"departamento": departamentoRelation},
		SearchFields:   []string{"nombre"},
		PageSize:       d.PageSize,
		Read:           func(m *model.Area) any { return serializers.NewArea(m) },
	}), "area")

	r.Register("carrera", viewset.New(db, viewset.Config[model.Carrera, serializers.CarreraInput]{
		Name:           "Carrera",
		Ordering:       []string{"nombre"},
		OrderingFields: []string{"nombre", "tipo", "sede"},
		Filters:        []string{"nombre", "nombre__icontains", "tipo", "sede", "planestudio", "estado"},
		SearchFields:   []string{"nombre", "sede", "planestudio"},
		PageSize:       d.PageSize,
		Read:           func(m *model.Carrera) any { return serializers.NewCarrera(m) },
	}), "carrera")

	r.Register("asignatura", viewset.New(db, viewset.Config[model.Asignatura, serializers.AsignaturaInput]{
		Name:           "Asignatura",
		Ordering:       []string{"codigo"},
		OrderingFields: []string{"codigo", "nombre", "tipo"},
		Filters:        []string{"departamento", "area", "codigo", "nombre__icontains", "modulo", "tipo", "estado"},
		Relations: map[string]viewset.Relation{
			"departamento": departamentoRelation,
			"area":         {Column: "area_id", Table: "areas"},
		},
		SearchFields: []string{"codigo", "nombre"},
		PageSize:     d.PageSize,
		Read:         func(m *model.Asignatura) any { return serializers.NewAsignatura(m) },
	}), "asignatura")

	r.Register("asignatura-carrera", viewset.New(db, viewset.Config[model.AsignaturaCarrera, serializers.AsignaturaCarreraInput]{
		Name:      "AsignaturaCarrera",
		Filters:   []string{"asignatura", "carrera", "estado"},
		Relations: map[string]viewset.Relation{"asignatura": asignaturaRelation, "carrera": carreraRelation},
		PageSize:  d.PageSize,
		Read:      func(m *model.AsignaturaCarrera) any { return serializers.NewAsignaturaCarrera(m) },
	}), "asignatura-carrera")

	r.Register("asignatura-docente", viewset.New(db, viewset.Config[model.AsignaturaDocente, serializers.AsignaturaDocenteCreate]{
		Name:           "AsignaturaDocente",
		Preload:        serializers.AsignaturaDocentePreload,
		OrderingFields: []string{"fecha_de_inicio", "fecha_de_vencimiento", "estado"},
		Filters: []string{
			"asignatura", "docente", "resolucion", "condicion", "cargo", "dedicacion", "estado", "notificado",
			"fecha_de_vencimiento__gte", "fecha_de_vencimiento__lte", "fecha_de_inicio__date",
		},
		Relations: map[string]viewset.Relation{
			"asignatura": asignaturaRelation,
			"docente":    {Column: "docente_id", Table: "docentes"},
			"resolucion": resolucionRelation,
		},
		SearchFields: []string{"asignatura__nombre", "asignatura__codigo", "cargo"},
		PageSize:     d.PageSize,
		Read:         func(m *model.AsignaturaDocente) any { return serializers.NewAsignaturaDocenteDetail(m) },
		Write:        func(m *model.AsignaturaDocente) any { return serializers.NewAsignaturaDocente(m) },
	}), "asignatura-docente")

	r.Register("resolucion", viewset.New(db, viewset.Config[model.Resolucion, serializers.ResolucionInput]{
		Name:           "Resolucion",
		Ordering:       []string{"-fecha_creacion"},
		OrderingFields: []string{"fecha", "fecha_creacion", "nresolucion", "nexpediente"},
		Filters:        []string{"nexpediente", "nresolucion", "tipo", "estado", "fecha__date", "fecha__gte", "fecha__lte"},
		SearchFields:   []string{"nexpediente", "nresolucion", "observaciones"},
		PageSize:       d.PageSize,
		Read:           func(m *model.Resolucion) any { return serializers.NewResolucion(m) },
		NewInput:       serializers.NewResolucionInput(d.Storage),
		OnDestroy: func(ctx context.Context, m *model.Resolucion) error {
			if d.Storage == nil {
				return nil
			}
			if err := serializers.DeleteAdjunto(ctx, d.Storage, m.Adjunto); err != nil {
				logger.L().Warn("failed to delete adjunto", zap.Uint("resolucion", m.ID), zap.Error(err))
			}
			return nil
		},
	}), "resolucion")

	r.Register("jefe-departamento", viewset.New(db, viewset.Config[model.JefeDepartamento, serializers.JefeDepartamentoCreate]{
		Name:           "JefeDepartamento",
		Preload:        serializers.JefeDepartamentoPreload,
		OrderingFields: []string{"fecha_de_inicio", "fecha_de_fin", "estado"},
		Filters:        []string{"departamento", "jefe", "resolucion", "estado", "notificado", "fecha_de_fin__gte", "fecha_de_fin__lte"},
		Relations: map[string]viewset.Relation{
			"departamento": departamentoRelation,
			"jefe":         {Column: "jefe_id", Table: "jefes"},
			"resolucion":   resolucionRelation,
		},
		SearchFields: []string{"departamento__nombre"},
		PageSize:     d.PageSize,
		Read:         func(m *model.JefeDepartamento) any { return serializers.NewJefeDepartamentoDetail(m) },
		Write:        func(m *model.JefeDepartamento) any { return serializers.NewJefeDepartamento(m) },
	}), "jefe-departamento")

	r.Register("director-carrera", viewset.New(db, viewset.Config[model.DirectorCarrera, serializers.DirectorCarreraCreate]{
		Name:           "DirectorCarrera",
		Preload:        serializers.DirectorCarreraPreload,
		OrderingFields: []string{"fecha_de_inicio", "fecha_de_fin", "estado"},
		Filters:        []string{"carrera", "director", "resolucion", "estado", "fecha_de_fin__gte", "fecha_de_fin__lte"},
		Relations: map[string]viewset.Relation{
			"carrera":    carreraRelation,
			"director":   {Column: "director_id", Table: "directores"},
			"resolucion": resolucionRelation,
		},
		SearchFields: []string{"carrera__nombre"},
		PageSize:     d.PageSize,
		Read:         func(m *model.DirectorCarrera) any { return serializers.NewDirectorCarreraDetail(m) },
		Write:        func(m *model.DirectorCarrera) any { return serializers.NewDirectorCarrera(m) },
	}), "director-carrera")

	r.Register("tipo-titulo", viewset.New(db, viewset.Config[model.TipoTitulo, serializers.TipoTituloInput]{
		Name:           "TipoTitulo",
		Ordering:       []string{"nombre"},
		OrderingFields: []string{"nombre"},
		Filters:        []string{"nombre", "nombre__icontains", "estado"},
		SearchFields:   []string{"nombre", "descripcion"},
		PageSize:       d.PageSize,
		Read:           func(m *model.TipoTitulo) any { return serializers.NewTipoTitulo(m) },
	}), "tipo-titulo")

	r.Register("notificacion", notificaciones(d), "notificacion")
	return r
}

func notificaciones(d Deps) viewset.Resource {
	svc := d.Notifications
	if svc == nil {
		svc = services.NewNotificationService(d.DB, logger.L())
	}
	h := notificacion_handlers.NewNotificacionHandler(svc)
	read := func(m *model.Notificacion) any { return serializers.NewNotificacion(m) }

	var vs *viewset.ModelViewSet[model.Notificacion, serializers.NotificacionInput, *serializers.NotificacionInput]
	vs = viewset.New(d.DB, viewset.Config[model.Notificacion, serializers.NotificacionInput]{
		Name:           "Notificacion",
		Permission:     viewset.IsAuthenticated,
		Ordering:       []string{"-fecha_creacion"},
		OrderingFields: []string{"fecha_creacion", "leido"},
		Filters:        []string{"persona", "leido", "tipo"},
		Relations:      map[string]viewset.Relation{"persona": personaRelation},
		SearchFields:   []string{"mensaje"},
		PageSize:       d.PageSize,
		Read:           read,
		Actions: []viewset.Action{
			{Name: "no_leidas", Method: fiber.MethodGet, Summary: "Unread notificaciones", Handler: func(c *fiber.Ctx) error {
				return vs.ListWith(read, services.Unread(nil))(c)
			}},
			{Name: "no_leidas_count", Method: fiber.MethodGet, Summary: "Number of unread notificaciones", Handler: h.NoLeidasCount},
			{Name: "marcar_todas_leidas", Method: fiber.MethodPost, Summary: "Mark every notificacion of ?persona= as read", Handler: h.MarcarTodasLeidas},
			{Name: "marcar_leida", Method: fiber.MethodPost, Detail: true, Summary: "Mark one notificacion as read", Handler: h.MarcarLeida},
		},
	})
	return vs
}

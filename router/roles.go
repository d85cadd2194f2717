package router

import (
	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/serializers"
	"github.com/facet-unt/departamentos-api/utils/viewset"
)

// RolesRouter registers the rol resources
func RolesRouter(d Deps) *DefaultRouter {
	r := NewDefaultRouter()
	r.Register("roles", viewset.New(d.DB, viewset.Config[model.Rol, serializers.RolInput]{
		Name:           "Rol",
		Permission:     viewset.ReadWrite(viewset.AllowAny, viewset.IsStaff),
		OrderingFields: []string{"descripcion"},
		Filters:        []string{"descripcion", "descripcion__icontains"},
		SearchFields:   []string{"descripcion"},
		PageSize:       d.PageSize,
		Read:           func(m *model.Rol) any { return serializers.NewRol(m) },
	}), "rol")
	return r
}

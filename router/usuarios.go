package router

import (
	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/serializers"
	"github.com/facet-unt/departamentos-api/utils/viewset"
)

// UsuariosRouter registers the usuario resources
func UsuariosRouter(d Deps) *DefaultRouter {
	r := NewDefaultRouter()
	r.Register("users", viewset.New(d.DB, viewset.Config[model.Usuario, serializers.UsuarioInput]{
		Name:           "Usuario",
		Permission:     viewset.ReadWrite(viewset.IsAuthenticated, viewset.IsStaff),
		Preload:        []string{"Rol"},
		OrderingFields: []string{"email", "apellido", "legajo", "last_login"},
		Filters:        []string{"email", "rol", "is_active", "is_staff", "legajo", "documento"},
		Relations:      map[string]viewset.Relation{"rol": {Column: "rol_id", Table: "roles"}},
		SearchFields:   []string{"email", "nombre", "apellido"},
		PageSize:       d.PageSize,
		Read:           func(m *model.Usuario) any { return serializers.NewUsuario(m) },
	}), "usuario")
	return r
}

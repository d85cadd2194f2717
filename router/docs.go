package router

import (
	"net/http"
	"reflect"

	auth_handlers "github.com/facet-unt/departamentos-api/handlers/auth"
	docs_handlers "github.com/facet-unt/departamentos-api/handlers/docs"
	"github.com/facet-unt/departamentos-api/serializers"
)

// DocResources describes every resource of r as mounted under mountPath.
func DocResources(mountPath string, r *DefaultRouter) []docs_handlers.Resource {
	routes := r.Registry()
	out := make([]docs_handlers.Resource, 0, len(routes))
	for _, route := range routes {
		out = append(out, docs_handlers.Resource{
			Path:        mountPath + "/" + route.Prefix,
			Tag:         route.Prefix,
			Description: route.Resource.Describe(),
		})
	}
	return out
}

// AuthEndpoints documents the token views under /login/.
func AuthEndpoints() []docs_handlers.Endpoint {
	pair := reflect.TypeOf(auth_handlers.TokenPair{})
	return []docs_handlers.Endpoint{
		{Method: http.MethodPost, Path: "/login/token/", Tag: "login", Summary: "Obtain an access and refresh token pair", Body: reflect.TypeOf(auth_handlers.LoginRequest{}), Response: pair},
		{Method: http.MethodPost, Path: "/login/token/refresh/", Tag: "login", Summary: "Rotate the refresh token", Body: reflect.TypeOf(auth_handlers.RefreshRequest{}), Response: pair},
		{Method: http.MethodPost, Path: "/login/logout/", Tag: "login", Summary: "Revoke the current tokens", Secured: true, Body: reflect.TypeOf(auth_handlers.RefreshRequest{})},
		{Method: http.MethodGet, Path: "/login/me/", Tag: "login", Summary: "Current usuario", Secured: true, Response: reflect.TypeOf(serializers.UsuarioOutput{})},
		{Method: http.MethodPost, Path: "/login/change-password/", Tag: "login", Summary: "Change the password of the current usuario", Secured: true, Body: reflect.TypeOf(auth_handlers.ChangePasswordRequest{}), Response: pair},
	}
}

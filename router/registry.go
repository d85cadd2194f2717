package router

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/facet-unt/departamentos-api/utils/viewset"
)

// Route is one registry entry: a resource mounted under prefix.
type Route struct {
	Prefix   string
	Basename string
	Resource viewset.Resource
}

// DefaultRouter keeps an ordered registry of resources and serves an API
// root listing them.
type DefaultRouter struct {
	registry []Route
}

// NewDefaultRouter creates an empty router
func NewDefaultRouter() *DefaultRouter {
	return &DefaultRouter{}
}

// Register appends a resource under prefix. The basename defaults to the prefix.
func (r *DefaultRouter) Register(prefix string, res viewset.Resource, basename string) {
	prefix = strings.Trim(prefix, "/")
	if basename == "" {
		basename = prefix
	}
	r.registry = append(r.registry, Route{Prefix: prefix, Basename: basename, Resource: res})
}

// Registry returns the routes in registration order.
func (r *DefaultRouter) Registry() []Route {
	out := make([]Route, len(r.registry))
	copy(out, r.registry)
	return out
}

// Extend appends the routes of other routers. A prefix already registered
// keeps its first resource.
func (r *DefaultRouter) Extend(others ...*DefaultRouter) {
	seen := make(map[string]bool, len(r.registry))
	for _, route := range r.registry {
		seen[route.Prefix] = true
	}
	for _, other := range others {
		for _, route := range other.registry {
			if seen[route.Prefix] {
				continue
			}
			seen[route.Prefix] = true
			r.registry = append(r.registry, route)
		}
	}
}

// Mount serves the API root at / and every resource under /<prefix>.
// wrap, when given, returns the handlers run ahead of each route of a
// resource. They are attached to the routes, not the prefix, so unmatched
// paths still reach the 404 handler.
func (r *DefaultRouter) Mount(g fiber.Router, wrap ...func(route Route) fiber.Handler) {
	g.Get("/", r.APIRoot)
	for _, route := range r.registry {
		var handlers []fiber.Handler
		for _, w := range wrap {
			handlers = append(handlers, w(route))
		}
		route.Resource.Mount(g.Group("/"+route.Prefix), handlers...)
	}
}

// APIRoot lists {prefix: absolute URL} relative to the request path.
func (r *DefaultRouter) APIRoot(c *fiber.Ctx) error {
	return r.writeRoot(c, strings.TrimSuffix(c.Path(), "/")+"/")
}

// RootAt lists the registry as mounted under mountPath, whatever path serves it.
func (r *DefaultRouter) RootAt(mountPath string) fiber.Handler {
	mountPath = "/" + strings.Trim(mountPath, "/") + "/"
	return func(c *fiber.Ctx) error {
		return r.writeRoot(c, mountPath)
	}
}

// writeRoot keeps registry order, which a map would lose.
func (r *DefaultRouter) writeRoot(c *fiber.Ctx, path string) error {
	base := c.BaseURL() + path

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, route := range r.registry {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(route.Prefix)
		url, _ := json.Marshal(base + route.Prefix + "/")
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(url)
	}
	buf.WriteByte('}')

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

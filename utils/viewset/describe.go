package viewset

import (
	"reflect"

	"github.com/gofiber/fiber/v2"
)

// Resource is what a router registers under a prefix.
type Resource interface {
	Mount(r fiber.Router, before ...fiber.Handler)
	Describe() Description
}

// ActionInfo describes an extra route.
type ActionInfo struct {
	Name    string
	Method  string
	Detail  bool
	Summary string
}

// Description summarises a viewset for route listings and API docs.
type Description struct {
	Name     string
	ReadOnly bool
	Filters  []string
	Search   []string
	Ordering []string
	Actions  []ActionInfo
	Input    reflect.Type
	Read     reflect.Type
	Write    reflect.Type
}

// Describe reports the routes and payload types of the viewset.
func (v *ModelViewSet[M, T, PT]) Describe() Description {
	d := Description{
		Name:     v.cfg.Name,
		ReadOnly: v.cfg.ReadOnly,
		Filters:  v.cfg.Filters,
		Search:   v.cfg.SearchFields,
		Ordering: v.cfg.OrderingFields,
		Input:    reflect.TypeOf((*T)(nil)).Elem(),
		Read:     reflect.TypeOf(v.cfg.Read(new(M))),
		Write:    reflect.TypeOf(v.cfg.Write(new(M))),
	}
	for _, a := range v.cfg.Actions {
		d.Actions = append(d.Actions, ActionInfo{Name: a.Name, Method: a.Method, Detail: a.Detail, Summary: a.Summary})
	}
	return d
}

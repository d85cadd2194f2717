package docs

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-openapi/spec"

	"github.com/facet-unt/departamentos-api/utils/viewset"
)

// Info is the document header.
type Info struct {
	Title          string
	Version        string
	Description    string
	TermsOfService string
}

// DefaultInfo matches the published FACET API.
var DefaultInfo = Info{
	Title:          "Departamentos FACET",
	Version:        "v0.1",
	Description:    "Documentación de las APIs de la aplicación",
	TermsOfService: "https://www.google.com/policies/terms/",
}

// Resource is a viewset mounted at Path, e.g. "/facet/persona".
type Resource struct {
	Path        string
	Tag         string
	Description viewset.Description
}

// Endpoint is a route outside any viewset, such as the token views.
type Endpoint struct {
	Method   string
	Path     string
	Tag      string
	Summary  string
	Secured  bool
	Body     reflect.Type // nil for no body
	Response reflect.Type // nil for a bare 2xx
	Status   int
}

const securityName = "Bearer"

var binderType = reflect.TypeOf((*viewset.Binder)(nil)).Elem()

// Build assembles the Swagger 2.0 document.
func Build(info Info, resources []Resource, endpoints []Endpoint) *spec.Swagger {
	doc := &spec.Swagger{SwaggerProps: spec.SwaggerProps{
		Swagger: "2.0",
		Info: &spec.Info{InfoProps: spec.InfoProps{
			Title:          info.Title,
			Version:        info.Version,
			Description:    info.Description,
			TermsOfService: info.TermsOfService,
		}},
		Consumes: []string{"application/json"},
		Produces: []string{"application/json"},
		Paths:    &spec.Paths{Paths: map[string]spec.PathItem{}},
		SecurityDefinitions: spec.SecurityDefinitions{
			securityName: spec.APIKeyAuth("Authorization", "header"),
		},
	}}

	s := newSchemas()
	for _, r := range resources {
		addResource(doc, s, r)
	}
	for _, e := range endpoints {
		addEndpoint(doc, s, e)
	}
	doc.Definitions = s.definitions
	return doc
}

func setOperation(doc *spec.Swagger, path, method string, op *spec.Operation) {
	item := doc.Paths.Paths[path]
	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodDelete:
		item.Delete = op
	}
	doc.Paths.Paths[path] = item
}

func operationID(tag, action string) string {
	return strings.NewReplacer("-", "_", "/", "_").Replace(tag) + "_" + action
}

func idParam() *spec.Parameter {
	return spec.PathParam("id").Typed("integer", "").WithDescription("A unique integer value identifying this record.")
}

func queryParam(name, description string) *spec.Parameter {
	return spec.QueryParam(name).Typed("string", "").WithDescription(description)
}

func pageSchema(results *spec.Schema) *spec.Schema {
	page := new(spec.Schema).Typed("object", "")
	page.SetProperty("count", *spec.Int64Property())
	page.SetProperty("next", *spec.StringProperty().WithFormat("uri").AsNullable())
	page.SetProperty("previous", *spec.StringProperty().WithFormat("uri").AsNullable())
	page.SetProperty("results", *spec.ArrayProperty(results))
	page.WithRequired("count", "results")
	return page
}

func addResource(doc *spec.Swagger, s *schemas, r Resource) {
	d := r.Description
	base := strings.TrimSuffix(r.Path, "/") + "/"
	detail := base + "{id}/"
	read := s.ref(d.Read)

	list := spec.NewOperation(operationID(r.Tag, "list")).
		WithTags(r.Tag).
		WithSummary("List " + d.Name).
		RespondsWith(http.StatusOK, spec.NewResponse().WithDescription("").WithSchema(pageSchema(read)))
	list.AddParam(spec.QueryParam("page").Typed("integer", "").WithDescription("A page number within the paginated result set."))
	list.AddParam(spec.QueryParam("page_size").Typed("integer", "").WithDescription("Number of results to return per page."))
	if len(d.Search) > 0 {
		list.AddParam(queryParam("search", "A search term."))
	}
	if len(d.Ordering) > 0 {
		list.AddParam(queryParam("ordering", "Which field to use when ordering the results."))
	}
	for _, f := range d.Filters {
		list.AddParam(queryParam(f, ""))
	}
	setOperation(doc, base, http.MethodGet, list)

	retrieve := spec.NewOperation(operationID(r.Tag, "read")).
		WithTags(r.Tag).
		WithSummary("Retrieve " + d.Name).
		AddParam(idParam()).
		RespondsWith(http.StatusOK, spec.NewResponse().WithDescription("").WithSchema(read)).
		RespondsWith(http.StatusNotFound, spec.NewResponse().WithDescription("Not found."))
	setOperation(doc, detail, http.MethodGet, retrieve)

	if !d.ReadOnly {
		write := s.ref(d.Write)
		multipart := reflect.PointerTo(d.Input).Implements(binderType)

		writeOp := func(id, summary string, status int, withID bool) *spec.Operation {
			op := spec.NewOperation(operationID(r.Tag, id)).
				WithTags(r.Tag).
				WithSummary(summary).
				SecuredWith(securityName).
				RespondsWith(status, spec.NewResponse().WithDescription("").WithSchema(write)).
				RespondsWith(http.StatusBadRequest, spec.NewResponse().WithDescription("Validation errors by field."))
			if withID {
				op.AddParam(idParam())
			}
			addBody(op, s, d.Input, multipart)
			return op
		}

		setOperation(doc, base, http.MethodPost, writeOp("create", "Create "+d.Name, http.StatusCreated, false))
		setOperation(doc, detail, http.MethodPut, writeOp("update", "Update "+d.Name, http.StatusOK, true))
		setOperation(doc, detail, http.MethodPatch, writeOp("partial_update", "Partially update "+d.Name, http.StatusOK, true))

		destroy := spec.NewOperation(operationID(r.Tag, "delete")).
			WithTags(r.Tag).
			WithSummary("Delete " + d.Name).
			SecuredWith(securityName).
			AddParam(idParam()).
			RespondsWith(http.StatusNoContent, spec.NewResponse().WithDescription(""))
		setOperation(doc, detail, http.MethodDelete, destroy)
	}

	for _, a := range d.Actions {
		path := base + a.Name + "/"
		if a.Detail {
			path = detail + a.Name + "/"
		}
		op := spec.NewOperation(operationID(r.Tag, a.Name)).
			WithTags(r.Tag).
			WithSummary(a.Summary).
			RespondsWith(http.StatusOK, spec.NewResponse().WithDescription(""))
		if a.Detail {
			op.AddParam(idParam())
		}
		setOperation(doc, path, a.Method, op)
	}
}

// addBody documents the input as a JSON body, or as form fields when the
// input binds multipart requests itself.
func addBody(op *spec.Operation, s *schemas, input reflect.Type, multipart bool) {
	if !multipart {
		op.AddParam(spec.BodyParam("data", s.ref(input)))
		return
	}

	op.WithConsumes("multipart/form-data", "application/json")
	obj := s.object(derefType(input))
	for name, prop := range obj.Properties {
		p := spec.FormDataParam(name).Typed(formType(prop), "")
		for _, req := range obj.Required {
			if req == name {
				p.AsRequired()
			}
		}
		op.AddParam(p)
	}
	op.AddParam(spec.FileParam("adjunto").WithDescription("PDF attachment"))
}

func formType(prop spec.Schema) string {
	if len(prop.Type) == 0 || prop.Type.Contains("object") || prop.Type.Contains("array") {
		return "string"
	}
	return prop.Type[0]
}

func addEndpoint(doc *spec.Swagger, s *schemas, e Endpoint) {
	status := e.Status
	if status == 0 {
		status = http.StatusOK
	}
	resp := spec.NewResponse().WithDescription("")
	if e.Response != nil {
		resp.WithSchema(s.ref(e.Response))
	}

	op := spec.NewOperation(operationID(e.Tag, strings.Trim(strings.ReplaceAll(e.Path, "/", "_"), "_"))).
		WithTags(e.Tag).
		WithSummary(e.Summary).
		RespondsWith(status, resp)
	if e.Secured {
		op.SecuredWith(securityName)
	}
	if e.Body != nil {
		op.AddParam(spec.BodyParam("data", s.ref(e.Body)))
	}
	setOperation(doc, e.Path, e.Method, op)
}

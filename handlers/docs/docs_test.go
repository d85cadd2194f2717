package docs

import (
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/facet-unt/departamentos-api/utils/viewset"
)

type sampleInput struct {
	Nombre string     `json:"nombre" validate:"required,max=150"`
	Estado string     `json:"estado" validate:"omitempty,oneof=0 1"`
	Fecha  *time.Time `json:"fecha"`
	Hidden string     `json:"-"`
	secret string
}

type sampleOutput struct {
	ID     uint        `json:"id"`
	Nombre string      `json:"nombre"`
	Hijos  []sampleRef `json:"hijos"`
	Padre  *sampleRef  `json:"padre"`
	Extra  []byte      `json:"extra"`
	Tags   []string    `json:"tags"`
}

type sampleRef struct {
	ID uint `json:"id"`
}

type sampleUpload struct {
	Nexpediente string `json:"nexpediente" validate:"required"`
}

func (*sampleUpload) Bind(*fiber.Ctx) error { return nil }

func TestObjectSchema(t *testing.T) {
	s := newSchemas()
	ref := s.ref(reflect.TypeOf(&sampleInput{}))
	assert.Equal(t, "#/definitions/sampleInput", ref.Ref.String())

	def := s.definitions["sampleInput"]
	assert.Equal(t, []string{"nombre"}, def.Required)
	assert.NotContains(t, def.Properties, "Hidden")
	assert.NotContains(t, def.Properties, "secret")

	nombre := def.Properties["nombre"]
	require.NotNil(t, nombre.MaxLength)
	assert.EqualValues(t, 150, *nombre.MaxLength)
	assert.Equal(t, []interface{}{"0", "1"}, def.Properties["estado"].Enum)

	fecha := def.Properties["fecha"]
	assert.True(t, fecha.Type.Contains("string"))
	assert.Equal(t, "date-time", fecha.Format)
	assert.True(t, fecha.Nullable)
}

func TestNestedSchemasAreReferenced(t *testing.T) {
	s := newSchemas()
	s.ref(reflect.TypeOf(sampleOutput{}))

	def := s.definitions["sampleOutput"]
	assert.Contains(t, s.definitions, "sampleRef")
	assert.Equal(t, "#/definitions/sampleRef", def.Properties["padre"].Ref.String())
	assert.Equal(t, "#/definitions/sampleRef", def.Properties["hijos"].Items.Schema.Ref.String())
	assert.True(t, def.Properties["extra"].Type.Contains("object"))
	assert.True(t, def.Properties["tags"].Items.Schema.Type.Contains("string"))
	assert.True(t, def.Properties["id"].Type.Contains("integer"))
}

func TestBuildResourcePaths(t *testing.T) {
	resources := []Resource{
		{Path: "/facet/departamento", Tag: "departamento", Description: viewset.Description{
			Name:     "Departamento",
			Filters:  []string{"nombre", "estado"},
			Search:   []string{"nombre"},
			Ordering: []string{"nombre"},
			Input:    reflect.TypeOf(sampleInput{}),
			Read:     reflect.TypeOf(&sampleOutput{}),
			Write:    reflect.TypeOf(&sampleOutput{}),
			Actions:  []viewset.ActionInfo{{Name: "marcar_leida", Method: http.MethodPost, Detail: true}},
		}},
		{Path: "/facet/resolucion/", Tag: "resolucion", Description: viewset.Description{
			Name:  "Resolucion",
			Input: reflect.TypeOf(sampleUpload{}),
			Read:  reflect.TypeOf(&sampleOutput{}),
			Write: reflect.TypeOf(&sampleOutput{}),
		}},
		{Path: "/admin/rol", Tag: "rol", Description: viewset.Description{
			Name:     "Rol",
			ReadOnly: true,
			Read:     reflect.TypeOf(&sampleRef{}),
		}},
	}
	endpoints := []Endpoint{
		{Method: http.MethodPost, Path: "/login/token/", Tag: "login", Body: reflect.TypeOf(sampleRef{}), Response: reflect.TypeOf(sampleRef{})},
	}

	doc := Build(DefaultInfo, resources, endpoints)
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "Departamentos FACET", doc.Info.Title)
	assert.Contains(t, doc.SecurityDefinitions, "Bearer")

	list := doc.Paths.Paths["/facet/departamento/"]
	require.NotNil(t, list.Get)
	require.NotNil(t, list.Post)
	assert.Equal(t, "departamento_list", list.Get.ID)
	var names []string
	for _, p := range list.Get.Parameters {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"page", "page_size", "search", "ordering", "nombre", "estado"}, names)
	assert.Equal(t, "body", list.Post.Parameters[0].In)

	detail := doc.Paths.Paths["/facet/departamento/{id}/"]
	assert.NotNil(t, detail.Get)
	assert.NotNil(t, detail.Put)
	assert.NotNil(t, detail.Patch)
	assert.NotNil(t, detail.Delete)
	assert.NotNil(t, doc.Paths.Paths["/facet/departamento/{id}/marcar_leida/"].Post)

	upload := doc.Paths.Paths["/facet/resolucion/"].Post
	require.NotNil(t, upload)
	assert.Contains(t, upload.Consumes, "multipart/form-data")
	var file bool
	for _, p := range upload.Parameters {
		if p.Name == "adjunto" {
			file = p.In == "formData" && p.Type == "file"
		}
		if p.Name == "nexpediente" {
			assert.True(t, p.Required)
		}
	}
	assert.True(t, file)

	rol := doc.Paths.Paths["/admin/rol/"]
	assert.NotNil(t, rol.Get)
	assert.Nil(t, rol.Post)

	assert.NotNil(t, doc.Paths.Paths["/login/token/"].Post)
}

func TestYAMLKeepsKeyOrder(t *testing.T) {
	out, err := toYAML([]byte(`{"swagger":"2.0","info":{"title":"Departamentos FACET","version":"v0.1"},"consumes":["application/json"]}`))
	require.NoError(t, err)

	text := string(out)
	assert.Less(t, strings.Index(text, "swagger:"), strings.Index(text, "info:"))
	assert.Less(t, strings.Index(text, "info:"), strings.Index(text, "consumes:"))
	assert.Contains(t, text, "  title: Departamentos FACET")
	assert.Contains(t, text, "- application/json")

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, "2.0", back["swagger"])
}

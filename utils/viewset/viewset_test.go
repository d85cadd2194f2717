package viewset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/testutil"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

func TestParseFilter(t *testing.T) {
	cases := map[string]filterSpec{
		"estado":                       {param: "estado", field: "estado", lookup: LookupExact},
		"nombre__icontains":            {param: "nombre__icontains", field: "nombre", lookup: LookupIContains},
		"persona__apellido":            {param: "persona__apellido", relation: "persona", field: "apellido", lookup: LookupExact},
		"persona__apellido__icontains": {param: "persona__apellido__icontains", relation: "persona", field: "apellido", lookup: LookupIContains},
		"fecha_de_inicio__date":        {param: "fecha_de_inicio__date", field: "fecha_de_inicio", lookup: LookupDate},
	}
	for param, want := range cases {
		assert.Equal(t, want, parseFilter(param), param)
	}
}

type listed struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

func departamentos(db *gorm.DB, perm Permission) *ModelViewSet[model.Departamento, ReadOnlyInput[model.Departamento], *ReadOnlyInput[model.Departamento]] {
	return New(db, Config[model.Departamento, ReadOnlyInput[model.Departamento]]{
		ReadOnly:        true,
		Permission:      perm,
		Ordering:        []string{"nombre"},
		OrderingFields:  []string{"nombre"},
		Filters:         []string{"nombre__icontains", "estado"},
		SearchFields:    []string{"nombre", "interno"},
		ActiveByDefault: true,
		PageSize:        2,
		Read: func(m *model.Departamento) any {
			return listed{ID: m.ID, Nombre: m.Nombre}
		},
	})
}

func serve(t *testing.T, app *fiber.App, method, target string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

type page struct {
	Count    int64    `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []listed `json:"results"`
}

func TestListFiltersAndPages(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	for _, nombre := range []string{"Física", "Civil", "Química", "Matemática"} {
		fx.Departamento(nombre)
	}
	inactivo := fx.Departamento("Archivo")
	require.NoError(t, db.Model(inactivo).Update("estado", model.EstadoInactivo).Error)

	app := fiber.New()
	departamentos(db, AllowAny).Mount(app.Group("/departamento"))

	list := func(target string) page {
		status, body := serve(t, app, http.MethodGet, target)
		require.Equal(t, http.StatusOK, status, string(body))
		var p page
		require.NoError(t, json.Unmarshal(body, &p))
		return p
	}

	p := list("/departamento/")
	assert.EqualValues(t, 4, p.Count)
	require.Len(t, p.Results, 2)
	assert.Equal(t, "Civil", p.Results[0].Nombre)
	require.NotNil(t, p.Next)
	assert.Equal(t, "http://example.com/departamento/?page=2", *p.Next)

	p = list("/departamento/?page=last")
	assert.Equal(t, "Química", p.Results[len(p.Results)-1].Nombre)
	assert.Nil(t, p.Next)

	p = list("/departamento/?show_all=true&page_size=500")
	assert.EqualValues(t, 5, p.Count)
	assert.Len(t, p.Results, 5)

	p = list("/departamento/?nombre__icontains=MAT")
	assert.EqualValues(t, 1, p.Count)

	p = list("/departamento/?search=F%C3%ADs")
	assert.EqualValues(t, 1, p.Count)

	p = list("/departamento/?ordering=-nombre,bogus")
	assert.Equal(t, "Química", p.Results[0].Nombre)

	p = list("/departamento/?ordering=bogus")
	assert.Equal(t, "Civil", p.Results[0].Nombre)

	status, body := serve(t, app, http.MethodGet, "/departamento/?page=0")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"detail": "Invalid page."}`, string(body))

	status, body = serve(t, app, http.MethodPost, "/departamento/")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.JSONEq(t, `{"detail": "Method \"POST\" not allowed."}`, string(body))
}

func TestEmptyListHasPageOne(t *testing.T) {
	app := fiber.New()
	departamentos(testutil.NewDB(t), AllowAny).Mount(app.Group("/departamento"))

	status, body := serve(t, app, http.MethodGet, "/departamento/?page=1")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"count": 0, "next": null, "previous": null, "results": []}`, string(body))
}

func TestRetrieveAndDeny(t *testing.T) {
	db := testutil.NewDB(t)
	dep := testutil.NewFixtures(t, db).Departamento("Civil")

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if c.Get("X-User") != "" {
			c.Locals("user", &model.Usuario{ID: 7})
		}
		return c.Next()
	})
	departamentos(db, IsStaff).Mount(app.Group("/departamento"))

	status, body := serve(t, app, http.MethodGet, "/departamento/1/")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"detail": "Authentication credentials were not provided."}`, string(body))

	req := httptest.NewRequest(http.MethodGet, "/departamento/1/", nil)
	req.Header.Set("X-User", "7")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	open := fiber.New()
	departamentos(db, AllowAny).Mount(open.Group("/departamento"))
	status, body = serve(t, open, http.MethodGet, fmt.Sprintf("/departamento/%d/", dep.ID))
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id": 1, "nombre": "Civil"}`, string(body))

	status, body = serve(t, open, http.MethodGet, "/departamento/99/")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"detail": "Not found."}`, string(body))

	status, _ = serve(t, open, http.MethodGet, "/departamento/abc/")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSafeMethodPermissions(t *testing.T) {
	app := fiber.New()
	var got []bool
	app.All("/", func(c *fiber.Ctx) error {
		got = append(got, IsAuthenticatedOrReadOnly(c), ReadWrite(AllowAny, IsStaff)(c))
		return nil
	})

	_, _ = serve(t, app, http.MethodGet, "/")
	_, _ = serve(t, app, http.MethodPost, "/")
	assert.Equal(t, []bool{true, true, false, false}, got)
}

type hooks struct {
	prepared, committed, rolledBack int
}

type departamentoInput struct {
	Nombre string `json:"nombre" validate:"required"`
	hooks  *hooks
}

func (in *departamentoInput) Load(m *model.Departamento) { in.Nombre = m.Nombre }

func (in *departamentoInput) Validate(*gorm.DB, uint) validation.Errors { return nil }

func (in *departamentoInput) Apply(m *model.Departamento) { m.Nombre = in.Nombre }

func (in *departamentoInput) Prepare(context.Context) error {
	in.hooks.prepared++
	return nil
}

func (in *departamentoInput) Commit(context.Context) { in.hooks.committed++ }

func (in *departamentoInput) Rollback(context.Context) { in.hooks.rolledBack++ }

func TestFailedWriteRollsBackPreparedInput(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	fx.Departamento("Civil")
	quimica := fx.Departamento("Quimica")

	h := &hooks{}
	app := fiber.New()
	New[model.Departamento, departamentoInput](db, Config[model.Departamento, departamentoInput]{
		Permission: AllowAny,
		Read:       func(m *model.Departamento) any { return listed{ID: m.ID, Nombre: m.Nombre} },
		NewInput:   func() *departamentoInput { return &departamentoInput{hooks: h} },
	}).Mount(app.Group("/departamento"))

	send := func(method, target, body string) int {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusCreated, send(http.MethodPost, "/departamento/", `{"nombre": "Minas"}`))
	assert.Equal(t, hooks{prepared: 1, committed: 1}, *h)

	assert.Equal(t, http.StatusInternalServerError, send(http.MethodPost, "/departamento/", `{"nombre": "Civil"}`))
	assert.Equal(t, hooks{prepared: 2, committed: 1, rolledBack: 1}, *h)

	target := fmt.Sprintf("/departamento/%d/", quimica.ID)
	assert.Equal(t, http.StatusInternalServerError, send(http.MethodPut, target, `{"nombre": "Civil"}`))
	assert.Equal(t, hooks{prepared: 3, committed: 1, rolledBack: 2}, *h)

	assert.Equal(t, http.StatusBadRequest, send(http.MethodPut, target, `{}`))
	assert.Equal(t, 3, h.prepared)
}

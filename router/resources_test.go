package router

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/testutil"
)

func TestDepartamentoCRUD(t *testing.T) {
	s := newTestServer(t)
	token := s.staffToken(t)

	r := s.do(t, http.MethodPost, "/facet/departamento/", map[string]any{"nombre": " Informática ", "telefono": "4364093"}, token)
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	created := r.decode(t)
	assert.Equal(t, "Informática", created["nombre"])
	assert.Equal(t, "1", created["estado"])
	id := idOf(t, r)
	detail := fmt.Sprintf("/facet/departamento/%d/", id)

	r = s.do(t, http.MethodGet, detail, nil, "")
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "4364093", r.decode(t)["telefono"])

	r = s.do(t, http.MethodPatch, detail, map[string]any{"telefono": "999", "estado": 0}, token)
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	patched := r.decode(t)
	assert.Equal(t, "Informática", patched["nombre"])
	assert.Equal(t, "999", patched["telefono"])
	assert.Equal(t, "0", patched["estado"])

	r = s.do(t, http.MethodPut, detail, map[string]any{"telefono": "1"}, token)
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Contains(t, r.decode(t), "nombre")

	r = s.do(t, http.MethodDelete, detail, nil, token)
	assert.Equal(t, http.StatusNoContent, r.status)

	r = s.do(t, http.MethodGet, detail, nil, "")
	assert.Equal(t, http.StatusNotFound, r.status)
	assert.JSONEq(t, `{"detail": "Not found."}`, string(r.body))

	var audits int64
	require.NoError(t, s.db.Model(&model.AdminAuditLog{}).Where("resource = ?", "departamento").Count(&audits).Error)
	assert.GreaterOrEqual(t, audits, int64(3))
}

func TestPutKeepsOmittedOptionalFields(t *testing.T) {
	s := newTestServer(t)
	token := s.staffToken(t)

	r := s.do(t, http.MethodPost, "/facet/persona/", map[string]any{"nombre": "Luis", "apellido": "Sosa", "dni": "30111222", "telefono": "555"}, token)
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	detail := fmt.Sprintf("/facet/persona/%d/", idOf(t, r))

	r = s.do(t, http.MethodPut, detail, map[string]any{"nombre": "Luis", "apellido": "Sosa Paz", "dni": "30111222"}, token)
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	assert.Equal(t, "Sosa Paz", r.decode(t)["apellido"])
	assert.Equal(t, "555", r.decode(t)["telefono"])

	r = s.do(t, http.MethodPut, detail, map[string]any{"nombre": "Luis", "telefono": "1"}, token)
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.JSONEq(t, `{"apellido": ["This field is required."], "dni": ["This field is required."]}`, string(r.body))

	staff := s.fx.Usuario("jefa@facet.unt.edu.ar", "-", true)
	r = s.do(t, http.MethodPut, fmt.Sprintf("/facet/users/%d/", staff.ID), map[string]any{"email": "jefa@facet.unt.edu.ar", "nombre": "Jefa"}, token)
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	assert.Equal(t, true, r.decode(t)["is_staff"])
	assert.Equal(t, "Jefa", r.decode(t)["nombre"])
}

func TestDepartamentoNombreIsUnique(t *testing.T) {
	s := newTestServer(t)
	s.fx.Departamento("Física")

	r := s.do(t, http.MethodPost, "/facet/departamento/", map[string]any{"nombre": "Física"}, s.staffToken(t))
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.JSONEq(t, `{"nombre": ["departamento with this nombre already exists."]}`, string(r.body))
}

func TestWritesRequireAuthentication(t *testing.T) {
	s := newTestServer(t)

	r := s.do(t, http.MethodPost, "/facet/departamento/", map[string]any{"nombre": "Química"}, "")
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.JSONEq(t, `{"detail": "Authentication credentials were not provided."}`, string(r.body))

	r = s.do(t, http.MethodGet, "/facet/departamento/", nil, "")
	assert.Equal(t, http.StatusOK, r.status)

	r = s.do(t, http.MethodGet, "/facet/departamento/", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, r.status)
}

func TestUsuariosAndRolesPermissions(t *testing.T) {
	s := newTestServer(t)
	user := s.userToken(t)
	staff := s.staffToken(t)

	r := s.do(t, http.MethodGet, "/login/users/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, r.status)

	r = s.do(t, http.MethodGet, "/login/users/", nil, user)
	require.Equal(t, http.StatusOK, r.status)
	assert.EqualValues(t, 2, r.decode(t)["count"])

	r = s.do(t, http.MethodPost, "/facet/roles/", map[string]any{"descripcion": "Docente"}, user)
	assert.Equal(t, http.StatusForbidden, r.status)
	assert.JSONEq(t, `{"detail": "You do not have permission to perform this action."}`, string(r.body))

	r = s.do(t, http.MethodPost, "/facet/roles/", map[string]any{"descripcion": "Docente"}, staff)
	assert.Equal(t, http.StatusCreated, r.status, string(r.body))

	r = s.do(t, http.MethodGet, "/facet/roles/", nil, "")
	require.Equal(t, http.StatusOK, r.status)
	assert.Len(t, results(t, r), 1)
}

func TestDocenteRejectsUnknownPersona(t *testing.T) {
	s := newTestServer(t)

	r := s.do(t, http.MethodPost, "/facet/docente/", map[string]any{"persona": 999, "dedicacion": "Simple"}, s.staffToken(t))
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.JSONEq(t, `{"persona": ["Invalid pk \"999\" - object does not exist."]}`, string(r.body))
}

func TestDocenteListFilters(t *testing.T) {
	s := newTestServer(t)
	active := s.fx.Docente(s.fx.Persona("Gomez", "20111222"), model.EstadoActivo)
	s.fx.Docente(s.fx.Persona("Perez", "20333444"), model.EstadoInactivo)

	r := s.do(t, http.MethodGet, "/facet/docente/", nil, "")
	require.Equal(t, http.StatusOK, r.status)
	list := results(t, r)
	require.Len(t, list, 1)
	first := list[0].(map[string]any)
	assert.EqualValues(t, active.ID, first["id"])
	assert.Equal(t, "Gomez", first["persona_detalle"].(map[string]any)["apellido"])

	r = s.do(t, http.MethodGet, "/facet/docente/?show_all=true", nil, "")
	assert.Len(t, results(t, r), 2)

	r = s.do(t, http.MethodGet, "/facet/docente/?estado=0", nil, "")
	assert.Len(t, results(t, r), 1)

	r = s.do(t, http.MethodGet, "/facet/docente/?show_all=true&persona__apellido__icontains=per", nil, "")
	assert.Len(t, results(t, r), 1)

	r = s.do(t, http.MethodGet, "/facet/docente/?show_all=true&search=20111222", nil, "")
	assert.Len(t, results(t, r), 1)
}

func TestPagination(t *testing.T) {
	s := newTestServer(t)
	for _, nombre := range []string{"Civil", "Eléctrica", "Mecánica"} {
		s.fx.Departamento(nombre)
	}

	r := s.do(t, http.MethodGet, "/facet/departamento/?page_size=2", nil, "")
	require.Equal(t, http.StatusOK, r.status)
	page := r.decode(t)
	assert.EqualValues(t, 3, page["count"])
	assert.Nil(t, page["previous"])
	require.NotNil(t, page["next"])
	assert.Contains(t, page["next"], "page=2")
	assert.Len(t, page["results"], 2)

	r = s.do(t, http.MethodGet, "/facet/departamento/?page_size=2&page=2", nil, "")
	require.Equal(t, http.StatusOK, r.status)
	page = r.decode(t)
	assert.Nil(t, page["next"])
	assert.NotContains(t, page["previous"], "page=")
	assert.Equal(t, "Mecánica", page["results"].([]any)[0].(map[string]any)["nombre"])

	r = s.do(t, http.MethodGet, "/facet/departamento/?page=9", nil, "")
	assert.Equal(t, http.StatusNotFound, r.status)
	assert.JSONEq(t, `{"detail": "Invalid page."}`, string(r.body))

	r = s.do(t, http.MethodGet, "/facet/departamento/?ordering=-nombre", nil, "")
	assert.Equal(t, "Mecánica", results(t, r)[0].(map[string]any)["nombre"])

	r = s.do(t, http.MethodGet, "/facet/area/?departamento=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Contains(t, r.decode(t), "departamento")
}

func TestAsignaturaDocenteCreateThenDetail(t *testing.T) {
	s := newTestServer(t)
	token := s.staffToken(t)
	dep := s.fx.Departamento("Informática")
	asig := s.fx.Asignatura(dep, "I1", "Programación I")
	doc := s.fx.Docente(s.fx.Persona("Gomez", "20111222"), model.EstadoActivo)
	res := s.fx.Resolucion("123/24")

	body := map[string]any{
		"asignatura":           asig.ID,
		"docente":              doc.ID,
		"resolucion":           res.ID,
		"cargo":                "Titular",
		"fecha_de_inicio":      "01/03/2024 00:00:00",
		"fecha_de_vencimiento": "2025-03-01",
	}
	r := s.do(t, http.MethodPost, "/facet/asignatura-docente/", body, token)
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	created := r.decode(t)
	assert.EqualValues(t, asig.ID, created["asignatura"])
	assert.Equal(t, "01/03/2025 00:00:00", created["fecha_de_vencimiento"])
	assert.Equal(t, false, created["notificado"])

	r = s.do(t, http.MethodGet, fmt.Sprintf("/facet/asignatura-docente/%d/", idOf(t, r)), nil, "")
	require.Equal(t, http.StatusOK, r.status)
	detail := r.decode(t)
	assert.Equal(t, "I1", detail["asignatura"].(map[string]any)["codigo"])
	assert.Equal(t, "123/24", detail["resolucion"].(map[string]any)["nresolucion"])
	assert.EqualValues(t, doc.ID, detail["docente"].(map[string]any)["id"])

	body["fecha_de_vencimiento"] = "2023-01-01"
	r = s.do(t, http.MethodPost, "/facet/asignatura-docente/", body, token)
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Contains(t, r.decode(t), "fecha_de_vencimiento")

	r = s.do(t, http.MethodPost, "/facet/asignatura-docente/", map[string]any{"asignatura": asig.ID}, token)
	require.Equal(t, http.StatusBadRequest, r.status)
	errs := r.decode(t)
	assert.Contains(t, errs, "docente")
	assert.Contains(t, errs, "resolucion")
}

func TestJefeListWithPersona(t *testing.T) {
	s := newTestServer(t)
	s.fx.Jefe(s.fx.Persona("Lopez", "27111222"), model.EstadoActivo)

	r := s.do(t, http.MethodGet, "/facet/jefe/list_jefes_persona/", nil, "")
	require.Equal(t, http.StatusOK, r.status)
	list := results(t, r)
	require.Len(t, list, 1)
	assert.Equal(t, "Lopez", list[0].(map[string]any)["persona"].(map[string]any)["apellido"])
}

func TestResolucionMultipartUpload(t *testing.T) {
	s := newTestServer(t)
	token := s.staffToken(t)
	fields := map[string]string{
		"nexpediente": "EXP-1",
		"nresolucion": "45/24",
		"tipo":        model.ResolucionConsejoDirectivo,
		"fecha":       "2024-03-01",
	}

	r := s.form(t, http.MethodPost, "/facet/resolucion/", fields, &upload{name: "res.pdf", content: testutil.MinimalPDF(1)}, token)
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	adjunto, ok := r.decode(t)["adjunto"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(adjunto, "/media/resoluciones/"), adjunto)

	key := strings.TrimPrefix(adjunto, "/media/")
	_, err := os.Stat(filepath.Join(s.media.Root(), key))
	require.NoError(t, err)

	served := s.do(t, http.MethodGet, adjunto, nil, "")
	assert.Equal(t, http.StatusOK, served.status)

	detail := fmt.Sprintf("/facet/resolucion/%d/", idOf(t, r))
	r = s.form(t, http.MethodPatch, detail, map[string]string{"observaciones": "sin cambios"}, nil, token)
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	assert.Equal(t, adjunto, r.decode(t)["adjunto"])
	assert.Equal(t, "45/24", r.decode(t)["nresolucion"])

	r = s.do(t, http.MethodDelete, detail, nil, token)
	require.Equal(t, http.StatusNoContent, r.status)
	_, err = os.Stat(filepath.Join(s.media.Root(), key))
	assert.True(t, os.IsNotExist(err))
}

func TestResolucionRejectsInvalidAdjunto(t *testing.T) {
	s := newTestServer(t)
	fields := map[string]string{
		"nexpediente": "EXP-2",
		"nresolucion": "46/24",
		"tipo":        model.ResolucionConsejoDirectivo,
	}

	r := s.form(t, http.MethodPost, "/facet/resolucion/", fields, &upload{name: "res.pdf", content: []byte("hola")}, s.staffToken(t))
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Contains(t, r.decode(t), "adjunto")

	var count int64
	require.NoError(t, s.db.Model(&model.Resolucion{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNotificacionActions(t *testing.T) {
	s := newTestServer(t)
	token := s.userToken(t)
	persona := s.fx.Persona("Gomez", "20111222")
	other := s.fx.Persona("Perez", "20333444")

	notes := []model.Notificacion{
		{PersonaID: persona.ID, Mensaje: "Designación por vencer", Tipo: "warning"},
		{PersonaID: persona.ID, Mensaje: "Designación vencida", Tipo: "error"},
		{PersonaID: other.ID, Mensaje: "Otra", Tipo: "info"},
	}
	require.NoError(t, s.db.Create(&notes).Error)

	r := s.do(t, http.MethodGet, "/facet/notificacion/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, r.status)

	r = s.do(t, http.MethodGet, fmt.Sprintf("/facet/notificacion/no_leidas_count/?persona=%d", persona.ID), nil, token)
	require.Equal(t, http.StatusOK, r.status)
	assert.JSONEq(t, `{"count": 2}`, string(r.body))

	r = s.do(t, http.MethodPost, fmt.Sprintf("/facet/notificacion/%d/marcar_leida/", notes[0].ID), nil, token)
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, true, r.decode(t)["leido"])

	r = s.do(t, http.MethodGet, "/facet/notificacion/no_leidas/", nil, token)
	require.Equal(t, http.StatusOK, r.status)
	assert.Len(t, results(t, r), 2)

	r = s.do(t, http.MethodPost, "/facet/notificacion/marcar_todas_leidas/", nil, token)
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Contains(t, r.decode(t), "persona")

	r = s.do(t, http.MethodPost, fmt.Sprintf("/facet/notificacion/marcar_todas_leidas/?persona=%d", persona.ID), nil, token)
	require.Equal(t, http.StatusOK, r.status)
	assert.JSONEq(t, `{"updated": 1}`, string(r.body))

	r = s.do(t, http.MethodPost, "/facet/notificacion/999/marcar_leida/", nil, token)
	assert.Equal(t, http.StatusNotFound, r.status)
}

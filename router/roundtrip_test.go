package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facet-unt/departamentos-api/model"
)

// roundTrip describes one registered resource: the body it is created
// with, a partial update, the relations its detail renders as objects and
// the write only fields it never echoes.
type roundTrip struct {
	create    func(t *testing.T, s *testServer) map[string]any
	patch     map[string]any
	nested    []string
	writeOnly []string
}

func carreraFixture(t *testing.T, s *testServer) *model.Carrera {
	t.Helper()
	c := &model.Carrera{Nombre: "Ingeniería en Computación", Tipo: model.CarreraGrado, Estado: model.EstadoActivo}
	require.NoError(t, s.db.Create(c).Error)
	return c
}

func directorFixture(t *testing.T, s *testServer) *model.Director {
	t.Helper()
	d := &model.Director{PersonaID: s.fx.Persona("Director", "20000001").ID, Estado: model.EstadoActivo}
	require.NoError(t, s.db.Create(d).Error)
	return d
}

func roundTrips() map[string]roundTrip {
	persona := func(t *testing.T, s *testServer) map[string]any {
		return map[string]any{"persona": s.fx.Persona("Personal", "27000001").ID, "observaciones": "alta"}
	}
	return map[string]roundTrip{
		"users": {
			create: func(*testing.T, *testServer) map[string]any {
				return map[string]any{"email": "nora@facet.unt.edu.ar", "nombre": "Nora", "apellido": "Paz", "legajo": 1234, "password": "clave-segura-1"}
			},
			patch:     map[string]any{"nombre": "Norma"},
			writeOnly: []string{"password"},
		},
		"roles": {
			create: func(*testing.T, *testServer) map[string]any { return map[string]any{"descripcion": "Secretaría"} },
			patch:  map[string]any{"descripcion": "Bedelía"},
		},
		"persona": {
			create: func(*testing.T, *testServer) map[string]any {
				return map[string]any{"nombre": "Luis", "apellido": "Sosa", "dni": "30111222", "telefono": "555", "legajo": "L-1"}
			},
			patch: map[string]any{"telefono": "556"},
		},
		"docente": {
			create: func(t *testing.T, s *testServer) map[string]any {
				body := persona(t, s)
				body["dedicacion"] = "Simple"
				return body
			},
			patch: map[string]any{"dedicacion": "Exclusiva"},
		},
		"nodocente": {create: persona, patch: map[string]any{"estado": "0"}},
		"jefe":      {create: persona, patch: map[string]any{"observaciones": "baja"}},
		"director":  {create: persona, patch: map[string]any{"estado": "0"}},
		"departamento": {
			create: func(*testing.T, *testServer) map[string]any { return map[string]any{"nombre": "Minas", "telefono": "4364000", "interno": "7"} },
			patch:  map[string]any{"interno": "8"},
		},
		"area": {
			create: func(t *testing.T, s *testServer) map[string]any {
				return map[string]any{"departamento": s.fx.Departamento("Informática").ID, "nombre": "Software"}
			},
			patch: map[string]any{"nombre": "Redes"},
		},
		"carrera": {
			create: func(*testing.T, *testServer) map[string]any { return map[string]any{"nombre": "Licenciatura en Física", "tipo": "Grado", "sede": "Centro"} },
			patch:  map[string]any{"planestudio": "2005"},
		},
		"asignatura": {
			create: func(t *testing.T, s *testServer) map[string]any {
				return map[string]any{"departamento": s.fx.Departamento("Física").ID, "codigo": "F01", "nombre": "Física I", "tipo": "Obligatoria"}
			},
			patch: map[string]any{"modulo": "1"},
		},
		"asignatura-carrera": {
			create: func(t *testing.T, s *testServer) map[string]any {
				dep := s.fx.Departamento("Física")
				return map[string]any{"asignatura": s.fx.Asignatura(dep, "F01", "Física I").ID, "carrera": carreraFixture(t, s).ID}
			},
			patch: map[string]any{"estado": "0"},
		},
		"asignatura-docente": {
			create: func(t *testing.T, s *testServer) map[string]any {
				dep := s.fx.Departamento("Física")
				return map[string]any{
					"asignatura": s.fx.Asignatura(dep, "F01", "Física I").ID,
					"docente":    s.fx.Docente(s.fx.Persona("Docente", "25000001"), model.EstadoActivo).ID,
					"resolucion": s.fx.Resolucion("100/2024").ID,
					"cargo":      "Adjunto",
				}
			},
			patch:  map[string]any{"cargo": "Titular"},
			nested: []string{"asignatura", "docente", "resolucion"},
		},
		"resolucion": {
			create: func(*testing.T, *testServer) map[string]any {
				return map[string]any{"nexpediente": "EXP-9", "nresolucion": "9/2024", "tipo": "Decano", "observaciones": "inicial"}
			},
			patch: map[string]any{"observaciones": "editada"},
		},
		"jefe-departamento": {
			create: func(t *testing.T, s *testServer) map[string]any {
				return map[string]any{
					"departamento":  s.fx.Departamento("Química").ID,
					"jefe":          s.fx.Jefe(s.fx.Persona("Jefa", "26000001"), model.EstadoActivo).ID,
					"resolucion":    s.fx.Resolucion("200/2024").ID,
					"observaciones": "designada",
				}
			},
			patch:  map[string]any{"observaciones": "prorrogada"},
			nested: []string{"departamento", "jefe", "resolucion"},
		},
		"director-carrera": {
			create: func(t *testing.T, s *testServer) map[string]any {
				return map[string]any{
					"carrera":       carreraFixture(t, s).ID,
					"director":      directorFixture(t, s).ID,
					"resolucion":    s.fx.Resolucion("300/2024").ID,
					"observaciones": "designado",
				}
			},
			patch:  map[string]any{"observaciones": "prorrogado"},
			nested: []string{"carrera", "director", "resolucion"},
		},
		"tipo-titulo": {
			create: func(*testing.T, *testServer) map[string]any { return map[string]any{"nombre": "Ingeniero", "descripcion": "Grado"} },
			patch:  map[string]any{"descripcion": "Posgrado"},
		},
		"notificacion": {
			create: func(t *testing.T, s *testServer) map[string]any {
				return map[string]any{"persona": s.fx.Persona("Avisada", "28000001").ID, "mensaje": "Vence su designación", "tipo": "info"}
			},
			patch: map[string]any{"leido": true},
		},
	}
}

// jsonValue is v as it reads back from a decoded response.
func jsonValue(t *testing.T, v any) any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestEveryRegisteredResourceRoundTrips(t *testing.T) {
	cases := roundTrips()
	for _, route := range Combined(Deps{}).Registry() {
		route := route
		tc, ok := cases[route.Prefix]
		require.True(t, ok, "no round trip for %q", route.Prefix)

		t.Run(route.Prefix, func(t *testing.T) {
			s := newTestServer(t)
			token := s.staffToken(t)
			body := tc.create(t, s)

			r := s.do(t, http.MethodPost, "/facet/"+route.Prefix+"/", body, token)
			require.Equal(t, http.StatusCreated, r.status, string(r.body))
			created := r.decode(t)
			detail := fmt.Sprintf("/facet/%s/%d/", route.Prefix, idOf(t, r))

			r = s.do(t, http.MethodGet, detail, nil, token)
			require.Equal(t, http.StatusOK, r.status, string(r.body))
			read := r.decode(t)

			for field, sent := range body {
				want := jsonValue(t, sent)
				switch {
				case contains(tc.writeOnly, field):
					assert.NotContains(t, created, field)
					assert.NotContains(t, read, field)
				case contains(tc.nested, field):
					assert.Equal(t, want, created[field], field)
					obj, ok := read[field].(map[string]any)
					require.True(t, ok, "%s is not nested: %v", field, read[field])
					assert.Equal(t, want, obj["id"], field)
				default:
					assert.Equal(t, want, created[field], field)
					assert.Equal(t, want, read[field], field)
				}
			}

			r = s.do(t, http.MethodPatch, detail, tc.patch, token)
			require.Equal(t, http.StatusOK, r.status, string(r.body))
			patched := r.decode(t)
			r = s.do(t, http.MethodGet, detail, nil, token)
			require.Equal(t, http.StatusOK, r.status)
			reread := r.decode(t)
			for field, sent := range tc.patch {
				assert.Equal(t, jsonValue(t, sent), patched[field], field)
				assert.Equal(t, jsonValue(t, sent), reread[field], field)
			}

			r = s.do(t, http.MethodDelete, detail, nil, token)
			require.Equal(t, http.StatusNoContent, r.status, string(r.body))
			r = s.do(t, http.MethodGet, detail, nil, token)
			assert.Equal(t, http.StatusNotFound, r.status)
		})
	}
}

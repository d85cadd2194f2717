package serializers

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/services/storage"
	"github.com/facet-unt/departamentos-api/utils/auth"
	"github.com/facet-unt/departamentos-api/utils/testutil"
)

func TestPKAcceptsNumbersAndStrings(t *testing.T) {
	var in struct {
		A PK  `json:"a"`
		B PK  `json:"b"`
		C *PK `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 5, "b": "7", "c": null}`), &in))
	assert.Equal(t, PK(5), in.A)
	assert.Equal(t, PK(7), in.B)
	assert.Nil(t, in.C)

	err := json.Unmarshal([]byte(`{"a": "x"}`), &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected pk value")
}

func TestDateTimeLayouts(t *testing.T) {
	for _, raw := range []string{`"2024-03-01T08:30:00Z"`, `"01/03/2024 08:30:00"`, `"2024-03-01"`} {
		var d DateTime
		require.NoError(t, json.Unmarshal([]byte(raw), &d), raw)
		assert.Equal(t, 2024, d.Year(), raw)
		assert.Equal(t, time.March, d.Month(), raw)
		assert.Equal(t, 1, d.Day(), raw)
	}

	var d DateTime
	assert.Error(t, json.Unmarshal([]byte(`"marzo"`), &d))

	out, err := json.Marshal(DateTime{Time: time.Date(2024, 12, 31, 23, 59, 1, 0, time.UTC)})
	require.NoError(t, err)
	assert.JSONEq(t, `"31/12/2024 23:59:01"`, string(out))

	var empty DateTime
	require.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.Nil(t, empty.Ptr())
}

func TestDocenteRequiresExistingPersona(t *testing.T) {
	db := testutil.NewDB(t)

	in := &DocenteInput{Persona: 99}
	errs := in.Validate(db, 0)
	assert.Equal(t, []string{`Invalid pk "99" - object does not exist.`}, errs["persona"])

	p := testutil.NewFixtures(t, db).Persona("Gomez", "30111222")
	in.Persona = PK(p.ID)
	assert.Empty(t, in.Validate(db, 0))

	var m model.Docente
	in.Observaciones = "<b>Titular</b>"
	in.Apply(&m)
	assert.Equal(t, p.ID, m.PersonaID)
	assert.Equal(t, model.EstadoActivo, m.Estado)
	assert.Equal(t, "Titular", m.Observaciones)
}

func TestPersonaDniUnique(t *testing.T) {
	db := testutil.NewDB(t)
	p := testutil.NewFixtures(t, db).Persona("Gomez", "30111222")

	in := &PersonaInput{Nombre: "Luis", Apellido: "Perez", Dni: "30111222"}
	assert.Equal(t, []string{"persona with this dni already exists."}, in.Validate(db, 0)["dni"])
	assert.Empty(t, in.Validate(db, p.ID)["dni"])
}

func TestAsignaturaAreaMustBelongToDepartamento(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	computacion := fx.Departamento("Computación")
	fisica := fx.Departamento("Física")
	area := &model.Area{DepartamentoID: fisica.ID, Nombre: "Óptica", Estado: model.EstadoActivo}
	require.NoError(t, db.Create(area).Error)

	areaPK := PK(area.ID)
	in := &AsignaturaInput{Area: &areaPK, Departamento: PK(computacion.ID), Codigo: "C1", Nombre: "Algoritmos", Tipo: model.AsignaturaObligatoria}
	assert.NotEmpty(t, in.Validate(db, 0)["area"])

	in.Departamento = PK(fisica.ID)
	assert.Empty(t, in.Validate(db, 0))
}

func TestAsignaturaCarreraUniquePair(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	asig := fx.Asignatura(fx.Departamento("Computación"), "C1", "Algoritmos")
	carrera := &model.Carrera{Nombre: "Ingeniería en Computación", Tipo: model.CarreraGrado, Estado: model.EstadoActivo}
	require.NoError(t, db.Create(carrera).Error)
	require.NoError(t, db.Create(&model.AsignaturaCarrera{AsignaturaID: asig.ID, CarreraID: carrera.ID, Estado: model.EstadoActivo}).Error)

	in := &AsignaturaCarreraInput{Asignatura: PK(asig.ID), Carrera: PK(carrera.ID)}
	assert.Equal(t, []string{"The fields asignatura, carrera must make a unique set."}, in.Validate(db, 0)["non_field_errors"])
}

func TestAsignaturaDocenteCreateAliases(t *testing.T) {
	var in AsignaturaDocenteCreate
	body := `{"asignatura": 1, "docente": "2", "resolucion": 3, "fecha_inicio": "01/03/2024 00:00:00", "fecha_fin": "2025-02-28T00:00:00Z"}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	var m model.AsignaturaDocente
	in.Apply(&m)
	require.NotNil(t, m.FechaDeInicio)
	require.NotNil(t, m.FechaDeVencimiento)
	assert.Equal(t, 2024, m.FechaDeInicio.Year())
	assert.Equal(t, 2025, m.FechaDeVencimiento.Year())
	assert.Equal(t, uint(2), m.DocenteID)
	assert.False(t, m.Notificado)
}

func TestAsignaturaDocenteRejectsInvertedPeriod(t *testing.T) {
	db := testutil.NewDB(t)
	in := &AsignaturaDocenteCreate{
		FechaDeInicio:      &DateTime{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		FechaDeVencimiento: &DateTime{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	assert.NotEmpty(t, in.Validate(db, 0)["fecha_de_vencimiento"])
}

func TestNewEndDateResetsNotificado(t *testing.T) {
	old := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	m := &model.JefeDepartamento{FechaDeFin: &old, Notificado: true}

	in := &JefeDepartamentoCreate{}
	in.Load(m)
	in.Notificado = nil
	in.FechaDeFin = &DateTime{Time: old.AddDate(1, 0, 0)}
	in.Apply(m)
	assert.False(t, m.Notificado)
}

func TestJefeDepartamentoDetailNestsRelations(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	jefe := fx.Jefe(fx.Persona("Gomez", "30111222"), model.EstadoActivo)
	dep := fx.Departamento("Computación")
	res := fx.Resolucion("123/2024")

	row := &model.JefeDepartamento{DepartamentoID: dep.ID, JefeID: jefe.ID, ResolucionID: res.ID, Estado: model.EstadoActivo}
	require.NoError(t, db.Create(row).Error)

	q := db
	for _, p := range JefeDepartamentoPreload {
		q = q.Preload(p)
	}
	var loaded model.JefeDepartamento
	require.NoError(t, q.First(&loaded, row.ID).Error)

	out, err := json.Marshal(NewJefeDepartamentoDetail(&loaded))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(out, &body))
	assert.Equal(t, "Computación", body["departamento"].(map[string]any)["nombre"])
	assert.Equal(t, "123/2024", body["resolucion"].(map[string]any)["nresolucion"])
	persona := body["jefe"].(map[string]any)["persona_detalle"].(map[string]any)
	assert.Equal(t, "Gomez", persona["apellido"])
	assert.Nil(t, body["fecha_de_fin"])

	flat, err := json.Marshal(NewJefeDepartamento(&loaded))
	require.NoError(t, err)
	assert.Contains(t, string(flat), `"jefe":`+jsonNumber(jefe.ID))
}

func TestNotificacionMetadata(t *testing.T) {
	db := testutil.NewDB(t)
	p := testutil.NewFixtures(t, db).Persona("Gomez", "30111222")

	in := &NotificacionInput{Persona: PK(p.ID), Mensaje: "Hola", Metadata: json.RawMessage(`[1,2]`)}
	assert.NotEmpty(t, in.Validate(db, 0)["metadata"])

	in.Metadata = json.RawMessage(`{"designacion": "jefe_departamento", "designacion_id": 4}`)
	assert.Empty(t, in.Validate(db, 0))

	var m model.Notificacion
	in.Apply(&m)
	assert.Equal(t, model.NotificacionInfo, m.Tipo)
	assert.JSONEq(t, `{"designacion": "jefe_departamento", "designacion_id": 4}`, string(NewNotificacion(&m).Metadata))
}

func TestDeleteAdjunto(t *testing.T) {
	st, err := storage.NewLocalStorage(t.TempDir(), "/media/")
	require.NoError(t, err)

	ctx := context.Background()
	url, err := st.Save(ctx, "resoluciones/a.pdf", strings.NewReader("%PDF"), "application/pdf")
	require.NoError(t, err)

	require.NoError(t, DeleteAdjunto(ctx, st, url))
	_, err = st.Open(ctx, "resoluciones/a.pdf")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, DeleteAdjunto(ctx, st, "https://elsewhere.example/x.pdf"))
	assert.Nil(t, NewResolucion(&model.Resolucion{}).Adjunto)
}

func TestResolucionRollbackRemovesUpload(t *testing.T) {
	st, err := storage.NewLocalStorage(t.TempDir(), "/media/")
	require.NoError(t, err)

	ctx := context.Background()
	url, err := st.Save(ctx, "resoluciones/huerfana.pdf", strings.NewReader("%PDF"), "application/pdf")
	require.NoError(t, err)

	in := NewResolucionInput(st)()
	in.uploaded = url
	in.Rollback(ctx)

	_, err = st.Open(ctx, "resoluciones/huerfana.pdf")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Empty(t, in.uploaded)

	var m model.Resolucion
	in.Apply(&m)
	assert.Empty(t, m.Adjunto)
}

func TestUsuarioPasswordHashedDuringValidation(t *testing.T) {
	auth.Cost = bcrypt.MinCost
	db := testutil.NewDB(t)

	long := &UsuarioInput{Email: "largo@facet.unt.edu.ar", Password: strings.Repeat("ñ", 40)}
	errs := long.Validate(db, 0)
	assert.Equal(t, []string{"Ensure this field has no more than 72 bytes."}, errs["password"])
	var m model.Usuario
	long.Apply(&m)
	assert.Empty(t, m.PasswordHash)
	assert.Zero(t, m.TokenVersion)

	ok := &UsuarioInput{Email: "ok@facet.unt.edu.ar", Password: "correcta-horse"}
	assert.Empty(t, ok.Validate(db, 0))
	ok.Apply(&m)
	assert.NoError(t, auth.VerifyPassword(m.PasswordHash, "correcta-horse"))
	assert.Equal(t, 1, m.TokenVersion)
}

func TestOutputsAreNilSafe(t *testing.T) {
	assert.Nil(t, NewPersona(nil))
	assert.Nil(t, NewDocente(nil))
	assert.Nil(t, NewAsignaturaDocenteDetail(nil))
	assert.Nil(t, NewDirectorCarreraDetail(&model.DirectorCarrera{}).Director)
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

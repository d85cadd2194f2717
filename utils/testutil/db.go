// Package testutil builds migrated in-memory databases and fixtures for tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/facet-unt/departamentos-api/model"
)

var seq atomic.Int64

// NewDB opens a private in-memory SQLite database with every model migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, seq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Fixtures creates records with sensible defaults.
type Fixtures struct {
	T  testing.TB
	DB *gorm.DB
}

// NewFixtures binds fixtures to db.
func NewFixtures(t testing.TB, db *gorm.DB) *Fixtures {
	return &Fixtures{T: t, DB: db}
}

func (f *Fixtures) create(v interface{}) {
	f.T.Helper()
	if err := f.DB.Create(v).Error; err != nil {
		f.T.Fatalf("create fixture %T: %v", v, err)
	}
}

// Persona creates a persona with the given apellido.
func (f *Fixtures) Persona(apellido, dni string) *model.Persona {
	p := &model.Persona{Nombre: "Ana", Apellido: apellido, Dni: dni, Estado: model.EstadoActivo, Email: strings.ToLower(apellido) + "@facet.unt.edu.ar"}
	f.create(p)
	return p
}

// Docente creates a docente for p.
func (f *Fixtures) Docente(p *model.Persona, estado model.Estado) *model.Docente {
	d := &model.Docente{PersonaID: p.ID, Estado: estado, Dedicacion: "Exclusiva"}
	f.create(d)
	return d
}

// Jefe creates a jefe for p.
func (f *Fixtures) Jefe(p *model.Persona, estado model.Estado) *model.Jefe {
	j := &model.Jefe{PersonaID: p.ID, Estado: estado}
	f.create(j)
	return j
}

// Departamento creates an active departamento.
func (f *Fixtures) Departamento(nombre string) *model.Departamento {
	d := &model.Departamento{Nombre: nombre, Telefono: "4364093", Estado: model.EstadoActivo, Interno: "101"}
	f.create(d)
	return d
}

// Asignatura creates an asignatura in dep.
func (f *Fixtures) Asignatura(dep *model.Departamento, codigo, nombre string) *model.Asignatura {
	a := &model.Asignatura{DepartamentoID: dep.ID, Codigo: codigo, Nombre: nombre, Tipo: model.AsignaturaObligatoria, Estado: model.EstadoActivo}
	f.create(a)
	return a
}

// Resolucion creates a Consejo Directivo resolucion.
func (f *Fixtures) Resolucion(nresolucion string) *model.Resolucion {
	fecha := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	r := &model.Resolucion{Nexpediente: "EXP-" + nresolucion, Nresolucion: nresolucion, Tipo: model.ResolucionConsejoDirectivo, Fecha: &fecha, Estado: model.EstadoActivo}
	f.create(r)
	return r
}

// Rol creates a rol.
func (f *Fixtures) Rol(descripcion string) *model.Rol {
	r := &model.Rol{Descripcion: descripcion}
	f.create(r)
	return r
}

// Usuario creates an active usuario with a precomputed hash.
func (f *Fixtures) Usuario(email, passwordHash string, staff bool) *model.Usuario {
	u := &model.Usuario{Email: email, PasswordHash: passwordHash, Nombre: "Admin", Apellido: "FACET", IsActive: true, IsStaff: staff}
	f.create(u)
	return u
}

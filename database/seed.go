package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/auth"
)

// AdminCredentials is the bootstrap staff account, usually ADMIN_EMAIL/ADMIN_PASSWORD.
type AdminCredentials struct {
	Email    string
	Password string
}

// Seeder handles database seeding operations
type Seeder struct {
	db    *gorm.DB
	log   *zap.Logger
	admin AdminCredentials
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, l *zap.Logger, admin AdminCredentials) *Seeder {
	return &Seeder{db: db, log: l, admin: admin}
}

// SeedAll runs every seed in foreign key order. Each seed skips rows that exist.
func (s *Seeder) SeedAll() error {
	s.log.Info("starting database seeding")

	if err := s.SeedRoles(); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := s.SeedTiposTitulo(); err != nil {
		return fmt.Errorf("failed to seed tipos de titulo: %w", err)
	}
	if err := s.SeedDepartamentos(); err != nil {
		return fmt.Errorf("failed to seed departamentos: %w", err)
	}

	s.log.Info("database seeding completed")
	return nil
}

// SeedRoles creates the built-in roles
func (s *Seeder) SeedRoles() error {
	for _, descripcion := range []string{model.RolAdministrador, model.RolDepartamento, model.RolDocente} {
		rol := model.Rol{Descripcion: descripcion}
		if err := s.db.Where(model.Rol{Descripcion: descripcion}).FirstOrCreate(&rol).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedAdminUser creates the staff account when credentials are configured
func (s *Seeder) SeedAdminUser() error {
	if s.admin.Email == "" || s.admin.Password == "" {
		s.log.Warn("ADMIN_EMAIL and ADMIN_PASSWORD not set, skipping admin user creation")
		return nil
	}

	var count int64
	if err := s.db.Model(&model.Usuario{}).Where("email = ?", s.admin.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.log.Info("admin user already exists, skipping", zap.String("email", s.admin.Email))
		return nil
	}

	passwordHash, err := auth.HashPassword(s.admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	var rol model.Rol
	if err := s.db.Where("descripcion = ?", model.RolAdministrador).First(&rol).Error; err != nil {
		return err
	}

	admin := &model.Usuario{
		Email:              s.admin.Email,
		PasswordHash:       passwordHash,
		Nombre:             "Administrador",
		Apellido:           "FACET",
		RolID:              &rol.ID,
		IsActive:           true,
		IsStaff:            true,
		HasChangedPassword: false,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	s.log.Info("created admin user", zap.String("email", admin.Email))
	return nil
}

// SeedTiposTitulo creates the usual academic degrees
func (s *Seeder) SeedTiposTitulo() error {
	var count int64
	if err := s.db.Model(&model.TipoTitulo{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.log.Info("tipos de titulo already exist, skipping")
		return nil
	}

	tipos := []model.TipoTitulo{
		{Nombre: "Ingeniero", Descripcion: "Título de grado en ingeniería", Estado: model.EstadoActivo},
		{Nombre: "Licenciado", Descripcion: "Título de grado de licenciatura", Estado: model.EstadoActivo},
		{Nombre: "Profesor", Descripcion: "Título docente", Estado: model.EstadoActivo},
		{Nombre: "Magister", Descripcion: "Título de posgrado de maestría", Estado: model.EstadoActivo},
		{Nombre: "Doctor", Descripcion: "Título de posgrado de doctorado", Estado: model.EstadoActivo},
		{Nombre: "Técnico", Descripcion: "Título de pregrado", Estado: model.EstadoActivo},
	}
	if err := s.db.Create(&tipos).Error; err != nil {
		return err
	}

	s.log.Info("created tipos de titulo", zap.Int("count", len(tipos)))
	return nil
}

// SeedDepartamentos creates the FACET departamentos
func (s *Seeder) SeedDepartamentos() error {
	var count int64
	if err := s.db.Model(&model.Departamento{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.log.Info("departamentos already exist, skipping")
		return nil
	}

	departamentos := []model.Departamento{
		{Nombre: "Departamento de Ciencias de la Computación", Telefono: "4364093", Interno: "7810", Estado: model.EstadoActivo},
		{Nombre: "Departamento de Física", Telefono: "4364093", Interno: "7740", Estado: model.EstadoActivo},
		{Nombre: "Departamento de Matemática", Telefono: "4364093", Interno: "7750", Estado: model.EstadoActivo},
		{Nombre: "Departamento de Ingeniería Civil", Telefono: "4364093", Interno: "7760", Estado: model.EstadoActivo},
	}
	if err := s.db.Create(&departamentos).Error; err != nil {
		return err
	}

	s.log.Info("created departamentos", zap.Int("count", len(departamentos)))
	return nil
}

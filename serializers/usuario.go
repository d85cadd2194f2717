package serializers

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/auth"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// UsuarioInput is the write side of a usuario. Password is write only and
// required on create.
type UsuarioInput struct {
	Email              string `json:"email" validate:"required,email,max=254"`
	Nombre             string `json:"nombre" validate:"max=100"`
	Apellido           string `json:"apellido" validate:"max=100"`
	Legajo             int    `json:"legajo" validate:"gte=0"`
	Documento          int    `json:"documento" validate:"gte=0"`
	Rol                *PK    `json:"rol"`
	IsActive           *bool  `json:"is_active"`
	IsStaff            bool   `json:"is_staff"`
	HasChangedPassword bool   `json:"has_changed_password"`
	Password           string `json:"password" validate:"omitempty,min=8,max=72"`

	hash string
}

func (in *UsuarioInput) Load(m *model.Usuario) {
	in.Email = m.Email
	in.Nombre = m.Nombre
	in.Apellido = m.Apellido
	in.Legajo = m.Legajo
	in.Documento = m.Documento
	rol := PKOf(m.RolID)
	in.Rol = &rol
	active := m.IsActive
	in.IsActive = &active
	in.IsStaff = m.IsStaff
	in.HasChangedPassword = m.HasChangedPassword
}

func (in *UsuarioInput) Validate(db *gorm.DB, id uint) validation.Errors {
	errs := validation.Errors{}
	if id == 0 && in.Password == "" {
		errs.Add("password", "This field is required.")
	}
	if in.Password != "" {
		if ok, msgs := validation.ValidatePassword(in.Password); !ok {
			for _, msg := range msgs {
				errs.Add("password", msg)
			}
		} else if utf8.RuneCountInString(in.Password) <= 72 {
			in.hashPassword(errs)
		}
	}
	checkUnique(db, errs, "email", "email", &model.Usuario{}, normalizeEmail(in.Email), id, "usuario")
	if in.Rol != nil {
		checkPK(db, errs, "rol", &model.Rol{}, *in.Rol)
	}
	return errs
}

func (in *UsuarioInput) Apply(m *model.Usuario) {
	m.Email = normalizeEmail(in.Email)
	m.Nombre = validation.SanitizeString(in.Nombre)
	m.Apellido = validation.SanitizeString(in.Apellido)
	m.Legajo = in.Legajo
	m.Documento = in.Documento
	m.RolID = nil
	if in.Rol != nil {
		m.RolID = in.Rol.Ptr()
	}
	m.IsActive = in.IsActive == nil || *in.IsActive
	m.IsStaff = in.IsStaff
	m.HasChangedPassword = in.HasChangedPassword
	if in.hash != "" {
		m.PasswordHash = in.hash
		m.TokenVersion++
	}
}

// hashPassword runs bcrypt during validation so Apply never has to fail.
// Multibyte passwords can pass the length tag and still exceed 72 bytes.
func (in *UsuarioInput) hashPassword(errs validation.Errors) {
	hash, err := auth.HashPassword(in.Password)
	switch {
	case errors.Is(err, auth.ErrPasswordTooLong):
		errs.Add("password", "Ensure this field has no more than 72 bytes.")
	case err != nil:
		errs.Add("password", err.Error())
	default:
		in.hash = hash
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UsuarioOutput is the wire shape of a usuario
type UsuarioOutput struct {
	ID                 uint       `json:"id"`
	Email              string     `json:"email"`
	Nombre             string     `json:"nombre"`
	Apellido           string     `json:"apellido"`
	Legajo             int        `json:"legajo"`
	Documento          int        `json:"documento"`
	Rol                *uint      `json:"rol"`
	RolDetalle         string     `json:"rol_detalle"`
	IsActive           bool       `json:"is_active"`
	IsStaff            bool       `json:"is_staff"`
	HasChangedPassword bool       `json:"has_changed_password"`
	LastLogin          *time.Time `json:"last_login"`
}

// NewUsuario renders m without its password.
func NewUsuario(m *model.Usuario) *UsuarioOutput {
	return &UsuarioOutput{
		ID:                 m.ID,
		Email:              m.Email,
		Nombre:             m.Nombre,
		Apellido:           m.Apellido,
		Legajo:             m.Legajo,
		Documento:          m.Documento,
		Rol:                m.RolID,
		RolDetalle:         m.RoleName(),
		IsActive:           m.IsActive,
		IsStaff:            m.IsStaff,
		HasChangedPassword: m.HasChangedPassword,
		LastLogin:          m.LastLogin,
	}
}

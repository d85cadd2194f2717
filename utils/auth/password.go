package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/facet-unt/departamentos-api/model"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
	ErrPasswordMismatch = errors.New("password does not match")
	ErrPasswordUnusable = errors.New("usuario has no usable password")
)

// MinPasswordLength matches the login form's minimum.
const MinPasswordLength = 8

// Cost is the bcrypt cost used by HashPassword. Tests lower it.
var Cost = 12

// HashPassword returns the bcrypt hash stored in usuario.password_hash.
func HashPassword(password string) (string, error) {
	switch {
	case len(password) < MinPasswordLength:
		return "", ErrPasswordTooShort
	case len(password) > 72:
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func VerifyPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// CheckUsuario verifies a login attempt against u. Inactive usuarios and
// usuarios created without a password never match.
func CheckUsuario(u *model.Usuario, password string) error {
	if u.PasswordHash == "" {
		return ErrPasswordUnusable
	}
	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return err
	}
	if !u.IsActive {
		return ErrPasswordMismatch
	}
	return nil
}

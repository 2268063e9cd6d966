package accounts

import (
	"errors"
	"unicode/utf8"
)

const MinPasswordLen = 6

var (
	ErrPasswordMismatch = errors.New("Las contraseñas no coinciden")
	ErrPasswordTooShort = errors.New("La contraseña debe tener al menos 6 caracteres")
)

// Validate corre las reglas locales en orden y corta en la primera que falla.
func (f RegistrationForm) Validate() error {
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(f.Password) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

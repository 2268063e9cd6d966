package accounts

import (
	"errors"
	"testing"
)

func TestRegistrationForm_Validate(t *testing.T) {
	cases := []struct {
		name          string
		pass, confirm string
		want          error
	}{
		{"ok", "secret", "secret", nil},
		// la diferencia se revisa antes que el largo
		{"mismatch first", "abc", "abd", ErrPasswordMismatch},
		{"too short", "abc", "abc", ErrPasswordTooShort},
		{"five runes", "ñandú", "ñandú", ErrPasswordTooShort},
		{"six runes", "ñandús", "ñandús", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := RegistrationForm{Password: tc.pass, ConfirmPassword: tc.confirm}.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

package accounts

import (
	"bytes"
	"encoding/json"
	"strings"

	"dulce-dosis-web/internal/platform/jsonx"
	"dulce-dosis-web/internal/ports/session"
)

// RegistrationForm son los campos del formulario de registro.
// ConfirmPassword solo se usa para validar; nunca se envía.
type RegistrationForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type LoginForm struct {
	Email    string
	Password string
}

// RegisterRequest es el body de POST auth/register/.
type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse cubre las tres formas que devuelve el backend:
// {token, user}, {token, id|user_id} o ninguna de las dos.
type AuthResponse struct {
	Token  string           `json:"token"`
	User   json.RawMessage  `json:"user,omitempty"`
	ID     jsonx.FlexString `json:"id,omitempty"`
	UserID jsonx.FlexString `json:"user_id,omitempty"`
}

type remoteUser struct {
	ID       jsonx.FlexString `json:"id"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Username string           `json:"username"`
}

// RemoteUser decodifica "user" solo si es un objeto JSON.
func (r AuthResponse) RemoteUser() (session.User, bool) {
	raw := bytes.TrimSpace(r.User)
	if len(raw) == 0 || raw[0] != '{' {
		return session.User{}, false
	}
	var u remoteUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return session.User{}, false
	}
	return session.User{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		Username: u.Username,
	}, true
}

// Identifier devuelve id o user_id, el primero presente.
// Un id 0 cuenta como ausente.
func (r AuthResponse) Identifier() string {
	if id := presentID(r.ID); id != "" {
		return id
	}
	return presentID(r.UserID)
}

func presentID(v jsonx.FlexString) string {
	s := strings.TrimSpace(v.String())
	if s == "0" {
		return ""
	}
	return s
}

func (r AuthResponse) HasToken() bool {
	return strings.TrimSpace(r.Token) != ""
}

package session

import "strings"

// User es el usuario autenticado tal como lo guarda la sesión del navegador.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// State es lo que vive en la cookie: token del API remoto + usuario.
type State struct {
	Token string
	User  User
}

func (s State) Authenticated() bool {
	return strings.TrimSpace(s.Token) != ""
}

package session

import "net/http"

// Manager persiste el estado de sesión entre requests del navegador.
type Manager interface {
	Load(r *http.Request) (State, error)
	Save(w http.ResponseWriter, r *http.Request, st State) error
	Clear(w http.ResponseWriter, r *http.Request) error

	// Flash guarda un aviso de un solo uso (p.ej. "Cuenta creada...").
	AddFlash(w http.ResponseWriter, r *http.Request, msg string) error
	Flashes(w http.ResponseWriter, r *http.Request) []string
}

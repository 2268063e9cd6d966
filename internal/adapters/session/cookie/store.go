package cookie

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dulce-dosis-web/internal/ports/session"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"
)

const (
	keyToken    = "token"
	keyUserID   = "user_id"
	keyName     = "user_name"
	keyEmail    = "user_email"
	keyUsername = "user_username"
)

var (
	ErrInvalidSecret = errors.New("cookie: secret must be at least 32 bytes")
)

type Config struct {
	Name   string
	Secret string // vacío => clave efímera (las sesiones no sobreviven reinicios)
	MaxAge int
	Secure bool
}

// Manager implementa session.Manager sobre una cookie firmada de gorilla/sessions.
type Manager struct {
	store sessions.Store
	name  string
}

func NewManager(cfg Config) (*Manager, error) {
	key := []byte(cfg.Secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("cookie: generate key: %w", err)
		}
	}
	if len(key) < 32 {
		return nil, ErrInvalidSecret
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "dulce_dosis"
	}

	hashKey, blockKey, err := deriveKeys(key)
	if err != nil {
		return nil, err
	}

	st := sessions.NewCookieStore(hashKey, blockKey)
	st.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: st, name: name}, nil
}

// NewManagerWithStore permite inyectar cualquier sessions.Store (tests, filesystem store).
func NewManagerWithStore(store sessions.Store, name string) *Manager {
	return &Manager{store: store, name: name}
}

func (m *Manager) Load(r *http.Request) (session.State, error) {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		// Cookie corrupta o firmada con otra clave: sesión vacía.
		return session.State{}, nil
	}
	return session.State{
		Token: str(s.Values[keyToken]),
		User: session.User{
			ID:       str(s.Values[keyUserID]),
			Name:     str(s.Values[keyName]),
			Email:    str(s.Values[keyEmail]),
			Username: str(s.Values[keyUsername]),
		},
	}, nil
}

func (m *Manager) Save(w http.ResponseWriter, r *http.Request, st session.State) error {
	s, _ := m.store.Get(r, m.name)
	s.Values[keyToken] = st.Token
	s.Values[keyUserID] = st.User.ID
	s.Values[keyName] = st.User.Name
	s.Values[keyEmail] = st.User.Email
	s.Values[keyUsername] = st.User.Username
	return s.Save(r, w)
}

func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	s, _ := m.store.Get(r, m.name)
	for k := range s.Values {
		delete(s.Values, k)
	}
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	s, _ := m.store.Get(r, m.name)
	s.AddFlash(msg)
	return s.Save(r, w)
}

func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		return nil
	}
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save(r, w)

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if msg := str(v); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

// Bind devuelve la capacidad de sesión de un request concreto:
// SetToken persiste el token, Login fija el usuario.
func (m *Manager) Bind(w http.ResponseWriter, r *http.Request) *Binding {
	return &Binding{m: m, w: w, r: r}
}

type Binding struct {
	m *Manager
	w http.ResponseWriter
	r *http.Request
}

func (b *Binding) SetToken(token string) error {
	st, _ := b.m.Load(b.r)
	st.Token = token
	return b.m.Save(b.w, b.r, st)
}

func (b *Binding) Login(u session.User) error {
	st, _ := b.m.Load(b.r)
	st.User = u
	return b.m.Save(b.w, b.r, st)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// deriveKeys separa la clave de firma (HMAC) de la de cifrado (AES-256):
// el token del API no queda legible en la cookie.
func deriveKeys(secret []byte) (hashKey, blockKey []byte, err error) {
	hashKey = make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte("dulce-dosis-cookie-hash")), hashKey); err != nil {
		return nil, nil, fmt.Errorf("cookie: derive hash key: %w", err)
	}
	blockKey = make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte("dulce-dosis-cookie-block")), blockKey); err != nil {
		return nil, nil, fmt.Errorf("cookie: derive block key: %w", err)
	}
	return hashKey, blockKey, nil
}

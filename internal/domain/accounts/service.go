package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dulce-dosis-web/internal/domain/activity"
	"dulce-dosis-web/internal/ports/session"
)

const (
	PathDashboard = "/dashboard"
	PathLogin     = "/login"

	NoticeAccountCreated = "Cuenta creada exitosamente. Ahora inicia sesión."
	sessionFailedMessage = "No se pudo iniciar la sesión."
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Registrar llama al endpoint de registro del backend.
type Registrar interface {
	Register(ctx context.Context, in RegisterRequest) (AuthResponse, error)
}

// Authenticator llama al endpoint de login del backend.
type Authenticator interface {
	Login(ctx context.Context, in LoginRequest) (AuthResponse, error)
}

// Session es la capacidad de sesión del cliente: guardar token e iniciar sesión.
type Session interface {
	SetToken(token string) error
	Login(u session.User) error
}

// Outcome dice a dónde navegar después de un envío exitoso.
type Outcome struct {
	Next string

	// LoggedIn indica que quedó sesión (token + usuario).
	LoggedIn bool
	User     session.User

	// Notice se muestra en la pantalla destino (registro sin token).
	Notice string
}

type Options struct {
	// FoldDiacritics usa DeriveUsernameFolded en lugar de DeriveUsername.
	FoldDiacritics bool
}

type Service struct {
	registrar Registrar
	auth      Authenticator
	activity  activity.Recorder // opcional
	opts      Options
}

func NewService(registrar Registrar, auth Authenticator, rec activity.Recorder, opts Options) *Service {
	return &Service{
		registrar: registrar,
		auth:      auth,
		activity:  rec,
		opts:      opts,
	}
}

func (s *Service) Username(name string) string {
	if s.opts.FoldDiacritics {
		return DeriveUsernameFolded(name)
	}
	return DeriveUsername(name)
}

// Register valida localmente, envía el registro y deja la sesión iniciada si el backend lo permite.
// Los errores devueltos ya son mensajes para el usuario (ErrPassword* o *SubmitError).
func (s *Service) Register(ctx context.Context, form RegistrationForm, sess Session) (Outcome, error) {
	if err := form.Validate(); err != nil {
		return Outcome{}, err
	}
	if s.registrar == nil || sess == nil {
		return Outcome{}, ErrInvalidInput
	}

	req := RegisterRequest{
		Username: s.Username(form.Name),
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	}

	// cada envío llega al backend con su propia contraseña; el doble click lo frena el navegador
	resp, err := s.registrar.Register(ctx, req)
	if err != nil {
		return Outcome{}, submitError(err)
	}

	out, err := establish(resp, form.Name, form.Email, sess)
	if err != nil {
		return Outcome{}, err
	}

	kind := activity.KindAccountRegistered
	if !out.LoggedIn {
		kind = activity.KindAccountCreated
	}
	s.record(ctx, activity.RecordInput{UserID: out.User.ID, Kind: kind, Subject: form.Email})

	return out, nil
}

// Login usa la misma prioridad de respuesta que el registro.
func (s *Service) Login(ctx context.Context, form LoginForm, sess Session) (Outcome, error) {
	if strings.TrimSpace(form.Email) == "" || form.Password == "" {
		return Outcome{}, &SubmitError{Message: "Ingresa tu correo y contraseña", Err: ErrInvalidInput}
	}
	if s.auth == nil || sess == nil {
		return Outcome{}, ErrInvalidInput
	}

	resp, err := s.auth.Login(ctx, LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		return Outcome{}, submitError(err)
	}
	if !resp.HasToken() {
		return Outcome{}, &SubmitError{Message: "Credenciales inválidas", Err: errors.New("accounts: login response without token")}
	}

	out, err := establish(resp, "", form.Email, sess)
	if err != nil {
		return Outcome{}, err
	}
	s.record(ctx, activity.RecordInput{UserID: out.User.ID, Kind: activity.KindLogin, Subject: form.Email})
	return out, nil
}

// establish aplica la prioridad: token+user, solo token (usuario sintetizado), sin token.
func establish(resp AuthResponse, name, email string, sess Session) (Outcome, error) {
	if !resp.HasToken() {
		return Outcome{Next: PathLogin, Notice: NoticeAccountCreated}, nil
	}

	u, ok := resp.RemoteUser()
	if !ok {
		u = session.User{
			Name:  name,
			Email: email,
			ID:    resp.Identifier(),
		}
	}

	if err := sess.SetToken(resp.Token); err != nil {
		return Outcome{}, &SubmitError{Message: sessionFailedMessage, Err: fmt.Errorf("accounts: set token: %w", err)}
	}
	if err := sess.Login(u); err != nil {
		return Outcome{}, &SubmitError{Message: sessionFailedMessage, Err: fmt.Errorf("accounts: login: %w", err)}
	}

	return Outcome{Next: PathDashboard, LoggedIn: true, User: u}, nil
}

func (s *Service) record(ctx context.Context, in activity.RecordInput) {
	if s.activity == nil {
		return
	}
	// la actividad no debe cambiar el resultado del flujo
	_, _ = s.activity.Record(ctx, in)
}

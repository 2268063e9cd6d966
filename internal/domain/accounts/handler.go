package accounts

import (
	"errors"
	"net/http"

	"dulce-dosis-web/internal/middleware"
	"dulce-dosis-web/internal/platform/logger"
	"dulce-dosis-web/internal/platform/metrics"
	"dulce-dosis-web/internal/ports/session"
	"dulce-dosis-web/internal/web"

	"github.com/go-chi/chi/v5"
)

// SessionBinder entrega la capacidad de sesión ligada a un request.
type SessionBinder func(w http.ResponseWriter, r *http.Request) Session

type Deps struct {
	Service  *Service
	Sessions session.Manager
	Bind     SessionBinder
	Views    *web.Renderer
	Log      logger.Logger
	Metrics  *metrics.Metrics // puede ser nil
}

func RegisterRoutes(r chi.Router, d Deps) {
	r.Get("/", homeHandler())

	r.Get("/registro", registerPageHandler(d))
	r.Post("/registro", registerSubmitHandler(d))

	r.Get("/login", loginPageHandler(d))
	r.Post("/login", loginSubmitHandler(d))
	r.Post("/logout", logoutHandler(d))
}

type registerPage struct {
	Form  RegistrationForm
	Error string
}

type loginPage struct {
	Email   string
	Error   string
	Notices []string
}

func homeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); ok {
			http.Redirect(w, r, PathDashboard, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, PathLogin, http.StatusSeeOther)
	}
}

func registerPageHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); ok {
			http.Redirect(w, r, PathDashboard, http.StatusSeeOther)
			return
		}
		render(d, w, http.StatusOK, "register.html", registerPage{})
	}
}

func registerSubmitHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		form := RegistrationForm{
			Name:            r.PostFormValue("name"),
			Email:           r.PostFormValue("email"),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirmPassword"),
		}

		out, err := d.Service.Register(r.Context(), form, d.Bind(w, r))
		if err != nil {
			d.Metrics.FlowResult("registration", resultLabel(err))
			logSubmitError(d.Log, "registration failed", form.Email, err)

			// las contraseñas no vuelven al navegador
			form.Password, form.ConfirmPassword = "", ""
			render(d, w, http.StatusUnprocessableEntity, "register.html", registerPage{Form: form, Error: err.Error()})
			return
		}

		if out.LoggedIn {
			d.Metrics.FlowResult("registration", "session")
		} else {
			d.Metrics.FlowResult("registration", "created")
		}
		finish(d, w, r, out)
	}
}

func loginPageHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); ok {
			http.Redirect(w, r, PathDashboard, http.StatusSeeOther)
			return
		}
		render(d, w, http.StatusOK, "login.html", loginPage{Notices: d.Sessions.Flashes(w, r)})
	}
}

func loginSubmitHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		form := LoginForm{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		}

		out, err := d.Service.Login(r.Context(), form, d.Bind(w, r))
		if err != nil {
			d.Metrics.FlowResult("login", resultLabel(err))
			logSubmitError(d.Log, "login failed", form.Email, err)
			render(d, w, http.StatusUnauthorized, "login.html", loginPage{Email: form.Email, Error: err.Error()})
			return
		}

		d.Metrics.FlowResult("login", "session")
		finish(d, w, r, out)
	}
}

func logoutHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Sessions.Clear(w, r); err != nil {
			d.Log.Warn("logout: clear session", map[string]any{"error": err.Error()})
		}
		http.Redirect(w, r, PathLogin, http.StatusSeeOther)
	}
}

func finish(d Deps, w http.ResponseWriter, r *http.Request, out Outcome) {
	if out.Notice != "" {
		if err := d.Sessions.AddFlash(w, r, out.Notice); err != nil {
			d.Log.Warn("flash not saved", map[string]any{"error": err.Error()})
		}
	}
	http.Redirect(w, r, out.Next, http.StatusSeeOther)
}

func render(d Deps, w http.ResponseWriter, status int, page string, data any) {
	if err := d.Views.Render(w, status, page, data); err != nil {
		d.Log.Error("render failed", map[string]any{"page": page, "error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrPasswordMismatch), errors.Is(err, ErrPasswordTooShort):
		return "local_validation"
	default:
		return "error"
	}
}

func logSubmitError(log logger.Logger, msg, email string, err error) {
	fields := map[string]any{"email": email, "message": err.Error()}
	var se *SubmitError
	if errors.As(err, &se) && se.Err != nil {
		fields["error"] = se.Err.Error()
	}
	log.Warn(msg, fields)
}

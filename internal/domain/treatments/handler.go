package treatments

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dulce-dosis-web/internal/middleware"
	"dulce-dosis-web/internal/platform/jsonx"
	"dulce-dosis-web/internal/platform/logger"
	"dulce-dosis-web/internal/web"

	"github.com/go-chi/chi/v5"
)

const (
	saveFailed = "No se pudo guardar el tratamiento."
	loadFailed = "No se pudo cargar el tratamiento."

	weekdayMessage    = "dia_semana debe estar entre Lun y Dom"
	repetitionMessage = "repeticion debe ser DIARIO, SEMANAL o CADA_X_HORAS"
)

type Deps struct {
	Service *Service
	Views   *web.Renderer
	Log     logger.Logger
}

func RegisterRoutes(r chi.Router, d Deps) {
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireSession("/login"))

		pr.Get("/editar/nuevo/{n}", newFormHandler(d))
		pr.Post("/editar/nuevo/{n}", saveHandler(d, true))
		pr.Get("/editar/{id}", editFormHandler(d))
		pr.Post("/editar/{id}", saveHandler(d, false))
	})
}

type editPage struct {
	Treatment       Treatment
	Action          string
	Error           string
	Repetitions     []Repetition
	Weekdays        []string
	WeekdaySelected int
	IntervalValue   string
}

func newEditPage(t Treatment, action, msg string) editPage {
	p := editPage{
		Treatment:       t,
		Action:          action,
		Error:           msg,
		Repetitions:     []Repetition{RepetitionDaily, RepetitionWeekly, RepetitionInterval},
		Weekdays:        weekdayNames[:],
		WeekdaySelected: -1,
	}
	if t.Weekday != nil {
		p.WeekdaySelected = *t.Weekday
	}
	if t.IntervalHours != nil {
		p.IntervalValue = strconv.Itoa(*t.IntervalHours)
	}
	return p
}

func newFormHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, ok := compartmentParam(w, r)
		if !ok {
			return
		}
		t := Treatment{Compartment: n, Repetition: RepetitionDaily}
		render(d, w, http.StatusOK, newEditPage(t, r.URL.Path, ""))
	}
}

func editFormHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, _ := middleware.GetSession(r.Context())

		id := chi.URLParam(r, "id")
		t, err := d.Service.Get(r.Context(), st, id)
		if err != nil {
			d.Log.Warn("edit: get treatment", map[string]any{"treatment": id, "error": err.Error()})
			http.Error(w, loadFailed, http.StatusNotFound)
			return
		}
		render(d, w, http.StatusOK, newEditPage(t, r.URL.Path, ""))
	}
}

func saveHandler(d Deps, create bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, _ := middleware.GetSession(r.Context())

		t, err := parseForm(r)
		if create {
			n, ok := compartmentParam(w, r)
			if !ok {
				return
			}
			t.ID = ""
			t.Compartment = n
		} else {
			t.ID = jsonx.FlexString(chi.URLParam(r, "id"))
		}
		if err != nil {
			render(d, w, http.StatusUnprocessableEntity, newEditPage(t, r.URL.Path, userMessage(err)))
			return
		}

		if _, err := d.Service.Save(r.Context(), st, t); err != nil {
			status := http.StatusBadGateway
			msg := saveFailed
			if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidWeekday) || errors.Is(err, ErrUnknownRepetition) {
				status = http.StatusUnprocessableEntity
				msg = userMessage(err)
			} else {
				d.Log.Warn("edit: save treatment", map[string]any{"treatment": t.ID.String(), "error": err.Error()})
			}
			render(d, w, status, newEditPage(t, r.URL.Path, msg))
			return
		}

		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

// parseForm siempre devuelve lo que pudo leer para re-pintar el formulario.
func parseForm(r *http.Request) (Treatment, error) {
	if err := r.ParseForm(); err != nil {
		return Treatment{}, fmt.Errorf("%w: formulario inválido", ErrInvalidInput)
	}

	t := Treatment{
		PillName:   strings.TrimSpace(r.PostFormValue("nombre_pastilla")),
		Dose:       jsonx.FlexString(strings.TrimSpace(r.PostFormValue("dosis"))),
		Repetition: Repetition(strings.TrimSpace(r.PostFormValue("repeticion"))),
		TimeOfDay:  strings.TrimSpace(r.PostFormValue("hora_toma")),
	}

	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if n, ok, err := optionalInt(r.PostFormValue("compartimento")); err != nil {
		keep(fmt.Errorf("%w: compartimento inválido", ErrInvalidInput))
	} else if ok {
		t.Compartment = n
	}
	if n, ok, err := optionalInt(r.PostFormValue("stock")); err != nil {
		keep(fmt.Errorf("%w: stock debe ser un número", ErrInvalidInput))
	} else if ok {
		t.Stock = n
	}
	if n, ok, err := optionalInt(r.PostFormValue("dia_semana")); err != nil {
		keep(ErrInvalidWeekday)
	} else if ok {
		t.Weekday = &n
	}
	if n, ok, err := optionalInt(r.PostFormValue("intervalo_horas")); err != nil {
		keep(fmt.Errorf("%w: intervalo_horas debe ser un número", ErrInvalidInput))
	} else if ok {
		t.IntervalHours = &n
	}

	return t, firstErr
}

func optionalInt(s string) (int, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func compartmentParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 || n > 4 {
		http.Error(w, "compartment not found", http.StatusNotFound)
		return 0, false
	}
	return n, true
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidWeekday):
		return weekdayMessage
	case errors.Is(err, ErrUnknownRepetition):
		return repetitionMessage
	}
	return strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
}

func render(d Deps, w http.ResponseWriter, status int, p editPage) {
	if err := d.Views.Render(w, status, "edit.html", p); err != nil {
		d.Log.Error("render failed", map[string]any{"page": "edit.html", "error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

package compartments

import (
	"context"
	"net/http"

	"dulce-dosis-web/internal/domain/treatments"
	"dulce-dosis-web/internal/middleware"
	"dulce-dosis-web/internal/platform/logger"
	"dulce-dosis-web/internal/platform/metrics"
	"dulce-dosis-web/internal/ports/session"
	"dulce-dosis-web/internal/web"

	"github.com/go-chi/chi/v5"
)

const (
	PathDashboard = "/dashboard"
	loadFailed    = "No se pudieron cargar tus compartimentos."
)

type Deps struct {
	Treatments *treatments.Service
	Views      *web.Renderer
	Log        logger.Logger
	Metrics    *metrics.Metrics // puede ser nil
}

func RegisterRoutes(r chi.Router, d Deps) {
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireSession("/login"))

		pr.Get(PathDashboard, dashboardHandler(d))
		pr.Get("/compartimentos/{n}/eliminar", deletePromptHandler(d))
		pr.Post("/compartimentos/{n}/eliminar", deleteConfirmHandler(d))
	})
}

type dashboardPage struct {
	User  session.User
	Cards []Card
	Error string
}

type deletePage struct {
	Card Card
	Flow *DeleteFlow
}

func dashboardHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, _ := middleware.GetSession(r.Context())

		page := dashboardPage{User: st.User}
		bound, err := loadBoard(r.Context(), d, st)
		if err != nil {
			d.Log.Error("dashboard: list treatments", map[string]any{"user_id": st.User.ID, "error": err.Error()})
			page.Error = loadFailed
			bound = map[Compartment]*treatments.Treatment{}
		}

		for _, c := range All() {
			card, err := BuildCard(c, bound[c])
			if err != nil {
				d.Log.Warn("dashboard: card", map[string]any{"compartment": c.Int(), "error": err.Error()})
			}
			page.Cards = append(page.Cards, card)
		}

		render(d, w, http.StatusOK, "dashboard.html", page)
	}
}

// deletePromptHandler abre la confirmación. No llama al backend para borrar.
func deletePromptHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, _ := middleware.GetSession(r.Context())

		c, t, ok := resolveSlot(w, r, d, st)
		if !ok {
			return
		}

		flow := NewDeleteFlow(c, t, nil, nil)
		if err := flow.Open(); err != nil {
			http.Redirect(w, r, PathDashboard, http.StatusSeeOther)
			return
		}

		card, _ := BuildCard(c, t)
		render(d, w, http.StatusOK, "delete_confirm.html", deletePage{Card: card, Flow: flow})
	}
}

// deleteConfirmHandler es el "Eliminar" del prompt: DELETE y vuelta al tablero,
// o el prompt de nuevo con el error.
func deleteConfirmHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, _ := middleware.GetSession(r.Context())

		c, t, ok := resolveSlot(w, r, d, st)
		if !ok {
			return
		}

		remove := func(ctx context.Context, id string) error {
			return d.Treatments.Delete(ctx, st, id)
		}
		// el aviso de refresco al tablero es la redirección
		refresh := func() { http.Redirect(w, r, PathDashboard, http.StatusSeeOther) }
		flow := NewDeleteFlow(c, t, remove, refresh)

		if err := flow.Open(); err != nil {
			http.Redirect(w, r, PathDashboard, http.StatusSeeOther)
			return
		}

		if err := flow.Confirm(r.Context()); err != nil {
			d.Metrics.FlowResult("delete", "error")
			d.Log.Warn("delete treatment failed", map[string]any{
				"compartment": c.Int(),
				"treatment":   t.ID.String(),
				"error":       err.Error(),
			})
			card, _ := BuildCard(c, t)
			render(d, w, http.StatusBadGateway, "delete_confirm.html", deletePage{Card: card, Flow: flow})
			return
		}

		d.Metrics.FlowResult("delete", "ok")
		d.Log.Info("treatment deleted", map[string]any{"compartment": c.Int(), "treatment": t.ID.String()})
	}
}

// resolveSlot valida {n} y busca el tratamiento asignado. Escribe la respuesta si falla.
func resolveSlot(w http.ResponseWriter, r *http.Request, d Deps, st session.State) (Compartment, *treatments.Treatment, bool) {
	c, err := Parse(chi.URLParam(r, "n"))
	if err != nil {
		http.Error(w, "compartment not found", http.StatusNotFound)
		return 0, nil, false
	}

	bound, err := loadBoard(r.Context(), d, st)
	if err != nil {
		d.Log.Error("resolve compartment", map[string]any{"compartment": c.Int(), "error": err.Error()})
		http.Error(w, loadFailed, http.StatusBadGateway)
		return 0, nil, false
	}

	t := bound[c]
	if t == nil {
		http.Redirect(w, r, PathDashboard, http.StatusSeeOther)
		return 0, nil, false
	}
	return c, t, true
}

func loadBoard(ctx context.Context, d Deps, st session.State) (map[Compartment]*treatments.Treatment, error) {
	items, err := d.Treatments.List(ctx, st)
	if err != nil {
		return nil, err
	}
	bound, stray := Board(items)
	if len(stray) > 0 {
		d.Log.Warn("treatments without a valid compartment", map[string]any{"count": len(stray)})
	}
	return bound, nil
}

func render(d Deps, w http.ResponseWriter, status int, page string, data any) {
	if err := d.Views.Render(w, status, page, data); err != nil {
		d.Log.Error("render failed", map[string]any{"page": page, "error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

package treatments

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"dulce-dosis-web/internal/middleware"
	"dulce-dosis-web/internal/platform/logger"
	"dulce-dosis-web/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, gw *fakeGateway) http.Handler {
	t.Helper()
	views, err := web.NewRenderer()
	require.NoError(t, err)

	r := chi.NewRouter()
	RegisterRoutes(r, Deps{Service: NewService(gw, nil), Views: views, Log: logger.Nop()})
	return r
}

func do(h http.Handler, method, target string, form url.Values, withSession bool) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if withSession {
		req = req.WithContext(middleware.WithSession(req.Context(), ana))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEditRoutes_RequireSession(t *testing.T) {
	h := newTestRouter(t, newFakeGateway())
	rec := do(h, http.MethodGet, "/editar/nuevo/1", nil, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestNewForm(t *testing.T) {
	h := newTestRouter(t, newFakeGateway())

	rec := do(h, http.MethodGet, "/editar/nuevo/3", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="compartimento" value="3"`)

	rec = do(h, http.MethodGet, "/editar/nuevo/9", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTreatment(t *testing.T) {
	gw := newFakeGateway()
	h := newTestRouter(t, gw)

	rec := do(h, http.MethodPost, "/editar/nuevo/2", url.Values{
		"nombre_pastilla": {"Vitamina D"},
		"dosis":           {"1"},
		"stock":           {"10"},
		"repeticion":      {"CADA_X_HORAS"},
		"hora_toma":       {"08:00"},
		"intervalo_horas": {"8"},
	}, true)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	require.Len(t, gw.items, 1)
	for _, tr := range gw.items {
		assert.Equal(t, 2, tr.Compartment)
		assert.Equal(t, "Vitamina D", tr.PillName)
		assert.Empty(t, tr.TimeOfDay)
		require.NotNil(t, tr.IntervalHours)
		assert.Equal(t, 8, *tr.IntervalHours)
	}
}

func TestUpdateTreatment(t *testing.T) {
	gw := newFakeGateway()
	gw.items["7"] = Treatment{ID: "7", Compartment: 1, PillName: "Metformina", Dose: "500mg", Stock: 30, Repetition: RepetitionDaily, TimeOfDay: "08:00"}
	h := newTestRouter(t, gw)

	rec := do(h, http.MethodGet, "/editar/7", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Metformina")

	rec = do(h, http.MethodPost, "/editar/7", url.Values{
		"compartimento":   {"1"},
		"nombre_pastilla": {"Metformina"},
		"dosis":           {"850mg"},
		"stock":           {"20"},
		"repeticion":      {"SEMANAL"},
		"hora_toma":       {"21:00"},
		"dia_semana":      {"4"},
	}, true)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	got := gw.items["7"]
	assert.Equal(t, "850mg", got.Dose.String())
	require.NotNil(t, got.Weekday)
	assert.Equal(t, 4, *got.Weekday)
}

func TestSaveValidationError(t *testing.T) {
	gw := newFakeGateway()
	h := newTestRouter(t, gw)

	rec := do(h, http.MethodPost, "/editar/nuevo/1", url.Values{
		"nombre_pastilla": {"X"},
		"dosis":           {"1"},
		"repeticion":      {"SEMANAL"},
		"hora_toma":       {"08:00"},
		"dia_semana":      {"7"},
	}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), weekdayMessage)
	assert.Empty(t, gw.tokens)

	rec = do(h, http.MethodPost, "/editar/nuevo/1", url.Values{
		"nombre_pastilla": {"X"},
		"dosis":           {"1"},
		"stock":           {"muchas"},
		"repeticion":      {"DIARIO"},
		"hora_toma":       {"08:00"},
	}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "stock debe ser un número")
}

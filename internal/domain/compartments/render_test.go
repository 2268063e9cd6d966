package compartments

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dulce-dosis-web/internal/domain/treatments"
	"dulce-dosis-web/internal/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// renderCards pinta el tablero con las tarjetas dadas, usando las plantillas reales.
func renderCards(t *testing.T, cards ...Card) string {
	t.Helper()
	views, err := web.NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, views.Render(rec, http.StatusOK, "dashboard.html", dashboardPage{Cards: cards}))
	return rec.Body.String()
}

func TestCardTemplate_IntervalShowsOnlyEvery(t *testing.T) {
	card, err := BuildCard(3, &treatments.Treatment{
		ID: "8", Compartment: 3, PillName: "Vitamina D", Dose: "1", Stock: 10,
		Repetition: treatments.RepetitionInterval, IntervalHours: intPtr(8),
		TimeOfDay: "08:00", Weekday: intPtr(2),
	})
	require.NoError(t, err)

	body := renderCards(t, card)
	assert.Contains(t, body, "Vitamina D")
	assert.Contains(t, body, `<p class="label">Cada</p><p class="value">8 horas</p>`)
	assert.NotContains(t, body, `<p class="label">Hora</p>`)
	assert.NotContains(t, body, `<p class="label">Día</p>`)
	assert.Contains(t, body, `href="/compartimentos/3/eliminar"`)
}

func TestCardTemplate_WeeklyShowsDayAndTime(t *testing.T) {
	card, err := BuildCard(2, &treatments.Treatment{
		ID: "9", Compartment: 2, PillName: "Omega", Dose: "1",
		Repetition: treatments.RepetitionWeekly, Weekday: intPtr(4), TimeOfDay: "21:00",
	})
	require.NoError(t, err)

	body := renderCards(t, card)
	assert.Contains(t, body, `<p class="label">Día</p><p class="value">Vie</p>`)
	assert.Contains(t, body, `<p class="label">Hora</p><p class="value">21:00</p>`)
	assert.NotContains(t, body, `<p class="label">Cada</p>`)
}

func TestCardTemplate_UnconfiguredHasNoDelete(t *testing.T) {
	card, err := BuildCard(2, nil)
	require.NoError(t, err)

	body := renderCards(t, card)
	assert.Contains(t, body, UnconfiguredLabel)
	assert.Contains(t, body, `href="/editar/nuevo/2"`)
	assert.NotContains(t, body, "/compartimentos/2/eliminar")
	assert.NotContains(t, body, ">Eliminar<")
}

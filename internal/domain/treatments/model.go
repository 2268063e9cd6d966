package treatments

import (
	"dulce-dosis-web/internal/platform/jsonx"
)

// Repetition es el modo de repetición de un tratamiento: DIARIO, SEMANAL o CADA_X_HORAS.
type Repetition string

const (
	RepetitionDaily    Repetition = "DIARIO"
	RepetitionWeekly   Repetition = "SEMANAL"
	RepetitionInterval Repetition = "CADA_X_HORAS"
)

func (r Repetition) Valid() bool {
	switch r {
	case RepetitionDaily, RepetitionWeekly, RepetitionInterval:
		return true
	default:
		return false
	}
}

// weekdayNames va de lunes (0) a domingo (6), igual que dia_semana en el backend.
var weekdayNames = [7]string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"}

// WeekdayName resuelve dia_semana (0-6). Cualquier otro índice es inválido.
func WeekdayName(idx int) (string, bool) {
	if idx < 0 || idx >= len(weekdayNames) {
		return "", false
	}
	return weekdayNames[idx], true
}

// Treatment es la programación de una pastilla asignada a un compartimento.
// Los campos de cada modo solo se usan según Repetition.
type Treatment struct {
	ID          jsonx.FlexString `json:"id,omitempty"`
	Compartment int              `json:"compartimento"`

	PillName string           `json:"nombre_pastilla"`
	Dose     jsonx.FlexString `json:"dosis"`
	Stock    int              `json:"stock"`

	Repetition Repetition `json:"repeticion"`

	TimeOfDay     string `json:"hora_toma,omitempty"`       // DIARIO, SEMANAL
	Weekday       *int   `json:"dia_semana,omitempty"`      // SEMANAL
	IntervalHours *int   `json:"intervalo_horas,omitempty"` // CADA_X_HORAS
}

package treatments

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownRepetition = errors.New("unknown repetition")
	ErrInvalidWeekday    = errors.New("weekday must be between 0 and 6")
)

// Schedule es la parte del tratamiento que depende de Repetition.
// Implementaciones: Daily, Weekly, Interval.
type Schedule interface {
	Repetition() Repetition
	schedule()
}

type Daily struct {
	Time string
}

type Weekly struct {
	Weekday     int
	WeekdayName string
	Time        string
}

type Interval struct {
	Hours int
}

func (Daily) Repetition() Repetition    { return RepetitionDaily }
func (Weekly) Repetition() Repetition   { return RepetitionWeekly }
func (Interval) Repetition() Repetition { return RepetitionInterval }

func (Daily) schedule()    {}
func (Weekly) schedule()   {}
func (Interval) schedule() {}

// Label es el texto de "Cada": "8 horas".
func (i Interval) Label() string { return fmt.Sprintf("%d horas", i.Hours) }

// ScheduleOf selecciona el grupo de campos según Repetition.
// No valida la hora; eso lo hace Validate antes de guardar.
func ScheduleOf(t Treatment) (Schedule, error) {
	switch t.Repetition {
	case RepetitionDaily:
		return Daily{Time: t.TimeOfDay}, nil

	case RepetitionWeekly:
		if t.Weekday == nil {
			return nil, ErrInvalidWeekday
		}
		name, ok := WeekdayName(*t.Weekday)
		if !ok {
			return nil, ErrInvalidWeekday
		}
		return Weekly{Weekday: *t.Weekday, WeekdayName: name, Time: t.TimeOfDay}, nil

	case RepetitionInterval:
		hours := 0
		if t.IntervalHours != nil {
			hours = *t.IntervalHours
		}
		return Interval{Hours: hours}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRepetition, string(t.Repetition))
	}
}

// Validate aplica el invariante de grupos por modo antes de enviar al backend.
func (t Treatment) Validate() error {
	if t.Compartment < 1 || t.Compartment > 4 {
		return fmt.Errorf("%w: compartimento debe estar entre 1 y 4", ErrInvalidInput)
	}
	if strings.TrimSpace(t.PillName) == "" {
		return fmt.Errorf("%w: nombre_pastilla es obligatorio", ErrInvalidInput)
	}
	if t.Dose.IsZero() {
		return fmt.Errorf("%w: dosis es obligatoria", ErrInvalidInput)
	}
	if t.Stock < 0 {
		return fmt.Errorf("%w: stock no puede ser negativo", ErrInvalidInput)
	}

	switch t.Repetition {
	case RepetitionDaily:
		return validTime(t.TimeOfDay)
	case RepetitionWeekly:
		if t.Weekday == nil {
			return ErrInvalidWeekday
		}
		if _, ok := WeekdayName(*t.Weekday); !ok {
			return ErrInvalidWeekday
		}
		return validTime(t.TimeOfDay)
	case RepetitionInterval:
		if t.IntervalHours == nil || *t.IntervalHours <= 0 {
			return fmt.Errorf("%w: intervalo_horas debe ser mayor a 0", ErrInvalidInput)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRepetition, string(t.Repetition))
	}
}

// Normalize limpia los grupos que no corresponden al modo.
func (t Treatment) Normalize() Treatment {
	t.PillName = strings.TrimSpace(t.PillName)
	switch t.Repetition {
	case RepetitionDaily:
		t.Weekday, t.IntervalHours = nil, nil
	case RepetitionWeekly:
		t.IntervalHours = nil
	case RepetitionInterval:
		t.TimeOfDay, t.Weekday = "", nil
	}
	return t
}

func validTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("%w: hora_toma es obligatoria", ErrInvalidInput)
	}
	// El backend devuelve "08:00" o "08:00:00".
	if _, err := time.Parse("15:04", s); err == nil {
		return nil
	}
	if _, err := time.Parse("15:04:05", s); err == nil {
		return nil
	}
	return fmt.Errorf("%w: hora_toma debe ser HH:MM", ErrInvalidInput)
}

package compartments

import (
	"fmt"

	"dulce-dosis-web/internal/domain/treatments"
)

const (
	UnconfiguredLabel = "No configurado"
	invalidLabel      = "Configuración no reconocida"
)

// Card es lo que la plantilla necesita para dibujar un compartimento.
// Si Treatment es nil la tarjeta está "No configurado" y solo expone Editar.
type Card struct {
	Compartment Compartment
	Color       Color
	Treatment   *treatments.Treatment

	// exactamente uno no-nil cuando Treatment != nil y el modo es válido
	Daily    *treatments.Daily
	Weekly   *treatments.Weekly
	Interval *treatments.Interval

	Problem string
}

// BuildCard arma la tarjeta y rechaza compartimentos fuera de rango.
// Un modo desconocido no rompe el tablero: la tarjeta queda con Problem
// y el error se devuelve para loguearlo.
func BuildCard(c Compartment, t *treatments.Treatment) (Card, error) {
	if !c.Valid() {
		return Card{Compartment: c}, fmt.Errorf("%w: got %d", ErrInvalidCompartment, int(c))
	}
	card := Card{Compartment: c, Color: c.Color(), Treatment: t}
	if t == nil {
		return card, nil
	}

	sched, err := treatments.ScheduleOf(*t)
	if err != nil {
		card.Problem = invalidLabel
		return card, fmt.Errorf("compartment %d: %w", c, err)
	}

	switch v := sched.(type) {
	case treatments.Daily:
		card.Daily = &v
	case treatments.Weekly:
		card.Weekly = &v
	case treatments.Interval:
		card.Interval = &v
	default:
		card.Problem = invalidLabel
		return card, fmt.Errorf("compartment %d: %w", c, treatments.ErrUnknownRepetition)
	}
	return card, nil
}

func (c Card) Configured() bool { return c.Treatment != nil }

// CanDelete: Eliminar solo aparece con tratamiento asignado.
func (c Card) CanDelete() bool { return c.Treatment != nil }

func (c Card) Title() string { return fmt.Sprintf("Compartimento %d", c.Compartment) }

// EditPath es /editar/{id} si hay tratamiento, si no /editar/nuevo/{n}.
func (c Card) EditPath() string {
	if c.Treatment != nil {
		return "/editar/" + c.Treatment.ID.String()
	}
	return fmt.Sprintf("/editar/nuevo/%d", c.Compartment)
}

func (c Card) DeletePath() string {
	return fmt.Sprintf("/compartimentos/%d/eliminar", c.Compartment)
}

// Board asigna cada tratamiento a su compartimento.
// Devuelve además los que no se pudieron ubicar (fuera de rango o repetidos).
func Board(items []treatments.Treatment) (map[Compartment]*treatments.Treatment, []treatments.Treatment) {
	bound := make(map[Compartment]*treatments.Treatment, Count)
	var stray []treatments.Treatment

	for i := range items {
		c, err := New(items[i].Compartment)
		if err != nil {
			stray = append(stray, items[i])
			continue
		}
		if _, taken := bound[c]; taken {
			stray = append(stray, items[i])
			continue
		}
		t := items[i]
		bound[c] = &t
	}
	return bound, stray
}

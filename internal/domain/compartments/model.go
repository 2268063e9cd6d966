package compartments

import (
	"errors"
	"fmt"
	"strconv"
)

// Count es la cantidad de compartimentos físicos del dispensador.
const Count = 4

var (
	ErrInvalidCompartment = errors.New("compartment must be between 1 and 4")
)

// Compartment identifica un slot físico (1-4).
type Compartment int

// New rechaza índices fuera de rango; no hay color ni slot para ellos.
func New(n int) (Compartment, error) {
	if n < 1 || n > Count {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidCompartment, n)
	}
	return Compartment(n), nil
}

// Parse es New sobre un parámetro de URL.
func Parse(s string) (Compartment, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCompartment, s)
	}
	return New(n)
}

func All() []Compartment {
	out := make([]Compartment, 0, Count)
	for i := 1; i <= Count; i++ {
		out = append(out, Compartment(i))
	}
	return out
}

func (c Compartment) Int() int { return int(c) }

// Color es el par relleno/borde de la tarjeta de un compartimento.
type Color struct {
	Name string
	Fill string
	Ring string
}

var palette = [Count]Color{
	{Name: "Rojo", Fill: "#ffb3b3", Ring: "#ff6b6b"},
	{Name: "Amarillo", Fill: "#ffe4a3", Ring: "#ffc107"},
	{Name: "Verde", Fill: "#a8e6cf", Ring: "#4caf50"},
	{Name: "Azul", Fill: "#a3c9ff", Ring: "#2196f3"},
}

// Color devuelve el Color cero para índices fuera de 1-4.
func (c Compartment) Color() Color {
	if !c.Valid() {
		return Color{}
	}
	return palette[int(c)-1]
}

func (c Compartment) Valid() bool { return c >= 1 && c <= Count }

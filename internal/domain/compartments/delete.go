package compartments

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dulce-dosis-web/internal/domain/treatments"
)

const (
	DeleteFailedMessage = "Error al eliminar el tratamiento"

	confirmLabel = "Eliminar"
	busyLabel    = "Eliminando..."
)

var (
	ErrNothingToDelete = errors.New("compartment has no treatment")
	ErrNotConfirmed    = errors.New("delete must be confirmed first")
	ErrBusy            = errors.New("delete in progress")
	ErrDeleteFailed    = errors.New("delete failed")
)

type DeleteState int

const (
	Idle DeleteState = iota
	ConfirmPending
	Deleting
)

func (s DeleteState) String() string {
	switch s {
	case Idle:
		return "idle"
	case ConfirmPending:
		return "confirm_pending"
	case Deleting:
		return "deleting"
	default:
		return "unknown"
	}
}

// RemoveFunc borra un tratamiento por id en el backend.
type RemoveFunc func(ctx context.Context, id string) error

// DeleteFlow es el flujo Eliminar -> confirmar -> DELETE de una tarjeta.
//
//	Idle -> ConfirmPending -> Deleting -> Idle            (ok, onDeleted)
//	                                   -> ConfirmPending  (error visible)
type DeleteFlow struct {
	mu sync.Mutex

	compartment Compartment
	treatment   *treatments.Treatment
	remove      RemoveFunc
	onDeleted   func()

	state   DeleteState
	message string
}

// NewDeleteFlow: onDeleted es el aviso al tablero para que se refresque; puede ser nil.
func NewDeleteFlow(c Compartment, t *treatments.Treatment, remove RemoveFunc, onDeleted func()) *DeleteFlow {
	return &DeleteFlow{
		compartment: c,
		treatment:   t,
		remove:      remove,
		onDeleted:   onDeleted,
	}
}

// Open muestra la confirmación. No llama al backend.
func (f *DeleteFlow) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.treatment == nil {
		return ErrNothingToDelete
	}
	if f.state == Deleting {
		return ErrBusy
	}
	f.state = ConfirmPending
	f.message = ""
	return nil
}

// Cancel cierra la confirmación sin llamar al backend.
func (f *DeleteFlow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Deleting {
		return ErrBusy
	}
	f.state = Idle
	f.message = ""
	return nil
}

// Confirm hace el DELETE. Solo válido desde ConfirmPending.
// En error el prompt sigue abierto con DeleteFailedMessage y se puede reintentar.
func (f *DeleteFlow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case Deleting:
		f.mu.Unlock()
		return ErrBusy
	case Idle:
		f.mu.Unlock()
		return ErrNotConfirmed
	}
	if f.treatment == nil || f.remove == nil {
		f.mu.Unlock()
		return ErrNothingToDelete
	}
	f.state = Deleting
	f.message = ""
	id := f.treatment.ID.String()
	f.mu.Unlock()

	err := f.remove(ctx, id)

	f.mu.Lock()
	if err != nil {
		f.state = ConfirmPending
		f.message = DeleteFailedMessage
		f.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	f.state = Idle
	notify := f.onDeleted
	f.mu.Unlock()

	if notify != nil {
		notify()
	}
	return nil
}

func (f *DeleteFlow) State() DeleteState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Busy deshabilita Cancelar y Eliminar mientras el DELETE está en vuelo.
func (f *DeleteFlow) Busy() bool { return f.State() == Deleting }

// PromptOpen indica si la confirmación está visible.
func (f *DeleteFlow) PromptOpen() bool {
	s := f.State()
	return s == ConfirmPending || s == Deleting
}

func (f *DeleteFlow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

func (f *DeleteFlow) ConfirmLabel() string {
	if f.Busy() {
		return busyLabel
	}
	return confirmLabel
}

func (f *DeleteFlow) Compartment() Compartment { return f.compartment }

func (f *DeleteFlow) PillName() string {
	if f.treatment == nil {
		return ""
	}
	return f.treatment.PillName
}

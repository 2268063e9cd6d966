package activity

import "time"

// Kind identifica qué hizo el usuario desde la UI.
type Kind string

const (
	KindAccountRegistered   Kind = "ACCOUNT_REGISTERED"    // registro con sesión iniciada
	KindAccountCreated      Kind = "ACCOUNT_CREATED"       // registro sin token, debe loguearse
	KindLogin               Kind = "LOGIN"
	KindTreatmentSaved      Kind = "TREATMENT_SAVED"
	KindTreatmentDeleted    Kind = "TREATMENT_DELETED"
	KindTreatmentDeleteFail Kind = "TREATMENT_DELETE_FAILED"
)

// Entry es un registro inmutable de actividad.
type Entry struct {
	ID     string
	UserID string // vacío cuando el backend no devolvió id

	Kind    Kind
	Subject string // id de tratamiento, email, etc.
	Detail  string

	OccurredAt time.Time
}

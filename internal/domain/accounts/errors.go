package accounts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"dulce-dosis-web/internal/platform/httpclient"
)

const ConnectivityMessage = "No se pudo conectar con el servidor."

// errorFieldPriority es parte del contrato con la UI: el primer campo presente gana.
var errorFieldPriority = []string{"username", "email", "password", "name", "message"}

// SubmitError es un fallo de envío ya traducido al mensaje que ve el usuario.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message }
func (e *SubmitError) Unwrap() error { return e.Err }

// ServerMessage traduce el error de una llamada al API en un único mensaje.
// Sin payload (fallo de red o body vacío) => ConnectivityMessage.
func ServerMessage(err error) string {
	var he *httpclient.HTTPError
	if !errors.As(err, &he) {
		return ConnectivityMessage
	}
	return MessageFromPayload([]byte(he.Body))
}

// MessageFromPayload aplica la prioridad username, email, password, name, message.
// Si ninguno aplica devuelve el payload serializado tal cual.
func MessageFromPayload(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ConnectivityMessage
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		// no es un objeto JSON (HTML de un 500, texto plano, array)
		return compact(body)
	}

	for _, key := range errorFieldPriority {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if msg, ok := fieldMessage(raw); ok {
			return msg
		}
	}
	return compact(body)
}

// fieldMessage acepta string no vacío o array no vacío (usa el primer elemento).
func fieldMessage(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return "", false
		}
		return s, true

	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
			return "", false
		}
		first := bytes.TrimSpace(items[0])
		var s string
		if err := json.Unmarshal(first, &s); err == nil {
			return s, s != ""
		}
		return compact(first), true

	default:
		return "", false
	}
}

func compact(b []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return strings.TrimSpace(string(b))
	}
	return buf.String()
}

func submitError(err error) *SubmitError {
	return &SubmitError{Message: ServerMessage(err), Err: fmt.Errorf("accounts: submit: %w", err)}
}

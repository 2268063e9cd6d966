// Package jsonx tiene tipos JSON tolerantes para payloads que el backend no tipa de forma estable.
package jsonx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexString acepta string o número en el wire y se guarda como texto.
// Ids ("id": 42 o "id": "42") y dosis ("dosis": 1.5 o "dosis": "1/2") llegan así.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("jsonx: expected string or number, got %s", string(b))
	}
	*f = FlexString(n.String())
	return nil
}

// MarshalJSON emite número cuando el texto es numérico, para no cambiar el tipo que espera el backend.
func (f FlexString) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(f))
	if s != "" && json.Valid([]byte(s)) {
		var n json.Number
		if err := json.Unmarshal([]byte(s), &n); err == nil {
			return []byte(n.String()), nil
		}
	}
	return json.Marshal(string(f))
}

func (f FlexString) String() string { return string(f) }

func (f FlexString) IsZero() bool { return strings.TrimSpace(string(f)) == "" }

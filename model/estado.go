package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Estado is the active flag shared by most entities, stored as "0" or "1".
type Estado string

const (
	EstadoInactivo Estado = "0"
	EstadoActivo   Estado = "1"
)

// UnmarshalJSON accepts 0/1 as numbers, strings or booleans.
func (e *Estado) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null":
		*e = ""
		return nil
	case "true":
		*e = EstadoActivo
		return nil
	case "false":
		*e = EstadoInactivo
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*e = Estado(s)
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return err
	}
	*e = Estado(strconv.Itoa(n))
	return nil
}

// Activo reports whether the record is active.
func (e Estado) Activo() bool {
	return e == EstadoActivo
}

// OrDefault returns EstadoActivo for an unset value.
func (e Estado) OrDefault() Estado {
	if e == "" {
		return EstadoActivo
	}
	return e
}

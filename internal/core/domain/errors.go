// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio comunes.
var (
	// Request errors
	ErrNoURLs            = errors.New("no urls provided")
	ErrStartAfterEnd     = errors.New("start date must be before end date")
	ErrFrequencyNoStart  = errors.New("a start date is required when frequency is set")
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// Run errors
	ErrBatchAborted = errors.New("batch aborted")
)

// ConfigurationError es fatal y se detecta antes de cualquier petición de red.
type ConfigurationError struct {
	Field  string
	Reason string
	Value  string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid %s", e.Field)
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// MalformedDateError indica una fecha o timestamp que no encaja en ningún formato aceptado.
type MalformedDateError struct {
	Input  string
	Reason string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date %q: %s", e.Input, e.Reason)
}

// FetchError es un fallo recuperable al descargar un snapshot o la página actual.
// Se registra y cuenta como cero ocurrencias.
type FetchError struct {
	URL       string
	Timestamp Timestamp
	Err       error
}

func (e *FetchError) Error() string {
	if e.Timestamp.IsZero() {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s at %s: %v", e.URL, e.Timestamp, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsConfigurationError reporta si err contiene un *ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

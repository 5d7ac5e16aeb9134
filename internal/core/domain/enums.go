// internal/core/domain/enums.go
package domain

import (
	"regexp"
	"strings"
)

// IdentifierClass clasifica los identificadores de analítica por su sintaxis.
type IdentifierClass string

const (
	// ClassLegacy son los códigos Universal Analytics (UA-XXXXXXXX-N)
	ClassLegacy IdentifierClass = "UA"

	// ClassShort son los códigos GA4 (G-XXXXXXXX)
	ClassShort IdentifierClass = "GA"

	// ClassTagManager son los contenedores de Google Tag Manager (GTM-XXXX)
	ClassTagManager IdentifierClass = "GTM"
)

// IdentifierClasses lista todas las clases en orden estable de salida.
var IdentifierClasses = []IdentifierClass{ClassLegacy, ClassShort, ClassTagManager}

var classPatterns = map[IdentifierClass]*regexp.Regexp{
	ClassLegacy:     regexp.MustCompile(`UA-[\d-]{5,15}`),
	ClassShort:      regexp.MustCompile(`G-[\d-]{5,15}`),
	ClassTagManager: regexp.MustCompile(`GTM-[\w-]{1,15}`),
}

// IsValid verifica si la clase es conocida.
func (c IdentifierClass) IsValid() bool {
	_, ok := classPatterns[c]
	return ok
}

// Pattern retorna la expresión regular canónica de la clase.
func (c IdentifierClass) Pattern() *regexp.Regexp {
	return classPatterns[c]
}

// String retorna la representación string de la clase.
func (c IdentifierClass) String() string {
	return string(c)
}

// Label es el nombre usado en columnas y claves de salida (UA_Code, GA_Code...).
func (c IdentifierClass) Label() string {
	return string(c) + "_Code"
}

// Frequency es la granularidad de muestreo de snapshots.
type Frequency string

const (
	FrequencyNone    Frequency = ""
	FrequencyYearly  Frequency = "yearly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyDaily   Frequency = "daily"
	FrequencyHourly  Frequency = "hourly"
)

// Frequencies lista las frecuencias reconocidas, de la más gruesa a la más fina.
var Frequencies = []Frequency{FrequencyYearly, FrequencyMonthly, FrequencyDaily, FrequencyHourly}

// ParseFrequency normaliza s. Un valor vacío devuelve FrequencyNone.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if f == FrequencyNone || f.IsValid() {
		return f, nil
	}
	return FrequencyNone, &ConfigurationError{
		Field:  "frequency",
		Reason: "must be one of yearly, monthly, daily, hourly",
		Value:  s,
	}
}

// IsValid verifica si la frecuencia es una de las cuatro reconocidas.
func (f Frequency) IsValid() bool {
	return f.CollapseDigits() > 0
}

// CollapseDigits es el prefijo del timestamp sobre el que el archivo colapsa
// snapshots: 4 (año), 6 (mes), 8 (día), 10 (hora). 0 si no aplica.
func (f Frequency) CollapseDigits() int {
	switch f {
	case FrequencyYearly:
		return 4
	case FrequencyMonthly:
		return 6
	case FrequencyDaily:
		return 8
	case FrequencyHourly:
		return 10
	default:
		return 0
	}
}

// String retorna la representación string de la frecuencia.
func (f Frequency) String() string {
	return string(f)
}

// OutputFormat es el formato de archivo de resultados.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatTXT  OutputFormat = "txt"
	FormatCSV  OutputFormat = "csv"
	FormatXLSX OutputFormat = "xlsx"
)

// IsValid verifica si el formato es soportado.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatTXT, FormatCSV, FormatXLSX:
		return true
	default:
		return false
	}
}

func (f OutputFormat) String() string {
	return string(f)
}

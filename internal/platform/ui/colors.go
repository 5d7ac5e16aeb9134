// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta "sepia": tonos de papel viejo para una herramienta de archivo

var (
	// Parchment - texto principal
	Parchment = pterm.NewRGB(232, 224, 200)

	// Amber - elementos destacados y warnings
	Amber = pterm.NewRGB(255, 182, 39)

	// Rust - errores
	Rust = pterm.NewRGB(196, 64, 40)

	// Ink - texto secundario, pendientes
	Ink = pterm.NewRGB(110, 110, 110)

	// Teal - éxito, acentos fríos
	Teal = pterm.NewRGB(0, 178, 170)
)

// Estilos preconfigurados para diferentes contextos
var (
	StylePrimary   = Amber.ToRGBStyle()
	StyleSuccess   = Teal.ToRGBStyle()
	StyleWarning   = Amber.ToRGBStyle()
	StyleError     = Rust.ToRGBStyle()
	StyleSecondary = Ink.ToRGBStyle()
	StyleText      = Parchment.ToRGBStyle()
)

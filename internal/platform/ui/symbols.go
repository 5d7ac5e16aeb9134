// internal/platform/ui/symbols.go
package ui

import "github.com/pterm/pterm"

// Status es el estado de una URL dentro del lote
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSuccess
	StatusPartial    // terminó con capturas o página en vivo fallidas
	StatusFailed     // error de índice o de configuración
	StatusNotStarted // el lote se abortó antes de arrancarla
)

type statusLook struct {
	name   string
	symbol string
	color  pterm.Color
}

var statusLooks = map[Status]statusLook{
	StatusPending:    {"pending", "⏸", pterm.FgGray},
	StatusRunning:    {"running", "⣾", pterm.FgCyan},
	StatusSuccess:    {"success", "✓", pterm.FgGreen},
	StatusPartial:    {"partial", "⚠", pterm.FgYellow},
	StatusFailed:     {"failed", "✗", pterm.FgRed},
	StatusNotStarted: {"not-started", "⊘", pterm.FgGray},
}

func (s Status) look() statusLook {
	if l, ok := statusLooks[s]; ok {
		return l
	}
	return statusLook{"unknown", "?", pterm.FgDefault}
}

func (s Status) String() string     { return s.look().name }
func (s Status) Symbol() string     { return s.look().symbol }
func (s Status) Color() pterm.Color { return s.look().color }

// Style retorna un pterm.Style con el color del estado
func (s Status) Style() *pterm.Style {
	return pterm.NewStyle(s.Color())
}

// Iconos de la UI
var (
	IconTarget   = "🎯"
	IconTime     = "⏱"
	IconCodes    = "🏷"
	IconArchive  = "🗄"
	IconWorkers  = "⚙️"
	IconFile     = "📄"
	IconCalendar = "📅"
)

// Separadores
var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	SeparatorLight = "────────────────────────────────────────────"
)

// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"strings"
	"time"

	"waybackga/internal/core/domain"
)

// formatDuration formatea una duración de manera legible
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// boolToString convierte booleano a string visual
func boolToString(b bool) string {
	if b {
		return StyleSuccess.Sprint("ON")
	}
	return StyleSecondary.Sprint("OFF")
}

// orDash devuelve "-" para valores vacíos
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// archivedCodes lista los identificadores archivados de una clase
func archivedCodes(r domain.URLResult, class domain.IdentifierClass) string {
	return orDash(strings.Join(r.Archived.Sorted(class), ", "))
}

// resultStatus clasifica un resultado final
func resultStatus(r domain.URLResult) Status {
	switch {
	case r.Err != nil:
		return StatusFailed
	case r.Failed > 0 || r.CurrentErr != nil:
		return StatusPartial
	default:
		return StatusSuccess
	}
}

// internal/adapters/output/report.go
package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"waybackga/internal/core/domain"
)

// FileNameLayout names result files after the batch start time.
const FileNameLayout = "02-01-2006(15:04:05)"

// FileName es el nombre base (sin extensión) para un lote iniciado en t.
func FileName(t time.Time) string {
	return t.Format(FileNameLayout)
}

// IntervalRecord es un intervalo con fechas legibles.
type IntervalRecord struct {
	FirstSeen string `json:"first_seen"`
	LastSeen  string `json:"last_seen"`
}

// URLRecord es la forma serializada del resultado de una URL. Los campos
// current_* se omiten cuando la página en vivo no se consultó.
type URLRecord struct {
	CurrentUA  *[]string                 `json:"current_UA_code,omitempty"`
	CurrentGA  *[]string                 `json:"current_GA_code,omitempty"`
	CurrentGTM *[]string                 `json:"current_GTM_code,omitempty"`
	ArchivedUA map[string]IntervalRecord `json:"archived_UA_codes"`
	ArchivedGA map[string]IntervalRecord `json:"archived_GA_codes"`
	ArchivedGT map[string]IntervalRecord `json:"archived_GTM_codes"`
	Snapshots  int                       `json:"snapshots"`
	Failed     int                       `json:"failed_snapshots,omitempty"`
	Error      string                    `json:"error,omitempty"`
}

// Records convierte el lote en una lista de {url: record}, en orden de entrada.
func Records(batch *domain.BatchResult) []map[string]URLRecord {
	out := make([]map[string]URLRecord, 0, len(batch.Results))
	for _, r := range batch.Results {
		rec := URLRecord{
			ArchivedUA: intervals(r.Archived, domain.ClassLegacy),
			ArchivedGA: intervals(r.Archived, domain.ClassShort),
			ArchivedGT: intervals(r.Archived, domain.ClassTagManager),
			Snapshots:  r.Snapshots,
			Failed:     r.Failed,
		}
		if r.Current != nil {
			rec.CurrentUA = current(r.Current, domain.ClassLegacy)
			rec.CurrentGA = current(r.Current, domain.ClassShort)
			rec.CurrentGTM = current(r.Current, domain.ClassTagManager)
		}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		}
		out = append(out, map[string]URLRecord{r.URL: rec})
	}
	return out
}

func current(occ domain.Occurrences, class domain.IdentifierClass) *[]string {
	ids := append([]string{}, occ[class]...)
	return &ids
}

func intervals(ci domain.CodeIntervals, class domain.IdentifierClass) map[string]IntervalRecord {
	out := make(map[string]IntervalRecord, len(ci[class]))
	for id, iv := range ci[class] {
		out[id] = IntervalRecord{FirstSeen: iv.FirstSeen.Date(), LastSeen: iv.LastSeen.Date()}
	}
	return out
}

// URLColumns son las cabeceras de la vista por URL.
var URLColumns = []string{
	"url", "UA_Code", "GA_Code", "GTM_Code",
	"Archived_UA_Codes", "Archived_GA_Codes", "Archived_GTM_Codes",
}

// URLRows construye la vista por URL: códigos actuales y archivados con su
// intervalo, numerados.
func URLRows(batch *domain.BatchResult) [][]string {
	rows := make([][]string, 0, len(batch.Results))
	for _, r := range batch.Results {
		row := []string{r.URL}
		for _, class := range domain.IdentifierClasses {
			row = append(row, strings.Join(r.Current[class], ", "))
		}
		for _, class := range domain.IdentifierClasses {
			row = append(row, FormatArchived(r.Archived, class))
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatArchived numera los identificadores de una clase con su intervalo:
// "1. UA-1 (01/01/2012:00:00 - 01/01/2014:00:00)".
func FormatArchived(ci domain.CodeIntervals, class domain.IdentifierClass) string {
	ids := ci.Sorted(class)
	lines := make([]string, 0, len(ids))
	for i, id := range ids {
		iv := ci[class][id]
		lines = append(lines, fmt.Sprintf("%d. %s (%s - %s)", i+1, id, iv.FirstSeen.Date(), iv.LastSeen.Date()))
	}
	return strings.Join(lines, "\n\n")
}

// CodeColumns son las cabeceras de la vista por código.
var CodeColumns = []string{"code", "websites", "active"}

// CodeRows construye la vista por código: cada identificador una vez, con
// todas las URLs donde apareció y cuándo estuvo activo en cada una.
func CodeRows(batch *domain.BatchResult) [][]string {
	type group struct {
		sites  []string
		active []string
	}
	groups := make(map[string]*group)
	add := func(code, site, active string) {
		g, ok := groups[code]
		if !ok {
			g = &group{}
			groups[code] = g
		}
		g.sites = append(g.sites, site)
		g.active = append(g.active, active)
	}

	for _, r := range batch.Results {
		for _, class := range domain.IdentifierClasses {
			for _, code := range r.Current[class] {
				add(code, r.URL, fmt.Sprintf("Current (at %s)", r.URL))
			}
		}
		for _, class := range domain.IdentifierClasses {
			for _, code := range r.Archived.Sorted(class) {
				iv := r.Archived[class][code]
				add(code, r.URL, fmt.Sprintf("%s - %s(at %s)", iv.FirstSeen.Date(), iv.LastSeen.Date(), r.URL))
			}
		}
	}

	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := make([][]string, 0, len(codes))
	for _, code := range codes {
		g := groups[code]
		rows = append(rows, []string{code, strings.Join(g.sites, ", "), numbered(g.active)})
	}
	return rows
}

func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n\n")
}

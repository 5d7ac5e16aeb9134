// internal/core/ports/archive.go
package ports

import (
	"context"

	"waybackga/internal/core/domain"
)

// IndexClient consulta el índice de capturas del archivo.
type IndexClient interface {
	// Timestamps devuelve los timestamps de las capturas con estado 200 que
	// encajan con la consulta, ordenados y sin duplicados.
	Timestamps(ctx context.Context, q domain.IndexQuery) ([]domain.Timestamp, error)
}

// PageFetcher descarga el HTML de páginas en vivo y de snapshots archivados.
// Un 429 debe devolverse como un error que satisfaga errors.IsRateLimit.
type PageFetcher interface {
	// FetchLive descarga la versión actual de url.
	FetchLive(ctx context.Context, url string) (string, error)

	// FetchSnapshot descarga la captura de url en el instante ts.
	FetchSnapshot(ctx context.Context, url string, ts domain.Timestamp) (string, error)
}

// Extractor busca identificadores de analítica en un documento HTML.
// Nunca falla: un documento ilegible produce cero ocurrencias.
type Extractor interface {
	Extract(html string) domain.Occurrences
}

// internal/core/domain/request.go
package domain

// PipelineRequest describe una ejecución para una URL. Es inmutable una vez construido.
type PipelineRequest struct {
	URL       string
	Start     Timestamp // vacío = sin límite inferior
	End       Timestamp // vacío = ahora
	Frequency Frequency
	// Limit es el número de snapshots pedido al índice. Negativo = los N más
	// recientes, 0 = sin límite. Con Frequency se deriva del intervalo.
	Limit int
}

// IndexQuery es la consulta concreta al índice CDX para una URL.
type IndexQuery struct {
	URL      string
	From     Timestamp
	To       Timestamp
	Collapse int // dígitos del timestamp sobre los que colapsar, 0 = sin colapso
	Limit    int
}

// IndexQuery deriva la consulta al índice. El límite ya viene resuelto en el request.
func (r PipelineRequest) IndexQuery() IndexQuery {
	return IndexQuery{
		URL:      r.URL,
		From:     r.Start,
		To:       r.End,
		Collapse: r.Frequency.CollapseDigits(),
		Limit:    r.Limit,
	}
}

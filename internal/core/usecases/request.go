// internal/core/usecases/request.go
package usecases

import (
	"time"

	"waybackga/internal/core/domain"
	"waybackga/internal/platform/validator"
)

// Umbrales a partir de los cuales se pide confirmación al usuario.
const (
	LargeLimitThreshold = 500
	LargeURLThreshold   = 9
)

// RequestInput son los valores de entrada ya cargados de la configuración.
type RequestInput struct {
	URLs      []string
	StartDate string // dd/mm/YYYY[:HH:MM], vacío = sin límite inferior
	EndDate   string // vacío = ahora
	Frequency string
	Limit     int
}

// BuildRequests valida la entrada y construye un PipelineRequest por URL.
// Todos los errores son *domain.ConfigurationError y se detectan antes de
// cualquier petición de red.
func BuildRequests(in RequestInput, now time.Time) ([]domain.PipelineRequest, error) {
	if len(in.URLs) == 0 {
		return nil, &domain.ConfigurationError{Field: "urls", Err: domain.ErrNoURLs}
	}

	freq, err := domain.ParseFrequency(in.Frequency)
	if err != nil {
		return nil, err
	}

	var start, end domain.Timestamp
	if !validator.IsEmpty(in.StartDate) {
		if start, err = domain.EncodeDate(in.StartDate); err != nil {
			return nil, &domain.ConfigurationError{Field: "start date", Err: err}
		}
	}
	if !validator.IsEmpty(in.EndDate) {
		if end, err = domain.EncodeDate(in.EndDate); err != nil {
			return nil, &domain.ConfigurationError{Field: "end date", Err: err}
		}
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		return nil, &domain.ConfigurationError{
			Field: "date range",
			Value: in.StartDate + " - " + in.EndDate,
			Err:   domain.ErrStartAfterEnd,
		}
	}

	reqs := make([]domain.PipelineRequest, 0, len(in.URLs))
	for _, raw := range in.URLs {
		u := validator.NormalizeTarget(raw)
		if !validator.IsTarget(u) {
			return nil, &domain.ConfigurationError{Field: "url", Value: raw, Reason: "not a valid address"}
		}
		req := domain.PipelineRequest{
			URL:       u,
			Start:     start,
			End:       end,
			Frequency: freq,
			Limit:     in.Limit,
		}
		// Surface frequency errors now rather than mid-batch.
		if _, err := ResolveIndexQuery(req, now); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// IsLargeRequest indica si el lote merece confirmación: demasiadas URLs o un
// límite de snapshots por URL demasiado alto.
func IsLargeRequest(reqs []domain.PipelineRequest, now time.Time) bool {
	if len(reqs) > LargeURLThreshold {
		return true
	}
	for _, r := range reqs {
		q, err := ResolveIndexQuery(r, now)
		if err != nil {
			continue
		}
		if q.Limit > LargeLimitThreshold || q.Limit < -LargeLimitThreshold {
			return true
		}
	}
	return false
}

// internal/core/usecases/resolver.go
package usecases

import (
	"time"

	"waybackga/internal/core/domain"
)

// ResolveSnapshotCount convierte (frecuencia, inicio, fin) en el número de
// snapshots a pedir: una por periodo, incluyendo ambos extremos.
// Un fin vacío significa now.
func ResolveSnapshotCount(freq domain.Frequency, start, end domain.Timestamp, now time.Time) (int, error) {
	if !freq.IsValid() {
		return 0, &domain.ConfigurationError{
			Field:  "frequency",
			Value:  freq.String(),
			Reason: "must be one of yearly, monthly, daily, hourly",
		}
	}
	if start.IsZero() {
		return 0, &domain.ConfigurationError{Field: "start date", Err: domain.ErrFrequencyNoStart}
	}

	from, err := start.Time()
	if err != nil {
		return 0, &domain.ConfigurationError{Field: "start date", Err: err}
	}
	to := now.UTC()
	if !end.IsZero() {
		if to, err = end.Time(); err != nil {
			return 0, &domain.ConfigurationError{Field: "end date", Err: err}
		}
	}
	if to.Before(from) {
		return 0, &domain.ConfigurationError{Field: "date range", Err: domain.ErrStartAfterEnd}
	}

	switch freq {
	case domain.FrequencyYearly:
		return monthsBetween(from, to)/12 + 1, nil
	case domain.FrequencyMonthly:
		return monthsBetween(from, to) + 1, nil
	case domain.FrequencyDaily:
		return int(to.Sub(from)/(24*time.Hour)) + 1, nil
	default: // hourly
		return int(to.Sub(from)/time.Hour) + 1, nil
	}
}

// ResolveIndexQuery deriva la consulta al índice de un request. Con frecuencia,
// el límite es el número de periodos y el índice colapsa por periodo; sin
// ella se usa el límite explícito (0 = sin límite).
func ResolveIndexQuery(req domain.PipelineRequest, now time.Time) (domain.IndexQuery, error) {
	q := req.IndexQuery()
	if req.Frequency == domain.FrequencyNone {
		q.Collapse = 0
		return q, nil
	}
	n, err := ResolveSnapshotCount(req.Frequency, req.Start, req.End, now)
	if err != nil {
		return domain.IndexQuery{}, err
	}
	q.Limit = n
	return q, nil
}

// monthsBetween es la diferencia de calendario en meses completos entre a y b
// (a <= b). Un mes se cuenta completo cuando a más ese número de meses, con el
// día ajustado al último del mes si hace falta, no supera b.
func monthsBetween(a, b time.Time) int {
	m := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	for m > 0 && addMonthsClamped(a, m).After(b) {
		m--
	}
	return m
}

func addMonthsClamped(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/12
	month := time.Month(total%12 + 1)

	day := t.Day()
	// Day 0 of the next month is the last day of this one.
	if last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day(); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

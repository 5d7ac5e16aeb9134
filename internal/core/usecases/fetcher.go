// internal/core/usecases/fetcher.go
package usecases

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
	"waybackga/internal/platform/errors"
	"waybackga/internal/platform/logx"
	"waybackga/internal/platform/workerpool"
)

// SnapshotFetcher descarga las capturas de una URL de forma concurrente y
// vuelca los identificadores hallados en un Aggregator.
type SnapshotFetcher struct {
	pages     ports.PageFetcher
	extractor ports.Extractor
	bound     *workerpool.Bound
	notifier  ports.Notifier
	logger    logx.Logger
}

// FetchStats resume una pasada del fetcher.
type FetchStats struct {
	Fetched int
	Failed  int
}

// NewSnapshotFetcher crea el fetcher. bound debe ser el límite compartido del
// lote, no uno por URL.
func NewSnapshotFetcher(
	pages ports.PageFetcher,
	extractor ports.Extractor,
	bound *workerpool.Bound,
	notifier ports.Notifier,
	logger logx.Logger,
) *SnapshotFetcher {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if logger == nil {
		logger = logx.New()
	}
	return &SnapshotFetcher{
		pages:     pages,
		extractor: extractor,
		bound:     bound,
		notifier:  notifier,
		logger:    logger.With("component", "fetcher"),
	}
}

// Fetch descarga cada timestamp como una unidad de trabajo independiente.
// Cada descarga adquiere un permiso del límite una sola vez; la extracción y
// el registro se hacen fuera del permiso.
//
// Un fallo individual se registra como *domain.FetchError y cuenta como cero
// ocurrencias. Solo un rate limit (o la cancelación de ctx) se devuelve, y
// cancela las descargas hermanas.
func (f *SnapshotFetcher) Fetch(
	ctx context.Context,
	url string,
	timestamps []domain.Timestamp,
	agg *Aggregator,
) (FetchStats, error) {
	if len(timestamps) == 0 {
		return FetchStats{}, nil
	}

	var fetched, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)

	for _, ts := range timestamps {
		ts := ts
		g.Go(func() error {
			var html string
			err := f.bound.Do(gctx, func(ctx context.Context) error {
				var ferr error
				html, ferr = f.pages.FetchSnapshot(ctx, url, ts)
				return ferr
			})
			if err != nil {
				if errors.IsRateLimit(err) {
					return &domain.FetchError{URL: url, Timestamp: ts, Err: err}
				}
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
				ferr := &domain.FetchError{URL: url, Timestamp: ts, Err: err}
				f.logger.Warn("snapshot fetch failed",
					"url", url,
					"timestamp", ts.String(),
					"kind", errors.Kind(err),
					"error", err.Error(),
				)
				ev := ports.NewEvent(ports.EventSnapshotFailed, url)
				ev.Message, ev.Err = ts.Date(), ferr
				f.notifier.Notify(ev)
				return nil
			}

			occ := f.extractor.Extract(html)
			agg.RecordAll(occ, ts)
			fetched.Add(1)

			f.logger.Debug("snapshot processed", "url", url, "timestamp", ts.String(), "codes", occ.Total())
			ev := ports.NewEvent(ports.EventSnapshotFetched, url)
			ev.Message, ev.Count = ts.Date(), occ.Total()
			f.notifier.Notify(ev)
			return nil
		})
	}

	err := g.Wait()
	return FetchStats{Fetched: int(fetched.Load()), Failed: int(failed.Load())}, err
}

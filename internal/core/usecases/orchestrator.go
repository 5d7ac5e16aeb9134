// internal/core/usecases/orchestrator.go
package usecases

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
	"waybackga/internal/platform/errors"
	"waybackga/internal/platform/logx"
	"waybackga/internal/platform/workerpool"
)

// Orchestrator ejecuta el pipeline completo para un lote de URLs: página en
// vivo, consulta al índice y descarga de capturas, todo bajo un único límite
// de concurrencia compartido.
type Orchestrator struct {
	index     ports.IndexClient
	pages     ports.PageFetcher
	extractor ports.Extractor
	bound     *workerpool.Bound
	fetcher   *SnapshotFetcher
	notifier  ports.Notifier
	logger    logx.Logger

	// Configuración
	stagger     time.Duration
	skipCurrent bool
	now         func() time.Time
}

// OrchestratorOptions configura el orchestrator.
type OrchestratorOptions struct {
	Index     ports.IndexClient
	Pages     ports.PageFetcher
	Extractor ports.Extractor
	Logger    logx.Logger
	Observers []ports.Notifier

	// Bound es el límite compartido; si es nil se crea con Concurrency.
	Bound       *workerpool.Bound
	Concurrency int

	// Stagger separa el arranque de cada URL, independiente del límite.
	Stagger     time.Duration
	SkipCurrent bool

	// Now permite fijar el reloj en tests.
	Now func() time.Time
}

// NewOrchestrator crea una nueva instancia del orchestrator.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 10
	}
	if opts.Bound == nil {
		opts.Bound = workerpool.NewBound(opts.Concurrency)
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Stagger < 0 {
		opts.Stagger = 0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	notifier := ports.Notifiers(opts.Observers)
	return &Orchestrator{
		index:       opts.Index,
		pages:       opts.Pages,
		extractor:   opts.Extractor,
		bound:       opts.Bound,
		fetcher:     NewSnapshotFetcher(opts.Pages, opts.Extractor, opts.Bound, notifier, opts.Logger),
		notifier:    notifier,
		logger:      opts.Logger.With("component", "orchestrator"),
		stagger:     opts.Stagger,
		skipCurrent: opts.SkipCurrent,
		now:         opts.Now,
	}
}

// Bound expone el límite compartido (para estadísticas).
func (o *Orchestrator) Bound() *workerpool.Bound { return o.bound }

// Run ejecuta un pipeline por request, arrancándolos con Stagger de
// separación, y espera a todos. Los resultados siguen el orden de entrada.
//
// Un rate limit en cualquier URL cancela el resto del lote: se devuelve el
// BatchResult parcial (Aborted = true) junto con un error que envuelve
// errors.ErrRateLimit. Cualquier otro fallo de una URL queda en su
// URLResult.Err y no afecta a las demás.
func (o *Orchestrator) Run(ctx context.Context, reqs []domain.PipelineRequest) (*domain.BatchResult, error) {
	batch := domain.NewBatchResult()
	if len(reqs) == 0 {
		batch.Finalize()
		return batch, &domain.ConfigurationError{Field: "urls", Err: domain.ErrNoURLs}
	}

	o.logger.Info("starting batch",
		"batch", batch.ID,
		"urls", len(reqs),
		"concurrency", o.bound.Size(),
		"stagger", o.stagger.String(),
		"skip_current", o.skipCurrent,
	)
	o.notify(ports.Event{Type: ports.EventBatchStarted, Count: len(reqs)})

	results := make([]domain.URLResult, len(reqs))
	started := make([]bool, len(reqs))

	limit := rate.Inf
	if o.stagger > 0 {
		limit = rate.Every(o.stagger)
	}
	limiter := rate.NewLimiter(limit, 1)

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		if err := limiter.Wait(gctx); err != nil {
			break
		}
		started[i] = true
		i, req := i, req
		g.Go(func() error {
			res, err := o.runOne(gctx, req)
			if err != nil && res.Err == nil {
				res.Err = err
			}
			results[i] = res
			return err
		})
	}
	err := g.Wait()

	for i, req := range reqs {
		if !started[i] {
			batch.AddWarning(req.URL, "not started: batch aborted")
			continue
		}
		batch.Results = append(batch.Results, results[i])
	}
	if err == nil {
		err = ctx.Err()
	}
	batch.Finalize()

	stats := o.bound.Stats()
	if err != nil {
		batch.Aborted = true
		o.logger.Warn("batch aborted",
			"batch", batch.ID,
			"completed", len(batch.Completed()),
			"urls", len(reqs),
			"error", err.Error(),
		)
		o.notify(ports.Event{Type: ports.EventBatchAborted, Count: len(batch.Completed()), Err: err})
		return batch, errors.Errorf("%w: %w", domain.ErrBatchAborted, err)
	}

	o.logger.Info("batch completed",
		"batch", batch.ID,
		"urls", len(batch.Results),
		"codes", batch.TotalCodes(),
		"requests", stats.Completed,
		"peak_in_flight", stats.Peak,
		"duration_ms", batch.Duration.Milliseconds(),
	)
	o.notify(ports.Event{Type: ports.EventBatchCompleted, Count: batch.TotalCodes()})
	return batch, nil
}

// runOne ejecuta el pipeline para una sola URL. Solo devuelve error ante un
// rate limit del archivo o la cancelación de ctx; el resultado es parcial.
func (o *Orchestrator) runOne(ctx context.Context, req domain.PipelineRequest) (domain.URLResult, error) {
	startTime := time.Now()
	res := domain.URLResult{URL: req.URL, Archived: domain.NewCodeIntervals()}
	log := o.logger.With("url", req.URL)
	done := func() { res.Duration = time.Since(startTime) }

	log.Debug("url run started")
	o.notify(ports.Event{Type: ports.EventURLStarted, URL: req.URL})

	// Página en vivo. Es tráfico hacia el propio sitio: cualquier fallo,
	// incluido un 429, queda en CurrentErr y no corta el lote.
	if !o.skipCurrent {
		var html string
		err := o.bound.Do(ctx, func(ctx context.Context) error {
			var ferr error
			html, ferr = o.pages.FetchLive(ctx, req.URL)
			return ferr
		})
		switch {
		case err == nil:
			res.Current = o.extractor.Extract(html)
			log.Debug("live page processed", "codes", res.Current.Total())
		case ctx.Err() != nil:
			done()
			return res, &domain.FetchError{URL: req.URL, Err: err}
		default:
			res.CurrentErr = &domain.FetchError{URL: req.URL, Err: err}
			log.Warn("live page fetch failed", "kind", errors.Kind(err), "error", err.Error())
		}
	}

	// Índice
	q, err := ResolveIndexQuery(req, o.now())
	if err != nil {
		res.Err = err
		done()
		o.notify(ports.Event{Type: ports.EventURLFailed, URL: req.URL, Err: err})
		return res, nil
	}

	var stamps []domain.Timestamp
	err = o.bound.Do(ctx, func(ctx context.Context) error {
		var ierr error
		stamps, ierr = o.index.Timestamps(ctx, q)
		return ierr
	})
	if err != nil {
		done()
		if isFatal(ctx, err) {
			return res, errors.Wrap(err, "index query for "+req.URL)
		}
		res.Err = errors.Wrap(err, "index query failed")
		log.Warn("index query failed", "kind", errors.Kind(err), "error", err.Error())
		o.notify(ports.Event{Type: ports.EventURLFailed, URL: req.URL, Err: res.Err})
		return res, nil
	}
	res.Snapshots = len(stamps)
	log.Debug("index resolved", "snapshots", len(stamps), "limit", q.Limit, "collapse", q.Collapse)
	o.notify(ports.Event{Type: ports.EventURLIndexed, URL: req.URL, Count: len(stamps)})

	// Capturas
	agg := NewAggregator()
	stats, err := o.fetcher.Fetch(ctx, req.URL, stamps, agg)
	res.Archived = agg.Result()
	res.Failed = stats.Failed
	done()
	if err != nil {
		return res, err
	}

	log.Info("url completed",
		"snapshots", res.Snapshots,
		"failed", res.Failed,
		"codes", res.Archived.Total(),
		"duration_ms", res.Duration.Milliseconds(),
	)
	o.notify(ports.Event{Type: ports.EventURLCompleted, URL: req.URL, Count: res.Archived.Total()})
	return res, nil
}

// isFatal indica si un fallo del archivo debe cortar el lote: rate limit o
// contexto cancelado.
func isFatal(ctx context.Context, err error) bool {
	return errors.IsRateLimit(err) || ctx.Err() != nil
}

// notify envía un evento a todos los observers con la hora actual.
func (o *Orchestrator) notify(e ports.Event) {
	e.Timestamp = time.Now()
	o.notifier.Notify(e)
}

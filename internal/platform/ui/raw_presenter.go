// internal/platform/ui/raw_presenter.go
package ui

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
)

// LogFormat define el formato de salida para el modo raw
type LogFormat string

const (
	LogFormatText LogFormat = "text" // Formato consola sin color (default)
	LogFormatJSON LogFormat = "json" // Formato JSON estructurado
)

// RawPresenter implementa el Presenter para modo raw: una línea de log por
// evento, pensado para salidas que no son una terminal.
type RawPresenter struct {
	mu        sync.Mutex
	zl        zerolog.Logger
	in        *bufio.Reader
	format    LogFormat
	state     *tracker
	startTime time.Time
}

// NewRawPresenter crea un RawPresenter que escribe en w y lee las
// confirmaciones de in (nil desactiva las preguntas).
func NewRawPresenter(w io.Writer, in io.Reader, format LogFormat) *RawPresenter {
	var out io.Writer = w
	if format != LogFormatJSON {
		format = LogFormatText
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}
	r := &RawPresenter{
		zl:        zerolog.New(out).With().Timestamp().Logger(),
		format:    format,
		state:     newTracker(),
		startTime: time.Now(),
	}
	if in != nil {
		r.in = bufio.NewReader(in)
	}
	return r
}

// Start registra la configuración del lote
func (r *RawPresenter) Start(info RunInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.startTime = time.Now()
	r.zl.Info().
		Int("urls", info.URLs).
		Str("start", info.StartDate).
		Str("end", info.EndDate).
		Str("frequency", info.Frequency).
		Int("limit", info.Limit).
		Int("concurrency", info.Concurrency).
		Dur("stagger", info.Stagger).
		Bool("skip_current", info.SkipCurrent).
		Str("format", info.Format).
		Str("out_dir", info.OutputDir).
		Str("log_format", string(r.format)).
		Msg("run_started")
}

// Confirm escribe la pregunta y acepta "y" o "yes" en la entrada
func (r *RawPresenter) Confirm(question string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.in == nil {
		return false
	}
	r.zl.Warn().Msg(question + " [y/N]")
	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Notify registra un evento del orquestador
func (r *RawPresenter) Notify(e ports.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.state.apply(e)

	switch e.Type {
	case ports.EventBatchStarted:
		r.zl.Info().Int("urls", e.Count).Msg("batch_started")
	case ports.EventURLStarted:
		r.zl.Info().Str("url", e.URL).Msg("url_started")
	case ports.EventURLIndexed:
		r.zl.Info().Str("url", e.URL).Int("snapshots", e.Count).Msg("url_indexed")
	case ports.EventSnapshotFailed:
		r.zl.Warn().Str("url", e.URL).Str("snapshot", e.Message).AnErr("error", e.Err).Msg("snapshot_failed")
	case ports.EventURLCompleted:
		r.zl.Info().
			Str("url", e.URL).
			Str("status", u.Status.String()).
			Int("codes", u.Codes).
			Int("snapshots", u.Snapshots).
			Int("failed", u.Failed).
			Dur("duration", u.Duration).
			Msg("url_completed")
	case ports.EventURLFailed:
		r.zl.Error().Str("url", e.URL).AnErr("error", e.Err).Msg("url_failed")
	case ports.EventBatchAborted:
		r.zl.Error().Int("completed", e.Count).AnErr("error", e.Err).Msg("batch_aborted")
	case ports.EventBatchCompleted:
		r.zl.Info().Int("codes", e.Count).Msg("batch_completed")
	}
}

// Finish registra el resumen final y una línea por URL
func (r *RawPresenter) Finish(batch *domain.BatchResult, files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range batch.Results {
		r.zl.Info().
			Str("url", res.URL).
			Str("status", resultStatus(res).String()).
			Strs("ua", res.Archived.Sorted(domain.ClassLegacy)).
			Strs("ga", res.Archived.Sorted(domain.ClassShort)).
			Strs("gtm", res.Archived.Sorted(domain.ClassTagManager)).
			Msg("result")
	}
	for _, w := range batch.Warnings {
		r.zl.Warn().Str("url", w.URL).Msg(w.Message)
	}
	r.zl.Info().
		Str("batch", batch.ID).
		Bool("aborted", batch.Aborted).
		Int("completed", len(batch.Completed())).
		Int("codes", batch.TotalCodes()).
		Dur("duration", batch.Duration).
		Strs("files", files).
		Msg("run_completed")
}

// Close limpia recursos
func (r *RawPresenter) Close() error {
	return nil
}

// Progress devuelve el estado conocido de url.
func (r *RawPresenter) Progress(url string) (URLProgress, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.get(url)
}

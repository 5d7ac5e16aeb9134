// cmd/waybackga/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"waybackga/internal/adapters/archive"
	"waybackga/internal/adapters/extract"
	"waybackga/internal/adapters/output"
	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
	"waybackga/internal/core/usecases"
	"waybackga/internal/platform/config"
	"waybackga/internal/platform/errors"
	"waybackga/internal/platform/httpclient"
	"waybackga/internal/platform/logx"
	"waybackga/internal/platform/ui"
	"waybackga/internal/platform/workerpool"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1. Config: flags > env > archivo > defaults
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		config.PrintHelp(os.Stdout)
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try: waybackga -h for help")
		return 2
	}
	if cfg.PrintVersion {
		config.PrintVersion(os.Stdout, version, commit, date)
		return 0
	}

	// 2. Requests (todas las validaciones antes de tocar la red)
	reqs, err := usecases.BuildRequests(usecases.RequestInput{
		URLs:      cfg.Core.URLs,
		StartDate: cfg.Core.StartDate,
		EndDate:   cfg.Core.EndDate,
		Frequency: cfg.Core.Frequency,
		Limit:     cfg.Core.Limit,
	}, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	// 3. Presenter y logger: con UI interactiva el logger solo muestra errores
	presenter, logger := buildPresentation(cfg)
	defer presenter.Close()

	logger.Info("waybackga starting",
		"version", version,
		"commit", commit,
		"urls", len(reqs),
		"frequency", cfg.Core.Frequency,
		"limit", cfg.Core.Limit,
		"concurrency", cfg.Core.Concurrency,
	)

	presenter.Start(ui.RunInfo{
		URLs:        len(reqs),
		StartDate:   cfg.Core.StartDate,
		EndDate:     cfg.Core.EndDate,
		Frequency:   cfg.Core.Frequency,
		Limit:       cfg.Core.Limit,
		Concurrency: cfg.Core.Concurrency,
		Stagger:     cfg.Core.Stagger,
		SkipCurrent: cfg.Core.SkipCurrent,
		Format:      cfg.Output.Format,
		OutputDir:   cfg.Output.Dir,
	})

	// 4. Confirmación para lotes grandes
	if usecases.IsLargeRequest(reqs, time.Now()) && !cfg.Core.AssumeYes {
		question := fmt.Sprintf("This run may fetch a large number of snapshots (%d URLs). Continue?", len(reqs))
		if !presenter.Confirm(question) {
			fmt.Fprintln(os.Stderr, "Aborted. Use --yes to skip this question.")
			return 1
		}
	}

	// 5. Contexto raíz con señales y timeout global
	ctx, cancel := rootContextWithSignals(cfg.Core.TimeoutS)
	defer cancel()

	// 6. Adapters y orquestador
	exporter, err := output.NewExporter(domain.OutputFormat(cfg.Output.Format))
	if err != nil {
		logger.Err(err, "phase", "output")
		return 2
	}

	orch, err := buildOrchestrator(cfg, logger, presenter)
	if err != nil {
		logger.Err(err, "phase", "build")
		return 2
	}

	// 7. Ejecución
	start := time.Now()
	batch, runErr := orch.Run(ctx, reqs)
	elapsed := time.Since(start)

	if runErr != nil {
		logger.Err(runErr, "phase", "run", "elapsed_ms", elapsed.Milliseconds())
		// El resultado parcial se escribe igualmente
	}

	// 8. Salida
	var files []string
	if batch != nil && len(batch.Results) > 0 {
		files, err = exporter.Export(batch, ports.ExportOptions{Dir: cfg.Output.Dir})
		if err != nil {
			logger.Err(err, "phase", "output")
			return 1
		}
	}
	if batch != nil {
		presenter.Finish(batch, files)
		if cfg.Output.UIDisabled {
			_ = output.OutputTable(os.Stdout, batch)
		}
	}

	if errors.IsRateLimit(runErr) {
		fmt.Fprintln(os.Stderr, "Rate limited by the Wayback Machine. Wait 5 minutes, then retry with a lower --limit or fewer URLs.")
	}

	if batch != nil {
		logger.Info("waybackga finished",
			"elapsed_ms", elapsed.Milliseconds(),
			"completed", len(batch.Completed()),
			"codes", batch.TotalCodes(),
			"warnings", len(batch.Warnings),
			"files", len(files),
		)
	}

	if runErr != nil {
		return 1
	}
	return 0
}

// buildPresentation elige el presenter según la terminal: pterm si stdout es
// una TTY, logs por línea si no, y nada con --no-ui.
func buildPresentation(cfg config.Config) (ui.Presenter, logx.Logger) {
	switch {
	case cfg.Output.UIDisabled:
		return ui.NewNoopPresenter(), logx.New()
	case term.IsTerminal(int(os.Stdout.Fd())):
		return ui.NewPTermPresenter(), logx.NewSilent()
	default:
		return ui.NewRawPresenter(os.Stdout, os.Stdin, ui.LogFormatText), logx.NewSilent()
	}
}

// buildOrchestrator conecta el cliente HTTP, los adapters del archivo y el
// extractor con un único límite de concurrencia compartido.
func buildOrchestrator(cfg config.Config, logger logx.Logger, presenter ui.Presenter) (*usecases.Orchestrator, error) {
	hc := httpclient.DefaultConfig()
	hc.Timeout = cfg.Network.RequestTimeout
	hc.MaxRetries = cfg.Network.Retries
	hc.RateLimit = cfg.Network.RateLimit
	hc.ProxyURL = cfg.Network.ProxyURL
	if cfg.Network.UserAgent != "" {
		hc.UserAgent = cfg.Network.UserAgent
	}

	client, err := httpclient.New(hc, logger)
	if err != nil {
		return nil, errors.Wrap(err, "http client")
	}

	return usecases.NewOrchestrator(usecases.OrchestratorOptions{
		Index:       archive.NewIndexClient(client, cfg.Archive.IndexURL, logger),
		Pages:       archive.NewPages(client, cfg.Archive.SnapshotURL, logger),
		Extractor:   extract.New(cfg.Network.CacheSize),
		Logger:      logger,
		Observers:   []ports.Notifier{presenter},
		Bound:       workerpool.NewBound(cfg.Core.Concurrency),
		Concurrency: cfg.Core.Concurrency,
		Stagger:     cfg.Core.Stagger,
		SkipCurrent: cfg.Core.SkipCurrent,
	}), nil
}

// rootContextWithSignals creates a root context with optional timeout and signal cancellation.
func rootContextWithSignals(timeoutSeconds int) (context.Context, context.CancelFunc) {
	var base context.Context
	var baseCancel context.CancelFunc

	if timeoutSeconds > 0 {
		base, baseCancel = context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	} else {
		base, baseCancel = context.WithCancel(context.Background())
	}

	ctx, stop := signal.NotifyContext(base, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stop()
		baseCancel()
	}
}

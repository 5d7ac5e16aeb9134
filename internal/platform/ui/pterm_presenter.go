// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
	"waybackga/internal/platform/errors"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar la barra de progreso, colores y símbolos en la terminal.
type PTermPresenter struct {
	mu sync.Mutex

	state     *tracker
	startTime time.Time

	// Barra global de URLs terminadas
	bar *pterm.ProgressbarPrinter

	info RunInfo
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{state: newTracker()}
}

// Start muestra la cabecera y la configuración del lote
func (p *PTermPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info = info
	p.startTime = time.Now()

	pterm.Println(StylePrimary.Sprint(Banner))
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("waybackga - Wayback Machine analytics discovery")
	pterm.Println()

	period := fmt.Sprintf("%s → %s", orDash(info.StartDate), orDash(info.EndDate))
	limit := strconv.Itoa(info.Limit)
	if info.Frequency != "" {
		limit = "from frequency"
	}

	content := fmt.Sprintf("%s URLs: %s\n", IconTarget, pterm.Cyan(info.URLs))
	content += fmt.Sprintf("%s Period: %s\n", IconCalendar, period)
	content += fmt.Sprintf("   Frequency: %s\n", pterm.Yellow(orDash(info.Frequency)))
	content += fmt.Sprintf("%s Limit: %s\n", IconArchive, limit)
	content += fmt.Sprintf("%s Concurrency: %d\n", IconWorkers, info.Concurrency)
	content += fmt.Sprintf("%s Stagger: %s\n", IconTime, info.Stagger)
	content += fmt.Sprintf("   Live page: %s\n", boolToString(!info.SkipCurrent))
	content += fmt.Sprintf("%s Output: %s in %s", IconFile, info.Format, info.OutputDir)

	pterm.DefaultBox.
		WithTitle("Run Configuration").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Println(content)

	pterm.Println()
	pterm.Println(pterm.LightBlue(SeparatorHeavy))
	pterm.Println()
}

// Confirm pregunta al usuario con un prompt interactivo (default: no)
func (p *PTermPresenter) Confirm(question string) bool {
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(question)
	if err != nil {
		return false
	}
	return ok
}

// Notify actualiza el estado y la salida con un evento del orquestador
func (p *PTermPresenter) Notify(e ports.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	u := p.state.apply(e)

	switch e.Type {
	case ports.EventBatchStarted:
		p.startBar(e.Count)
	case ports.EventURLStarted:
		p.updateTitle("Fetching " + e.URL)
	case ports.EventURLIndexed:
		pterm.Info.Printfln("%s: %d snapshots to fetch", e.URL, e.Count)
	case ports.EventURLCompleted, ports.EventURLFailed:
		p.renderURLLine(u)
		if p.bar != nil {
			p.bar.Increment()
		}
	case ports.EventBatchAborted:
		p.stopBar()
		pterm.Error.Printfln("Batch aborted after %d completed URLs: %v", e.Count, e.Err)
		if errors.IsRateLimit(e.Err) {
			pterm.Warning.Println("The Wayback Machine is rate limiting requests. Wait 5 minutes, then retry with a lower --limit or fewer URLs.")
		}
	case ports.EventBatchCompleted:
		p.stopBar()
	}
}

// Finish muestra el resumen final con una tabla por URL
func (p *PTermPresenter) Finish(batch *domain.BatchResult, files []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopBar()

	pterm.Println()
	pterm.Println(pterm.LightBlue(SeparatorHeavy))
	pterm.Println()

	title, bg, box := "Discovery Completed", pterm.BgGreen, pterm.FgGreen
	if batch.Aborted {
		title, bg, box = "Discovery Aborted (partial results)", pterm.BgRed, pterm.FgRed
	}
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(bg)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println(title)
	pterm.Println()

	failedSnapshots := 0
	for _, r := range batch.Results {
		failedSnapshots += r.Failed
	}

	stats := fmt.Sprintf("%s Total Duration: %s\n", IconTime, pterm.Green(formatDuration(batch.Duration)))
	stats += fmt.Sprintf("%s URLs Completed: %s / %d\n", IconTarget,
		pterm.Cyan(len(batch.Completed())), len(batch.Results)+len(batch.Warnings))
	stats += fmt.Sprintf("%s Archived Codes: %s", IconCodes, pterm.Yellow(batch.TotalCodes()))
	if failedSnapshots > 0 {
		stats += fmt.Sprintf("\n%s Failed Snapshots: %s", StatusPartial.Symbol(), pterm.Red(failedSnapshots))
	}

	pterm.DefaultBox.
		WithTitle("Statistics").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(box)).
		Println(stats)

	if len(batch.Results) > 0 {
		pterm.Println()
		pterm.DefaultSection.WithLevel(2).Println("Codes by URL")
		_ = pterm.DefaultTable.
			WithHasHeader().
			WithBoxed().
			WithData(summaryTable(batch)).
			Render()
	}

	for _, w := range batch.Warnings {
		StatusNotStarted.Style().Printfln("  %s [%s] %s", StatusNotStarted.Symbol(), w.URL, w.Message)
	}

	if len(files) > 0 {
		pterm.Println()
		pterm.Println(pterm.Gray(SeparatorLight))
		pterm.DefaultSection.WithLevel(2).Println("Files")
		for _, f := range files {
			pterm.Success.Println(f)
		}
	}
	pterm.Println()
}

// Close detiene la barra si sigue activa
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopBar()
	return nil
}

// Progress devuelve el estado conocido de url.
func (p *PTermPresenter) Progress(url string) (URLProgress, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.get(url)
}

func (p *PTermPresenter) startBar(total int) {
	if total <= 0 {
		return
	}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("URLs").
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		return
	}
	p.bar = bar
}

func (p *PTermPresenter) updateTitle(title string) {
	if p.bar != nil {
		p.bar.UpdateTitle(title)
	}
}

func (p *PTermPresenter) stopBar() {
	if p.bar != nil {
		_, _ = p.bar.Stop()
		p.bar = nil
	}
}

// renderURLLine imprime la línea final de una URL
func (p *PTermPresenter) renderURLLine(u *URLProgress) {
	if u == nil {
		return
	}
	line := fmt.Sprintf("  %s %s (%s)", u.Status.Symbol(), u.URL, formatDuration(u.Duration))
	switch u.Status {
	case StatusFailed:
		line += fmt.Sprintf(": %v", u.Err)
	default:
		line += fmt.Sprintf(" %s %d codes from %d/%d snapshots", IconCodes, u.Codes, u.Fetched, u.Snapshots)
		if u.Failed > 0 {
			line += fmt.Sprintf(", %d failed", u.Failed)
		}
	}
	u.Status.Style().Println(line)
}

// summaryTable arma la tabla final: una fila por URL
func summaryTable(batch *domain.BatchResult) pterm.TableData {
	data := pterm.TableData{{"", "URL", "Snapshots", "UA", "GA", "GTM"}}
	for _, r := range batch.Results {
		st := resultStatus(r)
		data = append(data, []string{
			st.Style().Sprint(st.Symbol()),
			r.URL,
			fmt.Sprintf("%d (%d failed)", r.Snapshots, r.Failed),
			archivedCodes(r, domain.ClassLegacy),
			archivedCodes(r, domain.ClassShort),
			archivedCodes(r, domain.ClassTagManager),
		})
	}
	return data
}

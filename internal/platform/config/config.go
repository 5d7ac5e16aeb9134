// internal/platform/config/config.go
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"waybackga/internal/core/domain"
	"waybackga/internal/platform/validator"
)

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "WAYBACKGA_"

type Config struct {
	Core    Core    `yaml:"core"`
	Archive Archive `yaml:"archive"`
	Network Network `yaml:"network"`
	Output  Output  `yaml:"output"`

	// Set from flags only.
	ConfigFile   string `yaml:"-"`
	PrintVersion bool   `yaml:"-"`
}

type Core struct {
	URLs        []string      `yaml:"urls" validate:"dive,target"`
	InputFile   string        `yaml:"input_file"`
	StartDate   string        `yaml:"start_date" validate:"omitempty,archive_date"`
	EndDate     string        `yaml:"end_date" validate:"omitempty,archive_date"`
	Frequency   string        `yaml:"frequency" validate:"omitempty,oneof=yearly monthly daily hourly"`
	Limit       int           `yaml:"limit"`
	SkipCurrent bool          `yaml:"skip_current"`
	Concurrency int           `yaml:"concurrency" validate:"min=1,max=100"`
	Stagger     time.Duration `yaml:"stagger" validate:"min=0"`
	TimeoutS    int           `yaml:"timeout" validate:"min=0"` // segundos (0 = sin timeout)
	AssumeYes   bool          `yaml:"yes"`
}

type Archive struct {
	IndexURL    string `yaml:"index_url" validate:"required,url"`
	SnapshotURL string `yaml:"snapshot_url" validate:"required,url"`
}

type Network struct {
	UserAgent      string        `yaml:"user_agent"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"min=0"`
	Retries        int           `yaml:"retries" validate:"min=0,max=10"`
	RateLimit      float64       `yaml:"rate_limit" validate:"min=0"`
	ProxyURL       string        `yaml:"proxy_url" validate:"omitempty,url"`
	CacheSize      int           `yaml:"cache_size" validate:"min=0"`
}

type Output struct {
	Format     string `yaml:"format" validate:"oneof=json txt csv xlsx"`
	Dir        string `yaml:"dir" validate:"required"`
	UIDisabled bool   `yaml:"no_ui"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Core: Core{
			StartDate:   domain.DefaultStartDate,
			Limit:       -100,
			Concurrency: 10,
			Stagger:     5 * time.Second,
			TimeoutS:    0,
		},
		Archive: Archive{
			IndexURL:    "https://web.archive.org",
			SnapshotURL: "https://web.archive.org",
		},
		Network: Network{
			RequestTimeout: 30 * time.Second,
			Retries:        2,
			CacheSize:      256,
		},
		Output: Output{
			Format: string(domain.FormatJSON),
			Dir:    "output",
		},
	}
}

func init() {
	_ = validator.RegisterValidation("archive_date", func(fl validator.FieldLevel) bool {
		_, err := domain.EncodeDate(fl.Field().String())
		return err == nil
	})
}

// flagValues holds raw flag values; only flags the user actually set are
// applied over the file and environment layers.
type flagValues struct {
	urls        []string
	inputFile   string
	startDate   string
	endDate     string
	frequency   string
	limit       int
	skipCurrent bool
	concurrency int
	stagger     time.Duration
	timeoutS    int
	yes         bool
	format      string
	outDir      string
	noUI        bool
	proxy       string
	userAgent   string
	rateLimit   float64
	retries     int
	indexURL    string
	snapshotURL string
	configFile  string
	version     bool
	help        bool
}

// NewFlagSet declares every CLI flag on a fresh FlagSet.
func NewFlagSet(v *flagValues, d Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("waybackga", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {}

	fs.StringSliceVarP(&v.urls, "urls", "u", nil, "URLs to analyse (comma separated or repeated)")
	fs.StringVarP(&v.inputFile, "input-file", "i", "", "File with one URL per line")
	fs.StringVarP(&v.startDate, "start-date", "s", d.Core.StartDate, "Start date (dd/mm/YYYY[:HH:MM])")
	fs.StringVarP(&v.endDate, "end-date", "e", d.Core.EndDate, "End date (dd/mm/YYYY[:HH:MM])")
	fs.StringVarP(&v.frequency, "frequency", "f", d.Core.Frequency, "One snapshot per: yearly, monthly, daily, hourly")
	fs.IntVarP(&v.limit, "limit", "l", d.Core.Limit, "Snapshots to request (negative = most recent N)")
	fs.BoolVarP(&v.skipCurrent, "skip-current", "k", d.Core.SkipCurrent, "Do not fetch the live page")
	fs.IntVarP(&v.concurrency, "concurrency", "c", d.Core.Concurrency, "Maximum simultaneous requests across all URLs")
	fs.DurationVar(&v.stagger, "stagger", d.Core.Stagger, "Delay between URL run starts")
	fs.IntVarP(&v.timeoutS, "timeout", "T", d.Core.TimeoutS, "Global timeout in seconds (0 = none)")
	fs.BoolVarP(&v.yes, "yes", "y", d.Core.AssumeYes, "Skip the large-request confirmation")

	fs.StringVarP(&v.format, "output", "o", d.Output.Format, "Output format: json, txt, csv, xlsx")
	fs.StringVarP(&v.outDir, "out-dir", "d", d.Output.Dir, "Output directory")
	fs.BoolVarP(&v.noUI, "no-ui", "q", d.Output.UIDisabled, "Plain logs instead of the terminal UI")

	fs.StringVarP(&v.proxy, "proxy", "p", d.Network.ProxyURL, "HTTP(S) proxy URL")
	fs.StringVar(&v.userAgent, "user-agent", d.Network.UserAgent, "Override the browser User-Agent")
	fs.Float64Var(&v.rateLimit, "rate-limit", d.Network.RateLimit, "Client-side requests per second (0 = off)")
	fs.IntVar(&v.retries, "retries", d.Network.Retries, "Retries for transient failures")

	fs.StringVar(&v.indexURL, "index-url", d.Archive.IndexURL, "CDX index host")
	fs.StringVar(&v.snapshotURL, "snapshot-url", d.Archive.SnapshotURL, "Archived snapshot host")

	fs.StringVar(&v.configFile, "config", "", "YAML config file")
	fs.BoolVarP(&v.version, "version", "v", false, "Print version information and exit")
	fs.BoolVarP(&v.help, "help", "h", false, "Show this help message")
	return fs
}

// Load builds the configuration from, in increasing priority: defaults, the
// YAML file (--config or WAYBACKGA_CONFIG), WAYBACKGA_* environment variables
// and explicitly set flags. It returns pflag.ErrHelp when help was requested.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	var fv flagValues
	fs := NewFlagSet(&fv, cfg)
	if err := fs.Parse(args); err != nil {
		return cfg, &domain.ConfigurationError{Field: "flags", Err: err}
	}
	if fv.help {
		return cfg, pflag.ErrHelp
	}
	// Positional arguments are URLs too.
	fv.urls = append(fv.urls, fs.Args()...)

	cfg.ConfigFile = getenv(EnvPrefix+"CONFIG", "")
	if fs.Changed("config") {
		cfg.ConfigFile = fv.configFile
	}
	if cfg.ConfigFile != "" {
		if err := loadFromFile(cfg.ConfigFile, &cfg); err != nil {
			return cfg, err
		}
	}

	loadFromEnv(&cfg)
	applyFlags(fs, &fv, &cfg)
	cfg.PrintVersion = fv.version
	if cfg.PrintVersion {
		return cfg, nil
	}

	if err := resolveURLs(&cfg); err != nil {
		return cfg, err
	}
	normalize(&cfg)

	if err := validator.Struct(cfg); err != nil {
		return cfg, &domain.ConfigurationError{Field: "config", Err: err}
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &domain.ConfigurationError{Field: "config file", Value: path, Err: err}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &domain.ConfigurationError{Field: "config file", Value: path, Err: err}
	}
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	if v := getenv(EnvPrefix+"URLS", ""); v != "" {
		cfg.Core.URLs = splitList(v)
	}
	if v := getenv(EnvPrefix+"INPUT_FILE", ""); v != "" {
		cfg.Core.InputFile = v
	}
	if v := getenv(EnvPrefix+"START_DATE", ""); v != "" {
		cfg.Core.StartDate = v
	}
	if v := getenv(EnvPrefix+"END_DATE", ""); v != "" {
		cfg.Core.EndDate = v
	}
	if v := getenv(EnvPrefix+"FREQUENCY", ""); v != "" {
		cfg.Core.Frequency = v
	}
	if v := getenv(EnvPrefix+"LIMIT", ""); v != "" {
		cfg.Core.Limit = parseInt(v, cfg.Core.Limit)
	}
	if v := getenv(EnvPrefix+"SKIP_CURRENT", ""); v != "" {
		cfg.Core.SkipCurrent = parseBool(v)
	}
	if v := getenv(EnvPrefix+"CONCURRENCY", ""); v != "" {
		cfg.Core.Concurrency = parseInt(v, cfg.Core.Concurrency)
	}
	if v := getenv(EnvPrefix+"STAGGER", ""); v != "" {
		cfg.Core.Stagger = parseDuration(v, cfg.Core.Stagger)
	}
	if v := getenv(EnvPrefix+"TIMEOUT", ""); v != "" {
		cfg.Core.TimeoutS = parseInt(v, cfg.Core.TimeoutS)
	}
	if v := getenv(EnvPrefix+"YES", ""); v != "" {
		cfg.Core.AssumeYes = parseBool(v)
	}

	if v := getenv(EnvPrefix+"INDEX_URL", ""); v != "" {
		cfg.Archive.IndexURL = v
	}
	if v := getenv(EnvPrefix+"SNAPSHOT_URL", ""); v != "" {
		cfg.Archive.SnapshotURL = v
	}

	if v := getenv(EnvPrefix+"USER_AGENT", ""); v != "" {
		cfg.Network.UserAgent = v
	}
	if v := getenv(EnvPrefix+"REQUEST_TIMEOUT", ""); v != "" {
		cfg.Network.RequestTimeout = parseDuration(v, cfg.Network.RequestTimeout)
	}
	if v := getenv(EnvPrefix+"RETRIES", ""); v != "" {
		cfg.Network.Retries = parseInt(v, cfg.Network.Retries)
	}
	if v := getenv(EnvPrefix+"RATE_LIMIT", ""); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			cfg.Network.RateLimit = f
		}
	}
	if v := getenv(EnvPrefix+"PROXY_URL", ""); v != "" {
		cfg.Network.ProxyURL = v
	}

	if v := getenv(EnvPrefix+"OUTPUT", ""); v != "" {
		cfg.Output.Format = v
	}
	if v := getenv(EnvPrefix+"OUTPUT_DIR", ""); v != "" {
		cfg.Output.Dir = v
	}
	if v := getenv(EnvPrefix+"NO_UI", ""); v != "" {
		cfg.Output.UIDisabled = parseBool(v)
	}
}

// applyFlags copies flags the user set explicitly; defaults never override
// the file or environment.
func applyFlags(fs *pflag.FlagSet, v *flagValues, cfg *Config) {
	if fs.Changed("urls") || len(fs.Args()) > 0 {
		cfg.Core.URLs = v.urls
	}
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("input-file", func() { cfg.Core.InputFile = v.inputFile })
	set("start-date", func() { cfg.Core.StartDate = v.startDate })
	set("end-date", func() { cfg.Core.EndDate = v.endDate })
	set("frequency", func() { cfg.Core.Frequency = v.frequency })
	set("limit", func() { cfg.Core.Limit = v.limit })
	set("skip-current", func() { cfg.Core.SkipCurrent = v.skipCurrent })
	set("concurrency", func() { cfg.Core.Concurrency = v.concurrency })
	set("stagger", func() { cfg.Core.Stagger = v.stagger })
	set("timeout", func() { cfg.Core.TimeoutS = v.timeoutS })
	set("yes", func() { cfg.Core.AssumeYes = v.yes })
	set("output", func() { cfg.Output.Format = v.format })
	set("out-dir", func() { cfg.Output.Dir = v.outDir })
	set("no-ui", func() { cfg.Output.UIDisabled = v.noUI })
	set("proxy", func() { cfg.Network.ProxyURL = v.proxy })
	set("user-agent", func() { cfg.Network.UserAgent = v.userAgent })
	set("rate-limit", func() { cfg.Network.RateLimit = v.rateLimit })
	set("retries", func() { cfg.Network.Retries = v.retries })
	set("index-url", func() { cfg.Archive.IndexURL = v.indexURL })
	set("snapshot-url", func() { cfg.Archive.SnapshotURL = v.snapshotURL })
}

// resolveURLs enforces that exactly one of urls / input file is used and
// loads the file when given.
func resolveURLs(cfg *Config) error {
	hasURLs := len(cfg.Core.URLs) > 0
	hasFile := strings.TrimSpace(cfg.Core.InputFile) != ""
	switch {
	case hasURLs && hasFile:
		return &domain.ConfigurationError{Field: "urls", Reason: "use either --urls or --input-file, not both"}
	case hasFile:
		urls, err := ReadURLFile(cfg.Core.InputFile)
		if err != nil {
			return &domain.ConfigurationError{Field: "input file", Value: cfg.Core.InputFile, Err: err}
		}
		cfg.Core.URLs = urls
	}
	if len(cfg.Core.URLs) == 0 {
		return &domain.ConfigurationError{Field: "urls", Err: domain.ErrNoURLs}
	}
	return nil
}

// ReadURLFile reads one URL per line, skipping blank lines and # comments.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

func normalize(c *Config) {
	seen := make(map[string]struct{}, len(c.Core.URLs))
	urls := make([]string, 0, len(c.Core.URLs))
	for _, u := range c.Core.URLs {
		u = validator.NormalizeTarget(u)
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	c.Core.URLs = urls
	c.Core.Frequency = strings.ToLower(strings.TrimSpace(c.Core.Frequency))
	c.Core.StartDate = strings.TrimSpace(c.Core.StartDate)
	c.Core.EndDate = strings.TrimSpace(c.Core.EndDate)
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Archive.IndexURL = strings.TrimRight(c.Archive.IndexURL, "/")
	c.Archive.SnapshotURL = strings.TrimRight(c.Archive.SnapshotURL, "/")
	if c.Core.TimeoutS < 0 {
		c.Core.TimeoutS = 0
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
}

// Timeout devuelve el timeout global como time.Duration (0 = sin timeout).
func (c Config) Timeout() time.Duration {
	if c.Core.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.Core.TimeoutS) * time.Second
}

// ToYAML serializa la configuración (útil para debugging).
func (c Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// String is a one-line summary for logs.
func (c Config) String() string {
	return fmt.Sprintf("Config{urls=%d, start=%q, end=%q, frequency=%q, limit=%d, concurrency=%d, format=%s}",
		len(c.Core.URLs), c.Core.StartDate, c.Core.EndDate, c.Core.Frequency, c.Core.Limit, c.Core.Concurrency, c.Output.Format)
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// parseDuration accepts Go durations ("5s") or plain seconds ("5").
func parseDuration(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if i, err := strconv.Atoi(v); err == nil {
		return time.Duration(i) * time.Second
	}
	return def
}

func splitList(v string) []string {
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' || r == '\n' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

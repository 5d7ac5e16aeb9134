// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

const helpText = `
waybackga - Google Analytics / Tag Manager identifier history from the Wayback Machine

USAGE:
  waybackga -u <url>[,<url>...] [options]
  waybackga -i urls.txt [options]

IMPORTANT:
  Use double dash (--) for long flag names: --urls, --start-date, --frequency
  Use single dash (-) for short flags: -u, -s, -f

INPUT OPTIONS:
  -u, --urls strings       URLs to analyse (comma separated, repeatable, or positional)
  -i, --input-file string  File with one URL per line (# comments allowed)
                           --urls and --input-file are mutually exclusive

RANGE OPTIONS:
  -s, --start-date string  Start date dd/mm/YYYY[:HH:MM] (default: 01/10/2012:00:00)
  -e, --end-date string    End date dd/mm/YYYY[:HH:MM] (default: now)
  -f, --frequency string   One snapshot per yearly, monthly, daily or hourly period
  -l, --limit int          Snapshots to request; negative = most recent N (default: -100)
                           Ignored when --frequency is set (derived from the range)

RUN OPTIONS:
  -k, --skip-current       Do not fetch the live page
  -c, --concurrency int    Maximum simultaneous requests across all URLs (default: 10)
      --stagger duration   Delay between URL run starts (default: 5s)
  -T, --timeout int        Global timeout in seconds, 0=no timeout (default: 0)
  -y, --yes                Skip the confirmation for large requests

OUTPUT OPTIONS:
  -o, --output string      json, txt, csv or xlsx (default: json)
  -d, --out-dir string     Output directory (default: "output")
  -q, --no-ui              Plain log lines instead of the terminal UI

NETWORK OPTIONS:
  -p, --proxy string       HTTP(S) proxy URL for outbound requests
      --user-agent string  Override the browser User-Agent
      --rate-limit float   Client-side requests per second, 0=off
      --retries int        Retries for 5xx and network errors (default: 2)
      --index-url string   CDX index host (default: https://web.archive.org)
      --snapshot-url string Snapshot host (default: https://web.archive.org)

INFO:
      --config string      YAML config file
  -v, --version            Print version information and exit
  -h, --help               Show this help message

EXAMPLES:
  Most recent 100 snapshots of one site:
    waybackga -u example.com

  One snapshot per month for 2015:
    waybackga -u example.com -s 01/01/2015 -e 01/01/2016 -f monthly

  Several sites to Excel:
    waybackga -i sites.txt -o xlsx -y

ENVIRONMENT VARIABLES:
  Every option can be set with the WAYBACKGA_ prefix:

  WAYBACKGA_URLS=a.com,b.com        URLs
  WAYBACKGA_START_DATE=01/01/2015   Start date
  WAYBACKGA_FREQUENCY=monthly       Frequency
  WAYBACKGA_LIMIT=-50               Limit
  WAYBACKGA_CONCURRENCY=5           Concurrency
  WAYBACKGA_OUTPUT=csv              Output format
  WAYBACKGA_LOG_LEVEL=debug         Log level
  WAYBACKGA_CONFIG=/path/cfg.yaml   Config file

  Precedence: flags > environment > config file > defaults.

RATE LIMITS:
  The archive answers HTTP 429 when too many requests arrive. The run stops,
  partial results are written, and you should wait 5 minutes and then reduce
  --limit or the number of URLs.
`

// PrintHelp prints the custom help message.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "waybackga %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", runtime.Version())
}

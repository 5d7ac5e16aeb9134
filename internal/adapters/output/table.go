// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"waybackga/internal/core/domain"
)

// OutputTable imprime un resumen legible del lote en w.
func OutputTable(w io.Writer, batch *domain.BatchResult) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	// Header con información del lote
	fmt.Fprintf(tw, "\n=== waybackga results ===\n")
	fmt.Fprintf(tw, "Batch:\t%s\n", batch.ID)
	fmt.Fprintf(tw, "Duration:\t%s\n", batch.Duration)
	fmt.Fprintf(tw, "URLs:\t%d (%d completed)\n", len(batch.Results), len(batch.Completed()))
	fmt.Fprintf(tw, "Codes:\t%d\n\n", batch.TotalCodes())

	if len(batch.Results) > 0 {
		fmt.Fprintln(tw, "URL\tSNAPSHOTS\tFAILED\tUA\tGA\tGTM\tSTATUS")
		fmt.Fprintln(tw, "---\t---------\t------\t--\t--\t---\t------")

		for _, r := range batch.Results {
			status := "ok"
			if r.Err != nil {
				status = "error: " + r.Err.Error()
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
				r.URL,
				r.Snapshots,
				r.Failed,
				codeList(r.Archived.Sorted(domain.ClassLegacy)),
				codeList(r.Archived.Sorted(domain.ClassShort)),
				codeList(r.Archived.Sorted(domain.ClassTagManager)),
				status,
			)
		}
	} else {
		fmt.Fprintln(tw, "No results.")
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	// Warnings
	if len(batch.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings (%d):\n", len(batch.Warnings))
		for i, warning := range batch.Warnings {
			fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, warning.URL, warning.Message)
		}
	}
	if batch.Aborted {
		fmt.Fprintln(w, "\nBatch aborted: results are partial.")
	}

	fmt.Fprintln(w)
	return nil
}

func codeList(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ",")
}

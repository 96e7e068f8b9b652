package output

import (
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/preflight"
)

// WriteReport writes one line per finding followed by a summary line.
func WriteReport(w io.Writer, report preflight.Report) error {
	for _, f := range report.Findings {
		if _, err := fmt.Fprintf(w, "[%-4s] %-9s %s\n", f.Status, f.Check, f.Message); err != nil {
			return err
		}
	}

	verdict := "ready"
	if !report.Ready() {
		verdict = "not ready"
	}
	_, err := fmt.Fprintf(w, "\nResult: %s (%d ok, %d warnings, %d failures)\n", verdict,
		report.Count(preflight.StatusOK),
		report.Count(preflight.StatusWarn),
		report.Count(preflight.StatusFail))
	return err
}

package encode

import (
	"io"

	"github.com/edaniels/golog"

	"go.viam.com/potree-profile/filter"
)

// WriteCSV is the CSV format's implementation: a documented no-op.
// Spec §4.6.3 reserves the CSV format tag at the dispatcher level
// without requiring an implementation; selecting it must not error,
// but must not touch the sink either.
func WriteCSV(w io.Writer, results []filter.Result, logger golog.Logger) (Summary, error) {
	logger.Debugw("CSV output format selected, this is a documented no-op", "resultsCount", len(results))
	return Summary{}, nil
}

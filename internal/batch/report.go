package batch

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// reportHeader matches the column names downstream analysis scripts key on.
var reportHeader = []string{"File_name", "Reaction_time(s)", "Total_duration(s)"}

// WriteFeatureReport writes the feature CSV: one row per included file, in
// walk order. Excluded and failed files are absent; they live in the batch
// log instead.
func WriteFeatureReport(path string, outcomes []Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating feature report: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing feature report header: %w", err)
	}
	for _, out := range outcomes {
		if !out.Included() {
			continue
		}
		row := []string{
			out.RelPath,
			strconv.FormatFloat(out.Features.ReactionTime, 'f', 3, 64),
			strconv.FormatFloat(out.Features.TotalDuration, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing feature report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing feature report: %w", err)
	}
	return f.Close()
}

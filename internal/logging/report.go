package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/phonolab/wordsnip/internal/batch"
	"github.com/phonolab/wordsnip/internal/processor"
)

// BatchReport collects everything the analysis log prints.
type BatchReport struct {
	Source           string
	Dest             string
	FeatureReport    string
	Started          time.Time
	Elapsed          time.Duration
	Outcomes         []batch.Outcome
	DuplicateStimuli []string
}

// reasonOrder fixes the count-table ordering; map iteration would shuffle
// it between runs.
var reasonOrder = []batch.Reason{
	batch.ReasonIncluded,
	batch.ReasonOutsideWindow,
	batch.ReasonDegenerate,
	batch.ReasonNoReference,
	batch.ReasonNoTargetWord,
	batch.ReasonUnreadable,
	batch.ReasonTimeout,
	batch.ReasonFailed,
}

// WriteBatchLog writes the human-readable analysis log to path.
func WriteBatchLog(path string, r BatchReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating batch log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(Render(r)); err != nil {
		return fmt.Errorf("writing batch log: %w", err)
	}
	return nil
}

// Render produces the full log text.
func Render(r BatchReport) string {
	var sb strings.Builder

	sb.WriteString("Wordsnip batch analysis\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&sb, "Source:         %s\n", r.Source)
	fmt.Fprintf(&sb, "Destination:    %s\n", r.Dest)
	fmt.Fprintf(&sb, "Feature report: %s\n", r.FeatureReport)
	fmt.Fprintf(&sb, "Started:        %s\n", r.Started.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Elapsed:        %s\n", r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&sb, "Files:          %d\n", len(r.Outcomes))
	fmt.Fprintf(&sb, "Acceptance:     rt [%.1f, %.1f] s, duration [%.1f, %.1f] s\n\n",
		processor.MinReactionTime, processor.MaxReactionTime,
		processor.MinDuration, processor.MaxDuration)

	counts := CountByReason(r.Outcomes)
	countTable := &Table{Headers: []string{"Outcome", "Files"}}
	for _, reason := range reasonOrder {
		if counts[reason] == 0 {
			continue
		}
		countTable.AddRow(string(reason), fmt.Sprintf("%d", counts[reason]))
	}
	sb.WriteString(countTable.String())
	sb.WriteString("\n")

	fileTable := &Table{Headers: []string{"File", "Word", "RT(s)", "Dur(s)", "Outcome"}}
	for _, out := range r.Outcomes {
		rt, dur := MissingValue, MissingValue
		if out.Included() || out.Reason == batch.ReasonOutsideWindow {
			rt = FormatSeconds(out.Features.ReactionTime)
			dur = FormatSeconds(out.Features.TotalDuration)
		}
		fileTable.AddRow(out.RelPath, out.Word, rt, dur, string(out.Reason))
	}
	sb.WriteString(fileTable.String())

	var excluded []batch.Outcome
	for _, out := range r.Outcomes {
		if out.Err != nil {
			excluded = append(excluded, out)
		}
	}
	if len(excluded) > 0 {
		sb.WriteString("\nExclusion details\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, out := range excluded {
			fmt.Fprintf(&sb, "%s: %v\n", out.RelPath, out.Err)
		}
	}

	if len(r.DuplicateStimuli) > 0 {
		sb.WriteString("\nDuplicate stimuli entries (first occurrence kept)\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, w := range r.DuplicateStimuli {
			fmt.Fprintf(&sb, "%s\n", w)
		}
	}

	return sb.String()
}

// CountByReason tallies outcomes per classification.
func CountByReason(outcomes []batch.Outcome) map[batch.Reason]int {
	counts := make(map[batch.Reason]int)
	for _, out := range outcomes {
		counts[out.Reason]++
	}
	return counts
}

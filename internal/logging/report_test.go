package logging

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phonolab/wordsnip/internal/batch"
	"github.com/phonolab/wordsnip/internal/processor"
)

func sampleReport() BatchReport {
	return BatchReport{
		Source:        "/data/session04",
		Dest:          "/data/session04_sliced",
		FeatureReport: "/data/session04_sliced/features.csv",
		Started:       time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Elapsed:       92 * time.Second,
		Outcomes: []batch.Outcome{
			{
				Index: 0, RelPath: "a_(palo).wav", Word: "palo",
				Reason:   batch.ReasonIncluded,
				Features: processor.Features{ReactionTime: 0.25, TotalDuration: 0.8, Included: true},
			},
			{
				Index: 1, RelPath: "b_(mesa).wav", Word: "mesa",
				Reason:   batch.ReasonOutsideWindow,
				Features: processor.Features{ReactionTime: -2.5, TotalDuration: 0.8},
			},
			{
				Index: 2, RelPath: "c_(luz).wav", Word: "luz",
				Reason: batch.ReasonDegenerate,
				Err:    errors.New("c_(luz).wav: energy envelope has no contrast"),
			},
		},
		DuplicateStimuli: []string{"CAFE"},
	}
}

func TestRenderBatchLog(t *testing.T) {
	text := Render(sampleReport())

	for _, want := range []string{
		"Wordsnip batch analysis",
		"/data/session04",
		"Files:          3",
		string(batch.ReasonIncluded),
		string(batch.ReasonOutsideWindow),
		string(batch.ReasonDegenerate),
		"a_(palo).wav",
		"0.250",
		"-2.500",
		"energy envelope has no contrast",
		"Duplicate stimuli entries",
		"CAFE",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("log missing %q", want)
		}
	}

	// Files without metrics show the placeholder, not zeros.
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "c_(luz).wav") && strings.Contains(line, "0.000") {
			t.Errorf("degenerate file row carries fabricated metrics: %q", line)
		}
	}
}

func TestWriteBatchLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.log")
	if err := WriteBatchLog(path, sampleReport()); err != nil {
		t.Fatalf("WriteBatchLog() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "Wordsnip batch analysis") {
		t.Error("log file missing header")
	}
}

func TestCountByReason(t *testing.T) {
	counts := CountByReason(sampleReport().Outcomes)
	if counts[batch.ReasonIncluded] != 1 || counts[batch.ReasonOutsideWindow] != 1 || counts[batch.ReasonDegenerate] != 1 {
		t.Errorf("CountByReason() = %v", counts)
	}
}

func TestTableAlignment(t *testing.T) {
	tbl := &Table{Headers: []string{"File", "RT(s)"}}
	tbl.AddRow("short.wav", "0.250")
	tbl.AddRow("a_much_longer_name.wav", "12.000")

	out := tbl.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want header + rule + 2 rows", len(lines))
	}
	// All rows pad to the same width.
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) != len(lines[0]) {
			t.Errorf("line %d width %d != header width %d: %q", i, len(lines[i]), len(lines[0]), lines[i])
		}
	}
}

func TestTableMissingCells(t *testing.T) {
	tbl := &Table{Headers: []string{"File", "RT(s)", "Outcome"}}
	tbl.AddRow("a.wav")

	out := tbl.String()
	if !strings.Contains(out, MissingValue) {
		t.Errorf("short row did not render placeholders: %q", out)
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.25, "0.250"},
		{-0.5, "-0.500"},
		{math.NaN(), MissingValue},
		{math.Inf(1), MissingValue},
	}
	for _, tt := range tests {
		if got := FormatSeconds(tt.in); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

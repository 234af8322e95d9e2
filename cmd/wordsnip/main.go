package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/phonolab/wordsnip/internal/batch"
	"github.com/phonolab/wordsnip/internal/cli"
	"github.com/phonolab/wordsnip/internal/logging"
	"github.com/phonolab/wordsnip/internal/stimuli"
	"github.com/phonolab/wordsnip/internal/ui"
)

var (
	version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Source  string        `help:"Directory tree of recordings to process" type:"existingdir"`
	Dest    string        `help:"Destination for the mirrored tree of accepted slices" type:"path"`
	Stimuli string        `help:"CSV of reference stimulus durations (word,duration)" type:"existingfile"`
	Report  string        `help:"Feature report path (default: DEST/features.csv)" type:"path"`
	Config  string        `short:"c" help:"YAML config file overriding detection defaults" type:"existingfile"`
	Workers int           `help:"Number of files processed concurrently"`
	Timeout time.Duration `help:"Per-file processing time limit"`
	Plain   bool          `help:"Disable the TUI and print one line per file"`
	Logs    bool          `help:"Write a detailed batch analysis log next to the feature report"`
	Version bool          `short:"v" help:"Show version information"`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("wordsnip"),
		kong.Description("Utterance slicer for spoken naming-task recordings"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	// Handle version flag
	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if cliArgs.Source == "" || cliArgs.Dest == "" || cliArgs.Stimuli == "" {
		cli.PrintError("--source, --dest and --stimuli are required")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	settings := batch.DefaultSettings()
	if cliArgs.Config != "" {
		loaded, err := batch.LoadSettings(cliArgs.Config)
		if err != nil {
			cli.PrintError(err.Error())
			os.Exit(1)
		}
		settings = loaded
	}
	if cliArgs.Workers > 0 {
		settings.Workers = cliArgs.Workers
	}
	if cliArgs.Timeout > 0 {
		settings.FileTimeout = batch.Duration(cliArgs.Timeout)
	}
	if err := settings.Validate(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	table, err := stimuli.Load(cliArgs.Stimuli)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	if err := os.MkdirAll(cliArgs.Dest, 0o755); err != nil {
		cli.PrintError(fmt.Sprintf("creating destination: %v", err))
		os.Exit(1)
	}

	runner, err := batch.NewRunner(cliArgs.Source, cliArgs.Dest, table, settings)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	reportPath := cliArgs.Report
	if reportPath == "" {
		reportPath = filepath.Join(cliArgs.Dest, "features.csv")
	}

	started := time.Now()
	var outcomes []batch.Outcome
	if cliArgs.Plain {
		outcomes, err = runPlain(runner)
	} else {
		outcomes, err = runTUI(runner)
	}
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	if err := batch.WriteFeatureReport(reportPath, outcomes); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	if cliArgs.Logs {
		logPath := filepath.Join(filepath.Dir(reportPath), "batch_analysis.log")
		report := logging.BatchReport{
			Source:           cliArgs.Source,
			Dest:             cliArgs.Dest,
			FeatureReport:    reportPath,
			Started:          started,
			Elapsed:          time.Since(started),
			Outcomes:         outcomes,
			DuplicateStimuli: table.Duplicates(),
		}
		if err := logging.WriteBatchLog(logPath, report); err != nil {
			cli.PrintError(err.Error())
			os.Exit(1)
		}
	}

	if cliArgs.Plain {
		counts := logging.CountByReason(outcomes)
		fmt.Printf("%d/%d accepted, report written to %s\n",
			counts[batch.ReasonIncluded], len(outcomes), reportPath)
	}
}

// runPlain processes the batch without the TUI, one line per file.
func runPlain(runner *batch.Runner) ([]batch.Outcome, error) {
	var mu sync.Mutex
	runner.Notify = func(out batch.Outcome) {
		mu.Lock()
		defer mu.Unlock()
		if out.Included() {
			fmt.Printf("ok    %s  rt=%.3fs dur=%.3fs\n",
				out.RelPath, out.Features.ReactionTime, out.Features.TotalDuration)
			return
		}
		fmt.Printf("skip  %s  %s\n", out.RelPath, out.Reason)
	}
	return runner.Run(context.Background())
}

// runTUI processes the batch behind the Bubbletea progress display.
func runTUI(runner *batch.Runner) ([]batch.Outcome, error) {
	model := ui.NewModel(len(runner.Files()))
	p := tea.NewProgram(model, tea.WithAltScreen())

	runner.Notify = func(out batch.Outcome) {
		p.Send(ui.FileDoneMsg{Outcome: out})
	}

	var (
		outcomes []batch.Outcome
		runErr   error
	)
	done := make(chan struct{})
	go func() {
		outcomes, runErr = runner.Run(context.Background())
		close(done)
		if runErr != nil {
			p.Send(ui.BatchFailedMsg{Err: runErr})
			return
		}
		p.Send(ui.BatchDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("UI error: %w", err)
	}

	// The display quits on 'q' too; without this check an early quit would
	// race the still-running batch.
	select {
	case <-done:
	default:
		return nil, fmt.Errorf("batch aborted before completion")
	}
	if runErr != nil {
		return nil, runErr
	}
	return outcomes, nil
}

package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phonolab/wordsnip/internal/audio"
	"github.com/phonolab/wordsnip/internal/processor"
	"github.com/phonolab/wordsnip/internal/stimuli"
)

// Reason classifies what happened to one file.
type Reason string

const (
	ReasonIncluded      Reason = "included"
	ReasonOutsideWindow Reason = "outside acceptance window"
	ReasonDegenerate    Reason = "degenerate envelope"
	ReasonNoReference   Reason = "no reference duration"
	ReasonNoTargetWord  Reason = "no target word in filename"
	ReasonUnreadable    Reason = "unreadable audio"
	ReasonTimeout       Reason = "timed out"
	ReasonFailed        Reason = "processing failed"
)

// Outcome is the per-file result. Index is the file's position in walk
// order; the feature report and batch log preserve that order regardless
// of which worker finished first.
type Outcome struct {
	Index    int
	RelPath  string
	Word     string
	Reason   Reason
	Features processor.Features
	Err      error
}

// Included reports whether the file passed detection and validation.
func (o Outcome) Included() bool {
	return o.Reason == ReasonIncluded
}

// Runner executes one batch. Construct with NewRunner, then call Run once.
type Runner struct {
	source   string
	dest     string
	table    *stimuli.Table
	settings Settings
	files    []string

	// Notify, when set, is called once per finished file. Calls come from
	// worker goroutines; the callback must be safe for concurrent use.
	Notify func(Outcome)
}

// NewRunner collects the source tree's WAV files and prepares the
// destination. The file list is fixed at construction so callers can size
// progress displays before Run starts.
func NewRunner(source, dest string, table *stimuli.Table, settings Settings) (*Runner, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	files, err := CollectWAVs(source)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no WAV files under %s", source)
	}
	if err := MirrorTree(source, dest); err != nil {
		return nil, err
	}
	return &Runner{
		source:   source,
		dest:     dest,
		table:    table,
		settings: settings,
		files:    files,
	}, nil
}

// Files returns the relative paths in walk order.
func (r *Runner) Files() []string {
	return r.files
}

// Run processes every file on a bounded worker pool and returns the
// outcomes in walk order. Per-file problems land in their Outcome; the
// returned error is non-nil only when the batch itself was cancelled.
func (r *Runner) Run(ctx context.Context) ([]Outcome, error) {
	outcomes := make([]Outcome, len(r.files))
	pipe := processor.NewPipeline(r.settings.Detection)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.settings.Workers)

	for i, rel := range r.files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := r.processFile(gctx, pipe, i, rel)
			outcomes[i] = out
			if r.Notify != nil {
				r.Notify(out)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (r *Runner) processFile(ctx context.Context, pipe *processor.Pipeline, index int, rel string) Outcome {
	out := Outcome{Index: index, RelPath: rel}

	word, err := TargetWord(rel)
	if err != nil {
		out.Reason = ReasonNoTargetWord
		out.Err = err
		return out
	}
	out.Word = word

	refDur, ok := r.table.Duration(word)
	if !ok {
		out.Reason = ReasonNoReference
		out.Err = fmt.Errorf("%s: word %q not in stimuli table", rel, word)
		return out
	}

	clip, err := audio.ReadClip(filepath.Join(r.source, rel))
	if err != nil {
		out.Reason = ReasonUnreadable
		out.Err = err
		return out
	}
	clip.Word = word

	res, err := r.runPipeline(ctx, pipe, clip)
	switch {
	case err == nil:
	case errors.Is(err, processor.ErrDegenerateEnvelope):
		out.Reason = ReasonDegenerate
		out.Err = fmt.Errorf("%s: %w", rel, err)
		return out
	case errors.Is(err, context.DeadlineExceeded):
		out.Reason = ReasonTimeout
		out.Err = fmt.Errorf("%s: exceeded %s", rel, time.Duration(r.settings.FileTimeout))
		return out
	default:
		out.Reason = ReasonFailed
		out.Err = fmt.Errorf("%s: %w", rel, err)
		return out
	}

	out.Features = processor.Validate(res.Segment.Onset, res.Segment.Duration, refDur)
	if !out.Features.Included {
		out.Reason = ReasonOutsideWindow
		return out
	}

	// Only accepted slices appear in the mirrored tree.
	if err := audio.WriteClip(filepath.Join(r.dest, rel), res.Segment.Samples, clip.SampleRate); err != nil {
		out.Reason = ReasonFailed
		out.Err = fmt.Errorf("%s: %w", rel, err)
		return out
	}
	out.Reason = ReasonIncluded
	return out
}

// runPipeline enforces the per-file wall-clock bound. The pipeline checks
// its context between stages, so a timed-out run also stops computing
// shortly after the select fires.
func (r *Runner) runPipeline(ctx context.Context, pipe *processor.Pipeline, clip *audio.Clip) (*processor.Result, error) {
	fctx, cancel := context.WithTimeout(ctx, time.Duration(r.settings.FileTimeout))
	defer cancel()

	type pipeOut struct {
		res *processor.Result
		err error
	}
	done := make(chan pipeOut, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- pipeOut{err: fmt.Errorf("pipeline panic: %v", rec)}
			}
		}()
		res, err := pipe.Run(fctx, clip)
		done <- pipeOut{res: res, err: err}
	}()

	select {
	case <-fctx.Done():
		return nil, fctx.Err()
	case out := <-done:
		return out.res, out.err
	}
}

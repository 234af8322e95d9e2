package processor

import (
	"context"

	"github.com/phonolab/wordsnip/internal/audio"
)

// Pipeline runs the endpoint-detection stages over single clips. Stages
// run strictly in order: suppress -> envelope -> bounds -> refine. A
// Pipeline holds no per-clip state and is safe for concurrent use.
type Pipeline struct {
	cfg Config
}

// NewPipeline creates a pipeline with the given detection configuration.
func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Result is the detection outcome for one clip.
type Result struct {
	Bounds  Bounds
	Segment Segment
}

// Run detects the utterance in clip and slices it out of the original
// waveform. Returns ErrDegenerateEnvelope for silent or clipped
// recordings, or the context error if the deadline expires between
// stages. The clip's samples are never modified.
func (p *Pipeline) Run(ctx context.Context, clip *audio.Clip) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	denoised := SuppressNoise(clip.Samples)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	env, err := BuildEnvelope(denoised, p.cfg)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := FindBounds(env, p.cfg)
	bounds = ExtendForFinalConsonant(bounds, clip.Word, len(env))
	segment := SliceClip(clip.Samples, clip.SampleRate, bounds, p.cfg)

	return &Result{Bounds: bounds, Segment: segment}, nil
}

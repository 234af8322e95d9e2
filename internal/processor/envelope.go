package processor

import (
	"errors"
	"math"
)

// ErrDegenerateEnvelope reports a recording whose energy envelope is
// constant (silent or fully clipped audio). Such files carry no usable
// boundary information and are skipped.
var ErrDegenerateEnvelope = errors.New("energy envelope has no contrast")

// Envelope is the per-frame RMS energy of a waveform. Values are
// non-negative; with normalization enabled they span exactly [0, 1].
type Envelope []float64

// BuildEnvelope frames the waveform with cfg.FrameSize/cfg.HopLength and
// computes RMS energy per frame. The envelope covers the frames that fit
// the signal completely. Returns ErrDegenerateEnvelope when the envelope
// is constant, including the case of a signal shorter than one frame.
func BuildEnvelope(samples []float64, cfg Config) (Envelope, error) {
	if len(samples) < cfg.FrameSize {
		return nil, ErrDegenerateEnvelope
	}

	frames := (len(samples)-cfg.FrameSize)/cfg.HopLength + 1
	env := make(Envelope, frames)
	for i := 0; i < frames; i++ {
		start := i * cfg.HopLength
		var sum float64
		for _, s := range samples[start : start+cfg.FrameSize] {
			sum += s * s
		}
		env[i] = math.Sqrt(sum / float64(cfg.FrameSize))
	}

	lo, hi := env.minMax()
	if hi-lo == 0 {
		return nil, ErrDegenerateEnvelope
	}

	if cfg.NormalizeRMS {
		span := hi - lo
		for i, v := range env {
			env[i] = (v - lo) / span
		}
	}
	return env, nil
}

// Peak returns the index of the loudest frame, the anchor for boundary
// expansion. Ties resolve to the earliest frame.
func (e Envelope) Peak() int {
	peak := 0
	for i, v := range e {
		if v > e[peak] {
			peak = i
		}
	}
	return peak
}

func (e Envelope) minMax() (lo, hi float64) {
	lo, hi = e[0], e[0]
	for _, v := range e[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

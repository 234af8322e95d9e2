// Package processor implements noise-robust utterance endpoint detection:
// stationary noise suppression, RMS energy envelopes, a bounded-pause
// boundary search, lexical end refinement, and the acceptance-window
// validator that turns boundaries into reaction time and duration.
package processor

import "fmt"

// Config holds the endpoint-detection parameters for one batch. It is
// built once at startup and passed by value into the pipeline; nothing
// mutates it afterwards.
type Config struct {
	// FrameSize is the RMS analysis window in samples.
	FrameSize int `yaml:"frame_size"`
	// HopLength is the stride between frame start positions in samples.
	// Frames overlap when HopLength < FrameSize.
	HopLength int `yaml:"hop_length"`
	// Threshold is the energy level the leftward (start) expansion must
	// stay above. With normalization enabled it is a fraction of the
	// envelope peak.
	Threshold float64 `yaml:"threshold"`
	// ThresholdEnd is the rightward (end) expansion threshold.
	ThresholdEnd float64 `yaml:"threshold_end"`
	// MaxPauseFrames is the longest below-threshold run treated as an
	// in-utterance pause. A run this long or longer ends the expansion.
	MaxPauseFrames int `yaml:"max_pause_frames"`
	// NormalizeRMS rescales each envelope to [0, 1] so the thresholds
	// are comparable across recordings of different absolute loudness.
	NormalizeRMS bool `yaml:"normalize_rms"`
}

// DefaultConfig returns the detection parameters tuned on the original
// naming-task corpus.
func DefaultConfig() Config {
	return Config{
		FrameSize:      1024,
		HopLength:      256,
		Threshold:      0.015,
		ThresholdEnd:   0.015,
		MaxPauseFrames: 20,
		NormalizeRMS:   true,
	}
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c Config) Validate() error {
	if c.FrameSize < 2 {
		return fmt.Errorf("frame_size must be at least 2 samples, got %d", c.FrameSize)
	}
	if c.HopLength < 1 {
		return fmt.Errorf("hop_length must be positive, got %d", c.HopLength)
	}
	if c.HopLength > c.FrameSize {
		return fmt.Errorf("hop_length (%d) must not exceed frame_size (%d)", c.HopLength, c.FrameSize)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %g", c.Threshold)
	}
	if c.ThresholdEnd <= 0 {
		return fmt.Errorf("threshold_end must be positive, got %g", c.ThresholdEnd)
	}
	if c.MaxPauseFrames < 1 {
		return fmt.Errorf("max_pause_frames must be at least 1, got %d", c.MaxPauseFrames)
	}
	return nil
}

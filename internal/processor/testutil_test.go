package processor

import (
	"math"
	"testing"
)

// toneClipOptions configures the synthetic waveform to generate.
type toneClipOptions struct {
	DurationSecs float64 // Total duration in seconds
	SampleRate   int     // Sample rate (default: 16000)
	ToneFreq     float64 // Sine wave frequency in Hz (0 = no tone)
	ToneLevel    float64 // Tone level in dBFS (e.g., -20.0)
	NoiseLevel   float64 // White noise level in dBFS (0 = no noise)
	Burst        struct {
		Start    float64 // Tone start time in seconds
		Duration float64 // Tone duration in seconds (0 = whole clip)
	}
}

// generateToneClip creates a synthetic waveform: optional white noise for
// the full duration plus a sine tone confined to the burst window. The
// noise generator is a fixed-seed LCG so tests stay deterministic.
func generateToneClip(t *testing.T, opts toneClipOptions) []float64 {
	t.Helper()

	if opts.SampleRate == 0 {
		opts.SampleRate = 16000
	}
	if opts.DurationSecs == 0 {
		opts.DurationSecs = 2.0
	}

	totalSamples := int(opts.DurationSecs * float64(opts.SampleRate))
	samples := make([]float64, totalSamples)

	toneAmp := 0.0
	if opts.ToneFreq > 0 && opts.ToneLevel < 0 {
		toneAmp = math.Pow(10.0, opts.ToneLevel/20.0)
	}
	noiseAmp := 0.0
	if opts.NoiseLevel < 0 {
		noiseAmp = math.Pow(10.0, opts.NoiseLevel/20.0)
	}

	burstStart := int(opts.Burst.Start * float64(opts.SampleRate))
	burstEnd := totalSamples
	if opts.Burst.Duration > 0 {
		burstEnd = int((opts.Burst.Start + opts.Burst.Duration) * float64(opts.SampleRate))
	}

	// LCG parameters from Numerical Recipes; avoids math/rand seeding.
	rngState := uint32(12345)
	nextRandom := func() float64 {
		rngState = rngState*1664525 + 1013904223
		return (float64(rngState)/float64(0xFFFFFFFF))*2.0 - 1.0
	}

	for i := 0; i < totalSamples; i++ {
		var sample float64
		if toneAmp > 0 && i >= burstStart && i < burstEnd {
			tt := float64(i) / float64(opts.SampleRate)
			sample += toneAmp * math.Sin(2.0*math.Pi*opts.ToneFreq*tt)
		}
		if noiseAmp > 0 {
			sample += noiseAmp * nextRandom()
		}
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		samples[i] = sample
	}
	return samples
}

// rmsOf returns the RMS energy of a sample range.
func rmsOf(samples []float64, from, to int) float64 {
	if from < 0 {
		from = 0
	}
	if to > len(samples) {
		to = len(samples)
	}
	var sum float64
	for _, s := range samples[from:to] {
		sum += s * s
	}
	return math.Sqrt(sum / float64(to-from))
}

package processor

import (
	"errors"
	"math"
	"testing"
)

func envConfig(frameSize, hop int, normalize bool) Config {
	cfg := DefaultConfig()
	cfg.FrameSize = frameSize
	cfg.HopLength = hop
	cfg.NormalizeRMS = normalize
	return cfg
}

func TestBuildEnvelopeRMSValues(t *testing.T) {
	// Three frames: all-zero, half-step, all-ones.
	samples := []float64{0, 0, 0, 0, 1, 1, 1, 1}
	cfg := envConfig(4, 2, false)

	env, err := BuildEnvelope(samples, cfg)
	if err != nil {
		t.Fatalf("BuildEnvelope() error = %v", err)
	}

	want := []float64{0, math.Sqrt(0.5), 1}
	if len(env) != len(want) {
		t.Fatalf("envelope length = %d, want %d", len(env), len(want))
	}
	for i := range want {
		if math.Abs(env[i]-want[i]) > 1e-12 {
			t.Errorf("env[%d] = %v, want %v", i, env[i], want[i])
		}
	}
}

func TestBuildEnvelopeNormalization(t *testing.T) {
	samples := generateToneClip(t, toneClipOptions{
		DurationSecs: 1.0,
		ToneFreq:     440,
		ToneLevel:    -20.0,
		Burst: struct {
			Start    float64
			Duration float64
		}{Start: 0.3, Duration: 0.4},
	})

	env, err := BuildEnvelope(samples, envConfig(1024, 256, true))
	if err != nil {
		t.Fatalf("BuildEnvelope() error = %v", err)
	}

	lo, hi := env.minMax()
	if lo != 0 {
		t.Errorf("normalized minimum = %v, want 0", lo)
	}
	if hi != 1 {
		t.Errorf("normalized maximum = %v, want 1", hi)
	}
	for i, v := range env {
		if v < 0 || v > 1 {
			t.Errorf("env[%d] = %v outside [0, 1]", i, v)
		}
	}
}

func TestBuildEnvelopeDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
	}{
		{"silence", make([]float64, 4096)},
		{"shorter than one frame", make([]float64, 512)},
		{"constant full scale", func() []float64 {
			s := make([]float64, 4096)
			for i := range s {
				s[i] = 1.0
			}
			return s
		}()},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildEnvelope(tt.samples, DefaultConfig())
			if !errors.Is(err, ErrDegenerateEnvelope) {
				t.Errorf("BuildEnvelope() error = %v, want ErrDegenerateEnvelope", err)
			}
		})
	}
}

func TestBuildEnvelopeFrameCount(t *testing.T) {
	tests := []struct {
		name       string
		samples    int
		frameSize  int
		hop        int
		wantFrames int
	}{
		{"exact single frame", 1024, 1024, 256, 1},
		{"one hop past a frame", 1280, 1024, 256, 2},
		{"partial tail dropped", 1300, 1024, 256, 2},
		{"one second at 16kHz", 16000, 1024, 256, 59},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A ramp keeps the envelope non-constant at any length.
			samples := make([]float64, tt.samples)
			for i := range samples {
				samples[i] = float64(i) / float64(tt.samples)
			}

			env, err := BuildEnvelope(samples, envConfig(tt.frameSize, tt.hop, true))
			if err != nil {
				t.Fatalf("BuildEnvelope() error = %v", err)
			}
			if len(env) != tt.wantFrames {
				t.Errorf("envelope length = %d, want %d", len(env), tt.wantFrames)
			}
		})
	}
}

func TestEnvelopePeak(t *testing.T) {
	tests := []struct {
		name string
		env  Envelope
		want int
	}{
		{"single maximum", Envelope{0.1, 0.9, 0.3}, 1},
		{"tie resolves earliest", Envelope{0.2, 0.8, 0.8, 0.1}, 1},
		{"maximum at start", Envelope{1.0, 0.5, 0.2}, 0},
		{"maximum at end", Envelope{0.2, 0.5, 1.0}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.env.Peak(); got != tt.want {
				t.Errorf("Peak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildEnvelopeLeavesInputIntact(t *testing.T) {
	samples := generateToneClip(t, toneClipOptions{
		DurationSecs: 0.5,
		ToneFreq:     300,
		ToneLevel:    -18.0,
	})
	original := append([]float64(nil), samples...)

	if _, err := BuildEnvelope(samples, DefaultConfig()); err != nil {
		t.Fatalf("BuildEnvelope() error = %v", err)
	}
	for i := range samples {
		if samples[i] != original[i] {
			t.Fatalf("input modified at sample %d", i)
		}
	}
}

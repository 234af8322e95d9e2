package processor

import (
	"math"
	"testing"
)

func TestExtendForFinalConsonant(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		bounds  Bounds
		envLen  int
		wantEnd int
	}{
		{"vowel final unchanged", "palo", Bounds{10, 50}, 200, 50},
		{"consonant final extended", "reloj", Bounds{10, 50}, 200, 62},
		{"uppercase vowel final unchanged", "CASA", Bounds{10, 50}, 200, 50},
		{"uppercase consonant final extended", "PAPEL", Bounds{10, 50}, 200, 62},
		{"extension clamps to last frame", "sol", Bounds{10, 195}, 200, 199},
		{"accented vowel counts as consonant", "café", Bounds{10, 50}, 200, 62},
		{"empty word unchanged", "", Bounds{10, 50}, 200, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtendForFinalConsonant(tt.bounds, tt.word, tt.envLen)
			if got.Start != tt.bounds.Start {
				t.Errorf("Start = %d, want %d unchanged", got.Start, tt.bounds.Start)
			}
			if got.End != tt.wantEnd {
				t.Errorf("End = %d, want %d", got.End, tt.wantEnd)
			}
		})
	}
}

func TestSliceClipOffsetsAndTiming(t *testing.T) {
	cfg := DefaultConfig() // FrameSize 1024, HopLength 256
	samples := make([]float64, 32000)
	for i := range samples {
		samples[i] = float64(i)
	}

	seg := SliceClip(samples, 16000, Bounds{Start: 2, End: 5}, cfg)

	// Start frame 2 begins at sample 512; end frame 5 covers through
	// sample 5*256+1024 = 2304.
	if len(seg.Samples) != 2304-512 {
		t.Errorf("segment length = %d, want %d", len(seg.Samples), 2304-512)
	}
	if seg.Samples[0] != 512 {
		t.Errorf("first sample = %v, want 512", seg.Samples[0])
	}

	if math.Abs(seg.Onset-0.032) > 1e-9 {
		t.Errorf("Onset = %v, want 0.032", seg.Onset)
	}
	// (5-2)*256/16000 seconds between the boundaries.
	if math.Abs(seg.Duration-0.048) > 1e-9 {
		t.Errorf("Duration = %v, want 0.048", seg.Duration)
	}
}

func TestSliceClipClampsTrailingFrame(t *testing.T) {
	cfg := DefaultConfig()
	samples := make([]float64, 2000)

	seg := SliceClip(samples, 16000, Bounds{Start: 2, End: 5}, cfg)

	// End frame 5 would reach sample 2304; the signal ends at 2000.
	if len(seg.Samples) != 2000-512 {
		t.Errorf("segment length = %d, want %d", len(seg.Samples), 2000-512)
	}
	// Timing values come from the frame grid, not the clamped cut.
	if math.Abs(seg.Duration-0.048) > 1e-9 {
		t.Errorf("Duration = %v, want 0.048", seg.Duration)
	}
}

func TestSliceClipAliasesOriginal(t *testing.T) {
	cfg := DefaultConfig()
	samples := make([]float64, 8000)
	samples[600] = 0.75

	seg := SliceClip(samples, 16000, Bounds{Start: 2, End: 5}, cfg)

	// The segment is a view into the original waveform, so the export
	// stage writes untouched audio, never denoised samples.
	if seg.Samples[600-512] != 0.75 {
		t.Errorf("segment sample = %v, want 0.75 from the original", seg.Samples[600-512])
	}
}

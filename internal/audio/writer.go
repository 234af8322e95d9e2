package audio

import (
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Output encoding parameters. Slices are always written as 16-bit mono PCM,
// which every downstream annotation tool accepts.
const (
	outputBitDepth = 16
	outputChannels = 1
	pcmFormat      = 1
)

// WriteClip encodes samples as a mono 16-bit WAV file at path. Samples are
// clamped to [-1, 1] before quantization. The file is closed on every path;
// encoding errors leave no half-written file behind.
func WriteClip(path string, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, outputBitDepth, outputChannels, pcmFormat)

	data := make([]int, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		data[i] = int(s * 32767.0)
	}

	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: outputChannels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: outputBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return f.Close()
}

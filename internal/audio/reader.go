package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ReadClip decodes a WAV file into a mono Clip. Multi-channel recordings
// are downmixed by averaging channels. The file handle is released before
// returning on every path.
func ReadClip(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid WAV file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data from %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%s: missing or invalid format chunk", path)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%s: invalid channel count %d", path, channels)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(decoder.BitDepth)
	}
	if bitDepth <= 0 || bitDepth > 32 {
		return nil, fmt.Errorf("%s: unsupported bit depth %d", path, bitDepth)
	}
	// Scale integer PCM to [-1, 1] by the source bit depth.
	scale := float64(int64(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		samples[i] = sum / float64(channels) / scale
	}

	return &Clip{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
		Path:       path,
	}, nil
}

// Package audio provides WAV decoding and encoding for recording clips.
package audio

// Clip holds one decoded mono recording. Samples are normalized to the
// [-1.0, 1.0] range regardless of the source bit depth. A Clip is treated
// as immutable after loading: analysis stages work on their own copies and
// the exported slice is always cut from these original samples.
type Clip struct {
	Samples    []float64
	SampleRate int
	Word       string // target word parsed from the filename
	Path       string
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

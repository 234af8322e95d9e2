package processor

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Stationary spectral gating parameters. The gate estimates a per-bin
// noise profile from the quietest frames of the recording itself, then
// attenuates time-frequency cells that do not rise above it.
const (
	// suppressorPasses runs the gate twice; the second pass sharpens the
	// speech/background energy contrast without further distorting the
	// exported signal, which is never taken from the denoised waveform.
	suppressorPasses = 2

	gateFFTSize = 2048
	gateHop     = 512
	// gateSensitivity is the number of standard deviations a bin must
	// exceed the estimated noise floor by to be kept.
	gateSensitivity = 1.5
	// gateResidual is the gain left on gated cells. Decaying toward zero
	// instead of hard-zeroing avoids musical-noise artifacts in the
	// envelope.
	gateResidual = 0.01
	// gateSmoothRadius widens the speech mask by averaging over
	// neighbouring time frames.
	gateSmoothRadius = 1

	gateMagFloor = 1e-10
)

// SuppressNoise returns a denoised copy of the waveform, identical in
// length to the input. The input slice is never modified or aliased; the
// result is only suitable for envelope analysis, not for export.
func SuppressNoise(samples []float64) []float64 {
	out := spectralGate(samples)
	for pass := 1; pass < suppressorPasses; pass++ {
		out = spectralGate(out)
	}
	return out
}

// spectralGate runs one stationary noise-reduction pass:
// STFT -> per-bin noise statistics from the quietest frames -> smoothed
// binary mask -> attenuated inverse STFT with overlap-add.
func spectralGate(samples []float64) []float64 {
	n := len(samples)
	if n < gateFFTSize {
		// Too short for spectral analysis; hand back an untouched copy.
		return append([]float64(nil), samples...)
	}

	window := hannWindow(gateFFTSize)
	numFrames := (n-gateFFTSize)/gateHop + 1
	if (numFrames-1)*gateHop+gateFFTSize < n {
		numFrames++ // zero-padded tail frame
	}

	fft := fourier.NewFFT(gateFFTSize)
	bins := gateFFTSize/2 + 1

	spectra := make([][]complex128, numFrames)
	magDB := make([][]float64, numFrames)
	energy := make([]float64, numFrames)
	buf := make([]float64, gateFFTSize)

	for t := 0; t < numFrames; t++ {
		start := t * gateHop
		for j := 0; j < gateFFTSize; j++ {
			if start+j < n {
				buf[j] = samples[start+j] * window[j]
			} else {
				buf[j] = 0
			}
		}
		spectra[t] = fft.Coefficients(nil, buf)
		magDB[t] = make([]float64, bins)
		for b := 0; b < bins; b++ {
			mag := cmplxAbs(spectra[t][b])
			if mag < gateMagFloor {
				mag = gateMagFloor
			}
			magDB[t][b] = 20 * math.Log10(mag)
			energy[t] += mag * mag
		}
	}

	threshold := noiseThresholds(magDB, energy, bins)

	// Binary speech mask, then a small moving average over time to keep
	// isolated bin flips from chopping the envelope.
	mask := make([][]float64, numFrames)
	for t := 0; t < numFrames; t++ {
		mask[t] = make([]float64, bins)
		for b := 0; b < bins; b++ {
			if magDB[t][b] > threshold[b] {
				mask[t][b] = 1
			}
		}
	}

	out := make([]float64, numFrames*gateHop+gateFFTSize)
	wsum := make([]float64, len(out))
	scaled := make([]complex128, bins)
	for t := 0; t < numFrames; t++ {
		for b := 0; b < bins; b++ {
			gain := gateResidual + (1-gateResidual)*smoothedMask(mask, t, b)
			scaled[b] = scale(spectra[t][b], gain)
		}
		seq := fft.Sequence(nil, scaled)
		start := t * gateHop
		for j := 0; j < gateFFTSize; j++ {
			// gonum's inverse is unnormalized: divide by the FFT length.
			v := seq[j] / float64(gateFFTSize)
			out[start+j] += v * window[j]
			wsum[start+j] += window[j] * window[j]
		}
	}

	for i := range out {
		if wsum[i] > 1e-12 {
			out[i] /= wsum[i]
		}
	}
	return out[:n]
}

// noiseThresholds estimates the per-bin gate level. The noise profile
// comes from the quietest half of the frames (by broadband energy), so
// the utterance itself does not inflate the estimated floor.
func noiseThresholds(magDB [][]float64, energy []float64, bins int) []float64 {
	sorted := append([]float64(nil), energy...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]

	var quiet []int
	for t, e := range energy {
		if e <= median {
			quiet = append(quiet, t)
		}
	}
	if len(quiet) == 0 {
		quiet = append(quiet, 0)
	}

	threshold := make([]float64, bins)
	for b := 0; b < bins; b++ {
		var mean float64
		for _, t := range quiet {
			mean += magDB[t][b]
		}
		mean /= float64(len(quiet))

		var variance float64
		for _, t := range quiet {
			d := magDB[t][b] - mean
			variance += d * d
		}
		variance /= float64(len(quiet))

		threshold[b] = mean + gateSensitivity*math.Sqrt(variance)
	}
	return threshold
}

// smoothedMask averages the mask over neighbouring time frames at one bin.
func smoothedMask(mask [][]float64, t, b int) float64 {
	var sum float64
	var count int
	for dt := -gateSmoothRadius; dt <= gateSmoothRadius; dt++ {
		if t+dt < 0 || t+dt >= len(mask) {
			continue
		}
		sum += mask[t+dt][b]
		count++
	}
	return sum / float64(count)
}

func hannWindow(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}
	return w
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func scale(c complex128, gain float64) complex128 {
	return complex(real(c)*gain, imag(c)*gain)
}

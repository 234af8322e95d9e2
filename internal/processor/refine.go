package processor

import "unicode"

// endExtensionFrames is added to the end boundary of consonant-final
// words. Threshold-based detection tends to clip trailing consonants,
// whereas vowel-final words are naturally sustained and need no help.
const endExtensionFrames = 12

// finalVowels are the word-final runes that leave the end boundary alone.
var finalVowels = map[rune]bool{'a': true, 'e': true, 'i': true, 'o': true, 'u': true}

// Segment is the refined detection result for one clip: the trimmed
// waveform cut from the original (never the denoised) samples, plus the
// two timing values the behavioral metrics derive from.
type Segment struct {
	Samples  []float64
	Onset    float64 // seconds from recording start to utterance start
	Duration float64 // seconds between the start and end boundaries
}

// ExtendForFinalConsonant applies the lexical end correction: when the
// target word's final rune (lowercased) is not a vowel, the end boundary
// moves endExtensionFrames later, clamped to the last envelope index.
func ExtendForFinalConsonant(b Bounds, word string, envLen int) Bounds {
	runes := []rune(word)
	if len(runes) == 0 {
		return b
	}
	if finalVowels[unicode.ToLower(runes[len(runes)-1])] {
		return b
	}
	b.End += endExtensionFrames
	if b.End > envLen-1 {
		b.End = envLen - 1
	}
	return b
}

// SliceClip converts frame bounds into sample offsets and cuts the
// original waveform. The start offset is the first sample of the start
// frame; the end offset covers the full trailing frame, clamped to the
// signal length.
func SliceClip(samples []float64, sampleRate int, b Bounds, cfg Config) Segment {
	startSample := b.Start * cfg.HopLength
	endSample := b.End*cfg.HopLength + cfg.FrameSize
	if endSample > len(samples) {
		endSample = len(samples)
	}

	onset := float64(b.Start*cfg.HopLength) / float64(sampleRate)
	end := float64(b.End*cfg.HopLength) / float64(sampleRate)

	return Segment{
		Samples:  samples[startSample:endSample],
		Onset:    onset,
		Duration: end - onset,
	}
}

package processor

// Acceptance window for the behavioral metrics. Both intervals are
// closed: a value landing exactly on a bound is still included.
const (
	MinReactionTime = -0.5 // seconds - onset slightly before the cue ends is plausible
	MaxReactionTime = 2.0  // seconds - slower responses are considered lapses
	MinDuration     = 0.3  // seconds - shorter slices are detection noise
	MaxDuration     = 3.0  // seconds - longer slices caught extraneous speech
)

// Features carries the two reported metrics for one file and the
// inclusion decision derived from them.
type Features struct {
	ReactionTime  float64
	TotalDuration float64
	Included      bool
}

// Validate derives reaction time from the onset and the word's reference
// stimulus duration, then applies the acceptance window to both metrics.
func Validate(onset, totalDuration, referenceDuration float64) Features {
	rt := onset - referenceDuration
	return Features{
		ReactionTime:  rt,
		TotalDuration: totalDuration,
		Included: rt >= MinReactionTime && rt <= MaxReactionTime &&
			totalDuration >= MinDuration && totalDuration <= MaxDuration,
	}
}

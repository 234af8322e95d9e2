package processor

// Boundary search: two independent bounded-pause expansions walk away from
// the envelope's loudest frame, one toward index 0 and one toward the last
// index. Each expansion is a small state machine so the pause cap and
// termination rules can be tested in isolation.

// searchState is the per-direction expansion state.
type searchState int

const (
	// stateExpanding advances while the current frame is above threshold.
	stateExpanding searchState = iota
	// stateProbingPause looks ahead over a below-threshold run to decide
	// between bridging an in-utterance pause and terminating.
	stateProbingPause
	// stateTerminated fixes the boundary for this direction.
	stateTerminated
)

// Bounds is a detected utterance frame range. The envelope peak always
// lies within [Start, End].
type Bounds struct {
	Start int
	End   int
}

// scanner performs one directional expansion over an envelope.
type scanner struct {
	env       Envelope
	threshold float64
	dir       int // -1 scans toward index 0, +1 toward the last index
	maxPause  int

	pos   int
	state searchState
}

func newScanner(env Envelope, threshold float64, dir, maxPause, from int) *scanner {
	return &scanner{
		env:       env,
		threshold: threshold,
		dir:       dir,
		maxPause:  maxPause,
		pos:       from,
		state:     stateExpanding,
	}
}

func (s *scanner) inRange(i int) bool {
	return i >= 0 && i < len(s.env)
}

// step applies one state transition.
func (s *scanner) step() {
	switch s.state {
	case stateExpanding:
		if !s.inRange(s.pos) {
			// Expanded past the envelope edge; the clamp in boundary()
			// pulls the result back to the valid range.
			s.state = stateTerminated
			return
		}
		if s.env[s.pos] > s.threshold {
			s.pos += s.dir
			return
		}
		s.state = stateProbingPause

	case stateProbingPause:
		// Measure the below-threshold run starting at the current frame.
		run := 0
		for s.inRange(s.pos+run*s.dir) && s.env[s.pos+run*s.dir] <= s.threshold && run < s.maxPause {
			run++
		}
		if run == s.maxPause || !s.inRange(s.pos+run*s.dir) {
			// Pause too long, or the probe ran off the envelope edge:
			// the boundary rests where the pause began.
			s.state = stateTerminated
			return
		}
		// Short pause inside the utterance: skip it and resume expanding
		// from the first frame back above threshold.
		s.pos += run * s.dir
		s.state = stateExpanding
	}
}

// boundary runs the state machine to termination and returns the boundary
// frame clamped to the envelope's valid range.
func (s *scanner) boundary() int {
	for s.state != stateTerminated {
		s.step()
	}
	if s.pos < 0 {
		return 0
	}
	if s.pos > len(s.env)-1 {
		return len(s.env) - 1
	}
	return s.pos
}

// FindBounds locates the utterance frame range in a non-degenerate
// envelope. The search is deterministic: identical envelope, thresholds
// and pause cap always produce identical bounds.
func FindBounds(env Envelope, cfg Config) Bounds {
	peak := env.Peak()
	left := newScanner(env, cfg.Threshold, -1, cfg.MaxPauseFrames, peak)
	right := newScanner(env, cfg.ThresholdEnd, +1, cfg.MaxPauseFrames, peak)
	return Bounds{
		Start: left.boundary(),
		End:   right.boundary(),
	}
}

package engine

import "fmt"

// Config holds the schedule parameters of one training session.
type Config struct {
	BPM             int
	DurationSeconds int
	Pattern         Pattern
}

// Session is the arena for one training run: the fixed beat timeline
// plus the interval derived from BPM. All mutation goes through
// HandleInput, ExpireBeat and Finalize, on a single logical thread of
// control.
type Session struct {
	Config
	IntervalMs float64
	Beats      []Beat
}

// NewSession builds the full beat timeline up front. Each expected
// time is an exact multiple of the interval; cumulative rounding drift
// against wall-clock BPM is accepted by design.
func NewSession(cfg Config) (*Session, error) {
	if cfg.BPM <= 0 {
		return nil, fmt.Errorf("bpm must be positive, got %d", cfg.BPM)
	}
	if cfg.DurationSeconds <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %ds", cfg.DurationSeconds)
	}
	if len(cfg.Pattern.Channels) == 0 {
		return nil, fmt.Errorf("session pattern has no channels")
	}

	intervalMs := 60000.0 / float64(cfg.BPM)
	totalBeats := int(float64(cfg.DurationSeconds) * 1000.0 / intervalMs)
	if totalBeats < 1 {
		return nil, fmt.Errorf("schedule of %ds at %d bpm holds no beats", cfg.DurationSeconds, cfg.BPM)
	}

	beats := make([]Beat, totalBeats)
	for i := range beats {
		beats[i] = Beat{
			BeatNumber:   i,
			ExpectedTime: float64(i) * intervalMs,
			Expected:     cfg.Pattern.ExpectedInputAt(i),
		}
	}

	return &Session{Config: cfg, IntervalMs: intervalMs, Beats: beats}, nil
}

// HandleInput binds one input event to its best candidate beat and
// scores it. Returns the feedback and the matched beat index, or
// (zero, -1, false) when the event has no viable beat — a normal
// occurrence, silently discarded per the matching policy. The caller
// must not re-deliver the same event; the matcher has no dedup key
// beyond "beat already matched".
func (s *Session) HandleInput(ev InputEvent) (Feedback, int, bool) {
	idx := MatchBeat(ev.Timestamp, s.Beats, s.IntervalMs)
	if idx == -1 {
		return Feedback{}, -1, false
	}

	beat := &s.Beats[idx]
	fb, correct := Evaluate(beat.ExpectedTime, ev.Timestamp, ev.Channel, beat.Expected)

	ts := ev.Timestamp
	dev := fb.Deviation
	beat.ActualChannel = ev.Channel
	beat.ActualTime = &ts
	beat.ActualSource = ev.Source
	beat.Deviation = &dev
	beat.CorrectChannel = correct
	beat.Feedback = &fb

	return fb, idx, true
}

// ExpireBeat closes beat n for matching: once the session clock has
// declared the beat's window over, no late input may resurrect it.
// Reports whether the beat was still open.
func (s *Session) ExpireBeat(n int) bool {
	if n < 0 || n >= len(s.Beats) {
		return false
	}
	b := &s.Beats[n]
	if b.Responded() || b.Expired {
		return false
	}
	b.Expired = true
	return true
}

// Finalize marks every remaining unmatched beat as expired. Safe on
// aborted partial sessions: trailing untouched beats simply count as
// missed during aggregation.
func (s *Session) Finalize() {
	for i := range s.Beats {
		if !s.Beats[i].Responded() {
			s.Beats[i].Expired = true
		}
	}
}

// Results aggregates the timeline into the session summary.
func (s *Session) Results(userAge int, modality Modality) SessionResult {
	return EvaluateSession(s.Beats, userAge, modality)
}

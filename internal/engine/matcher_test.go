package engine

import "testing"

func testBeats(t *testing.T, bpm, durationSeconds int) *Session {
	t.Helper()
	s, err := NewSession(Config{BPM: bpm, DurationSeconds: durationSeconds, Pattern: Single(LeftHand)})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestMatchNearestBeat(t *testing.T) {
	s := testBeats(t, 60, 5)
	if got := MatchBeat(1010, s.Beats, s.IntervalMs); got != 1 {
		t.Fatalf("expected beat 1, got %d", got)
	}
	if got := MatchBeat(1600, s.Beats, s.IntervalMs); got != 2 {
		t.Fatalf("expected beat 2 for 1600ms, got %d", got)
	}
}

func TestMatchAcceptanceRadiusBoundary(t *testing.T) {
	s := testBeats(t, 60, 10)
	// Beat 3 sits at 3000ms. Use up the neighbors so 3 is the only
	// candidate left in the window.
	for _, n := range []int{1, 2, 4, 5} {
		ts := s.Beats[n].ExpectedTime
		s.Beats[n].ActualTime = &ts
	}
	if got := MatchBeat(3500, s.Beats, s.IntervalMs); got != 3 {
		t.Fatalf("distance of exactly 500ms should match, got %d", got)
	}
	s.Beats[3].ActualTime = nil
	if got := MatchBeat(3501, s.Beats, s.IntervalMs); got != -1 {
		t.Fatalf("distance of 501ms should be rejected, got %d", got)
	}
}

func TestMatchedBeatIsExcluded(t *testing.T) {
	s := testBeats(t, 60, 3)
	ts := 995.0
	s.Beats[1].ActualTime = &ts
	// Neighbors 0 and 2 are both over 500ms away from 1010, so with
	// beat 1 taken the event has nowhere to go.
	if got := MatchBeat(1010, s.Beats, s.IntervalMs); got != -1 {
		t.Fatalf("matched beat must not be rebound, got %d", got)
	}
	// An input near an open neighbor still binds normally.
	if got := MatchBeat(1600, s.Beats, s.IntervalMs); got != 2 {
		t.Fatalf("expected beat 2, got %d", got)
	}
}

func TestMatchExpiredBeatSkipped(t *testing.T) {
	s := testBeats(t, 60, 3)
	s.Beats[1].Expired = true
	if got := MatchBeat(1001, s.Beats, s.IntervalMs); got == 1 {
		t.Fatal("expired beat must not be matched")
	}
}

func TestMatchWindowClamped(t *testing.T) {
	s := testBeats(t, 60, 3)
	// Timestamp far past the last beat: estimated index outside the
	// timeline, and every beat outside the radius.
	if got := MatchBeat(9000, s.Beats, s.IntervalMs); got != -1 {
		t.Fatalf("expected no match far past the timeline, got %d", got)
	}
	if got := MatchBeat(-200, s.Beats, s.IntervalMs); got != 0 {
		t.Fatalf("early input before beat 0 should match it, got %d", got)
	}
}

func TestMatchTieBreakLowestIndex(t *testing.T) {
	s := testBeats(t, 120, 3) // 500ms interval
	// 1250ms is equidistant (250ms) from beats 2 (1000ms) and 3 (1500ms).
	if got := MatchBeat(1250, s.Beats, s.IntervalMs); got != 2 {
		t.Fatalf("tie must go to the lower index, got %d", got)
	}
}

func TestMatchEmptyTimeline(t *testing.T) {
	if got := MatchBeat(100, nil, 1000); got != -1 {
		t.Fatalf("expected -1 on empty timeline, got %d", got)
	}
}

func TestMatchOutOfOrderDelivery(t *testing.T) {
	s := testBeats(t, 60, 5)
	// Events arrive out of schedule order; each still binds to its
	// own nearest beat.
	if _, idx, ok := s.HandleInput(InputEvent{Channel: LeftHand, Timestamp: 2020}); !ok || idx != 2 {
		t.Fatalf("expected beat 2, got %d ok=%v", idx, ok)
	}
	if _, idx, ok := s.HandleInput(InputEvent{Channel: LeftHand, Timestamp: 990}); !ok || idx != 1 {
		t.Fatalf("expected beat 1, got %d ok=%v", idx, ok)
	}
	if _, idx, ok := s.HandleInput(InputEvent{Channel: LeftHand, Timestamp: 2980}); !ok || idx != 3 {
		t.Fatalf("expected beat 3, got %d ok=%v", idx, ok)
	}
}

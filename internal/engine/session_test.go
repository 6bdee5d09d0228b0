package engine

import "testing"

func TestNewSessionSchedule(t *testing.T) {
	s, err := NewSession(Config{BPM: 60, DurationSeconds: 5, Pattern: Single(LeftHand)})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.IntervalMs != 1000 {
		t.Fatalf("expected 1000ms interval, got %v", s.IntervalMs)
	}
	if len(s.Beats) != 5 {
		t.Fatalf("expected 5 beats, got %d", len(s.Beats))
	}
	for i, want := range []float64{0, 1000, 2000, 3000, 4000} {
		if s.Beats[i].ExpectedTime != want {
			t.Errorf("beat %d: expected time %v, got %v", i, want, s.Beats[i].ExpectedTime)
		}
		if s.Beats[i].BeatNumber != i {
			t.Errorf("beat %d: wrong beat number %d", i, s.Beats[i].BeatNumber)
		}
	}
}

func TestNewSessionFractionalInterval(t *testing.T) {
	// 90 BPM: 666.67ms interval, 30s => 45 beats.
	s, err := NewSession(Config{BPM: 90, DurationSeconds: 30, Pattern: Single(LeftHand)})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if len(s.Beats) != 45 {
		t.Fatalf("expected 45 beats, got %d", len(s.Beats))
	}
}

func TestNewSessionValidation(t *testing.T) {
	cases := []Config{
		{BPM: 0, DurationSeconds: 60, Pattern: Single(LeftHand)},
		{BPM: 60, DurationSeconds: 0, Pattern: Single(LeftHand)},
		{BPM: 60, DurationSeconds: 60},
	}
	for i, cfg := range cases {
		if _, err := NewSession(cfg); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestHandleInputBindsOnce(t *testing.T) {
	s, _ := NewSession(Config{BPM: 60, DurationSeconds: 5, Pattern: Single(LeftHand)})

	fb, idx, ok := s.HandleInput(InputEvent{Channel: LeftHand, Timestamp: 1010, Source: SourceKeyboard})
	if !ok || idx != 1 {
		t.Fatalf("expected match on beat 1, got idx=%d ok=%v", idx, ok)
	}
	if fb.Category != CategoryPerfect {
		t.Errorf("expected perfect, got %s", fb.Category)
	}

	b := &s.Beats[1]
	if !b.Responded() || b.ActualChannel != LeftHand || *b.Deviation != 10 {
		t.Fatalf("beat not bound correctly: %+v", b)
	}
	if !b.CorrectChannel {
		t.Error("expected correct channel")
	}

	// A second event near the same beat cannot rebind it.
	if _, idx, ok := s.HandleInput(InputEvent{Channel: LeftHand, Timestamp: 1015}); ok && idx == 1 {
		t.Fatal("beat 1 was rebound")
	}
}

func TestHandleInputScenarioB(t *testing.T) {
	// 700ms from the nearest unmatched beat exceeds the acceptance
	// radius; the input is discarded and the beat stays open.
	s, _ := NewSession(Config{BPM: 60, DurationSeconds: 5, Pattern: Single(LeftHand)})
	ts := 0.0
	s.Beats[2].ActualTime = &ts

	if _, _, ok := s.HandleInput(InputEvent{Channel: RightHand, Timestamp: 1700}); ok {
		t.Fatal("expected no match at 700ms distance")
	}
	if s.Beats[1].Responded() {
		t.Error("beat 1 should remain unmatched")
	}
}

func TestExpireBeatBlocksLateInput(t *testing.T) {
	s, _ := NewSession(Config{BPM: 60, DurationSeconds: 5, Pattern: Single(LeftHand)})
	if !s.ExpireBeat(1) {
		t.Fatal("expected beat 1 to expire")
	}
	if s.ExpireBeat(1) {
		t.Error("expiring twice should report false")
	}
	if _, idx, ok := s.HandleInput(InputEvent{Channel: LeftHand, Timestamp: 1001}); ok && idx == 1 {
		t.Fatal("expired beat accepted an input")
	}
}

func TestExpireBeatOutOfRange(t *testing.T) {
	s, _ := NewSession(Config{BPM: 60, DurationSeconds: 2, Pattern: Single(LeftHand)})
	if s.ExpireBeat(-1) || s.ExpireBeat(99) {
		t.Error("out-of-range expiry should report false")
	}
}

func TestFinalizeMarksRemaining(t *testing.T) {
	s, _ := NewSession(Config{BPM: 60, DurationSeconds: 4, Pattern: Single(LeftHand)})
	s.HandleInput(InputEvent{Channel: LeftHand, Timestamp: 10})
	s.Finalize()
	for i := 1; i < len(s.Beats); i++ {
		if !s.Beats[i].Expired {
			t.Errorf("beat %d not expired after finalize", i)
		}
	}
	if s.Beats[0].Expired {
		t.Error("responded beat must not be flagged expired")
	}
}

func TestAbortedSessionAggregates(t *testing.T) {
	// Abort after two of five beats: the trailing beats count as
	// missed with no special casing.
	s, _ := NewSession(Config{BPM: 60, DurationSeconds: 5, Pattern: Single(LeftHand)})
	s.HandleInput(InputEvent{Channel: LeftHand, Timestamp: 5})
	s.HandleInput(InputEvent{Channel: LeftHand, Timestamp: 1003})
	s.Finalize()

	r := s.Results(25, ModalityAudio)
	if r.TotalBeats != 5 || r.RespondedBeats != 2 || r.MissedBeats != 3 {
		t.Fatalf("unexpected partition: %+v", r)
	}
	if r.MissCount != 3 {
		t.Errorf("expected 3 misses, got %d", r.MissCount)
	}
}

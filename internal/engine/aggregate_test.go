package engine

import (
	"math"
	"testing"
)

// respondedBeat builds a beat bound to an input dev milliseconds off
// the mark, scored the same way the session loop scores it.
func respondedBeat(n int, dev float64, ch, want Channel) Beat {
	exp := Single(want).ExpectedInputAt(n)
	exp.BeatNumber = n
	fb, correct := Evaluate(0, dev, ch, exp)
	at := dev
	d := dev
	return Beat{
		BeatNumber:     n,
		Expected:       exp,
		ActualChannel:  ch,
		ActualTime:     &at,
		Deviation:      &d,
		CorrectChannel: correct,
		Feedback:       &fb,
	}
}

func missedBeat(n int) Beat {
	return Beat{BeatNumber: n, Expired: true}
}

func TestEvaluateSessionScenarioC(t *testing.T) {
	// 10 beats, 7 responded at exactly +10ms, 3 never answered.
	beats := make([]Beat, 0, 10)
	for i := 0; i < 7; i++ {
		beats = append(beats, respondedBeat(i, 10, LeftHand, LeftHand))
	}
	for i := 7; i < 10; i++ {
		beats = append(beats, missedBeat(i))
	}

	r := EvaluateSession(beats, 25, ModalityAudio)
	if r.TaskAverage != 10 {
		t.Errorf("task average: expected 10, got %v", r.TaskAverage)
	}
	if r.Consistency != 100 {
		t.Errorf("consistency: expected 100, got %v", r.Consistency)
	}
	if r.ResponseRate != 70 {
		t.Errorf("response rate: expected 70, got %v", r.ResponseRate)
	}
	if r.AccuracyRate != 100 {
		t.Errorf("accuracy rate: expected 100, got %v", r.AccuracyRate)
	}
	if r.PerfectCount != 7 || r.MissCount != 3 {
		t.Errorf("category counts: perfect=%d miss=%d", r.PerfectCount, r.MissCount)
	}
	if r.AveragePoints != 100 {
		t.Errorf("average points: expected 100, got %v", r.AveragePoints)
	}
	if r.LateHitPercent != 100 || r.EarlyHitPercent != 0 || r.OnTargetPercent != 0 {
		t.Errorf("direction split: early=%v late=%v on=%v",
			r.EarlyHitPercent, r.LateHitPercent, r.OnTargetPercent)
	}
	// +10ms at age 25 on the auditory table lands in the top bracket.
	if r.ClassLevel != 7 {
		t.Errorf("class: expected 7, got %d", r.ClassLevel)
	}
}

func TestEvaluateSessionWrongChannelExcludedFromTA(t *testing.T) {
	beats := []Beat{
		respondedBeat(0, 20, LeftHand, LeftHand),
		respondedBeat(1, 40, RightHand, LeftHand),
	}
	r := EvaluateSession(beats, 25, ModalityAudio)
	if r.TaskAverage != 20 {
		t.Errorf("wrong-channel beat leaked into TA: %v", r.TaskAverage)
	}
	if r.WrongChannelBeats != 1 {
		t.Errorf("expected 1 wrong-channel beat, got %d", r.WrongChannelBeats)
	}
	if r.AccuracyRate != 50 {
		t.Errorf("accuracy rate: expected 50, got %v", r.AccuracyRate)
	}
	// Wrong-channel half points enter the sum, but the denominator is
	// the correct-response count.
	want := (90 + 75*0.5) / 1.0
	if r.AveragePoints != want {
		t.Errorf("average points: expected %v, got %v", want, r.AveragePoints)
	}
	// The wrong-channel response still shows up in its channel slice.
	if st, ok := r.ChannelStats[RightHand]; !ok || st.Count != 1 || st.AverageDeviation != 40 {
		t.Errorf("right-hand stats: %+v ok=%v", st, ok)
	}
}

func TestEvaluateSessionSentinel(t *testing.T) {
	for name, beats := range map[string][]Beat{
		"all missed":        {missedBeat(0), missedBeat(1)},
		"all wrong channel": {respondedBeat(0, 10, RightHand, LeftHand)},
	} {
		r := EvaluateSession(beats, 25, ModalityAudio)
		if r.TaskAverage != TaskAverageSentinel {
			t.Errorf("%s: expected sentinel TA, got %v", name, r.TaskAverage)
		}
		if r.ClassLevel != 1 {
			t.Errorf("%s: expected class 1, got %d", name, r.ClassLevel)
		}
		if r.AveragePoints != 0 {
			t.Errorf("%s: expected 0 average points, got %v", name, r.AveragePoints)
		}
	}
}

func TestEvaluateSessionEmptyTimeline(t *testing.T) {
	r := EvaluateSession(nil, 25, ModalityAudio)
	if r.TotalBeats != 0 || r.ResponseRate != 0 || r.AccuracyRate != 0 {
		t.Fatalf("empty timeline: %+v", r)
	}
	if r.TaskAverage != TaskAverageSentinel {
		t.Errorf("expected sentinel TA, got %v", r.TaskAverage)
	}
}

func TestConsistencyBounds(t *testing.T) {
	cases := []struct {
		name string
		devs []float64
		want float64
	}{
		{"no samples", nil, 100},
		{"one sample", []float64{340}, 100},
		{"identical", []float64{25, 25, 25}, 100},
		{"huge spread", []float64{0, 400}, 0},
	}
	for _, tc := range cases {
		if got := Consistency(tc.devs); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
	// Intermediate spreads stay inside [0, 100].
	got := Consistency([]float64{10, 40, 90, 20})
	if got < 0 || got > 100 {
		t.Errorf("consistency out of bounds: %v", got)
	}
}

func TestStdDevPopulation(t *testing.T) {
	got := stdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2) > 1e-9 {
		t.Errorf("expected population sd 2, got %v", got)
	}
}

func TestCalculateImprovement(t *testing.T) {
	current := SessionResult{TaskAverage: 30, ClassLevel: 5}
	previous := SessionResult{TaskAverage: 40, ClassLevel: 4}
	imp := CalculateImprovement(current, previous)
	if math.Abs(imp.TAImprovement-25) > 1e-9 {
		t.Errorf("expected 25%% improvement, got %v", imp.TAImprovement)
	}
	if imp.ClassDelta != 1 {
		t.Errorf("expected class delta 1, got %d", imp.ClassDelta)
	}

	// A zero previous TA cannot produce a ratio.
	imp = CalculateImprovement(current, SessionResult{})
	if imp.TAImprovement != 0 {
		t.Errorf("expected 0 improvement against empty baseline, got %v", imp.TAImprovement)
	}
}

func TestTimingBias(t *testing.T) {
	cases := []struct {
		early, late float64
		want        string
	}{
		{50, 50, "balanced"},
		{55, 45, "balanced"},
		{61, 39, "early-biased"},
		{20, 80, "late-biased"},
	}
	for _, tc := range cases {
		if got := TimingBias(tc.early, tc.late); got != tc.want {
			t.Errorf("(%v, %v): expected %s, got %s", tc.early, tc.late, tc.want, got)
		}
	}
}

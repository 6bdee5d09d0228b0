package engine

import (
	"math"
	"testing"
)

func expectSingle(ch Channel) ExpectedInput {
	return Single(ch).ExpectedInputAt(0)
}

func TestEvaluateCategories(t *testing.T) {
	cases := []struct {
		deviation  float64
		category   Category
		points     float64
	}{
		{0, CategoryPerfect, 100},
		{15, CategoryPerfect, 100},
		{-15, CategoryPerfect, 100},
		{16, CategoryExcellent, 90},
		{30, CategoryExcellent, 90},
		{31, CategoryGood, 75},
		{50, CategoryGood, 75},
		{-80, CategoryFair, 60},
		{81, CategoryPoor, 40},
		{120, CategoryPoor, 40},
		{121, CategoryMiss, 0},
		{400, CategoryMiss, 0},
	}
	for _, tc := range cases {
		fb, correct := Evaluate(1000, 1000+tc.deviation, LeftHand, expectSingle(LeftHand))
		if !correct {
			t.Fatalf("deviation %v: expected correct channel", tc.deviation)
		}
		if fb.Category != tc.category {
			t.Errorf("deviation %v: expected %s, got %s", tc.deviation, tc.category, fb.Category)
		}
		if fb.Points != tc.points {
			t.Errorf("deviation %v: expected %v points, got %v", tc.deviation, tc.points, fb.Points)
		}
	}
}

func TestEvaluatePointsMonotonic(t *testing.T) {
	prev := math.Inf(1)
	for _, dev := range []float64{0, 10, 20, 40, 60, 100, 200} {
		fb, _ := Evaluate(0, dev, LeftHand, expectSingle(LeftHand))
		if fb.Points > prev {
			t.Fatalf("points increased with deviation at %v: %v > %v", dev, fb.Points, prev)
		}
		prev = fb.Points
	}
}

func TestEvaluateDirectionBand(t *testing.T) {
	cases := []struct {
		deviation float64
		direction Direction
	}{
		{0, DirectionOnTime},
		{5, DirectionOnTime},
		{-5, DirectionOnTime},
		{6, DirectionLate},
		{-6, DirectionEarly},
		// The on-time band is narrower than the perfect band:
		// +10ms is perfect on the score axis but late on the
		// direction axis.
		{10, DirectionLate},
		{-10, DirectionEarly},
	}
	for _, tc := range cases {
		fb, _ := Evaluate(2000, 2000+tc.deviation, LeftHand, expectSingle(LeftHand))
		if fb.Direction != tc.direction {
			t.Errorf("deviation %v: expected %s, got %s", tc.deviation, tc.direction, fb.Direction)
		}
	}
}

func TestEvaluateWrongChannelHalvesPoints(t *testing.T) {
	for _, dev := range []float64{0, 20, 45, 70, 110} {
		right, ok := Evaluate(1000, 1000+dev, LeftHand, expectSingle(LeftHand))
		if !ok {
			t.Fatalf("deviation %v: expected correct channel", dev)
		}
		wrong, ok := Evaluate(1000, 1000+dev, RightFoot, expectSingle(LeftHand))
		if ok {
			t.Fatalf("deviation %v: expected wrong channel", dev)
		}
		if wrong.Points != right.Points*0.5 {
			t.Errorf("deviation %v: wrong-channel points %v, want %v", dev, wrong.Points, right.Points*0.5)
		}
		if wrong.Category != right.Category || wrong.Color != right.Color {
			t.Errorf("deviation %v: wrong channel changed category/color", dev)
		}
	}
}

func TestEvaluateDisplayText(t *testing.T) {
	cases := []struct {
		deviation float64
		want      string
	}{
		{23, "+23ms"},
		{-4, "-4ms"},
		{0, "0ms"},
	}
	for _, tc := range cases {
		fb, _ := Evaluate(500, 500+tc.deviation, LeftHand, expectSingle(LeftHand))
		if fb.DisplayText != tc.want {
			t.Errorf("deviation %v: expected %q, got %q", tc.deviation, tc.want, fb.DisplayText)
		}
	}
}

func TestEvaluateScenarioA(t *testing.T) {
	// 60 BPM, input at 1010ms against the beat at 1000ms.
	fb, correct := Evaluate(1000, 1010, LeftHand, expectSingle(LeftHand))
	if !correct {
		t.Fatal("expected correct channel")
	}
	if fb.Category != CategoryPerfect || fb.Points != 100 {
		t.Errorf("expected perfect/100, got %s/%v", fb.Category, fb.Points)
	}
	if fb.Direction != DirectionLate {
		t.Errorf("expected late, got %s", fb.Direction)
	}
	if fb.Deviation != 10 {
		t.Errorf("expected +10ms deviation, got %v", fb.Deviation)
	}
}

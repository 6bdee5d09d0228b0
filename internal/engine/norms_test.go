package engine

import "testing"

func TestAgeGroupFor(t *testing.T) {
	cases := []struct {
		age  int
		want AgeGroup
	}{
		{4, AgeGroupUnder7},
		{7, AgeGroupUnder7},
		{8, AgeGroup8to9},
		{9, AgeGroup8to9},
		{10, AgeGroup10to11},
		{11, AgeGroup10to11},
		{12, AgeGroup12to13},
		{13, AgeGroup12to13},
		{14, AgeGroup14to16},
		{16, AgeGroup14to16},
		{17, AgeGroupOver17},
		{63, AgeGroupOver17},
	}
	for _, tc := range cases {
		if got := AgeGroupFor(tc.age); got != tc.want {
			t.Errorf("age %d: expected %s, got %s", tc.age, tc.want, got)
		}
	}
}

func TestClassifyScenarioD(t *testing.T) {
	// A 14-year-old with a 22ms auditory task average sits in the
	// 20-25ms bracket of the 14-16 table.
	if got := Classify(22, 14, ModalityAudio); got != 6 {
		t.Fatalf("expected class 6, got %d", got)
	}
}

func TestClassifyBracketBoundaries(t *testing.T) {
	// Brackets are [min, max): the shared edge belongs to the lower
	// class. Adult auditory: class 7 ends at 17, class 1 starts at 90.
	cases := []struct {
		ta   float64
		want int
	}{
		{0, 7},
		{16.9, 7},
		{17, 6},
		{89.9, 2},
		{90, 1},
		{500, 1},
	}
	for _, tc := range cases {
		if got := Classify(tc.ta, 30, ModalityAudio); got != tc.want {
			t.Errorf("TA %v: expected class %d, got %d", tc.ta, tc.want, got)
		}
	}
}

func TestClassifyModalitiesDiffer(t *testing.T) {
	// Visual brackets are looser than auditory ones: a 22ms adult
	// average is top class visually but not auditorily.
	if got := Classify(22, 30, ModalityVisual); got != 7 {
		t.Errorf("visual: expected class 7, got %d", got)
	}
	if got := Classify(22, 30, ModalityAudio); got != 6 {
		t.Errorf("auditory: expected class 6, got %d", got)
	}
}

func TestClassifyFallback(t *testing.T) {
	if got := Classify(TaskAverageSentinel, 30, ModalityAudio); got != 1 {
		t.Errorf("sentinel: expected class 1, got %d", got)
	}
	if got := Classify(-5, 30, ModalityAudio); got != 1 {
		t.Errorf("negative TA: expected fallback class 1, got %d", got)
	}
}

func TestStandardsCoverEveryGroup(t *testing.T) {
	for _, m := range []Modality{ModalityAudio, ModalityVisual} {
		table := Standards(m)
		for _, g := range []AgeGroup{
			AgeGroupUnder7, AgeGroup8to9, AgeGroup10to11,
			AgeGroup12to13, AgeGroup14to16, AgeGroupOver17,
		} {
			ranges := table[g]
			if len(ranges) != 7 {
				t.Fatalf("%s/%s: expected 7 brackets, got %d", m, g, len(ranges))
			}
			// Brackets tile [0, inf) with no gaps, best class first.
			if ranges[0].Min != 0 {
				t.Errorf("%s/%s: first bracket starts at %v", m, g, ranges[0].Min)
			}
			for i := 1; i < len(ranges); i++ {
				if ranges[i].Min != ranges[i-1].Max {
					t.Errorf("%s/%s: gap between bracket %d and %d", m, g, i-1, i)
				}
				if ranges[i].Class != ranges[i-1].Class-1 {
					t.Errorf("%s/%s: classes out of order at %d", m, g, i)
				}
			}
		}
	}
}

func TestPercentile(t *testing.T) {
	cases := map[int]int{7: 98, 6: 90, 5: 75, 4: 50, 3: 25, 2: 10, 1: 2}
	for class, want := range cases {
		if got := Percentile(class); got != want {
			t.Errorf("class %d: expected percentile %d, got %d", class, want, got)
		}
	}
	if got := Percentile(0); got != 2 {
		t.Errorf("unknown class: expected percentile 2, got %d", got)
	}
}

func TestPerformanceLevel(t *testing.T) {
	if got := PerformanceLevel(7); got != "very good" {
		t.Errorf("class 7: got %q", got)
	}
	if got := PerformanceLevel(4); got != "normal" {
		t.Errorf("class 4: got %q", got)
	}
	if got := PerformanceLevel(-1); got != "very poor" {
		t.Errorf("unknown class: got %q", got)
	}
}

func TestClassInfoFor(t *testing.T) {
	if info := ClassInfoFor(7); info.Label != "elite" {
		t.Errorf("class 7: got %q", info.Label)
	}
	if info := ClassInfoFor(99); info.Label != "extreme deficit" {
		t.Errorf("unknown class: got %q", info.Label)
	}
}

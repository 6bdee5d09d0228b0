package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yalex-kim/timing-trainer/internal/engine"
)

func fullGrid() []BatteryTest {
	var tests []BatteryTest
	for _, part := range []engine.BodyPart{engine.BodyPartHand, engine.BodyPartFoot} {
		for _, side := range []engine.Side{engine.SideLeft, engine.SideRight} {
			for _, m := range []engine.Modality{engine.ModalityAudio, engine.ModalityVisual} {
				tests = append(tests, BatteryTest{
					Name:            string(part) + "-" + string(side) + "-" + string(m),
					BodyPart:        part,
					Side:            side,
					Modality:        m,
					BPM:             54,
					DurationSeconds: 60,
				})
			}
		}
	}
	return tests
}

func TestBatteryValidate(t *testing.T) {
	b := &Battery{Tests: fullGrid()}
	if err := b.Validate(); err != nil {
		t.Fatalf("full grid should validate: %v", err)
	}
}

func TestBatteryValidateRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Battery)
	}{
		{"too few tests", func(b *Battery) { b.Tests = b.Tests[:7] }},
		{"duplicate combination", func(b *Battery) { b.Tests[7] = b.Tests[0] }},
		{"missing name", func(b *Battery) { b.Tests[0].Name = "" }},
		{"bad body part", func(b *Battery) { b.Tests[0].BodyPart = "torso" }},
		{"both side", func(b *Battery) { b.Tests[0].Side = engine.SideBoth }},
		{"bad modality", func(b *Battery) { b.Tests[0].Modality = "tactile" }},
		{"zero bpm", func(b *Battery) { b.Tests[0].BPM = 0 }},
	}
	for _, tc := range cases {
		b := &Battery{Tests: fullGrid()}
		tc.mutate(b)
		if err := b.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestLoadBattery(t *testing.T) {
	yaml := `tests:
  - name: left-hand-audio
    title: Left hand, audio cue
    body_part: hand
    side: left
    modality: audio
    bpm: 54
    duration_seconds: 60
  - name: right-hand-audio
    body_part: hand
    side: right
    modality: audio
    bpm: 54
    duration_seconds: 60
  - name: left-hand-visual
    body_part: hand
    side: left
    modality: visual
    bpm: 54
    duration_seconds: 60
  - name: right-hand-visual
    body_part: hand
    side: right
    modality: visual
    bpm: 54
    duration_seconds: 60
  - name: left-foot-audio
    body_part: foot
    side: left
    modality: audio
    bpm: 54
    duration_seconds: 60
  - name: right-foot-audio
    body_part: foot
    side: right
    modality: audio
    bpm: 54
    duration_seconds: 60
  - name: left-foot-visual
    body_part: foot
    side: left
    modality: visual
    bpm: 54
    duration_seconds: 60
  - name: right-foot-visual
    body_part: foot
    side: right
    modality: visual
    bpm: 54
    duration_seconds: 60
`
	path := filepath.Join(t.TempDir(), "battery.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write battery file: %v", err)
	}

	battery, err := LoadBattery(path)
	if err != nil {
		t.Fatalf("load battery: %v", err)
	}
	if len(battery.Tests) != 8 {
		t.Fatalf("expected 8 tests, got %d", len(battery.Tests))
	}

	test, ok := battery.TestByName("left-foot-visual")
	if !ok {
		t.Fatal("expected to find left-foot-visual")
	}
	if test.BodyPart != engine.BodyPartFoot || test.Side != engine.SideLeft || test.Modality != engine.ModalityVisual {
		t.Errorf("wrong test loaded: %+v", test)
	}

	if _, ok := battery.TestByName("nope"); ok {
		t.Error("unknown test name should not resolve")
	}
}

func TestLoadBatteryMissingFile(t *testing.T) {
	if _, err := LoadBattery(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yalex-kim/timing-trainer/internal/engine"
)

// BatteryTest is one entry of the battery.yaml file.
type BatteryTest struct {
	Name            string          `yaml:"name"`
	Title           string          `yaml:"title"`
	BodyPart        engine.BodyPart `yaml:"body_part"`
	Side            engine.Side     `yaml:"side"`
	Modality        engine.Modality `yaml:"modality"`
	BPM             int             `yaml:"bpm"`
	DurationSeconds int             `yaml:"duration_seconds"`
}

// Battery holds the ordered set of tests a complete assessment runs
// through. A valid battery covers every part/side/modality combination
// exactly once.
type Battery struct {
	Tests []BatteryTest `yaml:"tests"`
}

// LoadBattery reads and validates the battery definition file.
func LoadBattery(path string) (*Battery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read battery file: %w", err)
	}

	var battery Battery
	if err := yaml.Unmarshal(data, &battery); err != nil {
		return nil, fmt.Errorf("failed to unmarshal battery YAML: %w", err)
	}
	if err := battery.Validate(); err != nil {
		return nil, err
	}
	return &battery, nil
}

// Validate checks the battery covers the full combination grid.
func (b *Battery) Validate() error {
	if len(b.Tests) != 8 {
		return fmt.Errorf("battery must define exactly 8 tests, found %d", len(b.Tests))
	}
	seen := make(map[string]string, 8)
	for _, t := range b.Tests {
		if t.Name == "" {
			return fmt.Errorf("battery test without a name")
		}
		if t.BodyPart != engine.BodyPartHand && t.BodyPart != engine.BodyPartFoot {
			return fmt.Errorf("test %s: invalid body part %q", t.Name, t.BodyPart)
		}
		if t.Side != engine.SideLeft && t.Side != engine.SideRight {
			return fmt.Errorf("test %s: invalid side %q", t.Name, t.Side)
		}
		if !t.Modality.Valid() {
			return fmt.Errorf("test %s: invalid modality %q", t.Name, t.Modality)
		}
		if t.BPM <= 0 || t.DurationSeconds <= 0 {
			return fmt.Errorf("test %s: bpm and duration must be positive", t.Name)
		}
		key := string(t.BodyPart) + "/" + string(t.Side) + "/" + string(t.Modality)
		if other, dup := seen[key]; dup {
			return fmt.Errorf("tests %s and %s share the combination %s", other, t.Name, key)
		}
		seen[key] = t.Name
	}
	return nil
}

// TestByName returns the named battery test.
func (b *Battery) TestByName(name string) (BatteryTest, bool) {
	for _, t := range b.Tests {
		if t.Name == name {
			return t, true
		}
	}
	return BatteryTest{}, false
}

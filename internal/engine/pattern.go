package engine

import "fmt"

// PatternKind discriminates the pattern variants. Single, Alternating
// and Custom are all "one channel per beat, cycling through a
// sequence"; Simultaneous and RoundRobin are the irreducible special
// cases.
type PatternKind int

const (
	PatternSingle PatternKind = iota
	PatternAlternating
	PatternSimultaneous
	PatternRoundRobin
	PatternCustom
)

// Pattern decides which channel(s) each beat of a session expects.
type Pattern struct {
	Kind     PatternKind
	Channels []Channel
}

// Single expects the same channel on every beat.
func Single(ch Channel) Pattern {
	return Pattern{Kind: PatternSingle, Channels: []Channel{ch}}
}

// Alternating flips between a and b by beat parity.
func Alternating(a, b Channel) Pattern {
	return Pattern{Kind: PatternAlternating, Channels: []Channel{a, b}}
}

// Simultaneous expects both channels on every beat.
func Simultaneous(a, b Channel) Pattern {
	return Pattern{Kind: PatternSimultaneous, Channels: []Channel{a, b}}
}

// RoundRobin cycles through all four channels in the fixed order
// left-hand, right-hand, left-foot, right-foot.
func RoundRobin() Pattern {
	seq := make([]Channel, len(Channels))
	copy(seq, Channels)
	return Pattern{Kind: PatternRoundRobin, Channels: seq}
}

// Custom cycles through an explicit ordered sequence of 1-4 distinct
// channels.
func Custom(seq []Channel) (Pattern, error) {
	if len(seq) == 0 || len(seq) > 4 {
		return Pattern{}, fmt.Errorf("custom sequence must have 1-4 channels, got %d", len(seq))
	}
	seen := make(map[Channel]bool, len(seq))
	for _, ch := range seq {
		if !ch.Valid() {
			return Pattern{}, fmt.Errorf("invalid channel %q in custom sequence", ch)
		}
		if seen[ch] {
			return Pattern{}, fmt.Errorf("duplicate channel %q in custom sequence", ch)
		}
		seen[ch] = true
	}
	channels := make([]Channel, len(seq))
	copy(channels, seq)
	return Pattern{Kind: PatternCustom, Channels: channels}, nil
}

// ExpectedInputAt returns the expected input for one beat. Pure: the
// same (pattern, beatNumber) always yields the same result.
func (p Pattern) ExpectedInputAt(beatNumber int) ExpectedInput {
	switch p.Kind {
	case PatternSimultaneous:
		return ExpectedInput{
			BeatNumber: beatNumber,
			Channels:   []Channel{p.Channels[0], p.Channels[1]},
		}
	case PatternSingle:
		return ExpectedInput{
			BeatNumber: beatNumber,
			Channels:   []Channel{p.Channels[0]},
		}
	default:
		// Alternating, RoundRobin and Custom all cycle through
		// their sequence by beat number.
		idx := beatNumber % len(p.Channels)
		return ExpectedInput{
			BeatNumber:     beatNumber,
			Channels:       []Channel{p.Channels[idx]},
			Alternating:    len(p.Channels) > 1,
			AlternateIndex: idx,
		}
	}
}

// SettingsToPattern maps the legacy (bodyPart, side) configuration to
// a pattern. "both" means alternating, not simultaneous; that is a
// product decision, not a default.
func SettingsToPattern(part BodyPart, side Side) Pattern {
	if part == BodyPartHand {
		switch side {
		case SideLeft:
			return Single(LeftHand)
		case SideRight:
			return Single(RightHand)
		default:
			return Alternating(LeftHand, RightHand)
		}
	}
	switch side {
	case SideLeft:
		return Single(LeftFoot)
	case SideRight:
		return Single(RightFoot)
	default:
		return Alternating(LeftFoot, RightFoot)
	}
}

var namedPatterns = map[string]Pattern{
	"left-hand-only":          Single(LeftHand),
	"right-hand-only":         Single(RightHand),
	"left-foot-only":          Single(LeftFoot),
	"right-foot-only":         Single(RightFoot),
	"both-hands-alternate":    Alternating(LeftHand, RightHand),
	"both-feet-alternate":     Alternating(LeftFoot, RightFoot),
	"left-hand-right-foot":    Alternating(LeftHand, RightFoot),
	"right-hand-left-foot":    Alternating(RightHand, LeftFoot),
	"both-hands-simultaneous": Simultaneous(LeftHand, RightHand),
	"both-feet-simultaneous":  Simultaneous(LeftFoot, RightFoot),
	"all-alternate":           RoundRobin(),
}

// ParsePattern resolves one of the named training patterns.
func ParsePattern(name string) (Pattern, error) {
	p, ok := namedPatterns[name]
	if !ok {
		return Pattern{}, fmt.Errorf("unknown training pattern %q", name)
	}
	return p, nil
}

// Name returns the canonical name for a pattern, or "custom" for
// sequences that have no legacy name.
func (p Pattern) Name() string {
	for name, known := range namedPatterns {
		if known.Kind != p.Kind || len(known.Channels) != len(p.Channels) {
			continue
		}
		match := true
		for i := range known.Channels {
			if known.Channels[i] != p.Channels[i] {
				match = false
				break
			}
		}
		if match {
			return name
		}
	}
	return "custom"
}

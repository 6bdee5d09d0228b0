// Package engine implements the timing-evaluation core: pattern
// generation, beat scheduling, input matching, per-beat scoring and
// whole-session aggregation. It is pure computation over in-memory
// data; persistence and transport live elsewhere.
package engine

// Channel is one of the four independent input sources.
type Channel string

const (
	LeftHand  Channel = "left-hand"
	RightHand Channel = "right-hand"
	LeftFoot  Channel = "left-foot"
	RightFoot Channel = "right-foot"
)

// Channels lists every channel in round-robin order.
var Channels = []Channel{LeftHand, RightHand, LeftFoot, RightFoot}

func (c Channel) Valid() bool {
	switch c {
	case LeftHand, RightHand, LeftFoot, RightFoot:
		return true
	}
	return false
}

// Modality is the stimulus mode a session was trained under.
type Modality string

const (
	ModalityAudio  Modality = "audio"
	ModalityVisual Modality = "visual"
)

func (m Modality) Valid() bool {
	return m == ModalityAudio || m == ModalityVisual
}

type BodyPart string

const (
	BodyPartHand BodyPart = "hand"
	BodyPartFoot BodyPart = "foot"
)

type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideBoth  Side = "both"
)

// Source tags where an input event came from. Informational only; it
// never affects scoring.
type Source string

const (
	SourceKeyboard Source = "keyboard"
	SourceTouch    Source = "touch"
	SourceMIDI     Source = "midi"
	SourceHID      Source = "usb"
	SourceGamepad  Source = "gamepad"
)

// InputEvent is a single timestamped user input. Timestamp is
// milliseconds since session start on the caller's monotonic clock.
// Seq is a caller-assigned monotonic sequence number; duplicates must
// be rejected at the boundary before an event reaches the matcher.
type InputEvent struct {
	Channel   Channel `json:"channel"`
	Timestamp float64 `json:"timestamp"`
	Source    Source  `json:"source"`
	Seq       int64   `json:"seq"`
}

// ExpectedInput is the set of channels that count as correct for one
// beat. Simultaneous patterns produce two channels, everything else one.
type ExpectedInput struct {
	BeatNumber     int       `json:"beatNumber"`
	Channels       []Channel `json:"channels"`
	Alternating    bool      `json:"alternating"`
	AlternateIndex int       `json:"alternateIndex"`
}

// Accepts reports whether ch is a correct channel for this beat.
func (e ExpectedInput) Accepts(ch Channel) bool {
	for _, c := range e.Channels {
		if c == ch {
			return true
		}
	}
	return false
}

// Category is the graduated feedback tier, ordered miss < poor < fair
// < good < excellent < perfect.
type Category string

const (
	CategoryPerfect   Category = "perfect"
	CategoryExcellent Category = "excellent"
	CategoryGood      Category = "good"
	CategoryFair      Category = "fair"
	CategoryPoor      Category = "poor"
	CategoryMiss      Category = "miss"
)

type Direction string

const (
	DirectionEarly  Direction = "early"
	DirectionLate   Direction = "late"
	DirectionOnTime Direction = "on-time"
)

// Feedback is the scored outcome of one matched beat.
type Feedback struct {
	Category    Category  `json:"category"`
	Deviation   float64   `json:"deviation"`
	Direction   Direction `json:"direction"`
	Points      float64   `json:"points"`
	Color       string    `json:"color"`
	Message     string    `json:"message"`
	DisplayText string    `json:"displayText"`
}

// Beat is one slot of the session timeline. The actual-fields are
// populated at most once, when an input event is bound to the beat;
// an expired beat can never be bound afterwards.
type Beat struct {
	BeatNumber   int           `json:"beatNumber"`
	ExpectedTime float64       `json:"expectedTime"`
	Expected     ExpectedInput `json:"expectedInput"`

	ActualChannel  Channel   `json:"actualChannel,omitempty"`
	ActualTime     *float64  `json:"actualTime"`
	ActualSource   Source    `json:"actualSource,omitempty"`
	Deviation      *float64  `json:"deviation"`
	CorrectChannel bool      `json:"correctChannel"`
	Expired        bool      `json:"expired"`
	Feedback       *Feedback `json:"feedback"`
}

// Responded reports whether an input was bound to this beat.
func (b *Beat) Responded() bool {
	return b.ActualTime != nil
}

// ChannelStats is the per-channel slice of a session summary. Only
// channels that received at least one response are reported.
type ChannelStats struct {
	Count            int     `json:"count"`
	AverageDeviation float64 `json:"averageDeviation"`
	AveragePoints    float64 `json:"averagePoints"`
}

// SessionResult is the immutable aggregate of one completed beat
// timeline.
type SessionResult struct {
	TaskAverage float64 `json:"taskAverage"`
	ClassLevel  int     `json:"classLevel"`

	EarlyHitPercent float64 `json:"earlyHitPercent"`
	LateHitPercent  float64 `json:"lateHitPercent"`
	OnTargetPercent float64 `json:"onTargetPercent"`

	TotalBeats        int     `json:"totalBeats"`
	RespondedBeats    int     `json:"respondedBeats"`
	MissedBeats       int     `json:"missedBeats"`
	WrongChannelBeats int     `json:"wrongChannelBeats"`
	ResponseRate      float64 `json:"responseRate"`
	AccuracyRate      float64 `json:"accuracyRate"`

	PerfectCount   int `json:"perfectCount"`
	ExcellentCount int `json:"excellentCount"`
	GoodCount      int `json:"goodCount"`
	FairCount      int `json:"fairCount"`
	PoorCount      int `json:"poorCount"`
	MissCount      int `json:"missCount"`

	AveragePoints float64 `json:"averagePoints"`
	Consistency   float64 `json:"consistency"`

	ChannelStats map[Channel]ChannelStats `json:"channelStats"`
}

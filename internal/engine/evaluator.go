package engine

import (
	"fmt"
	"math"
)

// Threshold is one tier of the graduated deviation scale. Range is the
// maximum absolute deviation (ms) that still falls in the tier.
type Threshold struct {
	Category Category
	Range    float64
	Points   float64
	Color    string
	Message  string
}

// FeedbackThresholds is the fixed scoring scale, ordered best to
// worst. The thresholds are not configurable per session.
var FeedbackThresholds = []Threshold{
	{CategoryPerfect, 15, 100, "#10b981", "PERFECT!"},
	{CategoryExcellent, 30, 90, "#22c55e", "EXCELLENT"},
	{CategoryGood, 50, 75, "#84cc16", "GOOD"},
	{CategoryFair, 80, 60, "#eab308", "FAIR"},
	{CategoryPoor, 120, 40, "#f97316", "POOR"},
	{CategoryMiss, math.Inf(1), 0, "#ef4444", "MISS"},
}

// OnTimeBandMs is the half-width of the on-time direction band. It is
// deliberately narrower than the perfect scoring band: direction and
// score are separate axes.
const OnTimeBandMs = 5

func thresholdFor(absDeviation float64) Threshold {
	for _, t := range FeedbackThresholds {
		if absDeviation <= t.Range {
			return t
		}
	}
	return FeedbackThresholds[len(FeedbackThresholds)-1]
}

// Evaluate scores one matched beat: the signed deviation, its category
// and direction, and the points after the wrong-channel penalty. A
// wrong channel halves the points but leaves category and color
// untouched.
func Evaluate(expectedTime, actualTime float64, ch Channel, expected ExpectedInput) (Feedback, bool) {
	deviation := actualTime - expectedTime
	absDeviation := math.Abs(deviation)
	correct := expected.Accepts(ch)

	t := thresholdFor(absDeviation)

	direction := DirectionOnTime
	if absDeviation > OnTimeBandMs {
		if deviation < 0 {
			direction = DirectionEarly
		} else {
			direction = DirectionLate
		}
	}

	points := t.Points
	message := t.Message
	if !correct {
		points = t.Points * 0.5
		message = "WRONG INPUT - " + t.Message
	}

	return Feedback{
		Category:    t.Category,
		Deviation:   deviation,
		Direction:   direction,
		Points:      points,
		Color:       t.Color,
		Message:     message,
		DisplayText: formatDeviation(deviation),
	}, correct
}

func formatDeviation(deviation float64) string {
	if deviation > 0 {
		return fmt.Sprintf("+%.0fms", deviation)
	}
	return fmt.Sprintf("%.0fms", deviation)
}

// FormatTA renders a task average for display.
func FormatTA(ta float64) string {
	return fmt.Sprintf("%.1fms", ta)
}

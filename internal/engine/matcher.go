package engine

import "math"

const (
	// AcceptanceRadiusMs is the farthest an input may land from a
	// beat's expected time and still bind to it. The boundary is
	// inclusive: exactly 500 ms is accepted.
	AcceptanceRadiusMs = 500

	// matchWindowSlots bounds the candidate scan to ±2 beat slots
	// around the input's own estimated beat index, keeping the
	// search O(1) and preventing an input from stealing a
	// far-away beat.
	matchWindowSlots = 2
)

// MatchBeat finds the unmatched, unexpired beat nearest to timestamp
// inside the ±2-slot window and returns its index, or -1 when no beat
// qualifies. Ties on distance go to the lowest beat index (strict <
// during the ascending scan), which keeps replays deterministic.
func MatchBeat(timestamp float64, beats []Beat, intervalMs float64) int {
	if len(beats) == 0 || intervalMs <= 0 {
		return -1
	}

	estimated := int(math.Round(timestamp / intervalMs))
	start := estimated - matchWindowSlots
	if start < 0 {
		start = 0
	}
	end := estimated + matchWindowSlots
	if end > len(beats)-1 {
		end = len(beats) - 1
	}

	best := -1
	minDistance := math.Inf(1)
	for i := start; i <= end; i++ {
		if beats[i].Responded() || beats[i].Expired {
			continue
		}
		distance := math.Abs(timestamp - beats[i].ExpectedTime)
		if distance < minDistance {
			minDistance = distance
			best = i
		}
	}

	if best == -1 || minDistance > AcceptanceRadiusMs {
		return -1
	}
	return best
}

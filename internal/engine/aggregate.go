package engine

import "math"

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stdDev(xs []float64) float64 {
	if len(xs) <= 1 {
		return 0
	}
	m := mean(xs)
	var sumSq float64
	for _, x := range xs {
		d := x - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

// Consistency converts the spread of absolute deviations into a 0-100
// score: a standard deviation of 0 scores 100, 100 ms or more scores
// 0. Fewer than two samples score 100 rather than producing NaN.
func Consistency(absDeviations []float64) float64 {
	if len(absDeviations) < 2 {
		return 100
	}
	score := 100 - stdDev(absDeviations)
	return math.Max(0, math.Min(100, score))
}

// EvaluateSession reduces a completed beat timeline to its summary.
// Task Average covers only correctly-channeled responded beats; with
// none of those it takes the 999 sentinel. Category counts cover the
// whole timeline, so the miss bucket absorbs beats that never
// received an input.
func EvaluateSession(beats []Beat, userAge int, modality Modality) SessionResult {
	r := SessionResult{
		TotalBeats:   len(beats),
		ChannelStats: make(map[Channel]ChannelStats),
	}

	var correctAbsDeviations []float64
	var pointsSum float64
	earlyCount, lateCount, onTargetCount := 0, 0, 0
	channelDevs := make(map[Channel][]float64)
	channelPoints := make(map[Channel][]float64)

	for i := range beats {
		b := &beats[i]
		if !b.Responded() {
			r.MissedBeats++
			r.MissCount++
			continue
		}

		r.RespondedBeats++
		if b.Feedback != nil {
			pointsSum += b.Feedback.Points
			switch b.Feedback.Category {
			case CategoryPerfect:
				r.PerfectCount++
			case CategoryExcellent:
				r.ExcellentCount++
			case CategoryGood:
				r.GoodCount++
			case CategoryFair:
				r.FairCount++
			case CategoryPoor:
				r.PoorCount++
			case CategoryMiss:
				r.MissCount++
			}
		}

		if b.ActualChannel != "" {
			dev := 0.0
			if b.Deviation != nil {
				dev = math.Abs(*b.Deviation)
			}
			channelDevs[b.ActualChannel] = append(channelDevs[b.ActualChannel], dev)
			pts := 0.0
			if b.Feedback != nil {
				pts = b.Feedback.Points
			}
			channelPoints[b.ActualChannel] = append(channelPoints[b.ActualChannel], pts)
		}

		if !b.CorrectChannel {
			r.WrongChannelBeats++
			continue
		}

		deviation := *b.Deviation
		correctAbsDeviations = append(correctAbsDeviations, math.Abs(deviation))
		switch {
		case deviation < -OnTimeBandMs:
			earlyCount++
		case deviation > OnTimeBandMs:
			lateCount++
		default:
			onTargetCount++
		}
	}

	correct := len(correctAbsDeviations)
	if correct > 0 {
		r.TaskAverage = mean(correctAbsDeviations)
	} else {
		r.TaskAverage = TaskAverageSentinel
	}
	r.ClassLevel = Classify(r.TaskAverage, userAge, modality)

	if correct > 0 {
		r.EarlyHitPercent = float64(earlyCount) / float64(correct) * 100
		r.LateHitPercent = float64(lateCount) / float64(correct) * 100
		r.OnTargetPercent = float64(onTargetCount) / float64(correct) * 100
		// The points denominator is the correct-response count even
		// though wrong-channel points enter the sum; downstream
		// tooling depends on this exact quantity.
		r.AveragePoints = pointsSum / float64(correct)
	}

	if r.TotalBeats > 0 {
		r.ResponseRate = float64(r.RespondedBeats) / float64(r.TotalBeats) * 100
	}
	if r.RespondedBeats > 0 {
		r.AccuracyRate = float64(correct) / float64(r.RespondedBeats) * 100
	}

	r.Consistency = Consistency(correctAbsDeviations)

	for _, ch := range Channels {
		devs, ok := channelDevs[ch]
		if !ok {
			continue
		}
		r.ChannelStats[ch] = ChannelStats{
			Count:            len(devs),
			AverageDeviation: mean(devs),
			AveragePoints:    mean(channelPoints[ch]),
		}
	}

	return r
}

// Improvement compares a session against a previous one: task-average
// improvement in percent (positive = faster) and the class delta.
type Improvement struct {
	TAImprovement float64 `json:"taImprovement"`
	ClassDelta    int     `json:"classDelta"`
}

// CalculateImprovement measures progress between two session results.
func CalculateImprovement(current, previous SessionResult) Improvement {
	imp := Improvement{ClassDelta: current.ClassLevel - previous.ClassLevel}
	if previous.TaskAverage > 0 {
		imp.TAImprovement = (previous.TaskAverage - current.TaskAverage) / previous.TaskAverage * 100
	}
	return imp
}

// TimingBias labels the early/late tendency of a session. Within a
// 10-point spread the session counts as balanced.
func TimingBias(earlyPercent, latePercent float64) string {
	if math.Abs(earlyPercent-latePercent) <= 10 {
		return "balanced"
	}
	if earlyPercent > latePercent {
		return "early-biased"
	}
	return "late-biased"
}

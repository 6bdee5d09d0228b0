package engine

import (
	"fmt"
	"math"
)

// TaggedSession is one of the eight battery sessions feeding the
// comprehensive report. Deviations holds the absolute deviations of
// the correctly-channeled beats in the order the inputs arrived.
type TaggedSession struct {
	TestName   string        `json:"testName"`
	BodyPart   BodyPart      `json:"bodyPart"`
	Side       Side          `json:"side"`
	Modality   Modality      `json:"modality"`
	Result     SessionResult `json:"result"`
	Deviations []float64     `json:"deviations"`
}

// PatientInfo identifies the person the report is about. Age is the
// derived age at report time, not a stored value.
type PatientInfo struct {
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Age      int    `json:"age"`
	TestDate string `json:"testDate"`
}

// ProcessingCapability summarizes one modality's averaged performance.
type ProcessingCapability struct {
	TaskAverage int    `json:"taskAverage"`
	Percentile  int    `json:"percentile"`
	Level       string `json:"level"`
	ClassLevel  int    `json:"classLevel"`
}

// LearningStyle compares the two modality percentiles; under a
// 5-point spread the style is balanced.
type LearningStyle struct {
	DominantStyle string `json:"dominantStyle"`
	Difference    int    `json:"difference"`
}

// AttentionMetrics grades the spread of a modality's deviations.
type AttentionMetrics struct {
	Percentile        int    `json:"percentile"`
	Level             string `json:"level"`
	StandardDeviation int    `json:"standardDeviation"`
}

// SustainabilityMetrics captures first-half vs second-half drift of a
// modality's pooled deviations.
type SustainabilityMetrics struct {
	ErrorRate       int `json:"errorRate"`
	ImprovementRate int `json:"improvementRate"`
	EarlyAverage    int `json:"earlyAverage"`
	LateAverage     int `json:"lateAverage"`
}

// HemisphereBalance maps body-side performance onto contralateral
// hemisphere percentages; the two percentages always sum to 100.
type HemisphereBalance struct {
	LeftBrain   int    `json:"leftBrain"`
	RightBrain  int    `json:"rightBrain"`
	Correlation string `json:"correlation"`
	Difference  int    `json:"difference"`
}

// BrainSpeed is the cross-modality processing-speed grade.
type BrainSpeed struct {
	TaskAverage int    `json:"taskAverage"`
	Level       string `json:"level"`
	Percentile  int    `json:"percentile"`
}

// ComprehensiveReport is the multi-dimensional profile built from the
// complete 8-session battery. It owns copies of its inputs and never
// mutates them.
type ComprehensiveReport struct {
	Patient PatientInfo `json:"patientInfo"`

	VisualProcessing   ProcessingCapability `json:"visualProcessing"`
	AuditoryProcessing ProcessingCapability `json:"auditoryProcessing"`
	LearningStyle      LearningStyle        `json:"learningStyle"`

	VisualAttention   AttentionMetrics `json:"visualAttention"`
	AuditoryAttention AttentionMetrics `json:"auditoryAttention"`

	BrainSpeed BrainSpeed `json:"brainSpeed"`

	VisualSustainability   SustainabilityMetrics `json:"visualSustainability"`
	AuditorySustainability SustainabilityMetrics `json:"auditorySustainability"`

	Hemisphere HemisphereBalance `json:"hemisphereBalance"`

	Sessions []TaggedSession `json:"sessions"`
}

const attentionLevelExcellent = "excellent"
const attentionLevelAverage = "average"
const attentionLevelDeficient = "deficient"

// BuildComprehensiveReport combines the full battery — every
// combination of {hand,foot} x {left,right} x {audio,visual}, exactly
// once — into the six derived dimensions. Anything other than that
// exact set of eight sessions is a hard error.
func BuildComprehensiveReport(patient PatientInfo, sessions []TaggedSession) (*ComprehensiveReport, error) {
	if len(sessions) != 8 {
		return nil, fmt.Errorf("comprehensive report requires exactly 8 sessions, got %d", len(sessions))
	}
	seen := make(map[string]bool, 8)
	for _, s := range sessions {
		key := string(s.BodyPart) + "/" + string(s.Side) + "/" + string(s.Modality)
		if seen[key] {
			return nil, fmt.Errorf("duplicate battery session %s", key)
		}
		seen[key] = true
	}
	if len(seen) != 8 {
		return nil, fmt.Errorf("battery sessions do not cover all 8 combinations")
	}

	var visualTAs, auditoryTAs, leftTAs, rightTAs []float64
	var visualDevs, auditoryDevs []float64
	for _, s := range sessions {
		if s.Modality == ModalityVisual {
			visualTAs = append(visualTAs, s.Result.TaskAverage)
			visualDevs = append(visualDevs, s.Deviations...)
		} else {
			auditoryTAs = append(auditoryTAs, s.Result.TaskAverage)
			auditoryDevs = append(auditoryDevs, s.Deviations...)
		}
		if s.Side == SideLeft {
			leftTAs = append(leftTAs, s.Result.TaskAverage)
		} else if s.Side == SideRight {
			rightTAs = append(rightTAs, s.Result.TaskAverage)
		}
	}

	visualTA := mean(visualTAs)
	auditoryTA := mean(auditoryTAs)

	report := &ComprehensiveReport{
		Patient:                patient,
		VisualProcessing:       processingCapability(visualTA, patient.Age, ModalityVisual),
		AuditoryProcessing:     processingCapability(auditoryTA, patient.Age, ModalityAudio),
		VisualAttention:        attentionMetrics(visualDevs),
		AuditoryAttention:      attentionMetrics(auditoryDevs),
		BrainSpeed:             brainSpeed(visualTA, auditoryTA),
		VisualSustainability:   sustainability(visualDevs),
		AuditorySustainability: sustainability(auditoryDevs),
		Hemisphere:             hemisphereBalance(mean(leftTAs), mean(rightTAs)),
		Sessions:               append([]TaggedSession(nil), sessions...),
	}
	report.LearningStyle = learningStyle(
		report.VisualProcessing.Percentile,
		report.AuditoryProcessing.Percentile,
	)
	return report, nil
}

func processingCapability(taskAverage float64, age int, m Modality) ProcessingCapability {
	class := Classify(taskAverage, age, m)
	return ProcessingCapability{
		TaskAverage: int(math.Round(taskAverage)),
		Percentile:  Percentile(class),
		Level:       PerformanceLevel(class),
		ClassLevel:  class,
	}
}

func learningStyle(visualPercentile, auditoryPercentile int) LearningStyle {
	diff := visualPercentile - auditoryPercentile
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff < 5:
		return LearningStyle{DominantStyle: "balanced", Difference: diff}
	case visualPercentile > auditoryPercentile:
		return LearningStyle{DominantStyle: "visual", Difference: diff}
	default:
		return LearningStyle{DominantStyle: "auditory", Difference: diff}
	}
}

// attentionMetrics grades deviation spread: SD under 20 ms is
// excellent, 20-40 ms interpolates linearly through the average band,
// beyond 40 ms the percentile decays toward a floor of 5.
func attentionMetrics(deviations []float64) AttentionMetrics {
	sd := stdDev(deviations)

	var percentile float64
	var level string
	switch {
	case sd < 20:
		percentile = 85
		level = attentionLevelExcellent
	case sd < 40:
		percentile = 70 - ((sd-20)/20)*40
		level = attentionLevelAverage
	default:
		percentile = math.Max(5, 30-((sd-40)/60)*25)
		level = attentionLevelDeficient
	}

	return AttentionMetrics{
		Percentile:        int(math.Round(percentile)),
		Level:             level,
		StandardDeviation: int(math.Round(sd)),
	}
}

func brainSpeed(visualTA, auditoryTA float64) BrainSpeed {
	ta := int(math.Round((visualTA + auditoryTA) / 2))
	switch {
	case ta < 50:
		return BrainSpeed{TaskAverage: ta, Level: attentionLevelExcellent, Percentile: 85}
	case ta < 100:
		return BrainSpeed{TaskAverage: ta, Level: attentionLevelAverage, Percentile: 50}
	default:
		return BrainSpeed{TaskAverage: ta, Level: attentionLevelDeficient, Percentile: 15}
	}
}

// sustainability splits the pooled deviations at their midpoint by
// input order. Error rate is the percentage degradation from the
// first half to the second, improvement rate the inverse; both are
// capped at 100 and the one that does not apply is 0.
func sustainability(deviations []float64) SustainabilityMetrics {
	mid := len(deviations) / 2
	if mid == 0 {
		return SustainabilityMetrics{}
	}
	earlyAvg := mean(deviations[:mid])
	lateAvg := mean(deviations[mid:])

	var errorRate, improvementRate float64
	if earlyAvg > 0 {
		if lateAvg > earlyAvg {
			errorRate = math.Min(100, (lateAvg-earlyAvg)/earlyAvg*100)
		} else if earlyAvg > lateAvg {
			improvementRate = math.Min(100, (earlyAvg-lateAvg)/earlyAvg*100)
		}
	}

	return SustainabilityMetrics{
		ErrorRate:       int(math.Round(errorRate)),
		ImprovementRate: int(math.Round(improvementRate)),
		EarlyAverage:    int(math.Round(earlyAvg)),
		LateAverage:     int(math.Round(lateAvg)),
	}
}

// hemisphereBalance splits the two side averages into complementary
// percentages. With no data on either side the split defaults to 50/50.
func hemisphereBalance(leftSideTA, rightSideTA float64) HemisphereBalance {
	total := leftSideTA + rightSideTA
	rightBrain := 50
	if total > 0 {
		rightBrain = int(math.Round(rightSideTA / total * 100))
	}
	leftBrain := 100 - rightBrain

	diff := leftBrain - rightBrain
	if diff < 0 {
		diff = -diff
	}

	correlation := "low"
	switch {
	case diff < 10:
		correlation = "high"
	case diff < 20:
		correlation = "medium"
	}

	return HemisphereBalance{
		LeftBrain:   leftBrain,
		RightBrain:  rightBrain,
		Correlation: correlation,
		Difference:  diff,
	}
}

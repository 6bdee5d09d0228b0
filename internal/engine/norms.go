package engine

import "math"

// TaskAverageSentinel marks a session with zero correctly-channeled
// responses. It sorts worse than every norm-table bracket, so such a
// session always classifies as class 1.
const TaskAverageSentinel = 999

// AgeGroup is one of the closed, non-overlapping norm-table bands.
type AgeGroup string

const (
	AgeGroupUnder7 AgeGroup = "under7"
	AgeGroup8to9   AgeGroup = "8-9"
	AgeGroup10to11 AgeGroup = "10-11"
	AgeGroup12to13 AgeGroup = "12-13"
	AgeGroup14to16 AgeGroup = "14-16"
	AgeGroupOver17 AgeGroup = "over17"
)

// AgeGroupFor maps an age in years to its norm-table band.
func AgeGroupFor(age int) AgeGroup {
	switch {
	case age <= 7:
		return AgeGroupUnder7
	case age <= 9:
		return AgeGroup8to9
	case age <= 11:
		return AgeGroup10to11
	case age <= 13:
		return AgeGroup12to13
	case age <= 16:
		return AgeGroup14to16
	default:
		return AgeGroupOver17
	}
}

// ClassRange is one [Min, Max) task-average bracket of a norm table.
type ClassRange struct {
	Class int     `json:"class"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

var inf = math.Inf(1)

// The QTrainer norm tables. Clinical validity depends on these exact
// millisecond breakpoints; do not adjust them.
var auditoryStandards = map[AgeGroup][]ClassRange{
	AgeGroupUnder7: {
		{7, 0, 40}, {6, 40, 60}, {5, 60, 80}, {4, 80, 100},
		{3, 100, 150}, {2, 150, 230}, {1, 230, inf},
	},
	AgeGroup8to9: {
		{7, 0, 30}, {6, 30, 35}, {5, 35, 45}, {4, 45, 70},
		{3, 70, 155}, {2, 155, 200}, {1, 200, inf},
	},
	AgeGroup10to11: {
		{7, 0, 27}, {6, 27, 34}, {5, 34, 40}, {4, 40, 60},
		{3, 60, 130}, {2, 130, 160}, {1, 160, inf},
	},
	AgeGroup12to13: {
		{7, 0, 25}, {6, 25, 30}, {5, 30, 35}, {4, 35, 45},
		{3, 45, 105}, {2, 105, 150}, {1, 150, inf},
	},
	AgeGroup14to16: {
		{7, 0, 20}, {6, 20, 25}, {5, 25, 30}, {4, 30, 45},
		{3, 45, 90}, {2, 90, 120}, {1, 120, inf},
	},
	AgeGroupOver17: {
		{7, 0, 17}, {6, 17, 25}, {5, 25, 30}, {4, 30, 40},
		{3, 40, 75}, {2, 75, 90}, {1, 90, inf},
	},
}

var visualStandards = map[AgeGroup][]ClassRange{
	AgeGroupUnder7: {
		{7, 0, 50}, {6, 50, 80}, {5, 80, 100}, {4, 100, 120},
		{3, 120, 170}, {2, 170, 250}, {1, 250, inf},
	},
	AgeGroup8to9: {
		{7, 0, 40}, {6, 40, 55}, {5, 55, 65}, {4, 65, 90},
		{3, 90, 130}, {2, 130, 220}, {1, 220, inf},
	},
	AgeGroup10to11: {
		{7, 0, 35}, {6, 35, 45}, {5, 45, 60}, {4, 60, 75},
		{3, 75, 110}, {2, 110, 200}, {1, 200, inf},
	},
	AgeGroup12to13: {
		{7, 0, 30}, {6, 30, 40}, {5, 40, 50}, {4, 50, 65},
		{3, 65, 95}, {2, 95, 160}, {1, 160, inf},
	},
	AgeGroup14to16: {
		{7, 0, 27}, {6, 27, 30}, {5, 30, 40}, {4, 40, 55},
		{3, 55, 75}, {2, 75, 130}, {1, 130, inf},
	},
	AgeGroupOver17: {
		{7, 0, 25}, {6, 25, 30}, {5, 30, 40}, {4, 40, 50},
		{3, 50, 70}, {2, 70, 100}, {1, 100, inf},
	},
}

// Standards returns the norm table for a modality, keyed by age group.
// The returned map is shared, read-only data.
func Standards(m Modality) map[AgeGroup][]ClassRange {
	if m == ModalityVisual {
		return visualStandards
	}
	return auditoryStandards
}

// Classify looks a task average up in the age-group and modality norm
// table and returns the class (1-7, 7 best). Anything outside every
// bracket falls back to class 1; the classifier never returns an
// undefined class.
func Classify(taskAverage float64, age int, m Modality) int {
	for _, r := range Standards(m)[AgeGroupFor(age)] {
		if taskAverage >= r.Min && taskAverage < r.Max {
			return r.Class
		}
	}
	return 1
}

var classPercentiles = map[int]int{
	7: 98,
	6: 90,
	5: 75,
	4: 50,
	3: 25,
	2: 10,
	1: 2,
}

// Percentile maps a class to its population percentile. The mapping
// is deliberately coarse and non-linear; it is clinical data, not a
// continuous CDF.
func Percentile(class int) int {
	if p, ok := classPercentiles[class]; ok {
		return p
	}
	return classPercentiles[1]
}

var performanceLevels = map[int]string{
	7: "very good",
	6: "good",
	5: "above normal",
	4: "normal",
	3: "below normal",
	2: "poor",
	1: "very poor",
}

// PerformanceLevel returns the display label for a class.
func PerformanceLevel(class int) string {
	if l, ok := performanceLevels[class]; ok {
		return l
	}
	return performanceLevels[1]
}

// ClassInfo is the display metadata for one class tier, with the
// age-agnostic task-average range used on the standards page.
type ClassInfo struct {
	Class       int        `json:"class"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	TARange     [2]float64 `json:"taRange"`
	Color       string     `json:"color"`
}

// ClassDefinitions lists all seven tiers, best first.
var ClassDefinitions = []ClassInfo{
	{7, "elite", "elite timing ability", [2]float64{0, 20}, "#8b5cf6"},
	{6, "excellent", "excellent timing ability", [2]float64{20, 40}, "#6366f1"},
	{5, "above average", "above-average timing ability", [2]float64{40, 80}, "#10b981"},
	{4, "average", "average timing ability", [2]float64{80, 120}, "#3b82f6"},
	{3, "below average", "below-average timing ability", [2]float64{120, 180}, "#f59e0b"},
	{2, "severe deficit", "severe timing deficit", [2]float64{180, 250}, "#f97316"},
	{1, "extreme deficit", "most severe timing deficit", [2]float64{250, inf}, "#ef4444"},
}

// ClassInfoFor returns the tier metadata for a class level.
func ClassInfoFor(class int) ClassInfo {
	for _, def := range ClassDefinitions {
		if def.Class == class {
			return def
		}
	}
	return ClassDefinitions[len(ClassDefinitions)-1]
}

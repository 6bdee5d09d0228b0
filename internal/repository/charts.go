package repository

import (
	"context"
	"time"

	"github.com/yalex-kim/timing-trainer/internal/database"
)

type TimelineDataPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Metric keys accepted by GetTimelineData. Each maps to one column of
// the stored session aggregate.
var timelineMetricColumns = map[string]string{
	"task_average":   "r.task_average",
	"consistency":    "r.consistency",
	"class_level":    "r.class_level::float",
	"response_rate":  "r.response_rate",
	"accuracy_rate":  "r.accuracy_rate",
	"average_points": "r.average_points",
	"on_target":      "r.on_target_percent",
}

// ValidTimelineMetric reports whether a metric key can be charted.
func ValidTimelineMetric(key string) bool {
	_, ok := timelineMetricColumns[key]
	return ok
}

// GetTimelineData returns one metric of every completed session of a
// battery test over time, oldest first. Sessions with a sentinel task
// average are excluded so a no-response run does not wreck the chart
// scale.
func GetTimelineData(ctx context.Context, userID uint, testName, metricKey string) ([]TimelineDataPoint, error) {
	column, ok := timelineMetricColumns[metricKey]
	if !ok {
		column = timelineMetricColumns["task_average"]
	}

	var data []TimelineDataPoint
	err := database.DB.WithContext(ctx).Raw(`
		SELECT
			s.created_at AS date,
			`+column+` AS value
		FROM session_result_records r
		JOIN training_sessions s ON r.session_id = s.id
		WHERE s.user_id = ? AND s.test_name = ? AND s.is_complete = true
			AND r.task_average < 999
		ORDER BY s.created_at;
	`, userID, testName).Scan(&data).Error
	return data, err
}

type BiasDataPoint struct {
	Date         time.Time `json:"date"`
	EarlyPercent float64   `json:"earlyPercent"`
	LatePercent  float64   `json:"latePercent"`
}

// GetBiasTimeline returns the early/late split of every completed
// session of a battery test over time.
func GetBiasTimeline(ctx context.Context, userID uint, testName string) ([]BiasDataPoint, error) {
	var data []BiasDataPoint
	err := database.DB.WithContext(ctx).Raw(`
		SELECT
			s.created_at AS date,
			r.early_hit_percent AS early_percent,
			r.late_hit_percent AS late_percent
		FROM session_result_records r
		JOIN training_sessions s ON r.session_id = s.id
		WHERE s.user_id = ? AND s.test_name = ? AND s.is_complete = true
			AND r.task_average < 999
		ORDER BY s.created_at;
	`, userID, testName).Scan(&data).Error
	return data, err
}

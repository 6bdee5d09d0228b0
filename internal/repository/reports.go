package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yalex-kim/timing-trainer/internal/database"
	"github.com/yalex-kim/timing-trainer/internal/engine"
	"github.com/yalex-kim/timing-trainer/internal/models"
)

// BatterySession pairs a completed session with its stored aggregate
// for report building.
type BatterySession struct {
	Session models.TrainingSession
	Result  models.SessionResultRecord
}

// GetLatestBatteryResults returns, per battery test name, the user's
// most recent completed session and its aggregate. Tests the user has
// never completed are simply absent from the map.
func GetLatestBatteryResults(ctx context.Context, userID uint, testNames []string) (map[string]BatterySession, error) {
	out := make(map[string]BatterySession, len(testNames))
	for _, name := range testNames {
		var session models.TrainingSession
		err := database.DB.WithContext(ctx).
			Where("user_id = ? AND test_name = ? AND is_complete = true", userID, name).
			Order("created_at DESC").
			First(&session).Error
		if err != nil {
			continue
		}

		result, err := GetSessionResult(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("session %s has no stored result: %w", session.SessionKey, err)
		}
		out[name] = BatterySession{Session: session, Result: *result}
	}
	return out, nil
}

// GetSessionDeviations returns the absolute deviations of a session's
// correctly-channeled beats, ordered by when the inputs landed. This
// ordering is what the sustainability split in the report relies on.
func GetSessionDeviations(ctx context.Context, sessionID uint) ([]float64, error) {
	var deviations []float64
	err := database.DB.WithContext(ctx).Raw(`
		SELECT ABS(deviation) AS deviation
		FROM beat_records
		WHERE session_id = ? AND correct_channel = true AND deviation IS NOT NULL
		ORDER BY actual_time;
	`, sessionID).Scan(&deviations).Error
	return deviations, err
}

// SaveReport stores a built comprehensive report as jsonb.
func SaveReport(ctx context.Context, userID uint, report *engine.ComprehensiveReport) (*models.AssessmentReport, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	record := &models.AssessmentReport{UserID: userID, Payload: payload}
	if err := database.DB.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// GetLatestReport returns the user's newest stored report.
func GetLatestReport(ctx context.Context, userID uint) (*models.AssessmentReport, error) {
	var record models.AssessmentReport
	result := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&record)
	return &record, result.Error
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yalex-kim/timing-trainer/internal/database"
	"github.com/yalex-kim/timing-trainer/internal/engine"
	"github.com/yalex-kim/timing-trainer/internal/models"
)

// CreateSession records a new, not-yet-run training session and mints
// its opaque key.
func CreateSession(ctx context.Context, session *models.TrainingSession) error {
	session.SessionKey = uuid.NewString()
	return database.DB.WithContext(ctx).Create(session).Error
}

// GetSessionByKey loads a session by its client-facing key, scoped to
// the owning user so keys cannot be guessed across accounts.
func GetSessionByKey(ctx context.Context, userID uint, key string) (*models.TrainingSession, error) {
	var session models.TrainingSession
	result := database.DB.WithContext(ctx).
		First(&session, "session_key = ? AND user_id = ?", key, userID)
	return &session, result.Error
}

// SaveCompletedSessionTx persists the scored timeline and the aggregate
// in one transaction and flips the session to complete. A session that
// is already complete is left untouched.
func SaveCompletedSessionTx(ctx context.Context, session *models.TrainingSession, beats []engine.Beat, result engine.SessionResult) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-check completion under the transaction to make replayed
		// submissions idempotent failures, not duplicated rows.
		var fresh models.TrainingSession
		if err := tx.First(&fresh, session.ID).Error; err != nil {
			return err
		}
		if fresh.IsComplete {
			return gorm.ErrDuplicatedKey
		}

		records := make([]models.BeatRecord, 0, len(beats))
		for i := range beats {
			b := &beats[i]
			rec := models.BeatRecord{
				SessionID:      session.ID,
				BeatNumber:     b.BeatNumber,
				ExpectedTime:   b.ExpectedTime,
				ActualTime:     b.ActualTime,
				Deviation:      b.Deviation,
				ActualChannel:  string(b.ActualChannel),
				ActualSource:   string(b.ActualSource),
				CorrectChannel: b.CorrectChannel,
				Expired:        b.Expired,
			}
			channels := make(pq.StringArray, 0, len(b.Expected.Channels))
			for _, ch := range b.Expected.Channels {
				channels = append(channels, string(ch))
			}
			rec.ExpectedChannels = channels
			if b.Feedback != nil {
				rec.Category = string(b.Feedback.Category)
				rec.Points = b.Feedback.Points
			}
			records = append(records, rec)
		}
		if len(records) > 0 {
			if err := tx.Create(&records).Error; err != nil {
				return err
			}
		}

		resultRecord, err := models.NewSessionResultRecord(session.ID, result)
		if err != nil {
			return err
		}
		if err := tx.Create(resultRecord).Error; err != nil {
			return err
		}

		return tx.Model(&models.TrainingSession{}).
			Where("id = ?", session.ID).
			Update("is_complete", true).Error
	})
}

// GetSessionResult loads the stored aggregate for a session.
func GetSessionResult(ctx context.Context, sessionID uint) (*models.SessionResultRecord, error) {
	var record models.SessionResultRecord
	result := database.DB.WithContext(ctx).First(&record, "session_id = ?", sessionID)
	return &record, result.Error
}

// GetPreviousResult finds the aggregate of the user's most recent
// completed session for the same battery test, excluding the given
// session. Used for improvement tracking.
func GetPreviousResult(ctx context.Context, userID uint, testName string, beforeSessionID uint) (*models.SessionResultRecord, error) {
	var record models.SessionResultRecord
	result := database.DB.WithContext(ctx).
		Joins("JOIN training_sessions ON training_sessions.id = session_result_records.session_id").
		Where("training_sessions.user_id = ? AND training_sessions.test_name = ? AND training_sessions.is_complete = true AND training_sessions.id <> ?",
			userID, testName, beforeSessionID).
		Order("session_result_records.created_at DESC").
		First(&record)
	return &record, result.Error
}

// ListCompletedSessions returns the user's completed sessions, newest
// first.
func ListCompletedSessions(ctx context.Context, userID uint, limit int) ([]models.TrainingSession, error) {
	var sessions []models.TrainingSession
	q := database.DB.WithContext(ctx).
		Where("user_id = ? AND is_complete = true", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&sessions).Error
	return sessions, err
}

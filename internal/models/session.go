package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/yalex-kim/timing-trainer/internal/engine"
)

// TrainingSession is one metronome run. SessionKey is the opaque
// identifier handed to the client; database IDs never leave the server.
type TrainingSession struct {
	ID         uint   `gorm:"primaryKey"`
	SessionKey string `gorm:"uniqueIndex;type:uuid"`
	UserID     uint
	User       User `gorm:"foreignKey:UserID"`

	TestName string
	Modality engine.Modality
	BodyPart engine.BodyPart
	Side     engine.Side

	PatternName     string
	CustomSequence  pq.StringArray `gorm:"type:text[]"`
	BPM             int
	DurationSeconds int

	IsComplete bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BeatRecord is one slot of a finished session's timeline as persisted.
type BeatRecord struct {
	ID        uint `gorm:"primaryKey"`
	SessionID uint
	Session   TrainingSession `gorm:"foreignKey:SessionID"`

	BeatNumber       int
	ExpectedTime     float64
	ExpectedChannels pq.StringArray `gorm:"type:text[]"`

	ActualTime     *float64
	Deviation      *float64
	ActualChannel  string
	ActualSource   string
	CorrectChannel bool
	Expired        bool
	Category       string
	Points         float64

	CreatedAt time.Time
}

// SessionResultRecord is the persisted aggregate of one session. The
// channel breakdown is stored as a jsonb blob rather than spread over
// four column sets.
type SessionResultRecord struct {
	ID        uint            `gorm:"primaryKey"`
	SessionID uint            `gorm:"uniqueIndex"`
	Session   TrainingSession `gorm:"foreignKey:SessionID"`

	TaskAverage float64
	ClassLevel  int
	Consistency float64

	EarlyHitPercent float64
	LateHitPercent  float64
	OnTargetPercent float64

	TotalBeats        int
	RespondedBeats    int
	MissedBeats       int
	WrongChannelBeats int
	ResponseRate      float64
	AccuracyRate      float64

	PerfectCount   int
	ExcellentCount int
	GoodCount      int
	FairCount      int
	PoorCount      int
	MissCount      int

	AveragePoints float64

	ChannelStats json.RawMessage `gorm:"type:jsonb"`

	CreatedAt time.Time
}

// ToEngineResult rebuilds the engine aggregate from a stored record.
func (r *SessionResultRecord) ToEngineResult() (engine.SessionResult, error) {
	result := engine.SessionResult{
		TaskAverage:       r.TaskAverage,
		ClassLevel:        r.ClassLevel,
		Consistency:       r.Consistency,
		EarlyHitPercent:   r.EarlyHitPercent,
		LateHitPercent:    r.LateHitPercent,
		OnTargetPercent:   r.OnTargetPercent,
		TotalBeats:        r.TotalBeats,
		RespondedBeats:    r.RespondedBeats,
		MissedBeats:       r.MissedBeats,
		WrongChannelBeats: r.WrongChannelBeats,
		ResponseRate:      r.ResponseRate,
		AccuracyRate:      r.AccuracyRate,
		PerfectCount:      r.PerfectCount,
		ExcellentCount:    r.ExcellentCount,
		GoodCount:         r.GoodCount,
		FairCount:         r.FairCount,
		PoorCount:         r.PoorCount,
		MissCount:         r.MissCount,
		AveragePoints:     r.AveragePoints,
	}
	if len(r.ChannelStats) > 0 {
		if err := json.Unmarshal(r.ChannelStats, &result.ChannelStats); err != nil {
			return engine.SessionResult{}, err
		}
	}
	return result, nil
}

// NewSessionResultRecord flattens an engine aggregate for storage.
func NewSessionResultRecord(sessionID uint, result engine.SessionResult) (*SessionResultRecord, error) {
	stats, err := json.Marshal(result.ChannelStats)
	if err != nil {
		return nil, err
	}
	return &SessionResultRecord{
		SessionID:         sessionID,
		TaskAverage:       result.TaskAverage,
		ClassLevel:        result.ClassLevel,
		Consistency:       result.Consistency,
		EarlyHitPercent:   result.EarlyHitPercent,
		LateHitPercent:    result.LateHitPercent,
		OnTargetPercent:   result.OnTargetPercent,
		TotalBeats:        result.TotalBeats,
		RespondedBeats:    result.RespondedBeats,
		MissedBeats:       result.MissedBeats,
		WrongChannelBeats: result.WrongChannelBeats,
		ResponseRate:      result.ResponseRate,
		AccuracyRate:      result.AccuracyRate,
		PerfectCount:      result.PerfectCount,
		ExcellentCount:    result.ExcellentCount,
		GoodCount:         result.GoodCount,
		FairCount:         result.FairCount,
		PoorCount:         result.PoorCount,
		MissCount:         result.MissCount,
		AveragePoints:     result.AveragePoints,
		ChannelStats:      stats,
	}, nil
}

// AssessmentReport is a stored comprehensive report. The full report
// body is kept as jsonb so the shape can evolve without migrations.
type AssessmentReport struct {
	ID      uint `gorm:"primaryKey"`
	UserID  uint
	User    User            `gorm:"foreignKey:UserID"`
	Payload json.RawMessage `gorm:"type:jsonb"`

	CreatedAt time.Time
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yalex-kim/timing-trainer/internal/config"
	"github.com/yalex-kim/timing-trainer/internal/engine"
	"github.com/yalex-kim/timing-trainer/internal/inputmap"
	"github.com/yalex-kim/timing-trainer/internal/models"
	"github.com/yalex-kim/timing-trainer/internal/repository"
)

type TrainingHandler struct {
	log     *zap.Logger
	battery *models.Battery
}

func NewTrainingHandler(log *zap.Logger, battery *models.Battery) *TrainingHandler {
	return &TrainingHandler{log: log, battery: battery}
}

func currentUser(c *gin.Context) *models.User {
	user, _ := c.Get("user")
	return user.(*models.User)
}

type createSessionRequest struct {
	// Either a battery test name...
	TestName string `json:"testName"`

	// ...or a free-form session.
	Modality        engine.Modality `json:"modality"`
	BodyPart        engine.BodyPart `json:"bodyPart"`
	Side            engine.Side     `json:"side"`
	Pattern         string          `json:"pattern"`
	CustomSequence  []string        `json:"customSequence"`
	BPM             int             `json:"bpm"`
	DurationSeconds int             `json:"durationSeconds"`
}

// CreateSession registers a new training run and returns its key plus
// the full beat schedule the client should render.
func (h *TrainingHandler) CreateSession(c *gin.Context) {
	user := currentUser(c)

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session request"})
		return
	}

	session := models.TrainingSession{UserID: user.ID}
	if req.TestName != "" {
		test, ok := h.battery.TestByName(req.TestName)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown battery test"})
			return
		}
		session.TestName = test.Name
		session.Modality = test.Modality
		session.BodyPart = test.BodyPart
		session.Side = test.Side
		session.BPM = test.BPM
		session.DurationSeconds = test.DurationSeconds
	} else {
		session.Modality = req.Modality
		session.BodyPart = req.BodyPart
		session.Side = req.Side
		session.PatternName = req.Pattern
		session.CustomSequence = append(session.CustomSequence, req.CustomSequence...)
		session.BPM = req.BPM
		session.DurationSeconds = req.DurationSeconds
	}

	if !session.Modality.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid modality"})
		return
	}
	training := config.Conf.Training
	if session.BPM < training.MinBPM || session.BPM > training.MaxBPM {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BPM out of range"})
		return
	}
	if session.DurationSeconds <= 0 || session.DurationSeconds > training.MaxDurationSeconds {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duration out of range"})
		return
	}

	pattern, err := sessionPattern(&session)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	run, err := engine.NewSession(engine.Config{
		BPM:             session.BPM,
		DurationSeconds: session.DurationSeconds,
		Pattern:         pattern,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := repository.CreateSession(c.Request.Context(), &session); err != nil {
		h.log.Error("Failed to create training session", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
		return
	}

	type scheduledBeat struct {
		BeatNumber   int              `json:"beatNumber"`
		ExpectedTime float64          `json:"expectedTime"`
		Channels     []engine.Channel `json:"channels"`
	}
	schedule := make([]scheduledBeat, 0, len(run.Beats))
	for i := range run.Beats {
		schedule = append(schedule, scheduledBeat{
			BeatNumber:   run.Beats[i].BeatNumber,
			ExpectedTime: run.Beats[i].ExpectedTime,
			Channels:     run.Beats[i].Expected.Channels,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionKey": session.SessionKey,
		"pattern":    pattern.Name(),
		"intervalMs": run.IntervalMs,
		"totalBeats": len(run.Beats),
		"schedule":   schedule,
	})
}

// sessionPattern rebuilds the engine pattern a stored session was
// created with.
func sessionPattern(session *models.TrainingSession) (engine.Pattern, error) {
	if len(session.CustomSequence) > 0 {
		channels := make([]engine.Channel, 0, len(session.CustomSequence))
		for _, ch := range session.CustomSequence {
			channels = append(channels, engine.Channel(ch))
		}
		return engine.Custom(channels)
	}
	if session.PatternName != "" {
		return engine.ParsePattern(session.PatternName)
	}
	side := session.Side
	if side != engine.SideLeft && side != engine.SideRight && side != engine.SideBoth {
		return engine.Pattern{}, errors.New("invalid side")
	}
	if session.BodyPart != engine.BodyPartHand && session.BodyPart != engine.BodyPartFoot {
		return engine.Pattern{}, errors.New("invalid body part")
	}
	return engine.SettingsToPattern(session.BodyPart, side), nil
}

type submittedEvent struct {
	Channel   engine.Channel `json:"channel"`
	Code      string         `json:"code"`
	Source    engine.Source  `json:"source"`
	Timestamp float64        `json:"timestamp"`
	Seq       int64          `json:"seq"`
}

type submitRequest struct {
	Events []submittedEvent `json:"events"`
}

// SubmitSession replays a finished run's input stream through the
// engine, persists the scored timeline and returns the aggregate.
// Duplicate sequence numbers are dropped before they reach the matcher.
func (h *TrainingHandler) SubmitSession(c *gin.Context) {
	user := currentUser(c)

	session, err := repository.GetSessionByKey(c.Request.Context(), user.ID, c.Param("key"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if session.IsComplete {
		c.JSON(http.StatusConflict, gin.H{"error": "Session already submitted"})
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission"})
		return
	}

	pattern, err := sessionPattern(session)
	if err != nil {
		h.log.Error("Stored session has invalid pattern", zap.Error(err), zap.String("sessionKey", session.SessionKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt session"})
		return
	}
	run, err := engine.NewSession(engine.Config{
		BPM:             session.BPM,
		DurationSeconds: session.DurationSeconds,
		Pattern:         pattern,
	})
	if err != nil {
		h.log.Error("Stored session has invalid config", zap.Error(err), zap.String("sessionKey", session.SessionKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt session"})
		return
	}

	type beatFeedback struct {
		Seq        int64            `json:"seq"`
		BeatNumber int              `json:"beatNumber,omitempty"`
		Matched    bool             `json:"matched"`
		Feedback   *engine.Feedback `json:"feedback,omitempty"`
	}
	feedbacks := make([]beatFeedback, 0, len(req.Events))
	seenSeq := make(map[int64]bool, len(req.Events))
	for _, ev := range req.Events {
		if seenSeq[ev.Seq] {
			continue
		}
		seenSeq[ev.Seq] = true

		channel := ev.Channel
		if channel == "" && ev.Code != "" {
			resolved, err := inputmap.Resolve(ev.Source, ev.Code)
			if err != nil {
				// An unmapped key press is noise, not an error.
				feedbacks = append(feedbacks, beatFeedback{Seq: ev.Seq, Matched: false})
				continue
			}
			channel = resolved
		}
		if !channel.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Event without a valid channel"})
			return
		}

		fb, beatNumber, ok := run.HandleInput(engine.InputEvent{
			Channel:   channel,
			Timestamp: ev.Timestamp,
			Source:    ev.Source,
			Seq:       ev.Seq,
		})
		entry := beatFeedback{Seq: ev.Seq, Matched: ok}
		if ok {
			entry.BeatNumber = beatNumber
			entry.Feedback = &fb
		}
		feedbacks = append(feedbacks, entry)
	}

	run.Finalize()
	result := run.Results(user.Age(), session.Modality)

	if err := repository.SaveCompletedSessionTx(c.Request.Context(), session, run.Beats, result); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Session already submitted"})
			return
		}
		h.log.Error("Failed to save session results", zap.Error(err), zap.String("sessionKey", session.SessionKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save results"})
		return
	}

	response := gin.H{
		"sessionKey": session.SessionKey,
		"result":     result,
		"timingBias": engine.TimingBias(result.EarlyHitPercent, result.LateHitPercent),
		"classInfo":  engine.ClassInfoFor(result.ClassLevel),
		"feedback":   feedbacks,
	}

	if session.TestName != "" {
		previous, err := repository.GetPreviousResult(c.Request.Context(), user.ID, session.TestName, session.ID)
		if err == nil {
			if previousResult, convErr := previous.ToEngineResult(); convErr == nil {
				response["improvement"] = engine.CalculateImprovement(result, previousResult)
			}
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetSession returns a stored session's aggregate.
func (h *TrainingHandler) GetSession(c *gin.Context) {
	user := currentUser(c)

	session, err := repository.GetSessionByKey(c.Request.Context(), user.ID, c.Param("key"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if !session.IsComplete {
		c.JSON(http.StatusOK, gin.H{"sessionKey": session.SessionKey, "isComplete": false})
		return
	}

	record, err := repository.GetSessionResult(c.Request.Context(), session.ID)
	if err != nil {
		h.log.Error("Completed session missing result", zap.Error(err), zap.String("sessionKey", session.SessionKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load results"})
		return
	}
	result, err := record.ToEngineResult()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not decode results"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionKey": session.SessionKey,
		"isComplete": true,
		"testName":   session.TestName,
		"modality":   session.Modality,
		"bodyPart":   session.BodyPart,
		"side":       session.Side,
		"bpm":        session.BPM,
		"result":     result,
		"timingBias": engine.TimingBias(result.EarlyHitPercent, result.LateHitPercent),
		"classInfo":  engine.ClassInfoFor(result.ClassLevel),
	})
}

// ListSessions returns the user's completed sessions, newest first.
func (h *TrainingHandler) ListSessions(c *gin.Context) {
	user := currentUser(c)

	sessions, err := repository.ListCompletedSessions(c.Request.Context(), user.ID, 50)
	if err != nil {
		h.log.Error("Failed to list sessions", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list sessions"})
		return
	}

	type sessionSummary struct {
		SessionKey string          `json:"sessionKey"`
		TestName   string          `json:"testName,omitempty"`
		Modality   engine.Modality `json:"modality"`
		BPM        int             `json:"bpm"`
		CreatedAt  string          `json:"createdAt"`
	}
	out := make([]sessionSummary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionSummary{
			SessionKey: s.SessionKey,
			TestName:   s.TestName,
			Modality:   s.Modality,
			BPM:        s.BPM,
			CreatedAt:  s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

// GetBattery describes the configured battery so clients can drive a
// full assessment.
func (h *TrainingHandler) GetBattery(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tests": h.battery.Tests})
}

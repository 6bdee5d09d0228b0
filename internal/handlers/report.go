package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yalex-kim/timing-trainer/internal/engine"
	"github.com/yalex-kim/timing-trainer/internal/models"
	"github.com/yalex-kim/timing-trainer/internal/repository"
)

type ReportHandler struct {
	log     *zap.Logger
	battery *models.Battery
}

func NewReportHandler(log *zap.Logger, battery *models.Battery) *ReportHandler {
	return &ReportHandler{log: log, battery: battery}
}

// Build assembles a comprehensive report from the user's latest
// completed run of every battery test. An incomplete battery is a 409
// listing what is still missing.
func (h *ReportHandler) Build(c *gin.Context) {
	user := currentUser(c)

	testNames := make([]string, 0, len(h.battery.Tests))
	for _, t := range h.battery.Tests {
		testNames = append(testNames, t.Name)
	}

	latest, err := repository.GetLatestBatteryResults(c.Request.Context(), user.ID, testNames)
	if err != nil {
		h.log.Error("Failed to load battery results", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load battery results"})
		return
	}

	var missing []string
	for _, name := range testNames {
		if _, ok := latest[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Battery incomplete",
			"missing": missing,
		})
		return
	}

	sessions := make([]engine.TaggedSession, 0, len(testNames))
	for _, name := range testNames {
		entry := latest[name]
		result, err := entry.Result.ToEngineResult()
		if err != nil {
			h.log.Error("Failed to decode stored result", zap.Error(err), zap.String("test", name))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not decode stored results"})
			return
		}
		deviations, err := repository.GetSessionDeviations(c.Request.Context(), entry.Session.ID)
		if err != nil {
			h.log.Error("Failed to load session deviations", zap.Error(err), zap.String("test", name))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load session detail"})
			return
		}
		sessions = append(sessions, engine.TaggedSession{
			TestName:   name,
			BodyPart:   entry.Session.BodyPart,
			Side:       entry.Session.Side,
			Modality:   entry.Session.Modality,
			Result:     result,
			Deviations: deviations,
		})
	}

	patient := engine.PatientInfo{
		Name:     user.FullName(),
		Gender:   user.Gender,
		Age:      user.Age(),
		TestDate: time.Now().UTC().Format("2006-01-02"),
	}
	report, err := engine.BuildComprehensiveReport(patient, sessions)
	if err != nil {
		h.log.Error("Report construction failed", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build report"})
		return
	}

	record, err := repository.SaveReport(c.Request.Context(), user.ID, report)
	if err != nil {
		h.log.Error("Failed to store report", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reportId": record.ID, "report": report})
}

// Latest returns the user's most recent stored report.
func (h *ReportHandler) Latest(c *gin.Context) {
	user := currentUser(c)

	record, err := repository.GetLatestReport(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No report found"})
		return
	}

	c.Data(http.StatusOK, "application/json", record.Payload)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yalex-kim/timing-trainer/internal/engine"
)

type StandardsHandler struct{}

func NewStandardsHandler() *StandardsHandler {
	return &StandardsHandler{}
}

// Tables returns the full norm tables and class tier metadata.
func (h *StandardsHandler) Tables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"auditory": engine.Standards(engine.ModalityAudio),
		"visual":   engine.Standards(engine.ModalityVisual),
		"classes":  engine.ClassDefinitions,
	})
}

// Classify grades an arbitrary task average against the norms, useful
// for client-side what-if displays.
func (h *StandardsHandler) Classify(c *gin.Context) {
	taskAverage, err := strconv.ParseFloat(c.Query("taskAverage"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskAverage must be a number"})
		return
	}
	age, err := strconv.Atoi(c.Query("age"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age must be an integer"})
		return
	}
	modality := engine.Modality(c.Query("modality"))
	if !modality.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "modality must be audio or visual"})
		return
	}

	class := engine.Classify(taskAverage, age, modality)
	c.JSON(http.StatusOK, gin.H{
		"class":      class,
		"percentile": engine.Percentile(class),
		"level":      engine.PerformanceLevel(class),
		"ageGroup":   engine.AgeGroupFor(age),
		"classInfo":  engine.ClassInfoFor(class),
	})
}

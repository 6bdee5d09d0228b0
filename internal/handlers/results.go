package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/yalex-kim/timing-trainer/internal/models"
	"github.com/yalex-kim/timing-trainer/internal/repository"
)

type ResultsHandler struct {
	log     *zap.Logger
	battery *models.Battery
}

func NewResultsHandler(log *zap.Logger, battery *models.Battery) *ResultsHandler {
	return &ResultsHandler{log: log, battery: battery}
}

// Timeline returns an echarts option blob charting one metric of one
// battery test over the user's training history.
func (h *ResultsHandler) Timeline(c *gin.Context) {
	user := currentUser(c)

	testName := c.Query("test")
	if _, ok := h.battery.TestByName(testName); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown battery test"})
		return
	}
	metricKey := c.Query("metric")
	if metricKey == "" {
		metricKey = "task_average"
	}
	if !repository.ValidTimelineMetric(metricKey) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown metric"})
		return
	}

	data, err := repository.GetTimelineData(c.Request.Context(), user.ID, testName, metricKey)
	if err != nil {
		h.log.Error("Failed to get timeline data", zap.Error(err),
			zap.String("test", testName), zap.String("metric", metricKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline data"})
		return
	}

	metricLabel := strings.Title(strings.ReplaceAll(metricKey, "_", " "))
	c.JSON(http.StatusOK, gin.H{
		"test":    testName,
		"metric":  metricKey,
		"options": generateTimelineChart(data, metricLabel).JSON(),
	})
}

// Bias returns an echarts option blob with the early/late split of a
// battery test over time, one line per direction.
func (h *ResultsHandler) Bias(c *gin.Context) {
	user := currentUser(c)

	testName := c.Query("test")
	if _, ok := h.battery.TestByName(testName); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown battery test"})
		return
	}

	data, err := repository.GetBiasTimeline(c.Request.Context(), user.ID, testName)
	if err != nil {
		h.log.Error("Failed to get bias timeline", zap.Error(err), zap.String("test", testName))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bias data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"test":    testName,
		"options": generateBiasChart(data).JSON(),
	})
}

func generateTimelineChart(data []repository.TimelineDataPoint, metricLabel string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Metric Over Time",
			Subtitle: metricLabel,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	items := make([]opts.LineData, 0)
	for _, point := range data {
		items = append(items, opts.LineData{Value: []interface{}{point.Date, point.Value}})
	}

	line.AddSeries(metricLabel, items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}

func generateBiasChart(data []repository.BiasDataPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Early vs. Late Responses",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "% of correct responses",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	early := make([]opts.LineData, 0)
	late := make([]opts.LineData, 0)
	for _, point := range data {
		early = append(early, opts.LineData{Value: []interface{}{point.Date, point.EarlyPercent}})
		late = append(late, opts.LineData{Value: []interface{}{point.Date, point.LatePercent}})
	}

	line.AddSeries("Early", early)
	line.AddSeries("Late", late)
	return line
}

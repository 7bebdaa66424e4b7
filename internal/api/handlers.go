package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"propscout/server/config"
	"propscout/server/internal/analysis"
	"propscout/server/internal/database"
	"propscout/server/internal/finance"
	"propscout/server/internal/market"
	"propscout/server/internal/models"
	"propscout/server/internal/notify"
	"propscout/server/internal/queue"
	"propscout/server/internal/report"
	"propscout/server/internal/valuation"
)

// Handler exposes the analysis pipeline and property store over HTTP.
type Handler struct {
	db       *database.Database
	pipeline *analysis.Pipeline
	markets  *config.MarketIndex
	queue    *queue.IngestQueue
	notifier *notify.Service
	logger   *logrus.Logger
}

// NewHandler wires the API against its collaborators.
func NewHandler(db *database.Database, pipeline *analysis.Pipeline, markets *config.MarketIndex,
	q *queue.IngestQueue, notifier *notify.Service, logger *logrus.Logger) *Handler {

	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:       db,
		pipeline: pipeline,
		markets:  markets,
		queue:    q,
		notifier: notifier,
		logger:   logger,
	}
}

// analysisResponse pairs the raw pipeline result with qualitative insights.
type analysisResponse struct {
	*analysis.Result
	MarketInsights    market.Insights    `json:"market_insights"`
	ValueInsights     valuation.Insights `json:"value_insights"`
	FinancialInsights finance.Insights   `json:"financial_insights"`
	IssuesFlagged     []string           `json:"issues_flagged"`
}

func newAnalysisResponse(result *analysis.Result) analysisResponse {
	return analysisResponse{
		Result:            result,
		MarketInsights:    market.Summarize(result.Market),
		ValueInsights:     valuation.Summarize(result.Evaluation),
		FinancialInsights: finance.Summarize(result.Financial),
		IssuesFlagged:     report.IssuesForDisplay(result.Evaluation),
	}
}

// AnalyzeProperty scores a property payload without storing it.
func (h *Handler) AnalyzeProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property payload: " + err.Error()})
		return
	}

	result, err := h.pipeline.Analyze(&property)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, newAnalysisResponse(result))
}

// IngestProperties enqueues a batch of property records for storage.
func (h *Handler) IngestProperties(c *gin.Context) {
	var batch []*models.Property
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property batch: " + err.Error()})
		return
	}
	if len(batch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty property batch"})
		return
	}

	if err := h.queue.Push(batch); err != nil {
		h.logger.WithError(err).Error("Failed to enqueue property batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": len(batch)})
}

// GetProperties lists stored properties, optionally filtered by city.
func (h *Handler) GetProperties(c *gin.Context) {
	properties, err := h.db.GetAllProperties(c.Query("city"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetPropertyAnalysis analyzes one stored property.
func (h *Handler) GetPropertyAnalysis(c *gin.Context) {
	property, err := h.db.GetProperty(c.Param("id"))
	if errors.Is(err, database.ErrPropertyNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load property"})
		return
	}

	result, err := h.pipeline.Analyze(property)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, newAnalysisResponse(result))
}

// GetAnalysisSummary analyzes all stored properties and returns the ranked
// portfolio summary. Buy-grade results trigger notification alerts.
func (h *Handler) GetAnalysisSummary(c *gin.Context) {
	properties, err := h.db.GetAllProperties(c.Query("city"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list properties"})
		return
	}

	results := h.pipeline.AnalyzeAll(properties)
	if h.notifier.Enabled() {
		go h.notifier.NotifyBuyRecommendations(results)
	}

	c.JSON(http.StatusOK, report.BuildSummary(results))
}

// GetMarkets lists the cities with indexed market profiles.
func (h *Handler) GetMarkets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cities":       h.markets.Cities(),
		"default_city": config.DefaultCity,
	})
}

// GetMarket returns the market profile for one city. Unlike the pipeline,
// this endpoint reports unknown cities instead of falling back.
func (h *Handler) GetMarket(c *gin.Context) {
	city := c.Param("city")
	profile, found := h.markets.Lookup(city)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown market: " + city})
		return
	}
	c.JSON(http.StatusOK, profile)
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propscout/server/config"
	"propscout/server/internal/analysis"
	"propscout/server/internal/database"
	"propscout/server/internal/models"
	"propscout/server/internal/notify"
	"propscout/server/internal/queue"
	"propscout/server/internal/report"
)

type testServer struct {
	router *gin.Engine
	db     *database.Database
	queue  *queue.IngestQueue
}

func newTestServer(t *testing.T, queueSize int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	markets := config.NewMarketIndex()
	pipeline := analysis.NewPipeline(markets, config.DefaultAssumptions(), 2026, 2, logger)
	q := queue.NewIngestQueue(queueSize, logger)
	notifier := notify.NewService("", "", logger)

	handler := NewHandler(db, pipeline, markets, q, notifier, logger)
	router := gin.New()
	SetupRoutes(router, handler)

	return &testServer{router: router, db: db, queue: q}
}

func (s *testServer) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func highYieldProperty() *models.Property {
	return &models.Property{
		ID:                "PROP-HY",
		Address:           "12 Yield Court",
		City:              "Phoenix",
		State:             "AZ",
		Price:             250000,
		Bedrooms:          4,
		Bathrooms:         2,
		Sqft:              1600,
		YearBuilt:         2010,
		PropertyType:      models.MultiFamily,
		EstimatedRent:     3400,
		PropertyTaxAnnual: 3000,
		InsuranceAnnual:   1200,
	}
}

func TestAnalyzeProperty(t *testing.T) {
	server := newTestServer(t, 10)

	recorder := server.request(t, http.MethodPost, "/api/analyze", highYieldProperty())
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Recommendation models.InvestmentRecommendation `json:"recommendation"`
		IssuesFlagged  []string                        `json:"issues_flagged"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.Equal(t, "A-", response.Recommendation.InvestmentGrade)
	assert.InDelta(t, 82.8, response.Recommendation.OverallScore, 0.001)
	assert.Equal(t, models.StrongBuy, response.Recommendation.Recommendation)
	assert.Equal(t, []string{"No major concerns identified"}, response.IssuesFlagged)
}

func TestAnalyzeProperty_MalformedBody(t *testing.T) {
	server := newTestServer(t, 10)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAnalyzeProperty_InvalidProperty(t *testing.T) {
	server := newTestServer(t, 10)

	property := highYieldProperty()
	property.Price = 0

	recorder := server.request(t, http.MethodPost, "/api/analyze", property)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestIngestProperties(t *testing.T) {
	server := newTestServer(t, 10)

	recorder := server.request(t, http.MethodPost, "/api/properties",
		[]*models.Property{highYieldProperty()})
	require.Equal(t, http.StatusAccepted, recorder.Code)

	var response map[string]int
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, 1, response["queued"])
	assert.Equal(t, 1, server.queue.Len())
}

func TestIngestProperties_EmptyBatch(t *testing.T) {
	server := newTestServer(t, 10)

	recorder := server.request(t, http.MethodPost, "/api/properties", []*models.Property{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestIngestProperties_QueueFull(t *testing.T) {
	server := newTestServer(t, 0)

	recorder := server.request(t, http.MethodPost, "/api/properties",
		[]*models.Property{highYieldProperty()})
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestGetProperties(t *testing.T) {
	server := newTestServer(t, 10)
	require.NoError(t, server.db.SeedSampleProperties())

	recorder := server.request(t, http.MethodGet, "/api/properties", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var properties []*models.Property
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &properties))
	assert.Len(t, properties, 5)

	recorder = server.request(t, http.MethodGet, "/api/properties?city=Austin", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &properties))
	require.Len(t, properties, 1)
	assert.Equal(t, "PROP-001", properties[0].ID)
}

func TestGetPropertyAnalysis(t *testing.T) {
	server := newTestServer(t, 10)
	require.NoError(t, server.db.SeedSampleProperties())

	recorder := server.request(t, http.MethodGet, "/api/properties/PROP-001/analysis", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Recommendation models.InvestmentRecommendation `json:"recommendation"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "C+", response.Recommendation.InvestmentGrade)
	assert.Equal(t, models.Pass, response.Recommendation.Recommendation)
}

func TestGetPropertyAnalysis_NotFound(t *testing.T) {
	server := newTestServer(t, 10)

	recorder := server.request(t, http.MethodGet, "/api/properties/PROP-MISSING/analysis", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetAnalysisSummary(t *testing.T) {
	server := newTestServer(t, 10)
	require.NoError(t, server.db.SeedSampleProperties())

	recorder := server.request(t, http.MethodGet, "/api/analysis/summary", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var summary report.Summary
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &summary))
	require.Len(t, summary.Rows, 5)

	// Rows arrive ranked best-first
	for i := 1; i < len(summary.Rows); i++ {
		assert.GreaterOrEqual(t, summary.Rows[i-1].OverallScore, summary.Rows[i].OverallScore)
	}
	assert.Greater(t, summary.AverageScore, 0.0)
}

func TestGetMarkets(t *testing.T) {
	server := newTestServer(t, 10)

	recorder := server.request(t, http.MethodGet, "/api/markets", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Cities      []string `json:"cities"`
		DefaultCity string   `json:"default_city"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Len(t, response.Cities, 5)
	assert.Contains(t, response.Cities, "phoenix")
	assert.Equal(t, "austin", response.DefaultCity)
}

func TestGetMarket(t *testing.T) {
	server := newTestServer(t, 10)

	recorder := server.request(t, http.MethodGet, "/api/markets/Phoenix", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var profile models.MarketProfile
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &profile))
	assert.Equal(t, 9.1, profile.AppreciationRate)
	assert.Equal(t, models.HeatHot, profile.MarketHeat)
}

func TestGetMarket_Unknown(t *testing.T) {
	server := newTestServer(t, 10)

	recorder := server.request(t, http.MethodGet, "/api/markets/gotham", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

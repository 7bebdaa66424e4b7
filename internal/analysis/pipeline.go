package analysis

import (
	"os"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"propscout/server/config"
	"propscout/server/internal/decision"
	"propscout/server/internal/finance"
	"propscout/server/internal/market"
	"propscout/server/internal/models"
	"propscout/server/internal/valuation"
)

// Result bundles every stage's output for one property. All fields are
// produced exactly once per run and never mutated afterward.
type Result struct {
	Property   *models.Property                `json:"property"`
	Market     models.MarketAnalysis           `json:"market_analysis"`
	Evaluation models.PropertyEvaluation       `json:"property_evaluation"`
	Financial  models.FinancialMetrics         `json:"financial_metrics"`
	Decision   models.InvestmentRecommendation `json:"recommendation"`
}

// Pipeline runs the four analysis stages in dependency order: the financial
// calculator needs the market analyzer's appreciation rate, and the decision
// engine needs all three leaf results.
type Pipeline struct {
	analyzer    *market.Analyzer
	evaluator   *valuation.Evaluator
	calculator  *finance.Calculator
	engine      *decision.Engine
	workerCount int
	logger      *logrus.Logger
}

// NewPipeline wires the calculators against a shared market index.
// referenceYear fixes the year used for property age (0 = current year);
// workerCount bounds the concurrency of AnalyzeAll.
func NewPipeline(markets *config.MarketIndex, assumptions config.Assumptions,
	referenceYear, workerCount int, logger *logrus.Logger) *Pipeline {

	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if workerCount < 1 {
		workerCount = 1
	}

	return &Pipeline{
		analyzer:    market.NewAnalyzer(markets, logger),
		evaluator:   valuation.NewEvaluator(markets, referenceYear, logger),
		calculator:  finance.NewCalculator(assumptions),
		engine:      decision.NewEngine(),
		workerCount: workerCount,
		logger:      logger,
	}
}

// Analyze runs the full pipeline for one property. The only failure mode is
// an invalid input record; the calculators themselves are total functions.
func (p *Pipeline) Analyze(property *models.Property) (*Result, error) {
	if err := property.Validate(); err != nil {
		return nil, err
	}

	marketAnalysis := p.analyzer.Analyze(property)
	evaluation := p.evaluator.Evaluate(property)
	metrics := p.calculator.Calculate(property, marketAnalysis.AppreciationRate)
	recommendation := p.engine.Decide(property, marketAnalysis, evaluation, metrics)

	p.logger.WithFields(logrus.Fields{
		"property_id":    property.ID,
		"grade":          recommendation.InvestmentGrade,
		"recommendation": recommendation.Recommendation,
	}).Debug("Analyzed property")

	return &Result{
		Property:   property,
		Market:     marketAnalysis,
		Evaluation: evaluation,
		Financial:  metrics,
		Decision:   recommendation,
	}, nil
}

// AnalyzeAll analyzes properties concurrently and returns results ordered by
// overall score, best first. Properties are independent, so workers share
// nothing but the read-only calculators. Invalid records are logged and
// skipped rather than failing the whole batch.
func (p *Pipeline) AnalyzeAll(properties []*models.Property) []*Result {
	jobs := make(chan *models.Property)
	results := make([]*Result, 0, len(properties))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < p.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for property := range jobs {
				result, err := p.Analyze(property)
				if err != nil {
					p.logger.WithError(err).WithField("property_id", property.ID).
						Error("Skipping property")
					continue
				}
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}

	for _, property := range properties {
		jobs <- property
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Decision.OverallScore > results[j].Decision.OverallScore
	})
	return results
}

package decision

import (
	"fmt"
	"math"
	"strings"

	"propscout/server/internal/models"
)

// Component weights of the overall score.
const (
	financialWeight = 0.40
	marketWeight    = 0.30
	propertyWeight  = 0.30
)

// gradeBand maps a minimum overall score to a letter grade. Bands are
// ordered from best to worst and the first match wins.
type gradeBand struct {
	min   float64
	grade string
}

var gradeBands = []gradeBand{
	{90, "A+"},
	{85, "A"},
	{80, "A-"},
	{75, "B+"},
	{70, "B"},
	{65, "B-"},
	{60, "C+"},
	{55, "C"},
	{0, "D"},
}

// Engine synthesizes the three component analyses into a final graded
// recommendation.
type Engine struct{}

// NewEngine creates a decision engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Decide produces the final recommendation for a property. It is a pure
// function of its inputs: same analyses in, same recommendation out.
func (e *Engine) Decide(property *models.Property, market models.MarketAnalysis,
	eval models.PropertyEvaluation, metrics models.FinancialMetrics) models.InvestmentRecommendation {

	financialScore := financialScore(metrics)
	marketScore := market.LocationScore
	propertyScore := eval.ConditionScore

	overall := financialScore*financialWeight +
		marketScore*marketWeight +
		propertyScore*propertyWeight

	grade := assignGrade(overall)

	return models.InvestmentRecommendation{
		PropertyID:      property.ID,
		InvestmentGrade: grade,
		OverallScore:    round1(overall),
		Confidence:      round1(confidence(financialScore, marketScore, propertyScore)),
		Recommendation:  recommend(overall, metrics),
		Rationale:       rationale(overall, grade, metrics, market),
		RiskLevel:       assessRisk(market, eval, metrics),
		KeyStrengths:    identifyStrengths(market, eval, metrics),
		KeyConcerns:     identifyConcerns(market, eval, metrics),
	}
}

// financialScore scores the financial metrics on a 0-100 scale: up to 40
// points for cap rate, 30 for monthly cash flow tier, 30 for 5-year ROI.
func financialScore(metrics models.FinancialMetrics) float64 {
	capRateScore := math.Min(metrics.CapRate*4, 40)

	var cashFlowScore float64
	switch {
	case metrics.MonthlyCashFlow >= 500:
		cashFlowScore = 30
	case metrics.MonthlyCashFlow >= 300:
		cashFlowScore = 25
	case metrics.MonthlyCashFlow >= 100:
		cashFlowScore = 20
	case metrics.MonthlyCashFlow > 0:
		cashFlowScore = 15
	}

	roiScore := math.Min(metrics.ROIFiveYear/3, 30)

	return math.Min(capRateScore+cashFlowScore+roiScore, 100)
}

func assignGrade(score float64) string {
	for _, band := range gradeBands {
		if score >= band.min {
			return band.grade
		}
	}
	return gradeBands[len(gradeBands)-1].grade
}

// recommend maps the overall score to a verdict. Negative cash flow is a
// hard Pass regardless of score.
func recommend(score float64, metrics models.FinancialMetrics) models.Recommendation {
	if metrics.MonthlyCashFlow <= 0 {
		return models.Pass
	}
	switch {
	case score >= 80:
		return models.StrongBuy
	case score >= 70:
		return models.Buy
	case score >= 60:
		return models.Consider
	default:
		return models.Pass
	}
}

// confidence rewards agreement between the three component scores. It
// never drops below 50: even wildly divergent components leave the engine
// half-confident in the weighted result.
func confidence(scores ...float64) float64 {
	mean := 0.0
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))

	variance := 0.0
	for _, s := range scores {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(scores))

	return math.Max(100-math.Sqrt(variance)*3, 50)
}

// assessRisk counts independent risk factors across all three analyses.
func assessRisk(market models.MarketAnalysis, eval models.PropertyEvaluation,
	metrics models.FinancialMetrics) models.RiskLevel {

	riskFactors := 0

	if market.MarketHeat == models.HeatCool {
		riskFactors++
	}
	if market.CrimeIndex > 50 {
		riskFactors++
	}
	if market.AppreciationRate < 4 {
		riskFactors++
	}

	if eval.ConditionScore < 60 {
		riskFactors++
	}
	if len(eval.Issues) > 2 {
		riskFactors++
	}

	if metrics.MonthlyCashFlow < 200 {
		riskFactors++
	}
	if metrics.CapRate < 5 {
		riskFactors++
	}

	switch {
	case riskFactors >= 4:
		return models.RiskHigh
	case riskFactors >= 2:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func identifyStrengths(market models.MarketAnalysis, eval models.PropertyEvaluation,
	metrics models.FinancialMetrics) []string {

	var strengths []string

	if metrics.CapRate > 8 {
		strengths = append(strengths, fmt.Sprintf("Excellent cap rate (%.2f%%)", metrics.CapRate))
	}
	if metrics.MonthlyCashFlow > 500 {
		strengths = append(strengths, fmt.Sprintf("Strong cash flow ($%d/month)", metrics.MonthlyCashFlow))
	}
	if market.AppreciationRate > 7 {
		strengths = append(strengths, fmt.Sprintf("High appreciation market (%.1f%%/year)", market.AppreciationRate))
	}
	if market.LocationScore > 80 {
		strengths = append(strengths, fmt.Sprintf("Premium location (score: %.1f)", market.LocationScore))
	}
	if eval.ValueRating == models.Undervalued {
		strengths = append(strengths, "Property priced below market")
	}
	if market.SchoolRating >= 8 {
		strengths = append(strengths, fmt.Sprintf("Excellent schools (rating: %.1f)", market.SchoolRating))
	}

	if len(strengths) == 0 {
		return []string{"Meets basic investment criteria"}
	}
	return strengths
}

func identifyConcerns(market models.MarketAnalysis, eval models.PropertyEvaluation,
	metrics models.FinancialMetrics) []string {

	var concerns []string

	if metrics.MonthlyCashFlow < 100 {
		concerns = append(concerns, "Minimal cash flow cushion")
	}
	if metrics.CapRate < 5 {
		concerns = append(concerns, fmt.Sprintf("Low cap rate (%.2f%%)", metrics.CapRate))
	}
	if market.CompetitionLevel == models.CompetitionHigh {
		concerns = append(concerns, "High buyer competition in market")
	}
	if eval.ConditionScore < 70 {
		concerns = append(concerns, "Property may need significant repairs")
	}
	if eval.ValueRating == models.Overvalued {
		concerns = append(concerns, "Property priced above market average")
	}
	if market.CrimeIndex > 45 {
		concerns = append(concerns, "Above-average crime in area")
	}
	if len(eval.Issues) > 1 {
		concerns = append(concerns, fmt.Sprintf("%d potential property issues", len(eval.Issues)))
	}

	if len(concerns) == 0 {
		return []string{"No significant concerns identified"}
	}
	return concerns
}

// rationale picks a score-banded template and fills in the specifics.
func rationale(score float64, grade string, metrics models.FinancialMetrics,
	market models.MarketAnalysis) string {

	heat := strings.ToLower(string(market.MarketHeat))

	switch {
	case score >= 80:
		return fmt.Sprintf("This property scores %s with strong fundamentals across all metrics. "+
			"The %.2f%% cap rate combined with %s market conditions creates an excellent investment opportunity.",
			grade, metrics.CapRate, heat)
	case score >= 70:
		return fmt.Sprintf("This property earns a %s rating with solid investment potential. "+
			"Financial metrics are sound with %.2f%% cap rate, though some areas could be stronger.",
			grade, metrics.CapRate)
	case score >= 60:
		return fmt.Sprintf("This property receives a %s grade. While it meets basic criteria, "+
			"the investment case is moderate with a %.2f%% cap rate.",
			grade, metrics.CapRate)
	default:
		return fmt.Sprintf("This property scores %s and presents challenges. "+
			"The %.2f%% cap rate and other factors suggest caution.",
			grade, metrics.CapRate)
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package valuation

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"propscout/server/config"
	"propscout/server/internal/models"
)

// Value rating bands: within 10% of the market average is considered fair.
const (
	undervaluedRatio = 0.90
	overvaluedRatio  = 1.10
)

// Age-based condition scoring. The penalty is linear in age but capped, and
// the score never drops below the floor: an old but standing building still
// has a sellable baseline condition.
const (
	agePenaltyPerYear   = 1.5
	maxAgePenalty       = 30
	conditionScoreFloor = 50
)

// highHOAThreshold flags condos whose monthly dues erode cash flow.
const highHOAThreshold = 400

// Evaluator assesses a property's physical condition and pricing against
// its market. The reference year is injected so results are reproducible.
type Evaluator struct {
	markets       *config.MarketIndex
	referenceYear int
	logger        *logrus.Logger
}

// NewEvaluator creates a property evaluator. A referenceYear of 0 means
// "use the current year".
func NewEvaluator(markets *config.MarketIndex, referenceYear int, logger *logrus.Logger) *Evaluator {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if referenceYear == 0 {
		referenceYear = time.Now().Year()
	}
	return &Evaluator{
		markets:       markets,
		referenceYear: referenceYear,
		logger:        logger,
	}
}

// Evaluate scores the property's condition and compares its pricing to the
// city average. Issues stays empty when nothing is flagged; callers that
// render it substitute a placeholder.
func (e *Evaluator) Evaluate(property *models.Property) models.PropertyEvaluation {
	pricePerSqft := float64(property.Price) / float64(property.Sqft)

	profile, _ := e.markets.Lookup(property.City)
	marketAvg := profile.AvgPricePerSqft

	valueRating := models.FairValue
	switch ratio := pricePerSqft / marketAvg; {
	case ratio < undervaluedRatio:
		valueRating = models.Undervalued
	case ratio > overvaluedRatio:
		valueRating = models.Overvalued
	}

	age := e.referenceYear - property.YearBuilt
	agePenalty := math.Min(float64(age)*agePenaltyPerYear, maxAgePenalty)
	conditionScore := math.Max(100-agePenalty, conditionScoreFloor)

	renovation := models.RenovationLow
	switch {
	case age > 20:
		renovation = models.RenovationHigh
	case age > 10:
		renovation = models.RenovationMedium
	}

	return models.PropertyEvaluation{
		ConditionScore:        round1(conditionScore),
		PricePerSqft:          round2(pricePerSqft),
		MarketAvgPricePerSqft: marketAvg,
		ValueRating:           valueRating,
		RenovationPotential:   renovation,
		Issues:                flagIssues(property, age),
	}
}

// flagIssues accumulates age- and fee-based inspection flags.
func flagIssues(property *models.Property, age int) []string {
	var issues []string
	if age > 25 {
		issues = append(issues,
			"Roof may need replacement soon",
			"HVAC system likely aging")
	}
	if age > 40 {
		issues = append(issues,
			"Foundation inspection recommended",
			"Electrical system may need upgrade")
	}
	if property.PropertyType == models.Condo && property.HOAFees > highHOAThreshold {
		issues = append(issues, "High HOA fees impact cash flow")
	}
	return issues
}

// Insights summarizes an evaluation in qualitative terms.
type Insights struct {
	ConditionRating      string `json:"condition_rating"`
	PricingVsMarket      string `json:"pricing_vs_market"`
	ValueOpportunity     string `json:"value_opportunity"`
	ImprovementPotential string `json:"improvement_potential"`
}

// Summarize converts an evaluation into human-readable insights.
func Summarize(eval models.PropertyEvaluation) Insights {
	variance := (eval.PricePerSqft - eval.MarketAvgPricePerSqft) / eval.MarketAvgPricePerSqft * 100

	insights := Insights{
		PricingVsMarket:      fmt.Sprintf("%+.1f%% vs market average", variance),
		ValueOpportunity:     string(eval.ValueRating),
		ImprovementPotential: string(eval.RenovationPotential),
	}

	switch {
	case eval.ConditionScore >= 85:
		insights.ConditionRating = "Excellent"
	case eval.ConditionScore >= 70:
		insights.ConditionRating = "Good"
	case eval.ConditionScore >= 55:
		insights.ConditionRating = "Fair"
	default:
		insights.ConditionRating = "Poor"
	}

	return insights
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

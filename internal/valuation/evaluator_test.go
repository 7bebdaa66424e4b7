package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"propscout/server/config"
	"propscout/server/internal/models"
)

const referenceYear = 2026

func newTestEvaluator() *Evaluator {
	return NewEvaluator(config.NewMarketIndex(), referenceYear, nil)
}

func austinProperty(yearBuilt int) *models.Property {
	return &models.Property{
		ID:           "PROP-TEST",
		Address:      "1 Test Way",
		City:         "Austin",
		Price:        425000,
		Sqft:         1850,
		YearBuilt:    yearBuilt,
		PropertyType: models.SingleFamily,
	}
}

func TestEvaluator_Evaluate_ConditionScore(t *testing.T) {
	evaluator := newTestEvaluator()

	tests := []struct {
		name          string
		yearBuilt     int
		expectedScore float64
	}{
		{
			name:          "New build has perfect condition",
			yearBuilt:     referenceYear,
			expectedScore: 100,
		},
		{
			name:          "Eleven years old",
			yearBuilt:     referenceYear - 11,
			expectedScore: 83.5,
		},
		{
			name:          "Penalty caps at thirty points",
			yearBuilt:     referenceYear - 20,
			expectedScore: 70,
		},
		{
			name:          "Very old property hits the floor cap",
			yearBuilt:     referenceYear - 45,
			expectedScore: 70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := evaluator.Evaluate(austinProperty(tt.yearBuilt))
			assert.InDelta(t, tt.expectedScore, eval.ConditionScore, 0.001)
			assert.GreaterOrEqual(t, eval.ConditionScore, 50.0)
			assert.LessOrEqual(t, eval.ConditionScore, 100.0)
		})
	}
}

func TestEvaluator_Evaluate_ValueRating(t *testing.T) {
	evaluator := newTestEvaluator()

	tests := []struct {
		name     string
		price    int
		expected models.ValueRating
	}{
		// Austin market average is $245/sqft, property is 1850 sqft.
		{
			name:     "Undervalued below 90 percent of market",
			price:    380000, // $205/sqft, ratio 0.84
			expected: models.Undervalued,
		},
		{
			name:     "Fair within ten percent of market",
			price:    425000, // $230/sqft, ratio 0.94
			expected: models.FairValue,
		},
		{
			name:     "Overvalued above 110 percent of market",
			price:    520000, // $281/sqft, ratio 1.15
			expected: models.Overvalued,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			property := austinProperty(2015)
			property.Price = tt.price
			eval := evaluator.Evaluate(property)
			assert.Equal(t, tt.expected, eval.ValueRating)
		})
	}
}

func TestEvaluator_Evaluate_PricePerSqft(t *testing.T) {
	evaluator := newTestEvaluator()

	eval := evaluator.Evaluate(austinProperty(2015))
	assert.InDelta(t, 229.73, eval.PricePerSqft, 0.001)
	assert.Equal(t, 245.0, eval.MarketAvgPricePerSqft)
}

func TestEvaluator_Evaluate_RenovationPotential(t *testing.T) {
	evaluator := newTestEvaluator()

	tests := []struct {
		age      int
		expected models.RenovationPotential
	}{
		{5, models.RenovationLow},
		{10, models.RenovationLow},
		{11, models.RenovationMedium},
		{20, models.RenovationMedium},
		{21, models.RenovationHigh},
		{45, models.RenovationHigh},
	}

	for _, tt := range tests {
		eval := evaluator.Evaluate(austinProperty(referenceYear - tt.age))
		assert.Equal(t, tt.expected, eval.RenovationPotential, "age %d", tt.age)
	}
}

func TestEvaluator_Evaluate_IssueFlags(t *testing.T) {
	evaluator := newTestEvaluator()

	t.Run("Recent build has no issues", func(t *testing.T) {
		eval := evaluator.Evaluate(austinProperty(referenceYear - 5))
		assert.Empty(t, eval.Issues)
		assert.False(t, eval.HasIssues())
	})

	t.Run("Over 25 years flags roof and HVAC", func(t *testing.T) {
		eval := evaluator.Evaluate(austinProperty(referenceYear - 30))
		assert.Equal(t, []string{
			"Roof may need replacement soon",
			"HVAC system likely aging",
		}, eval.Issues)
	})

	t.Run("Over 40 years adds foundation and electrical", func(t *testing.T) {
		eval := evaluator.Evaluate(austinProperty(referenceYear - 45))
		assert.Equal(t, []string{
			"Roof may need replacement soon",
			"HVAC system likely aging",
			"Foundation inspection recommended",
			"Electrical system may need upgrade",
		}, eval.Issues)
	})

	t.Run("Condo with high HOA flags cash flow issue", func(t *testing.T) {
		property := austinProperty(referenceYear - 5)
		property.PropertyType = models.Condo
		property.HOAFees = 450
		eval := evaluator.Evaluate(property)
		assert.Equal(t, []string{"High HOA fees impact cash flow"}, eval.Issues)
	})

	t.Run("Condo at HOA threshold is not flagged", func(t *testing.T) {
		property := austinProperty(referenceYear - 5)
		property.PropertyType = models.Condo
		property.HOAFees = 400
		eval := evaluator.Evaluate(property)
		assert.Empty(t, eval.Issues)
	})

	t.Run("Single family with high HOA is not flagged", func(t *testing.T) {
		property := austinProperty(referenceYear - 5)
		property.HOAFees = 450
		eval := evaluator.Evaluate(property)
		assert.Empty(t, eval.Issues)
	})
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		eval     models.PropertyEvaluation
		expected Insights
	}{
		{
			name: "Excellent condition priced under market",
			eval: models.PropertyEvaluation{
				ConditionScore:        88,
				PricePerSqft:          220.5,
				MarketAvgPricePerSqft: 245,
				ValueRating:           models.Undervalued,
				RenovationPotential:   models.RenovationLow,
			},
			expected: Insights{
				ConditionRating:      "Excellent",
				PricingVsMarket:      "-10.0% vs market average",
				ValueOpportunity:     "Undervalued",
				ImprovementPotential: "Low",
			},
		},
		{
			name: "Fair condition priced over market",
			eval: models.PropertyEvaluation{
				ConditionScore:        60,
				PricePerSqft:          269.5,
				MarketAvgPricePerSqft: 245,
				ValueRating:           models.Overvalued,
				RenovationPotential:   models.RenovationHigh,
			},
			expected: Insights{
				ConditionRating:      "Fair",
				PricingVsMarket:      "+10.0% vs market average",
				ValueOpportunity:     "Overvalued",
				ImprovementPotential: "High",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Summarize(tt.eval))
		})
	}
}

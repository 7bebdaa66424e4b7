package finance

import (
	"fmt"
	"math"

	"propscout/server/config"
	"propscout/server/internal/models"
)

// equityHoldingMonths is the amortization horizon used for the 5-year ROI.
const equityHoldingMonths = 60

// Calculator computes mortgage-based cash flow and return metrics. The
// underwriting assumptions are injected at construction so alternate
// scenarios never require code changes.
type Calculator struct {
	assumptions config.Assumptions
}

// NewCalculator creates a financial calculator with the given assumptions.
func NewCalculator(assumptions config.Assumptions) *Calculator {
	return &Calculator{assumptions: assumptions}
}

// Calculate derives the full metric set for a property. The appreciation
// rate comes from the market analysis of the property's city. All formulas
// are total: a non-positive cash flow routes break-even to the sentinel
// instead of dividing.
func (c *Calculator) Calculate(property *models.Property, appreciationRate float64) models.FinancialMetrics {
	price := float64(property.Price)
	rent := float64(property.EstimatedRent)

	downPayment := price * c.assumptions.DownPaymentPct
	loanAmount := price - downPayment

	monthlyRate := c.assumptions.InterestRate / 12
	numPayments := c.assumptions.LoanTermYears * 12
	monthlyMortgage := amortizedPayment(loanAmount, monthlyRate, numPayments)

	monthlyTax := float64(property.PropertyTaxAnnual) / 12
	monthlyInsurance := float64(property.InsuranceAnnual) / 12
	monthlyHOA := float64(property.HOAFees)
	monthlyMaintenance := rent * c.assumptions.MaintenanceRate
	monthlyManagement := rent * c.assumptions.ManagementRate

	effectiveRent := rent * (1 - c.assumptions.VacancyRate)

	totalExpenses := monthlyMortgage + monthlyTax + monthlyInsurance +
		monthlyHOA + monthlyMaintenance + monthlyManagement

	monthlyCashFlow := effectiveRent - totalExpenses
	annualCashFlow := monthlyCashFlow * 12

	// NOI excludes debt service by convention, so cap rate reflects the
	// asset rather than the financing.
	annualNOI := effectiveRent*12 -
		(monthlyTax+monthlyInsurance+monthlyHOA+monthlyMaintenance+monthlyManagement)*12
	capRate := annualNOI / price * 100

	closingCosts := price * c.assumptions.ClosingCostPct
	totalInvestment := downPayment + closingCosts
	cashOnCash := annualCashFlow / totalInvestment * 100

	futureValue := price * math.Pow(1+appreciationRate/100, 5)
	equityBuildup := equityBuildup(loanAmount, monthlyRate, numPayments, equityHoldingMonths)
	totalGain := (futureValue - price) + equityBuildup + annualCashFlow*5
	roiFiveYear := totalGain / totalInvestment * 100

	breakEvenMonths := models.NeverBreaksEven
	if monthlyCashFlow > 0 {
		breakEvenMonths = int(totalInvestment / monthlyCashFlow)
	}

	return models.FinancialMetrics{
		CapRate:            round2(capRate),
		CashOnCashReturn:   round2(cashOnCash),
		MonthlyCashFlow:    int(monthlyCashFlow),
		AnnualCashFlow:     int(annualCashFlow),
		ROIFiveYear:        round2(roiFiveYear),
		BreakEvenMonths:    breakEvenMonths,
		TotalInvestment:    int(totalInvestment),
		NetOperatingIncome: int(annualNOI),
	}
}

// amortizedPayment is the standard fixed-rate mortgage payment formula.
func amortizedPayment(loanAmount, monthlyRate float64, numPayments int) float64 {
	growth := math.Pow(1+monthlyRate, float64(numPayments))
	return loanAmount * monthlyRate * growth / (growth - 1)
}

// equityBuildup sums the principal portion of each payment over the holding
// period by walking the amortization schedule month by month.
func equityBuildup(loanAmount, monthlyRate float64, numPayments, monthsHeld int) float64 {
	payment := amortizedPayment(loanAmount, monthlyRate, numPayments)

	balance := loanAmount
	principalPaid := 0.0
	for month := 0; month < monthsHeld; month++ {
		interest := balance * monthlyRate
		principal := payment - interest
		principalPaid += principal
		balance -= principal
	}
	return principalPaid
}

// Insights summarizes financial metrics in qualitative terms.
type Insights struct {
	CashFlowQuality string `json:"cash_flow_quality"`
	CapRateRating   string `json:"cap_rate_rating"`
	ROIOutlook      string `json:"roi_outlook"`
	PaybackTimeline string `json:"payback_timeline"`
}

// Summarize converts financial metrics into human-readable insights.
func Summarize(metrics models.FinancialMetrics) Insights {
	insights := Insights{}

	switch {
	case metrics.MonthlyCashFlow > 500:
		insights.CashFlowQuality = "Excellent"
	case metrics.MonthlyCashFlow > 200:
		insights.CashFlowQuality = "Good"
	case metrics.MonthlyCashFlow > 0:
		insights.CashFlowQuality = "Break-even"
	default:
		insights.CashFlowQuality = "Negative"
	}

	switch {
	case metrics.CapRate > 8:
		insights.CapRateRating = "Strong"
	case metrics.CapRate > 6:
		insights.CapRateRating = "Good"
	case metrics.CapRate > 4:
		insights.CapRateRating = "Average"
	default:
		insights.CapRateRating = "Weak"
	}

	switch {
	case metrics.ROIFiveYear > 80:
		insights.ROIOutlook = "Excellent"
	case metrics.ROIFiveYear > 50:
		insights.ROIOutlook = "Good"
	case metrics.ROIFiveYear > 30:
		insights.ROIOutlook = "Moderate"
	default:
		insights.ROIOutlook = "Poor"
	}

	if metrics.BreakEvenMonths < models.NeverBreaksEven {
		insights.PaybackTimeline = fmt.Sprintf("%d months", metrics.BreakEvenMonths)
	} else {
		insights.PaybackTimeline = "Does not break even"
	}

	return insights
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

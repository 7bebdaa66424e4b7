package models

// MarketHeat describes how active a city's housing market is.
type MarketHeat string

const (
	HeatHot  MarketHeat = "Hot"
	HeatWarm MarketHeat = "Warm"
	HeatCool MarketHeat = "Cool"
)

// CompetitionLevel describes buyer competition in a market.
type CompetitionLevel string

const (
	CompetitionHigh   CompetitionLevel = "High"
	CompetitionMedium CompetitionLevel = "Medium"
	CompetitionLow    CompetitionLevel = "Low"
)

// ValueRating compares a property's price per square foot to its market.
type ValueRating string

const (
	Undervalued ValueRating = "Undervalued"
	FairValue   ValueRating = "Fair"
	Overvalued  ValueRating = "Overvalued"
)

// RenovationPotential indicates how much value renovation could add.
type RenovationPotential string

const (
	RenovationHigh   RenovationPotential = "High"
	RenovationMedium RenovationPotential = "Medium"
	RenovationLow    RenovationPotential = "Low"
)

// RiskLevel is the overall risk classification of an investment.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Recommendation is the final buy/pass verdict.
type Recommendation string

const (
	StrongBuy Recommendation = "Strong Buy"
	Buy       Recommendation = "Buy"
	Consider  Recommendation = "Consider"
	Pass      Recommendation = "Pass"
)

// MarketProfile holds the market statistics for a city. Profiles are
// configuration data, looked up by normalized city name.
type MarketProfile struct {
	AppreciationRate   float64          `json:"appreciation_rate"`
	MarketHeat         MarketHeat       `json:"market_heat"`
	CompetitionLevel   CompetitionLevel `json:"competition_level"`
	NeighborhoodRating float64          `json:"neighborhood_rating"`
	SchoolRating       float64          `json:"school_rating"`
	CrimeIndex         float64          `json:"crime_index"`
	AvgPricePerSqft    float64          `json:"avg_price_per_sqft"`
}

// MarketAnalysis is the market analyzer's output for one property.
// Created once per analysis run and never mutated.
type MarketAnalysis struct {
	LocationScore      float64          `json:"location_score"`
	AppreciationRate   float64          `json:"appreciation_rate"`
	MarketHeat         MarketHeat       `json:"market_heat"`
	CompetitionLevel   CompetitionLevel `json:"competition_level"`
	NeighborhoodRating float64          `json:"neighborhood_rating"`
	SchoolRating       float64          `json:"school_rating"`
	CrimeIndex         float64          `json:"crime_index"`
}

// PropertyEvaluation is the condition and value assessment of a property.
// Issues is a plain list and may be empty; display layers substitute a
// placeholder, downstream logic checks emptiness explicitly.
type PropertyEvaluation struct {
	ConditionScore        float64             `json:"condition_score"`
	PricePerSqft          float64             `json:"price_per_sqft"`
	MarketAvgPricePerSqft float64             `json:"market_avg_price_per_sqft"`
	ValueRating           ValueRating         `json:"value_rating"`
	RenovationPotential   RenovationPotential `json:"renovation_potential"`
	Issues                []string            `json:"issues_flagged"`
}

// HasIssues reports whether any inspection issues were flagged.
func (e PropertyEvaluation) HasIssues() bool {
	return len(e.Issues) > 0
}

// FinancialMetrics are the mortgage and return calculations for a property.
// BreakEvenMonths is NeverBreaksEven when cash flow is not positive.
type FinancialMetrics struct {
	CapRate            float64 `json:"cap_rate"`
	CashOnCashReturn   float64 `json:"cash_on_cash_return"`
	MonthlyCashFlow    int     `json:"monthly_cash_flow"`
	AnnualCashFlow     int     `json:"annual_cash_flow"`
	ROIFiveYear        float64 `json:"roi_5_year"`
	BreakEvenMonths    int     `json:"break_even_months"`
	TotalInvestment    int     `json:"total_investment"`
	NetOperatingIncome int     `json:"net_operating_income"`
}

// NeverBreaksEven is the BreakEvenMonths sentinel for properties whose
// cash flow never recovers the initial investment.
const NeverBreaksEven = 999

// InvestmentRecommendation is the decision engine's final verdict.
type InvestmentRecommendation struct {
	PropertyID      string         `json:"property_id"`
	InvestmentGrade string         `json:"investment_grade"`
	OverallScore    float64        `json:"overall_score"`
	Confidence      float64        `json:"confidence"`
	Recommendation  Recommendation `json:"recommendation"`
	Rationale       string         `json:"rationale"`
	RiskLevel       RiskLevel      `json:"risk_level"`
	KeyStrengths    []string       `json:"key_strengths"`
	KeyConcerns     []string       `json:"key_concerns"`
}

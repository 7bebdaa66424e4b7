package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"propscout/server/internal/analysis"
	"propscout/server/internal/models"
)

// noIssuesPlaceholder is display text only; the underlying issue list stays
// empty so downstream logic never has to special-case it.
const noIssuesPlaceholder = "No major concerns identified"

// Row is one line of the portfolio summary table.
type Row struct {
	PropertyID      string                `json:"property_id"`
	City            string                `json:"city"`
	Price           int                   `json:"price"`
	Grade           string                `json:"investment_grade"`
	OverallScore    float64               `json:"overall_score"`
	CapRate         float64               `json:"cap_rate"`
	MonthlyCashFlow int                   `json:"monthly_cash_flow"`
	Recommendation  models.Recommendation `json:"recommendation"`
}

// Summary aggregates a full analysis run across properties.
type Summary struct {
	Rows            []Row                         `json:"rows"`
	AverageScore    float64                       `json:"average_score"`
	Recommendations map[models.Recommendation]int `json:"recommendations"`
	TopOpportunity  *analysis.Result              `json:"top_opportunity,omitempty"`
}

// BuildSummary ranks analysis results into a portfolio summary. Results are
// expected in score order (AnalyzeAll returns them that way); the first one
// becomes the top opportunity.
func BuildSummary(results []*analysis.Result) Summary {
	summary := Summary{
		Rows:            make([]Row, 0, len(results)),
		Recommendations: make(map[models.Recommendation]int),
	}
	if len(results) == 0 {
		return summary
	}

	total := 0.0
	for _, result := range results {
		summary.Rows = append(summary.Rows, Row{
			PropertyID:      result.Property.ID,
			City:            result.Property.City,
			Price:           result.Property.Price,
			Grade:           result.Decision.InvestmentGrade,
			OverallScore:    result.Decision.OverallScore,
			CapRate:         result.Financial.CapRate,
			MonthlyCashFlow: result.Financial.MonthlyCashFlow,
			Recommendation:  result.Decision.Recommendation,
		})
		summary.Recommendations[result.Decision.Recommendation]++
		total += result.Decision.OverallScore
	}

	summary.AverageScore = math.Round(total/float64(len(results))*10) / 10
	summary.TopOpportunity = results[0]
	return summary
}

// ExportRecord is the flat per-property export shape. Every recommendation
// field is carried at full precision.
type ExportRecord struct {
	PropertyID      string                `json:"property_id"`
	Address         string                `json:"address"`
	City            string                `json:"city"`
	Price           int                   `json:"price"`
	InvestmentGrade string                `json:"investment_grade"`
	OverallScore    float64               `json:"overall_score"`
	Confidence      float64               `json:"confidence"`
	Recommendation  models.Recommendation `json:"recommendation"`
	Rationale       string                `json:"rationale"`
	RiskLevel       models.RiskLevel      `json:"risk_level"`
	KeyStrengths    []string              `json:"key_strengths"`
	KeyConcerns     []string              `json:"key_concerns"`
	CapRate         float64               `json:"cap_rate"`
	MonthlyCashFlow int                   `json:"monthly_cash_flow"`
	ROIFiveYear     float64               `json:"roi_5_year"`
	IssuesFlagged   []string              `json:"issues_flagged"`
}

// ExportRecords flattens analysis results for serialization.
func ExportRecords(results []*analysis.Result) []ExportRecord {
	records := make([]ExportRecord, 0, len(results))
	for _, result := range results {
		records = append(records, ExportRecord{
			PropertyID:      result.Property.ID,
			Address:         result.Property.Address,
			City:            result.Property.City,
			Price:           result.Property.Price,
			InvestmentGrade: result.Decision.InvestmentGrade,
			OverallScore:    result.Decision.OverallScore,
			Confidence:      result.Decision.Confidence,
			Recommendation:  result.Decision.Recommendation,
			Rationale:       result.Decision.Rationale,
			RiskLevel:       result.Decision.RiskLevel,
			KeyStrengths:    result.Decision.KeyStrengths,
			KeyConcerns:     result.Decision.KeyConcerns,
			CapRate:         result.Financial.CapRate,
			MonthlyCashFlow: result.Financial.MonthlyCashFlow,
			ROIFiveYear:     result.Financial.ROIFiveYear,
			IssuesFlagged:   IssuesForDisplay(result.Evaluation),
		})
	}
	return records
}

// SaveResults writes the export records to a JSON file.
func SaveResults(path string, results []*analysis.Result) error {
	data, err := json.MarshalIndent(ExportRecords(results), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}

// IssuesForDisplay returns the flagged issues, substituting a placeholder
// when nothing was flagged.
func IssuesForDisplay(eval models.PropertyEvaluation) []string {
	if !eval.HasIssues() {
		return []string{noIssuesPlaceholder}
	}
	return eval.Issues
}

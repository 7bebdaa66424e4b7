package market

import (
	"math"
	"os"

	"github.com/sirupsen/logrus"

	"propscout/server/config"
	"propscout/server/internal/models"
)

// Weights of the location score components. Crime carries the most weight
// since it moves rents and appreciation more than ratings do.
const (
	neighborhoodWeight = 0.3
	schoolWeight       = 0.3
	crimeWeight        = 0.4
)

// Analyzer scores a property's location using city market statistics.
type Analyzer struct {
	markets *config.MarketIndex
	logger  *logrus.Logger
}

// NewAnalyzer creates a market analyzer backed by the given profile index.
func NewAnalyzer(markets *config.MarketIndex, logger *logrus.Logger) *Analyzer {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Analyzer{
		markets: markets,
		logger:  logger,
	}
}

// Analyze looks up the property's city profile and scores the location.
// Unknown cities resolve to the default profile; that is policy, not an
// error, so Analyze is total over valid properties.
func (a *Analyzer) Analyze(property *models.Property) models.MarketAnalysis {
	profile, found := a.markets.Lookup(property.City)
	if !found {
		a.logger.WithField("city", property.City).Debug("Unknown city, using default market profile")
	}

	locationScore := (profile.NeighborhoodRating*neighborhoodWeight +
		profile.SchoolRating*schoolWeight +
		(100-profile.CrimeIndex)/10*crimeWeight) * 10

	return models.MarketAnalysis{
		LocationScore:      round1(locationScore),
		AppreciationRate:   profile.AppreciationRate,
		MarketHeat:         profile.MarketHeat,
		CompetitionLevel:   profile.CompetitionLevel,
		NeighborhoodRating: profile.NeighborhoodRating,
		SchoolRating:       profile.SchoolRating,
		CrimeIndex:         profile.CrimeIndex,
	}
}

// Insights summarizes a market analysis in qualitative terms.
type Insights struct {
	LocationQuality  string `json:"location_quality"`
	GrowthPotential  string `json:"growth_potential"`
	BuyerCompetition string `json:"buyer_competition"`
	SafetyRating     string `json:"safety_rating"`
}

// Summarize converts a market analysis into human-readable insights.
func Summarize(analysis models.MarketAnalysis) Insights {
	insights := Insights{
		BuyerCompetition: string(analysis.CompetitionLevel),
	}

	switch {
	case analysis.LocationScore >= 80:
		insights.LocationQuality = "Excellent"
	case analysis.LocationScore >= 65:
		insights.LocationQuality = "Good"
	case analysis.LocationScore >= 50:
		insights.LocationQuality = "Average"
	default:
		insights.LocationQuality = "Poor"
	}

	switch {
	case analysis.AppreciationRate >= 7:
		insights.GrowthPotential = "High"
	case analysis.AppreciationRate >= 5:
		insights.GrowthPotential = "Moderate"
	default:
		insights.GrowthPotential = "Low"
	}

	switch {
	case analysis.CrimeIndex < 35:
		insights.SafetyRating = "Safe"
	case analysis.CrimeIndex < 50:
		insights.SafetyRating = "Moderate"
	default:
		insights.SafetyRating = "Concerning"
	}

	return insights
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

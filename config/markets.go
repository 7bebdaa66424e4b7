package config

import (
	"strings"

	"propscout/server/internal/models"
)

// DefaultCity is the profile used when a city is not covered by the index.
// Falling back instead of failing is deliberate: an unknown market gets
// scored against a representative baseline rather than blocking analysis.
const DefaultCity = "austin"

// builtinProfiles covers the markets we track out of the box. Values can be
// overridden from a JSON file via LoadMarketProfiles.
var builtinProfiles = map[string]models.MarketProfile{
	"austin": {
		AppreciationRate:   8.5,
		MarketHeat:         models.HeatHot,
		CompetitionLevel:   models.CompetitionHigh,
		NeighborhoodRating: 8.5,
		SchoolRating:       8.0,
		CrimeIndex:         35,
		AvgPricePerSqft:    245,
	},
	"san-diego": {
		AppreciationRate:   6.2,
		MarketHeat:         models.HeatWarm,
		CompetitionLevel:   models.CompetitionHigh,
		NeighborhoodRating: 9.0,
		SchoolRating:       8.5,
		CrimeIndex:         28,
		AvgPricePerSqft:    625,
	},
	"phoenix": {
		AppreciationRate:   9.1,
		MarketHeat:         models.HeatHot,
		CompetitionLevel:   models.CompetitionMedium,
		NeighborhoodRating: 7.5,
		SchoolRating:       7.0,
		CrimeIndex:         42,
		AvgPricePerSqft:    165,
	},
	"nashville": {
		AppreciationRate:   7.8,
		MarketHeat:         models.HeatHot,
		CompetitionLevel:   models.CompetitionHigh,
		NeighborhoodRating: 8.8,
		SchoolRating:       8.2,
		CrimeIndex:         32,
		AvgPricePerSqft:    335,
	},
	"charlotte": {
		AppreciationRate:   6.5,
		MarketHeat:         models.HeatWarm,
		CompetitionLevel:   models.CompetitionMedium,
		NeighborhoodRating: 8.0,
		SchoolRating:       7.8,
		CrimeIndex:         38,
		AvgPricePerSqft:    195,
	},
}

// MarketIndex resolves city names to market profiles.
type MarketIndex struct {
	profiles    map[string]models.MarketProfile
	defaultCity string
}

// NewMarketIndex returns an index backed by the built-in profiles.
func NewMarketIndex() *MarketIndex {
	profiles := make(map[string]models.MarketProfile, len(builtinProfiles))
	for city, profile := range builtinProfiles {
		profiles[city] = profile
	}
	return &MarketIndex{
		profiles:    profiles,
		defaultCity: DefaultCity,
	}
}

// Lookup returns the market profile for a city. Unknown cities resolve to
// the default city's profile; found reports whether the city itself matched.
func (i *MarketIndex) Lookup(city string) (profile models.MarketProfile, found bool) {
	if profile, ok := i.profiles[NormalizeCity(city)]; ok {
		return profile, true
	}
	return i.profiles[i.defaultCity], false
}

// Cities returns the normalized names of all indexed markets.
func (i *MarketIndex) Cities() []string {
	cities := make([]string, 0, len(i.profiles))
	for city := range i.profiles {
		cities = append(cities, city)
	}
	return cities
}

// NormalizeCity converts a city name to its index key form.
func NormalizeCity(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "'", "")
	return strings.Join(strings.Fields(normalized), "-")
}

package database

import (
	"gorm.io/gorm"

	"propscout/server/internal/models"
)

// SampleProperties returns a set of realistic listings covering the built-in
// markets, used to seed an empty database for demos and tests.
func SampleProperties() []*models.Property {
	return []*models.Property{
		{
			ID:                "PROP-001",
			Address:           "1234 Maple Street",
			City:              "Austin",
			State:             "TX",
			Price:             425000,
			Bedrooms:          3,
			Bathrooms:         2.0,
			Sqft:              1850,
			YearBuilt:         2015,
			PropertyType:      models.SingleFamily,
			EstimatedRent:     2400,
			PropertyTaxAnnual: 8500,
			InsuranceAnnual:   1800,
		},
		{
			ID:                "PROP-002",
			Address:           "567 Ocean View Blvd",
			City:              "San Diego",
			State:             "CA",
			Price:             785000,
			Bedrooms:          2,
			Bathrooms:         2.0,
			Sqft:              1200,
			YearBuilt:         2018,
			PropertyType:      models.Condo,
			EstimatedRent:     3200,
			HOAFees:           450,
			PropertyTaxAnnual: 9420,
			InsuranceAnnual:   2100,
		},
		{
			ID:                "PROP-003",
			Address:           "890 Industrial Ave",
			City:              "Phoenix",
			State:             "AZ",
			Price:             320000,
			Bedrooms:          4,
			Bathrooms:         2.5,
			Sqft:              2100,
			YearBuilt:         2008,
			PropertyType:      models.SingleFamily,
			EstimatedRent:     2100,
			PropertyTaxAnnual: 3840,
			InsuranceAnnual:   1500,
		},
		{
			ID:                "PROP-004",
			Address:           "2345 Downtown Plaza",
			City:              "Nashville",
			State:             "TN",
			Price:             550000,
			Bedrooms:          3,
			Bathrooms:         3.0,
			Sqft:              1650,
			YearBuilt:         2020,
			PropertyType:      models.MultiFamily,
			EstimatedRent:     3800,
			HOAFees:           200,
			PropertyTaxAnnual: 5500,
			InsuranceAnnual:   2200,
		},
		{
			ID:                "PROP-005",
			Address:           "678 Suburban Lane",
			City:              "Charlotte",
			State:             "NC",
			Price:             380000,
			Bedrooms:          3,
			Bathrooms:         2.5,
			Sqft:              1900,
			YearBuilt:         2012,
			PropertyType:      models.SingleFamily,
			EstimatedRent:     2200,
			HOAFees:           100,
			PropertyTaxAnnual: 4560,
			InsuranceAnnual:   1600,
		},
	}
}

// SeedSampleProperties inserts the sample listings when the store is empty.
func (d *Database) SeedSampleProperties() error {
	count, err := d.CountProperties()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return d.Transaction(func(tx *gorm.DB) error {
		return UpsertProperties(tx, SampleProperties())
	})
}

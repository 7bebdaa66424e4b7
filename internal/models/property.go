package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// PropertyType is the listing category of a property.
type PropertyType string

const (
	SingleFamily PropertyType = "Single Family"
	Condo        PropertyType = "Condo"
	MultiFamily  PropertyType = "Multi-Family"
)

// Property is a validated listing record. It is the immutable input to the
// analysis pipeline; the calculators never modify it.
type Property struct {
	ID                string       `json:"property_id" gorm:"primaryKey;column:property_id" validate:"required"`
	Address           string       `json:"address" validate:"required"`
	City              string       `json:"city" validate:"required"`
	State             string       `json:"state"`
	Price             int          `json:"price" validate:"required,gt=0"`
	Bedrooms          int          `json:"bedrooms" validate:"gte=0"`
	Bathrooms         float64      `json:"bathrooms" validate:"gte=0"`
	Sqft              int          `json:"sqft" validate:"required,gt=0"`
	YearBuilt         int          `json:"year_built" validate:"required,gt=1800"`
	PropertyType      PropertyType `json:"property_type" validate:"required,oneof='Single Family' 'Condo' 'Multi-Family'"`
	EstimatedRent     int          `json:"estimated_rent" validate:"gte=0"`
	HOAFees           int          `json:"hoa_fees" validate:"gte=0"`
	PropertyTaxAnnual int          `json:"property_tax_annual" validate:"gte=0"`
	InsuranceAnnual   int          `json:"insurance_annual" validate:"gte=0"`
}

var validate = validator.New()

// Validate rejects records the pipeline cannot score safely. Price and
// square footage must be positive since both are divisors downstream.
func (p *Property) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid property %q: %w", p.ID, err)
	}
	return nil
}

package services

import (
	"errors"
	"fmt"

	"crowddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PriceRule holds the tariff used for every new order.
//
//	price = Base + Distance(km)·PerKm + Weight(kg)·PerKg
type PriceRule struct {
	Base  decimal.Decimal `json:"basePrice" swaggertype:"string"`
	PerKm decimal.Decimal `json:"pricePerKm" swaggertype:"string"`
	PerKg decimal.Decimal `json:"pricePerKg" swaggertype:"string"`
}

// DefaultPriceRule is the tariff applied when no rule is configured: 5 + 2/km + 1/kg.
func DefaultPriceRule() PriceRule {
	return PriceRule{
		Base:  decimal.NewFromInt(5),
		PerKm: decimal.NewFromInt(2),
		PerKg: decimal.NewFromInt(1),
	}
}

// Validate checks that no component of the rule is negative.
func (r PriceRule) Validate() error {
	var problems []error
	if r.Base.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("basePrice", fmt.Errorf("%s is negative", r.Base)))
	}
	if r.PerKm.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("pricePerKm", fmt.Errorf("%s is negative", r.PerKm)))
	}
	if r.PerKg.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("pricePerKg", fmt.Errorf("%s is negative", r.PerKg)))
	}
	return errors.Join(problems...)
}

// PriceCalculator is a domain service computing delivery fees. Prices are never
// taken from clients; the calculator is the only source.
//
// Example usage:
//
//	calc, _ := services.NewPriceCalculator(services.DefaultPriceRule())
//	price, err := calc.Calculate(3, 2) // 5 + 3·2 + 2·1 = 13.00
type PriceCalculator struct {
	rule PriceRule
}

// NewPriceCalculator creates a calculator for a validated rule.
func NewPriceCalculator(rule PriceRule) (PriceCalculator, error) {
	if err := rule.Validate(); err != nil {
		return PriceCalculator{}, err
	}
	return PriceCalculator{rule: rule}, nil
}

// Rule returns the tariff in effect.
func (c PriceCalculator) Rule() PriceRule {
	return c.rule
}

// Calculate returns the fee for distanceKm and weightKg, rounded half away from zero to cents.
//
// Returns:
//   - decimal.Decimal: the fee
//   - error: ValueIsInvalidError when distance is negative or weight is not positive
func (c PriceCalculator) Calculate(distanceKm, weightKg float64) (decimal.Decimal, error) {
	var problems []error
	if distanceKm < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%g is negative", distanceKm)))
	}
	if weightKg <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%g is not greater than 0", weightKg)))
	}
	if err := errors.Join(problems...); err != nil {
		return decimal.Zero, err
	}

	price := c.rule.Base.
		Add(c.rule.PerKm.Mul(decimal.NewFromFloat(distanceKm))).
		Add(c.rule.PerKg.Mul(decimal.NewFromFloat(weightKg)))

	return price.Round(2), nil
}

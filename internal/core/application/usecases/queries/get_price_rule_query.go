package queries

import (
	"crowddelivery/internal/core/domain/services"
)

// GetPriceRuleQueryHandler exposes the tariff used to price new orders.
type GetPriceRuleQueryHandler struct {
	calculator services.PriceCalculator
}

func NewGetPriceRuleQueryHandler(calculator services.PriceCalculator) GetPriceRuleQueryHandler {
	return GetPriceRuleQueryHandler{calculator: calculator}
}

func (h GetPriceRuleQueryHandler) Handle() services.PriceRule {
	return h.calculator.Rule()
}

package calculator

import (
	"immoinvest/server/config"
	"immoinvest/server/internal/models"
)

// CalculateAfA returns the yearly depreciation of the building share of the price.
// Unknown AfA types depreciate at 0%; they are rejected before reaching the engine.
func CalculateAfA(purchasePrice, buildingSharePercent float64, afaType models.AfAType) float64 {
	rate, _ := config.AfARate(afaType)
	return purchasePrice * buildingSharePercent / 100 * rate / 100
}

// CalculateTax derives the yearly tax effect of the rental. averageAnnualInterest is
// the deductible interest. A taxable loss gives a positive (beneficial) TaxEffect.
func CalculateTax(input models.PropertyInput, averageAnnualInterest float64) models.TaxResult {
	afa := CalculateAfA(input.PurchasePrice, input.BuildingSharePercent, input.AfAType)
	deductibleCosts := (input.NonRecoverableCosts + input.MaintenanceReserve) * 12
	totalDeductions := afa + averageAnnualInterest + deductibleCosts
	taxable := input.ColdRentActual*12 - totalDeductions
	taxEffect := -(taxable * input.PersonalTaxRate / 100)

	return models.TaxResult{
		AfAAmount:           afa,
		DeductibleInterest:  averageAnnualInterest,
		DeductibleCosts:     deductibleCosts,
		TotalDeductions:     totalDeductions,
		TaxableRentalIncome: taxable,
		TaxEffect:           taxEffect,
		MonthlyTaxEffect:    taxEffect / 12,
	}
}

// EffectiveYieldAfterTax reduces a gross yield by the personal tax rate.
func EffectiveYieldAfterTax(grossYieldPercent, taxRatePercent float64) float64 {
	return grossYieldPercent * (1 - taxRatePercent/100)
}

package calculator

import (
	"math"

	"immoinvest/server/internal/models"
)

// SellingCostRate is the share of the sale price lost to broker and notary on exit.
const SellingCostRate = 0.06

type exitBand struct {
	minAnnualized  float64
	recommendation string
}

var exitBands = []exitBand{
	{8, "Strong result: selling now realizes an attractive annualized return."},
	{4, "Solid result: a sale is reasonable; holding longer may still increase the return."},
	{0, "Weak result: the annualized return is low; consider holding the property."},
}

const (
	exitLossRecommendation        = "Selling now realizes a loss; holding the property is advisable."
	exitSpeculationRecommendation = "The gain is subject to speculation tax; holding until the ten-year period ends avoids it."
)

// EvaluateExitStrategy computes the result of selling at the current value.
// Speculation tax applies only to gains and only when flagged by the caller.
func EvaluateExitStrategy(input models.ExitStrategyInput) models.ExitStrategyResult {
	grossProfit := input.CurrentValue - input.PurchasePrice
	sellingCosts := input.CurrentValue * SellingCostRate

	var speculationTax float64
	if input.SpeculationTaxApplies && grossProfit > 0 {
		speculationTax = grossProfit * input.PersonalTaxRate / 100
	}

	netProfit := grossProfit - sellingCosts - speculationTax
	totalReturn := netProfit + input.CumulativeCashflow
	annualized := annualizedReturn(input.PurchasePrice, totalReturn, input.HoldingYears)

	return models.ExitStrategyResult{
		GrossProfit:      grossProfit,
		SellingCosts:     sellingCosts,
		SpeculationTax:   speculationTax,
		NetProfit:        netProfit,
		TotalReturn:      totalReturn,
		AnnualizedReturn: annualized,
		Recommendation:   exitRecommendation(annualized, speculationTax),
	}
}

// annualizedReturn is the compound yearly return in percent. A total loss of the
// purchase price or more is reported as -100.
func annualizedReturn(purchasePrice, totalReturn, holdingYears float64) float64 {
	if holdingYears <= 0 || purchasePrice <= 0 {
		return 0
	}
	growth := (purchasePrice + totalReturn) / purchasePrice
	if growth <= 0 {
		return -100
	}
	return (math.Pow(growth, 1/holdingYears) - 1) * 100
}

func exitRecommendation(annualized, speculationTax float64) string {
	if speculationTax > 0 {
		return exitSpeculationRecommendation
	}
	for _, band := range exitBands {
		if annualized >= band.minAnnualized {
			return band.recommendation
		}
	}
	return exitLossRecommendation
}

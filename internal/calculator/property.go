package calculator

import "immoinvest/server/internal/models"

// CalculatePropertyKPIs runs the full pipeline for one property: side costs,
// investment volume, financing and schedule, tax, cashflow, yields and the
// net worth projection. It never fails.
func CalculatePropertyKPIs(input models.PropertyInput) models.PropertyOutput {
	sideCosts := CalculateSideCosts(
		input.PurchasePrice,
		input.BrokerFeePercent,
		input.NotaryFeePercent,
		input.TransferTaxPercent,
		input.RenovationCost,
	)
	volume := CalculateInvestmentVolume(input.PurchasePrice, sideCosts)

	loanAmount := volume.TotalInvestment - input.Equity
	financing := CalculateFinancing(loanAmount, input.InterestRate, input.RepaymentRate, input.FixedInterestPeriod)
	schedule := GenerateAmortizationSchedule(loanAmount, input.InterestRate, input.RepaymentRate, input.FixedInterestPeriod)
	averageInterest := AverageAnnualInterest(schedule)

	tax := CalculateTax(input, averageInterest)
	cashflow := CalculateCashflow(input, financing.AnnualPayment, tax.TaxEffect)
	yields := CalculateYields(input.PurchasePrice, volume.TotalInvestment, input.Equity, cashflow)
	projection := CalculateCumulativeCashflow(input.PurchasePrice, schedule, cashflow.CashflowAfterTax, DefaultAppreciationRate)

	return models.PropertyOutput{
		SideCosts:             sideCosts,
		InvestmentVolume:      volume,
		Financing:             financing,
		AmortizationSchedule:  schedule,
		AverageAnnualInterest: averageInterest,
		Tax:                   tax,
		Cashflow:              cashflow,
		Yields:                yields,
		CumulativeCashflow:    projection,
	}
}

// CompareScenarios evaluates every input and reports the index of the scenario with
// the highest cashflow after tax (-1 when inputs is empty). Ties keep the first.
func CompareScenarios(inputs []models.PropertyInput) models.ScenarioComparison {
	comparison := models.ScenarioComparison{
		Outputs:   make([]models.PropertyOutput, 0, len(inputs)),
		BestIndex: -1,
	}

	for i, input := range inputs {
		output := CalculatePropertyKPIs(input)
		comparison.Outputs = append(comparison.Outputs, output)

		if comparison.BestIndex < 0 ||
			output.Cashflow.CashflowAfterTax > comparison.Outputs[comparison.BestIndex].Cashflow.CashflowAfterTax {
			comparison.BestIndex = i
		}
	}

	return comparison
}

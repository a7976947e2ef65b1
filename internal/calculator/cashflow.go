package calculator

import "immoinvest/server/internal/models"

// DefaultAppreciationRate is the yearly property value growth assumed by the engine.
const DefaultAppreciationRate = 1.5

// CalculateCashflow derives yearly and monthly cashflow before and after tax.
func CalculateCashflow(input models.PropertyInput, annualDebtService, taxEffect float64) models.CashflowResult {
	gross := input.ColdRentActual * 12
	vacancy := gross * input.VacancyRiskPercent / 100
	net := gross - vacancy
	operating := (input.NonRecoverableCosts + input.MaintenanceReserve) * 12
	beforeTax := net - operating - annualDebtService
	afterTax := beforeTax + taxEffect

	return models.CashflowResult{
		GrossRentalIncome:        gross,
		VacancyDeduction:         vacancy,
		NetRentalIncome:          net,
		OperatingCosts:           operating,
		AnnualDebtService:        annualDebtService,
		CashflowBeforeTax:        beforeTax,
		CashflowAfterTax:         afterTax,
		MonthlyCashflowBeforeTax: beforeTax / 12,
		MonthlyCashflowAfterTax:  afterTax / 12,
	}
}

// CalculateYields returns the yield ratios. Every ratio is 0 when its denominator is 0.
func CalculateYields(purchasePrice, totalInvestment, equity float64, cashflow models.CashflowResult) models.YieldMetrics {
	netYield := percentOf(cashflow.NetRentalIncome-cashflow.OperatingCosts, totalInvestment)

	return models.YieldMetrics{
		GrossRentalYield: percentOf(cashflow.GrossRentalIncome, purchasePrice),
		NetRentalYield:   netYield,
		ReturnOnEquity:   percentOf(cashflow.CashflowAfterTax, equity),
		CashflowYield:    percentOf(cashflow.CashflowAfterTax, totalInvestment),
		ObjectYield:      netYield,
	}
}

// CalculateCumulativeCashflow projects property value, debt and net worth for each
// year of the schedule. The property value compounds from the purchase price.
func CalculateCumulativeCashflow(purchasePrice float64, schedule []models.AmortizationYear, annualCashflow, appreciationRate float64) []models.CumulativeCashflowPoint {
	points := make([]models.CumulativeCashflowPoint, 0, len(schedule))

	value := purchasePrice
	var cumulative float64
	for _, year := range schedule {
		value *= 1 + appreciationRate/100
		cumulative += annualCashflow

		points = append(points, models.CumulativeCashflowPoint{
			Year:               year.Year,
			CumulativeCashflow: cumulative,
			PropertyValue:      value,
			RemainingDebt:      year.EndingBalance,
			NetWorth:           value - year.EndingBalance + cumulative,
		})
	}

	return points
}

package export

import (
	"encoding/json"
	"fmt"
	"io"

	"immoinvest/server/internal/models"
)

// RoundOutput returns a copy of output with every amount and percentage rounded to
// two decimals. Year numbers are left as they are.
func RoundOutput(output models.PropertyOutput) models.PropertyOutput {
	sc := output.SideCosts
	rounded := models.PropertyOutput{
		SideCosts: models.SideCosts{
			BrokerFee:             round(sc.BrokerFee),
			NotaryFee:             round(sc.NotaryFee),
			TransferTax:           round(sc.TransferTax),
			RenovationCost:        round(sc.RenovationCost),
			TotalSideCosts:        round(sc.TotalSideCosts),
			TotalSideCostsPercent: round(sc.TotalSideCostsPercent),
		},
		InvestmentVolume: models.InvestmentVolume{
			PurchasePrice:   round(output.InvestmentVolume.PurchasePrice),
			TotalSideCosts:  round(output.InvestmentVolume.TotalSideCosts),
			TotalInvestment: round(output.InvestmentVolume.TotalInvestment),
		},
		Financing: models.FinancingResult{
			LoanAmount:     round(output.Financing.LoanAmount),
			MonthlyPayment: round(output.Financing.MonthlyPayment),
			AnnualPayment:  round(output.Financing.AnnualPayment),
			TotalInterest:  round(output.Financing.TotalInterest),
			TotalCost:      round(output.Financing.TotalCost),
		},
		AmortizationSchedule:  make([]models.AmortizationYear, 0, len(output.AmortizationSchedule)),
		AverageAnnualInterest: round(output.AverageAnnualInterest),
		Tax: models.TaxResult{
			AfAAmount:           round(output.Tax.AfAAmount),
			DeductibleInterest:  round(output.Tax.DeductibleInterest),
			DeductibleCosts:     round(output.Tax.DeductibleCosts),
			TotalDeductions:     round(output.Tax.TotalDeductions),
			TaxableRentalIncome: round(output.Tax.TaxableRentalIncome),
			TaxEffect:           round(output.Tax.TaxEffect),
			MonthlyTaxEffect:    round(output.Tax.MonthlyTaxEffect),
		},
		Cashflow: models.CashflowResult{
			GrossRentalIncome:        round(output.Cashflow.GrossRentalIncome),
			VacancyDeduction:         round(output.Cashflow.VacancyDeduction),
			NetRentalIncome:          round(output.Cashflow.NetRentalIncome),
			OperatingCosts:           round(output.Cashflow.OperatingCosts),
			AnnualDebtService:        round(output.Cashflow.AnnualDebtService),
			CashflowBeforeTax:        round(output.Cashflow.CashflowBeforeTax),
			CashflowAfterTax:         round(output.Cashflow.CashflowAfterTax),
			MonthlyCashflowBeforeTax: round(output.Cashflow.MonthlyCashflowBeforeTax),
			MonthlyCashflowAfterTax:  round(output.Cashflow.MonthlyCashflowAfterTax),
		},
		Yields: models.YieldMetrics{
			GrossRentalYield: round(output.Yields.GrossRentalYield),
			NetRentalYield:   round(output.Yields.NetRentalYield),
			ReturnOnEquity:   round(output.Yields.ReturnOnEquity),
			CashflowYield:    round(output.Yields.CashflowYield),
			ObjectYield:      round(output.Yields.ObjectYield),
		},
		CumulativeCashflow: make([]models.CumulativeCashflowPoint, 0, len(output.CumulativeCashflow)),
	}

	for _, y := range output.AmortizationSchedule {
		rounded.AmortizationSchedule = append(rounded.AmortizationSchedule, models.AmortizationYear{
			Year:                y.Year,
			StartingBalance:     round(y.StartingBalance),
			InterestPayment:     round(y.InterestPayment),
			PrincipalPayment:    round(y.PrincipalPayment),
			EndingBalance:       round(y.EndingBalance),
			CumulativeInterest:  round(y.CumulativeInterest),
			CumulativePrincipal: round(y.CumulativePrincipal),
		})
	}
	for _, c := range output.CumulativeCashflow {
		rounded.CumulativeCashflow = append(rounded.CumulativeCashflow, models.CumulativeCashflowPoint{
			Year:               c.Year,
			CumulativeCashflow: round(c.CumulativeCashflow),
			PropertyValue:      round(c.PropertyValue),
			RemainingDebt:      round(c.RemainingDebt),
			NetWorth:           round(c.NetWorth),
		})
	}

	return rounded
}

// RoundPortfolio returns a copy of p with a rounded output.
func RoundPortfolio(p models.Portfolio) models.Portfolio {
	if p.Output != nil {
		rounded := RoundOutput(*p.Output)
		p.Output = &rounded
	}
	return p
}

// WritePortfoliosJSON writes the portfolios as an indented JSON array with rounded outputs.
func WritePortfoliosJSON(w io.Writer, portfolios []models.Portfolio) error {
	rounded := make([]models.Portfolio, 0, len(portfolios))
	for _, p := range portfolios {
		rounded = append(rounded, RoundPortfolio(p))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rounded); err != nil {
		return fmt.Errorf("failed to encode portfolios: %w", err)
	}
	return nil
}

// WritePortfolioJSON writes a single portfolio as indented JSON with a rounded output.
func WritePortfolioJSON(w io.Writer, p models.Portfolio) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(RoundPortfolio(p)); err != nil {
		return fmt.Errorf("failed to encode portfolio: %w", err)
	}
	return nil
}

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"immoinvest/server/internal/models"
)

var summaryHeader = []string{
	"id", "name", "address", "postal_code", "created_at", "updated_at",
	"purchase_price", "total_investment", "loan_amount", "monthly_payment",
	"cashflow_before_tax", "cashflow_after_tax", "monthly_cashflow_after_tax",
	"gross_rental_yield", "net_rental_yield", "return_on_equity",
}

// WritePortfoliosCSV writes one summary row per portfolio. Portfolios without an
// output leave the metric columns empty.
func WritePortfoliosCSV(w io.Writer, portfolios []models.Portfolio) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, p := range portfolios {
		row := []string{
			p.ID, p.Name, p.Address, p.PostalCode,
			p.CreatedAt.UTC().Format(time.RFC3339), p.UpdatedAt.UTC().Format(time.RFC3339),
			money(p.Input.PurchasePrice),
		}
		if o := p.Output; o != nil {
			row = append(row,
				money(o.InvestmentVolume.TotalInvestment),
				money(o.Financing.LoanAmount),
				money(o.Financing.MonthlyPayment),
				money(o.Cashflow.CashflowBeforeTax),
				money(o.Cashflow.CashflowAfterTax),
				money(o.Cashflow.MonthlyCashflowAfterTax),
				money(o.Yields.GrossRentalYield),
				money(o.Yields.NetRentalYield),
				money(o.Yields.ReturnOnEquity),
			)
		} else {
			row = append(row, make([]string, len(summaryHeader)-len(row))...)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePortfolioCSV writes a single portfolio as section,metric,value rows followed
// by its amortization schedule.
func WritePortfolioCSV(w io.Writer, p models.Portfolio) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"section", "metric", "value"},
		{"portfolio", "id", p.ID},
		{"portfolio", "name", p.Name},
		{"portfolio", "address", p.Address},
		{"portfolio", "postal_code", p.PostalCode},
		{"input", "purchase_price", money(p.Input.PurchasePrice)},
		{"input", "equity", money(p.Input.Equity)},
		{"input", "cold_rent_actual", money(p.Input.ColdRentActual)},
		{"input", "afa_type", string(p.Input.AfAType)},
	}
	if p.Output != nil {
		rows = append(rows, outputRows(*p.Output)...)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	if p.Output == nil || len(p.Output.AmortizationSchedule) == 0 {
		return nil
	}

	schedule := [][]string{
		{},
		{"year", "starting_balance", "interest_payment", "principal_payment", "ending_balance", "cumulative_interest", "cumulative_principal"},
	}
	for _, y := range p.Output.AmortizationSchedule {
		schedule = append(schedule, []string{
			strconv.Itoa(y.Year),
			money(y.StartingBalance),
			money(y.InterestPayment),
			money(y.PrincipalPayment),
			money(y.EndingBalance),
			money(y.CumulativeInterest),
			money(y.CumulativePrincipal),
		})
	}
	if err := cw.WriteAll(schedule); err != nil {
		return fmt.Errorf("failed to write amortization csv: %w", err)
	}
	return nil
}

func outputRows(o models.PropertyOutput) [][]string {
	return [][]string{
		{"side_costs", "broker_fee", money(o.SideCosts.BrokerFee)},
		{"side_costs", "notary_fee", money(o.SideCosts.NotaryFee)},
		{"side_costs", "transfer_tax", money(o.SideCosts.TransferTax)},
		{"side_costs", "renovation_cost", money(o.SideCosts.RenovationCost)},
		{"side_costs", "total", money(o.SideCosts.TotalSideCosts)},
		{"investment", "total_investment", money(o.InvestmentVolume.TotalInvestment)},
		{"financing", "loan_amount", money(o.Financing.LoanAmount)},
		{"financing", "monthly_payment", money(o.Financing.MonthlyPayment)},
		{"financing", "annual_payment", money(o.Financing.AnnualPayment)},
		{"financing", "total_interest", money(o.Financing.TotalInterest)},
		{"financing", "total_cost", money(o.Financing.TotalCost)},
		{"tax", "afa_amount", money(o.Tax.AfAAmount)},
		{"tax", "taxable_rental_income", money(o.Tax.TaxableRentalIncome)},
		{"tax", "tax_effect", money(o.Tax.TaxEffect)},
		{"cashflow", "net_rental_income", money(o.Cashflow.NetRentalIncome)},
		{"cashflow", "operating_costs", money(o.Cashflow.OperatingCosts)},
		{"cashflow", "before_tax", money(o.Cashflow.CashflowBeforeTax)},
		{"cashflow", "after_tax", money(o.Cashflow.CashflowAfterTax)},
		{"cashflow", "monthly_after_tax", money(o.Cashflow.MonthlyCashflowAfterTax)},
		{"yields", "gross_rental_yield", money(o.Yields.GrossRentalYield)},
		{"yields", "net_rental_yield", money(o.Yields.NetRentalYield)},
		{"yields", "return_on_equity", money(o.Yields.ReturnOnEquity)},
		{"yields", "cashflow_yield", money(o.Yields.CashflowYield)},
	}
}

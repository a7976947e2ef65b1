package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immoinvest/server/config"
	"immoinvest/server/internal/models"
)

func sampleInput() models.PropertyInput {
	return models.PropertyInput{
		PurchasePrice:        300000,
		BrokerFeePercent:     3.57,
		NotaryFeePercent:     2.0,
		TransferTaxPercent:   6.0,
		Equity:               67500,
		InterestRate:         3.5,
		RepaymentRate:        2.0,
		FixedInterestPeriod:  15,
		ColdRentActual:       1000,
		ColdRentTarget:       1100,
		NonRecoverableCosts:  100,
		MaintenanceReserve:   50,
		VacancyRiskPercent:   2,
		PersonalTaxRate:      42,
		BuildingSharePercent: 75,
		AfAType:              models.AfAAltbauAb1925,
	}
}

func TestCalculateSideCosts(t *testing.T) {
	costs := CalculateSideCosts(300000, 3.57, 2.0, 6.0, 10000)

	assert.InDelta(t, 10710, costs.BrokerFee, 1e-6)
	assert.InDelta(t, 6000, costs.NotaryFee, 1e-6)
	assert.InDelta(t, 18000, costs.TransferTax, 1e-6)
	assert.Equal(t, 10000.0, costs.RenovationCost)
	assert.InDelta(t, 44710, costs.TotalSideCosts, 1e-6)
	assert.InDelta(t, 44710.0/300000*100, costs.TotalSideCostsPercent, 1e-9)

	volume := CalculateInvestmentVolume(300000, costs)
	assert.InDelta(t, 344710, volume.TotalInvestment, 1e-6)
}

func TestCalculateSideCosts_ZeroPrice(t *testing.T) {
	costs := CalculateSideCosts(0, 3.57, 2.0, 6.0, 5000)

	assert.Equal(t, 5000.0, costs.TotalSideCosts)
	assert.Zero(t, costs.TotalSideCostsPercent)
}

func TestSideCostsForState(t *testing.T) {
	tests := []struct {
		name        string
		state       string
		withBroker  bool
		wantTotal   float64
		wantName    string
		wantErr     error
		wantPercent float64
	}{
		{
			name:        "Bayern with broker",
			state:       "BAYERN",
			withBroker:  true,
			wantTotal:   300000 * (3.57 + 2.0 + 3.5) / 100,
			wantName:    "Bayern",
			wantPercent: 3.5,
		},
		{
			name:        "Berlin without broker",
			state:       "BERLIN",
			withBroker:  false,
			wantTotal:   300000 * (2.0 + 6.0) / 100,
			wantName:    "Berlin",
			wantPercent: 6.0,
		},
		{
			name:    "Unknown state",
			state:   "ATLANTIS",
			wantErr: config.ErrUnknownFederalState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SideCostsForState(300000, tt.state, tt.withBroker, 3.57, 2.0)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantTotal, result.TotalSideCosts, 1e-6)
			assert.Equal(t, tt.wantName, result.FederalState)
			assert.Equal(t, tt.wantPercent, result.TransferTaxPercent)
			if !tt.withBroker {
				assert.Zero(t, result.BrokerFee)
			}
		})
	}
}

func TestCalculateAfA(t *testing.T) {
	tests := []struct {
		name    string
		afaType models.AfAType
		want    float64
	}{
		{name: "Altbau before 1925", afaType: models.AfAAltbauVor1925, want: 5625},
		{name: "Altbau from 1925", afaType: models.AfAAltbauAb1925, want: 4500},
		{name: "Neubau from 2023", afaType: models.AfANeubauAb2023, want: 6750},
		{name: "Listed building", afaType: models.AfADenkmalschutz, want: 20250},
		{name: "Unknown type", afaType: "HOLZHAUS", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateAfA(300000, 75, tt.afaType), 1e-6)
		})
	}
}

func TestCalculateTax(t *testing.T) {
	input := models.PropertyInput{
		PurchasePrice:        300000,
		BuildingSharePercent: 75,
		AfAType:              models.AfAAltbauVor1925,
		NonRecoverableCosts:  100,
		MaintenanceReserve:   50,
		PersonalTaxRate:      42,
	}

	tests := []struct {
		name          string
		rent          float64
		wantTaxable   float64
		wantTaxEffect float64
	}{
		{name: "Taxable loss lowers the tax bill", rent: 1000, wantTaxable: -3425, wantTaxEffect: 1438.5},
		{name: "Taxable profit costs tax", rent: 3000, wantTaxable: 20575, wantTaxEffect: -8641.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input.ColdRentActual = tt.rent
			result := CalculateTax(input, 8000)

			assert.InDelta(t, 5625, result.AfAAmount, 1e-6)
			assert.InDelta(t, 1800, result.DeductibleCosts, 1e-6)
			assert.InDelta(t, 8000, result.DeductibleInterest, 1e-6)
			assert.InDelta(t, 15425, result.TotalDeductions, 1e-6)
			assert.InDelta(t, tt.wantTaxable, result.TaxableRentalIncome, 1e-6)
			assert.InDelta(t, tt.wantTaxEffect, result.TaxEffect, 1e-6)
			assert.InDelta(t, tt.wantTaxEffect/12, result.MonthlyTaxEffect, 1e-6)
		})
	}
}

func TestEffectiveYieldAfterTax(t *testing.T) {
	assert.InDelta(t, 2.9, EffectiveYieldAfterTax(5, 42), 1e-9)
	assert.InDelta(t, 5, EffectiveYieldAfterTax(5, 0), 1e-9)
}

func TestCalculateCashflow(t *testing.T) {
	input := models.PropertyInput{
		ColdRentActual:      1000,
		VacancyRiskPercent:  2,
		NonRecoverableCosts: 100,
		MaintenanceReserve:  50,
	}
	result := CalculateCashflow(input, 6000, 1438.5)

	assert.InDelta(t, 12000, result.GrossRentalIncome, 1e-9)
	assert.InDelta(t, 240, result.VacancyDeduction, 1e-9)
	assert.InDelta(t, 11760, result.NetRentalIncome, 1e-9)
	assert.InDelta(t, 1800, result.OperatingCosts, 1e-9)
	assert.Equal(t, 6000.0, result.AnnualDebtService)
	assert.InDelta(t, 3960, result.CashflowBeforeTax, 1e-9)
	assert.InDelta(t, 5398.5, result.CashflowAfterTax, 1e-9)
	assert.InDelta(t, 330, result.MonthlyCashflowBeforeTax, 1e-9)
}

func TestCalculateYields(t *testing.T) {
	cashflow := models.CashflowResult{
		GrossRentalIncome: 12000,
		NetRentalIncome:   11760,
		OperatingCosts:    1800,
		CashflowAfterTax:  5000,
	}

	yields := CalculateYields(300000, 334710, 50000, cashflow)
	assert.InDelta(t, 4, yields.GrossRentalYield, 1e-9)
	assert.InDelta(t, 9960/334710.0*100, yields.NetRentalYield, 1e-9)
	assert.InDelta(t, 10, yields.ReturnOnEquity, 1e-9)
	assert.InDelta(t, 5000/334710.0*100, yields.CashflowYield, 1e-9)
	assert.Equal(t, yields.NetRentalYield, yields.ObjectYield)

	zero := CalculateYields(0, 0, 0, cashflow)
	assert.Zero(t, zero.GrossRentalYield)
	assert.Zero(t, zero.NetRentalYield)
	assert.Zero(t, zero.ReturnOnEquity)
	assert.Zero(t, zero.CashflowYield)
	assert.Zero(t, zero.ObjectYield)
}

func TestCalculateCumulativeCashflow(t *testing.T) {
	schedule := GenerateAmortizationSchedule(10000, 5, 50, 10)
	points := CalculateCumulativeCashflow(100000, schedule, 1000, 10)
	require.Len(t, points, 2)

	assert.Equal(t, 1, points[0].Year)
	assert.InDelta(t, 110000, points[0].PropertyValue, 1e-6)
	assert.InDelta(t, 5000, points[0].RemainingDebt, 1e-9)
	assert.InDelta(t, 1000, points[0].CumulativeCashflow, 1e-9)
	assert.InDelta(t, 106000, points[0].NetWorth, 1e-6)

	assert.Equal(t, 2, points[1].Year)
	assert.InDelta(t, 121000, points[1].PropertyValue, 1e-6)
	assert.InDelta(t, 2000, points[1].CumulativeCashflow, 1e-9)
	assert.InDelta(t, 123000, points[1].NetWorth, 1e-6)

	assert.Empty(t, CalculateCumulativeCashflow(100000, nil, 1000, 10))
}

func TestCalculatePropertyKPIs(t *testing.T) {
	output := CalculatePropertyKPIs(sampleInput())

	assert.InDelta(t, 34710, output.SideCosts.TotalSideCosts, 1e-6)
	assert.InDelta(t, 334710, output.InvestmentVolume.TotalInvestment, 1e-6)
	assert.InDelta(t, 267210, output.Financing.LoanAmount, 1e-6)
	assert.InDelta(t, 14696.55, output.Financing.AnnualPayment, moneyDelta)
	require.Len(t, output.AmortizationSchedule, 15)
	require.Len(t, output.CumulativeCashflow, 15)

	assert.InDelta(t, AverageAnnualInterest(output.AmortizationSchedule), output.AverageAnnualInterest, 1e-9)
	assert.InDelta(t, 4500, output.Tax.AfAAmount, 1e-6)
	assert.InDelta(t, output.Financing.AnnualPayment, output.Cashflow.AnnualDebtService, 1e-9)
	assert.InDelta(t, output.Cashflow.CashflowBeforeTax+output.Tax.TaxEffect, output.Cashflow.CashflowAfterTax, 1e-9)

	for i, point := range output.CumulativeCashflow {
		assert.Equal(t, output.AmortizationSchedule[i].EndingBalance, point.RemainingDebt)
		assert.InDelta(t, output.Cashflow.CashflowAfterTax*float64(i+1), point.CumulativeCashflow, 1e-6)
	}
}

func TestCalculatePropertyKPIs_ZeroInput(t *testing.T) {
	output := CalculatePropertyKPIs(models.PropertyInput{AfAType: models.AfANeubauAb2023})

	assert.Zero(t, output.SideCosts.TotalSideCosts)
	assert.Zero(t, output.InvestmentVolume.TotalInvestment)
	assert.Zero(t, output.Financing.LoanAmount)
	assert.Zero(t, output.Financing.AnnualPayment)
	assert.Empty(t, output.AmortizationSchedule)
	assert.Empty(t, output.CumulativeCashflow)
	assert.Zero(t, output.AverageAnnualInterest)
	assert.InDelta(t, 0, output.Tax.TaxEffect, 1e-12)
	assert.InDelta(t, 0, output.Cashflow.CashflowAfterTax, 1e-12)
	assert.Zero(t, output.Yields.GrossRentalYield)
	assert.Zero(t, output.Yields.NetRentalYield)
	assert.Zero(t, output.Yields.ReturnOnEquity)
	assert.Zero(t, output.Yields.CashflowYield)
}

func TestCalculatePropertyKPIs_FullEquity(t *testing.T) {
	input := sampleInput()
	input.Equity = 500000

	output := CalculatePropertyKPIs(input)
	assert.Zero(t, output.Financing.LoanAmount)
	assert.Zero(t, output.Cashflow.AnnualDebtService)
	assert.Empty(t, output.AmortizationSchedule)
	assert.Empty(t, output.CumulativeCashflow)
}

func TestCalculatePropertyKPIs_Monotonic(t *testing.T) {
	base := CalculatePropertyKPIs(sampleInput())

	higherRate := sampleInput()
	higherRate.InterestRate = 4.5
	assert.Greater(t, CalculatePropertyKPIs(higherRate).Financing.TotalInterest, base.Financing.TotalInterest)

	moreEquity := sampleInput()
	moreEquity.Equity = 100000
	assert.Less(t, CalculatePropertyKPIs(moreEquity).Financing.TotalInterest, base.Financing.TotalInterest)

	higherRent := sampleInput()
	higherRent.ColdRentActual = 1200
	assert.Greater(t, CalculatePropertyKPIs(higherRent).Cashflow.CashflowBeforeTax, base.Cashflow.CashflowBeforeTax)
}

func TestCompareScenarios(t *testing.T) {
	low := sampleInput()
	high := sampleInput()
	high.ColdRentActual = 1400
	tie := high

	tests := []struct {
		name     string
		inputs   []models.PropertyInput
		wantBest int
	}{
		{name: "No scenarios", inputs: nil, wantBest: -1},
		{name: "Single scenario", inputs: []models.PropertyInput{low}, wantBest: 0},
		{name: "Highest cashflow wins", inputs: []models.PropertyInput{low, high}, wantBest: 1},
		{name: "Ties keep the first", inputs: []models.PropertyInput{low, high, tie}, wantBest: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comparison := CompareScenarios(tt.inputs)
			assert.Len(t, comparison.Outputs, len(tt.inputs))
			assert.Equal(t, tt.wantBest, comparison.BestIndex)
		})
	}
}

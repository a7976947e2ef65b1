package calculator

import (
	"math"

	"immoinvest/server/internal/models"
)

// CalculateFinancing computes a fixed-annuity loan over years of the fixed-interest
// period. The annual payment is loanAmount × (interestRate + repaymentRate) / 100 and
// stays constant; the simulation stops early once the balance is paid off.
func CalculateFinancing(loanAmount, interestRate, repaymentRate float64, years int) models.FinancingResult {
	if loanAmount <= 0 {
		return models.FinancingResult{}
	}

	annualPayment := annuity(loanAmount, interestRate, repaymentRate)
	schedule := GenerateAmortizationSchedule(loanAmount, interestRate, repaymentRate, years)

	var totalInterest float64
	for _, year := range schedule {
		totalInterest += year.InterestPayment
	}

	return models.FinancingResult{
		LoanAmount:     loanAmount,
		MonthlyPayment: annualPayment / 12,
		AnnualPayment:  annualPayment,
		TotalInterest:  totalInterest,
		TotalCost:      loanAmount + totalInterest,
	}
}

// MaxScheduleYears bounds the length of an amortization schedule. Loans that never
// amortize would otherwise run for as many years as requested.
const MaxScheduleYears = 100

// GenerateAmortizationSchedule returns one row per year, at most MaxScheduleYears. The
// schedule is shorter than years when the loan is repaid early and empty when
// loanAmount <= 0.
func GenerateAmortizationSchedule(loanAmount, interestRate, repaymentRate float64, years int) []models.AmortizationYear {
	if loanAmount <= 0 {
		return []models.AmortizationYear{}
	}

	years = min(max(years, 0), MaxScheduleYears)
	annualPayment := annuity(loanAmount, interestRate, repaymentRate)
	schedule := make([]models.AmortizationYear, 0, years)

	balance := loanAmount
	var cumulativeInterest, cumulativePrincipal float64

	for year := 1; year <= years; year++ {
		if balance <= 0 {
			break
		}

		interest := balance * interestRate / 100
		principal := math.Min(annualPayment-interest, balance)
		ending := math.Max(0, balance-principal)

		cumulativeInterest += interest
		cumulativePrincipal += principal

		schedule = append(schedule, models.AmortizationYear{
			Year:                year,
			StartingBalance:     balance,
			InterestPayment:     interest,
			PrincipalPayment:    principal,
			EndingBalance:       ending,
			CumulativeInterest:  cumulativeInterest,
			CumulativePrincipal: cumulativePrincipal,
		})
		balance = ending
	}

	return schedule
}

// AverageAnnualInterest is the mean interest payment of a schedule, 0 when empty.
func AverageAnnualInterest(schedule []models.AmortizationYear) float64 {
	if len(schedule) == 0 {
		return 0
	}
	var total float64
	for _, year := range schedule {
		total += year.InterestPayment
	}
	return total / float64(len(schedule))
}

func annuity(loanAmount, interestRate, repaymentRate float64) float64 {
	return loanAmount * (interestRate + repaymentRate) / 100
}

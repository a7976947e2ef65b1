package calculator

import (
	"math"

	"immoinvest/server/internal/models"
)

const maxBreakEvenYears = 50

// ReturnHorizons are the holding periods reported by AnalyzeBreakEven.
var ReturnHorizons = []int{5, 10, 15}

type breakEvenBand struct {
	maxYears       int
	recommendation string
}

var breakEvenBands = []breakEvenBand{
	{10, "Excellent: the investment is recouped within 10 years including appreciation."},
	{20, "Good: the investment is recouped within 20 years including appreciation."},
	{30, "Acceptable: break-even takes a long time; the result depends on the appreciation assumption."},
}

const noBreakEvenRecommendation = "Critical: the investment is not recouped within a reasonable period."

// AnalyzeBreakEven finds the years needed to recoup the total investment from
// cashflow alone and from cashflow plus appreciation net of selling costs.
// models.NeverReached marks a break-even that does not happen.
func AnalyzeBreakEven(input models.BreakEvenInput) models.BreakEvenResult {
	cashflowYears := models.NeverReached
	if input.AnnualCashflow > 0 {
		cashflowYears = int(math.Ceil(input.TotalInvestment / input.AnnualCashflow))
	}

	combinedYears := models.NeverReached
	for year := 1; year <= maxBreakEvenYears; year++ {
		gain := input.AnnualCashflow*float64(year) + netAppreciation(input, year)
		if gain >= input.TotalInvestment {
			combinedYears = year
			break
		}
	}

	returns := make([]models.ReturnAtYear, 0, len(ReturnHorizons))
	for _, year := range ReturnHorizons {
		total := input.AnnualCashflow*float64(year) + netAppreciation(input, year)
		returns = append(returns, models.ReturnAtYear{
			Year:        year,
			TotalReturn: total,
			ROIPercent:  percentOf(total, input.TotalInvestment),
		})
	}

	return models.BreakEvenResult{
		BreakEvenYearsCashflow:         cashflowYears,
		BreakEvenYearsWithAppreciation: combinedYears,
		Returns:                        returns,
		Recommendation:                 breakEvenRecommendation(combinedYears),
	}
}

// netAppreciation is the value gain after year years, less selling costs on the sale price.
func netAppreciation(input models.BreakEvenInput, year int) float64 {
	value := input.PurchasePrice * math.Pow(1+input.AppreciationRate/100, float64(year))
	return value*(1-input.SellingCostsPercent/100) - input.PurchasePrice
}

func breakEvenRecommendation(years int) string {
	for _, band := range breakEvenBands {
		if years <= band.maxYears {
			return band.recommendation
		}
	}
	return noBreakEvenRecommendation
}

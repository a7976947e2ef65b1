package calculator

import "immoinvest/server/internal/models"

type renovationRule struct {
	matches        func(payback, valueROI float64) bool
	recommendation string
}

var renovationRules = []renovationRule{
	{
		func(payback, valueROI float64) bool { return payback <= 5 && valueROI >= 100 },
		"Strongly recommended: fast payback and the value increase exceeds the cost.",
	},
	{
		func(payback, valueROI float64) bool { return payback <= 8 || valueROI >= 80 },
		"Recommended: the renovation pays off through rent or value increase.",
	},
	{
		func(payback, valueROI float64) bool { return payback <= 12 || valueROI >= 50 },
		"Conditionally recommended: worthwhile mainly as part of a long-term strategy.",
	},
}

const renovationNotRecommended = "Not recommended: neither rent nor value increase justify the cost."

// CalculateRenovationROI evaluates a renovation by its rent increase, financing cost
// and expected value increase. A non-positive net benefit never pays back.
func CalculateRenovationROI(input models.RenovationInput) models.RenovationResult {
	annualRentIncrease := input.MonthlyRentIncrease * 12

	var annualInterestCost float64
	if input.FinancedAmount > 0 {
		annualInterestCost = input.FinancedAmount * input.InterestRate / 100
	}
	netBenefit := annualRentIncrease - annualInterestCost

	payback := float64(models.NeverReached)
	if netBenefit > 0 {
		payback = input.Cost / netBenefit
	}
	roi := percentOf(netBenefit, input.Cost)
	valueROI := percentOf(input.ExpectedValueIncrease, input.Cost)

	recommendation := renovationNotRecommended
	for _, rule := range renovationRules {
		if rule.matches(payback, valueROI) {
			recommendation = rule.recommendation
			break
		}
	}

	return models.RenovationResult{
		AnnualRentIncrease: annualRentIncrease,
		AnnualInterestCost: annualInterestCost,
		NetAnnualBenefit:   netBenefit,
		PaybackPeriodYears: payback,
		ROIPercent:         roi,
		ValueIncreaseROI:   valueROI,
		IsRecommended:      payback <= 10 || valueROI >= 100,
		Recommendation:     recommendation,
	}
}

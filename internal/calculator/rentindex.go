package calculator

import (
	"immoinvest/server/config"
	"immoinvest/server/internal/models"
)

// DefaultReferenceYear is used when the caller passes no reference year.
const DefaultReferenceYear = 2025

type ageBracket struct {
	matches func(age int) bool
	factor  float64
}

// Brackets are checked top to bottom and the first match wins. The >80 bracket
// must come before >50.
var ageBrackets = []ageBracket{
	{func(age int) bool { return age < 5 }, 1.15},
	{func(age int) bool { return age < 20 }, 1.05},
	{func(age int) bool { return age > 80 }, 0.85},
	{func(age int) bool { return age > 50 }, 0.92},
}

var conditionFactors = map[models.Condition]float64{
	models.ConditionExcellent: 1.10,
	models.ConditionGood:      1.00,
	models.ConditionAverage:   0.92,
	models.ConditionPoor:      0.80,
}

var equipmentFactors = map[models.Equipment]float64{
	models.EquipmentLuxury: 1.12,
	models.EquipmentNormal: 1.00,
	models.EquipmentSimple: 0.90,
}

type featureAdjustment struct {
	applies func(in models.RentIndexInput) bool
	factor  float64
}

var featureAdjustments = []featureAdjustment{
	{func(in models.RentIndexInput) bool { return in.HasBalcony }, 1.03},
	{func(in models.RentIndexInput) bool { return in.HasElevator && in.Floor > 2 }, 1.02},
	{func(in models.RentIndexInput) bool { return in.Floor == 0 }, 0.97},
	{func(in models.RentIndexInput) bool { return in.Floor > 4 && !in.HasElevator }, 0.95},
}

type potentialBand struct {
	above          float64
	recommendation string
}

var potentialBands = []potentialBand{
	{15, "Significant rent increase potential: the current rent is well below the local market level."},
	{5, "Moderate rent increase potential: a gradual adjustment towards the market rent is possible."},
	{-5, "The current rent is in line with the local market."},
}

const aboveMarketRecommendation = "The current rent is above the local market level; further increases carry vacancy risk."

// CompareRentIndex compares the actual rent with the adjusted market rent of the
// city. referenceYear drives the building-age adjustment; 0 selects DefaultReferenceYear.
func CompareRentIndex(input models.RentIndexInput, referenceYear int) models.RentIndexResult {
	if referenceYear == 0 {
		referenceYear = DefaultReferenceYear
	}
	cityKey, reference := config.GetCityRent(input.City)

	var currentPerSqm float64
	if input.LivingArea != 0 {
		currentPerSqm = input.CurrentRent / input.LivingArea
	}

	marketPerSqm := reference.Average
	age := referenceYear - input.YearBuilt
	for _, bracket := range ageBrackets {
		if bracket.matches(age) {
			marketPerSqm *= bracket.factor
			break
		}
	}
	if factor, ok := conditionFactors[input.Condition]; ok {
		marketPerSqm *= factor
	}
	if factor, ok := equipmentFactors[input.Equipment]; ok {
		marketPerSqm *= factor
	}
	for _, adjustment := range featureAdjustments {
		if adjustment.applies(input) {
			marketPerSqm *= adjustment.factor
		}
	}

	var potential float64
	if currentPerSqm != 0 {
		potential = (marketPerSqm - currentPerSqm) / currentPerSqm * 100
	}

	return models.RentIndexResult{
		City:                 cityKey,
		ReferenceRentPerSqm:  reference.Average,
		MarketRentRange:      models.RentRange{Min: reference.Min, Max: reference.Max},
		CurrentRentPerSqm:    currentPerSqm,
		MarketRentPerSqm:     marketPerSqm,
		AdjustedMarketRent:   marketPerSqm * input.LivingArea,
		RentPotentialPercent: potential,
		Recommendation:       rentRecommendation(potential),
	}
}

func rentRecommendation(potential float64) string {
	for _, band := range potentialBands {
		if potential > band.above {
			return band.recommendation
		}
	}
	return aboveMarketRecommendation
}

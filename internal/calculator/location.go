package calculator

import (
	"math"

	"immoinvest/server/internal/models"
)

const baseLocationScore = 50.0

// factorEffect is the score delta of one factor value, with the strength or
// weakness it contributes to the analysis.
type factorEffect struct {
	delta    float64
	strength string
	weakness string
}

var populationEffects = map[models.PopulationTrend]factorEffect{
	models.PopulationStrongGrowth: {delta: 15, strength: "Strong population growth"},
	models.PopulationGrowth:       {delta: 8, strength: "Growing population"},
	models.PopulationStable:       {delta: 0},
	models.PopulationDecline:      {delta: -10, weakness: "Declining population"},
}

var employmentEffects = map[models.Level]factorEffect{
	models.LevelHigh:   {delta: 15, strength: "High employment rate"},
	models.LevelMedium: {delta: 8},
	models.LevelLow:    {delta: -8, weakness: "Low employment rate"},
}

var crimeEffects = map[models.Level]factorEffect{
	models.LevelLow:    {delta: 10, strength: "Low crime rate"},
	models.LevelMedium: {delta: 0},
	models.LevelHigh:   {delta: -15, weakness: "High crime rate"},
}

var demandEffects = map[models.Level]factorEffect{
	models.LevelVeryHigh: {delta: 15, strength: "Very high rental demand"},
	models.LevelHigh:     {delta: 10, strength: "High rental demand"},
	models.LevelMedium:   {delta: 5},
	models.LevelLow:      {delta: -10, weakness: "Low rental demand"},
}

type scoreBand struct {
	minScore int
	label    string
}

var gradeBands = []scoreBand{{80, "A"}, {60, "B"}, {40, "C"}}

var recommendationBands = []scoreBand{
	{75, "Very attractive location: strongly suited for a long-term investment."},
	{55, "Good location: suitable for investment with normal risk."},
	{35, "Average location: invest only at a favourable purchase price."},
}

var riskBands = []scoreBand{{65, "low"}, {40, "medium"}}

// ScoreLocation turns qualitative location factors into a 0–100 score, a letter
// grade, a recommendation and a risk level. The three threshold sets are separate.
func ScoreLocation(input models.LocationAnalysisInput) models.LocationAnalysisResult {
	score := baseLocationScore
	strengths := []string{}
	weaknesses := []string{}

	apply := func(effect factorEffect, ok bool) {
		if !ok {
			return
		}
		score += effect.delta
		if effect.strength != "" {
			strengths = append(strengths, effect.strength)
		}
		if effect.weakness != "" {
			weaknesses = append(weaknesses, effect.weakness)
		}
	}

	effect, ok := populationEffects[input.PopulationTrend]
	apply(effect, ok)
	effect, ok = employmentEffects[input.EmploymentRate]
	apply(effect, ok)
	apply(infrastructureEffect(input.Infrastructure), true)
	effect, ok = crimeEffects[input.CrimeRate]
	apply(effect, ok)
	effect, ok = demandEffects[input.RentalDemand]
	apply(effect, ok)

	overall := int(math.Round(math.Max(0, math.Min(100, score))))

	return models.LocationAnalysisResult{
		OverallScore:   overall,
		Grade:          band(gradeBands, overall, "D"),
		Recommendation: band(recommendationBands, overall, "Weak location: an investment is not advisable."),
		RiskLevel:      band(riskBands, overall, "high"),
		Strengths:      strengths,
		Weaknesses:     weaknesses,
	}
}

// infrastructureEffect scales the mean of the four sub-scores to (avg-5)*4 points.
func infrastructureEffect(infra models.Infrastructure) factorEffect {
	avg := float64(infra.PublicTransport+infra.Shopping+infra.Schools+infra.Healthcare) / 4
	effect := factorEffect{delta: (avg - 5) * 4}
	switch {
	case avg >= 7:
		effect.strength = "Good infrastructure"
	case avg <= 4:
		effect.weakness = "Weak infrastructure"
	}
	return effect
}

func band(bands []scoreBand, score int, fallback string) string {
	for _, b := range bands {
		if score >= b.minScore {
			return b.label
		}
	}
	return fallback
}

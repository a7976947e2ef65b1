package config

import (
	"errors"
	"sort"

	"immoinvest/server/internal/models"
)

var ErrUnknownFederalState = errors.New("unknown federal state")

// afaRates maps each depreciation category to its yearly rate in percent (§ 7 EStG).
var afaRates = map[models.AfAType]float64{
	models.AfAAltbauVor1925: 2.5,
	models.AfAAltbauAb1925:  2.0,
	models.AfANeubauAb2023:  3.0,
	models.AfADenkmalschutz: 9.0,
}

// AfAType describes a depreciation category for reference listings
type AfAType struct {
	Key         models.AfAType `json:"key"`
	Label       string         `json:"label"`
	RatePercent float64        `json:"ratePercent"`
}

var afaLabels = map[models.AfAType]string{
	models.AfAAltbauVor1925: "Altbau vor 1925",
	models.AfAAltbauAb1925:  "Altbau ab 1925",
	models.AfANeubauAb2023:  "Neubau ab 2023",
	models.AfADenkmalschutz: "Denkmalschutz",
}

// AfARate returns the yearly depreciation rate for t.
func AfARate(t models.AfAType) (float64, bool) {
	rate, ok := afaRates[t]
	return rate, ok
}

// GetAfATypes returns all depreciation categories ordered by rate
func GetAfATypes() []AfAType {
	types := make([]AfAType, 0, len(afaRates))
	for key, rate := range afaRates {
		types = append(types, AfAType{Key: key, Label: afaLabels[key], RatePercent: rate})
	}
	sort.Slice(types, func(i, j int) bool { return types[i].RatePercent < types[j].RatePercent })
	return types
}

// FederalState holds the real-estate transfer tax rate of a German state (as of 2024).
type FederalState struct {
	Key                string  `json:"key"`
	Name               string  `json:"name"`
	TransferTaxPercent float64 `json:"transferTaxPercent"`
}

var FederalStates = []FederalState{
	{Key: "BADEN_WUERTTEMBERG", Name: "Baden-Württemberg", TransferTaxPercent: 5.0},
	{Key: "BAYERN", Name: "Bayern", TransferTaxPercent: 3.5},
	{Key: "BERLIN", Name: "Berlin", TransferTaxPercent: 6.0},
	{Key: "BRANDENBURG", Name: "Brandenburg", TransferTaxPercent: 6.5},
	{Key: "BREMEN", Name: "Bremen", TransferTaxPercent: 5.0},
	{Key: "HAMBURG", Name: "Hamburg", TransferTaxPercent: 5.5},
	{Key: "HESSEN", Name: "Hessen", TransferTaxPercent: 6.0},
	{Key: "MECKLENBURG_VORPOMMERN", Name: "Mecklenburg-Vorpommern", TransferTaxPercent: 6.0},
	{Key: "NIEDERSACHSEN", Name: "Niedersachsen", TransferTaxPercent: 5.0},
	{Key: "NORDRHEIN_WESTFALEN", Name: "Nordrhein-Westfalen", TransferTaxPercent: 6.5},
	{Key: "RHEINLAND_PFALZ", Name: "Rheinland-Pfalz", TransferTaxPercent: 5.0},
	{Key: "SAARLAND", Name: "Saarland", TransferTaxPercent: 6.5},
	{Key: "SACHSEN", Name: "Sachsen", TransferTaxPercent: 5.5},
	{Key: "SACHSEN_ANHALT", Name: "Sachsen-Anhalt", TransferTaxPercent: 5.0},
	{Key: "SCHLESWIG_HOLSTEIN", Name: "Schleswig-Holstein", TransferTaxPercent: 6.5},
	{Key: "THUERINGEN", Name: "Thüringen", TransferTaxPercent: 5.0},
}

// GetFederalState returns a federal state by key
func GetFederalState(key string) (FederalState, error) {
	for _, state := range FederalStates {
		if state.Key == key {
			return state, nil
		}
	}
	return FederalState{}, ErrUnknownFederalState
}

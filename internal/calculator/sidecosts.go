// Package calculator contains the deterministic investment engine. Every function
// is pure: no I/O, no logging, no clock. Degenerate input (zero price, zero equity,
// zero rent) yields zero values instead of errors.
package calculator

import (
	"immoinvest/server/config"
	"immoinvest/server/internal/models"
)

// CalculateSideCosts returns the purchase side costs. Rates are percents of the price.
func CalculateSideCosts(purchasePrice, brokerPercent, notaryPercent, transferTaxPercent, renovationCost float64) models.SideCosts {
	broker := purchasePrice * brokerPercent / 100
	notary := purchasePrice * notaryPercent / 100
	transferTax := purchasePrice * transferTaxPercent / 100
	total := broker + notary + transferTax + renovationCost

	return models.SideCosts{
		BrokerFee:             broker,
		NotaryFee:             notary,
		TransferTax:           transferTax,
		RenovationCost:        renovationCost,
		TotalSideCosts:        total,
		TotalSideCostsPercent: percentOf(total, purchasePrice),
	}
}

// CalculateInvestmentVolume adds the side costs to the purchase price.
func CalculateInvestmentVolume(purchasePrice float64, sideCosts models.SideCosts) models.InvestmentVolume {
	return models.InvestmentVolume{
		PurchasePrice:   purchasePrice,
		TotalSideCosts:  sideCosts.TotalSideCosts,
		TotalInvestment: purchasePrice + sideCosts.TotalSideCosts,
	}
}

// SideCostsForState computes side costs using the transfer tax of a federal state.
// The broker fee is dropped when withBroker is false.
func SideCostsForState(purchasePrice float64, stateKey string, withBroker bool, brokerPercent, notaryPercent float64) (models.StateSideCosts, error) {
	state, err := config.GetFederalState(stateKey)
	if err != nil {
		return models.StateSideCosts{}, err
	}
	if !withBroker {
		brokerPercent = 0
	}

	return models.StateSideCosts{
		SideCosts:          CalculateSideCosts(purchasePrice, brokerPercent, notaryPercent, state.TransferTaxPercent, 0),
		FederalState:       state.Name,
		TransferTaxPercent: state.TransferTaxPercent,
	}, nil
}

// percentOf returns part/whole*100, or 0 when whole is 0.
func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

package models

import "time"

// Portfolio is one saved property of a user. Output is stored as computed at
// save time and is not recomputed when loaded.
type Portfolio struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Name       string          `json:"name"`
	Address    string          `json:"address,omitempty"`
	PostalCode string          `json:"postalCode,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Input      PropertyInput   `json:"input"`
	Output     *PropertyOutput `json:"output,omitempty"`
}

// PortfolioRequest is used when creating or updating a portfolio
type PortfolioRequest struct {
	Name       string        `json:"name" binding:"required"`
	Address    string        `json:"address"`
	PostalCode string        `json:"postalCode"`
	Input      PropertyInput `json:"input"`
}

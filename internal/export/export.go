// Package export renders portfolios and calculation results as CSV or JSON with
// money values rounded to cents.
package export

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "csv" or "json" in any case; empty selects JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", ErrUnknownFormat
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}

// round returns v rounded half away from zero to two decimals.
func round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// money formats v with exactly two decimals.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

package domain

import (
	"fmt"
	"strings"
)

// Currency is the closed set of currencies a payment can be made in
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyCAD Currency = "CAD"
	CurrencyGBP Currency = "GBP"
)

var allCurrencies = map[string]Currency{
	CurrencyEUR.Code(): CurrencyEUR,
	CurrencyUSD.Code(): CurrencyUSD,
	CurrencyCAD.Code(): CurrencyCAD,
	CurrencyGBP.Code(): CurrencyGBP,
}

// NewCurrency parses an ISO 4217 code
func NewCurrency(code string) (Currency, error) {
	if currency, ok := allCurrencies[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return currency, nil
	}
	return "", fmt.Errorf("unknown currency: %s", code)
}

// Currencies returns every supported currency
func Currencies() []Currency {
	return []Currency{CurrencyEUR, CurrencyUSD, CurrencyCAD, CurrencyGBP}
}

// Code returns the ISO 4217 code
func (c Currency) Code() string {
	return string(c)
}

// String returns the short name used in payment descriptions ("Usd", "Eur", ...)
func (c Currency) String() string {
	switch c {
	case CurrencyEUR:
		return "Eur"
	case CurrencyUSD:
		return "Usd"
	case CurrencyCAD:
		return "Cad"
	case CurrencyGBP:
		return "Gbp"
	}
	return string(c)
}

// IsValid reports whether c is one of the supported currencies
func (c Currency) IsValid() bool {
	_, ok := allCurrencies[c.Code()]
	return ok
}

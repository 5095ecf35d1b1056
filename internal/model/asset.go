package model

import "github.com/shopspring/decimal"

// AssetKind discriminates the two concrete kinds of asset.
type AssetKind string

const (
	KindCurrency AssetKind = "currency"
	KindSecurity AssetKind = "security"
)

// SecurityType classifies securities for investment breakdowns.
type SecurityType string

const (
	SecurityStock SecurityType = "stock"
	SecurityREIT  SecurityType = "reit"
	SecurityBond  SecurityType = "bond"
)

// Asset represents a fungible unit of value: a currency or a security.
// The pair (Scope, Code) is globally unique. Currencies have an empty
// Scope; a security's Scope is the market it trades on (e.g. "NASDAQ").
type Asset struct {
	ID        int64
	Kind      AssetKind
	Scope     string
	Code      string
	Name      string
	Precision int32

	// Currency-only fields.
	Symbol string
	IsFiat bool

	// Security-only fields.
	SecurityType SecurityType
	ISIN         string
	CurrencyID   int64 // denominating currency
}

// ScopedCode returns Scope and Code joined by sep, or just Code when the
// asset has no scope.
func (a Asset) ScopedCode(sep string) string {
	if a.Scope == "" {
		return a.Code
	}
	return a.Scope + sep + a.Code
}

// Round rounds value to the asset's precision.
func (a Asset) Round(value decimal.Decimal) decimal.Decimal {
	return value.Round(a.Precision)
}

// IsCurrency reports whether the asset is a currency.
func (a Asset) IsCurrency() bool {
	return a.Kind == KindCurrency
}

// IsSecurity reports whether the asset is a security.
func (a Asset) IsSecurity() bool {
	return a.Kind == KindSecurity
}

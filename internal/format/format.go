// Package format renders quantities and monetary amounts for terminal
// output.
package format

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

var thousand = decimal.NewFromInt(1000)

// letters suffix one division by 1000 each; past "T" short notation
// gives up and the value is rendered plainly.
var letters = []string{"", "K", "M", "B", "T"}

// Short renders value in abbreviated notation, dividing by 1000 while
// the magnitude exceeds 1000: 1500 with 1 decimal renders as "1.5K".
func Short(value decimal.Decimal, decimals int32) string {
	n := value.Abs()
	thousands := 0
	for n.GreaterThan(thousand) {
		n = n.Div(thousand)
		thousands++
	}

	if thousands >= len(letters) {
		return value.Round(decimals).String()
	}

	scaled := value.Div(thousand.Pow(decimal.NewFromInt(int64(thousands))))
	return scaled.StringFixed(decimals) + letters[thousands]
}

// Number rounds value to decimals and renders it plainly, or in short
// notation when short is set.
func Number(value decimal.Decimal, decimals int32, short bool) string {
	if short {
		return Short(value, decimals)
	}
	return value.Round(decimals).String()
}

// Amount renders value decorated for the asset: the symbol leads when
// the asset has one ("$ 1200.50"), otherwise the scoped code trails
// ("0.31 NASDAQ:AAPL").
func Amount(value decimal.Decimal, asset model.Asset, short bool) string {
	s := Number(value, asset.Precision, short)
	if asset.Symbol != "" {
		return asset.Symbol + " " + s
	}
	return s + " " + asset.ScopedCode(":")
}

// Fiat renders value as a fully formatted money string for ISO-coded
// fiat currencies ("$1,200.50"), reporting false for assets the currency
// registry does not know.
func Fiat(value decimal.Decimal, asset model.Asset) (string, bool) {
	if !asset.IsFiat {
		return "", false
	}
	cur := money.GetCurrency(asset.Code)
	if cur == nil {
		return "", false
	}
	minor := value.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display(), true
}

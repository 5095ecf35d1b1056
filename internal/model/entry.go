package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryAccount is the endpoint information joined onto a register entry.
type EntryAccount struct {
	ID      int64
	Type    AccountType
	Name    string
	AssetID int64
}

// Entry is one subtransaction as listed in an account's register: the
// subtransaction's own fields joined with its transaction's date, the
// transaction's subtransaction count and both endpoint accounts.
type Entry struct {
	SubtransactionID int64
	TransactionID    int64
	Date             time.Time
	Comment          string
	Quantity         decimal.Decimal
	QuotePrice       decimal.Decimal
	SubCount         int
	Origin           EntryAccount
	Target           EntryAccount
}

// RelativeQuantity is the signed effect of the entry on the given
// account, mirroring Subtransaction.RelativeQuantity.
func (e Entry) RelativeQuantity(accountID int64) decimal.Decimal {
	q := decimal.Zero
	if e.Origin.ID == accountID {
		q = q.Sub(e.Quantity.Mul(e.QuotePrice))
	}
	if e.Target.ID == accountID {
		q = q.Add(e.Quantity)
	}
	return q
}

// Other returns the endpoint across from the given account: the target
// when the account is the origin, and the origin otherwise.
func (e Entry) Other(accountID int64) EntryAccount {
	if e.Origin.ID == accountID {
		return e.Target
	}
	return e.Origin
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Subtransaction is an atomic movement of value between two accounts.
// Quantity is denominated in the target account's asset. QuotePrice is
// the rate of the target asset expressed in the origin asset, so the
// value leaving the origin equals Quantity times QuotePrice. When both
// endpoints hold the same asset, QuotePrice is 1.
type Subtransaction struct {
	ID            int64
	TransactionID int64
	Comment       string
	OriginID      int64
	TargetID      int64
	Quantity      decimal.Decimal
	QuotePrice    decimal.Decimal
}

// Swap exchanges the origin and target sides, converting Quantity into
// the other side's denomination and inverting QuotePrice. Swapping twice
// restores the original values within rounding. A subtransaction whose
// endpoints coincide is left untouched.
func (s *Subtransaction) Swap() {
	if s.OriginID == s.TargetID {
		return
	}
	s.OriginID, s.TargetID = s.TargetID, s.OriginID
	if !s.QuotePrice.Equal(one) {
		s.Quantity = s.Quantity.Mul(s.QuotePrice)
		s.QuotePrice = one.Div(s.QuotePrice)
	}
}

// RelativeQuantity is the signed effect of the subtransaction on the
// given account: the origin loses Quantity times QuotePrice, the target
// gains Quantity, and unrelated accounts see zero.
func (s Subtransaction) RelativeQuantity(accountID int64) decimal.Decimal {
	q := decimal.Zero
	if s.OriginID == accountID {
		q = q.Sub(s.Quantity.Mul(s.QuotePrice))
	}
	if s.TargetID == accountID {
		q = q.Add(s.Quantity)
	}
	return q
}

// QuotePair renders the subtransaction's exchange as "TARGET/ORIGIN = price".
func (s Subtransaction) QuotePair(originCode, targetCode string) string {
	return targetCode + "/" + originCode + " = " + s.QuotePrice.String()
}

// Equal reports whether two subtransactions have the same identity and
// values. Decimal fields compare by value, not representation.
func (s Subtransaction) Equal(other Subtransaction) bool {
	return s.ID == other.ID &&
		s.TransactionID == other.TransactionID &&
		s.Comment == other.Comment &&
		s.OriginID == other.OriginID &&
		s.TargetID == other.TargetID &&
		s.Quantity.Equal(other.Quantity) &&
		s.QuotePrice.Equal(other.QuotePrice)
}

// Transaction is a dated container of one or more subtransactions. It
// owns its subtransactions: deleting the transaction deletes them all.
// A transaction with more than one subtransaction is a split transaction,
// grouping movements that happened together, such as a purchase paid
// partly in cash and partly on a credit card.
type Transaction struct {
	ID   int64
	Date time.Time
	Subs []Subtransaction
}

// IsSplit reports whether the transaction has more than one subtransaction.
func (t Transaction) IsSplit() bool {
	return len(t.Subs) > 1
}

// AccountTyper resolves an account's type by id.
type AccountTyper interface {
	TypeOf(accountID int64) (AccountType, bool)
}

// Type classifies the transaction: Split when it holds more than one
// subtransaction, otherwise the classifier result for the single
// origin/target pair. Unresolvable endpoints classify as Undefined.
func (t Transaction) Type(accounts AccountTyper) TransactionType {
	if t.IsSplit() {
		return TxSplit
	}
	if len(t.Subs) != 1 {
		return TxUndefined
	}
	origin, ok := accounts.TypeOf(t.Subs[0].OriginID)
	if !ok {
		return TxUndefined
	}
	target, ok := accounts.TypeOf(t.Subs[0].TargetID)
	if !ok {
		return TxUndefined
	}
	return Classify(origin, target)
}

// RelativeQuantity sums the signed effects of every subtransaction on the
// given account, rounded to the given precision.
func (t Transaction) RelativeQuantity(accountID int64, precision int32) decimal.Decimal {
	q := decimal.Zero
	for _, s := range t.Subs {
		q = q.Add(s.RelativeQuantity(accountID))
	}
	return q.Round(precision)
}

// Equal reports whether two transactions have the same identity, date and
// subtransactions.
func (t Transaction) Equal(other Transaction) bool {
	if t.ID != other.ID || !t.Date.Equal(other.Date) || len(t.Subs) != len(other.Subs) {
		return false
	}
	for i := range t.Subs {
		if !t.Subs[i].Equal(other.Subs[i]) {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of the transaction. Mutating the copy's
// subtransactions does not affect the original.
func (t Transaction) Copy() Transaction {
	c := t
	c.Subs = make([]Subtransaction, len(t.Subs))
	copy(c.Subs, t.Subs)
	return c
}

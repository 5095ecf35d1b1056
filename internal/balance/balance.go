// Package balance computes account balances, hierarchical balance trees
// and cross-asset totals.
package balance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

// Storage is the persistence surface balance computation reads from.
// *store.Store satisfies it.
type Storage interface {
	ListEntriesForAccount(accountID int64) ([]model.Entry, error)
	GetAsset(id int64) (model.Asset, bool, error)
}

// Converter prices one asset in another. *quotes.Resolver satisfies it.
type Converter interface {
	Price(self, other model.Asset, twoWay bool) (decimal.Decimal, bool, error)
}

// Calculator computes balances on demand from the recorded ledger.
type Calculator struct {
	store  Storage
	quotes Converter
}

// NewCalculator creates a Calculator reading from store and converting
// assets through quotes.
func NewCalculator(store Storage, quotes Converter) *Calculator {
	return &Calculator{store: store, quotes: quotes}
}

// Raw returns the account's ledger balance in its own asset: the sum of
// signed contributions over every subtransaction touching it. An
// account with no entries has a balance of exactly zero.
func (c *Calculator) Raw(accountID int64) (decimal.Decimal, error) {
	entries, err := c.store.ListEntriesForAccount(accountID)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("computing balance of account %d: %w", accountID, err)
	}

	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.RelativeQuantity(accountID))
	}
	return sum, nil
}

// ForAccount returns the account's displayed balance: the raw balance,
// negated exactly once for credit-positive groups.
func (c *Calculator) ForAccount(account model.Account) (decimal.Decimal, error) {
	raw, err := c.Raw(account.ID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return displayed(account, raw), nil
}

// displayed flips the ledger sign for liability, income and equity
// accounts, which users read as positive amounts. Zero stays zero.
func displayed(account model.Account, raw decimal.Decimal) decimal.Decimal {
	if account.Group().CreditPositive() && !raw.IsZero() {
		return raw.Neg()
	}
	return raw
}

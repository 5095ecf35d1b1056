package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/glourencoffee/mymoneyman/internal/accounts"
	"github.com/glourencoffee/mymoneyman/internal/model"
)

// Row is one register line: a transaction's dated effect on the
// reference account. Entries holds the transaction's subtransactions
// that touch the account.
type Row struct {
	TransactionID int64
	Date          time.Time
	Entries       []model.Entry

	// Quantity is the signed net effect on the reference account,
	// rounded to its display precision. Balance is the running balance
	// after this row.
	Quantity decimal.Decimal
	Balance  decimal.Decimal
}

// Type classifies the row for display.
func (r Row) Type() model.TransactionType {
	if len(r.Entries) == 0 {
		return model.TxUndefined
	}
	if len(r.Entries) > 1 || r.Entries[0].SubCount > 1 {
		return model.TxSplit
	}
	e := r.Entries[0]
	return model.Classify(e.Origin.Type, e.Target.Type)
}

// Register is one account's transactions in date order, with running
// balances.
type Register struct {
	Account   model.Account
	Asset     model.Asset
	Precision int32
	Rows      []Row
}

// Register loads the register of one account: its transactions ordered
// by date, one row per transaction, with running balances from zero.
func (s *Service) Register(accountID int64) (*Register, error) {
	tree, err := s.accounts.Tree()
	if err != nil {
		return nil, err
	}
	account, ok := tree.Get(accountID)
	if !ok {
		return nil, fmt.Errorf("account %d: %w", accountID, accounts.ErrNotFound)
	}
	asset, ok, err := s.store.GetAsset(account.AssetID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("account %q references unknown asset %d", account.Name, account.AssetID)
	}

	reg := &Register{
		Account:   account,
		Asset:     asset,
		Precision: account.DisplayPrecision(asset),
	}

	entries, err := s.store.ListEntriesForAccount(accountID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if n := len(reg.Rows); n > 0 && reg.Rows[n-1].TransactionID == e.TransactionID {
			reg.Rows[n-1].Entries = append(reg.Rows[n-1].Entries, e)
			continue
		}
		reg.Rows = append(reg.Rows, Row{
			TransactionID: e.TransactionID,
			Date:          e.Date,
			Entries:       []model.Entry{e},
		})
	}
	for i := range reg.Rows {
		reg.Rows[i].Quantity = rowQuantity(reg.Rows[i], accountID, reg.Precision)
	}
	reg.RunningBalances(0)
	return reg, nil
}

// RunningBalances recomputes the running balance of every row from
// index from to the end, seeding from the previous row's balance (zero
// for the first row).
func (r *Register) RunningBalances(from int) {
	balance := decimal.Zero
	if from > 0 && from <= len(r.Rows) {
		balance = r.Rows[from-1].Balance
	}
	for i := from; i < len(r.Rows); i++ {
		balance = balance.Add(r.Rows[i].Quantity)
		r.Rows[i].Balance = balance
	}
}

func rowQuantity(row Row, accountID int64, precision int32) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range row.Entries {
		sum = sum.Add(e.RelativeQuantity(accountID))
	}
	return sum.Round(precision)
}

// buildRow derives a register row from a transaction, resolving the
// endpoint information against a hierarchy snapshot.
func buildRow(t model.Transaction, accountID int64, precision int32, tree *accounts.Tree) Row {
	row := Row{TransactionID: t.ID, Date: t.Date}
	for _, sub := range t.Subs {
		if sub.OriginID != accountID && sub.TargetID != accountID {
			continue
		}
		row.Entries = append(row.Entries, model.Entry{
			SubtransactionID: sub.ID,
			TransactionID:    t.ID,
			Date:             t.Date,
			Comment:          sub.Comment,
			Quantity:         sub.Quantity,
			QuotePrice:       sub.QuotePrice,
			SubCount:         len(t.Subs),
			Origin:           entryAccount(tree, sub.OriginID),
			Target:           entryAccount(tree, sub.TargetID),
		})
	}
	row.Quantity = rowQuantity(row, accountID, precision)
	return row
}

func entryAccount(tree *accounts.Tree, id int64) model.EntryAccount {
	a, ok := tree.Get(id)
	if !ok {
		return model.EntryAccount{ID: id}
	}
	return model.EntryAccount{ID: a.ID, Type: a.Type, Name: a.Name, AssetID: a.AssetID}
}

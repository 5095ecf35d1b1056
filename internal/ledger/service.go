// Package ledger records and edits transactions and serves account
// registers with running balances.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/glourencoffee/mymoneyman/internal/accounts"
	"github.com/glourencoffee/mymoneyman/internal/model"
)

var one = decimal.NewFromInt(1)

// ErrNotFound reports an operation on a transaction id that is not
// stored.
var ErrNotFound = errors.New("transaction not found")

// Storage is the persistence surface the service needs. *store.Store
// satisfies it.
type Storage interface {
	GetTransaction(id int64) (model.Transaction, bool, error)
	ListTransactions() ([]model.Transaction, error)
	SaveTransaction(t *model.Transaction) error
	DeleteTransaction(id int64) error
	DeleteSubtransaction(id int64) error
	ListEntriesForAccount(accountID int64) ([]model.Entry, error)
	GetAsset(id int64) (model.Asset, bool, error)
}

// AccountSource loads account hierarchy snapshots. *accounts.Service
// satisfies it.
type AccountSource interface {
	Tree() (*accounts.Tree, error)
}

// QuoteFlusher invalidates cached quotes after ledger writes.
// *quotes.Resolver satisfies it.
type QuoteFlusher interface {
	Flush()
}

// Service provides business logic for recording, editing and listing
// transactions.
type Service struct {
	store    Storage
	accounts AccountSource
	quotes   QuoteFlusher
}

// NewService creates a ledger Service.
func NewService(store Storage, accounts AccountSource, quotes QuoteFlusher) *Service {
	return &Service{store: store, accounts: accounts, quotes: quotes}
}

// Record validates and stores a new transaction. Generated ids are set
// back on t and its subtransactions.
func (s *Service) Record(t *model.Transaction) error {
	if t.ID != 0 {
		return fmt.Errorf("transaction %d is already recorded", t.ID)
	}
	return s.save(t)
}

// Update validates and rewrites a stored transaction, replacing its
// subtransactions with those of t.
func (s *Service) Update(t *model.Transaction) error {
	if t.ID == 0 {
		return errors.New("transaction has no id")
	}
	_, ok, err := s.store.GetTransaction(t.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("transaction %d: %w", t.ID, ErrNotFound)
	}
	return s.save(t)
}

func (s *Service) save(t *model.Transaction) error {
	tree, err := s.accounts.Tree()
	if err != nil {
		return err
	}

	normalize(t, tree)
	if errs := ValidateTransaction(*t, tree); len(errs) > 0 {
		return validationFailed(errs)
	}

	if err := s.store.SaveTransaction(t); err != nil {
		return err
	}
	s.quotes.Flush()
	return nil
}

// Delete removes a transaction and all its subtransactions.
func (s *Service) Delete(id int64) error {
	_, ok, err := s.store.GetTransaction(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	if err := s.store.DeleteTransaction(id); err != nil {
		return err
	}
	s.quotes.Flush()
	return nil
}

// RemoveSubtransaction removes one leg of a split transaction. The
// transaction itself is removed when its last leg goes.
func (s *Service) RemoveSubtransaction(id int64) error {
	if err := s.store.DeleteSubtransaction(id); err != nil {
		return err
	}
	s.quotes.Flush()
	return nil
}

// List returns every stored transaction ordered by date then id.
func (s *Service) List() ([]model.Transaction, error) {
	return s.store.ListTransactions()
}

// Get returns a stored transaction.
func (s *Service) Get(id int64) (model.Transaction, error) {
	t, ok, err := s.store.GetTransaction(id)
	if err != nil {
		return model.Transaction{}, err
	}
	if !ok {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	return t, nil
}

// normalize forces the quote price to 1 on subtransactions whose
// endpoints hold the same asset.
func normalize(t *model.Transaction, accounts AccountLookup) {
	for i := range t.Subs {
		sub := &t.Subs[i]
		origin, originOK := accounts.Get(sub.OriginID)
		target, targetOK := accounts.Get(sub.TargetID)
		if originOK && targetOK && origin.AssetID == target.AssetID {
			sub.QuotePrice = one
		}
	}
}

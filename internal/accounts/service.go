// Package accounts maintains the account hierarchy: validated creation,
// edits and removal, and tree snapshots for display and aggregation.
package accounts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

// ErrNotFound reports an operation on an account id that is not stored.
var ErrNotFound = errors.New("account not found")

// ValidationError describes a single invariant violation found while
// validating an account mutation.
type ValidationError struct {
	Invariant   int
	Account     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.Account, e.Description)
}

// Storage is the persistence surface the service needs. *store.Store
// satisfies it.
type Storage interface {
	ListAccounts() ([]model.Account, error)
	AccountExists(name string, accountType model.AccountType, parentID int64) (bool, error)
	InsertAccount(model.Account) (int64, error)
	UpdateAccount(model.Account) error
	DeleteAccount(id int64) error
	GetAsset(id int64) (model.Asset, bool, error)
}

// Service validates and applies account mutations.
type Service struct {
	store Storage
}

// NewService creates a Service backed by store.
func NewService(store Storage) *Service {
	return &Service{store: store}
}

// Tree loads a fresh snapshot of the full hierarchy.
func (s *Service) Tree() (*Tree, error) {
	accounts, err := s.store.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	return NewTree(accounts), nil
}

// CreateParams describes a new account.
type CreateParams struct {
	Type        model.AccountType
	Name        string
	Description string
	AssetID     int64
	ParentID    int64
	Precision   int32
}

// Create validates and stores a new account, returning its id.
func (s *Service) Create(p CreateParams) (int64, error) {
	tree, err := s.Tree()
	if err != nil {
		return 0, err
	}

	account := model.Account{
		Type:        p.Type,
		Name:        p.Name,
		Description: p.Description,
		AssetID:     p.AssetID,
		ParentID:    p.ParentID,
		Precision:   p.Precision,
	}
	errs, err := s.validateMutation(tree, account)
	if err != nil {
		return 0, err
	}
	if len(errs) > 0 {
		return 0, validationFailed(errs)
	}

	// The tree snapshot may be stale; ask the store again right before
	// inserting.
	taken, err := s.store.AccountExists(account.Name, account.Type, account.ParentID)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, validationFailed([]ValidationError{{
			Invariant:   6,
			Account:     account.Name,
			Description: fmt.Sprintf("name %q already used by a sibling account", account.Name),
		}})
	}
	return s.store.InsertAccount(account)
}

// UpdateParams carries the mutable account fields. The type and asset
// are fixed at creation.
type UpdateParams struct {
	ID          int64
	Name        string
	Description string
	ParentID    int64
	Precision   int32
}

// Update validates and applies an edit to an existing account.
func (s *Service) Update(p UpdateParams) error {
	tree, err := s.Tree()
	if err != nil {
		return err
	}
	account, ok := tree.Get(p.ID)
	if !ok {
		return fmt.Errorf("account %d: %w", p.ID, ErrNotFound)
	}

	account.Name = p.Name
	account.Description = p.Description
	account.ParentID = p.ParentID
	account.Precision = p.Precision

	errs, err := s.validateMutation(tree, account)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return validationFailed(errs)
	}
	return s.store.UpdateAccount(account)
}

// Remove deletes an account. Accounts with children or with recorded
// subtransactions are rejected by the store.
func (s *Service) Remove(id int64) error {
	tree, err := s.Tree()
	if err != nil {
		return err
	}
	if !tree.Exists(id) {
		return fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	return s.store.DeleteAccount(id)
}

// validateMutation enforces 6 invariants on a new or edited account.
func (s *Service) validateMutation(tree *Tree, a model.Account) ([]ValidationError, error) {
	var errs []ValidationError

	// Invariant 1: Non-empty name.
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, ValidationError{
			Invariant:   1,
			Account:     a.Name,
			Description: "account name must not be empty",
		})
	}

	// Invariant 2: Known account type.
	if model.GroupOf(a.Type) == "" {
		errs = append(errs, ValidationError{
			Invariant:   2,
			Account:     a.Name,
			Description: fmt.Sprintf("unknown account type %q", a.Type),
		})
		return errs, nil
	}

	// Invariant 3: The asset exists and its kind matches the account type.
	asset, ok, err := s.store.GetAsset(a.AssetID)
	if err != nil {
		return nil, err
	}
	if !ok {
		errs = append(errs, ValidationError{
			Invariant:   3,
			Account:     a.Name,
			Description: fmt.Sprintf("unknown asset %d", a.AssetID),
		})
	} else if asset.Kind != a.Type.KindFor() {
		errs = append(errs, ValidationError{
			Invariant:   3,
			Account:     a.Name,
			Description: fmt.Sprintf("%s accounts must hold a %s, but %s is a %s", a.Type, a.Type.KindFor(), asset.ScopedCode(":"), asset.Kind),
		})
	}

	// Invariant 4: The parent exists and belongs to the same group.
	if a.ParentID != 0 {
		parent, ok := tree.Get(a.ParentID)
		if !ok {
			errs = append(errs, ValidationError{
				Invariant:   4,
				Account:     a.Name,
				Description: fmt.Sprintf("unknown parent account %d", a.ParentID),
			})
		} else if parent.Group() != a.Group() {
			errs = append(errs, ValidationError{
				Invariant:   4,
				Account:     a.Name,
				Description: fmt.Sprintf("parent %q is in group %s, not %s", parent.Name, parent.Group(), a.Group()),
			})
		}
	}

	// Invariant 5: The parent relation stays acyclic.
	if a.ID != 0 && a.ParentID != 0 {
		if a.ParentID == a.ID || tree.IsAncestor(a.ID, a.ParentID) {
			errs = append(errs, ValidationError{
				Invariant:   5,
				Account:     a.Name,
				Description: "account cannot become its own ancestor",
			})
		}
	}

	// Invariant 6: Unique name among siblings.
	if tree.siblingTaken(a.Name, a.ParentID, a.Group(), a.ID) {
		errs = append(errs, ValidationError{
			Invariant:   6,
			Account:     a.Name,
			Description: fmt.Sprintf("name %q already used by a sibling account", a.Name),
		})
	}

	return errs, nil
}

func validationFailed(errs []ValidationError) error {
	msgs := make([]string, len(errs))
	for i, ve := range errs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

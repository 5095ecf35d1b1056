// Package assets manages the currencies and securities a book can hold.
package assets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

// ErrNotFound reports an operation on an asset that is not stored.
var ErrNotFound = errors.New("asset not found")

// ValidationError describes a single invariant violation found while
// validating a new asset.
type ValidationError struct {
	Invariant   int
	Asset       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.Asset, e.Description)
}

// Storage is the persistence surface the service needs. *store.Store
// satisfies it.
type Storage interface {
	ListAssets() ([]model.Asset, error)
	GetAsset(id int64) (model.Asset, bool, error)
	InsertCurrency(a model.Asset) (int64, error)
	InsertSecurity(a model.Asset) (int64, error)
	DeleteAsset(id int64) error
}

// Service validates and applies asset mutations.
type Service struct {
	store Storage
}

// NewService creates a Service backed by store.
func NewService(store Storage) *Service {
	return &Service{store: store}
}

// CurrencyParams describes a new currency. Zero-valued Name, Symbol and
// Precision are filled from the ISO 4217 registry when the code is a
// known ISO currency; a non-ISO code falls back to the code itself and
// two decimal places.
type CurrencyParams struct {
	Code      string
	Name      string
	Symbol    string
	Precision int32
	IsFiat    bool
}

// AddCurrency validates and stores a new currency. The code is
// uppercased; duplicates are rejected with store.ErrAssetExists.
func (s *Service) AddCurrency(p CurrencyParams) (model.Asset, error) {
	code := strings.ToUpper(strings.TrimSpace(p.Code))

	// Invariant 1: Non-empty code.
	if code == "" {
		return model.Asset{}, validationFailed([]ValidationError{{
			Invariant:   1,
			Asset:       code,
			Description: "currency has no code",
		}})
	}

	a := model.Asset{
		Kind:      model.KindCurrency,
		Code:      code,
		Name:      p.Name,
		Precision: p.Precision,
		Symbol:    p.Symbol,
		IsFiat:    p.IsFiat,
	}
	if iso := money.GetCurrency(code); iso != nil {
		// ISO fractions may legitimately be zero, e.g. JPY.
		if a.Precision <= 0 {
			a.Precision = int32(iso.Fraction)
		}
		if a.Symbol == "" {
			a.Symbol = iso.Grapheme
		}
	} else if a.Precision <= 0 {
		a.Precision = 2
	}
	if a.Name == "" {
		a.Name = code
	}

	id, err := s.store.InsertCurrency(a)
	if err != nil {
		return model.Asset{}, err
	}
	a.ID = id
	return a, nil
}

// SecurityParams describes a new security. Type defaults to stock and
// Precision to zero, matching whole-unit holdings.
type SecurityParams struct {
	Scope      string // market the security trades on, e.g. "NASDAQ"
	Code       string
	Name       string
	Type       model.SecurityType
	ISIN       string
	Precision  int32
	CurrencyID int64
}

// AddSecurity validates and stores a new security. Duplicate
// (scope, code) pairs are rejected with store.ErrAssetExists and an
// unknown denominating currency with store.ErrUnknownCurrency.
func (s *Service) AddSecurity(p SecurityParams) (model.Asset, error) {
	a := model.Asset{
		Kind:         model.KindSecurity,
		Scope:        strings.TrimSpace(p.Scope),
		Code:         strings.TrimSpace(p.Code),
		Name:         p.Name,
		Precision:    p.Precision,
		SecurityType: p.Type,
		ISIN:         p.ISIN,
		CurrencyID:   p.CurrencyID,
	}

	var errs []ValidationError
	scoped := a.ScopedCode(":")

	// Invariant 1: Non-empty code.
	if a.Code == "" {
		errs = append(errs, ValidationError{
			Invariant:   1,
			Asset:       scoped,
			Description: "security has no code",
		})
	}

	// Invariant 2: Non-empty scope. Two securities may share a code as
	// long as they trade on different markets.
	if a.Scope == "" {
		errs = append(errs, ValidationError{
			Invariant:   2,
			Asset:       scoped,
			Description: "security has no market",
		})
	}

	// Invariant 3: Known security type.
	if a.SecurityType == "" {
		a.SecurityType = model.SecurityStock
	}
	switch a.SecurityType {
	case model.SecurityStock, model.SecurityREIT, model.SecurityBond:
	default:
		errs = append(errs, ValidationError{
			Invariant:   3,
			Asset:       scoped,
			Description: fmt.Sprintf("unknown security type %q", a.SecurityType),
		})
	}

	// Invariant 4: A denominating currency is set.
	if a.CurrencyID == 0 {
		errs = append(errs, ValidationError{
			Invariant:   4,
			Asset:       scoped,
			Description: "security has no denominating currency",
		})
	}

	if len(errs) > 0 {
		return model.Asset{}, validationFailed(errs)
	}
	if a.Precision < 0 {
		a.Precision = 0
	}

	id, err := s.store.InsertSecurity(a)
	if err != nil {
		return model.Asset{}, err
	}
	a.ID = id
	return a, nil
}

// List returns every asset ordered by scope then code.
func (s *Service) List() ([]model.Asset, error) {
	return s.store.ListAssets()
}

// Currencies returns every currency.
func (s *Service) Currencies() ([]model.Asset, error) {
	return s.filtered(model.Asset.IsCurrency)
}

// Securities returns every security.
func (s *Service) Securities() ([]model.Asset, error) {
	return s.filtered(model.Asset.IsSecurity)
}

func (s *Service) filtered(keep func(model.Asset) bool) ([]model.Asset, error) {
	assets, err := s.store.ListAssets()
	if err != nil {
		return nil, err
	}
	var out []model.Asset
	for _, a := range assets {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Get returns a stored asset.
func (s *Service) Get(id int64) (model.Asset, error) {
	a, ok, err := s.store.GetAsset(id)
	if err != nil {
		return model.Asset{}, err
	}
	if !ok {
		return model.Asset{}, fmt.Errorf("asset %d: %w", id, ErrNotFound)
	}
	return a, nil
}

// Find resolves a scoped code like "USD" or "NASDAQ:AAPL" to its asset.
// Matching ignores case.
func (s *Service) Find(scopedCode string) (model.Asset, error) {
	scope, code, ok := strings.Cut(scopedCode, ":")
	if !ok {
		scope, code = "", scopedCode
	}

	assets, err := s.store.ListAssets()
	if err != nil {
		return model.Asset{}, err
	}
	for _, a := range assets {
		if strings.EqualFold(a.Scope, scope) && strings.EqualFold(a.Code, code) {
			return a, nil
		}
	}
	return model.Asset{}, fmt.Errorf("asset %q: %w", scopedCode, ErrNotFound)
}

// Remove deletes an asset nothing references. Assets held by an account
// or denominating a security are rejected with store.ErrAssetInUse.
func (s *Service) Remove(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.store.DeleteAsset(id)
}

func validationFailed(errs []ValidationError) error {
	msgs := make([]string, len(errs))
	for i, ve := range errs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

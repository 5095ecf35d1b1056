package ledger

import (
	"fmt"
	"strings"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

// ValidationError describes a single invariant violation. Sub is the
// index of the offending subtransaction, or -1 for transaction-level
// violations.
type ValidationError struct {
	Invariant   int
	Sub         int
	Description string
}

func (e ValidationError) Error() string {
	if e.Sub < 0 {
		return fmt.Sprintf("invariant %d: %s", e.Invariant, e.Description)
	}
	return fmt.Sprintf("invariant %d [sub %d]: %s", e.Invariant, e.Sub, e.Description)
}

// AccountLookup resolves account ids during validation. *accounts.Tree
// satisfies it.
type AccountLookup interface {
	Get(id int64) (model.Account, bool)
}

// ValidateTransaction enforces 6 invariants on a transaction before it
// is written.
func ValidateTransaction(t model.Transaction, accounts AccountLookup) []ValidationError {
	var errs []ValidationError

	// Invariant 1: At least one subtransaction.
	if len(t.Subs) == 0 {
		errs = append(errs, ValidationError{
			Invariant:   1,
			Sub:         -1,
			Description: "transaction has no subtransactions",
		})
	}

	for i, sub := range t.Subs {
		// Invariant 2: Both endpoint accounts exist.
		origin, originOK := accounts.Get(sub.OriginID)
		if !originOK {
			errs = append(errs, ValidationError{
				Invariant:   2,
				Sub:         i,
				Description: fmt.Sprintf("unknown origin account %d", sub.OriginID),
			})
		}
		target, targetOK := accounts.Get(sub.TargetID)
		if !targetOK {
			errs = append(errs, ValidationError{
				Invariant:   2,
				Sub:         i,
				Description: fmt.Sprintf("unknown target account %d", sub.TargetID),
			})
		}

		// Invariant 3: Origin and target differ.
		if sub.OriginID == sub.TargetID {
			errs = append(errs, ValidationError{
				Invariant:   3,
				Sub:         i,
				Description: "origin and target are the same account",
			})
		}

		// Invariant 4: Quantity is not negative.
		if sub.Quantity.IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   4,
				Sub:         i,
				Description: fmt.Sprintf("negative quantity %s", sub.Quantity),
			})
		}

		// Invariant 5: Quote price is positive.
		if !sub.QuotePrice.IsPositive() {
			errs = append(errs, ValidationError{
				Invariant:   5,
				Sub:         i,
				Description: fmt.Sprintf("quote price %s is not positive", sub.QuotePrice),
			})
		}

		// Invariant 6: Same-asset endpoints exchange at par.
		if originOK && targetOK && origin.AssetID == target.AssetID && !sub.QuotePrice.Equal(one) {
			errs = append(errs, ValidationError{
				Invariant:   6,
				Sub:         i,
				Description: fmt.Sprintf("accounts share an asset but quote price is %s", sub.QuotePrice),
			})
		}
	}

	return errs
}

func validationFailed(errs []ValidationError) error {
	msgs := make([]string, len(errs))
	for i, ve := range errs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

// ErrDraftOpen rejects edits outside the row whose draft is open.
var ErrDraftOpen = errors.New("another row has an open draft")

// Session edits one account's register, one draft at a time.
//
// The first edit on a row deep-copies the row's transaction and opens a
// draft; until that draft is persisted or discarded, edits on any other
// row are rejected with ErrDraftOpen. A first edit that leaves the copy
// equal to the original closes the draft again, as if nothing had been
// typed.
type Session struct {
	service  *Service
	register *Register

	draftRow int // -1 when clean
	draft    *model.Transaction
	original *model.Transaction
}

// NewSession loads the register of accountID and starts a clean session
// over it.
func (s *Service) NewSession(accountID int64) (*Session, error) {
	reg, err := s.Register(accountID)
	if err != nil {
		return nil, err
	}
	return &Session{service: s, register: reg, draftRow: -1}, nil
}

// Register exposes the session's register for display.
func (sess *Session) Register() *Register {
	return sess.register
}

// Drafting reports whether a draft is open.
func (sess *Session) Drafting() bool {
	return sess.draftRow != -1
}

// DraftRow returns the index of the row whose draft is open, or -1.
func (sess *Session) DraftRow() int {
	return sess.draftRow
}

// Draft returns a copy of the open draft.
func (sess *Session) Draft() (model.Transaction, bool) {
	if sess.draft == nil {
		return model.Transaction{}, false
	}
	return sess.draft.Copy(), true
}

// AppendRow adds a placeholder row for a new transaction dated date.
// The row stays inert until its first edit opens a draft.
func (sess *Session) AppendRow(date time.Time) int {
	balance := decimal.Zero
	if n := len(sess.register.Rows); n > 0 {
		balance = sess.register.Rows[n-1].Balance
	}
	sess.register.Rows = append(sess.register.Rows, Row{Date: date, Balance: balance})
	return len(sess.register.Rows) - 1
}

// SetDate dates the row's transaction.
func (sess *Session) SetDate(row int, date time.Time) error {
	return sess.edit(row, func(t *model.Transaction) error {
		t.Date = date
		return nil
	})
}

// SetComment sets the comment of one subtransaction of the row.
func (sess *Session) SetComment(row, sub int, comment string) error {
	return sess.edit(row, func(t *model.Transaction) error {
		s, err := subAt(t, sub)
		if err != nil {
			return err
		}
		s.Comment = comment
		return nil
	})
}

// SetOrigin points one subtransaction's origin at another account.
func (sess *Session) SetOrigin(row, sub int, accountID int64) error {
	return sess.edit(row, func(t *model.Transaction) error {
		s, err := subAt(t, sub)
		if err != nil {
			return err
		}
		s.OriginID = accountID
		return nil
	})
}

// SetTarget points one subtransaction's target at another account.
func (sess *Session) SetTarget(row, sub int, accountID int64) error {
	return sess.edit(row, func(t *model.Transaction) error {
		s, err := subAt(t, sub)
		if err != nil {
			return err
		}
		s.TargetID = accountID
		return nil
	})
}

// SetQuantity sets the quantity moved by one subtransaction,
// denominated in its target account's asset.
func (sess *Session) SetQuantity(row, sub int, quantity decimal.Decimal) error {
	return sess.edit(row, func(t *model.Transaction) error {
		s, err := subAt(t, sub)
		if err != nil {
			return err
		}
		s.Quantity = quantity
		return nil
	})
}

// SetQuotePrice prices one subtransaction's target asset in its origin
// asset.
func (sess *Session) SetQuotePrice(row, sub int, price decimal.Decimal) error {
	return sess.edit(row, func(t *model.Transaction) error {
		s, err := subAt(t, sub)
		if err != nil {
			return err
		}
		s.QuotePrice = price
		return nil
	})
}

// AddSub appends an empty subtransaction to the row's draft, turning
// the transaction into a split.
func (sess *Session) AddSub(row int) error {
	return sess.edit(row, func(t *model.Transaction) error {
		t.Subs = append(t.Subs, model.Subtransaction{QuotePrice: one})
		return nil
	})
}

// RemoveSub deletes one subtransaction from the row's draft.
func (sess *Session) RemoveSub(row, sub int) error {
	return sess.edit(row, func(t *model.Transaction) error {
		if sub < 0 || sub >= len(t.Subs) {
			return fmt.Errorf("subtransaction %d out of range", sub)
		}
		t.Subs = append(t.Subs[:sub], t.Subs[sub+1:]...)
		return nil
	})
}

// Persist writes the open draft, rebuilds the affected row in place and
// recomputes running balances from it on. It reports whether anything
// was written. The register keeps its row order even when the edit
// changed the transaction's date; reload to re-sort.
//
// A draft that fails validation stays open so the caller can fix or
// discard it.
func (sess *Session) Persist() (bool, error) {
	if sess.draftRow == -1 {
		return false, nil
	}

	draft := sess.draft
	var err error
	if draft.ID == 0 {
		err = sess.service.Record(draft)
	} else {
		err = sess.service.Update(draft)
	}
	if err != nil {
		return false, err
	}

	tree, err := sess.service.accounts.Tree()
	if err != nil {
		return false, err
	}
	row := sess.draftRow
	sess.register.Rows[row] = buildRow(*draft, sess.register.Account.ID, sess.register.Precision, tree)
	sess.register.RunningBalances(row)
	sess.dropDraft()
	return true, nil
}

// Discard drops the open draft. The register, including the drafted
// row, is left exactly as before the first edit. It reports whether a
// draft was open.
func (sess *Session) Discard() bool {
	if sess.draftRow == -1 {
		return false
	}
	sess.dropDraft()
	return true
}

// DeleteRow removes the row's transaction from storage and from the
// register, recomputing running balances from the removed position. It
// is rejected while another row's draft is open; deleting the drafted
// row drops its draft.
func (sess *Session) DeleteRow(row int) error {
	if row < 0 || row >= len(sess.register.Rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	if sess.draftRow != -1 && sess.draftRow != row {
		return fmt.Errorf("row %d: %w", row, ErrDraftOpen)
	}

	r := sess.register.Rows[row]
	if r.TransactionID != 0 {
		if err := sess.service.Delete(r.TransactionID); err != nil {
			return err
		}
	}
	if sess.draftRow == row {
		sess.dropDraft()
	}
	sess.register.Rows = append(sess.register.Rows[:row], sess.register.Rows[row+1:]...)
	sess.register.RunningBalances(row)
	return nil
}

func (sess *Session) edit(row int, apply func(*model.Transaction) error) error {
	created, err := sess.ensureDraft(row)
	if err != nil {
		return err
	}
	if err := apply(sess.draft); err != nil {
		if created {
			sess.dropDraft()
		}
		return err
	}
	if created && sess.draft.Equal(*sess.original) {
		// Retyping the same values is not an edit.
		sess.dropDraft()
	}
	return nil
}

// ensureDraft opens a draft for row if none is open, reporting whether
// this call opened it.
func (sess *Session) ensureDraft(row int) (bool, error) {
	if row < 0 || row >= len(sess.register.Rows) {
		return false, fmt.Errorf("row %d out of range", row)
	}
	if sess.draftRow != -1 {
		if sess.draftRow != row {
			return false, fmt.Errorf("row %d: %w", row, ErrDraftOpen)
		}
		return false, nil
	}

	r := sess.register.Rows[row]
	var draft model.Transaction
	if r.TransactionID == 0 {
		draft = model.Transaction{
			Date: r.Date,
			Subs: []model.Subtransaction{{TargetID: sess.register.Account.ID, QuotePrice: one}},
		}
	} else {
		t, ok, err := sess.service.store.GetTransaction(r.TransactionID)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, fmt.Errorf("transaction %d: %w", r.TransactionID, ErrNotFound)
		}
		draft = t
	}

	original := draft.Copy()
	sess.draft = &draft
	sess.original = &original
	sess.draftRow = row
	return true, nil
}

func (sess *Session) dropDraft() {
	sess.draftRow = -1
	sess.draft = nil
	sess.original = nil
}

func subAt(t *model.Transaction, i int) (*model.Subtransaction, error) {
	if i < 0 || i >= len(t.Subs) {
		return nil, fmt.Errorf("subtransaction %d out of range", i)
	}
	return &t.Subs[i], nil
}

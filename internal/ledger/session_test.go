package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

// newTestSession opens a session over checking with a paycheck and a
// grocery purchase on the books: +2500 on Jan 5, -45.90 on Jan 12.
func newTestSession(t *testing.T) (*Session, *mockStore, *Service) {
	t.Helper()
	svc, store, _ := newTestService(t)

	paycheck := simpleTx(date("2024-01-05"), salary.ID, checking.ID, "2500")
	require.NoError(t, svc.Record(&paycheck))
	market := simpleTx(date("2024-01-12"), checking.ID, groceries.ID, "45.90")
	require.NoError(t, svc.Record(&market))

	sess, err := svc.NewSession(checking.ID)
	require.NoError(t, err)
	require.Len(t, sess.Register().Rows, 2)
	return sess, store, svc
}

func TestSession_FirstEditOpensDraft(t *testing.T) {
	sess, store, _ := newTestSession(t)
	require.False(t, sess.Drafting())

	require.NoError(t, sess.SetQuantity(1, 0, dec("50")))
	assert.True(t, sess.Drafting())
	assert.Equal(t, 1, sess.DraftRow())

	draft, ok := sess.Draft()
	require.True(t, ok)
	assert.True(t, draft.Subs[0].Quantity.Equal(dec("50")))

	// The edit lives only in the draft: the store and the visible
	// register still hold the recorded values.
	stored, _, err := store.GetTransaction(draft.ID)
	require.NoError(t, err)
	assert.True(t, stored.Subs[0].Quantity.Equal(dec("45.90")))
	assert.True(t, sess.Register().Rows[1].Quantity.Equal(dec("-45.90")))
}

func TestSession_OneDraftAtATime(t *testing.T) {
	sess, _, _ := newTestSession(t)

	require.NoError(t, sess.SetQuantity(1, 0, dec("50")))
	assert.ErrorIs(t, sess.SetDate(0, date("2024-01-06")), ErrDraftOpen)

	// The drafted row itself stays editable.
	assert.NoError(t, sess.SetComment(1, 0, "street market"))
}

func TestSession_RetypingSameValuesIsNotAnEdit(t *testing.T) {
	sess, _, _ := newTestSession(t)

	require.NoError(t, sess.SetDate(1, date("2024-01-12")))
	assert.False(t, sess.Drafting())

	require.NoError(t, sess.SetQuantity(1, 0, dec("45.90")))
	assert.False(t, sess.Drafting())

	// An actual change opens the draft as usual.
	require.NoError(t, sess.SetDate(1, date("2024-01-13")))
	assert.True(t, sess.Drafting())
}

func TestSession_DiscardRestoresRegister(t *testing.T) {
	sess, store, _ := newTestSession(t)

	before := make([]Row, len(sess.Register().Rows))
	copy(before, sess.Register().Rows)

	require.NoError(t, sess.SetQuantity(1, 0, dec("999")))
	require.NoError(t, sess.AddSub(1))
	require.NoError(t, sess.SetDate(1, date("2025-12-31")))

	require.True(t, sess.Discard())
	assert.False(t, sess.Drafting())
	assert.Equal(t, before, sess.Register().Rows)
	assert.False(t, sess.Discard())

	stored, _, err := store.GetTransaction(before[1].TransactionID)
	require.NoError(t, err)
	assert.True(t, stored.Subs[0].Quantity.Equal(dec("45.90")))
	require.Len(t, stored.Subs, 1)
}

func TestSession_PersistRebuildsRowInPlace(t *testing.T) {
	sess, store, _ := newTestSession(t)

	require.NoError(t, sess.SetQuantity(1, 0, dec("50")))
	wrote, err := sess.Persist()
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.False(t, sess.Drafting())

	rows := sess.Register().Rows
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Balance.Equal(dec("2500")), "got %s", rows[0].Balance)
	assert.True(t, rows[1].Quantity.Equal(dec("-50")), "got %s", rows[1].Quantity)
	assert.True(t, rows[1].Balance.Equal(dec("2450")), "got %s", rows[1].Balance)

	stored, _, err := store.GetTransaction(rows[1].TransactionID)
	require.NoError(t, err)
	assert.True(t, stored.Subs[0].Quantity.Equal(dec("50")))
}

func TestSession_PersistKeepsRowOrderUntilReload(t *testing.T) {
	sess, _, svc := newTestSession(t)
	paycheckID := sess.Register().Rows[0].TransactionID
	marketID := sess.Register().Rows[1].TransactionID

	// Redate the paycheck past the market trip.
	require.NoError(t, sess.SetDate(0, date("2024-02-01")))
	wrote, err := sess.Persist()
	require.NoError(t, err)
	require.True(t, wrote)

	rows := sess.Register().Rows
	assert.Equal(t, paycheckID, rows[0].TransactionID)
	assert.True(t, rows[0].Date.Equal(date("2024-02-01")))

	// A fresh session sorts by the new date.
	reloaded, err := svc.NewSession(checking.ID)
	require.NoError(t, err)
	rows = reloaded.Register().Rows
	require.Len(t, rows, 2)
	assert.Equal(t, marketID, rows[0].TransactionID)
	assert.Equal(t, paycheckID, rows[1].TransactionID)
	assert.True(t, rows[0].Balance.Equal(dec("-45.90")), "got %s", rows[0].Balance)
	assert.True(t, rows[1].Balance.Equal(dec("2454.10")), "got %s", rows[1].Balance)
}

func TestSession_AppendRowRecordsNewTransaction(t *testing.T) {
	sess, store, _ := newTestSession(t)

	row := sess.AppendRow(date("2024-01-20"))
	assert.Equal(t, 2, row)
	assert.False(t, sess.Drafting())
	assert.Zero(t, sess.Register().Rows[row].TransactionID)
	assert.True(t, sess.Register().Rows[row].Balance.Equal(dec("2454.10")))

	// New rows default to money flowing into the account; an income
	// only needs the origin filled in.
	require.NoError(t, sess.SetOrigin(row, 0, salary.ID))
	require.NoError(t, sess.SetQuantity(row, 0, dec("100")))
	wrote, err := sess.Persist()
	require.NoError(t, err)
	require.True(t, wrote)

	rows := sess.Register().Rows
	require.Len(t, rows, 3)
	assert.NotZero(t, rows[2].TransactionID)
	assert.True(t, rows[2].Quantity.Equal(dec("100")), "got %s", rows[2].Quantity)
	assert.True(t, rows[2].Balance.Equal(dec("2554.10")), "got %s", rows[2].Balance)
	assert.Equal(t, model.TxIncome, rows[2].Type())
	require.Len(t, rows[2].Entries, 1)
	assert.Equal(t, "Salary", rows[2].Entries[0].Origin.Name)
	assert.Len(t, store.transactions, 3)
}

func TestSession_DiscardKeepsAppendedRow(t *testing.T) {
	sess, store, _ := newTestSession(t)

	row := sess.AppendRow(date("2024-01-20"))
	require.NoError(t, sess.SetQuantity(row, 0, dec("10")))
	require.True(t, sess.Discard())

	// The placeholder stays, inert, until deleted or edited again.
	require.Len(t, sess.Register().Rows, 3)
	assert.Zero(t, sess.Register().Rows[row].TransactionID)
	assert.Len(t, store.transactions, 2)

	require.NoError(t, sess.DeleteRow(row))
	assert.Len(t, sess.Register().Rows, 2)
	assert.Len(t, store.transactions, 2)
}

func TestSession_PersistWithoutDraft(t *testing.T) {
	sess, _, _ := newTestSession(t)

	wrote, err := sess.Persist()
	require.NoError(t, err)
	assert.False(t, wrote)
}

func TestSession_PersistValidationFailureKeepsDraft(t *testing.T) {
	sess, _, _ := newTestSession(t)

	require.NoError(t, sess.SetOrigin(1, 0, 99))
	_, err := sess.Persist()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invariant 2")
	assert.True(t, sess.Drafting())

	require.NoError(t, sess.SetOrigin(1, 0, checking.ID))
	wrote, err := sess.Persist()
	require.NoError(t, err)
	assert.True(t, wrote)
}

func TestSession_SplitEditing(t *testing.T) {
	sess, store, _ := newTestSession(t)

	require.NoError(t, sess.AddSub(1))
	require.NoError(t, sess.SetOrigin(1, 1, card.ID))
	require.NoError(t, sess.SetTarget(1, 1, groceries.ID))
	require.NoError(t, sess.SetQuantity(1, 1, dec("25")))
	wrote, err := sess.Persist()
	require.NoError(t, err)
	require.True(t, wrote)

	// The new leg does not touch checking, so the row's quantity is
	// unchanged, but it now reads as a split.
	rows := sess.Register().Rows
	assert.True(t, rows[1].Quantity.Equal(dec("-45.90")), "got %s", rows[1].Quantity)
	assert.Equal(t, model.TxSplit, rows[1].Type())
	require.Len(t, rows[1].Entries, 1)
	assert.Equal(t, 2, rows[1].Entries[0].SubCount)

	stored, _, err := store.GetTransaction(rows[1].TransactionID)
	require.NoError(t, err)
	require.Len(t, stored.Subs, 2)

	require.NoError(t, sess.RemoveSub(1, 1))
	wrote, err = sess.Persist()
	require.NoError(t, err)
	require.True(t, wrote)

	stored, _, err = store.GetTransaction(rows[1].TransactionID)
	require.NoError(t, err)
	require.Len(t, stored.Subs, 1)
	assert.Equal(t, model.TxOnDebitExpense, sess.Register().Rows[1].Type())
}

func TestSession_DeleteRow(t *testing.T) {
	sess, store, _ := newTestSession(t)
	deleted := sess.Register().Rows[0].TransactionID

	require.NoError(t, sess.DeleteRow(0))

	rows := sess.Register().Rows
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Balance.Equal(dec("-45.90")), "got %s", rows[0].Balance)

	_, ok, err := store.GetTransaction(deleted)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_DeleteRowWhileDrafting(t *testing.T) {
	sess, _, _ := newTestSession(t)

	require.NoError(t, sess.SetQuantity(1, 0, dec("50")))
	assert.ErrorIs(t, sess.DeleteRow(0), ErrDraftOpen)

	// Deleting the drafted row drops its draft along with it.
	require.NoError(t, sess.DeleteRow(1))
	assert.False(t, sess.Drafting())
	assert.Len(t, sess.Register().Rows, 1)
}

func TestSession_RowOutOfRange(t *testing.T) {
	sess, _, _ := newTestSession(t)

	assert.Error(t, sess.SetDate(5, date("2024-01-01")))
	assert.Error(t, sess.SetQuantity(-1, 0, dec("1")))
	assert.Error(t, sess.SetComment(1, 3, "nope"))
	assert.Error(t, sess.DeleteRow(5))
	assert.False(t, sess.Drafting())
}

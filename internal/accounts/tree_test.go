package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

func bankTree() *Tree {
	return NewTree([]model.Account{
		{ID: 1, Type: model.AccountTypeBank, Name: "Banks", AssetID: 1},
		{ID: 2, Type: model.AccountTypeBank, Name: "Checking", AssetID: 1, ParentID: 1},
		{ID: 3, Type: model.AccountTypeBank, Name: "Savings", AssetID: 1, ParentID: 1},
		{ID: 4, Type: model.AccountTypeBank, Name: "Joint", AssetID: 1, ParentID: 2},
		{ID: 5, Type: model.AccountTypeExpense, Name: "Market", AssetID: 1},
	})
}

func TestExtendedName(t *testing.T) {
	tree := bankTree()

	assert.Equal(t, "Banks", tree.ExtendedName(1, ":", false))
	assert.Equal(t, "Banks:Checking", tree.ExtendedName(2, ":", false))
	assert.Equal(t, "Banks:Checking:Joint", tree.ExtendedName(4, ":", false))
	assert.Equal(t, "Assets:Banks:Checking:Joint", tree.ExtendedName(4, ":", true))
	assert.Equal(t, "Expenses:Market", tree.ExtendedName(5, ":", true))
	assert.Equal(t, "Banks > Checking", tree.ExtendedName(2, " > ", false))
	assert.Equal(t, "", tree.ExtendedName(99, ":", false))
}

func TestChildren(t *testing.T) {
	tree := bankTree()

	children := tree.Children(1)
	require.Len(t, children, 2)
	assert.Equal(t, "Checking", children[0].Name)
	assert.Equal(t, "Savings", children[1].Name)

	assert.Empty(t, tree.Children(5))
	assert.Empty(t, tree.Children(99))
}

func TestTopLevel(t *testing.T) {
	tree := bankTree()

	asset := tree.TopLevel(model.GroupAsset)
	require.Len(t, asset, 1)
	assert.Equal(t, "Banks", asset[0].Name)

	expense := tree.TopLevel(model.GroupExpense)
	require.Len(t, expense, 1)
	assert.Equal(t, "Market", expense[0].Name)

	assert.Empty(t, tree.TopLevel(model.GroupEquity))
}

func TestIsAncestor(t *testing.T) {
	tree := bankTree()

	assert.True(t, tree.IsAncestor(1, 2))
	assert.True(t, tree.IsAncestor(1, 4))
	assert.True(t, tree.IsAncestor(2, 4))
	assert.False(t, tree.IsAncestor(4, 1))
	assert.False(t, tree.IsAncestor(2, 2), "an account is not its own ancestor")
	assert.False(t, tree.IsAncestor(5, 4))
}

func TestNewTree_OrphanBecomesTopLevel(t *testing.T) {
	tree := NewTree([]model.Account{
		{ID: 7, Type: model.AccountTypeCash, Name: "Wallet", AssetID: 1, ParentID: 42},
	})

	top := tree.TopLevel(model.GroupAsset)
	require.Len(t, top, 1)
	assert.Equal(t, "Wallet", top[0].Name)
	assert.Equal(t, "Wallet", tree.ExtendedName(7, ":", false))
}

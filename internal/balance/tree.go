package balance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/glourencoffee/mymoneyman/internal/accounts"
	"github.com/glourencoffee/mymoneyman/internal/logger"
	"github.com/glourencoffee/mymoneyman/internal/model"
)

// Node is one account in a balance tree.
type Node struct {
	Account model.Account
	Asset   model.Asset

	// Raw is the ledger balance, Balance the sign-adjusted one shown to
	// users. Cumulative adds every descendant's balance converted into
	// this account's asset.
	Raw        decimal.Decimal
	Balance    decimal.Decimal
	Cumulative decimal.Decimal

	Children []*Node
}

// GroupNode holds the top-level accounts of one account group.
type GroupNode struct {
	Group    model.AccountGroup
	Accounts []*Node
}

// Tree is a full balance snapshot: every account, grouped under the
// five account groups in display order. Unconverted counts descendant
// balances that no quote could convert into their parent's asset; their
// contribution is zero and the affected cumulative balances are partial.
type Tree struct {
	Groups      []GroupNode
	Unconverted int
}

// Tree computes a balance snapshot of the whole hierarchy.
func (c *Calculator) Tree(hierarchy *accounts.Tree) (*Tree, error) {
	tree := &Tree{}
	for _, group := range model.AccountGroups() {
		gn := GroupNode{Group: group}
		for _, account := range hierarchy.TopLevel(group) {
			n, err := c.node(hierarchy, account, &tree.Unconverted)
			if err != nil {
				return nil, err
			}
			gn.Accounts = append(gn.Accounts, n)
		}
		tree.Groups = append(tree.Groups, gn)
	}
	return tree, nil
}

func (c *Calculator) node(hierarchy *accounts.Tree, account model.Account, unconverted *int) (*Node, error) {
	asset, ok, err := c.store.GetAsset(account.AssetID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("account %q references unknown asset %d", account.Name, account.AssetID)
	}

	raw, err := c.Raw(account.ID)
	if err != nil {
		return nil, err
	}

	n := &Node{
		Account: account,
		Asset:   asset,
		Raw:     raw,
		Balance: displayed(account, raw),
	}
	n.Cumulative = n.Balance

	for _, child := range hierarchy.Children(account.ID) {
		cn, err := c.node(hierarchy, child, unconverted)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, cn)

		if cn.Cumulative.IsZero() {
			continue
		}
		price, ok, err := c.quotes.Price(cn.Asset, asset, true)
		if err != nil {
			return nil, err
		}
		if !ok {
			*unconverted++
			logger.L.Debug("child balance not convertible",
				"child", child.Name, "parent", account.Name,
				"from", cn.Asset.ScopedCode(":"), "to", asset.ScopedCode(":"))
			continue
		}
		n.Cumulative = n.Cumulative.Add(cn.Cumulative.Mul(price))
	}
	return n, nil
}

// Total is a grand total over selected groups in one reporting currency.
type Total struct {
	Currency    model.Asset
	Value       decimal.Decimal
	Unconverted int
}

// Total converts the cumulative balances of the top-level accounts of
// the given groups into currency and sums them, rounding the result to
// the currency's precision. Accounts whose asset has no resolvable
// quote are skipped and counted.
func (c *Calculator) Total(tree *Tree, groups []model.AccountGroup, currency model.Asset) (Total, error) {
	total := Total{Currency: currency, Value: decimal.Zero}

	wanted := make(map[model.AccountGroup]bool, len(groups))
	for _, g := range groups {
		wanted[g] = true
	}

	for _, gn := range tree.Groups {
		if !wanted[gn.Group] {
			continue
		}
		for _, n := range gn.Accounts {
			if n.Cumulative.IsZero() {
				continue
			}
			price, ok, err := c.quotes.Price(n.Asset, currency, true)
			if err != nil {
				return Total{}, err
			}
			if !ok {
				total.Unconverted++
				logger.L.Debug("total skips account",
					"account", n.Account.Name,
					"from", n.Asset.ScopedCode(":"), "to", currency.Code)
				continue
			}
			total.Value = total.Value.Add(n.Cumulative.Mul(price))
		}
	}

	total.Value = currency.Round(total.Value)
	return total, nil
}

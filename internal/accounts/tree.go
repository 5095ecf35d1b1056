package accounts

import "github.com/glourencoffee/mymoneyman/internal/model"

// Tree is an immutable snapshot of the account hierarchy, rebuilt from
// storage whenever the hierarchy is displayed or validated.
type Tree struct {
	nodes []node
	byID  map[int64]int
}

type node struct {
	account  model.Account
	parent   int // index into nodes, -1 for top-level
	children []int
}

// NewTree arranges accounts into their hierarchy. An account whose
// parent is missing from the list is treated as top-level.
func NewTree(accounts []model.Account) *Tree {
	t := &Tree{
		nodes: make([]node, 0, len(accounts)),
		byID:  make(map[int64]int, len(accounts)),
	}
	for _, a := range accounts {
		t.byID[a.ID] = len(t.nodes)
		t.nodes = append(t.nodes, node{account: a, parent: -1})
	}
	for i := range t.nodes {
		parentID := t.nodes[i].account.ParentID
		if parentID == 0 {
			continue
		}
		p, ok := t.byID[parentID]
		if !ok {
			continue
		}
		t.nodes[i].parent = p
		t.nodes[p].children = append(t.nodes[p].children, i)
	}
	return t
}

// Len returns the number of accounts in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Get returns an account by id.
func (t *Tree) Get(id int64) (model.Account, bool) {
	i, ok := t.byID[id]
	if !ok {
		return model.Account{}, false
	}
	return t.nodes[i].account, true
}

// Exists reports whether an account id is in the tree.
func (t *Tree) Exists(id int64) bool {
	_, ok := t.byID[id]
	return ok
}

// TypeOf returns the type of the account with the given id.
func (t *Tree) TypeOf(id int64) (model.AccountType, bool) {
	a, ok := t.Get(id)
	return a.Type, ok
}

// All returns every account in storage order.
func (t *Tree) All() []model.Account {
	accounts := make([]model.Account, len(t.nodes))
	for i, n := range t.nodes {
		accounts[i] = n.account
	}
	return accounts
}

// Children returns the direct children of an account.
func (t *Tree) Children(id int64) []model.Account {
	i, ok := t.byID[id]
	if !ok {
		return nil
	}
	children := make([]model.Account, 0, len(t.nodes[i].children))
	for _, c := range t.nodes[i].children {
		children = append(children, t.nodes[c].account)
	}
	return children
}

// TopLevel returns the top-level accounts of a group.
func (t *Tree) TopLevel(group model.AccountGroup) []model.Account {
	var accounts []model.Account
	for _, n := range t.nodes {
		if n.parent == -1 && n.account.Group() == group {
			accounts = append(accounts, n.account)
		}
	}
	return accounts
}

// ExtendedName returns the account's name prefixed by every ancestor
// name, joined by sep. With showGroup, the top-level ancestor's group
// display name is prefixed as well.
func (t *Tree) ExtendedName(id int64, sep string, showGroup bool) string {
	i, ok := t.byID[id]
	if !ok {
		return ""
	}
	name := t.nodes[i].account.Name
	for p := t.nodes[i].parent; p != -1; p = t.nodes[p].parent {
		name = t.nodes[p].account.Name + sep + name
		i = p
	}
	if showGroup {
		name = t.nodes[i].account.Group().DisplayName() + sep + name
	}
	return name
}

// IsAncestor reports whether ancestorID is a proper ancestor of id.
func (t *Tree) IsAncestor(ancestorID, id int64) bool {
	i, ok := t.byID[id]
	if !ok {
		return false
	}
	for p := t.nodes[i].parent; p != -1; p = t.nodes[p].parent {
		if t.nodes[p].account.ID == ancestorID {
			return true
		}
	}
	return false
}

// siblingTaken reports whether name is already used among the siblings
// an account would have under parentID. Children compete within their
// parent regardless of type; top-level accounts compete within their
// group. The account with excludeID is skipped so renames do not
// collide with themselves.
func (t *Tree) siblingTaken(name string, parentID int64, group model.AccountGroup, excludeID int64) bool {
	if parentID != 0 {
		p, ok := t.byID[parentID]
		if !ok {
			return false
		}
		for _, c := range t.nodes[p].children {
			a := t.nodes[c].account
			if a.ID != excludeID && a.Name == name {
				return true
			}
		}
		return false
	}
	for _, n := range t.nodes {
		if n.parent != -1 {
			continue
		}
		a := n.account
		if a.ID != excludeID && a.Name == name && a.Group() == group {
			return true
		}
	}
	return false
}

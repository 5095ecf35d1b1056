package model

// AccountType is the fine-grained account classification. Every type maps
// onto exactly one AccountGroup.
type AccountType string

const (
	AccountTypeAsset      AccountType = "asset"
	AccountTypeCash       AccountType = "cash"
	AccountTypeBank       AccountType = "bank"
	AccountTypeReceivable AccountType = "receivable"
	AccountTypeSecurity   AccountType = "security"
	AccountTypeLiability  AccountType = "liability"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypePayable    AccountType = "payable"
	AccountTypeIncome     AccountType = "income"
	AccountTypeExpense    AccountType = "expense"
	AccountTypeEquity     AccountType = "equity"
)

// AccountTypes lists every account type.
func AccountTypes() []AccountType {
	return []AccountType{
		AccountTypeAsset,
		AccountTypeCash,
		AccountTypeBank,
		AccountTypeReceivable,
		AccountTypeSecurity,
		AccountTypeLiability,
		AccountTypeCreditCard,
		AccountTypePayable,
		AccountTypeIncome,
		AccountTypeExpense,
		AccountTypeEquity,
	}
}

// AccountGroup is the top-level accounting classification.
type AccountGroup string

const (
	GroupAsset     AccountGroup = "asset"
	GroupLiability AccountGroup = "liability"
	GroupIncome    AccountGroup = "income"
	GroupExpense   AccountGroup = "expense"
	GroupEquity    AccountGroup = "equity"
)

// AccountGroups lists every account group in display order.
func AccountGroups() []AccountGroup {
	return []AccountGroup{GroupAsset, GroupLiability, GroupIncome, GroupExpense, GroupEquity}
}

// GroupOf maps an account type to its group.
func GroupOf(t AccountType) AccountGroup {
	switch t {
	case AccountTypeAsset, AccountTypeCash, AccountTypeBank, AccountTypeReceivable, AccountTypeSecurity:
		return GroupAsset
	case AccountTypeLiability, AccountTypeCreditCard, AccountTypePayable:
		return GroupLiability
	case AccountTypeIncome:
		return GroupIncome
	case AccountTypeExpense:
		return GroupExpense
	case AccountTypeEquity:
		return GroupEquity
	}
	return ""
}

// AccountTypesOf returns the account types belonging to a group.
func AccountTypesOf(g AccountGroup) []AccountType {
	var types []AccountType
	for _, t := range AccountTypes() {
		if GroupOf(t) == g {
			types = append(types, t)
		}
	}
	return types
}

// DisplayName returns the group name shown in extended account names and
// balance trees.
func (g AccountGroup) DisplayName() string {
	switch g {
	case GroupAsset:
		return "Assets"
	case GroupLiability:
		return "Liabilities"
	case GroupIncome:
		return "Incomes"
	case GroupExpense:
		return "Expenses"
	case GroupEquity:
		return "Equity"
	}
	return ""
}

// CreditPositive reports whether the group's displayed balance flips the
// raw ledger sign. Income, liability and equity accounts accumulate
// negative ledger balances that users read as positive amounts.
func (g AccountGroup) CreditPositive() bool {
	switch g {
	case GroupLiability, GroupIncome, GroupEquity:
		return true
	}
	return false
}

// KindFor returns the asset kind an account of type t must hold:
// security-typed accounts hold securities, every other type a currency.
func (t AccountType) KindFor() AssetKind {
	if t == AccountTypeSecurity {
		return KindSecurity
	}
	return KindCurrency
}

// Account is one node of the account hierarchy.
type Account struct {
	ID          int64
	Type        AccountType
	Name        string
	Description string
	AssetID     int64
	ParentID    int64 // 0 = top-level
	Precision   int32 // display override; values <= 0 inherit the asset's
}

// Group returns the account's group.
func (a Account) Group() AccountGroup {
	return GroupOf(a.Type)
}

// DisplayPrecision resolves the precision used to round and render the
// account's amounts, falling back to the asset when no override is set.
func (a Account) DisplayPrecision(asset Asset) int32 {
	if a.Precision > 0 {
		return a.Precision
	}
	return asset.Precision
}

package model

// TransactionType is the semantic category of a transaction, derived from
// the account types on both sides of its single subtransaction. It is
// informational only and never blocks a transaction from being recorded.
type TransactionType string

const (
	TxUndefined         TransactionType = "undefined"
	TxOpening           TransactionType = "opening"
	TxIncome            TransactionType = "income"
	TxExpense           TransactionType = "expense"
	TxCashExpense       TransactionType = "cash_expense"
	TxOnDebitExpense    TransactionType = "on_debit_expense"
	TxOnCreditExpense   TransactionType = "on_credit_expense"
	TxDeposit           TransactionType = "deposit"
	TxWithdrawal        TransactionType = "withdrawal"
	TxCashTransfer      TransactionType = "cash_transfer"
	TxBankTransfer      TransactionType = "bank_transfer"
	TxAssetTransfer     TransactionType = "asset_transfer"
	TxInvestment        TransactionType = "investment"
	TxDivestment        TransactionType = "divestment"
	TxForeignExchange   TransactionType = "foreign_exchange"
	TxCreditCardPayment TransactionType = "credit_card_payment"
	TxCreditUsage       TransactionType = "credit_usage"
	TxRepayment         TransactionType = "repayment"
	TxLiabilityTransfer TransactionType = "liability_transfer"
	TxSplit             TransactionType = "split"
)

// Classify maps an origin/target account type pair to a transaction type.
// The table is keyed on account types, not groups: a withdrawal is
// bank-to-cash specifically, not asset-group-to-asset-group. Pairs with a
// receivable or payable origin, and any other unmapped combination,
// classify as Undefined.
func Classify(origin, target AccountType) TransactionType {
	switch origin {
	case AccountTypeEquity:
		return TxOpening

	case AccountTypeIncome:
		return TxIncome

	case AccountTypeAsset:
		switch target {
		case AccountTypeCash, AccountTypeBank, AccountTypeAsset:
			return TxAssetTransfer
		case AccountTypeSecurity:
			return TxInvestment
		case AccountTypeExpense:
			return TxExpense
		case AccountTypeLiability, AccountTypeCreditCard:
			return TxRepayment
		}

	case AccountTypeCash:
		switch target {
		case AccountTypeCash:
			return TxCashTransfer
		case AccountTypeBank:
			return TxDeposit
		case AccountTypeSecurity:
			return TxInvestment
		case AccountTypeAsset:
			return TxAssetTransfer
		case AccountTypeExpense:
			return TxCashExpense
		case AccountTypeLiability, AccountTypeCreditCard:
			return TxRepayment
		}

	case AccountTypeBank:
		switch target {
		case AccountTypeBank:
			return TxBankTransfer
		case AccountTypeCash:
			return TxWithdrawal
		case AccountTypeSecurity:
			return TxInvestment
		case AccountTypeAsset:
			return TxAssetTransfer
		case AccountTypeExpense:
			return TxOnDebitExpense
		case AccountTypeLiability, AccountTypeCreditCard:
			return TxRepayment
		}

	case AccountTypeSecurity:
		switch target {
		case AccountTypeCash, AccountTypeBank, AccountTypeAsset:
			return TxDivestment
		case AccountTypeSecurity:
			return TxAssetTransfer
		}

	case AccountTypeLiability, AccountTypeCreditCard:
		switch target {
		case AccountTypeCash, AccountTypeBank, AccountTypeSecurity, AccountTypeAsset:
			if origin == AccountTypeLiability {
				return TxCreditUsage
			}
			return TxCreditCardPayment
		case AccountTypeLiability, AccountTypeCreditCard:
			return TxLiabilityTransfer
		case AccountTypeExpense:
			return TxOnCreditExpense
		}
	}

	return TxUndefined
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		origin AccountType
		target AccountType
		want   TransactionType
	}{
		{AccountTypeEquity, AccountTypeBank, TxOpening},
		{AccountTypeEquity, AccountTypeExpense, TxOpening},
		{AccountTypeIncome, AccountTypeBank, TxIncome},
		{AccountTypeIncome, AccountTypeCash, TxIncome},

		{AccountTypeAsset, AccountTypeCash, TxAssetTransfer},
		{AccountTypeAsset, AccountTypeBank, TxAssetTransfer},
		{AccountTypeAsset, AccountTypeAsset, TxAssetTransfer},
		{AccountTypeAsset, AccountTypeSecurity, TxInvestment},
		{AccountTypeAsset, AccountTypeExpense, TxExpense},
		{AccountTypeAsset, AccountTypeLiability, TxRepayment},
		{AccountTypeAsset, AccountTypeCreditCard, TxRepayment},
		{AccountTypeAsset, AccountTypeIncome, TxUndefined},

		{AccountTypeCash, AccountTypeCash, TxCashTransfer},
		{AccountTypeCash, AccountTypeBank, TxDeposit},
		{AccountTypeCash, AccountTypeSecurity, TxInvestment},
		{AccountTypeCash, AccountTypeAsset, TxAssetTransfer},
		{AccountTypeCash, AccountTypeExpense, TxCashExpense},
		{AccountTypeCash, AccountTypeLiability, TxRepayment},
		{AccountTypeCash, AccountTypeCreditCard, TxRepayment},

		{AccountTypeBank, AccountTypeBank, TxBankTransfer},
		{AccountTypeBank, AccountTypeCash, TxWithdrawal},
		{AccountTypeBank, AccountTypeSecurity, TxInvestment},
		{AccountTypeBank, AccountTypeAsset, TxAssetTransfer},
		{AccountTypeBank, AccountTypeExpense, TxOnDebitExpense},
		{AccountTypeBank, AccountTypeLiability, TxRepayment},
		{AccountTypeBank, AccountTypeCreditCard, TxRepayment},

		{AccountTypeSecurity, AccountTypeCash, TxDivestment},
		{AccountTypeSecurity, AccountTypeBank, TxDivestment},
		{AccountTypeSecurity, AccountTypeAsset, TxDivestment},
		{AccountTypeSecurity, AccountTypeSecurity, TxAssetTransfer},
		{AccountTypeSecurity, AccountTypeExpense, TxUndefined},

		{AccountTypeLiability, AccountTypeCash, TxCreditUsage},
		{AccountTypeLiability, AccountTypeBank, TxCreditUsage},
		{AccountTypeLiability, AccountTypeSecurity, TxCreditUsage},
		{AccountTypeLiability, AccountTypeAsset, TxCreditUsage},
		{AccountTypeLiability, AccountTypeLiability, TxLiabilityTransfer},
		{AccountTypeLiability, AccountTypeCreditCard, TxLiabilityTransfer},
		{AccountTypeLiability, AccountTypeExpense, TxOnCreditExpense},

		{AccountTypeCreditCard, AccountTypeCash, TxCreditCardPayment},
		{AccountTypeCreditCard, AccountTypeBank, TxCreditCardPayment},
		{AccountTypeCreditCard, AccountTypeLiability, TxLiabilityTransfer},
		{AccountTypeCreditCard, AccountTypeExpense, TxOnCreditExpense},

		{AccountTypeReceivable, AccountTypeBank, TxUndefined},
		{AccountTypePayable, AccountTypeExpense, TxUndefined},
		{AccountTypeExpense, AccountTypeBank, TxUndefined},
	}

	for _, tt := range tests {
		got := Classify(tt.origin, tt.target)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.origin, tt.target)
	}
}

func TestClassify_EveryPairHasAType(t *testing.T) {
	for _, origin := range AccountTypes() {
		for _, target := range AccountTypes() {
			got := Classify(origin, target)
			assert.NotEmpty(t, got, "%s -> %s", origin, target)
		}
	}
}

func TestGroupOf(t *testing.T) {
	tests := []struct {
		accountType AccountType
		want        AccountGroup
	}{
		{AccountTypeAsset, GroupAsset},
		{AccountTypeCash, GroupAsset},
		{AccountTypeBank, GroupAsset},
		{AccountTypeReceivable, GroupAsset},
		{AccountTypeSecurity, GroupAsset},
		{AccountTypeLiability, GroupLiability},
		{AccountTypeCreditCard, GroupLiability},
		{AccountTypePayable, GroupLiability},
		{AccountTypeIncome, GroupIncome},
		{AccountTypeExpense, GroupExpense},
		{AccountTypeEquity, GroupEquity},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GroupOf(tt.accountType), "type %s", tt.accountType)
	}
}

func TestCreditPositive(t *testing.T) {
	assert.False(t, GroupAsset.CreditPositive())
	assert.False(t, GroupExpense.CreditPositive())
	assert.True(t, GroupLiability.CreditPositive())
	assert.True(t, GroupIncome.CreditPositive())
	assert.True(t, GroupEquity.CreditPositive())
}

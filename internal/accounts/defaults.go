package accounts

import "github.com/glourencoffee/mymoneyman/internal/model"

// DefaultChart returns a starter chart of accounts for a personal book.
// Rows leave Asset empty, which callers resolve to the book's reporting
// currency, and parents precede their children.
func DefaultChart() []ChartRow {
	return []ChartRow{
		{Name: "Cash", Type: model.AccountTypeCash, Description: "Wallet money"},
		{Name: "Checking", Type: model.AccountTypeBank},
		{Name: "Savings", Type: model.AccountTypeBank},
		{Name: "Credit Card", Type: model.AccountTypeCreditCard},
		{Name: "Salary", Type: model.AccountTypeIncome},
		{Name: "Other Income", Type: model.AccountTypeIncome},
		{Name: "Food", Type: model.AccountTypeExpense},
		{Name: "Groceries", Parent: "Expenses:Food", Type: model.AccountTypeExpense},
		{Name: "Restaurants", Parent: "Expenses:Food", Type: model.AccountTypeExpense},
		{Name: "Housing", Type: model.AccountTypeExpense},
		{Name: "Rent", Parent: "Expenses:Housing", Type: model.AccountTypeExpense},
		{Name: "Utilities", Parent: "Expenses:Housing", Type: model.AccountTypeExpense},
		{Name: "Transport", Type: model.AccountTypeExpense},
		{Name: "Leisure", Type: model.AccountTypeExpense},
		{Name: "Opening Balances", Type: model.AccountTypeEquity, Description: "Balances carried into the book"},
	}
}

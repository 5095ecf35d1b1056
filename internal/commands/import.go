package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/glourencoffee/mymoneyman/internal/model"
	"github.com/glourencoffee/mymoneyman/internal/statement"
)

func newTxImportCommand(opts *rootOptions) *cobra.Command {
	var account string
	var counter string
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank statement",
		Long: `Import a bank statement CSV into an account. Every statement line
becomes a transaction between the account and the counter account:
inflows move money in from the counter account, outflows move money
out to it. Both accounts should hold the statement's currency.

The generic format is a date,description,amount CSV with ISO dates and
a header row.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := statement.DefaultRegistry()
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown statement format %q, have: %s",
					format, strings.Join(registry.Formats(), ", "))
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			movements, err := parser.Parse(f)
			if err != nil {
				return err
			}

			b, err := openBook(opts.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			tree, err := b.accounts.Tree()
			if err != nil {
				return err
			}
			acct, err := findAccount(tree, account)
			if err != nil {
				return err
			}
			cnt, err := findAccount(tree, counter)
			if err != nil {
				return err
			}

			par := decimal.NewFromInt(1)
			for i, m := range movements {
				sub := model.Subtransaction{Comment: m.Description, QuotePrice: par}
				if m.Amount.Sign() >= 0 {
					sub.OriginID = cnt.ID
					sub.TargetID = acct.ID
					sub.Quantity = m.Amount
				} else {
					sub.OriginID = acct.ID
					sub.TargetID = cnt.ID
					sub.Quantity = m.Amount.Neg()
				}

				t := model.Transaction{Date: m.Date, Subs: []model.Subtransaction{sub}}
				if err := b.ledger.Record(&t); err != nil {
					return fmt.Errorf("movement %d (%s): %w", i+1, m.Description, err)
				}
			}

			fmt.Printf("Imported %d transactions into %s\n",
				len(movements), tree.ExtendedName(acct.ID, ":", true))
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account the statement belongs to")
	cmd.Flags().StringVar(&counter, "counter", "", "counterpart account for every movement")
	cmd.Flags().StringVar(&format, "format", "generic", "statement format")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("counter")

	return cmd
}

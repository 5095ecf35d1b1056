package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/glourencoffee/mymoneyman/internal/accounts"
	"github.com/glourencoffee/mymoneyman/internal/ledger"
	"github.com/glourencoffee/mymoneyman/internal/model"
)

const dateLayout = "2006-01-02"

func newTxCommand(opts *rootOptions) *cobra.Command {
	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and inspect transactions",
	}
	txCmd.AddCommand(newTxAddCommand(opts))
	txCmd.AddCommand(newTxListCommand(opts))
	txCmd.AddCommand(newTxRemoveCommand(opts))
	txCmd.AddCommand(newTxImportCommand(opts))
	txCmd.AddCommand(newTxExportCommand(opts))
	txCmd.AddCommand(newTxRestoreCommand(opts))
	return txCmd
}

func newTxAddCommand(opts *rootOptions) *cobra.Command {
	var date string
	var from string
	var to string
	var quantity string
	var price string
	var comment string
	var splits []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record a transaction moving value from one account into another.

A simple transaction takes --from, --to and --quantity. Split
transactions add further movements with repeated --split flags, each in
the form ORIGIN>TARGET=QUANTITY[@PRICE]. Quantities are denominated in
the target account's asset; the price expresses one unit of the target
asset in the origin asset and defaults to 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			when := time.Now().UTC().Truncate(time.Second)
			if date != "" {
				var err error
				when, err = time.Parse(dateLayout, date)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", date, err)
				}
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

			t := model.Transaction{Date: when}
			if from != "" || to != "" || quantity != "" {
				leg, err := parseMainLeg(tree, from, to, quantity, price, comment)
				if err != nil {
					return err
				}
				t.Subs = append(t.Subs, leg)
			}
			for _, s := range splits {
				leg, err := parseLeg(tree, s)
				if err != nil {
					return err
				}
				t.Subs = append(t.Subs, leg)
			}
			if len(t.Subs) == 0 {
				return fmt.Errorf("transaction needs --from/--to/--quantity or --split legs")
			}

			if err := b.ledger.Record(&t); err != nil {
				return err
			}

			fmt.Printf("Recorded transaction %d (%s)\n", t.ID, t.Type(tree))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date as YYYY-MM-DD (defaults to now)")
	cmd.Flags().StringVar(&from, "from", "", "origin account path")
	cmd.Flags().StringVar(&to, "to", "", "target account path")
	cmd.Flags().StringVar(&quantity, "quantity", "", "quantity in the target account's asset")
	cmd.Flags().StringVar(&price, "price", "", "target asset priced in the origin asset (defaults to 1)")
	cmd.Flags().StringVar(&comment, "comment", "", "movement comment")
	cmd.Flags().StringArrayVar(&splits, "split", nil, "extra movement as ORIGIN>TARGET=QUANTITY[@PRICE], repeatable")

	return cmd
}

func parseMainLeg(tree *accounts.Tree, from, to, quantity, price, comment string) (model.Subtransaction, error) {
	if from == "" || to == "" || quantity == "" {
		return model.Subtransaction{}, fmt.Errorf("--from, --to and --quantity go together")
	}
	origin, err := findAccount(tree, from)
	if err != nil {
		return model.Subtransaction{}, err
	}
	target, err := findAccount(tree, to)
	if err != nil {
		return model.Subtransaction{}, err
	}
	q, err := decimal.NewFromString(quantity)
	if err != nil {
		return model.Subtransaction{}, fmt.Errorf("parsing quantity %q: %w", quantity, err)
	}
	p := decimal.NewFromInt(1)
	if price != "" {
		p, err = decimal.NewFromString(price)
		if err != nil {
			return model.Subtransaction{}, fmt.Errorf("parsing price %q: %w", price, err)
		}
	}
	return model.Subtransaction{
		Comment:    comment,
		OriginID:   origin.ID,
		TargetID:   target.ID,
		Quantity:   q,
		QuotePrice: p,
	}, nil
}

// parseLeg parses a --split value of the form
// ORIGIN>TARGET=QUANTITY[@PRICE].
func parseLeg(tree *accounts.Tree, s string) (model.Subtransaction, error) {
	lhs, amount, ok := strings.Cut(s, "=")
	if !ok {
		return model.Subtransaction{}, fmt.Errorf("leg %q: want ORIGIN>TARGET=QUANTITY[@PRICE]", s)
	}
	originPath, targetPath, ok := strings.Cut(lhs, ">")
	if !ok {
		return model.Subtransaction{}, fmt.Errorf("leg %q: want ORIGIN>TARGET=QUANTITY[@PRICE]", s)
	}

	quantityStr, priceStr := amount, "1"
	if q, p, ok := strings.Cut(amount, "@"); ok {
		quantityStr, priceStr = q, p
	}

	origin, err := findAccount(tree, strings.TrimSpace(originPath))
	if err != nil {
		return model.Subtransaction{}, err
	}
	target, err := findAccount(tree, strings.TrimSpace(targetPath))
	if err != nil {
		return model.Subtransaction{}, err
	}
	quantity, err := decimal.NewFromString(strings.TrimSpace(quantityStr))
	if err != nil {
		return model.Subtransaction{}, fmt.Errorf("leg %q: parsing quantity: %w", s, err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(priceStr))
	if err != nil {
		return model.Subtransaction{}, fmt.Errorf("leg %q: parsing price: %w", s, err)
	}

	return model.Subtransaction{
		OriginID:   origin.ID,
		TargetID:   target.ID,
		Quantity:   quantity,
		QuotePrice: price,
	}, nil
}

func newTxListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <account>",
		Short: "List an account's transactions with running balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(opts.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			tree, err := b.accounts.Tree()
			if err != nil {
				return err
			}
			a, err := findAccount(tree, args[0])
			if err != nil {
				return err
			}

			reg, err := b.ledger.Register(a.ID)
			if err != nil {
				return err
			}

			fmt.Printf("%s  (%s)\n", tree.ExtendedName(a.ID, ":", true), reg.Asset.ScopedCode(":"))
			fmt.Printf("%-5s %-11s %-19s %-32s %14s %14s\n",
				"ID", "DATE", "TYPE", "TRANSFERENCE", "QUANTITY", "BALANCE")
			for _, row := range reg.Rows {
				fmt.Printf("%-5d %-11s %-19s %-32s %14s %14s\n",
					row.TransactionID,
					row.Date.Format(dateLayout),
					row.Type(),
					transference(tree, row, a.ID),
					row.Quantity.StringFixed(reg.Precision),
					row.Balance.StringFixed(reg.Precision))
			}
			return nil
		},
	}
}

// transference names the other side of a register row, or "(Split)"
// when there is more than one.
func transference(tree *accounts.Tree, row ledger.Row, accountID int64) string {
	if len(row.Entries) != 1 || row.Entries[0].SubCount > 1 {
		return "(Split)"
	}
	other := row.Entries[0].Other(accountID)
	return tree.ExtendedName(other.ID, ":", true)
}

func newTxRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a transaction and all its movements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parsing transaction id %q: %w", args[0], err)
			}

			b, err := openBook(opts.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.ledger.Delete(id); err != nil {
				return err
			}

			fmt.Printf("Removed transaction %d\n", id)
			return nil
		},
	}
}

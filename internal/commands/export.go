package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glourencoffee/mymoneyman/internal/ledger"
)

func newTxExportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export every transaction as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(opts.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			txs, err := b.ledger.List()
			if err != nil {
				return err
			}
			tree, err := b.accounts.Tree()
			if err != nil {
				return err
			}
			legs := ledger.ExportLegs(txs, func(accountID int64) string {
				return tree.ExtendedName(accountID, ":", true)
			})

			out := os.Stdout
			if len(args) > 0 {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("creating %s: %w", args[0], err)
				}
				defer f.Close()
				out = f
			}
			return ledger.WriteCSV(out, legs)
		},
	}
}

func newTxRestoreCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Replay transactions exported with \"tx export\"",
		Long: `Replay a transaction CSV into the book. Account paths in the file
are resolved by name, so the chart of accounts must already exist, for
example through "account import". Replayed transactions get fresh ids.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			legs, err := ledger.ReadCSV(f)
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
			txs, err := ledger.GroupLegs(legs, func(path string) (int64, error) {
				a, err := findAccount(tree, path)
				if err != nil {
					return 0, err
				}
				return a.ID, nil
			})
			if err != nil {
				return err
			}

			for i := range txs {
				if err := b.ledger.Record(&txs[i]); err != nil {
					return fmt.Errorf("transaction %d: %w", i+1, err)
				}
			}

			fmt.Printf("Restored %d transactions\n", len(txs))
			return nil
		},
	}
}

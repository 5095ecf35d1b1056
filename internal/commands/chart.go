package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glourencoffee/mymoneyman/internal/accounts"
	"github.com/glourencoffee/mymoneyman/internal/assets"
)

func newAccountExportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the chart of accounts as CSV",
		Args:  cobra.MaximumNArgs(1),
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
			rows := accounts.ExportChart(tree, func(assetID int64) string {
				a, err := b.assets.Get(assetID)
				if err != nil {
					return ""
				}
				return a.ScopedCode(":")
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
			return accounts.WriteChart(out, rows)
		},
	}
}

func newAccountImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a chart of accounts from CSV",
		Long: `Import accounts from a CSV in the layout written by "account export".
Parents must precede their children. Rows with an empty asset column
use the book's reporting currency.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			rows, err := accounts.ReadChart(f)
			if err != nil {
				return err
			}

			b, err := openBook(opts.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			n, err := replayChart(b.assets, b.accounts, rows, opts.cfg.Reporting.Currency)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d accounts\n", n)
			return nil
		},
	}
}

// replayChart creates accounts from chart rows in order. Parent paths
// resolve against the accounts created so far, and empty asset columns
// fall back to defaultAsset.
func replayChart(assetSvc *assets.Service, accountSvc *accounts.Service, rows []accounts.ChartRow, defaultAsset string) (int, error) {
	for i, row := range rows {
		code := row.Asset
		if code == "" {
			code = defaultAsset
		}
		held, err := assetSvc.Find(code)
		if err != nil {
			return i, fmt.Errorf("account %q: asset %s: %w", row.Name, code, err)
		}

		var parentID int64
		if row.Parent != "" {
			tree, err := accountSvc.Tree()
			if err != nil {
				return i, err
			}
			parent, err := findAccount(tree, row.Parent)
			if err != nil {
				return i, fmt.Errorf("account %q: parent: %w", row.Name, err)
			}
			parentID = parent.ID
		}

		_, err = accountSvc.Create(accounts.CreateParams{
			Type:        row.Type,
			Name:        row.Name,
			Description: row.Description,
			AssetID:     held.ID,
			ParentID:    parentID,
			Precision:   row.Precision,
		})
		if err != nil {
			return i, fmt.Errorf("account %q: %w", row.Name, err)
		}
	}
	return len(rows), nil
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glourencoffee/mymoneyman/internal/assets"
	"github.com/glourencoffee/mymoneyman/internal/model"
)

func newSecurityCommand(opts *rootOptions) *cobra.Command {
	securityCmd := &cobra.Command{
		Use:   "security",
		Short: "Manage securities",
	}
	securityCmd.AddCommand(newSecurityAddCommand(opts))
	securityCmd.AddCommand(newSecurityListCommand(opts))
	return securityCmd
}

func newSecurityAddCommand(opts *rootOptions) *cobra.Command {
	var name string
	var secType string
	var isin string
	var precision int32
	var currency string

	cmd := &cobra.Command{
		Use:   "add <market:code>",
		Short: "Add a security",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, code, ok := strings.Cut(args[0], ":")
			if !ok {
				return fmt.Errorf("security must be given as MARKET:CODE, got %q", args[0])
			}

			b, err := openBook(opts.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			if currency == "" {
				currency = opts.cfg.Reporting.Currency
			}
			cur, err := b.assets.Find(currency)
			if err != nil {
				return err
			}

			a, err := b.assets.AddSecurity(assets.SecurityParams{
				Scope:      scope,
				Code:       code,
				Name:       name,
				Type:       model.SecurityType(secType),
				ISIN:       isin,
				Precision:  precision,
				CurrencyID: cur.ID,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Added security %s (%s), priced in %s\n", a.ScopedCode(":"), a.Name, cur.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&secType, "type", "stock", "security type: stock, reit or bond")
	cmd.Flags().StringVar(&isin, "isin", "", "international securities identification number")
	cmd.Flags().Int32Var(&precision, "precision", 0, "decimal places of holdings")
	cmd.Flags().StringVar(&currency, "currency", "", "denominating currency code (defaults to the reporting currency)")

	return cmd
}

func newSecurityListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List securities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(opts.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			securities, err := b.assets.Securities()
			if err != nil {
				return err
			}
			for _, sec := range securities {
				cur, err := b.assets.Get(sec.CurrencyID)
				if err != nil {
					return err
				}
				fmt.Printf("%-16s %-28s %-6s in %s\n",
					sec.ScopedCode(":"), sec.Name, sec.SecurityType, cur.Code)
			}
			return nil
		},
	}
}

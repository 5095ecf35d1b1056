package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glourencoffee/mymoneyman/internal/assets"
)

func newCurrencyCommand(opts *rootOptions) *cobra.Command {
	currencyCmd := &cobra.Command{
		Use:   "currency",
		Short: "Manage currencies",
	}
	currencyCmd.AddCommand(newCurrencyAddCommand(opts))
	currencyCmd.AddCommand(newCurrencyListCommand(opts))
	return currencyCmd
}

func newCurrencyAddCommand(opts *rootOptions) *cobra.Command {
	var name string
	var symbol string
	var precision int32
	var fiat bool

	cmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Add a currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(opts.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			a, err := b.assets.AddCurrency(assets.CurrencyParams{
				Code:      args[0],
				Name:      name,
				Symbol:    symbol,
				Precision: precision,
				IsFiat:    fiat,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Added currency %s (%s)\n", a.Code, a.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the code)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "currency symbol (defaults to the ISO symbol)")
	cmd.Flags().Int32Var(&precision, "precision", 0, "decimal places (defaults to the ISO fraction)")
	cmd.Flags().BoolVar(&fiat, "fiat", true, "whether the currency is fiat")

	return cmd
}

func newCurrencyListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(opts.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			currencies, err := b.assets.Currencies()
			if err != nil {
				return err
			}
			for _, c := range currencies {
				kind := "fiat"
				if !c.IsFiat {
					kind = "non-fiat"
				}
				fmt.Printf("%-6s %-28s %-4s %d decimals, %s\n",
					c.Code, c.Name, c.Symbol, c.Precision, kind)
			}
			return nil
		},
	}
}

package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/glourencoffee/mymoneyman/internal/balance"
	"github.com/glourencoffee/mymoneyman/internal/format"
	"github.com/glourencoffee/mymoneyman/internal/model"
)

func newBalanceCommand(opts *rootOptions) *cobra.Command {
	var short bool
	var totalOnly bool
	var currency string

	cmd := &cobra.Command{
		Use:   "balance [group ...]",
		Short: "Show account balances",
		Long: `Show the balance tree of the selected account groups: assets,
liabilities, incomes, expenses and equity. With no groups, all five are
shown. Cumulative amounts include child accounts, converted with the
most recent quotes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := parseGroups(args)
			if err != nil {
				return err
			}

			b, err := openBook(opts.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			hierarchy, err := b.accounts.Tree()
			if err != nil {
				return err
			}
			bt, err := b.balance.Tree(hierarchy)
			if err != nil {
				return err
			}

			if currency == "" {
				currency = opts.cfg.Reporting.Currency
			}
			cur, err := b.assets.Find(currency)
			if err != nil {
				return err
			}
			short = short || opts.cfg.Reporting.ShortFormat

			if totalOnly {
				return printTotals(b.balance, bt, groups, cur, short)
			}

			wanted := make(map[model.AccountGroup]bool, len(groups))
			for _, g := range groups {
				wanted[g] = true
			}
			for _, gn := range bt.Groups {
				if !wanted[gn.Group] || len(gn.Accounts) == 0 {
					continue
				}
				fmt.Println(gn.Group.DisplayName())
				for _, n := range gn.Accounts {
					printNode(n, 1, short)
				}
			}
			if bt.Unconverted > 0 {
				fmt.Printf("\n%d balances had no usable quote and are left out of cumulative amounts\n", bt.Unconverted)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "render amounts in abbreviated notation")
	cmd.Flags().BoolVar(&totalOnly, "total", false, "print group totals in the reporting currency")
	cmd.Flags().StringVar(&currency, "currency", "", "reporting currency override")

	return cmd
}

func printNode(n *balance.Node, depth int, short bool) {
	indent := strings.Repeat("  ", depth)
	name := n.Account.Name
	if pad := 40 - len(indent) - len(name); pad > 0 {
		name += strings.Repeat(" ", pad)
	}
	fmt.Printf("%s%s %s\n", indent, name, format.Amount(n.Cumulative, n.Asset, short))
	for _, child := range n.Children {
		printNode(child, depth+1, short)
	}
}

func printTotals(calc *balance.Calculator, bt *balance.Tree, groups []model.AccountGroup, cur model.Asset, short bool) error {
	var assetTotal, liabilityTotal decimal.Decimal
	sawAssets, sawLiabilities := false, false
	unconverted := 0

	for _, g := range groups {
		total, err := calc.Total(bt, []model.AccountGroup{g}, cur)
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %s\n", g.DisplayName(), format.Amount(total.Value, cur, short))
		unconverted += total.Unconverted

		switch g {
		case model.GroupAsset:
			assetTotal, sawAssets = total.Value, true
		case model.GroupLiability:
			liabilityTotal, sawLiabilities = total.Value, true
		}
	}

	if sawAssets && sawLiabilities {
		fmt.Printf("%-12s %s\n", "Net worth", format.Amount(assetTotal.Sub(liabilityTotal), cur, short))
	}
	if unconverted > 0 {
		fmt.Printf("\n%d balances had no usable quote; totals are partial\n", unconverted)
	}
	return nil
}

func parseGroups(args []string) ([]model.AccountGroup, error) {
	if len(args) == 0 {
		return model.AccountGroups(), nil
	}
	var groups []model.AccountGroup
	for _, arg := range args {
		g, ok := groupByName(arg)
		if !ok {
			return nil, fmt.Errorf("unknown account group %q", arg)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func groupByName(name string) (model.AccountGroup, bool) {
	for _, g := range model.AccountGroups() {
		if strings.EqualFold(string(g), name) || strings.EqualFold(g.DisplayName(), name) {
			return g, true
		}
	}
	return "", false
}

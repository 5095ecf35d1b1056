package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glourencoffee/mymoneyman/internal/accounts"
	"github.com/glourencoffee/mymoneyman/internal/model"
)

func newAccountCommand(opts *rootOptions) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the account hierarchy",
	}
	accountCmd.AddCommand(newAccountAddCommand(opts))
	accountCmd.AddCommand(newAccountListCommand(opts))
	accountCmd.AddCommand(newAccountRemoveCommand(opts))
	accountCmd.AddCommand(newAccountExportCommand(opts))
	accountCmd.AddCommand(newAccountImportCommand(opts))
	return accountCmd
}

func newAccountAddCommand(opts *rootOptions) *cobra.Command {
	var accountType string
	var parent string
	var asset string
	var description string
	var precision int32

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(opts.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			if asset == "" {
				asset = opts.cfg.Reporting.Currency
			}
			held, err := b.assets.Find(asset)
			if err != nil {
				return err
			}

			var parentID int64
			if parent != "" {
				tree, err := b.accounts.Tree()
				if err != nil {
					return err
				}
				p, err := findAccount(tree, parent)
				if err != nil {
					return err
				}
				parentID = p.ID
			}

			id, err := b.accounts.Create(accounts.CreateParams{
				Type:        model.AccountType(accountType),
				Name:        args[0],
				Description: description,
				AssetID:     held.ID,
				ParentID:    parentID,
				Precision:   precision,
			})
			if err != nil {
				return err
			}

			tree, err := b.accounts.Tree()
			if err != nil {
				return err
			}
			fmt.Printf("Created account %s\n", tree.ExtendedName(id, ":", true))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "", "account type (required): asset, cash, bank, receivable, security, liability, credit_card, payable, income, expense or equity")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&parent, "parent", "", "parent account path, e.g. \"Banks:Checking\"")
	cmd.Flags().StringVar(&asset, "asset", "", "held asset (defaults to the reporting currency)")
	cmd.Flags().StringVar(&description, "description", "", "account description")
	cmd.Flags().Int32Var(&precision, "precision", 0, "display precision override")

	return cmd
}

func newAccountListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts grouped by their hierarchy",
		Args:  cobra.NoArgs,
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

			for _, group := range model.AccountGroups() {
				topLevel := tree.TopLevel(group)
				if len(topLevel) == 0 {
					continue
				}
				fmt.Println(group.DisplayName())
				for _, a := range topLevel {
					printAccount(b, tree, a, 1)
				}
			}
			return nil
		},
	}
}

func printAccount(b *book, tree *accounts.Tree, a model.Account, depth int) {
	held, err := b.assets.Get(a.AssetID)
	code := "?"
	if err == nil {
		code = held.ScopedCode(":")
	}
	fmt.Printf("%s%s  [%s, %s]\n", strings.Repeat("  ", depth), a.Name, a.Type, code)
	for _, child := range tree.Children(a.ID) {
		printAccount(b, tree, child, depth+1)
	}
}

func newAccountRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>",
		Short: "Remove an account without transactions or children",
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
			if err := b.accounts.Remove(a.ID); err != nil {
				return err
			}

			fmt.Printf("Removed account %s\n", args[0])
			return nil
		},
	}
}

// findAccount resolves a colon-separated account path like
// "Banks:Checking". The first segment may name the account group to
// disambiguate same-named top-level accounts, e.g. "Expenses:Rent".
func findAccount(tree *accounts.Tree, path string) (model.Account, error) {
	segments := strings.Split(path, ":")

	group := model.AccountGroup("")
	if len(segments) > 1 {
		for _, g := range model.AccountGroups() {
			if strings.EqualFold(g.DisplayName(), segments[0]) {
				group = g
				segments = segments[1:]
				break
			}
		}
	}

	var candidates []model.Account
	for _, a := range tree.All() {
		if a.ParentID != 0 || !strings.EqualFold(a.Name, segments[0]) {
			continue
		}
		if group != "" && a.Group() != group {
			continue
		}
		candidates = append(candidates, a)
	}
	for _, segment := range segments[1:] {
		var next []model.Account
		for _, c := range candidates {
			for _, child := range tree.Children(c.ID) {
				if strings.EqualFold(child.Name, segment) {
					next = append(next, child)
				}
			}
		}
		candidates = next
	}

	switch len(candidates) {
	case 0:
		return model.Account{}, fmt.Errorf("account %q: %w", path, accounts.ErrNotFound)
	case 1:
		return candidates[0], nil
	}
	return model.Account{}, fmt.Errorf("account %q is ambiguous, prefix it with its group", path)
}

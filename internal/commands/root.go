package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glourencoffee/mymoneyman/internal/accounts"
	"github.com/glourencoffee/mymoneyman/internal/assets"
	"github.com/glourencoffee/mymoneyman/internal/balance"
	"github.com/glourencoffee/mymoneyman/internal/buildinfo"
	"github.com/glourencoffee/mymoneyman/internal/config"
	"github.com/glourencoffee/mymoneyman/internal/ledger"
	"github.com/glourencoffee/mymoneyman/internal/logger"
	"github.com/glourencoffee/mymoneyman/internal/quotes"
	"github.com/glourencoffee/mymoneyman/internal/store"
)

// rootOptions carries state shared by every subcommand.
type rootOptions struct {
	configPath string
	cfg        *config.Config
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "mymoneyman",
		Short:   "Personal double-entry bookkeeping",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(opts.configPath)
			if err != nil {
				return err
			}
			logger.Init(cfg.Log.Level)
			opts.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "configuration file")

	rootCmd.AddCommand(newInitCommand(opts))
	rootCmd.AddCommand(newCurrencyCommand(opts))
	rootCmd.AddCommand(newSecurityCommand(opts))
	rootCmd.AddCommand(newAccountCommand(opts))
	rootCmd.AddCommand(newTxCommand(opts))
	rootCmd.AddCommand(newBalanceCommand(opts))
	rootCmd.AddCommand(newQuoteCommand(opts))

	return rootCmd
}

// book bundles an opened database with the services commands work with.
type book struct {
	store    *store.Store
	assets   *assets.Service
	accounts *accounts.Service
	quotes   *quotes.Resolver
	ledger   *ledger.Service
	balance  *balance.Calculator
}

func openBook(cfg *config.Config) (*book, error) {
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.Database.Path, err)
	}
	resolver := quotes.NewResolver(st)
	accountSvc := accounts.NewService(st)
	return &book{
		store:    st,
		assets:   assets.NewService(st),
		accounts: accountSvc,
		quotes:   resolver,
		ledger:   ledger.NewService(st, accountSvc, resolver),
		balance:  balance.NewCalculator(st, resolver),
	}, nil
}

func (b *book) Close() error {
	return b.store.Close()
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glourencoffee/mymoneyman/internal/accounts"
	"github.com/glourencoffee/mymoneyman/internal/assets"
	"github.com/glourencoffee/mymoneyman/internal/config"
	"github.com/glourencoffee/mymoneyman/internal/store"
)

// seedCurrencies are the fiat currencies a fresh book starts with.
var seedCurrencies = []assets.CurrencyParams{
	{Code: "USD", Name: "United States Dollar", IsFiat: true},
	{Code: "EUR", Name: "Euro", IsFiat: true},
	{Code: "BRL", Name: "Brazilian Real", IsFiat: true},
	{Code: "TRY", Name: "Turkish Lira", IsFiat: true},
}

func newInitCommand(opts *rootOptions) *cobra.Command {
	var dbFile string
	var currency string
	var chart bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, dbFile, currency, chart)
		},
	}

	cmd.Flags().StringVar(&dbFile, "db", "mymoneyman.db", "database file name")
	cmd.Flags().StringVar(&currency, "currency", "USD", "reporting currency code")
	cmd.Flags().BoolVar(&chart, "chart", false, "seed a starter chart of accounts")

	return cmd
}

func runInit(dir, dbFile, currency string, chart bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.DefaultPath)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	// Write mymoneyman.yaml.
	cfg := config.Default(dbFile, currency)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the database and seed the starting currencies.
	st, err := store.Open(filepath.Join(dir, dbFile))
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer st.Close()

	svc := assets.NewService(st)
	seeds := seedCurrencies
	if !seeded(seeds, currency) {
		seeds = append(seeds, assets.CurrencyParams{Code: currency, IsFiat: true})
	}
	for _, p := range seeds {
		if _, err := svc.AddCurrency(p); err != nil {
			return fmt.Errorf("seeding currency %s: %w", p.Code, err)
		}
	}

	fmt.Printf("Initialized book at %s with %d currencies\n", dir, len(seeds))

	if chart {
		n, err := replayChart(svc, accounts.NewService(st), accounts.DefaultChart(), currency)
		if err != nil {
			return fmt.Errorf("seeding chart: %w", err)
		}
		fmt.Printf("Seeded default chart with %d accounts\n", n)
	}
	return nil
}

func seeded(seeds []assets.CurrencyParams, code string) bool {
	for _, p := range seeds {
		if strings.EqualFold(p.Code, code) {
			return true
		}
	}
	return false
}

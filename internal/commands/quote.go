package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQuoteCommand(opts *rootOptions) *cobra.Command {
	var oneWay bool

	cmd := &cobra.Command{
		Use:   "quote <asset> <in>",
		Short: "Resolve the most recent price of one asset in another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(opts.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			base, err := b.assets.Find(args[0])
			if err != nil {
				return err
			}
			other, err := b.assets.Find(args[1])
			if err != nil {
				return err
			}

			price, ok, err := b.quotes.Price(base, other, !oneWay)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no quote between %s and %s",
					base.ScopedCode(":"), other.ScopedCode(":"))
			}

			fmt.Printf("%s/%s = %s\n", base.ScopedCode(":"), other.ScopedCode(":"), price)
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneWay, "one-way", false, "only use quotes recorded in this direction")

	return cmd
}

package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type lowStockCmd struct{}

func (*lowStockCmd) Name() string     { return "lowstock" }
func (*lowStockCmd) Synopsis() string { return "display products under the low-stock threshold" }
func (*lowStockCmd) Usage() string {
	return `bookctl lowstock

  Lists the products whose quantity is under LOW_STOCK_THRESHOLD.
`
}

func (*lowStockCmd) SetFlags(*flag.FlagSet) {}

func (*lowStockCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	printMarkdown(LowStockMarkdown(a.products.LowStock(ctx), a.products.LowStockThreshold(), a.cfg.Books.Currency))
	return subcommands.ExitSuccess
}

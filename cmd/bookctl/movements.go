package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type movementsCmd struct{}

func (*movementsCmd) Name() string     { return "movements" }
func (*movementsCmd) Synopsis() string { return "display the purchase and sale history of a product" }
func (*movementsCmd) Usage() string {
	return `bookctl movements <product-id>

  Lists every purchase and sale line touching the product, newest first.
`
}

func (*movementsCmd) SetFlags(*flag.FlagSet) {}

func (*movementsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fail("movements takes exactly one product id")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	product, err := a.products.GetProduct(ctx, id)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	movements, err := a.products.ItemMovements(ctx, id)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	printMarkdown(MovementsMarkdown(*product, movements, a.cfg.Books.Currency))
	return subcommands.ExitSuccess
}

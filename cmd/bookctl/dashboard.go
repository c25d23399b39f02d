package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display totals, recent sales and low stock" }
func (*dashboardCmd) Usage() string {
	return `bookctl dashboard

  Displays the business overview: sales, profit, expenses, inventory value,
  the five most recent sales and the products running low.
`
}

func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (*dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	d := a.dashboard.GetDashboard(ctx)
	printMarkdown(DashboardMarkdown(d, a.cfg.Books.LowStockThreshold, a.cfg.Books.Currency))
	return subcommands.ExitSuccess
}

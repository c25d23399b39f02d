package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/sangkips/storebooks/internal/domain/entity"
)

type reportCmd struct {
	start string
	end   string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display sales and expenses over a range of days" }
func (*reportCmd) Usage() string {
	return `bookctl report [-s <date>] [-e <date>]

  Displays the profit report between two dates, both included.
  Missing dates default to the first and last day of the current month.

Usage Examples:
$ bookctl report -s 2024-03-01 -e 2024-03-31
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "first day of the report (YYYY-MM-DD)")
	f.StringVar(&c.end, "e", "", "last day of the report (YYYY-MM-DD)")
}

func optionalDate(s string) (*entity.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, err := optionalDate(c.start)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitUsageError
	}
	end, err := optionalDate(c.end)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	period, err := a.dashboard.GetReport(ctx, start, end)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(PeriodMarkdown(period, a.cfg.Books.Currency))
	return subcommands.ExitSuccess
}

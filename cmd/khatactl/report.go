package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"khata/internal/app"
	"khata/internal/domain"
	"khata/internal/service"
)

type reportRunner func(ctx context.Context, s service.ReportService, actor domain.Actor, in service.RangeInput, date string) (any, error)

var reportRunners = map[string]reportRunner{
	"stock": func(ctx context.Context, s service.ReportService, a domain.Actor, _ service.RangeInput, _ string) (any, error) {
		return s.Stock(ctx, a)
	},
	"sales": func(ctx context.Context, s service.ReportService, a domain.Actor, in service.RangeInput, _ string) (any, error) {
		return s.Sales(ctx, a, in)
	},
	"counts": func(ctx context.Context, s service.ReportService, a domain.Actor, _ service.RangeInput, _ string) (any, error) {
		return s.Counts(ctx, a)
	},
	"valuation": func(ctx context.Context, s service.ReportService, a domain.Actor, _ service.RangeInput, date string) (any, error) {
		return s.Valuation(ctx, a, date)
	},
	"pl": func(ctx context.Context, s service.ReportService, a domain.Actor, in service.RangeInput, _ string) (any, error) {
		return s.ProfitAndLoss(ctx, a, in)
	},
	"balance-sheet": func(ctx context.Context, s service.ReportService, a domain.Actor, _ service.RangeInput, date string) (any, error) {
		return s.BalanceSheet(ctx, a, date)
	},
	"balance-sheet-range": func(ctx context.Context, s service.ReportService, a domain.Actor, in service.RangeInput, _ string) (any, error) {
		return s.BalanceSheetRange(ctx, a, in.From, in.To)
	},
	"gstr1": func(ctx context.Context, s service.ReportService, a domain.Actor, in service.RangeInput, _ string) (any, error) {
		return s.GSTR1(ctx, a, in)
	},
	"gstr3b": func(ctx context.Context, s service.ReportService, a domain.Actor, in service.RangeInput, _ string) (any, error) {
		return s.GSTR3B(ctx, a, in)
	},
}

func reportNames() []string {
	names := make([]string, 0, len(reportRunners))
	for name := range reportRunners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var reportCmd = &cobra.Command{
	Use:   "report NAME",
	Short: "Run a ledger report and print it as JSON",
	Long:  "Run a ledger report for a tenant. Available reports: " + strings.Join(reportNames(), ", "),
	Example: `  khatactl report sales --tenant 6f1c... --from 2024-04-01 --to 2024-06-30
  khatactl report balance-sheet --tenant 6f1c... --date 2025-03-31`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: reportNames(),
	RunE:      runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	reportCmd.Flags().String("to", "", "End date (YYYY-MM-DD)")
	reportCmd.Flags().String("q", "", "Search invoice number or counterparty name")
	reportCmd.Flags().String("date", "", "As-of date for valuation and balance-sheet (YYYY-MM-DD, default: now)")
}

func runReport(cmd *cobra.Command, args []string) error {
	run, ok := reportRunners[args[0]]
	if !ok {
		return fmt.Errorf("unknown report %q; available: %s", args[0], strings.Join(reportNames(), ", "))
	}
	actor, err := operator(cmd)
	if err != nil {
		return err
	}
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	q, _ := cmd.Flags().GetString("q")
	date, _ := cmd.Flags().GetString("date")

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		result, err := run(ctx, a.Reports, actor, service.RangeInput{From: from, To: to, Query: q}, date)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	})
}

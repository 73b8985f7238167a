package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"khata/internal/app"
	"khata/internal/domain"
	"khata/internal/ledger"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Inspect invoice number sequences",
}

var sequencePeekCmd = &cobra.Command{
	Use:   "peek",
	Short: "Show the last issued number of a series without allocating",
	Example: `  khatactl sequence peek --tenant 6f1c... --series MAIN --date 2024-04-01`,
	RunE: runSequencePeek,
}

func init() {
	rootCmd.AddCommand(sequenceCmd)
	sequenceCmd.AddCommand(sequencePeekCmd)

	sequencePeekCmd.Flags().String("series", "", "Invoice series (default: configured default series)")
	sequencePeekCmd.Flags().String("date", "", "Any date in the fiscal year (YYYY-MM-DD, default: today)")
}

func runSequencePeek(cmd *cobra.Command, args []string) error {
	actor, err := operator(cmd)
	if err != nil {
		return err
	}
	cfg := configFrom(cmd)
	series, _ := cmd.Flags().GetString("series")
	series = strings.ToUpper(strings.TrimSpace(series))
	if series == "" {
		series = cfg.Ledger.DefaultSeries
	}
	date, _ := cmd.Flags().GetString("date")

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		day := time.Now()
		if t, err := a.Calendar.StartOfDay(date); err != nil {
			return err
		} else if t != nil {
			day = *t
		}
		key := domain.SequenceKey{
			TenantID:   actor.TenantID,
			Series:     series,
			FiscalYear: ledger.FiscalYear(a.Calendar.Day(day)),
		}
		seq, err := a.Sequences.Current(ctx, key)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "backend:     %s\n", cfg.Sequence.Backend)
		fmt.Fprintf(out, "fiscal year: %s\n", key.FiscalYear)
		fmt.Fprintf(out, "series:      %s\n", key.Series)
		fmt.Fprintf(out, "last issued: %d\n", seq)
		if seq > 0 {
			fmt.Fprintf(out, "last number: %s\n", ledger.DocumentNumber(key.FiscalYear, key.Series, seq))
		}
		fmt.Fprintf(out, "next number: %s\n", ledger.DocumentNumber(key.FiscalYear, key.Series, seq+1))
		return nil
	})
}

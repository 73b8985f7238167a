package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"khata/internal/app"
	"khata/internal/csvexport"
	"khata/internal/service"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ledger data to files",
}

var exportInvoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Export invoices as CSV",
	Example: `  khatactl export invoices --tenant 6f1c... --from 2024-04-01 --out invoices.csv
  khatactl export invoices --tenant 6f1c... --archive`,
	RunE: runExportInvoices,
}

var exportGSTR1Cmd = &cobra.Command{
	Use:     "gstr1",
	Short:   "Export the GSTR-1 summary as an XLSX workbook",
	Example: `  khatactl export gstr1 --tenant 6f1c... --from 2024-04-01 --to 2024-04-30 --out gstr1.xlsx`,
	RunE:    runExportGSTR1,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportInvoicesCmd, exportGSTR1Cmd)

	for _, c := range []*cobra.Command{exportInvoicesCmd, exportGSTR1Cmd} {
		c.Flags().String("from", "", "Start date (YYYY-MM-DD)")
		c.Flags().String("to", "", "End date (YYYY-MM-DD)")
		c.Flags().String("out", "", "Output file (default: stdout)")
	}
	exportInvoicesCmd.Flags().String("q", "", "Search invoice number or customer name")
	exportInvoicesCmd.Flags().Bool("archive", false, "Upload to the export bucket instead of writing a file")
}

func rangeFlags(cmd *cobra.Command) service.RangeInput {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	q, _ := cmd.Flags().GetString("q")
	return service.RangeInput{From: from, To: to, Query: q}
}

// output opens the --out file, or stdout when unset.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}

func runExportInvoices(cmd *cobra.Command, args []string) error {
	actor, err := operator(cmd)
	if err != nil {
		return err
	}
	input := rangeFlags(cmd)
	archive, _ := cmd.Flags().GetBool("archive")

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if archive {
			result, err := a.Exports.ArchiveInvoicesCSV(ctx, actor, input)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}

		w, closeFn, err := output(cmd)
		if err != nil {
			return err
		}
		if _, err := w.Write(csvexport.BOM); err != nil {
			_ = closeFn()
			return err
		}
		n, err := a.Exports.WriteInvoicesCSV(ctx, actor, input, w)
		if cerr := closeFn(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		log.Info().Int("rows", n).Msg("invoice export written")
		return nil
	})
}

func runExportGSTR1(cmd *cobra.Command, args []string) error {
	actor, err := operator(cmd)
	if err != nil {
		return err
	}
	input := rangeFlags(cmd)

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		w, closeFn, err := output(cmd)
		if err != nil {
			return err
		}
		err = a.Exports.WriteGSTR1XLSX(ctx, actor, input, w)
		if cerr := closeFn(); err == nil {
			err = cerr
		}
		return err
	})
}

// Package xlsxexport renders tax summaries as Excel workbooks.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"khata/internal/domain"
)

// Sheet names of the GSTR-1 workbook.
const (
	SheetTotals = "Totals"
	SheetRates  = "Rates"
	SheetHSN    = "HSN"
)

var bucketHeader = []interface{}{"Taxable Value", "CGST", "SGST", "IGST", "Total"}

// WriteGSTR1 renders summary into a workbook with a totals sheet, a per-rate
// sheet and a per-HSN sheet, and writes it to w.
func WriteGSTR1(w io.Writer, summary *domain.GSTR1Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTotals); err != nil {
		return fmt.Errorf("renaming default sheet: %w", err)
	}
	for _, name := range []string{SheetRates, SheetHSN} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	if err := writeTotals(f, summary); err != nil {
		return err
	}
	if err := writeRates(f, summary.ByRate); err != nil {
		return err
	}
	if err := writeHSN(f, summary.ByHSN); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeTotals(f *excelize.File, s *domain.GSTR1Summary) error {
	rows := [][]interface{}{
		{"Period From", deref(s.Period.From)},
		{"Period To", deref(s.Period.To)},
		{},
		append([]interface{}{"Section"}, bucketHeader...),
		bucketRow("Total", s.Totals),
		bucketRow("B2B", s.ByPartyType.B2B),
		bucketRow("B2C", s.ByPartyType.B2C),
		bucketRow("Intra-State", s.BySupplyType.Intra),
		bucketRow("Inter-State", s.BySupplyType.Inter),
	}
	return setRows(f, SheetTotals, rows)
}

func writeRates(f *excelize.File, rates []domain.GSTR1RateRow) error {
	rows := make([][]interface{}, 0, len(rates)+1)
	rows = append(rows, append([]interface{}{"GST Rate %"}, bucketHeader...))
	for _, r := range rates {
		rows = append(rows, bucketRow(r.Rate, r.TaxBucket))
	}
	return setRows(f, SheetRates, rows)
}

func writeHSN(f *excelize.File, hsn []domain.GSTR1HSNRow) error {
	rows := make([][]interface{}, 0, len(hsn)+1)
	rows = append(rows, []interface{}{"HSN", "Taxable Value", "Tax", "Total"})
	for _, r := range hsn {
		rows = append(rows, []interface{}{r.HSN, r.TaxableValue, r.Tax, r.Total})
	}
	return setRows(f, SheetHSN, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func bucketRow(label interface{}, b domain.TaxBucket) []interface{} {
	return []interface{}{label, b.TaxableValue, b.CGST, b.SGST, b.IGST, b.Total}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

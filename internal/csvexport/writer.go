package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strconv"
	"strings"
	"time"

	"khata/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the invoice export header row.
var columns = []string{
	"Invoice No",
	"Date",
	"Customer",
	"Sub Total",
	"Tax",
	"Total",
}

// Writer wraps csv.Writer for exporting invoice rows as CSV.
type Writer struct {
	csv *csv.Writer
	loc *time.Location
}

// NewWriter creates a Writer that writes CSV to w. Dates are rendered as
// calendar days in loc.
func NewWriter(w io.Writer, loc *time.Location) *Writer {
	if loc == nil {
		loc = time.UTC
	}
	return &Writer{csv: csv.NewWriter(w), loc: loc}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRow writes a single invoice row.
func (w *Writer) WriteRow(r *domain.InvoiceRow) error {
	return w.csv.Write(w.toRecord(r))
}

// WriteRows drains rows, flushing every flushEvery records so a slow
// consumer receives output while the stream is still open. It returns the
// number of rows written and stops at the first stream or write error.
func (w *Writer) WriteRows(rows iter.Seq2[domain.InvoiceRow, error], flushEvery int) (int, error) {
	if flushEvery <= 0 {
		flushEvery = 100
	}
	n := 0
	for row, err := range rows {
		if err != nil {
			w.Flush()
			return n, err
		}
		if err := w.WriteRow(&row); err != nil {
			return n, err
		}
		n++
		if n%flushEvery == 0 {
			w.Flush()
			if err := w.Error(); err != nil {
				return n, err
			}
		}
	}
	w.Flush()
	return n, w.Error()
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func (w *Writer) toRecord(r *domain.InvoiceRow) []string {
	name := r.CounterpartyName
	if name == "" {
		name = domain.WalkInCustomerName
	}
	date := ""
	if !r.Date.IsZero() {
		date = r.Date.In(w.loc).Format("2006-01-02")
	}
	return []string{
		r.DocumentNumber,
		date,
		name,
		formatMoney(r.SubTotal),
		formatMoney(r.Tax),
		formatMoney(r.Total),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition and object
// keys. Replaces non-alphanumeric chars (except - _) with _, collapses
// consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for an export generated on day.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name string, day time.Time, ext string) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "export"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, day.Format("2006-01-02"), ext)
}

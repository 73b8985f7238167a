package csvexport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"iter"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
)

var ist = time.FixedZone("UTC+05:30", 330*60)

func rowsOf(rows []domain.InvoiceRow, tail error) iter.Seq2[domain.InvoiceRow, error] {
	return func(yield func(domain.InvoiceRow, error) bool) {
		for _, r := range rows {
			if !yield(r, nil) {
				return
			}
		}
		if tail != nil {
			yield(domain.InvoiceRow{}, tail)
		}
	}
}

func readAll(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, ist)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	records := readAll(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Invoice No", "Date", "Customer", "Sub Total", "Tax", "Total"}, records[0])
}

func TestWriteRows_FormatsBusinessDateAndMoney(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, ist)

	// 2024-03-31T20:00Z is already April 1st in the business zone.
	n, err := w.WriteRows(rowsOf([]domain.InvoiceRow{{
		DocumentNumber:   "24-25/MAIN/000001",
		Date:             time.Date(2024, 3, 31, 20, 0, 0, 0, time.UTC),
		CounterpartyName: `Sharma, "Sons"`,
		SubTotal:         1000,
		Tax:              180,
		Total:            1180,
	}}, nil), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records := readAll(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"24-25/MAIN/000001", "2024-04-01", `Sharma, "Sons"`, "1000.00", "180.00", "1180.00"}, records[0])
}

func TestWriteRows_EmptyNameIsWalkIn(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, ist)

	_, err := w.WriteRows(rowsOf([]domain.InvoiceRow{{DocumentNumber: "X"}}, nil), 0)
	require.NoError(t, err)

	records := readAll(t, &buf)
	assert.Equal(t, "Walk-in", records[0][2])
	assert.Equal(t, "", records[0][1])
}

func TestWriteRows_StopsOnStreamError(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, ist)
	boom := errors.New("cursor closed")

	n, err := w.WriteRows(rowsOf([]domain.InvoiceRow{{DocumentNumber: "A"}, {DocumentNumber: "B"}}, boom), 1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, n)

	// Rows written before the failure are flushed.
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"invoices", "invoices"},
		{"Sharma & Sons / Q1", "Sharma_Sons_Q1"},
		{"__gstr1__", "gstr1"},
		{strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, ist)
	assert.Equal(t, "invoices_2024-05-02.csv", BuildFilename("invoices", day, "csv"))
	assert.Equal(t, "export_2024-05-02.xlsx", BuildFilename("***", day, "xlsx"))
}

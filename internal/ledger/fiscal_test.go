package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"khata/internal/ledger"
)

func TestFiscalYear(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"last day of fiscal year", time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC), "23-24"},
		{"first day of fiscal year", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "24-25"},
		{"january", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "24-25"},
		{"december", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "24-25"},
		{"century wrap", time.Date(2099, 6, 1, 0, 0, 0, 0, time.UTC), "99-00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.FiscalYear(tt.date))
		})
	}
}

func TestFiscalYear_UsesBusinessDay(t *testing.T) {
	cal := ledger.NewBusinessCalendar(ledger.DefaultBusinessOffsetMinutes)
	// 2024-03-31 19:00 UTC is already 2024-04-01 00:30 in the business zone.
	instant := time.Date(2024, 3, 31, 19, 0, 0, 0, time.UTC)

	assert.Equal(t, "23-24", ledger.FiscalYear(instant))
	assert.Equal(t, "24-25", ledger.FiscalYear(cal.Day(instant)))
}

func TestDocumentNumber(t *testing.T) {
	assert.Equal(t, "24-25/MAIN/000001", ledger.DocumentNumber("24-25", "MAIN", 1))
	assert.Equal(t, "24-25/B/123456", ledger.DocumentNumber("24-25", "B", 123456))
	assert.Equal(t, "24-25/B/1234567", ledger.DocumentNumber("24-25", "B", 1234567))
}

package ledger

import (
	"fmt"
	"time"
)

// FiscalYear returns the April-to-March fiscal year label for date, e.g.
// "24-25" for any date from 2024-04-01 through 2025-03-31. The date is read
// in its own location.
func FiscalYear(date time.Time) string {
	start := date.Year()
	if date.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%02d-%02d", start%100, (start+1)%100)
}

// DocumentNumber formats an invoice number as {fy}/{series}/{seq:06d}.
func DocumentNumber(fy, series string, seq int64) string {
	return fmt.Sprintf("%s/%s/%06d", fy, series, seq)
}

package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"settler/ledger"
)

var snapshotHeader = []string{"client", "available", "held", "total", "locked"}

// WriteSnapshot renders account rows as CSV. Decimal fields keep their full
// scale (a balance that went 1.7777 up and 1.7777 down renders as 0.0000),
// and no rows exist for accounts that were never referenced. An empty
// snapshot produces empty output, header included.
func WriteSnapshot(w io.Writer, rows []ledger.AccountSnapshot) error {
	if len(rows) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(snapshotHeader); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.Client), 10),
			formatAmount(row.Available),
			formatAmount(row.Held),
			formatAmount(row.Total),
			strconv.FormatBool(row.Locked),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// formatAmount renders a balance at its tracked scale. Decimal.String
// normalizes away trailing zeros, so rendering goes through the exponent
// instead: an available balance that went 1.7777 up and 1.7777 down keeps
// exponent -4 and renders as 0.0000, while an integral balance at exponent
// 0 stays 0.
func formatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}

	return d.String()
}

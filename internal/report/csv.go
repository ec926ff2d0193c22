package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"expenses/internal/core"
)

var csvHeader = []string{"id", "date", "category", "amount", "description"}

// WriteCSV writes the month's transactions, one row each, in ledger order.
func WriteCSV(w io.Writer, r core.MonthReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range r.Transactions {
		if err := cw.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Date.String(),
			t.Category.String(),
			core.FormatAmount(t.Amount),
			t.Description,
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

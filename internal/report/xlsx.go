package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"expenses/internal/core"
)

const (
	sheetTransactions = "Transactions"
	sheetSummary      = "Summary"
)

// WriteXLSX writes a workbook with a Transactions sheet and a Summary sheet.
func WriteXLSX(w io.Writer, r core.MonthReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetTransactions); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeTransactionsSheet(f, r, bold); err != nil {
		return err
	}
	if err := writeSummarySheet(f, r, bold); err != nil {
		return err
	}

	return f.Write(w)
}

func writeTransactionsSheet(f *excelize.File, r core.MonthReport, headerStyle int) error {
	headers := []string{"ID", "Date", "Category", "Amount", "Description"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheetTransactions, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetTransactions, "A1", "E1", headerStyle); err != nil {
		return err
	}

	for idx, t := range r.Transactions {
		row := idx + 2
		amount, _ := t.Amount.Float64()

		values := []any{t.ID, t.Date.String(), t.Category.String(), amount, t.Description}
		for i, v := range values {
			if err := f.SetCellValue(sheetTransactions, fmt.Sprintf("%c%d", 'A'+i, row), v); err != nil {
				return err
			}
		}
	}

	f.SetColWidth(sheetTransactions, "A", "A", 8)
	f.SetColWidth(sheetTransactions, "B", "B", 12)
	f.SetColWidth(sheetTransactions, "C", "C", 12)
	f.SetColWidth(sheetTransactions, "D", "D", 12)
	f.SetColWidth(sheetTransactions, "E", "E", 30)
	return nil
}

func writeSummarySheet(f *excelize.File, r core.MonthReport, headerStyle int) error {
	s := r.Summary
	rows := [][]any{
		{"Month", r.Month.String(), ""},
		{"Category", "Total", "% of income"},
		{core.Income.String(), core.FormatAmount(s.TotalIncome), ""},
	}
	for _, share := range s.Breakdown() {
		rows = append(rows, []any{share.Category.String(), core.FormatAmount(share.Total), formatPercent(share.Percent)})
	}
	rows = append(rows, []any{"Total expenses", core.FormatAmount(s.TotalExpenses), ""})

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetSummary, "A2", "C2", headerStyle); err != nil {
		return err
	}

	f.SetColWidth(sheetSummary, "A", "A", 16)
	f.SetColWidth(sheetSummary, "B", "C", 14)
	return nil
}

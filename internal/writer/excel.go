package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-analyzer/internal/analysis"
)

// ExcelWriter writes the full analysis report as an XLSX workbook with
// Transactions, Summary, Monthly, and Loan Analysis sheets.
type ExcelWriter struct{}

// Write renders the workbook to the given writer.
func (w *ExcelWriter) Write(out io.Writer, report *analysis.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Transactions"); err != nil {
		return fmt.Errorf("renaming default sheet: %w", err)
	}
	for _, sheet := range []string{"Summary", "Monthly", "Loan Analysis"} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet, err)
		}
	}

	if err := writeTransactionsSheet(f, report); err != nil {
		return err
	}
	if err := writeSummarySheet(f, report); err != nil {
		return err
	}
	if err := writeMonthlySheet(f, report); err != nil {
		return err
	}
	if err := writeLoanSheet(f, report); err != nil {
		return err
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeTransactionsSheet(f *excelize.File, report *analysis.Report) error {
	const sheet = "Transactions"
	headers := []string{"Date", "Narration", "Ref No", "Value Date", "Debit", "Credit", "Balance"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}

	for i, txn := range report.Transactions {
		values := []any{
			txn.Date.Format(exportDateLayout),
			txn.Narration,
			txn.RefNo,
			txn.ValueDate,
			txn.Debit,
			txn.Credit,
			txn.Balance,
		}
		if err := setRowValues(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, report *analysis.Report) error {
	const sheet = "Summary"
	s := report.Summary
	rows := [][]any{
		{"Metric", "Value"},
		{"Total Credit", s.TotalCredit},
		{"Total Debit", s.TotalDebit},
		{"Net Flow", s.NetFlow},
		{"Average Balance", s.AvgBalance},
		{"Opening Balance", s.OpeningBalance},
		{"Closing Balance", s.ClosingBalance},
		{"Transactions", s.TransactionCount},
	}
	return setRows(f, sheet, rows)
}

func writeMonthlySheet(f *excelize.File, report *analysis.Report) error {
	const sheet = "Monthly"
	if err := setRow(f, sheet, 1, []string{"Month", "Total Credit", "Total Debit", "Net", "Transactions"}); err != nil {
		return err
	}
	for i, b := range report.Monthly {
		values := []any{b.Month, b.TotalCredit, b.TotalDebit, b.Net, b.TransactionCount}
		if err := setRowValues(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeLoanSheet(f *excelize.File, report *analysis.Report) error {
	const sheet = "Loan Analysis"
	m := report.Loan
	rows := [][]any{
		{"Metric", "Value"},
		{"Surplus Score", m.SurplusScore},
		{"Stability Score", m.StabilityScore},
		{"Balance Score", m.BalanceScore},
		{"Loan Score", m.TotalScore},
		{"Rating", m.Rating},
		{"Avg Monthly Income", m.AvgMonthlyIncome},
		{"Avg Monthly Expense", m.AvgMonthlyExpense},
		{"Monthly Surplus", m.MonthlySurplus},
	}
	return setRows(f, sheet, rows)
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return setRowValues(f, sheet, row, cells)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if err := setRowValues(f, sheet, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func setRowValues(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("setting %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// Package writer serializes analysis reports to CSV and XLSX. All
// formatting lives here; the core pipeline only produces in-memory
// records.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-analyzer/internal/analysis"
)

// exportDateLayout is the date format used in exported files.
const exportDateLayout = "02-01-2006"

// CSVWriter writes a report's transactions to CSV format.
type CSVWriter struct {
	// IncludeSummary prepends statement-level figures as comment rows.
	IncludeSummary bool
}

// WriteToFile writes the report to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, report *analysis.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, report)
}

// Write writes the report in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, report *analysis.Report) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if w.IncludeSummary {
		s := report.Summary
		cw.Write([]string{"# Opening Balance", money(s.OpeningBalance)})
		cw.Write([]string{"# Closing Balance", money(s.ClosingBalance)})
		cw.Write([]string{"# Total Credit", money(s.TotalCredit)})
		cw.Write([]string{"# Total Debit", money(s.TotalDebit)})
		cw.Write([]string{"# Net Flow", money(s.NetFlow)})
		cw.Write([]string{"# Loan Rating", report.Loan.Rating})
	}

	header := []string{"Date", "Narration", "Ref No", "Value Date", "Debit", "Credit", "Balance"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range report.Transactions {
		row := []string{
			txn.Date.Format(exportDateLayout),
			txn.Narration,
			txn.RefNo,
			txn.ValueDate,
			amountOrBlank(txn.Debit),
			amountOrBlank(txn.Credit),
			money(txn.Balance),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

// money renders an amount with exactly two decimal places. Going through
// decimal avoids float formatting artifacts in exported files.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// amountOrBlank renders debit/credit cells, leaving the inactive side of
// the row empty the way printed statements do.
func amountOrBlank(v float64) string {
	if v == 0 {
		return ""
	}
	return money(v)
}

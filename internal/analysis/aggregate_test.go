package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-analyzer/internal/ledger"
	"github.com/insightdelivered/statement-analyzer/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	st, err := ledger.Normalize([]models.Transaction{
		{Date: day(2024, 1, 5), Credit: 1000, Balance: 5000},
		{Date: day(2024, 1, 20), Debit: 200, Balance: 4800},
	})
	require.NoError(t, err)

	s := Summarize(st)

	assert.Equal(t, 1000.0, s.TotalCredit)
	assert.Equal(t, 200.0, s.TotalDebit)
	assert.Equal(t, 800.0, s.NetFlow)
	assert.Equal(t, 4000.0, s.OpeningBalance)
	assert.Equal(t, 4800.0, s.ClosingBalance)
	assert.Equal(t, 2, s.TransactionCount)
	assert.Equal(t, 4900.0, s.AvgBalance)
}

func TestSummarize_AvgBalanceUsesDailyClose(t *testing.T) {
	// Three rows on the 10th must count once, at the day's final balance.
	st, err := ledger.Normalize([]models.Transaction{
		{Date: day(2024, 1, 10), Debit: 100, Balance: 900},
		{Date: day(2024, 1, 10), Debit: 400, Balance: 500},
		{Date: day(2024, 1, 10), Debit: 300, Balance: 200},
		{Date: day(2024, 1, 11), Credit: 800, Balance: 1000},
	})
	require.NoError(t, err)

	s := Summarize(st)

	// (200 + 1000) / 2, not a mean over all four rows.
	assert.Equal(t, 600.0, s.AvgBalance)
}

func TestSummarize_RoundsToTwoDecimals(t *testing.T) {
	st, err := ledger.Normalize([]models.Transaction{
		{Date: day(2024, 1, 1), Credit: 10.111, Balance: 10.111},
		{Date: day(2024, 1, 2), Credit: 10.112, Balance: 20.223},
	})
	require.NoError(t, err)

	s := Summarize(st)

	assert.Equal(t, 20.22, s.TotalCredit)
	assert.Equal(t, 15.17, s.AvgBalance)
}

func TestMonthly(t *testing.T) {
	txns := []models.Transaction{
		{Date: day(2024, 1, 5), Credit: 1000, Balance: 1000},
		{Date: day(2024, 1, 20), Debit: 300, Balance: 700},
		{Date: day(2024, 3, 2), Credit: 500, Balance: 1200},
	}

	buckets := Monthly(txns)
	require.Len(t, buckets, 2, "no gap-filling for absent months")

	jan := buckets[0]
	assert.Equal(t, "2024-01", jan.Month)
	assert.Equal(t, 1000.0, jan.TotalCredit)
	assert.Equal(t, 300.0, jan.TotalDebit)
	assert.Equal(t, 700.0, jan.Net)
	assert.Equal(t, 2, jan.TransactionCount)

	mar := buckets[1]
	assert.Equal(t, "2024-03", mar.Month)
	assert.Equal(t, 500.0, mar.TotalCredit)
	assert.Equal(t, 1, mar.TransactionCount)
}

func TestMonthly_TotalsMatchSummary(t *testing.T) {
	txns := []models.Transaction{
		{Date: day(2023, 11, 3), Credit: 2500, Balance: 2500},
		{Date: day(2023, 11, 18), Debit: 800, Balance: 1700},
		{Date: day(2023, 12, 1), Credit: 2500, Balance: 4200},
		{Date: day(2023, 12, 24), Debit: 1200, Balance: 3000},
		{Date: day(2024, 1, 2), Credit: 2600, Balance: 5600},
	}

	st, err := ledger.Normalize(txns)
	require.NoError(t, err)

	s := Summarize(st)
	buckets := Monthly(st.Transactions)

	var credit, debit float64
	for _, b := range buckets {
		credit += b.TotalCredit
		debit += b.TotalDebit
	}
	assert.Equal(t, s.TotalCredit, credit)
	assert.Equal(t, s.TotalDebit, debit)
}

func TestBuildReport_EmptyLedger(t *testing.T) {
	_, err := BuildReport(nil)
	assert.ErrorIs(t, err, models.ErrNoTransactions)
}

func TestBuildReport(t *testing.T) {
	report, err := BuildReport([]models.Transaction{
		{Date: day(2024, 2, 1), Credit: 3000, Balance: 4000},
		{Date: day(2024, 1, 1), Credit: 3000, Balance: 3000, Narration: "SALARY"},
		{Date: day(2024, 2, 15), Debit: 1000, Balance: 3000},
	})
	require.NoError(t, err)

	assert.Equal(t, "SALARY", report.Transactions[0].Narration)
	assert.Equal(t, 0.0, report.Summary.OpeningBalance)
	assert.Equal(t, 3000.0, report.Summary.ClosingBalance)
	require.Len(t, report.Monthly, 2)
	assert.NotZero(t, report.Loan.TotalScore)
}

// Package analysis derives financial-health metrics from a normalized
// ledger: statement summaries, monthly rollups, and the loan readiness
// score. Everything here is a pure function of its inputs; nothing is
// cached or shared across requests.
package analysis

import (
	"math"

	"github.com/insightdelivered/statement-analyzer/internal/ledger"
	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// Summarize computes statement-level aggregates. Internal arithmetic runs
// at full precision; only the returned figures are rounded to 2 decimals.
func Summarize(st *ledger.Statement) models.Summary {
	var totalCredit, totalDebit float64
	for _, txn := range st.Transactions {
		totalCredit += txn.Credit
		totalDebit += txn.Debit
	}

	return models.Summary{
		TotalCredit:      round2(totalCredit),
		TotalDebit:       round2(totalDebit),
		NetFlow:          round2(totalCredit - totalDebit),
		AvgBalance:       round2(avgDailyClosingBalance(st.Transactions)),
		OpeningBalance:   round2(st.OpeningBalance),
		ClosingBalance:   round2(st.ClosingBalance),
		TransactionCount: len(st.Transactions),
	}
}

// avgDailyClosingBalance is the mean of each calendar day's last recorded
// balance. One observation per day keeps busy days from dominating the
// average the way a per-row mean would.
func avgDailyClosingBalance(txns []models.Transaction) float64 {
	if len(txns) == 0 {
		return 0
	}

	closing := make(map[string]float64)
	var days []string
	for _, txn := range txns {
		key := txn.Date.Format("2006-01-02")
		if _, seen := closing[key]; !seen {
			days = append(days, key)
		}
		closing[key] = txn.Balance
	}

	var sum float64
	for _, key := range days {
		sum += closing[key]
	}
	return sum / float64(len(days))
}

// Monthly buckets transactions by calendar month. The ledger arrives
// sorted, so buckets come out chronologically; absent months produce no
// bucket.
func Monthly(txns []models.Transaction) []models.MonthlyBucket {
	var buckets []models.MonthlyBucket
	index := make(map[string]int)

	for _, txn := range txns {
		key := txn.Date.Format("2006-01")
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, models.MonthlyBucket{Month: key})
		}
		buckets[i].TotalCredit += txn.Credit
		buckets[i].TotalDebit += txn.Debit
		buckets[i].TransactionCount++
	}

	for i := range buckets {
		buckets[i].Net = round2(buckets[i].TotalCredit - buckets[i].TotalDebit)
		buckets[i].TotalCredit = round2(buckets[i].TotalCredit)
		buckets[i].TotalDebit = round2(buckets[i].TotalDebit)
	}

	return buckets
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

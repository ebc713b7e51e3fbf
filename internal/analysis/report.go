package analysis

import (
	"github.com/insightdelivered/statement-analyzer/internal/ledger"
	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// Report bundles everything derived from one statement. It is owned by
// the single request that produced it.
type Report struct {
	Transactions []models.Transaction   `json:"transactions"`
	Summary      models.Summary         `json:"summary"`
	Monthly      []models.MonthlyBucket `json:"monthlySummary"`
	Loan         models.LoanMetrics     `json:"loanAnalysis"`
}

// BuildReport runs the derivation pipeline over extracted transactions:
// normalize, aggregate, score. An empty extraction short-circuits with
// models.ErrNoTransactions before any summary is computed.
func BuildReport(txns []models.Transaction) (*Report, error) {
	st, err := ledger.Normalize(txns)
	if err != nil {
		return nil, err
	}

	summary := Summarize(st)
	monthly := Monthly(st.Transactions)

	return &Report{
		Transactions: st.Transactions,
		Summary:      summary,
		Monthly:      monthly,
		Loan:         LoanReadiness(summary, monthly),
	}, nil
}

// Package ledger orders extracted transactions and reconstructs the
// account balances around them.
package ledger

import (
	"sort"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// Statement is a chronologically ordered ledger with its reconstructed
// opening balance and closing balance.
type Statement struct {
	Transactions   []models.Transaction
	OpeningBalance float64
	ClosingBalance float64
}

// Normalize sorts transactions ascending by date (stable, so same-day
// transactions keep their statement order) and derives the opening and
// closing balances. An empty input returns models.ErrNoTransactions.
func Normalize(txns []models.Transaction) (*Statement, error) {
	if len(txns) == 0 {
		return nil, models.ErrNoTransactions
	}

	sorted := make([]models.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	return &Statement{
		Transactions:   sorted,
		OpeningBalance: openingBalance(sorted[0]),
		ClosingBalance: sorted[len(sorted)-1].Balance,
	}, nil
}

// openingBalance inverts the first transaction's effect on its recorded
// balance. Debit and credit are mutually exclusive per transaction, so a
// nonzero credit means the account held balance-credit beforehand, and
// otherwise it held balance+debit.
func openingBalance(first models.Transaction) float64 {
	if first.Credit != 0 {
		return first.Balance - first.Credit
	}
	return first.Balance + first.Debit
}

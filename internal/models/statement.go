package models

import "time"

// Token is a unit of text extracted from a PDF page together with its
// position: X is the left edge, Y is the vertical offset from the top of
// the page. Tokens are transient; they only live for one extraction pass.
type Token struct {
	Text string
	X    float64
	Y    float64
}

// Page holds the positioned tokens of a single statement page.
type Page struct {
	Number int
	Tokens []Token
}

// Transaction represents a single bank statement transaction.
// Debit and Credit are always non-negative and mutually exclusive;
// Balance is the running account balance immediately after this transaction.
type Transaction struct {
	Date      time.Time `json:"date"`
	Narration string    `json:"narration"`
	RefNo     string    `json:"refNo"`
	ValueDate string    `json:"valueDate"`
	Debit     float64   `json:"debit"`
	Credit    float64   `json:"credit"`
	Balance   float64   `json:"balance"`
}

// Summary holds statement-level aggregates. It is derived per request and
// never persisted.
type Summary struct {
	TotalCredit      float64 `json:"totalCredit"`
	TotalDebit       float64 `json:"totalDebit"`
	NetFlow          float64 `json:"netFlow"`
	AvgBalance       float64 `json:"avgBalance"`
	OpeningBalance   float64 `json:"openingBalance"`
	ClosingBalance   float64 `json:"closingBalance"`
	TransactionCount int     `json:"transactionCount"`
}

// MonthlyBucket aggregates one calendar month of activity. Months with no
// transactions produce no bucket; there is no gap-filling.
type MonthlyBucket struct {
	Month            string  `json:"month"` // YYYY-MM
	TotalCredit      float64 `json:"totalCredit"`
	TotalDebit       float64 `json:"totalDebit"`
	Net              float64 `json:"net"`
	TransactionCount int     `json:"transactionCount"`
}

// LoanMetrics is the output of the loan readiness scorer.
type LoanMetrics struct {
	SurplusScore      int     `json:"surplusScore"`
	StabilityScore    int     `json:"stabilityScore"`
	BalanceScore      int     `json:"balanceScore"`
	TotalScore        int     `json:"loanScore"`
	Rating            string  `json:"rating"`
	AvgMonthlyIncome  float64 `json:"avgMonthlyIncome"`
	AvgMonthlyExpense float64 `json:"avgMonthlyExpense"`
	MonthlySurplus    float64 `json:"monthlySurplus"`
}

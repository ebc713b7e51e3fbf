package analysis

import (
	"math"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// factors are the derived inputs the scoring rules look at.
type factors struct {
	avgIncome  float64 // mean of monthly total credit
	avgExpense float64 // mean of monthly total debit
	surplus    float64 // avgIncome - avgExpense
	cv         float64 // stddev(monthly credit) / avgIncome
	closing    float64 // statement closing balance
}

// scoreRule pairs a predicate with the points it awards. Rules are
// evaluated in order; the first match wins.
type scoreRule struct {
	match func(f factors) bool
	score int
}

// The fixed rule tables. Thresholds are load-bearing: downstream consumers
// depend on these exact bands, so tune them here, never in control flow.
var (
	surplusRules = []scoreRule{
		{func(f factors) bool { return f.surplus > 0.25*f.avgIncome }, 40},
		{func(f factors) bool { return f.surplus > 0 }, 25},
		{func(f factors) bool { return true }, 5},
	}

	stabilityRules = []scoreRule{
		{func(f factors) bool { return f.cv < 0.25 }, 30},
		{func(f factors) bool { return f.cv < 0.5 }, 15},
		{func(f factors) bool { return true }, 5},
	}

	balanceRules = []scoreRule{
		{func(f factors) bool { return f.closing > f.avgExpense }, 30},
		{func(f factors) bool { return f.closing > 0.5*f.avgExpense }, 15},
		{func(f factors) bool { return true }, 5},
	}

	ratings = []struct {
		min    int
		rating string
	}{
		{80, "Strong"},
		{60, "Moderate"},
		{40, "Risky"},
		{0, "High Risk"},
	}
)

// LoanReadiness converts aggregated figures into a rule-based loan
// readiness score. It is deterministic and side-effect free: identical
// inputs always yield identical metrics.
func LoanReadiness(summary models.Summary, buckets []models.MonthlyBucket) models.LoanMetrics {
	f := deriveFactors(summary, buckets)

	surplusScore := evaluate(surplusRules, f)
	stabilityScore := evaluate(stabilityRules, f)
	balanceScore := evaluate(balanceRules, f)
	total := surplusScore + stabilityScore + balanceScore

	return models.LoanMetrics{
		SurplusScore:      surplusScore,
		StabilityScore:    stabilityScore,
		BalanceScore:      balanceScore,
		TotalScore:        total,
		Rating:            rate(total),
		AvgMonthlyIncome:  round2(f.avgIncome),
		AvgMonthlyExpense: round2(f.avgExpense),
		MonthlySurplus:    round2(f.surplus),
	}
}

func deriveFactors(summary models.Summary, buckets []models.MonthlyBucket) factors {
	var avgIncome, avgExpense float64
	if n := len(buckets); n > 0 {
		for _, b := range buckets {
			avgIncome += b.TotalCredit
			avgExpense += b.TotalDebit
		}
		avgIncome /= float64(n)
		avgExpense /= float64(n)
	}

	return factors{
		avgIncome:  avgIncome,
		avgExpense: avgExpense,
		surplus:    avgIncome - avgExpense,
		cv:         incomeVariation(buckets, avgIncome),
		closing:    summary.ClosingBalance,
	}
}

// incomeVariation is the coefficient of variation of monthly credit.
// With no income there is nothing to be stable about, and with fewer than
// two months the sample deviation is undefined; both cases are treated as
// maximally unstable (1.0) rather than risking a division fault.
func incomeVariation(buckets []models.MonthlyBucket, avgIncome float64) float64 {
	if avgIncome == 0 || len(buckets) < 2 {
		return 1.0
	}

	var sumSq float64
	for _, b := range buckets {
		d := b.TotalCredit - avgIncome
		sumSq += d * d
	}
	stddev := math.Sqrt(sumSq / float64(len(buckets)-1))

	return stddev / avgIncome
}

func evaluate(rules []scoreRule, f factors) int {
	for _, r := range rules {
		if r.match(f) {
			return r.score
		}
	}
	return 0
}

func rate(total int) string {
	for _, r := range ratings {
		if total >= r.min {
			return r.rating
		}
	}
	return "High Risk"
}

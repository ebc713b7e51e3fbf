package layout

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// RowResult tags what the extractor did with a row.
type RowResult string

const (
	RowParsed       RowResult = "parsed"
	RowHeader       RowResult = "header"
	RowNoDate       RowResult = "no-date"
	RowBadAmount    RowResult = "bad-amount"
	RowEmptyAmounts RowResult = "empty-amounts"
)

// RowTrace captures the outcome of one visual row, so that dropped rows are
// inspectable instead of silently vanishing.
type RowTrace struct {
	Page   int       `json:"page"`
	Text   string    `json:"text"`
	Result RowResult `json:"result"`
}

// Extractor turns positioned tokens into transactions using a fixed
// statement Template.
type Extractor struct {
	Template Template
}

// NewExtractor returns an Extractor for the given template.
func NewExtractor(t Template) *Extractor {
	return &Extractor{Template: t}
}

// row is a group of tokens sharing a vertical band, sorted left to right.
type row struct {
	y      int
	tokens []models.Token
}

// Extract parses all pages into transactions. Rows that fail date or
// numeric parsing are dropped, never fatal; their fate is recorded in the
// returned traces. An empty result means no transactions were detected,
// which callers must distinguish from a valid-but-small ledger.
func (e *Extractor) Extract(pages []models.Page) ([]models.Transaction, []RowTrace) {
	var txns []models.Transaction
	var traces []RowTrace

	for _, page := range pages {
		for _, r := range groupRows(page.Tokens) {
			txn, result := e.parseRow(r.tokens)
			traces = append(traces, RowTrace{
				Page:   page.Number,
				Text:   rowText(r.tokens),
				Result: result,
			})
			if result == RowParsed {
				txns = append(txns, txn)
			}
		}
	}

	return txns, traces
}

// groupRows buckets tokens by their vertical offset rounded to the nearest
// whole unit. Rounding tolerates sub-unit placement jitter while keeping
// visually aligned tokens in one row. Rows come back top to bottom, tokens
// left to right, matching the printed statement order.
func groupRows(tokens []models.Token) []row {
	buckets := make(map[int][]models.Token)
	for _, tok := range tokens {
		y := int(math.Round(tok.Y))
		buckets[y] = append(buckets[y], tok)
	}

	rows := make([]row, 0, len(buckets))
	for y, toks := range buckets {
		sort.SliceStable(toks, func(i, j int) bool { return toks[i].X < toks[j].X })
		rows = append(rows, row{y: y, tokens: toks})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].y < rows[j].y })

	return rows
}

// parseRow classifies one row's tokens into columns and builds a
// transaction from them.
func (e *Extractor) parseRow(tokens []models.Token) (models.Transaction, RowResult) {
	if len(tokens) == 0 {
		return models.Transaction{}, RowNoDate
	}

	text := rowText(tokens)
	if e.isHeaderRow(text) {
		return models.Transaction{}, RowHeader
	}

	// A candidate transaction row starts with a date like 01/02/24.
	first := tokens[0].Text
	if !strings.Contains(first, "/") || len(first) < 8 {
		return models.Transaction{}, RowNoDate
	}
	date, err := time.Parse(e.Template.DateLayout, first)
	if err != nil {
		return models.Transaction{}, RowNoDate
	}

	// Same-band tokens concatenate left to right with single spaces.
	cols := make(map[Column][]string)
	for _, tok := range tokens {
		col, ok := e.Template.Classify(tok.X)
		if !ok {
			continue
		}
		cols[col] = append(cols[col], tok.Text)
	}
	field := func(c Column) string {
		return strings.TrimSpace(strings.Join(cols[c], " "))
	}

	debit, err := parseAmount(field(ColDebit))
	if err != nil {
		return models.Transaction{}, RowBadAmount
	}
	credit, err := parseAmount(field(ColCredit))
	if err != nil {
		return models.Transaction{}, RowBadAmount
	}
	balance, err := parseAmount(field(ColBalance))
	if err != nil {
		return models.Transaction{}, RowBadAmount
	}

	// A well-formed row moves money exactly one way. Rows with neither a
	// debit nor a credit are extraction noise, not zero-amount transactions.
	if debit == 0 && credit == 0 {
		return models.Transaction{}, RowEmptyAmounts
	}

	return models.Transaction{
		Date:      date,
		Narration: field(ColNarration),
		RefNo:     field(ColRefNo),
		ValueDate: field(ColValueDate),
		Debit:     debit,
		Credit:    credit,
		Balance:   balance,
	}, RowParsed
}

func (e *Extractor) isHeaderRow(text string) bool {
	for _, marker := range e.Template.HeaderMarkers {
		if !strings.Contains(text, marker) {
			return false
		}
	}
	return len(e.Template.HeaderMarkers) > 0
}

func rowText(tokens []models.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, tok.Text)
	}
	return strings.Join(parts, " ")
}

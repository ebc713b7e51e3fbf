package layout

// Column identifies the semantic column a token belongs to.
type Column string

const (
	ColNarration Column = "narration"
	ColRefNo     Column = "ref_no"
	ColValueDate Column = "value_date"
	ColDebit     Column = "debit"
	ColCredit    Column = "credit"
	ColBalance   Column = "balance"
)

// Band maps a horizontal interval of left-edge positions to a column.
// A token is wholly owned by the band containing its left edge; tokens are
// never split across bands. Max == 0 marks an open-ended band.
type Band struct {
	Col Column
	Min float64
	Max float64
}

// Template describes the print geometry of one statement layout.
// Column membership is inferred from position alone because the source
// document carries no table structure; each supported statement format
// gets its own Template rather than new parsing code.
type Template struct {
	Name string

	// DateGutter is the right edge of the date column. Tokens at or left
	// of it hold the transaction date and are never band-classified.
	DateGutter float64

	// Bands is consulted in order; the first band whose [Min, Max)
	// interval contains the token's left edge wins.
	Bands []Band

	// HeaderMarkers identify table header rows: a row containing every
	// marker is skipped.
	HeaderMarkers []string

	// DateLayout is the strict time.Parse layout for the leading date token.
	DateLayout string
}

// HDFCTemplate models the HDFC bank statement print layout:
//
//	Date | Narration | Chq/Ref No | Value Dt | Withdrawal Amt | Deposit Amt | Closing Balance
//
// Positions are in PDF points measured from the left page edge.
func HDFCTemplate() Template {
	return Template{
		Name:       "hdfc",
		DateGutter: 60,
		Bands: []Band{
			{Col: ColNarration, Min: 60, Max: 250},
			{Col: ColRefNo, Min: 250, Max: 330},
			{Col: ColValueDate, Min: 330, Max: 390},
			{Col: ColDebit, Min: 390, Max: 470},
			{Col: ColCredit, Min: 470, Max: 550},
			{Col: ColBalance, Min: 550},
		},
		HeaderMarkers: []string{"Date", "Narration"},
		DateLayout:    "02/01/06",
	}
}

// Classify returns the column owning the given left-edge position.
// Positions inside the date gutter, or in no band at all, return false.
func (t Template) Classify(x float64) (Column, bool) {
	if x <= t.DateGutter {
		return "", false
	}
	for _, b := range t.Bands {
		if x >= b.Min && (b.Max == 0 || x < b.Max) {
			return b.Col, true
		}
	}
	return "", false
}

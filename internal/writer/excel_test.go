package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelWriter_Write(t *testing.T) {
	report := fixtureReport(t)

	var buf bytes.Buffer
	w := &ExcelWriter{}
	require.NoError(t, w.Write(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Transactions", "Summary", "Monthly", "Loan Analysis"},
		f.GetSheetList())

	// Transactions sheet: header plus both rows.
	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "05-01-2024", rows[1][0])
	assert.Equal(t, "NEFT SALARY JAN", rows[1][1])

	// Summary sheet carries the reconstructed balances.
	opening, err := f.GetCellValue("Summary", "B6")
	require.NoError(t, err)
	assert.Equal(t, "2500", opening)

	// Monthly sheet has one bucket for January.
	monthly, err := f.GetRows("Monthly")
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2024-01", monthly[1][0])

	// Loan sheet exposes the rating.
	rating, err := f.GetCellValue("Loan Analysis", "B6")
	require.NoError(t, err)
	assert.Equal(t, report.Loan.Rating, rating)
}

package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var april2025 = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

// buildWorkbook writes header into A1 and rows from A2 down.
// A nil value leaves the cell empty.
func buildWorkbook(t *testing.T, header interface{}, rows ...[]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if header != nil {
		require.NoError(t, f.SetCellValue(sheet, "A1", header))
	}
	for r, row := range rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// rosterRows lays out a roster sheet: a label row, a day-number row for
// days 1..days, then one row per employee with cells keyed by day.
func rosterRows(days int, employees ...rosterLine) [][]interface{} {
	labels := make([]interface{}, days+2)
	labels[1] = "Lp."
	dayRow := make([]interface{}, days+2)
	for d := 1; d <= days; d++ {
		dayRow[d+1] = d
	}

	rows := [][]interface{}{labels, dayRow}
	for i, e := range employees {
		row := make([]interface{}, days+2)
		row[0] = e.name
		if e.banner {
			rows = append(rows, row)
			continue
		}
		row[1] = i + 1
		for day, text := range e.cells {
			row[day+1] = text
		}
		rows = append(rows, row)
	}
	return rows
}

type rosterLine struct {
	name   string
	banner bool
	cells  map[int]string
}

package roster

import (
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
)

// ScanStart is the column pruning policy. The first employee row is read in
// full; each of its empty cells marks that column and every column before it
// as outside the month, so later rows are only read from the returned index.
// Data a later row holds in a pruned column is skipped.
func ScanStart(firstRow []string) int {
	start := 0
	for col, cell := range firstRow {
		if isEmptyCell(cell) {
			start = col + 1
		}
	}
	return start
}

// Assemble decodes every populated cell of table and appends the shifts to
// employees, matched by row position. employees must hold at least
// len(table.Rows) entries.
func Assemble(table roster.NormalizedTable, employees []roster.Employee) int {
	if len(table.Rows) == 0 {
		return 0
	}
	start := ScanStart(table.Rows[0].Cells)
	if start > 0 {
		slog.Debug("pruning leading day columns", "columns", start)
	}

	count := 0
	for i, row := range table.Rows {
		from := start
		if i == 0 {
			from = 0
		}
		schedule := &employees[i].Schedule
		for col := from; col < len(row.Cells); col++ {
			if isEmptyCell(row.Cells[col]) {
				continue
			}
			date := time.Date(table.Year, time.Month(table.Month), table.Days[col], 0, 0, 0, 0, time.UTC)
			schedule.Shifts = append(schedule.Shifts, buildShift(date, row.Cells[col]))
			count++
		}
	}
	return count
}

func buildShift(date time.Time, raw string) roster.Shift {
	cell := DecodeCell(raw)
	shift := roster.Shift{
		Date:           date,
		TimeStart:      roster.ParseClock(cell.TimeStart),
		TimeEnd:        roster.ParseClock(cell.TimeEnd),
		DayType:        cell.DayType,
		AdditionalInfo: cell.AdditionalInfo,
	}
	if (shift.TimeStart == nil) != (shift.TimeEnd == nil) {
		shift.TimeStart, shift.TimeEnd = nil, nil
		shift.AdditionalInfo = strPtr(strings.TrimSpace(raw))
	}
	return shift
}

func isEmptyCell(cell string) bool {
	return strings.TrimSpace(cell) == ""
}

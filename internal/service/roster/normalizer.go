package roster

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
)

const (
	labelRowIndex = 1
	bodyRowIndex  = 2
)

// Normalize turns a raw grid into the employee x day-of-month table.
//
// Sheet row 1 holds the header date, row 2 the column labels and row 3 the
// day numbers. Every following row is an employee unless its name is one of
// opts.BannerLabels.
func Normalize(grid roster.RawGrid, opts ParseOptions) (roster.NormalizedTable, error) {
	if len(grid.Rows) <= bodyRowIndex {
		return roster.NormalizedTable{}, roster.ErrEmptyWorkbook
	}
	width := len(grid.Rows[labelRowIndex])
	if opts.NameColumnIndex < 0 || opts.NameColumnIndex >= width {
		return roster.NormalizedTable{}, fmt.Errorf("name column %d is outside the sheet (%d columns)", opts.NameColumnIndex, width)
	}

	table := roster.NormalizedTable{
		Month: int(grid.HeaderDate.Month()),
		Year:  grid.HeaderDate.Year(),
	}

	labels := withoutColumn(grid.Rows[labelRowIndex], opts.NameColumnIndex)

	body := make([][]string, 0, len(grid.Rows)-bodyRowIndex)
	for _, row := range grid.Rows[bodyRowIndex:] {
		body = append(body, append([]string(nil), row...))
	}
	body[0][0] = roster.DayOfMonthLabel

	banners := make(map[string]struct{}, len(opts.BannerLabels))
	for _, label := range opts.BannerLabels {
		banners[label] = struct{}{}
	}

	rows := make([]roster.TableRow, 0, len(body))
	for i, row := range body {
		name := strings.TrimSpace(row[opts.NameColumnIndex])
		cells := withoutColumn(row, opts.NameColumnIndex)
		if i > 0 {
			if _, ok := banners[name]; ok {
				slog.Debug("dropping banner row", "label", name)
				continue
			}
			if name == "" && isBlank(cells) {
				continue
			}
		}
		rows = append(rows, roster.TableRow{Name: name, Cells: cells})
	}

	if opts.DropLeadingColumn && len(labels) > 0 {
		labels = labels[1:]
		for i := range rows {
			rows[i].Cells = rows[i].Cells[1:]
		}
	}

	dayRow, employees := rows[0], rows[1:]
	daysInMonth := time.Date(table.Year, time.Month(table.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	keep := make([]int, 0, len(dayRow.Cells))
	for col, text := range dayRow.Cells {
		day, ok := parseDayNumber(text)
		if !ok || day < 1 || day > daysInMonth {
			slog.Debug("dropping column without a day of month", "column", col, "label", text)
			continue
		}
		keep = append(keep, col)
		table.Days = append(table.Days, day)
		table.Labels = append(table.Labels, labels[col])
	}

	table.Rows = make([]roster.TableRow, 0, len(employees))
	for _, row := range employees {
		cells := make([]string, len(keep))
		for i, col := range keep {
			cells[i] = row.Cells[col]
		}
		table.Rows = append(table.Rows, roster.TableRow{Name: row.Name, Cells: cells})
	}

	return table, nil
}

// parseDayNumber accepts "5" and the "5.0" rendering of numeric cells.
func parseDayNumber(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func withoutColumn(row []string, col int) []string {
	out := make([]string, 0, len(row)-1)
	out = append(out, row[:col]...)
	return append(out, row[col+1:]...)
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

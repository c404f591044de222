package roster

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
	"github.com/xuri/excelize/v2"
)

const headerCell = "A1"

// LoadGrid reads the first sheet of an xlsx workbook.
// The first cell must hold a date; it is the only source of the roster period.
func LoadGrid(r io.Reader) (roster.RawGrid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return roster.RawGrid{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return roster.RawGrid{}, roster.ErrEmptyWorkbook
	}
	sheet := sheets[0]

	headerDate, err := readHeaderDate(f, sheet)
	if err != nil {
		return roster.RawGrid{}, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return roster.RawGrid{}, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	grid := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		grid[i] = padded
	}

	return roster.RawGrid{HeaderDate: headerDate, Rows: grid}, nil
}

func readHeaderDate(f *excelize.File, sheet string) (time.Time, error) {
	cellType, err := f.GetCellType(sheet, headerCell)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", roster.ErrMalformedHeader, err)
	}
	raw, err := f.GetCellValue(sheet, headerCell, excelize.Options{RawCellValue: true})
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", roster.ErrMalformedHeader, err)
	}
	raw = strings.TrimSpace(raw)

	// ISO 8601 date cells (t="d")
	if cellType == excelize.CellTypeDate {
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: unreadable date %q", roster.ErrMalformedHeader, raw)
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s is not a date", roster.ErrMalformedHeader, headerCell)
	}

	styleID, err := f.GetCellStyle(sheet, headerCell)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", roster.ErrMalformedHeader, err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", roster.ErrMalformedHeader, err)
	}
	if !isDateFormat(style.NumFmt, style.CustomNumFmt) {
		return time.Time{}, fmt.Errorf("%w: %s is a plain number", roster.ErrMalformedHeader, headerCell)
	}

	// serials below 1 carry a time of day and no calendar date
	if serial < 1 {
		return time.Time{}, fmt.Errorf("%w: %s holds a time, not a date", roster.ErrMalformedHeader, headerCell)
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", roster.ErrMalformedHeader, err)
	}
	return t, nil
}

// isDateFormat reports whether a number format renders dates.
func isDateFormat(numFmt int, custom *string) bool {
	if custom != nil && *custom != "" {
		return hasDateTokens(*custom)
	}
	// 18-21 and 45-47 are time-only built-ins
	switch {
	case numFmt >= 14 && numFmt <= 17,
		numFmt == 22,
		numFmt >= 27 && numFmt <= 36,
		numFmt >= 50 && numFmt <= 58:
		return true
	}
	return false
}

// hasDateTokens looks for y, m or d outside quoted literals and bracketed sections.
// An m right after an h or right before an s is minutes.
func hasDateTokens(format string) bool {
	var letters []byte
	inQuote, inBracket := false, false
	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '\\':
			i++
		case c == '[':
			inBracket = true
		case c == ']':
			inBracket = false
		case inBracket:
		default:
			switch lower := c | 0x20; lower {
			case 'y', 'd':
				return true
			case 'm', 'h', 's':
				letters = append(letters, lower)
			}
		}
	}

	for i := 0; i < len(letters); i++ {
		if letters[i] != 'm' {
			continue
		}
		start := i
		for i+1 < len(letters) && letters[i+1] == 'm' {
			i++
		}
		afterHour := start > 0 && letters[start-1] == 'h'
		beforeSecond := i+1 < len(letters) && letters[i+1] == 's'
		if !afterHour && !beforeSecond {
			return true
		}
	}
	return false
}

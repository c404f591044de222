package roster

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadGrid(t *testing.T) {
	content := buildWorkbook(t, april2025,
		[]interface{}{nil, "Lp.", "Tue"},
		[]interface{}{nil, nil, 1},
		[]interface{}{"Jan Kowalski", 1, "08:00-16:00", "W"},
	)

	grid, err := LoadGrid(bytes.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, 2025, grid.HeaderDate.Year())
	assert.Equal(t, time.April, grid.HeaderDate.Month())
	require.Len(t, grid.Rows, 4)
	for _, row := range grid.Rows {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, []string{"", "", "1", ""}, grid.Rows[2])
	assert.Equal(t, []string{"Jan Kowalski", "1", "08:00-16:00", "W"}, grid.Rows[3])
}

func TestLoadGrid_CustomDateFormat(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	format := "mmmm yyyy"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(sheet, "A1", 45778)) // 2025-05-01
	require.NoError(t, f.SetCellStyle(sheet, "A1", "A1", style))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	grid, err := LoadGrid(buf)
	require.NoError(t, err)
	assert.Equal(t, time.May, grid.HeaderDate.Month())
	assert.Equal(t, 2025, grid.HeaderDate.Year())
}

func TestLoadGrid_MalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header interface{}
	}{
		{name: "text", header: "April 2025"},
		{name: "plain number", header: 45748},
		{name: "empty", header: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := buildWorkbook(t, tt.header, []interface{}{nil, "Lp."})
			_, err := LoadGrid(bytes.NewReader(content))
			assert.ErrorIs(t, err, roster.ErrMalformedHeader)
		})
	}
}

func TestLoadGrid_TimeOnlyHeader(t *testing.T) {
	hhmm := "hh:mm"
	tests := []struct {
		name  string
		style excelize.Style
		value float64
	}{
		{name: "built-in h:mm", style: excelize.Style{NumFmt: 20}, value: 0.5},
		{name: "custom hh:mm", style: excelize.Style{CustomNumFmt: &hhmm}, value: 0.5},
		{name: "date format on a fraction", style: excelize.Style{NumFmt: 14}, value: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := excelize.NewFile()
			defer f.Close()
			sheet := f.GetSheetName(0)

			style, err := f.NewStyle(&tt.style)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, "A1", tt.value))
			require.NoError(t, f.SetCellStyle(sheet, "A1", "A1", style))

			buf, err := f.WriteToBuffer()
			require.NoError(t, err)

			_, err = LoadGrid(buf)
			assert.ErrorIs(t, err, roster.ErrMalformedHeader)
		})
	}
}

func TestLoadGrid_NotAWorkbook(t *testing.T) {
	_, err := LoadGrid(strings.NewReader("name,day\nJan Kowalski,W\n"))
	assert.Error(t, err)
}

func TestIsDateFormat(t *testing.T) {
	custom := func(s string) *string { return &s }

	assert.True(t, isDateFormat(14, nil))
	assert.True(t, isDateFormat(22, nil))
	assert.False(t, isDateFormat(20, nil))
	assert.False(t, isDateFormat(46, nil))
	assert.True(t, isDateFormat(57, nil))
	assert.False(t, isDateFormat(0, nil))
	assert.False(t, isDateFormat(2, nil))
	assert.True(t, isDateFormat(164, custom("yyyy-mm")))
	assert.True(t, isDateFormat(164, custom(`[$-415]mmmm yyyy`)))
	assert.False(t, isDateFormat(164, custom(`0.00"d"`)))
	assert.False(t, isDateFormat(164, custom(`[Red]0.00`)))
	assert.False(t, isDateFormat(164, custom("h:mm")))
	assert.False(t, isDateFormat(164, custom("mm:ss")))
	assert.False(t, isDateFormat(164, custom("[h]:mm:ss")))
	assert.True(t, isDateFormat(164, custom("mmm h:mm")))
	assert.True(t, isDateFormat(164, custom("m/d/yy h:mm")))
}

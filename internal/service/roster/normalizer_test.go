package roster

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aprilGrid(rows ...[]string) roster.RawGrid {
	return roster.RawGrid{
		HeaderDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		Rows:       rows,
	}
}

func TestNormalize(t *testing.T) {
	grid := aprilGrid(
		[]string{"04/01/25", "", "", "", "", ""},
		[]string{"", "Lp.", "Tue", "Wed", "", "Thu"},
		[]string{"", "", "1", "2", "", "3"},
		[]string{"FULL TIME", "", "", "", "", ""},
		[]string{"Jan Kowalski", "1", "08:00-16:00", "W", "x", "OFF"},
		[]string{"", "", "", "", "", ""},
		[]string{"PART TIME 1/2", "", "", "", "", ""},
		[]string{"Anna Nowak", "2", "", "10:00-18:00", "", "???"},
	)

	table, err := Normalize(grid, DefaultParseOptions())
	require.NoError(t, err)

	assert.Equal(t, 4, table.Month)
	assert.Equal(t, 2025, table.Year)
	assert.Equal(t, []int{1, 2, 3}, table.Days)
	assert.Equal(t, []string{"Tue", "Wed", "Thu"}, table.Labels)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Jan Kowalski", table.Rows[0].Name)
	assert.Equal(t, []string{"08:00-16:00", "W", "OFF"}, table.Rows[0].Cells)
	assert.Equal(t, "Anna Nowak", table.Rows[1].Name)
	assert.Equal(t, []string{"", "10:00-18:00", "???"}, table.Rows[1].Cells)
}

func TestNormalize_MissingBannersAreIgnored(t *testing.T) {
	grid := aprilGrid(
		[]string{"", "", ""},
		[]string{"", "", ""},
		[]string{"", "", "1"},
		[]string{"Jan Kowalski", "1", "W"},
	)

	table, err := Normalize(grid, DefaultParseOptions())
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"W"}, table.Rows[0].Cells)
}

func TestNormalize_DropsColumnsOutsideTheMonth(t *testing.T) {
	grid := aprilGrid(
		[]string{"", "", "", "", "", ""},
		[]string{"", "", "", "", "", ""},
		[]string{"", "", "30", "31", "abc", "1.0"},
		[]string{"Jan Kowalski", "1", "W", "W", "W", "OFF"},
	)

	table, err := Normalize(grid, DefaultParseOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{30, 1}, table.Days)
	assert.Equal(t, []string{"W", "OFF"}, table.Rows[0].Cells)
}

func TestNormalize_KeepLeadingColumn(t *testing.T) {
	grid := aprilGrid(
		[]string{"", "", ""},
		[]string{"", "", ""},
		[]string{"", "1", "2"},
		[]string{"Jan Kowalski", "W", "OFF"},
	)

	opts := DefaultParseOptions()
	opts.DropLeadingColumn = false

	table, err := Normalize(grid, opts)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, table.Days)
	assert.Equal(t, []string{"W", "OFF"}, table.Rows[0].Cells)
}

func TestNormalize_NameColumn(t *testing.T) {
	grid := aprilGrid(
		[]string{"", "", "", ""},
		[]string{"", "", "", ""},
		[]string{"", "", "", "1"},
		[]string{"1", "Jan Kowalski", "x", "W"},
	)

	opts := DefaultParseOptions()
	opts.NameColumnIndex = 1

	table, err := Normalize(grid, opts)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Jan Kowalski", table.Rows[0].Name)
	assert.Equal(t, []int{1}, table.Days)
	assert.Equal(t, []string{"W"}, table.Rows[0].Cells)
}

func TestNormalize_Errors(t *testing.T) {
	t.Run("too few rows", func(t *testing.T) {
		_, err := Normalize(aprilGrid([]string{"a"}, []string{"b"}), DefaultParseOptions())
		assert.ErrorIs(t, err, roster.ErrEmptyWorkbook)
	})

	t.Run("name column outside sheet", func(t *testing.T) {
		opts := DefaultParseOptions()
		opts.NameColumnIndex = 5
		_, err := Normalize(aprilGrid([]string{"a"}, []string{"b"}, []string{"c"}), opts)
		assert.Error(t, err)
	})
}

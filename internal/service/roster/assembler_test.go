package roster

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(days []int, rows ...roster.TableRow) roster.NormalizedTable {
	return roster.NormalizedTable{Month: 4, Year: 2025, Days: days, Rows: rows}
}

func registryFor(t *testing.T, table roster.NormalizedTable) []roster.Employee {
	t.Helper()
	names := make([]string, len(table.Rows))
	for i, r := range table.Rows {
		names[i] = r.Name
	}
	employees, err := BuildRegistry(names, table.Month, table.Year)
	require.NoError(t, err)
	return employees
}

func TestScanStart(t *testing.T) {
	assert.Equal(t, 0, ScanStart([]string{"W", "W", "W"}))
	assert.Equal(t, 2, ScanStart([]string{"", "", "W", "W"}))
	assert.Equal(t, 3, ScanStart([]string{"", "W", " ", "W"}))
	assert.Equal(t, 0, ScanStart(nil))
}

func TestAssemble(t *testing.T) {
	table := newTable([]int{1, 2, 3},
		roster.TableRow{Name: "Jan Kowalski", Cells: []string{"08:00-16:00", "W", "OFF"}},
		roster.TableRow{Name: "Anna Nowak", Cells: []string{"MC", "", "08:00U16:00"}},
	)
	employees := registryFor(t, table)

	count := Assemble(table, employees)
	assert.Equal(t, 5, count)

	jan := employees[0].Schedule.Shifts
	require.Len(t, jan, 3)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), jan[0].Date)
	assert.Equal(t, &roster.Clock{Hour: 8}, jan[0].TimeStart)
	assert.Equal(t, &roster.Clock{Hour: 16}, jan[0].TimeEnd)
	assert.Equal(t, roster.DayTypeWork, *jan[0].DayType)
	assert.Equal(t, roster.DayTypeNonWorkingDay, *jan[1].DayType)
	assert.Equal(t, roster.DayTypeAvailabilityOff, *jan[2].DayType)
	assert.Equal(t, 3, jan[2].Date.Day())

	anna := employees[1].Schedule.Shifts
	require.Len(t, anna, 2)
	assert.Nil(t, anna[0].TimeStart)
	assert.Nil(t, anna[0].TimeEnd)
	assert.Equal(t, roster.DayTypeWork, *anna[0].DayType)
	assert.Equal(t, "MC", *anna[0].AdditionalInfo)
	assert.Equal(t, roster.DayTypeVacation, *anna[1].DayType)
}

func TestAssemble_FirstRowPruning(t *testing.T) {
	// Day 10 is empty for the first employee, so it is skipped for everyone after.
	days := []int{8, 9, 10, 11}
	table := newTable(days,
		roster.TableRow{Name: "Jan Kowalski", Cells: []string{"W", "W", "", "W"}},
		roster.TableRow{Name: "Anna Nowak", Cells: []string{"W", "W", "08:00-16:00", "W"}},
	)
	employees := registryFor(t, table)

	Assemble(table, employees)

	assert.Len(t, employees[0].Schedule.Shifts, 3)
	anna := employees[1].Schedule.Shifts
	require.Len(t, anna, 1)
	assert.Equal(t, 11, anna[0].Date.Day())
}

func TestAssemble_ShiftCountMatchesPopulatedCells(t *testing.T) {
	table := newTable([]int{1, 2, 3, 4},
		roster.TableRow{Name: "Jan Kowalski", Cells: []string{"W", "W", "W", "W"}},
		roster.TableRow{Name: "Anna Nowak", Cells: []string{"", "OFF", "", "???"}},
		roster.TableRow{Name: "Ewa Lis", Cells: []string{"W", "", "", ""}},
	)
	employees := registryFor(t, table)

	Assemble(table, employees)

	assert.Len(t, employees[0].Schedule.Shifts, 4)
	assert.Len(t, employees[1].Schedule.Shifts, 2)
	assert.Len(t, employees[2].Schedule.Shifts, 1)
}

func TestAssemble_HalfTimeBecomesNote(t *testing.T) {
	table := newTable([]int{1, 2},
		roster.TableRow{Name: "Jan Kowalski", Cells: []string{"08:00-late", " -16:00 "}},
	)
	employees := registryFor(t, table)

	Assemble(table, employees)

	shifts := employees[0].Schedule.Shifts
	require.Len(t, shifts, 2)
	for i, want := range []string{"08:00-late", "-16:00"} {
		assert.Nil(t, shifts[i].TimeStart)
		assert.Nil(t, shifts[i].TimeEnd)
		assert.Equal(t, roster.DayTypeWork, *shifts[i].DayType)
		require.NotNil(t, shifts[i].AdditionalInfo)
		assert.Equal(t, want, *shifts[i].AdditionalInfo)
	}
}

func TestAssemble_OversizedHourBecomesNote(t *testing.T) {
	table := newTable([]int{1},
		roster.TableRow{Name: "Jan Kowalski", Cells: []string{"1234567890123456:00-16:00"}},
	)
	employees := registryFor(t, table)

	Assemble(table, employees)

	shifts := employees[0].Schedule.Shifts
	require.Len(t, shifts, 1)
	assert.Nil(t, shifts[0].TimeStart)
	assert.Nil(t, shifts[0].TimeEnd)
	require.NotNil(t, shifts[0].AdditionalInfo)
	assert.Equal(t, "1234567890123456:00-16:00", *shifts[0].AdditionalInfo)
}

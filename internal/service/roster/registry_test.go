package roster

import (
	"testing"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRegistry(t *testing.T) {
	employees, err := BuildRegistry([]string{"Jan Kowalski", "Anna  Nowak"}, 4, 2025)
	require.NoError(t, err)
	require.Len(t, employees, 2)

	assert.Equal(t, "Jan", employees[0].FirstName)
	assert.Equal(t, "Kowalski", employees[0].LastName)
	assert.Equal(t, "Nowak", employees[1].LastName)
	for _, e := range employees {
		assert.Equal(t, 4, e.Schedule.Month)
		assert.Equal(t, 2025, e.Schedule.Year)
		assert.NotNil(t, e.Schedule.Shifts)
		assert.Empty(t, e.Schedule.Shifts)
	}
}

func TestBuildRegistry_MalformedName(t *testing.T) {
	for _, name := range []string{"Jan", "Jan Maria Kowalski", ""} {
		_, err := BuildRegistry([]string{"Anna Nowak", name}, 4, 2025)
		assert.ErrorIs(t, err, roster.ErrMalformedName, "name %q", name)
	}
}

func TestEmployeeEqual_IgnoresSchedule(t *testing.T) {
	a := roster.Employee{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Schedule:  roster.EmployeeSchedule{Month: 4, Year: 2025},
	}
	b := roster.Employee{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Schedule: roster.EmployeeSchedule{
			Month:  5,
			Year:   2024,
			Shifts: []roster.Shift{{DayType: roster.DayTypeWork.Ptr()}},
		},
	}
	c := roster.Employee{FirstName: "Jan", LastName: "Nowak"}

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
}

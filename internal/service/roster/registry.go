package roster

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
)

// BuildRegistry creates one employee with an empty schedule per row name.
func BuildRegistry(names []string, month, year int) ([]roster.Employee, error) {
	employees := make([]roster.Employee, 0, len(names))
	for _, name := range names {
		tokens := strings.Fields(name)
		if len(tokens) != 2 {
			return nil, fmt.Errorf("%w: %q", roster.ErrMalformedName, name)
		}
		employees = append(employees, roster.Employee{
			FirstName: tokens[0],
			LastName:  tokens[1],
			Schedule: roster.EmployeeSchedule{
				Month:  month,
				Year:   year,
				Shifts: []roster.Shift{},
			},
		})
	}
	return employees, nil
}

package roster

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type DayType string

const (
	DayTypeWork            DayType = "WORK"
	DayTypeSickLeave       DayType = "SICK_LEAVE"
	DayTypeVacation        DayType = "VACATION"
	DayTypeNonWorkingDay   DayType = "NON_WORKING_DAY"
	DayTypeAvailabilityOff DayType = "AVAILABILITY_OFF"
	DayTypeRequestedOff    DayType = "REQUESTED_OFF"
)

var DayTypeValues = []string{
	string(DayTypeWork),
	string(DayTypeSickLeave),
	string(DayTypeVacation),
	string(DayTypeNonWorkingDay),
	string(DayTypeAvailabilityOff),
	string(DayTypeRequestedOff),
}

// ParseDayType accepts only the stored day type codes.
func ParseDayType(s string) (DayType, bool) {
	for _, v := range DayTypeValues {
		if v == s {
			return DayType(s), true
		}
	}
	return "", false
}

// Ptr returns a pointer to a copy of d.
func (d DayType) Ptr() *DayType {
	return &d
}

// Clock is a wall-clock time of day as written in the roster.
// Hour and Minute are not range checked.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// at most two digits per side keeps Clock.String within the shift columns
const maxClockDigits = 2

// ParseClock converts "HH:MM" into a Clock. Anything else, including nil and
// "", yields nil. Hours and minutes are not range checked.
func ParseClock(text *string) *Clock {
	if text == nil || *text == "" {
		return nil
	}
	h, m, ok := strings.Cut(*text, ":")
	if !ok || !isDigits(h) || !isDigits(m) || len(h) > maxClockDigits || len(m) > maxClockDigits {
		return nil
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return nil
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &Clock{Hour: hour, Minute: minute}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c Clock) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

type Shift struct {
	Date           time.Time
	TimeStart      *Clock
	TimeEnd        *Clock
	DayType        *DayType
	AdditionalInfo *string
}

// MarshalJSON renders Date as YYYY-MM-DD.
func (s Shift) MarshalJSON() ([]byte, error) {
	type shiftJSON struct {
		Date           string   `json:"date"`
		TimeStart      *Clock   `json:"time_start"`
		TimeEnd        *Clock   `json:"time_end"`
		DayType        *DayType `json:"day_type"`
		AdditionalInfo *string  `json:"additional_info"`
	}
	return json.Marshal(shiftJSON{
		Date:           s.Date.Format("2006-01-02"),
		TimeStart:      s.TimeStart,
		TimeEnd:        s.TimeEnd,
		DayType:        s.DayType,
		AdditionalInfo: s.AdditionalInfo,
	})
}

func (s Shift) MarshalYAML() (interface{}, error) {
	out := map[string]interface{}{
		"date":            s.Date.Format("2006-01-02"),
		"time_start":      nil,
		"time_end":        nil,
		"day_type":        nil,
		"additional_info": nil,
	}
	if s.TimeStart != nil {
		out["time_start"] = s.TimeStart.String()
	}
	if s.TimeEnd != nil {
		out["time_end"] = s.TimeEnd.String()
	}
	if s.DayType != nil {
		out["day_type"] = string(*s.DayType)
	}
	if s.AdditionalInfo != nil {
		out["additional_info"] = *s.AdditionalInfo
	}
	return out, nil
}

type EmployeeSchedule struct {
	Month  int     `json:"month" yaml:"month"`
	Year   int     `json:"year" yaml:"year"`
	Shifts []Shift `json:"shifts" yaml:"shifts"`
}

type Employee struct {
	FirstName string           `json:"first_name" yaml:"first_name"`
	LastName  string           `json:"last_name" yaml:"last_name"`
	Schedule  EmployeeSchedule `json:"schedule" yaml:"schedule"`
}

// Equal reports whether e and other are the same person.
// Schedules are ignored: identity is the first and last name only.
func (e Employee) Equal(other Employee) bool {
	return e.FirstName == other.FirstName && e.LastName == other.LastName
}

// FullName returns "First Last".
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// RawGrid is the first sheet of a roster workbook as read from disk.
// Every row is padded to the same width; "" marks an empty cell.
type RawGrid struct {
	HeaderDate time.Time
	Rows       [][]string
}

// DayOfMonthLabel is the row key of the normalized table row holding day numbers.
const DayOfMonthLabel = "DAY_OF_THE_MONTH"

type TableRow struct {
	Name  string
	Cells []string
}

// NormalizedTable is the employee x day-of-month view of a roster.
// Days[i] is the day number of column i and Labels[i] its promoted sheet
// label; every row has len(Days) cells.
type NormalizedTable struct {
	Month  int
	Year   int
	Days   []int
	Labels []string
	Rows   []TableRow
}

// DecodedCell is the result of reading one roster cell.
// TimeStart and TimeEnd are raw time text; nil means "no time".
type DecodedCell struct {
	TimeStart      *string
	TimeEnd        *string
	DayType        *DayType
	AdditionalInfo *string
}

// Schedule is a persisted EmployeeSchedule owned by a user account.
type Schedule struct {
	ID        string
	UserID    string
	Month     int
	Year      int
	CreatedAt time.Time
	UpdatedAt time.Time

	Shifts []Shift
}

// ScheduleSummary is one row of the admin schedule listing.
type ScheduleSummary struct {
	ID         string
	UserID     string
	FirstName  string
	LastName   string
	Email      string
	Month      int
	Year       int
	ShiftCount int
	UpdatedAt  time.Time
}

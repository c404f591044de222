package roster

import (
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
)

type UploadRosterRequest struct {
	FileName string
	Content  []byte
}

func (r *UploadRosterRequest) Validate() error {
	if validator.IsEmpty(r.FileName) || len(r.Content) == 0 {
		return ErrFileRequired
	}
	if strings.ToLower(filepath.Ext(r.FileName)) != ".xlsx" {
		return ErrInvalidFileType
	}
	return nil
}

type ImportResult struct {
	ImportID    string   `json:"import_id"`
	FileName    string   `json:"file_name"`
	Month       int      `json:"month"`
	Year        int      `json:"year"`
	Imported    []string `json:"imported"`
	NotFound    []string `json:"not_found"`
	ShiftCount  int      `json:"shift_count"`
	ArchivePath string   `json:"archive_path,omitempty"`
}

// Messages renders the operator summary lines of an import.
func (r ImportResult) Messages() []string {
	var messages []string
	if len(r.Imported) > 0 {
		messages = append(messages, "Added schedules for employees: "+strings.Join(r.Imported, ", ")+".")
	}
	if len(r.NotFound) > 0 {
		messages = append(messages, "Employees not found in database: "+strings.Join(r.NotFound, ", ")+".")
	}
	return messages
}

type ScheduleFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (f *ScheduleFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month parameter not found in request",
		})
	} else if !validator.IsValidMonth(f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Year == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year parameter not found in request",
		})
	} else if !validator.IsValidYear(f.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a four digit year",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftResponse struct {
	Date           string  `json:"date"`
	TimeStart      *string `json:"time_start"`
	TimeEnd        *string `json:"time_end"`
	DayType        *string `json:"day_type"`
	AdditionalInfo *string `json:"additional_info"`
}

type ScheduleResponse struct {
	Month  int             `json:"month"`
	Year   int             `json:"year"`
	Shifts []ShiftResponse `json:"shifts"`
}

type ScheduleSummaryResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	ShiftCount int    `json:"shift_count"`
	UpdatedAt  string `json:"updated_at"`
}

// NewShiftResponse converts a shift to its API shape.
func NewShiftResponse(s Shift) ShiftResponse {
	resp := ShiftResponse{
		Date:           s.Date.Format("2006-01-02"),
		AdditionalInfo: s.AdditionalInfo,
	}
	if s.TimeStart != nil {
		v := s.TimeStart.String()
		resp.TimeStart = &v
	}
	if s.TimeEnd != nil {
		v := s.TimeEnd.String()
		resp.TimeEnd = &v
	}
	if s.DayType != nil {
		v := string(*s.DayType)
		resp.DayType = &v
	}
	return resp
}

const EventSchedulePublished = "schedule_published"

// ScheduleEvent is pushed to an employee when a new roster covering them is imported.
type ScheduleEvent struct {
	Event      string `json:"event"`
	ImportID   string `json:"import_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	ShiftCount int    `json:"shift_count"`
}

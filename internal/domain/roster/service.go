package roster

import (
	"context"
)

type RosterService interface {
	// Import parses an uploaded roster and stores the schedules of every known employee.
	Import(ctx context.Context, req UploadRosterRequest) (ImportResult, error)
	// GetMySchedule returns the schedule of the user in ctx.
	GetMySchedule(ctx context.Context, filter ScheduleFilter) (ScheduleResponse, error)
	ListSchedules(ctx context.Context, filter ScheduleFilter) ([]ScheduleSummaryResponse, error)

	// SSE subscription
	Subscribe(ctx context.Context, userID string) (<-chan ScheduleEvent, func())
}

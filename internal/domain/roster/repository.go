package roster

import "context"

type ScheduleRepository interface {
	// Upsert creates the (user, month, year) schedule or returns the existing one.
	Upsert(ctx context.Context, userID string, month, year int) (Schedule, error)
	// UpsertShifts writes shifts keyed by (schedule, date); existing rows are overwritten.
	UpsertShifts(ctx context.Context, scheduleID string, shifts []Shift) error
	GetByUserAndPeriod(ctx context.Context, userID string, month, year int) (Schedule, error)
	GetShifts(ctx context.Context, scheduleID string) ([]Shift, error)
	ListByPeriod(ctx context.Context, month, year int) ([]ScheduleSummary, error)
}

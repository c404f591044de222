package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) roster.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

// Upsert implements roster.ScheduleRepository.
func (r *scheduleRepositoryImpl) Upsert(ctx context.Context, userID string, month, year int) (roster.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_schedules (user_id, month, year)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, month, year)
		DO UPDATE SET updated_at = NOW()
		RETURNING id, user_id, month, year, created_at, updated_at
	`

	var s roster.Schedule
	err := q.QueryRow(ctx, query, userID, month, year).Scan(
		&s.ID, &s.UserID, &s.Month, &s.Year, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return roster.Schedule{}, fmt.Errorf("failed to upsert schedule: %w", err)
	}

	return s, nil
}

// UpsertShifts implements roster.ScheduleRepository.
func (r *scheduleRepositoryImpl) UpsertShifts(ctx context.Context, scheduleID string, shifts []roster.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	const columns = 6
	valueStrings := make([]string, 0, len(shifts))
	valueArgs := make([]interface{}, 0, len(shifts)*columns)

	for i, s := range shifts {
		base := i * columns
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
		))
		valueArgs = append(valueArgs,
			scheduleID,
			s.Date,
			clockText(s.TimeStart),
			clockText(s.TimeEnd),
			dayTypeText(s.DayType),
			s.AdditionalInfo,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO shifts (schedule_id, date, time_start, time_end, day_type, additional_info)
		VALUES %s
		ON CONFLICT (schedule_id, date)
		DO UPDATE SET
			time_start = EXCLUDED.time_start,
			time_end = EXCLUDED.time_end,
			day_type = EXCLUDED.day_type,
			additional_info = EXCLUDED.additional_info,
			updated_at = NOW()
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to upsert shifts: %w", err)
	}

	return nil
}

// GetByUserAndPeriod implements roster.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByUserAndPeriod(ctx context.Context, userID string, month, year int) (roster.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, month, year, created_at, updated_at
		FROM employee_schedules
		WHERE user_id = $1 AND month = $2 AND year = $3
	`

	var s roster.Schedule
	err := q.QueryRow(ctx, query, userID, month, year).Scan(
		&s.ID, &s.UserID, &s.Month, &s.Year, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return roster.Schedule{}, roster.ErrScheduleNotFound
		}
		return roster.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	return s, nil
}

// GetShifts implements roster.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetShifts(ctx context.Context, scheduleID string) ([]roster.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date, time_start, time_end, day_type, additional_info
		FROM shifts
		WHERE schedule_id = $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	shifts := []roster.Shift{}
	for rows.Next() {
		var (
			s                  roster.Shift
			timeStart, timeEnd *string
			dayType            *string
		)
		if err := rows.Scan(&s.Date, &timeStart, &timeEnd, &dayType, &s.AdditionalInfo); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		s.TimeStart = roster.ParseClock(timeStart)
		s.TimeEnd = roster.ParseClock(timeEnd)
		if dayType != nil {
			dt, ok := roster.ParseDayType(*dayType)
			if !ok {
				return nil, fmt.Errorf("unknown day type %q on %s", *dayType, s.Date.Format("2006-01-02"))
			}
			s.DayType = dt.Ptr()
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

// ListByPeriod implements roster.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListByPeriod(ctx context.Context, month, year int) ([]roster.ScheduleSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT es.id, es.user_id, u.first_name, u.last_name, u.email,
		       es.month, es.year, COUNT(s.id), es.updated_at
		FROM employee_schedules es
		JOIN users u ON u.id = es.user_id
		LEFT JOIN shifts s ON s.schedule_id = es.id
		WHERE es.month = $1 AND es.year = $2
		GROUP BY es.id, u.id
		ORDER BY u.last_name, u.first_name
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	summaries := []roster.ScheduleSummary{}
	for rows.Next() {
		var s roster.ScheduleSummary
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.FirstName, &s.LastName, &s.Email,
			&s.Month, &s.Year, &s.ShiftCount, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedules: %w", err)
	}

	return summaries, nil
}

func clockText(c *roster.Clock) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func dayTypeText(d *roster.DayType) *string {
	if d == nil {
		return nil
	}
	s := string(*d)
	return &s
}

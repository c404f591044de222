package roster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/roster-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/roster-backend-go/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type rosterServiceImpl struct {
	tx           postgresql.Transactor
	scheduleRepo roster.ScheduleRepository
	userRepo     user.UserRepository
	fileService  file.FileService
	hub          *sse.Hub
	notifier     notification.Service
	opts         ParseOptions
}

// NewRosterService wires the import and read side of rosters. fileService,
// hub and notifier may be nil and the matching step is then skipped.
func NewRosterService(
	tx postgresql.Transactor,
	scheduleRepo roster.ScheduleRepository,
	userRepo user.UserRepository,
	fileService file.FileService,
	hub *sse.Hub,
	notifier notification.Service,
	opts ParseOptions,
) roster.RosterService {
	return &rosterServiceImpl{
		tx:           tx,
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		fileService:  fileService,
		hub:          hub,
		notifier:     notifier,
		opts:         opts,
	}
}

type matchedEmployee struct {
	userID   string
	employee roster.Employee
}

// Import implements roster.RosterService.
func (s *rosterServiceImpl) Import(ctx context.Context, req roster.UploadRosterRequest) (roster.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return roster.ImportResult{}, err
	}

	parser := NewParser(s.opts)
	if err := parser.Parse(bytes.NewReader(req.Content)); err != nil {
		return roster.ImportResult{}, &roster.ParseError{FileName: req.FileName, Err: err}
	}

	result := roster.ImportResult{
		ImportID: uuid.NewString(),
		FileName: req.FileName,
		Month:    parser.Month,
		Year:     parser.Year,
		Imported: []string{},
		NotFound: []string{},
	}

	var matched []matchedEmployee
	for _, emp := range parser.FullSchedule {
		u, err := s.userRepo.GetByFullName(ctx, emp.FirstName, emp.LastName)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) || errors.Is(err, user.ErrAmbiguousUserName) {
				slog.Warn("roster employee has no account", "import_id", result.ImportID, "employee", emp.FullName(), "reason", err)
				result.NotFound = append(result.NotFound, emp.FullName())
				continue
			}
			return roster.ImportResult{}, fmt.Errorf("failed to look up employee %s: %w", emp.FullName(), err)
		}
		matched = append(matched, matchedEmployee{userID: u.ID, employee: emp})
	}

	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		for _, m := range matched {
			sched := m.employee.Schedule
			stored, err := s.scheduleRepo.Upsert(txCtx, m.userID, sched.Month, sched.Year)
			if err != nil {
				return fmt.Errorf("failed to save schedule of %s: %w", m.employee.FullName(), err)
			}
			if err := s.scheduleRepo.UpsertShifts(txCtx, stored.ID, sched.Shifts); err != nil {
				return fmt.Errorf("failed to save shifts of %s: %w", m.employee.FullName(), err)
			}
			result.ShiftCount += len(sched.Shifts)
		}
		return nil
	})
	if err != nil {
		return roster.ImportResult{}, err
	}

	for _, m := range matched {
		result.Imported = append(result.Imported, m.employee.FullName())
	}

	if s.fileService != nil {
		archivePath, err := s.fileService.ArchiveRoster(ctx, bytes.NewReader(req.Content), req.FileName, result.ImportID, result.Month, result.Year)
		if err != nil {
			slog.Error("failed to archive roster", "import_id", result.ImportID, "error", err)
		} else {
			result.ArchivePath = archivePath
		}
	}

	liveStreams := 0
	if s.hub != nil {
		for _, m := range matched {
			liveStreams += s.hub.SubscriberCount(m.userID)
			s.hub.Publish(m.userID, sse.Event{
				UserID: m.userID,
				Event:  roster.EventSchedulePublished,
				Data: roster.ScheduleEvent{
					Event:      roster.EventSchedulePublished,
					ImportID:   result.ImportID,
					Month:      m.employee.Schedule.Month,
					Year:       m.employee.Schedule.Year,
					ShiftCount: len(m.employee.Schedule.Shifts),
				},
			})
		}
	}

	if s.notifier != nil && len(matched) > 0 {
		reqs := make([]notification.CreateNotificationRequest, 0, len(matched))
		for _, m := range matched {
			reqs = append(reqs, publishedNotification(result.ImportID, m.userID, m.employee.Schedule))
		}
		if err := s.notifier.QueueBulkNotification(ctx, reqs); err != nil {
			slog.Error("failed to queue schedule notifications", "import_id", result.ImportID, "error", err)
		}
	}

	slog.Info("roster imported",
		"import_id", result.ImportID,
		"file", result.FileName,
		"month", result.Month,
		"year", result.Year,
		"imported", len(result.Imported),
		"not_found", len(result.NotFound),
		"shifts", result.ShiftCount,
		"live_streams", liveStreams,
	)

	return result, nil
}

func publishedNotification(importID, userID string, sched roster.EmployeeSchedule) notification.CreateNotificationRequest {
	period := time.Date(sched.Year, time.Month(sched.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	return notification.CreateNotificationRequest{
		RecipientID: userID,
		Type:        notification.TypeSchedulePublished,
		Title:       "New schedule published",
		Message:     fmt.Sprintf("Your schedule for %s is available (%d days).", period, len(sched.Shifts)),
		Data: map[string]interface{}{
			"import_id":   importID,
			"month":       sched.Month,
			"year":        sched.Year,
			"shift_count": len(sched.Shifts),
		},
	}
}

// GetMySchedule implements roster.RosterService.
func (s *rosterServiceImpl) GetMySchedule(ctx context.Context, filter roster.ScheduleFilter) (roster.ScheduleResponse, error) {
	if err := filter.Validate(); err != nil {
		return roster.ScheduleResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return roster.ScheduleResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return roster.ScheduleResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	sched, err := s.scheduleRepo.GetByUserAndPeriod(ctx, userID, filter.Month, filter.Year)
	if err != nil {
		return roster.ScheduleResponse{}, err
	}

	shifts, err := s.scheduleRepo.GetShifts(ctx, sched.ID)
	if err != nil {
		return roster.ScheduleResponse{}, fmt.Errorf("failed to get shifts: %w", err)
	}
	sort.SliceStable(shifts, func(i, j int) bool { return shifts[i].Date.Before(shifts[j].Date) })

	resp := roster.ScheduleResponse{
		Month:  sched.Month,
		Year:   sched.Year,
		Shifts: make([]roster.ShiftResponse, 0, len(shifts)),
	}
	for _, shift := range shifts {
		resp.Shifts = append(resp.Shifts, roster.NewShiftResponse(shift))
	}
	return resp, nil
}

// ListSchedules implements roster.RosterService.
func (s *rosterServiceImpl) ListSchedules(ctx context.Context, filter roster.ScheduleFilter) ([]roster.ScheduleSummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	summaries, err := s.scheduleRepo.ListByPeriod(ctx, filter.Month, filter.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	resp := make([]roster.ScheduleSummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		resp = append(resp, roster.ScheduleSummaryResponse{
			ID:         sum.ID,
			UserID:     sum.UserID,
			FirstName:  sum.FirstName,
			LastName:   sum.LastName,
			Email:      sum.Email,
			Month:      sum.Month,
			Year:       sum.Year,
			ShiftCount: sum.ShiftCount,
			UpdatedAt:  sum.UpdatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// Subscribe implements roster.RosterService.
func (s *rosterServiceImpl) Subscribe(ctx context.Context, userID string) (<-chan roster.ScheduleEvent, func()) {
	out := make(chan roster.ScheduleEvent, 10)
	if s.hub == nil {
		close(out)
		return out, func() {}
	}

	ch, cleanup := s.hub.Subscribe(userID)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if data, ok := event.Data.(roster.ScheduleEvent); ok {
					select {
					case out <- data:
					case <-ctx.Done():
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

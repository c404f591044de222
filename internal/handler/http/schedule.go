package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

const scheduleFileField = "schedule_file"

type ScheduleHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	GetMySchedule(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	EventsToken(w http.ResponseWriter, r *http.Request)
	Events(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	rosterService  roster.RosterService
	jwtService     jwt.Service
	maxUploadBytes int64
	keepalive      time.Duration
}

func NewScheduleHandler(rosterService roster.RosterService, jwtService jwt.Service, maxUploadMB int64) ScheduleHandler {
	return &scheduleHandlerImpl{
		rosterService:  rosterService,
		jwtService:     jwtService,
		maxUploadBytes: maxUploadMB << 20,
		keepalive:      30 * time.Second,
	}
}

// Upload implements ScheduleHandler.
func (h *scheduleHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	// the extra megabyte leaves room for multipart framing
	limit := h.maxUploadBytes + 1<<20
	if r.ContentLength > limit {
		response.HandleError(w, roster.ErrFileTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.HandleError(w, roster.ErrFileTooLarge)
			return
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile(scheduleFileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.HandleError(w, roster.ErrFileRequired)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	if fileHeader.Size > h.maxUploadBytes {
		response.HandleError(w, roster.ErrFileTooLarge)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded file", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	req := roster.UploadRosterRequest{FileName: fileHeader.Filename, Content: content}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rosterService.Import(r.Context(), req)
	if err != nil {
		slog.Error("Upload schedule service error", "error", err, "file", fileHeader.Filename)
		response.HandleError(w, err)
		return
	}

	message := strings.Join(result.Messages(), " ")
	if message == "" {
		message = "Schedule file contained no employees"
	}
	response.Created(w, message, result)
}

// GetMySchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	filter := parseScheduleFilter(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	schedule, err := h.rosterService.GetMySchedule(r.Context(), filter)
	if err != nil {
		if !errors.Is(err, roster.ErrScheduleNotFound) {
			slog.Error("GetMySchedule service error", "error", err)
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedule)
}

// List implements ScheduleHandler.
func (h *scheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseScheduleFilter(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	schedules, err := h.rosterService.ListSchedules(r.Context(), filter)
	if err != nil {
		slog.Error("List schedules service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, schedules, &response.Meta{TotalItems: int64(len(schedules))})
}

// EventsToken implements ScheduleHandler.
func (h *scheduleHandlerImpl) EventsToken(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		slog.Error("Failed to generate SSE token", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Events streams schedule_published events. EventSource cannot send headers, so
// the short-lived token comes in the query string.
func (h *scheduleHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.rosterService.Subscribe(r.Context(), userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%q}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				slog.Error("Failed to encode schedule event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// parseScheduleFilter maps an unparsable value to -1 so validation reports it as invalid rather than missing.
func parseScheduleFilter(r *http.Request) roster.ScheduleFilter {
	query := r.URL.Query()
	return roster.ScheduleFilter{
		Month: queryInt(query.Get("month")),
		Year:  queryInt(query.Get("year")),
	}
}

func queryInt(value string) int {
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return -1
	}
	return n
}

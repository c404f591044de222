package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRosterService struct {
	imported  []roster.UploadRosterRequest
	importErr error
	schedule  roster.ScheduleResponse
	getErr    error
	listed    []roster.ScheduleFilter
	events    chan roster.ScheduleEvent
}

func (f *fakeRosterService) Import(ctx context.Context, req roster.UploadRosterRequest) (roster.ImportResult, error) {
	f.imported = append(f.imported, req)
	if f.importErr != nil {
		return roster.ImportResult{}, f.importErr
	}
	return roster.ImportResult{
		FileName: req.FileName,
		Month:    4,
		Year:     2025,
		Imported: []string{"Jan Kowalski"},
		NotFound: []string{"Ghost Person"},
	}, nil
}

func (f *fakeRosterService) GetMySchedule(ctx context.Context, filter roster.ScheduleFilter) (roster.ScheduleResponse, error) {
	return f.schedule, f.getErr
}

func (f *fakeRosterService) ListSchedules(ctx context.Context, filter roster.ScheduleFilter) ([]roster.ScheduleSummaryResponse, error) {
	f.listed = append(f.listed, filter)
	return []roster.ScheduleSummaryResponse{{UserID: "u-1", FirstName: "Jan", LastName: "Kowalski", ShiftCount: 30}}, nil
}

func (f *fakeRosterService) Subscribe(ctx context.Context, userID string) (<-chan roster.ScheduleEvent, func()) {
	return f.events, func() {}
}

type nopAuthService struct{}

func (nopAuthService) Login(ctx context.Context, req auth.LoginRequest, s auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrInvalidCredentials
}

func (nopAuthService) LoginWithGoogle(ctx context.Context, email string, googleID string, s auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrUnknownGoogleUser
}

func (nopAuthService) Logout(ctx context.Context, refreshToken string) error { return nil }

func (nopAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	return auth.AccessTokenResponse{}, auth.ErrInvalidToken
}

type nopUserService struct{}

func (nopUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	return user.UserResponse{ID: "u-new", Email: req.Email, Role: req.Role}, nil
}

func (nopUserService) GetProfile(ctx context.Context) (user.UserResponse, error) {
	return user.UserResponse{ID: "u-1"}, nil
}

type routerFixture struct {
	router     http.Handler
	jwtService jwt.Service
	roster     *fakeRosterService
	notifier   *fakeNotificationService
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()
	jwtService, err := jwt.NewJWTService("handler-secret", "1h", "24h", false)
	require.NoError(t, err)
	rosterSvc := &fakeRosterService{events: make(chan roster.ScheduleEvent, 1)}
	notifSvc := &fakeNotificationService{}

	router := NewRouter(
		RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		NewAuthHandler(jwtService, nopAuthService{}, nil, "http://localhost:3000", false),
		NewScheduleHandler(rosterSvc, jwtService, 1),
		NewUserHandler(nopUserService{}),
		NewNotificationHandler(notifSvc),
	)
	return routerFixture{router: router, jwtService: jwtService, roster: rosterSvc, notifier: notifSvc}
}

func (fx routerFixture) token(t *testing.T, role user.Role) string {
	t.Helper()
	token, _, err := fx.jwtService.GenerateAccessToken("u-1", "jan@example.com", "Jan", role)
	require.NoError(t, err)
	return token
}

func (fx routerFixture) do(req *http.Request, bearer string) *httptest.ResponseRecorder {
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)
	return rec
}

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestScheduleHandler_Upload_Success(t *testing.T) {
	fx := newRouterFixture(t)

	rec := fx.do(multipartUpload(t, "schedule_file", "april.xlsx", []byte("PK-fake")), fx.token(t, user.RoleAdmin))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "Added schedules for employees: Jan Kowalski. Employees not found in database: Ghost Person.", body["message"])
	require.Len(t, fx.roster.imported, 1)
	assert.Equal(t, "april.xlsx", fx.roster.imported[0].FileName)
}

func TestScheduleHandler_Upload_RejectsNonAdmin(t *testing.T) {
	fx := newRouterFixture(t)

	rec := fx.do(multipartUpload(t, "schedule_file", "april.xlsx", []byte("x")), fx.token(t, user.RoleEmployee))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, fx.roster.imported)
}

func TestScheduleHandler_Upload_RequiresToken(t *testing.T) {
	fx := newRouterFixture(t)

	rec := fx.do(multipartUpload(t, "schedule_file", "april.xlsx", []byte("x")), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestScheduleHandler_Upload_WrongExtension(t *testing.T) {
	fx := newRouterFixture(t)

	rec := fx.do(multipartUpload(t, "schedule_file", "april.csv", []byte("a,b")), fx.token(t, user.RoleAdmin))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "expected .xlsx")
	assert.Empty(t, fx.roster.imported)
}

func TestScheduleHandler_Upload_MissingFile(t *testing.T) {
	fx := newRouterFixture(t)

	rec := fx.do(multipartUpload(t, "", "", nil), fx.token(t, user.RoleAdmin))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "schedule_file is required")
}

func TestScheduleHandler_Upload_TooLarge(t *testing.T) {
	fx := newRouterFixture(t)

	big := bytes.Repeat([]byte("x"), 3<<20)
	rec := fx.do(multipartUpload(t, "schedule_file", "april.xlsx", big), fx.token(t, user.RoleAdmin))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, fx.roster.imported)
}

func TestScheduleHandler_Upload_ParseErrorIsUnprocessable(t *testing.T) {
	fx := newRouterFixture(t)
	fx.roster.importErr = &roster.ParseError{FileName: "april.xlsx", Err: roster.ErrMalformedHeader}

	rec := fx.do(multipartUpload(t, "schedule_file", "april.xlsx", []byte("x")), fx.token(t, user.RoleAdmin))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to parse schedule file april.xlsx")
}

func TestScheduleHandler_GetMySchedule(t *testing.T) {
	fx := newRouterFixture(t)
	start := "07:00"
	fx.roster.schedule = roster.ScheduleResponse{Month: 4, Year: 2025, Shifts: []roster.ShiftResponse{{Date: "2025-04-01", TimeStart: &start}}}

	rec := fx.do(httptest.NewRequest(http.MethodGet, "/api/v1/schedules/my?month=4&year=2025", nil), fx.token(t, user.RoleEmployee))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"time_start":"07:00"`)
}

func TestScheduleHandler_GetMySchedule_InvalidQuery(t *testing.T) {
	fx := newRouterFixture(t)
	token := fx.token(t, user.RoleEmployee)

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"missing month", "?year=2025", "month"},
		{"missing year", "?month=4", "year"},
		{"month out of range", "?month=13&year=2025", "month"},
		{"month not a number", "?month=april&year=2025", "month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := fx.do(httptest.NewRequest(http.MethodGet, "/api/v1/schedules/my"+tt.query, nil), token)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), `"`+tt.field+`"`)
		})
	}
}

func TestScheduleHandler_GetMySchedule_NotFound(t *testing.T) {
	fx := newRouterFixture(t)
	fx.roster.getErr = roster.ErrScheduleNotFound

	rec := fx.do(httptest.NewRequest(http.MethodGet, "/api/v1/schedules/my?month=5&year=2025", nil), fx.token(t, user.RoleEmployee))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScheduleHandler_List_AdminOnly(t *testing.T) {
	fx := newRouterFixture(t)

	rec := fx.do(httptest.NewRequest(http.MethodGet, "/api/v1/schedules?month=4&year=2025", nil), fx.token(t, user.RoleEmployee))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = fx.do(httptest.NewRequest(http.MethodGet, "/api/v1/schedules?month=4&year=2025", nil), fx.token(t, user.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []roster.ScheduleFilter{{Month: 4, Year: 2025}}, fx.roster.listed)
	assert.Contains(t, rec.Body.String(), `"shift_count":30`)
}

func TestScheduleHandler_RevokedAccessTokenIsRejected(t *testing.T) {
	fx := newRouterFixture(t)
	token := fx.token(t, user.RoleEmployee)
	fx.jwtService.RevokeToken(token)

	rec := fx.do(httptest.NewRequest(http.MethodGet, "/api/v1/schedules/my?month=4&year=2025", nil), token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestScheduleHandler_Events_RequiresSSEToken(t *testing.T) {
	fx := newRouterFixture(t)

	rec := fx.do(httptest.NewRequest(http.MethodGet, "/api/v1/schedules/events", nil), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = fx.do(httptest.NewRequest(http.MethodGet, "/api/v1/schedules/events?token="+fx.token(t, user.RoleAdmin), nil), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestScheduleHandler_Events_StreamsPublishedSchedule(t *testing.T) {
	fx := newRouterFixture(t)
	srv := httptest.NewServer(fx.router)
	defer srv.Close()

	tokenReq, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/schedules/events/token", nil)
	require.NoError(t, err)
	tokenReq.Header.Set("Authorization", "Bearer "+fx.token(t, user.RoleEmployee))
	tokenResp, err := http.DefaultClient.Do(tokenReq)
	require.NoError(t, err)
	defer tokenResp.Body.Close()

	var tokenBody struct {
		Data auth.SSETokenResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(tokenResp.Body).Decode(&tokenBody))
	require.NotEmpty(t, tokenBody.Data.Token)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	streamReq, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/schedules/events?token="+tokenBody.Data.Token, nil)
	require.NoError(t, err)
	streamResp, err := http.DefaultClient.Do(streamReq)
	require.NoError(t, err)
	defer streamResp.Body.Close()
	assert.Equal(t, "text/event-stream", streamResp.Header.Get("Content-Type"))

	fx.roster.events <- roster.ScheduleEvent{Event: roster.EventSchedulePublished, Month: 4, Year: 2025, ShiftCount: 30}

	scanner := bufio.NewScanner(streamResp.Body)
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		lines = append(lines, line)
		if strings.HasPrefix(line, "data:") && strings.Contains(line, "shift_count") {
			break
		}
	}
	assert.Contains(t, lines, "event: connected")
	assert.Contains(t, lines, "event: schedule_published")
}

func TestUserHandler_Create_AdminOnly(t *testing.T) {
	fx := newRouterFixture(t)
	payload := `{"email":"ewa@example.com","first_name":"Ewa","last_name":"Lis","password":"password123","role":"employee"}`

	rec := fx.do(httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(payload)), fx.token(t, user.RoleEmployee))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = fx.do(httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(payload)), fx.token(t, user.RoleAdmin))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	fx := newRouterFixture(t)

	rec := fx.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.co","password":"x"}`)), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = fx.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":""}`)), "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAuthHandler_GoogleDisabled(t *testing.T) {
	fx := newRouterFixture(t)

	rec := fx.do(httptest.NewRequest(http.MethodGet, "/api/v1/auth/login/oauth/google", nil), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

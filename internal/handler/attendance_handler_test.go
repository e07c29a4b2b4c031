package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"officetrack/internal/auth"
	apperrors "officetrack/internal/errors"
	"officetrack/internal/repository"
	"officetrack/internal/service"
)

// MockAttendanceService is a mock implementation of service.AttendanceService.
type MockAttendanceService struct {
	mock.Mock
}

func (m *MockAttendanceService) CheckIn(ctx context.Context, userID uint, lat, lng float64, lateComment string) (int, error) {
	args := m.Called(ctx, userID, lat, lng, lateComment)
	return args.Int(0), args.Error(1)
}

func (m *MockAttendanceService) CheckOut(ctx context.Context, userID uint) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockAttendanceService) TodayStatus(ctx context.Context, userID uint) (*service.TodayStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TodayStatus), args.Error(1)
}

func (m *MockAttendanceService) SummaryForUser(ctx context.Context, userID uint) (*service.AttendanceSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AttendanceSummary), args.Error(1)
}

func (m *MockAttendanceService) ListAll(ctx context.Context) ([]repository.AttendanceRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AttendanceRow), args.Error(1)
}

func (m *MockAttendanceService) WriteCSV(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockAttendanceService) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*excelize.File), args.Error(1)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// What the JWT middleware would have left behind for a signed-in employee.
	c.Set("user", &jwt.Token{Claims: &auth.Claims{UserID: 7, Role: "employee", Name: "Asha Patil"}})
	return c, rec
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func TestAttendanceHandler_CheckIn(t *testing.T) {
	body := `{"latitude":20.010681,"longitude":73.741994}`

	tests := []struct {
		name       string
		distance   int
		serviceErr error
		wantBody   string
	}{
		{
			name:     "present",
			distance: 12,
			wantBody: `{"status":"Present","distance":12}`,
		},
		{
			name:       "outside geofence",
			distance:   412,
			serviceErr: apperrors.ErrOutsideGeofence,
			wantBody:   `{"status":"Outside","distance":412}`,
		},
		{
			name:       "already marked",
			serviceErr: apperrors.ErrAlreadyMarked,
			wantBody:   `{"status":"already_marked"}`,
		},
		{
			name:       "late comment required",
			serviceErr: apperrors.ErrLateCommentRequired,
			wantBody:   `{"status":"late_comment_required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAttendanceService)
			svc.On("CheckIn", mock.Anything, uint(7), 20.010681, 73.741994, "").
				Return(tt.distance, tt.serviceErr)

			c, rec := newTestContext(t, http.MethodPost, "/employee/check-in", body)
			h := NewAttendanceHandler(svc)

			assert.NoError(t, h.CheckIn(c))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAttendanceHandler_CheckOut(t *testing.T) {
	tests := []struct {
		name       string
		checkOut   string
		serviceErr error
		wantBody   string
	}{
		{name: "success", checkOut: "17:30:00", wantBody: `{"status":"success","check_out_time":"17:30:00"}`},
		{name: "time blocked", serviceErr: apperrors.ErrTimeBlocked, wantBody: `{"status":"time_blocked"}`},
		{name: "not checked in", serviceErr: apperrors.ErrNotCheckedIn, wantBody: `{"status":"not_checked_in"}`},
		{name: "already checked out", serviceErr: apperrors.ErrAlreadyCheckedOut, wantBody: `{"status":"already_checked_out"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAttendanceService)
			svc.On("CheckOut", mock.Anything, uint(7)).Return(tt.checkOut, tt.serviceErr)

			c, rec := newTestContext(t, http.MethodPost, "/employee/check-out", "")
			h := NewAttendanceHandler(svc)

			assert.NoError(t, h.CheckOut(c))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAttendanceHandler_DownloadCSV(t *testing.T) {
	svc := new(MockAttendanceService)
	svc.On("WriteCSV", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		w := args.Get(1).(io.Writer)
		_, _ = w.Write([]byte("Employee,Date\n"))
	}).Return(nil)

	c, rec := newTestContext(t, http.MethodGet, "/admin/attendance/download", "")
	h := NewAttendanceHandler(svc)

	assert.NoError(t, h.DownloadCSV(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attendance_log.csv")
	assert.Equal(t, "Employee,Date\n", rec.Body.String())
}

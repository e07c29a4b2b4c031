package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/geo"
	"officetrack/internal/model"
	"officetrack/internal/repository"
)

// Office describes the geofence and wall-clock gates that govern attendance.
// Cutoffs are minutes since midnight in Loc.
type Office struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
	Loc          *time.Location
	LateCutoff   int
	CheckoutOpen int
}

// TodayStatus is the employee's attendance state for the current day.
type TodayStatus struct {
	Status       string `json:"status"`
	CheckInTime  string `json:"check_in_time,omitempty"`
	CheckOutTime string `json:"check_out_time,omitempty"`
}

// AttendanceRecord is one row of the employee's own history.
type AttendanceRecord struct {
	Date     string  `json:"date"`
	Status   string  `json:"status"`
	CheckIn  string  `json:"check_in"`
	CheckOut *string `json:"check_out"`
}

// AttendanceSummary is the employee history plus presence counters.
// Late counts Present days classified HALF.
type AttendanceSummary struct {
	Present int                `json:"present"`
	Absent  int                `json:"absent"`
	Late    int                `json:"late"`
	Total   int                `json:"total"`
	Records []AttendanceRecord `json:"records"`
}

// AttendanceService implements the geofenced check-in/out state machine and
// the admin reports over it.
type AttendanceService interface {
	// CheckIn validates geofence, per-day uniqueness, and lateness rules, then
	// creates the presence record. The returned distance (rounded meters) is
	// meaningful on success and on ErrOutsideGeofence.
	CheckIn(ctx context.Context, userID uint, lat, lng float64, lateComment string) (int, error)
	CheckOut(ctx context.Context, userID uint) (string, error)
	TodayStatus(ctx context.Context, userID uint) (*TodayStatus, error)
	SummaryForUser(ctx context.Context, userID uint) (*AttendanceSummary, error)
	ListAll(ctx context.Context) ([]repository.AttendanceRow, error)
	WriteCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context) (*excelize.File, error)
}

type attendanceService struct {
	repo   repository.AttendanceRepository
	office Office
	now    func() time.Time
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(repo repository.AttendanceRepository, office Office) AttendanceService {
	return &attendanceService{
		repo:   repo,
		office: office,
		now:    time.Now,
	}
}

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

// localNow is the current office wall-clock time; date bucketing and cutoff
// comparisons all run on it, never on server time.
func (s *attendanceService) localNow() time.Time {
	return s.now().In(s.office.Loc)
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func (s *attendanceService) CheckIn(ctx context.Context, userID uint, lat, lng float64, lateComment string) (int, error) {
	distance := geo.Distance(lat, lng, s.office.Lat, s.office.Lng)
	rounded := int(math.Round(distance))
	if distance > s.office.RadiusMeters {
		return rounded, apperrors.ErrOutsideGeofence
	}

	now := s.localNow()
	today := now.Format(dateLayout)

	if _, err := s.repo.FindByUserAndDate(ctx, userID, today); err == nil {
		return rounded, apperrors.ErrAlreadyMarked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return rounded, err
	}

	late := secondsOfDay(now) > s.office.LateCutoff*60
	if late && lateComment == "" {
		return rounded, apperrors.ErrLateCommentRequired
	}

	dayType := model.DayTypeFull
	if late {
		dayType = model.DayTypeHalf
	}
	var comment *string
	if lateComment != "" {
		comment = &lateComment
	}

	record := &model.Attendance{
		UserID:      userID,
		Date:        today,
		CheckInTime: now.Format(clockLayout),
		Latitude:    lat,
		Longitude:   lng,
		Status:      model.AttendanceStatusPresent,
		DayType:     dayType,
		LateComment: comment,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		// The existence check above is a race; the unique index decides.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return rounded, apperrors.ErrAlreadyMarked
		}
		return rounded, fmt.Errorf("create attendance: %w", err)
	}

	return rounded, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, userID uint) (string, error) {
	now := s.localNow()
	if secondsOfDay(now) < s.office.CheckoutOpen*60 {
		return "", apperrors.ErrTimeBlocked
	}

	today := now.Format(dateLayout)
	record, err := s.repo.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotCheckedIn
		}
		return "", err
	}
	if record.CheckOutTime != nil {
		return "", apperrors.ErrAlreadyCheckedOut
	}

	checkOut := now.Format(clockLayout)
	rows, err := s.repo.SetCheckOut(ctx, userID, today, checkOut)
	if err != nil {
		return "", fmt.Errorf("set check-out: %w", err)
	}
	if rows == 0 {
		// Lost a concurrent race; the guarded update kept the first write.
		return "", apperrors.ErrAlreadyCheckedOut
	}
	return checkOut, nil
}

func (s *attendanceService) TodayStatus(ctx context.Context, userID uint) (*TodayStatus, error) {
	today := s.localNow().Format(dateLayout)
	record, err := s.repo.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &TodayStatus{Status: "not_marked"}, nil
		}
		return nil, err
	}

	if record.CheckOutTime == nil {
		return &TodayStatus{Status: "checked_in", CheckInTime: record.CheckInTime}, nil
	}
	return &TodayStatus{
		Status:       "checked_out",
		CheckInTime:  record.CheckInTime,
		CheckOutTime: *record.CheckOutTime,
	}, nil
}

func (s *attendanceService) SummaryForUser(ctx context.Context, userID uint) (*AttendanceSummary, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &AttendanceSummary{Records: make([]AttendanceRecord, 0, len(records))}
	for _, r := range records {
		if r.Status == model.AttendanceStatusPresent {
			summary.Present++
			if r.DayType == model.DayTypeHalf {
				summary.Late++
			}
		} else {
			summary.Absent++
		}
		summary.Records = append(summary.Records, AttendanceRecord{
			Date:     r.Date,
			Status:   r.Status,
			CheckIn:  r.CheckInTime,
			CheckOut: r.CheckOutTime,
		})
	}
	summary.Total = len(records)
	return summary, nil
}

func (s *attendanceService) ListAll(ctx context.Context) ([]repository.AttendanceRow, error) {
	return s.repo.ListAllWithNames(ctx)
}

var reportHeader = []string{"Employee", "Date", "Check In", "Check Out", "Day Type", "Late Reason"}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func (s *attendanceService) WriteCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.repo.ListAllWithNames(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.Name, r.Date, r.CheckInTime, derefOr(r.CheckOutTime, ""), r.DayType, derefOr(r.LateComment, "")}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const reportSheet = "Attendance"

func (s *attendanceService) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	rows, err := s.repo.ListAllWithNames(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), reportSheet)

	header := make([]interface{}, len(reportHeader))
	for i, h := range reportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{r.Name, r.Date, r.CheckInTime, derefOr(r.CheckOutTime, ""), r.DayType, derefOr(r.LateComment, "")}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

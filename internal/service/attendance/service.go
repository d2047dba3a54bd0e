package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/penalty"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/shiftbonus"
)

var minutesPerHour = decimal.NewFromInt(60)

type attendanceService struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	bonusService   shiftbonus.ShiftBonusService
	penaltyService penalty.LatePenaltyService
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	bonusService shiftbonus.ShiftBonusService,
	penaltyService penalty.LatePenaltyService,
) attendance.AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		bonusService:   bonusService,
		penaltyService: penaltyService,
	}
}

// Adjust implements attendance.AttendanceService.
func (s *attendanceService) Adjust(ctx context.Context, companyID string, req attendance.AdjustRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to parse attendance date: %w", err)
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date, companyID)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to load attendance day: %w", err)
	}

	day := attendance.Day{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		Date:       date,
		ShiftStart: emp.ShiftStart,
		ShiftEnd:   emp.ShiftEnd,
	}
	if existing != nil {
		day = *existing
	}

	if req.SpansMidnight != nil {
		day.SpansMidnight = *req.SpansMidnight
	}

	// A nil punch field clears the punch: corrections must be able to
	// undo a bogus clock-in, not only replace it.
	day.PunchIn = clockOnDate(req.PunchIn, date)
	day.PunchOut = clockOnDate(req.PunchOut, date)
	if day.PunchOut != nil && day.SpansMidnight {
		next := day.PunchOut.AddDate(0, 0, 1)
		day.PunchOut = &next
	}

	if day.PunchIn != nil && day.PunchOut != nil && !day.PunchOut.After(*day.PunchIn) {
		return attendance.DayResponse{}, attendance.ErrInvalidPunchOrder
	}

	if req.BreakHours != nil {
		bh, err := decimal.NewFromString(*req.BreakHours)
		if err != nil {
			return attendance.DayResponse{}, fmt.Errorf("failed to parse break hours: %w", err)
		}
		day.BreakHours = bh
	}

	if req.OvertimeHours != nil {
		oh, err := decimal.NewFromString(*req.OvertimeHours)
		if err != nil {
			return attendance.DayResponse{}, fmt.Errorf("failed to parse overtime hours: %w", err)
		}
		day.OvertimeHours = oh
	}

	day.WorkedHours = workedHours(day.PunchIn, day.PunchOut, day.BreakHours)

	if req.Status != nil {
		day.Status = attendance.Status(*req.Status)
	} else {
		day.Status = attendance.DeriveStatus(day.PunchIn)
	}

	saved, err := s.attendanceRepo.Upsert(ctx, day)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to upsert attendance day: %w", err)
	}

	// The day's derived compensation must never lag the ledger.
	if err := s.bonusService.Recalculate(ctx, saved.EmployeeID, saved.Date, companyID); err != nil {
		return attendance.DayResponse{}, err
	}
	if err := s.penaltyService.Recalculate(ctx, saved.EmployeeID, saved.Date, companyID, &saved); err != nil {
		return attendance.DayResponse{}, err
	}

	return toDayResponse(saved), nil
}

// MarkAbsentees implements attendance.AttendanceService.
func (s *attendanceService) MarkAbsentees(ctx context.Context, companyID string, date time.Time) (int, error) {
	employees, err := s.employeeRepo.GetEmployedByCompanyID(ctx, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees for absence sweep: %w", err)
	}

	recorded, err := s.attendanceRepo.ListByCompanyAndRange(ctx, companyID, date, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance for absence sweep: %w", err)
	}
	hasRow := make(map[string]bool, len(recorded))
	for _, d := range recorded {
		hasRow[d.EmployeeID] = true
	}

	var absences []attendance.Day
	for _, emp := range employees {
		if hasRow[emp.ID] {
			continue
		}
		absences = append(absences, attendance.Day{
			EmployeeID: emp.ID,
			CompanyID:  companyID,
			Date:       date,
			Status:     attendance.StatusAbsent,
			ShiftStart: emp.ShiftStart,
			ShiftEnd:   emp.ShiftEnd,
		})
	}

	if len(absences) == 0 {
		return 0, nil
	}

	if err := s.attendanceRepo.BulkCreateAbsences(ctx, absences); err != nil {
		return 0, fmt.Errorf("failed to create absence rows: %w", err)
	}

	return len(absences), nil
}

// clockOnDate anchors an "HH:MM" clock string onto the given date.
func clockOnDate(clock *string, date time.Time) *time.Time {
	if clock == nil {
		return nil
	}
	t, err := time.Parse("15:04", *clock)
	if err != nil {
		return nil
	}
	anchored := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	return &anchored
}

// workedHours is the punch span minus breaks, floored at zero. Days
// without both punches work zero hours regardless of breaks.
func workedHours(punchIn, punchOut *time.Time, breakHours decimal.Decimal) decimal.Decimal {
	if punchIn == nil || punchOut == nil {
		return decimal.Zero
	}

	minutes := int64(punchOut.Sub(*punchIn) / time.Minute)
	worked := decimal.NewFromInt(minutes).Div(minutesPerHour).Sub(breakHours)
	if worked.IsNegative() {
		return decimal.Zero
	}
	return worked
}

func toDayResponse(day attendance.Day) attendance.DayResponse {
	resp := attendance.DayResponse{
		ID:            day.ID,
		EmployeeID:    day.EmployeeID,
		Date:          day.Date.Format("2006-01-02"),
		WorkedHours:   day.WorkedHours.String(),
		BreakHours:    day.BreakHours.String(),
		OvertimeHours: day.OvertimeHours.String(),
		Status:        string(day.Status),
		SpansMidnight: day.SpansMidnight,
	}
	if day.PunchIn != nil {
		v := day.PunchIn.Format("15:04")
		resp.PunchIn = &v
	}
	if day.PunchOut != nil {
		v := day.PunchOut.Format("15:04")
		resp.PunchOut = &v
	}
	return resp
}

var _ attendance.AttendanceService = (*attendanceService)(nil)

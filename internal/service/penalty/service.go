package penalty

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/penalty"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/settings"
)

// Defaults used when no setting override exists.
var (
	defaultRatePerMinute      = decimal.RequireFromString("2.5")
	defaultMonthlyThreshold   = decimal.NewFromInt(300)
	defaultRateAfterThreshold = decimal.NewFromInt(5)
)

// defaultShiftStart applies when neither the ledger row nor the
// employee record carries a shift start.
const defaultShiftStart = "09:00"

type latePenaltyService struct {
	entryRepo      penalty.EntryRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	settings       settings.Resolver
	now            func() time.Time
}

func NewLatePenaltyService(
	entryRepo penalty.EntryRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	settingsResolver settings.Resolver,
) penalty.LatePenaltyService {
	return &latePenaltyService{
		entryRepo:      entryRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		settings:       settingsResolver,
		now:            time.Now,
	}
}

// Recalculate implements penalty.LatePenaltyService.
func (s *latePenaltyService) Recalculate(ctx context.Context, employeeID string, date time.Time, companyID string, day *attendance.Day) error {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return nil
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load employee for penalty: %w", err)
	}

	// Fixed-salary employees are exempt from late deductions.
	if emp.SalaryType == employee.SalaryTypeFixed {
		return s.clear(ctx, employeeID, date, companyID)
	}

	if day == nil {
		day, err = s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
		if err != nil {
			return fmt.Errorf("failed to load attendance for penalty: %w", err)
		}
	}

	minutesLate := lateMinutes(day, emp)
	if minutesLate <= 0 {
		// Tardiness corrected away: the auto entry goes with it.
		return s.clear(ctx, employeeID, date, companyID)
	}

	month, year := int(date.Month()), date.Year()

	soFar, err := s.entryRepo.SumMonthExcludingAuto(ctx, employeeID, month, year, date, companyID)
	if err != nil {
		return fmt.Errorf("failed to sum month deductions: %w", err)
	}

	lowRate := s.settings.ResolveDecimal(ctx, settings.KeyLateRatePerMinute, companyID, defaultRatePerMinute)
	threshold := s.settings.ResolveDecimal(ctx, settings.KeyLateMonthlyThreshold, companyID, defaultMonthlyThreshold)
	highRate := s.settings.ResolveDecimal(ctx, settings.KeyLateRateAfterThreshold, companyID, defaultRateAfterThreshold)

	deduction, rateUsed := tieredDeduction(minutesLate, soFar, lowRate, threshold, highRate)

	_, err = s.entryRepo.UpsertAuto(ctx, penalty.Entry{
		EmployeeID:  employeeID,
		CompanyID:   companyID,
		Date:        date,
		Month:       month,
		Year:        year,
		MinutesLate: minutesLate,
		Deduction:   deduction,
		RateUsed:    rateUsed,
		Description: fmt.Sprintf("Late arrival: %d minute(s)", minutesLate),
	})
	if err != nil {
		return fmt.Errorf("failed to upsert late penalty: %w", err)
	}

	return nil
}

// RecordManual implements penalty.LatePenaltyService.
func (s *latePenaltyService) RecordManual(ctx context.Context, companyID string, req penalty.ManualEntryRequest) (penalty.Entry, error) {
	if err := req.Validate(); err != nil {
		return penalty.Entry{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return penalty.Entry{}, fmt.Errorf("failed to parse penalty date: %w", err)
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return penalty.Entry{}, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return penalty.Entry{}, fmt.Errorf("failed to parse penalty amount: %w", err)
	}

	entry, err := s.entryRepo.CreateManual(ctx, penalty.Entry{
		EmployeeID:  req.EmployeeID,
		CompanyID:   companyID,
		Date:        date,
		Month:       int(date.Month()),
		Year:        date.Year(),
		Deduction:   amount,
		IsManual:    true,
		Description: req.Description,
	})
	if err != nil {
		return penalty.Entry{}, fmt.Errorf("failed to create manual penalty: %w", err)
	}

	return entry, nil
}

func (s *latePenaltyService) clear(ctx context.Context, employeeID string, date time.Time, companyID string) error {
	if err := s.entryRepo.DeleteAutoByEmployeeAndDate(ctx, employeeID, date, companyID); err != nil {
		return fmt.Errorf("failed to delete late penalty: %w", err)
	}
	return nil
}

// lateMinutes is how many minutes after shift start the punch-in
// landed. Precedence for shift start: ledger row, then employee
// record, then the 09:00 default.
func lateMinutes(day *attendance.Day, emp employee.Employee) int {
	if day == nil || day.PunchIn == nil {
		return 0
	}

	shiftStart := day.ShiftStart
	if shiftStart == nil {
		shiftStart = emp.ShiftStart
	}

	startMin := 9 * 60
	if shiftStart != nil {
		startMin = shiftStart.Hour()*60 + shiftStart.Minute()
	}

	punchMin := day.PunchIn.Hour()*60 + day.PunchIn.Minute()
	if punchMin <= startMin {
		return 0
	}

	return punchMin - startMin
}

// tieredDeduction splits minutesLate across the low and high rates.
// soFar is the month's accumulated deductions; minutes are charged at
// the low rate only while the accumulated total stays under the
// threshold, and the returned rate is the high one as soon as any
// minute crossed over.
func tieredDeduction(minutesLate int, soFar, lowRate, threshold, highRate decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	minutes := decimal.NewFromInt(int64(minutesLate))

	remaining := threshold.Sub(soFar)
	minutesAtLow := minutes
	if !remaining.IsPositive() {
		minutesAtLow = decimal.Zero
	} else if lowRate.IsPositive() {
		capacity := remaining.Div(lowRate).Floor()
		if capacity.LessThan(minutes) {
			minutesAtLow = capacity
		}
	}

	minutesAtHigh := minutes.Sub(minutesAtLow)
	deduction := minutesAtLow.Mul(lowRate).Add(minutesAtHigh.Mul(highRate))

	rateUsed := lowRate
	if minutesAtHigh.IsPositive() {
		rateUsed = highRate
	}

	return deduction, rateUsed
}

var _ penalty.LatePenaltyService = (*latePenaltyService)(nil)

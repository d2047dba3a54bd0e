package performance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/holiday"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/performance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/settings"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/validator"
)

// Defaults used when no setting override exists.
var defaultWeeklyOvertimeHours = decimal.NewFromInt(6)

const (
	defaultStreakDays        = 4
	defaultAbsenceStreakDays = 3

	// Lookback slack beyond the window length, so windows that ended
	// a few days ago are still caught by later runs.
	streakLookbackSlack  = 5
	absenceLookbackSlack = 10

	overtimeWindowDays = 7
)

type rewardFlagService struct {
	eventRepo      performance.EventRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	holidayRepo    holiday.HolidayRepository
	settings       settings.Resolver
}

func NewRewardFlagService(
	eventRepo performance.EventRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	settingsResolver settings.Resolver,
) performance.RewardFlagService {
	return &rewardFlagService{
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		holidayRepo:    holidayRepo,
		settings:       settingsResolver,
	}
}

// Run implements performance.RewardFlagService.
func (s *rewardFlagService) Run(ctx context.Context, companyID string, target time.Time) (performance.RunResult, error) {
	var result performance.RunResult

	target = time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)

	streakDays := s.settings.ResolveInt(ctx, settings.KeyStreakDays, companyID, defaultStreakDays)
	overtimeThreshold := s.settings.ResolveDecimal(ctx, settings.KeyWeeklyOvertimeHours, companyID, defaultWeeklyOvertimeHours)
	absenceDays := s.settings.ResolveInt(ctx, settings.KeyAbsenceStreakDays, companyID, defaultAbsenceStreakDays)
	if streakDays < 1 || absenceDays < 1 {
		return result, fmt.Errorf("invalid scan window lengths: streak=%d absence=%d", streakDays, absenceDays)
	}

	// One ledger fetch per employee covers all three scans.
	lookback := streakDays + streakLookbackSlack
	if absenceDays+absenceLookbackSlack > lookback {
		lookback = absenceDays + absenceLookbackSlack
	}
	if overtimeWindowDays > lookback {
		lookback = overtimeWindowDays
	}
	from := target.AddDate(0, 0, -(lookback - 1))

	employees, err := s.employeeRepo.GetEmployedByCompanyID(ctx, companyID)
	if err != nil {
		return result, fmt.Errorf("failed to list employees for scan: %w", err)
	}

	holidays, err := s.holidayRepo.ListDatesInRange(ctx, companyID, from, target)
	if err != nil {
		return result, fmt.Errorf("failed to list holidays for scan: %w", err)
	}
	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[h.Format("2006-01-02")] = true
	}

	for _, emp := range employees {
		days, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, emp.ID, from, target, companyID)
		if err != nil {
			return result, fmt.Errorf("failed to list attendance for scan: %w", err)
		}

		byDate := make(map[string]attendance.Day, len(days))
		for _, d := range days {
			byDate[d.Date.Format("2006-01-02")] = d
		}

		// The fetch spans the widest lookback; each scan only sees the
		// tail it is allowed to reward, so a streak that ended before
		// its own lookback cannot resurface through a wider sibling.
		dates := dateSpan(from, target)

		n, err := s.scanStreaks(ctx, emp.ID, companyID, tail(dates, streakDays+streakLookbackSlack), byDate, streakDays, target)
		if err != nil {
			return result, err
		}
		result.Streak += n

		n, err = s.scanOvertime(ctx, emp.ID, companyID, dates, byDate, overtimeThreshold, target)
		if err != nil {
			return result, err
		}
		result.Overtime += n

		n, err = s.scanAbsences(ctx, emp.ID, companyID, tail(dates, absenceDays+absenceLookbackSlack), byDate, holidaySet, absenceDays, target)
		if err != nil {
			return result, err
		}
		result.Absentee += n
	}

	slog.Info("reward and red-flag scan finished",
		"company_id", companyID,
		"target", target.Format("2006-01-02"),
		"streak", result.Streak,
		"overtime", result.Overtime,
		"absentee", result.Absentee,
	)

	return result, nil
}

func (s *rewardFlagService) scanStreaks(ctx context.Context, employeeID, companyID string, dates []time.Time, byDate map[string]attendance.Day, streakDays int, target time.Time) (int, error) {
	present := make([]bool, len(dates))
	for i, d := range dates {
		if day, ok := byDate[d.Format("2006-01-02")]; ok {
			present[i] = day.Status == attendance.StatusPresent
		}
	}

	created := 0
	for _, start := range windowStarts(present, nil, streakDays) {
		windowFrom := dates[start].Format("2006-01-02")
		windowTo := dates[start+streakDays-1].Format("2006-01-02")
		reason := fmt.Sprintf("Attendance streak of %d days (%s to %s)", streakDays, windowFrom, windowTo)

		ok, err := s.createOnce(ctx, performance.Event{
			EmployeeID:    employeeID,
			CompanyID:     companyID,
			Kind:          performance.KindReward,
			TriggerReason: reason,
			MetricData: map[string]any{
				"streak_days": streakDays,
				"from":        windowFrom,
				"to":          windowTo,
			},
			OnLeaderboard: true,
		}, target)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	return created, nil
}

func (s *rewardFlagService) scanOvertime(ctx context.Context, employeeID, companyID string, dates []time.Time, byDate map[string]attendance.Day, threshold decimal.Decimal, target time.Time) (int, error) {
	if len(dates) < overtimeWindowDays {
		return 0, nil
	}

	windowFrom := dates[len(dates)-overtimeWindowDays]
	total := decimal.Zero
	for _, d := range dates[len(dates)-overtimeWindowDays:] {
		if day, ok := byDate[d.Format("2006-01-02")]; ok {
			total = total.Add(day.OvertimeHours)
		}
	}

	if total.LessThan(threshold) {
		return 0, nil
	}

	reason := fmt.Sprintf("Weekly overtime of %s hours (%s to %s)",
		total.String(), windowFrom.Format("2006-01-02"), target.Format("2006-01-02"))

	ok, err := s.createOnce(ctx, performance.Event{
		EmployeeID:    employeeID,
		CompanyID:     companyID,
		Kind:          performance.KindReward,
		TriggerReason: reason,
		MetricData: map[string]any{
			"overtime_hours": total.String(),
			"from":           windowFrom.Format("2006-01-02"),
			"to":             target.Format("2006-01-02"),
		},
		OnLeaderboard: true,
	}, target)
	if err != nil || !ok {
		return 0, err
	}

	return 1, nil
}

func (s *rewardFlagService) scanAbsences(ctx context.Context, employeeID, companyID string, dates []time.Time, byDate map[string]attendance.Day, holidaySet map[string]bool, absenceDays int, target time.Time) (int, error) {
	absent := make([]bool, len(dates))
	voided := make([]bool, len(dates))
	for i, d := range dates {
		key := d.Format("2006-01-02")
		if day, ok := byDate[key]; ok {
			absent[i] = day.Status == attendance.StatusAbsent
		}
		// Sundays and holidays are legitimate days off; a run that
		// touches one is not a risk pattern.
		voided[i] = d.Weekday() == time.Sunday || holidaySet[key]
	}

	pending := performance.AdminStatusPending
	created := 0
	for _, start := range windowStarts(absent, voided, absenceDays) {
		windowFrom := dates[start].Format("2006-01-02")
		windowTo := dates[start+absenceDays-1].Format("2006-01-02")
		reason := fmt.Sprintf("Absent %d consecutive days (%s to %s)", absenceDays, windowFrom, windowTo)

		ok, err := s.createOnce(ctx, performance.Event{
			EmployeeID:    employeeID,
			CompanyID:     companyID,
			Kind:          performance.KindAction,
			TriggerReason: reason,
			MetricData: map[string]any{
				"absence_days": absenceDays,
				"from":         windowFrom,
				"to":           windowTo,
			},
			AdminStatus: &pending,
		}, target)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	return created, nil
}

const defaultListLimit = 50

// ListRecent implements performance.RewardFlagService.
func (s *rewardFlagService) ListRecent(ctx context.Context, companyID string, limit int) ([]performance.Event, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	events, err := s.eventRepo.ListByCompany(ctx, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list performance events: %w", err)
	}

	return events, nil
}

// SetAdminStatus implements performance.RewardFlagService.
func (s *rewardFlagService) SetAdminStatus(ctx context.Context, id string, status performance.AdminStatus, companyID string) error {
	switch status {
	case performance.AdminStatusPending, performance.AdminStatusContacted, performance.AdminStatusResolved:
	default:
		return validator.ValidationErrors{{
			Field:   "admin_status",
			Message: "admin_status must be one of Pending, Contacted, Resolved",
		}}
	}

	return s.eventRepo.UpdateAdminStatus(ctx, id, status, companyID)
}

// createOnce appends the event unless one with the same trigger reason
// already exists for the target day. Returns whether it was created.
func (s *rewardFlagService) createOnce(ctx context.Context, event performance.Event, target time.Time) (bool, error) {
	exists, err := s.eventRepo.ExistsForDay(ctx, event.EmployeeID, event.TriggerReason, target, event.CompanyID)
	if err != nil {
		return false, fmt.Errorf("failed to check event existence: %w", err)
	}
	if exists {
		return false, nil
	}

	if _, err := s.eventRepo.Create(ctx, event); err != nil {
		return false, fmt.Errorf("failed to create performance event: %w", err)
	}

	return true, nil
}

// windowStarts finds non-overlapping runs of n consecutive true values
// in ok, oldest first. A completed run always advances the cursor by
// n, but runs containing a voided index are skipped from the result.
// Runs shorter than n advance by one so a later qualifying window is
// not missed.
func windowStarts(ok, voided []bool, n int) []int {
	var starts []int
	for i := 0; i+n <= len(ok); {
		matched := true
		for j := i; j < i+n; j++ {
			if !ok[j] {
				matched = false
				break
			}
		}
		if !matched {
			i++
			continue
		}

		void := false
		for j := i; voided != nil && j < i+n; j++ {
			if voided[j] {
				void = true
				break
			}
		}
		if !void {
			starts = append(starts, i)
		}

		i += n
	}
	return starts
}

func tail(dates []time.Time, n int) []time.Time {
	if len(dates) <= n {
		return dates
	}
	return dates[len(dates)-n:]
}

func dateSpan(from, to time.Time) []time.Time {
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

var _ performance.RewardFlagService = (*rewardFlagService)(nil)

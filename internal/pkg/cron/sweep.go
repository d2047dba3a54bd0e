package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/performance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/salary"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/sweep"
)

const dailySweepName = "daily_attendance_sweep"

// SweepJobs runs the once-a-day compensation housekeeping: mark
// yesterday's absentees, reconcile the month's salary snapshots, and
// scan for rewards and red flags. The job ticks far more often than
// once a day; the persisted sweep state is what enforces the daily
// cadence across restarts.
type SweepJobs struct {
	attendanceService attendance.AttendanceService
	salaryService     salary.SalarySnapshotService
	rewardFlagService performance.RewardFlagService
	employeeRepo      employee.EmployeeRepository
	stateRepo         sweep.StateRepository
	now               func() time.Time
}

func NewSweepJobs(
	attendanceService attendance.AttendanceService,
	salaryService salary.SalarySnapshotService,
	rewardFlagService performance.RewardFlagService,
	employeeRepo employee.EmployeeRepository,
	stateRepo sweep.StateRepository,
) *SweepJobs {
	return &SweepJobs{
		attendanceService: attendanceService,
		salaryService:     salaryService,
		rewardFlagService: rewardFlagService,
		employeeRepo:      employeeRepo,
		stateRepo:         stateRepo,
		now:               time.Now,
	}
}

func (j *SweepJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(dailySweepName, 15*time.Minute, j.RunDailySweep)
}

func (j *SweepJobs) RunDailySweep(ctx context.Context) error {
	now := j.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	last, err := j.stateRepo.GetLastProcessed(ctx, dailySweepName)
	if err != nil {
		return fmt.Errorf("failed to read sweep state: %w", err)
	}
	if last != nil && !last.Before(today) {
		return nil
	}

	slog.Info("Cron: Starting daily attendance sweep", "day", today.Format("2006-01-02"))

	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies for sweep: %w", err)
	}

	yesterday := today.AddDate(0, 0, -1)
	for _, companyID := range companyIDs {
		// One broken tenant must not block the rest.
		if err := j.sweepCompany(ctx, companyID, today, yesterday); err != nil {
			slog.Error("Cron: Daily sweep failed for company", "company_id", companyID, "error", err)
		}
	}

	if err := j.stateRepo.SetLastProcessed(ctx, dailySweepName, today); err != nil {
		return fmt.Errorf("failed to record sweep state: %w", err)
	}

	slog.Info("Cron: Daily attendance sweep finished", "companies", len(companyIDs))
	return nil
}

func (j *SweepJobs) sweepCompany(ctx context.Context, companyID string, today, yesterday time.Time) error {
	marked, err := j.attendanceService.MarkAbsentees(ctx, companyID, yesterday)
	if err != nil {
		return fmt.Errorf("failed to mark absentees: %w", err)
	}
	if marked > 0 {
		slog.Info("Cron: Marked absentees", "company_id", companyID, "count", marked)
	}

	if err := j.salaryService.EnsureMonthlySalary(ctx, companyID, today.Year(), today.Month()); err != nil {
		return fmt.Errorf("failed to reconcile salaries: %w", err)
	}

	if _, err := j.rewardFlagService.Run(ctx, companyID, today); err != nil {
		return fmt.Errorf("failed to run reward scan: %w", err)
	}

	return nil
}

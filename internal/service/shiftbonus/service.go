package shiftbonus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/salary"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/settings"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/shiftbonus"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/database"
)

// Defaults used when no setting override exists.
var (
	defaultMinHours      = decimal.NewFromInt(12)
	defaultHoursPerBonus = decimal.NewFromInt(2)
)

type shiftBonusService struct {
	entryRepo      shiftbonus.EntryRepository
	attendanceRepo attendance.AttendanceRepository
	salaryRepo     salary.PeriodSalaryRepository
	salaryService  salary.SalarySnapshotService
	settings       settings.Resolver
	tx             database.TxRunner
	now            func() time.Time
}

func NewShiftBonusService(
	entryRepo shiftbonus.EntryRepository,
	attendanceRepo attendance.AttendanceRepository,
	salaryRepo salary.PeriodSalaryRepository,
	salaryService salary.SalarySnapshotService,
	settingsResolver settings.Resolver,
	tx database.TxRunner,
) shiftbonus.ShiftBonusService {
	return &shiftBonusService{
		entryRepo:      entryRepo,
		attendanceRepo: attendanceRepo,
		salaryRepo:     salaryRepo,
		salaryService:  salaryService,
		settings:       settingsResolver,
		tx:             tx,
		now:            time.Now,
	}
}

// bonusHours converts worked hours into whole bonus hours: zero at or
// below the threshold, then one per extra block.
func bonusHours(worked, minHours, hoursPerBonus decimal.Decimal) decimal.Decimal {
	if !hoursPerBonus.IsPositive() {
		return decimal.Zero
	}
	extra := worked.Sub(minHours)
	if !extra.IsPositive() {
		return decimal.Zero
	}
	return extra.Div(hoursPerBonus).Floor()
}

func (s *shiftBonusService) thresholds(ctx context.Context, companyID string) (minHours, hoursPerBonus decimal.Decimal) {
	minHours = s.settings.ResolveDecimal(ctx, settings.KeyShiftBonusMinHours, companyID, defaultMinHours)
	hoursPerBonus = s.settings.ResolveDecimal(ctx, settings.KeyShiftBonusHoursPerBonus, companyID, defaultHoursPerBonus)
	return minHours, hoursPerBonus
}

func (s *shiftBonusService) inFuture(date time.Time) bool {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return date.After(today)
}

// Apply implements shiftbonus.ShiftBonusService.
func (s *shiftBonusService) Apply(ctx context.Context, employeeID string, date time.Time, companyID string) error {
	if s.inFuture(date) {
		return nil
	}

	day, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
	if err != nil {
		return fmt.Errorf("failed to load attendance for bonus: %w", err)
	}
	if day == nil {
		return nil
	}

	existing, err := s.entryRepo.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
	if err != nil {
		return fmt.Errorf("failed to load bonus entry: %w", err)
	}
	if existing != nil {
		// Apply is one-shot; edits go through Recalculate.
		return nil
	}

	minHours, hoursPerBonus := s.thresholds(ctx, companyID)
	bonus := bonusHours(day.WorkedHours, minHours, hoursPerBonus)
	if bonus.IsZero() {
		return nil
	}

	return s.grant(ctx, employeeID, date, companyID, bonus, day.WorkedHours)
}

// Recalculate implements shiftbonus.ShiftBonusService.
func (s *shiftBonusService) Recalculate(ctx context.Context, employeeID string, date time.Time, companyID string) error {
	if s.inFuture(date) {
		return nil
	}

	day, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
	if err != nil {
		return fmt.Errorf("failed to load attendance for bonus: %w", err)
	}

	desired := decimal.Zero
	worked := decimal.Zero
	if day != nil {
		worked = day.WorkedHours
		minHours, hoursPerBonus := s.thresholds(ctx, companyID)
		desired = bonusHours(worked, minHours, hoursPerBonus)
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		// The stored entry must be read inside the transaction: the
		// delta diffs against it, and a stale read would let two
		// concurrent recomputations apply the same delta twice.
		existing, err := s.entryRepo.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
		if err != nil {
			return err
		}

		previous := decimal.Zero
		if existing != nil {
			previous = existing.BonusHours
		}
		if desired.Equal(previous) {
			return nil
		}

		// Apply only the difference so contributions from other days
		// of the month survive the correction.
		delta := desired.Sub(previous)

		if _, err := s.salaryService.EnsureForEmployee(ctx, employeeID, int(date.Month()), date.Year(), companyID); err != nil {
			return err
		}
		if err := s.salaryRepo.AddBonusHours(ctx, employeeID, int(date.Month()), date.Year(), companyID, delta); err != nil {
			return err
		}

		switch {
		case desired.IsZero():
			return s.entryRepo.DeleteByEmployeeAndDate(ctx, employeeID, date, companyID)
		case existing == nil:
			_, err := s.entryRepo.Create(ctx, shiftbonus.Entry{
				EmployeeID:  employeeID,
				CompanyID:   companyID,
				Date:        date,
				BonusHours:  desired,
				Description: bonusDescription(worked, desired),
			})
			return err
		default:
			existing.BonusHours = desired
			existing.Description = bonusDescription(worked, desired)
			return s.entryRepo.Update(ctx, *existing)
		}
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil
		}
		return fmt.Errorf("failed to recalculate shift bonus: %w", err)
	}

	return nil
}

// BackfillMonth implements shiftbonus.ShiftBonusService.
func (s *shiftBonusService) BackfillMonth(ctx context.Context, companyID string, year int, month time.Month) (int, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if to.After(today) {
		to = today
	}
	if from.After(to) {
		return 0, nil
	}

	refs, err := s.entryRepo.ListLedgerDaysWithoutEntry(ctx, companyID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to list days for bonus backfill: %w", err)
	}

	processed := 0
	for _, ref := range refs {
		if err := s.Apply(ctx, ref.EmployeeID, ref.Date, companyID); err != nil {
			return processed, err
		}
		processed++
	}

	return processed, nil
}

func (s *shiftBonusService) grant(ctx context.Context, employeeID string, date time.Time, companyID string, bonus, worked decimal.Decimal) error {
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.salaryService.EnsureForEmployee(ctx, employeeID, int(date.Month()), date.Year(), companyID); err != nil {
			return err
		}
		if err := s.salaryRepo.AddBonusHours(ctx, employeeID, int(date.Month()), date.Year(), companyID, bonus); err != nil {
			return err
		}
		_, err := s.entryRepo.Create(ctx, shiftbonus.Entry{
			EmployeeID:  employeeID,
			CompanyID:   companyID,
			Date:        date,
			BonusHours:  bonus,
			Description: bonusDescription(worked, bonus),
		})
		return err
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil
		}
		return fmt.Errorf("failed to apply shift bonus: %w", err)
	}

	return nil
}

func bonusDescription(worked, bonus decimal.Decimal) string {
	return fmt.Sprintf("Shift overtime bonus: %s bonus hour(s) for %s worked hours", bonus.String(), worked.String())
}

var _ shiftbonus.ShiftBonusService = (*shiftBonusService)(nil)

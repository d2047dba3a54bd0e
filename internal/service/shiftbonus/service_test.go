package shiftbonus

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/salary"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/settings"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/shiftbonus"
)

// stubResolver always answers with the caller's default.
type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, _, _, def string) string { return def }
func (stubResolver) ResolveDecimal(_ context.Context, _, _ string, def decimal.Decimal) decimal.Decimal {
	return def
}
func (stubResolver) ResolveInt(_ context.Context, _, _ string, def int) int { return def }

var _ settings.Resolver = stubResolver{}

// passTx runs the function without a transaction.
type passTx struct{}

func (passTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

// contendedTx runs before ahead of the transaction body, standing in
// for a competing recomputation that commits first.
type contendedTx struct {
	before func()
}

func (c contendedTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if c.before != nil {
		c.before()
	}
	return fn(ctx)
}

// fakeSalaryLedger doubles as the snapshot service and the period
// salary repository, tracking only BonusHours.
type fakeSalaryLedger struct {
	bonus   map[string]decimal.Decimal
	ensured map[string]bool
}

func newFakeSalaryLedger() *fakeSalaryLedger {
	return &fakeSalaryLedger{
		bonus:   make(map[string]decimal.Decimal),
		ensured: make(map[string]bool),
	}
}

func periodKey(employeeID string, month, year int) string {
	return fmt.Sprintf("%s/%d-%d", employeeID, year, month)
}

func (f *fakeSalaryLedger) EnsureMonthlySalary(context.Context, string, int, time.Month) error {
	return nil
}

func (f *fakeSalaryLedger) EnsureForEmployee(_ context.Context, employeeID string, month, year int, _ string) (salary.PeriodSalary, error) {
	f.ensured[periodKey(employeeID, month, year)] = true
	return salary.PeriodSalary{EmployeeID: employeeID, Month: month, Year: year}, nil
}

func (f *fakeSalaryLedger) GetByEmployeePeriod(_ context.Context, employeeID string, month, year int, _ string) (salary.PeriodSalary, error) {
	return salary.PeriodSalary{
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
		BonusHours: f.bonus[periodKey(employeeID, month, year)],
	}, nil
}

func (f *fakeSalaryLedger) Create(_ context.Context, ps salary.PeriodSalary) (salary.PeriodSalary, error) {
	return ps, nil
}

func (f *fakeSalaryLedger) UpdateSnapshot(context.Context, salary.PeriodSalary) error { return nil }

func (f *fakeSalaryLedger) AddBonusHours(_ context.Context, employeeID string, month, year int, _ string, delta decimal.Decimal) error {
	key := periodKey(employeeID, month, year)
	f.bonus[key] = f.bonus[key].Add(delta)
	return nil
}

type fakeEntryRepo struct {
	entries []shiftbonus.Entry
	ledger  []shiftbonus.DayRef
}

func (f *fakeEntryRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time, _ string) (*shiftbonus.Entry, error) {
	for i := range f.entries {
		if f.entries[i].EmployeeID == employeeID && f.entries[i].Date.Equal(date) {
			e := f.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryRepo) Create(_ context.Context, entry shiftbonus.Entry) (shiftbonus.Entry, error) {
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeEntryRepo) Update(_ context.Context, entry shiftbonus.Entry) error {
	for i := range f.entries {
		if f.entries[i].EmployeeID == entry.EmployeeID && f.entries[i].Date.Equal(entry.Date) {
			f.entries[i] = entry
			return nil
		}
	}
	return shiftbonus.ErrEntryNotFound
}

func (f *fakeEntryRepo) DeleteByEmployeeAndDate(_ context.Context, employeeID string, date time.Time, _ string) error {
	for i := range f.entries {
		if f.entries[i].EmployeeID == employeeID && f.entries[i].Date.Equal(date) {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeEntryRepo) ListLedgerDaysWithoutEntry(_ context.Context, _ string, from, to time.Time) ([]shiftbonus.DayRef, error) {
	var out []shiftbonus.DayRef
	for _, ref := range f.ledger {
		if ref.Date.Before(from) || ref.Date.After(to) {
			continue
		}
		has := false
		for _, e := range f.entries {
			if e.EmployeeID == ref.EmployeeID && e.Date.Equal(ref.Date) {
				has = true
				break
			}
		}
		if !has {
			out = append(out, ref)
		}
	}
	return out, nil
}

type stubAttendanceRepo struct {
	days map[string]attendance.Day // "empID/2006-01-02"
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format("2006-01-02")
}

func (s *stubAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time, _ string) (*attendance.Day, error) {
	if d, ok := s.days[dayKey(employeeID, date)]; ok {
		return &d, nil
	}
	return nil, nil
}

func (s *stubAttendanceRepo) Upsert(_ context.Context, day attendance.Day) (attendance.Day, error) {
	s.days[dayKey(day.EmployeeID, day.Date)] = day
	return day, nil
}

func (s *stubAttendanceRepo) ListByEmployeeAndRange(context.Context, string, time.Time, time.Time, string) ([]attendance.Day, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) ListByCompanyAndRange(context.Context, string, time.Time, time.Time) ([]attendance.Day, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) MonthlyTotals(context.Context, string, int, time.Month) ([]attendance.MonthlyTotals, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) BulkCreateAbsences(context.Context, []attendance.Day) error { return nil }

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func workedDay(employeeID, dateStr string, worked float64) attendance.Day {
	return attendance.Day{
		EmployeeID:  employeeID,
		CompanyID:   "acme",
		Date:        date(dateStr),
		WorkedHours: decimal.NewFromFloat(worked),
		Status:      attendance.StatusPresent,
	}
}

func newTestService(entryRepo *fakeEntryRepo, attendanceRepo *stubAttendanceRepo, ledger *fakeSalaryLedger) *shiftBonusService {
	return &shiftBonusService{
		entryRepo:      entryRepo,
		attendanceRepo: attendanceRepo,
		salaryRepo:     ledger,
		salaryService:  ledger,
		settings:       stubResolver{},
		tx:             passTx{},
		now:            func() time.Time { return date("2025-03-20") },
	}
}

func TestBonusHours_ThresholdBoundaries(t *testing.T) {
	minHours := decimal.NewFromInt(12)
	perBonus := decimal.NewFromInt(2)

	cases := []struct {
		worked float64
		want   int64
	}{
		{8, 0},
		{12, 0},
		{13, 0},
		{14, 1},
		{15.5, 1},
		{16, 2},
		{20, 4},
	}
	for _, c := range cases {
		got := bonusHours(decimal.NewFromFloat(c.worked), minHours, perBonus)
		assert.True(t, decimal.NewFromInt(c.want).Equal(got), "worked=%v got=%s", c.worked, got)
	}

	// A non-positive block size disables the rule instead of dividing
	// by zero.
	assert.True(t, decimal.Zero.Equal(bonusHours(decimal.NewFromInt(20), minHours, decimal.Zero)))
}

func TestApply_GrantsBonusOnce(t *testing.T) {
	ctx := context.Background()
	entryRepo := &fakeEntryRepo{}
	attendanceRepo := &stubAttendanceRepo{days: map[string]attendance.Day{}}
	ledger := newFakeSalaryLedger()
	svc := newTestService(entryRepo, attendanceRepo, ledger)

	d := workedDay("e1", "2025-03-10", 16)
	attendanceRepo.days[dayKey("e1", d.Date)] = d

	require.NoError(t, svc.Apply(ctx, "e1", d.Date, "acme"))

	require.Len(t, entryRepo.entries, 1)
	assert.True(t, decimal.NewFromInt(2).Equal(entryRepo.entries[0].BonusHours))
	assert.True(t, decimal.NewFromInt(2).Equal(ledger.bonus[periodKey("e1", 3, 2025)]))
	assert.True(t, ledger.ensured[periodKey("e1", 3, 2025)])

	// A second Apply is a no-op, not a double grant.
	require.NoError(t, svc.Apply(ctx, "e1", d.Date, "acme"))
	assert.Len(t, entryRepo.entries, 1)
	assert.True(t, decimal.NewFromInt(2).Equal(ledger.bonus[periodKey("e1", 3, 2025)]))
}

func TestApply_BelowThresholdAndMissingDay(t *testing.T) {
	ctx := context.Background()
	entryRepo := &fakeEntryRepo{}
	attendanceRepo := &stubAttendanceRepo{days: map[string]attendance.Day{}}
	svc := newTestService(entryRepo, attendanceRepo, newFakeSalaryLedger())

	d := workedDay("e1", "2025-03-10", 11)
	attendanceRepo.days[dayKey("e1", d.Date)] = d

	require.NoError(t, svc.Apply(ctx, "e1", d.Date, "acme"))
	require.NoError(t, svc.Apply(ctx, "e1", date("2025-03-11"), "acme"))
	assert.Empty(t, entryRepo.entries)
}

func TestApply_FutureDateIsIgnored(t *testing.T) {
	ctx := context.Background()
	entryRepo := &fakeEntryRepo{}
	attendanceRepo := &stubAttendanceRepo{days: map[string]attendance.Day{}}
	svc := newTestService(entryRepo, attendanceRepo, newFakeSalaryLedger())

	d := workedDay("e1", "2025-03-25", 16)
	attendanceRepo.days[dayKey("e1", d.Date)] = d

	require.NoError(t, svc.Apply(ctx, "e1", d.Date, "acme"))
	assert.Empty(t, entryRepo.entries)
}

func TestRecalculate_AppliesOnlyTheDelta(t *testing.T) {
	ctx := context.Background()
	entryRepo := &fakeEntryRepo{}
	attendanceRepo := &stubAttendanceRepo{days: map[string]attendance.Day{}}
	ledger := newFakeSalaryLedger()
	svc := newTestService(entryRepo, attendanceRepo, ledger)

	// Another day already contributed 5 bonus hours this month.
	ledger.bonus[periodKey("e1", 3, 2025)] = decimal.NewFromInt(5)

	// This day previously earned 3, the corrected punches now earn 1.
	entryRepo.entries = append(entryRepo.entries, shiftbonus.Entry{
		EmployeeID: "e1",
		CompanyID:  "acme",
		Date:       date("2025-03-10"),
		BonusHours: decimal.NewFromInt(3),
	})
	attendanceRepo.days[dayKey("e1", date("2025-03-10"))] = workedDay("e1", "2025-03-10", 14)

	require.NoError(t, svc.Recalculate(ctx, "e1", date("2025-03-10"), "acme"))

	require.Len(t, entryRepo.entries, 1)
	assert.True(t, decimal.NewFromInt(1).Equal(entryRepo.entries[0].BonusHours))
	// 5 + (1 - 3) = 3: the other day's contribution survives.
	assert.True(t, decimal.NewFromInt(3).Equal(ledger.bonus[periodKey("e1", 3, 2025)]))
}

func TestRecalculate_DiffsAgainstEntryReadInTransaction(t *testing.T) {
	ctx := context.Background()
	entryRepo := &fakeEntryRepo{}
	attendanceRepo := &stubAttendanceRepo{days: map[string]attendance.Day{}}
	ledger := newFakeSalaryLedger()
	svc := newTestService(entryRepo, attendanceRepo, ledger)

	ledger.bonus[periodKey("e1", 3, 2025)] = decimal.NewFromInt(5)
	entryRepo.entries = append(entryRepo.entries, shiftbonus.Entry{
		EmployeeID: "e1",
		CompanyID:  "acme",
		Date:       date("2025-03-10"),
		BonusHours: decimal.NewFromInt(3),
	})
	// Corrected punches now earn 1 bonus hour.
	attendanceRepo.days[dayKey("e1", date("2025-03-10"))] = workedDay("e1", "2025-03-10", 14)

	// A concurrent recomputation of the same day commits first: the
	// entry is already at 1 and the ledger already absorbed its -2.
	svc.tx = contendedTx{before: func() {
		entryRepo.entries[0].BonusHours = decimal.NewFromInt(1)
		ledger.bonus[periodKey("e1", 3, 2025)] = decimal.NewFromInt(3)
	}}

	require.NoError(t, svc.Recalculate(ctx, "e1", date("2025-03-10"), "acme"))

	// The delta diffs against the entry as read inside the
	// transaction, so the -2 is not applied a second time.
	require.Len(t, entryRepo.entries, 1)
	assert.True(t, decimal.NewFromInt(1).Equal(entryRepo.entries[0].BonusHours))
	assert.True(t, decimal.NewFromInt(3).Equal(ledger.bonus[periodKey("e1", 3, 2025)]), "bonus=%s", ledger.bonus[periodKey("e1", 3, 2025)])
}

func TestRecalculate_DropToZeroDeletesEntry(t *testing.T) {
	ctx := context.Background()
	entryRepo := &fakeEntryRepo{}
	attendanceRepo := &stubAttendanceRepo{days: map[string]attendance.Day{}}
	ledger := newFakeSalaryLedger()
	svc := newTestService(entryRepo, attendanceRepo, ledger)

	ledger.bonus[periodKey("e1", 3, 2025)] = decimal.NewFromInt(2)
	entryRepo.entries = append(entryRepo.entries, shiftbonus.Entry{
		EmployeeID: "e1",
		CompanyID:  "acme",
		Date:       date("2025-03-10"),
		BonusHours: decimal.NewFromInt(2),
	})
	attendanceRepo.days[dayKey("e1", date("2025-03-10"))] = workedDay("e1", "2025-03-10", 9)

	require.NoError(t, svc.Recalculate(ctx, "e1", date("2025-03-10"), "acme"))

	assert.Empty(t, entryRepo.entries)
	assert.True(t, decimal.Zero.Equal(ledger.bonus[periodKey("e1", 3, 2025)]))
}

func TestRecalculate_NoChangeIsNoOp(t *testing.T) {
	ctx := context.Background()
	entryRepo := &fakeEntryRepo{}
	attendanceRepo := &stubAttendanceRepo{days: map[string]attendance.Day{}}
	ledger := newFakeSalaryLedger()
	svc := newTestService(entryRepo, attendanceRepo, ledger)

	attendanceRepo.days[dayKey("e1", date("2025-03-10"))] = workedDay("e1", "2025-03-10", 10)

	require.NoError(t, svc.Recalculate(ctx, "e1", date("2025-03-10"), "acme"))
	assert.Empty(t, entryRepo.entries)
	assert.False(t, ledger.ensured[periodKey("e1", 3, 2025)])
}

func TestBackfillMonth_ProcessesOnlyDaysWithoutEntries(t *testing.T) {
	ctx := context.Background()
	entryRepo := &fakeEntryRepo{}
	attendanceRepo := &stubAttendanceRepo{days: map[string]attendance.Day{}}
	ledger := newFakeSalaryLedger()
	svc := newTestService(entryRepo, attendanceRepo, ledger)

	for _, d := range []struct {
		dateStr string
		worked  float64
	}{
		{"2025-03-03", 16}, // qualifies
		{"2025-03-04", 10}, // below threshold
		{"2025-03-05", 14}, // qualifies
	} {
		day := workedDay("e1", d.dateStr, d.worked)
		attendanceRepo.days[dayKey("e1", day.Date)] = day
		entryRepo.ledger = append(entryRepo.ledger, shiftbonus.DayRef{EmployeeID: "e1", Date: day.Date})
	}

	processed, err := svc.BackfillMonth(ctx, "acme", 2025, time.March)
	require.NoError(t, err)

	assert.Equal(t, 3, processed)
	assert.Len(t, entryRepo.entries, 2)
	// 2 (from 16h) + 1 (from 14h)
	assert.True(t, decimal.NewFromInt(3).Equal(ledger.bonus[periodKey("e1", 3, 2025)]))
}

package performance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/performance"
)

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, _, _, def string) string { return def }
func (stubResolver) ResolveDecimal(_ context.Context, _, _ string, def decimal.Decimal) decimal.Decimal {
	return def
}
func (stubResolver) ResolveInt(_ context.Context, _, _ string, def int) int { return def }

type fakeEventRepo struct {
	events []performance.Event
	days   map[string]bool // employeeID|reason|day
	today  string
}

func newFakeEventRepo(today string) *fakeEventRepo {
	return &fakeEventRepo{days: make(map[string]bool), today: today}
}

func (f *fakeEventRepo) ExistsForDay(_ context.Context, employeeID, triggerReason string, day time.Time, _ string) (bool, error) {
	return f.days[employeeID+"|"+triggerReason+"|"+day.Format("2006-01-02")], nil
}

func (f *fakeEventRepo) Create(_ context.Context, event performance.Event) (performance.Event, error) {
	f.events = append(f.events, event)
	f.days[event.EmployeeID+"|"+event.TriggerReason+"|"+f.today] = true
	return event, nil
}

func (f *fakeEventRepo) UpdateAdminStatus(_ context.Context, id string, status performance.AdminStatus, _ string) error {
	for i := range f.events {
		if f.events[i].ID == id {
			f.events[i].AdminStatus = &status
			return nil
		}
	}
	return performance.ErrEventNotFound
}

func (f *fakeEventRepo) ListByCompany(_ context.Context, _ string, limit int) ([]performance.Event, error) {
	if limit > len(f.events) {
		limit = len(f.events)
	}
	return f.events[:limit], nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id && emp.CompanyID == companyID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetEmployedByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.CompanyID == companyID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListCompanyIDs(context.Context) ([]string, error) { return nil, nil }

type fakeAttendanceRepo struct {
	days []attendance.Day
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(context.Context, string, time.Time, string) (*attendance.Day, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, day attendance.Day) (attendance.Day, error) {
	return day, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time, _ string) ([]attendance.Day, error) {
	var out []attendance.Day
	for _, d := range f.days {
		if d.EmployeeID == employeeID && !d.Date.Before(from) && !d.Date.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByCompanyAndRange(context.Context, string, time.Time, time.Time) ([]attendance.Day, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) MonthlyTotals(context.Context, string, int, time.Month) ([]attendance.MonthlyTotals, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) BulkCreateAbsences(context.Context, []attendance.Day) error { return nil }

type fakeHolidayRepo struct {
	dates []time.Time
}

func (f *fakeHolidayRepo) ListDatesInRange(_ context.Context, _ string, from, to time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, d := range f.dates {
		if !d.Before(from) && !d.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func newTestService(events *fakeEventRepo, att *fakeAttendanceRepo, emps *fakeEmployeeRepo, holidays *fakeHolidayRepo) performance.RewardFlagService {
	return NewRewardFlagService(events, att, emps, holidays, stubResolver{})
}

func addDays(att *fakeAttendanceRepo, employeeID string, status attendance.Status, overtime float64, dates ...string) {
	for _, ds := range dates {
		att.days = append(att.days, attendance.Day{
			EmployeeID:    employeeID,
			CompanyID:     "acme",
			Date:          date(ds),
			Status:        status,
			OvertimeHours: decimal.NewFromFloat(overtime),
		})
	}
}

func TestWindowStarts(t *testing.T) {
	tr, fa := true, false

	// Eight consecutive matches with n=4 yield exactly two
	// non-overlapping windows.
	starts := windowStarts([]bool{fa, tr, tr, tr, tr, tr, tr, tr, tr}, nil, 4)
	assert.Equal(t, []int{1, 5}, starts)

	// A broken run yields nothing.
	starts = windowStarts([]bool{tr, tr, fa, tr, tr}, nil, 3)
	assert.Empty(t, starts)

	// A voided index suppresses the window but still advances past it.
	ok := []bool{tr, tr, tr, tr, tr, tr}
	voided := []bool{fa, tr, fa, fa, fa, fa}
	starts = windowStarts(ok, voided, 3)
	assert.Equal(t, []int{3}, starts)
}

func TestRun_StreakRewardsPerWindow(t *testing.T) {
	ctx := context.Background()
	target := date("2025-03-20")
	events := newFakeEventRepo("2025-03-20")
	att := &fakeAttendanceRepo{}
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "acme", EmploymentStatus: "employed"},
	}}
	svc := newTestService(events, att, emps, &fakeHolidayRepo{})

	// Eight consecutive present days ending at the target: two
	// four-day windows, each its own reward.
	addDays(att, "e1", attendance.StatusPresent, 0,
		"2025-03-13", "2025-03-14", "2025-03-15", "2025-03-16",
		"2025-03-17", "2025-03-18", "2025-03-19", "2025-03-20")

	result, err := svc.Run(ctx, "acme", target)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak)
	assert.Len(t, events.events, 2)
	for _, e := range events.events {
		assert.Equal(t, performance.KindReward, e.Kind)
		assert.True(t, e.OnLeaderboard)
	}

	// Re-running the same day creates nothing new.
	result, err = svc.Run(ctx, "acme", target)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Streak)
	assert.Len(t, events.events, 2)
}

func TestRun_StreakOutsideOwnLookbackIgnored(t *testing.T) {
	ctx := context.Background()
	target := date("2025-03-20")
	events := newFakeEventRepo("2025-03-20")
	att := &fakeAttendanceRepo{}
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "acme", EmploymentStatus: "employed"},
	}}
	svc := newTestService(events, att, emps, &fakeHolidayRepo{})

	// A four-day streak that ended on the 11th sits beyond the
	// nine-day streak lookback (12th through 20th), even though the
	// wider absence fetch still covers it.
	addDays(att, "e1", attendance.StatusPresent, 0,
		"2025-03-08", "2025-03-09", "2025-03-10", "2025-03-11")

	result, err := svc.Run(ctx, "acme", target)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Streak)
	assert.Empty(t, events.events)
}

func TestRun_StreakCountsOnlyPresentDays(t *testing.T) {
	ctx := context.Background()
	target := date("2025-03-20")
	events := newFakeEventRepo("2025-03-20")
	att := &fakeAttendanceRepo{}
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "acme", EmploymentStatus: "employed"},
	}}
	svc := newTestService(events, att, emps, &fakeHolidayRepo{})

	// A FullDay in the middle breaks the run the same way an absence
	// would: streaks are built over Present statuses only.
	addDays(att, "e1", attendance.StatusPresent, 0,
		"2025-03-17", "2025-03-18")
	addDays(att, "e1", attendance.StatusFullDay, 0, "2025-03-19")
	addDays(att, "e1", attendance.StatusPresent, 0, "2025-03-20")

	result, err := svc.Run(ctx, "acme", target)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Streak)
}

func TestRun_OvertimeReward(t *testing.T) {
	ctx := context.Background()
	target := date("2025-03-20")
	events := newFakeEventRepo("2025-03-20")
	att := &fakeAttendanceRepo{}
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "acme", EmploymentStatus: "employed"},
	}}
	svc := newTestService(events, att, emps, &fakeHolidayRepo{})

	// 3 days x 2.5h in the trailing week crosses the 6h default.
	addDays(att, "e1", attendance.StatusPresent, 2.5,
		"2025-03-17", "2025-03-18", "2025-03-19")

	result, err := svc.Run(ctx, "acme", target)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Overtime)
}

func TestRun_AbsenceFlagAndHolidayVoiding(t *testing.T) {
	ctx := context.Background()
	target := date("2025-03-20") // Thursday
	events := newFakeEventRepo("2025-03-20")
	att := &fakeAttendanceRepo{}
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "acme", EmploymentStatus: "employed"},
		{ID: "e2", CompanyID: "acme", EmploymentStatus: "employed"},
	}}
	svc := newTestService(events, att, emps, &fakeHolidayRepo{})

	// e1: Tue-Thu absences, no Sunday involved: flagged.
	addDays(att, "e1", attendance.StatusAbsent, 0,
		"2025-03-18", "2025-03-19", "2025-03-20")

	// e2: Sat-Mon absences include Sunday the 16th: voided.
	addDays(att, "e2", attendance.StatusAbsent, 0,
		"2025-03-15", "2025-03-16", "2025-03-17")

	result, err := svc.Run(ctx, "acme", target)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Absentee)

	require.Len(t, events.events, 1)
	event := events.events[0]
	assert.Equal(t, "e1", event.EmployeeID)
	assert.Equal(t, performance.KindAction, event.Kind)
	require.NotNil(t, event.AdminStatus)
	assert.Equal(t, performance.AdminStatusPending, *event.AdminStatus)
}

func TestRun_CompanyHolidayVoidsAbsenceWindow(t *testing.T) {
	ctx := context.Background()
	target := date("2025-03-20")
	events := newFakeEventRepo("2025-03-20")
	att := &fakeAttendanceRepo{}
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", CompanyID: "acme", EmploymentStatus: "employed"},
	}}
	holidays := &fakeHolidayRepo{dates: []time.Time{date("2025-03-19")}}
	svc := newTestService(events, att, emps, holidays)

	addDays(att, "e1", attendance.StatusAbsent, 0,
		"2025-03-18", "2025-03-19", "2025-03-20")

	result, err := svc.Run(ctx, "acme", target)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Absentee)
	assert.Empty(t, events.events)
}

func TestSetAdminStatus_RejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	events := newFakeEventRepo("2025-03-20")
	svc := newTestService(events, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeHolidayRepo{})

	err := svc.SetAdminStatus(ctx, "evt-1", performance.AdminStatus("Closed"), "acme")
	assert.Error(t, err)
}

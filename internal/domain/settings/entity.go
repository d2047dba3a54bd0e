package settings

import "time"

// Setting is one tunable (key, value) pair. CompanyID nil means a
// global override applying to every tenant without its own row.
type Setting struct {
	ID        string
	CompanyID *string
	Key       string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Keys for every tunable the engines resolve.
const (
	KeyShiftBonusMinHours      = "shift_bonus_min_hours"
	KeyShiftBonusHoursPerBonus = "shift_bonus_extra_hours_per_bonus"
	KeyLateRatePerMinute       = "late_penalty_rate_per_minute"
	KeyLateMonthlyThreshold    = "late_penalty_monthly_threshold"
	KeyLateRateAfterThreshold  = "late_penalty_rate_after_threshold"
	KeyStreakDays              = "reward_streak_days"
	KeyWeeklyOvertimeHours     = "reward_weekly_overtime_hours"
	KeyAbsenceStreakDays       = "flag_absence_streak_days"
)

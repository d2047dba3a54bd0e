package performance

import (
	"time"
)

// Kind of performance event.
type Kind string

const (
	// KindReward celebrates a positive pattern (streaks, overtime).
	KindReward Kind = "Reward"
	// KindAction flags a risk pattern requiring admin follow-up.
	KindAction Kind = "Action"
)

// AdminStatus tracks follow-up on Action events.
type AdminStatus string

const (
	AdminStatusPending   AdminStatus = "Pending"
	AdminStatusContacted AdminStatus = "Contacted"
	AdminStatusResolved  AdminStatus = "Resolved"
)

// Event is append-only. TriggerReason doubles as the daily
// deduplication key: the engine never inserts a second event with the
// same reason for the same employee on the same calendar day.
type Event struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	Kind          Kind
	TriggerReason string
	MetricData    map[string]any
	OnLeaderboard bool
	AdminStatus   *AdminStatus
	CreatedAt     time.Time
}

// RunResult counts the events created by one engine run.
type RunResult struct {
	Streak   int `json:"streak"`
	Overtime int `json:"overtime"`
	Absentee int `json:"absentee"`
}

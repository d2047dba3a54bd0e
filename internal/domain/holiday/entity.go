package holiday

import "time"

// Holiday is a date exempted from absence-streak flagging. Sundays are
// implicit holidays and are not stored.
type Holiday struct {
	ID        string
	CompanyID string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}

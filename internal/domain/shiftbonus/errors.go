package shiftbonus

import "errors"

var (
	ErrEntryNotFound = errors.New("shift bonus entry not found")
)

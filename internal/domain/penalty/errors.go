package penalty

import "errors"

var (
	ErrPenaltyNotFound = errors.New("penalty entry not found")
)

package performance

import "errors"

var (
	ErrEventNotFound = errors.New("performance event not found")
)

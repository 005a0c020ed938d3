package auditlog

import "errors"

var (
	ErrLogNotFound = errors.New("log not found")
	ErrInvalidID   = errors.New("invalid log id")
)

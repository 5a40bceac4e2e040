package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors.
var (
	ErrInvalidWindow   = errors.New("invalid time window: end before start")
	ErrParentCycle     = errors.New("parent reference cycle")
	ErrUnknownSource   = errors.New("unknown trace source")
	ErrTraceNotFound   = errors.New("trace file not found")
	ErrEmptyTracePath  = errors.New("trace path is empty")
	ErrEmptyTraceURL   = errors.New("trace url is empty")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrConfigExists    = errors.New("config file already exists")
	ErrInvalidViewSize = errors.New("view size must be positive")
)

// CycleError reports tasks that could not be attached to the forest
// because their parent chain loops back onto itself.
type CycleError struct {
	IDs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrParentCycle, strings.Join(e.IDs, ", "))
}

// Unwrap allows errors.Is(err, ErrParentCycle).
func (e *CycleError) Unwrap() error {
	return ErrParentCycle
}

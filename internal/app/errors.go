package app

import "errors"

type ScheduleErrorCode string

const (
	ErrCodeInvalidInput      ScheduleErrorCode = "INVALID_INPUT"
	ErrCodeUnknownStep       ScheduleErrorCode = "UNKNOWN_STEP"
	ErrCodeNotFound          ScheduleErrorCode = "NOT_FOUND"
	ErrCodeInvalidTransition ScheduleErrorCode = "INVALID_TRANSITION"
	ErrCodePersistence       ScheduleErrorCode = "PERSISTENCE"
	ErrCodeStaleWrite        ScheduleErrorCode = "STALE_WRITE"
)

// ScheduleError is the error every use case returns at its boundary.
type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
	Err     error
}

func (e *ScheduleError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}

// CodeOf returns the code of the first ScheduleError in err's chain, or ""
// when there is none.
func CodeOf(err error) ScheduleErrorCode {
	var se *ScheduleError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

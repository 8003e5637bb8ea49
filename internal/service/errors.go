package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/chantier/internal/app"
	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/alexanderramin/chantier/internal/scheduler"
)

// classify converts any error leaving a use case into an *app.ScheduleError.
// Errors that are already classified pass through unchanged.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *app.ScheduleError
	if errors.As(err, &se) {
		return err
	}
	code := app.ErrCodePersistence
	switch {
	case errors.Is(err, catalog.ErrUnknownStep):
		code = app.ErrCodeUnknownStep
	case errors.Is(err, repository.ErrStaleWrite):
		code = app.ErrCodeStaleWrite
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, scheduler.ErrEntryNotFound):
		code = app.ErrCodeNotFound
	case errors.Is(err, scheduler.ErrInvalidTransition):
		code = app.ErrCodeInvalidTransition
	case errors.Is(err, scheduler.ErrInvalidInput):
		code = app.ErrCodeInvalidInput
	}
	return &app.ScheduleError{Code: code, Message: fmt.Sprintf("%s: %v", op, err), Err: err}
}

func invalidInput(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return &app.ScheduleError{Code: app.ErrCodeInvalidInput, Message: err.Error(), Err: err}
}

package timesheeterrors

import (
	"net/http"

	"mini-payrun/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidClockFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time of day, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodOrder = apperror.New(
		apperror.CodeInvalidInput,
		"periodStart must be before periodEnd",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"referenced employee does not exist",
		http.StatusNotFound,
	)
	ErrSubmissionConflict = apperror.New(
		apperror.CodeConflict,
		"a concurrent submission for this period is in progress",
		http.StatusConflict,
	)
)

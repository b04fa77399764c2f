package payrunerrors

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
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"periodStart must be before periodEnd",
		http.StatusBadRequest,
	)
	ErrInvalidSubset = apperror.New(
		apperror.CodeInvalidInput,
		"employeeSubset must be \"all\" or \"hourly\"",
		http.StatusBadRequest,
	)
	ErrNoPayableEntries = apperror.New(
		apperror.CodeNotFound,
		"payrun ran but no payable entries",
		http.StatusNotFound,
	)
	ErrPayrunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payrun not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"referenced employee does not exist",
		http.StatusNotFound,
	)
	ErrPayrunConflict = apperror.New(
		apperror.CodeConflict,
		"a concurrent payrun touched the same records",
		http.StatusConflict,
	)
)

package employeeerrors

import (
	"net/http"

	"mini-payrun/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrBankDetailsIncomplete = apperror.New(
		apperror.CodeInvalidInput,
		"Both bsb and account must be provided together, or both omitted",
		http.StatusBadRequest,
	)
	ErrEmployeeConflict = apperror.New(
		apperror.CodeConflict,
		"Duplicate employee record",
		http.StatusConflict,
	)
)

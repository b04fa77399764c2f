package timesheet

import (
	"errors"

	timesheeterrors "mini-payrun/internal/timesheet/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation: a racing submission for the same key
			return timesheeterrors.ErrSubmissionConflict
		case "23503": // foreign_key_violation: employee disappeared mid-submit
			return timesheeterrors.ErrEmployeeNotFound
		}
	}

	return err
}

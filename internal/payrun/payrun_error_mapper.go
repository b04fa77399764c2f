package payrun

import (
	"errors"

	payrunerrors "mini-payrun/internal/payrun/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return payrunerrors.ErrPayrunConflict
		case "23503": // foreign_key_violation
			return payrunerrors.ErrEmployeeNotFound
		case "40001": // serialization_failure: overlapping batch lost the race
			return payrunerrors.ErrPayrunConflict
		}
	}

	return err
}

package employee

import (
	"errors"

	employeeerrors "mini-payrun/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 unique_violation
		if pgErr.Code == "23505" {
			return employeeerrors.ErrEmployeeConflict
		}
	}

	return err
}

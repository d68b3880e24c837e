package employee

import (
	"errors"
	"strings"

	employeeerrors "go-hrsuit/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueUserConstraint = "uq_employees_user_id"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniqueUserConstraint {
			return employeeerrors.ErrDuplicateAccount
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueUserConstraint) {
		return employeeerrors.ErrDuplicateAccount
	}

	return err
}

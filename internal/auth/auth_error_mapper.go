package auth

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	autherrors "github.com/zkkaa/sipetak-sub000/internal/auth/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return autherrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "idx_users_email":
				return autherrors.ErrEmailAlreadyRegistered
			case "idx_users_nik":
				return autherrors.ErrNIKAlreadyRegistered
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "email") {
		return autherrors.ErrEmailAlreadyRegistered
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "nik") {
		return autherrors.ErrNIKAlreadyRegistered
	}

	return err
}

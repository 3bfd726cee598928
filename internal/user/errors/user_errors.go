package usererrors

import (
	"net/http"

	"github.com/zkkaa/sipetak-sub000/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrInvalidRoleFilter = apperror.New(
		apperror.CodeInvalidInput,
		"role filter must be Admin or UMKM",
		http.StatusBadRequest,
	)
	ErrSelfDelete = apperror.New(
		apperror.CodeConflict,
		"you cannot delete your own account",
		http.StatusConflict,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to perform this action",
		http.StatusForbidden,
	)
)

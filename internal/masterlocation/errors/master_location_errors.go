package masterlocationerrors

import (
	"net/http"

	"github.com/zkkaa/sipetak-sub000/internal/shared/apperror"
)

var (
	ErrLocationNotFound = apperror.New(
		apperror.CodeNotFound,
		"master location not found",
		http.StatusNotFound,
	)
	ErrInvalidLocationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid master location id",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason_restriction is required for a restricted location",
		http.StatusBadRequest,
	)
	ErrLocationOccupied = apperror.New(
		apperror.CodeConflict,
		"master location is currently occupied",
		http.StatusConflict,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"status filter must be one of Tersedia, Terisi, Terlarang",
		http.StatusBadRequest,
	)
)

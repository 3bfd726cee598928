package permiterrors

import (
	"net/http"

	"github.com/zkkaa/sipetak-sub000/internal/shared/apperror"
)

var (
	ErrInvalidLocationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid location id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidMasterLocationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid master location id",
		http.StatusBadRequest,
	)
	ErrLocationNotFound = apperror.New(
		apperror.CodeNotFound,
		"location not found",
		http.StatusNotFound,
	)
	ErrMasterLocationNotFound = apperror.New(
		apperror.CodeNotFound,
		"master location not found",
		http.StatusNotFound,
	)
	ErrMasterLocationOccupied = apperror.New(
		apperror.CodeConflict,
		"master location is already occupied",
		http.StatusConflict,
	)
	ErrMasterLocationRestricted = apperror.New(
		apperror.CodeConflict,
		"master location is restricted",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid permit status transition",
		http.StatusBadRequest,
	)
	ErrApprovedLocationDelete = apperror.New(
		apperror.CodeConflict,
		"an approved location must be removed through a deletion request",
		http.StatusConflict,
	)
	ErrCertificateUnavailable = apperror.New(
		apperror.CodeInvalidState,
		"certificate is only available for an approved location",
		http.StatusBadRequest,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you do not have access to this location",
		http.StatusForbidden,
	)
)

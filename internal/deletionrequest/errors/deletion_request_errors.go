package deletionrequesterrors

import (
	"net/http"

	"github.com/zkkaa/sipetak-sub000/internal/shared/apperror"
)

var (
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid deletion request id",
		http.StatusBadRequest,
	)
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
	ErrReasonTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"reason must be at least 30 characters",
		http.StatusBadRequest,
	)
	ErrLocationNotFound = apperror.New(
		apperror.CodeNotFound,
		"location not found",
		http.StatusNotFound,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"deletion request not found",
		http.StatusNotFound,
	)
	ErrLocationNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"only an approved location can be submitted for deletion",
		http.StatusBadRequest,
	)
	ErrPendingRequestExists = apperror.New(
		apperror.CodeConflict,
		"a pending deletion request already exists for this location",
		http.StatusConflict,
	)
	ErrCooldownActive = apperror.New(
		apperror.CodeRateLimited,
		"a rejected deletion request for this location is still in cooldown",
		http.StatusTooManyRequests,
	)
	ErrRequestNotPending = apperror.New(
		apperror.CodeInvalidState,
		"deletion request is no longer pending",
		http.StatusConflict,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to perform this action",
		http.StatusForbidden,
	)
)

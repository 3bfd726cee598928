package deletionrequest

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	deletionrequesterrors "github.com/zkkaa/sipetak-sub000/internal/deletionrequest/errors"
)

// mapDeletionRequestError menerjemahkan pelanggaran partial unique index
// uq_deletion_requests_pending menjadi Conflict. Race dua request Pending
// untuk lokasi yang sama diputus di database, bukan di aplikasi.
func mapDeletionRequestError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_deletion_requests_pending" {
			return deletionrequesterrors.ErrPendingRequestExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_deletion_requests_pending") {
		return deletionrequesterrors.ErrPendingRequestExists
	}

	return err
}

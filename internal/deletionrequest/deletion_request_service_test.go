package deletionrequest_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/zkkaa/sipetak-sub000/internal/deletionrequest"
	deletionrequesterrors "github.com/zkkaa/sipetak-sub000/internal/deletionrequest/errors"
	"github.com/zkkaa/sipetak-sub000/internal/domain"
	"github.com/zkkaa/sipetak-sub000/internal/masterlocation"
	"github.com/zkkaa/sipetak-sub000/internal/messaging/kafka"
	"github.com/zkkaa/sipetak-sub000/internal/notification"
	"github.com/zkkaa/sipetak-sub000/internal/permit"
	"github.com/zkkaa/sipetak-sub000/internal/shared/apperror"
)

type fakeDeletionRepository struct {
	createFn         func(ctx context.Context, dr *deletionrequest.DeletionRequest) error
	findByIDFn       func(ctx context.Context, id string) (*deletionrequest.DeletionRequest, error)
	pendingExistsFn  func(ctx context.Context, locationID uint) (bool, error)
	lastRejectedFn   func(ctx context.Context, userID string, locationID uint) (*deletionrequest.DeletionRequest, error)
	updateReviewFn   func(ctx context.Context, id, status, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error
	deleteFn         func(ctx context.Context, id string) error
	queueFn          func(ctx context.Context) ([]deletionrequest.QueueRow, error)
	findAllByOwnerFn func(ctx context.Context, userID string) ([]deletionrequest.DeletionRequest, error)
}

func (f *fakeDeletionRepository) WithTx(tx *sql.Tx) deletionrequest.Repository { return f }

func (f *fakeDeletionRepository) Create(ctx context.Context, dr *deletionrequest.DeletionRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, dr)
	}
	return nil
}

func (f *fakeDeletionRepository) FindByID(ctx context.Context, id string) (*deletionrequest.DeletionRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDeletionRepository) PendingExists(ctx context.Context, locationID uint) (bool, error) {
	if f.pendingExistsFn != nil {
		return f.pendingExistsFn(ctx, locationID)
	}
	return false, nil
}

func (f *fakeDeletionRepository) LastRejectedForOwnerLocation(ctx context.Context, userID string, locationID uint) (*deletionrequest.DeletionRequest, error) {
	if f.lastRejectedFn != nil {
		return f.lastRejectedFn(ctx, userID, locationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDeletionRepository) UpdateReview(ctx context.Context, id, status, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error {
	if f.updateReviewFn != nil {
		return f.updateReviewFn(ctx, id, status, reviewedBy, reviewedAt, rejectionReason)
	}
	return nil
}

func (f *fakeDeletionRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeDeletionRepository) Queue(ctx context.Context) ([]deletionrequest.QueueRow, error) {
	if f.queueFn != nil {
		return f.queueFn(ctx)
	}
	return nil, nil
}

func (f *fakeDeletionRepository) FindAllByOwner(ctx context.Context, userID string) ([]deletionrequest.DeletionRequest, error) {
	if f.findAllByOwnerFn != nil {
		return f.findAllByOwnerFn(ctx, userID)
	}
	return nil, nil
}

type fakePermitRepository struct {
	findByIDFn                    func(ctx context.Context, id uint) (*permit.UmkmLocation, error)
	updateStatusFn                func(ctx context.Context, id uint, status string, dateExpired *time.Time) error
	deleteLocationFn              func(ctx context.Context, id uint) error
	deleteSubmissionsByLocationFn func(ctx context.Context, locationID uint) error
	setMasterLocationStatusFn     func(ctx context.Context, masterLocationID, status string) error
}

func (f *fakePermitRepository) WithTx(tx *sql.Tx) permit.Repository { return f }

func (f *fakePermitRepository) CreateLocation(ctx context.Context, l *permit.UmkmLocation) error {
	return nil
}

func (f *fakePermitRepository) CreateSubmission(ctx context.Context, s *permit.Submission) error {
	return nil
}

func (f *fakePermitRepository) FindByID(ctx context.Context, id uint) (*permit.UmkmLocation, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePermitRepository) FindAll(ctx context.Context) ([]permit.UmkmLocation, error) {
	return nil, nil
}

func (f *fakePermitRepository) FindAllByOwner(ctx context.Context, userID string) ([]permit.UmkmLocation, error) {
	return nil, nil
}

func (f *fakePermitRepository) FindSubmissions(ctx context.Context, locationID uint) ([]permit.Submission, error) {
	return nil, nil
}

func (f *fakePermitRepository) UpdateStatus(ctx context.Context, id uint, status string, dateExpired *time.Time) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status, dateExpired)
	}
	return nil
}

func (f *fakePermitRepository) DeleteLocation(ctx context.Context, id uint) error {
	if f.deleteLocationFn != nil {
		return f.deleteLocationFn(ctx, id)
	}
	return nil
}

func (f *fakePermitRepository) DeleteSubmissionsByLocation(ctx context.Context, locationID uint) error {
	if f.deleteSubmissionsByLocationFn != nil {
		return f.deleteSubmissionsByLocationFn(ctx, locationID)
	}
	return nil
}

func (f *fakePermitRepository) MasterLocationStatus(ctx context.Context, masterLocationID string) (string, error) {
	return masterlocation.StatusTersedia, nil
}

func (f *fakePermitRepository) SetMasterLocationStatus(ctx context.Context, masterLocationID, status string) error {
	if f.setMasterLocationStatusFn != nil {
		return f.setMasterLocationStatusFn(ctx, masterLocationID, status)
	}
	return nil
}

type fakeNotificationRepository struct {
	createFn          func(ctx context.Context, n *notification.Notification) error
	createForAdminsFn func(ctx context.Context, template notification.Notification) error
}

func (f *fakeNotificationRepository) WithTx(tx *sql.Tx) notification.Repository { return f }

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) CreateForAdmins(ctx context.Context, template notification.Notification) error {
	if f.createForAdminsFn != nil {
		return f.createForAdminsFn(ctx, template)
	}
	return nil
}

func (f *fakeNotificationRepository) FindAllByUser(ctx context.Context, userID string, limit, offset int) ([]notification.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, userID, id string) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type deletionServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    deletionrequest.Service
	repo       *fakeDeletionRepository
	permitRepo *fakePermitRepository
	notif      *fakeNotificationRepository
	outbox     *fakeOutboxRepository
}

func setupDeletionServiceTest(t *testing.T) *deletionServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeDeletionRepository{}
	permitRepo := &fakePermitRepository{}
	notif := &fakeNotificationRepository{}
	outbox := &fakeOutboxRepository{}
	svc := deletionrequest.NewService(db, repo, permitRepo, notif, outbox)

	return &deletionServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    svc,
		repo:       repo,
		permitRepo: permitRepo,
		notif:      notif,
		outbox:     outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func umkmActor(id string) domain.ActorContext {
	return domain.ActorContext{UserID: id, Role: domain.RoleUMKM}
}

func adminActor(id string) domain.ActorContext {
	return domain.ActorContext{UserID: id, Role: domain.RoleAdmin}
}

func validReason() string {
	return strings.Repeat("Lapak sudah tutup permanen. ", 2)
}

func TestDeletionRequestService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	masterID := uuid.New()

	approvedLocation := func() *permit.UmkmLocation {
		return &permit.UmkmLocation{
			ID:               7,
			UserID:           ownerID,
			MasterLocationID: masterID,
			NamaLapak:        "Soto Mbak Rini",
			IzinStatus:       permit.StatusDiterima,
		}
	}

	req := func(reason string) deletionrequest.CreateDeletionRequest {
		return deletionrequest.CreateDeletionRequest{UmkmLocationID: 7, Reason: reason}
	}

	t.Run("success marks location and notifies admins", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.permitRepo.findByIDFn = func(ctx context.Context, id uint) (*permit.UmkmLocation, error) {
			return approvedLocation(), nil
		}

		var created *deletionrequest.DeletionRequest
		deps.repo.createFn = func(ctx context.Context, dr *deletionrequest.DeletionRequest) error {
			created = dr
			return nil
		}

		var newStatus string
		deps.permitRepo.updateStatusFn = func(ctx context.Context, id uint, status string, dateExpired *time.Time) error {
			assert.Equal(t, uint(7), id)
			newStatus = status
			return nil
		}

		var adminNotif *notification.Notification
		deps.notif.createForAdminsFn = func(ctx context.Context, template notification.Notification) error {
			adminNotif = &template
			return nil
		}

		resp, err := deps.service.Create(ctx, umkmActor(ownerID.String()), req("  "+validReason()+"  "))

		assert.NoError(t, err)
		assert.Equal(t, deletionrequest.StatusPending, resp.Status)
		if assert.NotNil(t, created) {
			assert.Equal(t, strings.TrimSpace("  "+validReason()+"  "), created.Reason)
		}
		assert.Equal(t, permit.StatusPengajuanPenghapusan, newStatus)
		if assert.NotNil(t, adminNotif) {
			assert.Equal(t, notification.TypeDeletionRequested, adminNotif.Type)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative other owner location treated as missing", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.permitRepo.findByIDFn = func(ctx context.Context, id uint) (*permit.UmkmLocation, error) {
			l := approvedLocation()
			l.UserID = uuid.New()
			return l, nil
		}

		_, err := deps.service.Create(ctx, umkmActor(ownerID.String()), req(validReason()))

		assert.ErrorIs(t, err, deletionrequesterrors.ErrLocationNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative location not approved", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.permitRepo.findByIDFn = func(ctx context.Context, id uint) (*permit.UmkmLocation, error) {
			l := approvedLocation()
			l.IzinStatus = permit.StatusDiajukan
			return l, nil
		}

		_, err := deps.service.Create(ctx, umkmActor(ownerID.String()), req(validReason()))

		assert.ErrorIs(t, err, deletionrequesterrors.ErrLocationNotApproved)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative pending request wins over cooldown", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.permitRepo.findByIDFn = func(ctx context.Context, id uint) (*permit.UmkmLocation, error) {
			return approvedLocation(), nil
		}
		deps.repo.pendingExistsFn = func(ctx context.Context, locationID uint) (bool, error) {
			return true, nil
		}
		deps.repo.lastRejectedFn = func(ctx context.Context, userID string, locationID uint) (*deletionrequest.DeletionRequest, error) {
			t.Fatal("cooldown must not be checked when a pending request exists")
			return nil, nil
		}

		_, err := deps.service.Create(ctx, umkmActor(ownerID.String()), req(validReason()))

		assert.ErrorIs(t, err, deletionrequesterrors.ErrPendingRequestExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative cooldown still active", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.permitRepo.findByIDFn = func(ctx context.Context, id uint) (*permit.UmkmLocation, error) {
			return approvedLocation(), nil
		}
		reviewedAt := time.Now().UTC().Add(-71 * time.Hour)
		deps.repo.lastRejectedFn = func(ctx context.Context, userID string, locationID uint) (*deletionrequest.DeletionRequest, error) {
			return &deletionrequest.DeletionRequest{
				Status:     deletionrequest.StatusRejected,
				ReviewedAt: &reviewedAt,
			}, nil
		}

		_, err := deps.service.Create(ctx, umkmActor(ownerID.String()), req(validReason()))

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeRateLimited, appErr.Code)
		details, ok := appErr.Details.(map[string]any)
		if assert.True(t, ok) {
			assert.NotEmpty(t, details["cooldown_ends_at"])
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("allowed once cooldown elapsed", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.permitRepo.findByIDFn = func(ctx context.Context, id uint) (*permit.UmkmLocation, error) {
			return approvedLocation(), nil
		}
		reviewedAt := time.Now().UTC().Add(-73 * time.Hour)
		deps.repo.lastRejectedFn = func(ctx context.Context, userID string, locationID uint) (*deletionrequest.DeletionRequest, error) {
			return &deletionrequest.DeletionRequest{
				Status:     deletionrequest.StatusRejected,
				ReviewedAt: &reviewedAt,
			}, nil
		}

		_, err := deps.service.Create(ctx, umkmActor(ownerID.String()), req(validReason()))

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("allowed exactly at cooldown end", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.permitRepo.findByIDFn = func(ctx context.Context, id uint) (*permit.UmkmLocation, error) {
			return approvedLocation(), nil
		}
		// reviewedAt+72h jatuh tepat di (atau sesaat sebelum) now; batas
		// memakai After, jadi titik ini sudah boleh mengajukan lagi.
		reviewedAt := time.Now().UTC().Add(-deletionrequest.ReviewCooldown)
		deps.repo.lastRejectedFn = func(ctx context.Context, userID string, locationID uint) (*deletionrequest.DeletionRequest, error) {
			return &deletionrequest.DeletionRequest{
				Status:     deletionrequest.StatusRejected,
				ReviewedAt: &reviewedAt,
			}, nil
		}

		_, err := deps.service.Create(ctx, umkmActor(ownerID.String()), req(validReason()))

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative reason too short after trim", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		deps.permitRepo.findByIDFn = func(ctx context.Context, id uint) (*permit.UmkmLocation, error) {
			t.Fatal("short reason must be rejected before any database work")
			return nil, nil
		}

		_, err := deps.service.Create(ctx, umkmActor(ownerID.String()), req("   sudah tutup   "))

		assert.ErrorIs(t, err, deletionrequesterrors.ErrReasonTooShort)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reason of exactly thirty characters accepted", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.permitRepo.findByIDFn = func(ctx context.Context, id uint) (*permit.UmkmLocation, error) {
			return approvedLocation(), nil
		}

		exact := strings.Repeat("a", 30)

		_, err := deps.service.Create(ctx, umkmActor(ownerID.String()), req(exact))

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative twenty nine characters rejected", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, umkmActor(ownerID.String()), req(strings.Repeat("a", 29)))

		assert.ErrorIs(t, err, deletionrequesterrors.ErrReasonTooShort)
	})

	t.Run("negative multibyte reason counted per character", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		// 29 karakter tapi 58 byte; hitungan byte akan salah meloloskannya.
		_, err := deps.service.Create(ctx, umkmActor(ownerID.String()), req(strings.Repeat("é", 29)))

		assert.ErrorIs(t, err, deletionrequesterrors.ErrReasonTooShort)
	})

	t.Run("negative short reason wins over active cooldown", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		deps.repo.lastRejectedFn = func(ctx context.Context, userID string, locationID uint) (*deletionrequest.DeletionRequest, error) {
			t.Fatal("cooldown must not be checked for an invalid reason")
			return nil, nil
		}

		_, err := deps.service.Create(ctx, umkmActor(ownerID.String()), req("sudah tutup"))

		assert.ErrorIs(t, err, deletionrequesterrors.ErrReasonTooShort)
	})

	t.Run("negative admin cannot create", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, adminActor(uuid.New().String()), req(validReason()))

		assert.ErrorIs(t, err, deletionrequesterrors.ErrForbidden)
	})
}

func TestDeletionRequestService_Cancel(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	requestID := uuid.New()

	pendingRequest := func() *deletionrequest.DeletionRequest {
		return &deletionrequest.DeletionRequest{
			ID:             requestID,
			UmkmLocationID: 7,
			UserID:         ownerID,
			Status:         deletionrequest.StatusPending,
		}
	}

	t.Run("success reverts location", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*deletionrequest.DeletionRequest, error) {
			return pendingRequest(), nil
		}

		var deleted bool
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			assert.Equal(t, requestID.String(), id)
			deleted = true
			return nil
		}

		var revertedTo string
		deps.permitRepo.updateStatusFn = func(ctx context.Context, id uint, status string, dateExpired *time.Time) error {
			assert.Equal(t, uint(7), id)
			revertedTo = status
			return nil
		}

		err := deps.service.Cancel(ctx, umkmActor(ownerID.String()), requestID.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, permit.StatusDiterima, revertedTo)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative reviewed request cannot be cancelled", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*deletionrequest.DeletionRequest, error) {
			dr := pendingRequest()
			dr.Status = deletionrequest.StatusApproved
			return dr, nil
		}

		err := deps.service.Cancel(ctx, umkmActor(ownerID.String()), requestID.String())

		assert.ErrorIs(t, err, deletionrequesterrors.ErrRequestNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative other owner request hidden", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*deletionrequest.DeletionRequest, error) {
			dr := pendingRequest()
			dr.UserID = uuid.New()
			return dr, nil
		}

		err := deps.service.Cancel(ctx, umkmActor(ownerID.String()), requestID.String())

		assert.ErrorIs(t, err, deletionrequesterrors.ErrRequestNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDeletionRequestService_Approve(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New().String()
	ownerID := uuid.New()
	masterID := uuid.New()
	requestID := uuid.New()

	t.Run("success removes location and frees master point", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*deletionrequest.DeletionRequest, error) {
			return &deletionrequest.DeletionRequest{
				ID:             requestID,
				UmkmLocationID: 7,
				UserID:         ownerID,
				Status:         deletionrequest.StatusPending,
			}, nil
		}
		deps.permitRepo.findByIDFn = func(ctx context.Context, id uint) (*permit.UmkmLocation, error) {
			return &permit.UmkmLocation{
				ID:               7,
				UserID:           ownerID,
				MasterLocationID: masterID,
				NamaLapak:        "Soto Mbak Rini",
				IzinStatus:       permit.StatusPengajuanPenghapusan,
			}, nil
		}

		var reviewedStatus string
		deps.repo.updateReviewFn = func(ctx context.Context, id, status, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error {
			assert.Equal(t, adminID, reviewedBy)
			assert.Nil(t, rejectionReason)
			reviewedStatus = status
			return nil
		}

		var deletedSubmissions, deletedLocation bool
		deps.permitRepo.deleteSubmissionsByLocationFn = func(ctx context.Context, locationID uint) error {
			deletedSubmissions = true
			return nil
		}
		deps.permitRepo.deleteLocationFn = func(ctx context.Context, id uint) error {
			assert.True(t, deletedSubmissions)
			deletedLocation = true
			return nil
		}

		var freedTo string
		deps.permitRepo.setMasterLocationStatusFn = func(ctx context.Context, id, status string) error {
			assert.Equal(t, masterID.String(), id)
			freedTo = status
			return nil
		}

		var notified *notification.Notification
		deps.notif.createFn = func(ctx context.Context, n *notification.Notification) error {
			notified = n
			return nil
		}

		var eventType string
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			eventType = event.EventType
			return nil
		}

		resp, err := deps.service.Approve(ctx, adminActor(adminID), requestID.String())

		assert.NoError(t, err)
		assert.Equal(t, deletionrequest.StatusApproved, resp.Status)
		assert.Equal(t, deletionrequest.StatusApproved, reviewedStatus)
		assert.True(t, deletedLocation)
		assert.Equal(t, masterlocation.StatusTersedia, freedTo)
		if assert.NotNil(t, notified) {
			assert.Equal(t, ownerID, notified.UserID)
			assert.Equal(t, notification.TypeDeletionApproved, notified.Type)
		}
		assert.Equal(t, "deletion.approved", eventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already reviewed", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*deletionrequest.DeletionRequest, error) {
			return &deletionrequest.DeletionRequest{
				ID:     requestID,
				UserID: ownerID,
				Status: deletionrequest.StatusRejected,
			}, nil
		}

		_, err := deps.service.Approve(ctx, adminActor(adminID), requestID.String())

		assert.ErrorIs(t, err, deletionrequesterrors.ErrRequestNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative non admin", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Approve(ctx, umkmActor(ownerID.String()), requestID.String())

		assert.ErrorIs(t, err, deletionrequesterrors.ErrForbidden)
	})
}

func TestDeletionRequestService_Reject(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New().String()
	ownerID := uuid.New()
	requestID := uuid.New()

	t.Run("success restores location and records reason", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*deletionrequest.DeletionRequest, error) {
			return &deletionrequest.DeletionRequest{
				ID:             requestID,
				UmkmLocationID: 7,
				UserID:         ownerID,
				Status:         deletionrequest.StatusPending,
			}, nil
		}
		deps.permitRepo.findByIDFn = func(ctx context.Context, id uint) (*permit.UmkmLocation, error) {
			return &permit.UmkmLocation{
				ID:               7,
				UserID:           ownerID,
				MasterLocationID: uuid.New(),
				NamaLapak:        "Soto Mbak Rini",
				IzinStatus:       permit.StatusPengajuanPenghapusan,
			}, nil
		}

		var savedReason *string
		deps.repo.updateReviewFn = func(ctx context.Context, id, status, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error {
			assert.Equal(t, deletionrequest.StatusRejected, status)
			savedReason = rejectionReason
			return nil
		}

		var restoredTo string
		deps.permitRepo.updateStatusFn = func(ctx context.Context, id uint, status string, dateExpired *time.Time) error {
			restoredTo = status
			return nil
		}
		deps.permitRepo.deleteLocationFn = func(ctx context.Context, id uint) error {
			t.Fatal("reject must not delete the location")
			return nil
		}

		var notified *notification.Notification
		deps.notif.createFn = func(ctx context.Context, n *notification.Notification) error {
			notified = n
			return nil
		}

		resp, err := deps.service.Reject(ctx, adminActor(adminID), requestID.String(), deletionrequest.RejectDeletionRequest{
			RejectionReason: "Lokasi masih aktif berdagang",
		})

		assert.NoError(t, err)
		assert.Equal(t, deletionrequest.StatusRejected, resp.Status)
		if assert.NotNil(t, savedReason) {
			assert.Equal(t, "Lokasi masih aktif berdagang", *savedReason)
		}
		assert.Equal(t, permit.StatusDiterima, restoredTo)
		if assert.NotNil(t, notified) {
			assert.Equal(t, notification.TypeDeletionRejected, notified.Type)
			assert.Contains(t, notified.Message, "Lokasi masih aktif berdagang")
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative empty reason", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Reject(ctx, adminActor(adminID), requestID.String(), deletionrequest.RejectDeletionRequest{
			RejectionReason: "   ",
		})

		assert.ErrorIs(t, err, deletionrequesterrors.ErrRejectionReasonRequired)
	})
}

func TestDeletionRequestService_Queue(t *testing.T) {
	ctx := context.Background()

	t.Run("admin gets joined rows", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		deps.repo.queueFn = func(ctx context.Context) ([]deletionrequest.QueueRow, error) {
			return []deletionrequest.QueueRow{
				{
					DeletionRequest: deletionrequest.DeletionRequest{
						ID:             uuid.New(),
						UmkmLocationID: 7,
						UserID:         uuid.New(),
						Status:         deletionrequest.StatusPending,
						RequestedAt:    time.Now().UTC(),
					},
					NamaLapak:          "Soto Mbak Rini",
					MasterLocationName: "Alun-alun sisi timur",
					OwnerName:          "Rini",
					OwnerEmail:         "rini@example.com",
				},
			}, nil
		}

		items, err := deps.service.Queue(ctx, adminActor(uuid.New().String()))

		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "Soto Mbak Rini", items[0].NamaLapak)
		assert.Equal(t, "rini@example.com", items[0].OwnerEmail)
	})

	t.Run("negative non admin", func(t *testing.T) {
		deps := setupDeletionServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Queue(ctx, umkmActor(uuid.New().String()))

		assert.ErrorIs(t, err, deletionrequesterrors.ErrForbidden)
	})
}

package deletionrequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	deletionrequesterrors "github.com/zkkaa/sipetak-sub000/internal/deletionrequest/errors"
	"github.com/zkkaa/sipetak-sub000/internal/domain"
	"github.com/zkkaa/sipetak-sub000/internal/events"
	"github.com/zkkaa/sipetak-sub000/internal/masterlocation"
	"github.com/zkkaa/sipetak-sub000/internal/messaging/kafka"
	"github.com/zkkaa/sipetak-sub000/internal/notification"
	"github.com/zkkaa/sipetak-sub000/internal/permit"
	"github.com/zkkaa/sipetak-sub000/internal/shared/contextutil"
)

const minReasonLength = 30

//go:generate mockgen -source=deletion_request_service.go -destination=mock/deletion_request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.ActorContext, req CreateDeletionRequest) (DeletionRequestResponse, error)
	Cancel(ctx context.Context, actor domain.ActorContext, id string) error
	Approve(ctx context.Context, actor domain.ActorContext, id string) (DeletionRequestResponse, error)
	Reject(ctx context.Context, actor domain.ActorContext, id string, req RejectDeletionRequest) (DeletionRequestResponse, error)
	Queue(ctx context.Context, actor domain.ActorContext) ([]QueueItemResponse, error)
	GetMine(ctx context.Context, actor domain.ActorContext) ([]DeletionRequestResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	permitRepo permit.Repository
	notifRepo  notification.Repository
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	permitRepo permit.Repository,
	notifRepo notification.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("deletionrequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("deletionrequest.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		permitRepo: permitRepo,
		notifRepo:  notifRepo,
		outboxRepo: outboxRepo,
		logger:     l,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create memvalidasi prasyarat secara berurutan: kepemilikan dulu, lalu
// status lokasi, lalu request Pending yang masih ada, lalu cooldown 72 jam
// sejak penolakan terakhir. Urutan ini menentukan error mana yang menang
// saat beberapa prasyarat dilanggar sekaligus.
func (s *service) Create(ctx context.Context, actor domain.ActorContext, req CreateDeletionRequest) (DeletionRequestResponse, error) {
	s.logger.Debug("create deletion request",
		zap.String("actor_id", actor.UserID),
		zap.Uint("umkm_location_id", req.UmkmLocationID),
	)

	if actor.Role != domain.RoleUMKM {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrForbidden
	}
	ownerID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrInvalidActorID
	}

	// Panjang dihitung per karakter, bukan byte, dan dicek sebelum
	// transaksi dibuka: input cacat tidak perlu menyentuh database.
	reason := strings.TrimSpace(req.Reason)
	if utf8.RuneCountInString(reason) < minReasonLength {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrReasonTooShort
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create deletion request begin tx failed", zap.Error(err))
		return DeletionRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	permitQtx := s.permitRepo.WithTx(tx)

	l, err := permitQtx.FindByID(ctx, req.UmkmLocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeletionRequestResponse{}, deletionrequesterrors.ErrLocationNotFound
		}
		return DeletionRequestResponse{}, err
	}
	if l.UserID != ownerID {
		// Lokasi milik orang lain diperlakukan seolah tidak ada
		return DeletionRequestResponse{}, deletionrequesterrors.ErrLocationNotFound
	}
	if l.IzinStatus != permit.StatusDiterima {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrLocationNotApproved
	}

	pending, err := qtx.PendingExists(ctx, l.ID)
	if err != nil {
		return DeletionRequestResponse{}, err
	}
	if pending {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrPendingRequestExists
	}

	now := s.now()
	lastRejected, err := qtx.LastRejectedForOwnerLocation(ctx, actor.UserID, l.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return DeletionRequestResponse{}, err
	}
	if lastRejected != nil && lastRejected.ReviewedAt != nil {
		cooldownEnd := lastRejected.ReviewedAt.Add(ReviewCooldown)
		if cooldownEnd.After(now) {
			s.logger.Warn("deletion request blocked by cooldown",
				zap.Uint("umkm_location_id", l.ID),
				zap.Time("cooldown_ends_at", cooldownEnd),
			)
			return DeletionRequestResponse{}, deletionrequesterrors.ErrCooldownActive.WithDetails(map[string]any{
				"cooldown_ends_at": cooldownEnd.Format(time.RFC3339),
			})
		}
	}

	dr := &DeletionRequest{
		ID:             uuid.New(),
		UmkmLocationID: l.ID,
		UserID:         ownerID,
		Reason:         reason,
		Status:         StatusPending,
		RequestedAt:    now,
	}
	if err := qtx.Create(ctx, dr); err != nil {
		s.logger.Error("create deletion request persist failed", zap.Error(err))
		return DeletionRequestResponse{}, err
	}

	if err := permitQtx.UpdateStatus(ctx, l.ID, permit.StatusPengajuanPenghapusan, nil); err != nil {
		return DeletionRequestResponse{}, err
	}

	relatedID := dr.ID.String()
	if err := s.notifRepo.WithTx(tx).CreateForAdmins(ctx, notification.Notification{
		Type:      notification.TypeDeletionRequested,
		Title:     "Pengajuan Penghapusan Baru",
		Message:   fmt.Sprintf("Lapak %q mengajukan penghapusan lokasi.", l.NamaLapak),
		Link:      "/admin/deletion-requests/" + relatedID,
		RelatedID: &relatedID,
	}); err != nil {
		s.logger.Error("create deletion request admin notification failed", zap.Error(err))
		return DeletionRequestResponse{}, err
	}

	if err := s.enqueueReviewEvent(ctx, tx, events.EventDeletionRequested, dr, ""); err != nil {
		return DeletionRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create deletion request commit failed", zap.Error(err))
		return DeletionRequestResponse{}, err
	}
	s.logger.Info("deletion request created",
		zap.String("deletion_request_id", dr.ID.String()),
		zap.Uint("umkm_location_id", l.ID),
	)

	return mapToResponse(*dr), nil
}

// Cancel membatalkan request Pending milik sendiri dan mengembalikan
// status lokasi ke Diterima. Tanpa notifikasi.
func (s *service) Cancel(ctx context.Context, actor domain.ActorContext, id string) error {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return deletionrequesterrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dr, err := qtx.FindByID(ctx, requestID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return deletionrequesterrors.ErrRequestNotFound
		}
		return err
	}
	if dr.UserID.String() != actor.UserID {
		return deletionrequesterrors.ErrRequestNotFound
	}
	if dr.Status != StatusPending {
		return deletionrequesterrors.ErrRequestNotPending
	}

	if err := qtx.Delete(ctx, dr.ID.String()); err != nil {
		return err
	}
	if err := s.permitRepo.WithTx(tx).UpdateStatus(ctx, dr.UmkmLocationID, permit.StatusDiterima, nil); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("deletion request cancelled",
		zap.String("deletion_request_id", dr.ID.String()),
		zap.String("owner_id", actor.UserID),
	)
	return nil
}

// Approve mengeksekusi penghapusan: request ditandai Approved, submission
// dan lokasi dihapus, titik master kembali Tersedia. Empat write dalam
// satu transaksi.
func (s *service) Approve(ctx context.Context, actor domain.ActorContext, id string) (DeletionRequestResponse, error) {
	if !actor.IsAdmin() {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrForbidden
	}
	requestID, err := uuid.Parse(id)
	if err != nil {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrInvalidRequestID
	}
	reviewerID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve deletion request begin tx failed", zap.Error(err))
		return DeletionRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	permitQtx := s.permitRepo.WithTx(tx)

	dr, err := qtx.FindByID(ctx, requestID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeletionRequestResponse{}, deletionrequesterrors.ErrRequestNotFound
		}
		return DeletionRequestResponse{}, err
	}
	if dr.Status != StatusPending {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrRequestNotPending
	}

	l, err := permitQtx.FindByID(ctx, dr.UmkmLocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeletionRequestResponse{}, deletionrequesterrors.ErrLocationNotFound
		}
		return DeletionRequestResponse{}, err
	}

	now := s.now()
	if err := qtx.UpdateReview(ctx, dr.ID.String(), StatusApproved, actor.UserID, now, nil); err != nil {
		return DeletionRequestResponse{}, err
	}
	if err := permitQtx.DeleteSubmissionsByLocation(ctx, l.ID); err != nil {
		return DeletionRequestResponse{}, err
	}
	if err := permitQtx.DeleteLocation(ctx, l.ID); err != nil {
		return DeletionRequestResponse{}, err
	}
	if err := permitQtx.SetMasterLocationStatus(ctx, l.MasterLocationID.String(), masterlocation.StatusTersedia); err != nil {
		return DeletionRequestResponse{}, err
	}

	relatedID := dr.ID.String()
	if err := s.notifRepo.WithTx(tx).Create(ctx, &notification.Notification{
		ID:        uuid.New(),
		UserID:    dr.UserID,
		Type:      notification.TypeDeletionApproved,
		Title:     "Pengajuan Penghapusan Disetujui",
		Message:   fmt.Sprintf("Lokasi lapak %q telah dihapus sesuai pengajuan Anda.", l.NamaLapak),
		Link:      "/pengajuan-penghapusan/" + relatedID,
		RelatedID: &relatedID,
	}); err != nil {
		return DeletionRequestResponse{}, err
	}

	reviewedBy := actor.UserID
	if err := s.enqueueReviewEvent(ctx, tx, events.EventDeletionApproved, dr, reviewedBy); err != nil {
		return DeletionRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve deletion request commit failed", zap.Error(err))
		return DeletionRequestResponse{}, err
	}
	s.logger.Info("deletion request approved",
		zap.String("deletion_request_id", dr.ID.String()),
		zap.Uint("umkm_location_id", l.ID),
		zap.String("reviewed_by", actor.UserID),
	)

	dr.Status = StatusApproved
	dr.ReviewedBy = &reviewerID
	dr.ReviewedAt = &now
	return mapToResponse(*dr), nil
}

// Reject menolak request dan mengembalikan status lokasi ke Diterima.
// Penolakan memulai cooldown 72 jam untuk pengajuan berikutnya.
func (s *service) Reject(ctx context.Context, actor domain.ActorContext, id string, req RejectDeletionRequest) (DeletionRequestResponse, error) {
	if !actor.IsAdmin() {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrForbidden
	}
	requestID, err := uuid.Parse(id)
	if err != nil {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrInvalidRequestID
	}
	reviewerID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrInvalidActorID
	}
	rejectionReason := strings.TrimSpace(req.RejectionReason)
	if rejectionReason == "" {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrRejectionReasonRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject deletion request begin tx failed", zap.Error(err))
		return DeletionRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	permitQtx := s.permitRepo.WithTx(tx)

	dr, err := qtx.FindByID(ctx, requestID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeletionRequestResponse{}, deletionrequesterrors.ErrRequestNotFound
		}
		return DeletionRequestResponse{}, err
	}
	if dr.Status != StatusPending {
		return DeletionRequestResponse{}, deletionrequesterrors.ErrRequestNotPending
	}

	l, err := permitQtx.FindByID(ctx, dr.UmkmLocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeletionRequestResponse{}, deletionrequesterrors.ErrLocationNotFound
		}
		return DeletionRequestResponse{}, err
	}

	now := s.now()
	if err := qtx.UpdateReview(ctx, dr.ID.String(), StatusRejected, actor.UserID, now, &rejectionReason); err != nil {
		return DeletionRequestResponse{}, err
	}
	if err := permitQtx.UpdateStatus(ctx, l.ID, permit.StatusDiterima, nil); err != nil {
		return DeletionRequestResponse{}, err
	}

	relatedID := dr.ID.String()
	if err := s.notifRepo.WithTx(tx).Create(ctx, &notification.Notification{
		ID:        uuid.New(),
		UserID:    dr.UserID,
		Type:      notification.TypeDeletionRejected,
		Title:     "Pengajuan Penghapusan Ditolak",
		Message:   fmt.Sprintf("Pengajuan penghapusan lapak %q ditolak: %s", l.NamaLapak, rejectionReason),
		Link:      "/pengajuan-penghapusan/" + relatedID,
		RelatedID: &relatedID,
	}); err != nil {
		return DeletionRequestResponse{}, err
	}

	if err := s.enqueueReviewEvent(ctx, tx, events.EventDeletionRejected, dr, actor.UserID); err != nil {
		return DeletionRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject deletion request commit failed", zap.Error(err))
		return DeletionRequestResponse{}, err
	}
	s.logger.Info("deletion request rejected",
		zap.String("deletion_request_id", dr.ID.String()),
		zap.String("reviewed_by", actor.UserID),
	)

	dr.Status = StatusRejected
	dr.ReviewedBy = &reviewerID
	dr.ReviewedAt = &now
	dr.RejectionReason = &rejectionReason
	return mapToResponse(*dr), nil
}

func (s *service) Queue(ctx context.Context, actor domain.ActorContext) ([]QueueItemResponse, error) {
	if !actor.IsAdmin() {
		return nil, deletionrequesterrors.ErrForbidden
	}

	rows, err := s.repo.Queue(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]QueueItemResponse, len(rows))
	for i, row := range rows {
		items[i] = QueueItemResponse{
			DeletionRequestResponse: mapToResponse(row.DeletionRequest),
			NamaLapak:               row.NamaLapak,
			BusinessType:            row.BusinessType,
			MasterLocationName:      row.MasterLocationName,
			OwnerName:               row.OwnerName,
			OwnerEmail:              row.OwnerEmail,
		}
	}
	return items, nil
}

func (s *service) GetMine(ctx context.Context, actor domain.ActorContext) ([]DeletionRequestResponse, error) {
	requests, err := s.repo.FindAllByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	resp := make([]DeletionRequestResponse, len(requests))
	for i, dr := range requests {
		resp[i] = mapToResponse(dr)
	}
	return resp, nil
}

func (s *service) enqueueReviewEvent(ctx context.Context, tx *sql.Tx, eventType string, dr *DeletionRequest, reviewedBy string) error {
	payload, err := json.Marshal(events.DeletionReviewEvent{
		EventType:      eventType,
		RequestID:      dr.ID.String(),
		UmkmLocationID: dr.UmkmLocationID,
		OwnerID:        dr.UserID.String(),
		ReviewedBy:     reviewedBy,
		OccurredAt:     s.now(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "deletion_request",
		AggregateID:   dr.ID.String(),
		EventType:     eventType,
		Topic:         events.DeletionReviewTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(dr DeletionRequest) DeletionRequestResponse {
	resp := DeletionRequestResponse{
		ID:             dr.ID.String(),
		UmkmLocationID: dr.UmkmLocationID,
		UserID:         dr.UserID.String(),
		Reason:         dr.Reason,
		Status:         dr.Status,
		RequestedAt:    dr.RequestedAt.Format(time.RFC3339),
	}
	if dr.ReviewedBy != nil {
		v := dr.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if dr.ReviewedAt != nil {
		v := dr.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	resp.RejectionReason = dr.RejectionReason
	return resp
}

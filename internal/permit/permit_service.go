package permit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zkkaa/sipetak-sub000/internal/domain"
	"github.com/zkkaa/sipetak-sub000/internal/events"
	"github.com/zkkaa/sipetak-sub000/internal/masterlocation"
	"github.com/zkkaa/sipetak-sub000/internal/messaging/kafka"
	"github.com/zkkaa/sipetak-sub000/internal/notification"
	permiterrors "github.com/zkkaa/sipetak-sub000/internal/permit/errors"
	"github.com/zkkaa/sipetak-sub000/internal/shared/contextutil"
)

//go:generate mockgen -source=permit_service.go -destination=mock/permit_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor domain.ActorContext, req SubmitPermitRequest) (PermitResponse, error)
	GetAll(ctx context.Context, actor domain.ActorContext) ([]PermitResponse, error)
	GetByID(ctx context.Context, actor domain.ActorContext, id string) (PermitResponse, error)
	Approve(ctx context.Context, actor domain.ActorContext, id string) (PermitResponse, error)
	Reject(ctx context.Context, actor domain.ActorContext, id string) (PermitResponse, error)
	Delete(ctx context.Context, actor domain.ActorContext, id string) error
	Certificate(ctx context.Context, actor domain.ActorContext, id string) (CertificateResponse, error)
	ListCertificates(ctx context.Context, actor domain.ActorContext) ([]CertificateResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	notifRepo  notification.Repository
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	notifRepo notification.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("permit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("permit.service")
	}
	return &service{db: db, repo: repo, notifRepo: notifRepo, outboxRepo: outboxRepo, logger: l}
}

func (s *service) Submit(ctx context.Context, actor domain.ActorContext, req SubmitPermitRequest) (PermitResponse, error) {
	s.logger.Debug("submit permit requested",
		zap.String("actor_id", actor.UserID),
		zap.String("master_location_id", req.MasterLocationID),
	)

	if actor.Role != domain.RoleUMKM {
		return PermitResponse{}, permiterrors.ErrForbidden
	}
	ownerID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return PermitResponse{}, permiterrors.ErrInvalidActorID
	}
	masterID, err := uuid.Parse(req.MasterLocationID)
	if err != nil {
		return PermitResponse{}, permiterrors.ErrInvalidMasterLocationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit permit begin tx failed", zap.Error(err))
		return PermitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	status, err := qtx.MasterLocationStatus(ctx, req.MasterLocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PermitResponse{}, permiterrors.ErrMasterLocationNotFound
		}
		s.logger.Error("submit permit master location check failed", zap.Error(err))
		return PermitResponse{}, err
	}
	switch status {
	case masterlocation.StatusTersedia:
	case masterlocation.StatusTerlarang:
		return PermitResponse{}, permiterrors.ErrMasterLocationRestricted
	default:
		s.logger.Warn("submit permit on occupied master location",
			zap.String("master_location_id", req.MasterLocationID),
		)
		return PermitResponse{}, permiterrors.ErrMasterLocationOccupied
	}

	now := time.Now().UTC()
	l := &UmkmLocation{
		UserID:           ownerID,
		MasterLocationID: masterID,
		NamaLapak:        req.NamaLapak,
		BusinessType:     req.BusinessType,
		IzinStatus:       StatusDiajukan,
		DateApplied:      now,
	}

	// Okupansi titik master TIDAK di-set di sini: baris Diajukan yang
	// ditolak harus meninggalkan titik tetap Tersedia tanpa write balikan.
	if err := qtx.CreateLocation(ctx, l); err != nil {
		s.logger.Error("submit permit persist location failed", zap.Error(err))
		return PermitResponse{}, err
	}

	sub := &Submission{
		ID:              uuid.New(),
		UmkmLocationID:  l.ID,
		KTPFileURL:      req.KTPFileURL,
		SuratLainnyaURL: req.SuratLainnyaURL,
		Description:     req.Description,
		DateSubmitted:   now,
	}
	if err := qtx.CreateSubmission(ctx, sub); err != nil {
		s.logger.Error("submit permit persist submission failed", zap.Error(err))
		return PermitResponse{}, err
	}

	if err := s.enqueuePermitEvent(ctx, tx, events.EventPermitSubmitted, l); err != nil {
		s.logger.Error("submit permit outbox failed", zap.Error(err))
		return PermitResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit permit commit failed", zap.Error(err))
		return PermitResponse{}, err
	}
	s.logger.Info("permit submitted",
		zap.Uint("umkm_location_id", l.ID),
		zap.String("owner_id", actor.UserID),
	)

	return mapToResponse(*l, []Submission{*sub}), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.ActorContext) ([]PermitResponse, error) {
	var (
		locations []UmkmLocation
		err       error
	)
	if actor.IsAdmin() {
		locations, err = s.repo.FindAll(ctx)
	} else {
		locations, err = s.repo.FindAllByOwner(ctx, actor.UserID)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]PermitResponse, len(locations))
	for i, l := range locations {
		resp[i] = mapToResponse(l, nil)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.ActorContext, id string) (PermitResponse, error) {
	l, err := s.findOwnedOrAdmin(ctx, s.repo, actor, id)
	if err != nil {
		return PermitResponse{}, err
	}

	submissions, err := s.repo.FindSubmissions(ctx, l.ID)
	if err != nil {
		return PermitResponse{}, err
	}
	return mapToResponse(*l, submissions), nil
}

func (s *service) Approve(ctx context.Context, actor domain.ActorContext, id string) (PermitResponse, error) {
	return s.review(ctx, actor, id, StatusDiterima)
}

func (s *service) Reject(ctx context.Context, actor domain.ActorContext, id string) (PermitResponse, error) {
	return s.review(ctx, actor, id, StatusDitolak)
}

// review menangani keputusan admin atas pengajuan izin baru.
func (s *service) review(ctx context.Context, actor domain.ActorContext, id, targetStatus string) (PermitResponse, error) {
	s.logger.Debug("review permit requested",
		zap.String("location_id", id),
		zap.String("actor_id", actor.UserID),
		zap.String("target_status", targetStatus),
	)

	if !actor.IsAdmin() {
		return PermitResponse{}, permiterrors.ErrForbidden
	}
	locationID, err := parseLocationID(id)
	if err != nil {
		return PermitResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review permit begin tx failed", zap.Error(err))
		return PermitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PermitResponse{}, permiterrors.ErrLocationNotFound
		}
		return PermitResponse{}, err
	}
	if !CanTransition(l.IzinStatus, targetStatus) {
		s.logger.Warn("review permit invalid transition",
			zap.Uint("umkm_location_id", l.ID),
			zap.String("from_status", l.IzinStatus),
			zap.String("to_status", targetStatus),
		)
		return PermitResponse{}, permiterrors.ErrInvalidStatusTransition
	}

	// Status titik master bisa berubah antara pengajuan dan review
	// (pengajuan lain disetujui lebih dulu, atau admin menandai
	// Terlarang). Persetujuan hanya sah selama titik masih Tersedia.
	if targetStatus == StatusDiterima {
		masterStatus, err := qtx.MasterLocationStatus(ctx, l.MasterLocationID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return PermitResponse{}, permiterrors.ErrMasterLocationNotFound
			}
			s.logger.Error("review permit master location check failed", zap.Error(err))
			return PermitResponse{}, err
		}
		switch masterStatus {
		case masterlocation.StatusTersedia:
		case masterlocation.StatusTerlarang:
			return PermitResponse{}, permiterrors.ErrMasterLocationRestricted
		default:
			s.logger.Warn("review permit on occupied master location",
				zap.Uint("umkm_location_id", l.ID),
				zap.String("master_location_id", l.MasterLocationID.String()),
			)
			return PermitResponse{}, permiterrors.ErrMasterLocationOccupied
		}
	}

	var (
		dateExpired *time.Time
		notifType   string
		notifTitle  string
		notifMsg    string
		eventType   string
	)
	switch targetStatus {
	case StatusDiterima:
		exp := l.DateApplied.AddDate(1, 0, 0)
		dateExpired = &exp
		notifType = notification.TypeSubmissionApproved
		notifTitle = "Pengajuan Izin Disetujui"
		notifMsg = fmt.Sprintf("Pengajuan izin lokasi untuk lapak %q telah disetujui.", l.NamaLapak)
		eventType = events.EventPermitApproved
	case StatusDitolak:
		notifType = notification.TypeSubmissionRejected
		notifTitle = "Pengajuan Izin Ditolak"
		notifMsg = fmt.Sprintf("Pengajuan izin lokasi untuk lapak %q ditolak.", l.NamaLapak)
		eventType = events.EventPermitRejected
	}

	if err := qtx.UpdateStatus(ctx, l.ID, targetStatus, dateExpired); err != nil {
		s.logger.Error("review permit persist failed", zap.Uint("umkm_location_id", l.ID), zap.Error(err))
		return PermitResponse{}, err
	}

	// Titik master baru tercatat Terisi saat izin benar-benar terbit
	if targetStatus == StatusDiterima {
		if err := qtx.SetMasterLocationStatus(ctx, l.MasterLocationID.String(), masterlocation.StatusTerisi); err != nil {
			s.logger.Error("review permit master location flip failed", zap.Error(err))
			return PermitResponse{}, err
		}
	}

	relatedID := strconv.FormatUint(uint64(l.ID), 10)
	n := &notification.Notification{
		ID:        uuid.New(),
		UserID:    l.UserID,
		Type:      notifType,
		Title:     notifTitle,
		Message:   notifMsg,
		Link:      "/lokasi/" + relatedID,
		RelatedID: &relatedID,
	}
	if err := s.notifRepo.WithTx(tx).Create(ctx, n); err != nil {
		s.logger.Error("review permit notification failed", zap.Error(err))
		return PermitResponse{}, err
	}

	l.IzinStatus = targetStatus
	l.DateExpired = dateExpired
	if err := s.enqueuePermitEvent(ctx, tx, eventType, l); err != nil {
		s.logger.Error("review permit outbox failed", zap.Error(err))
		return PermitResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review permit commit failed", zap.Uint("umkm_location_id", l.ID), zap.Error(err))
		return PermitResponse{}, err
	}
	s.logger.Info("permit reviewed",
		zap.Uint("umkm_location_id", l.ID),
		zap.String("status", targetStatus),
		zap.String("reviewed_by", actor.UserID),
	)

	return mapToResponse(*l, nil), nil
}

// Delete menghapus lokasi milik sendiri yang belum berizin aktif.
// Lokasi Diterima wajib melewati alur pengajuan penghapusan.
func (s *service) Delete(ctx context.Context, actor domain.ActorContext, id string) error {
	locationID, err := parseLocationID(id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return permiterrors.ErrLocationNotFound
		}
		return err
	}
	// Lokasi orang lain diperlakukan seolah tidak ada
	if l.UserID.String() != actor.UserID {
		return permiterrors.ErrLocationNotFound
	}
	if l.IzinStatus == StatusDiterima || l.IzinStatus == StatusPengajuanPenghapusan {
		return permiterrors.ErrApprovedLocationDelete
	}

	if err := qtx.DeleteSubmissionsByLocation(ctx, l.ID); err != nil {
		return err
	}
	if err := qtx.DeleteLocation(ctx, l.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("permit deleted by owner",
		zap.Uint("umkm_location_id", l.ID),
		zap.String("owner_id", actor.UserID),
	)
	return nil
}

func (s *service) Certificate(ctx context.Context, actor domain.ActorContext, id string) (CertificateResponse, error) {
	l, err := s.findOwnedOrAdmin(ctx, s.repo, actor, id)
	if err != nil {
		return CertificateResponse{}, err
	}
	if l.IzinStatus != StatusDiterima {
		return CertificateResponse{}, permiterrors.ErrCertificateUnavailable
	}
	return DeriveCertificate(*l, time.Now().UTC()), nil
}

func (s *service) ListCertificates(ctx context.Context, actor domain.ActorContext) ([]CertificateResponse, error) {
	var (
		locations []UmkmLocation
		err       error
	)
	if actor.IsAdmin() {
		locations, err = s.repo.FindAll(ctx)
	} else {
		locations, err = s.repo.FindAllByOwner(ctx, actor.UserID)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	certificates := make([]CertificateResponse, 0, len(locations))
	for _, l := range locations {
		if l.IzinStatus != StatusDiterima {
			continue
		}
		certificates = append(certificates, DeriveCertificate(l, now))
	}
	return certificates, nil
}

func (s *service) findOwnedOrAdmin(ctx context.Context, repo Repository, actor domain.ActorContext, id string) (*UmkmLocation, error) {
	locationID, err := parseLocationID(id)
	if err != nil {
		return nil, err
	}

	l, err := repo.FindByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, permiterrors.ErrLocationNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && l.UserID.String() != actor.UserID {
		return nil, permiterrors.ErrLocationNotFound
	}
	return l, nil
}

func (s *service) enqueuePermitEvent(ctx context.Context, tx *sql.Tx, eventType string, l *UmkmLocation) error {
	payload, err := json.Marshal(events.PermitLifecycleEvent{
		EventType:        eventType,
		UmkmLocationID:   l.ID,
		OwnerID:          l.UserID.String(),
		MasterLocationID: l.MasterLocationID.String(),
		IzinStatus:       l.IzinStatus,
		OccurredAt:       time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "umkm_location",
		AggregateID:   strconv.FormatUint(uint64(l.ID), 10),
		EventType:     eventType,
		Topic:         events.PermitLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseLocationID(id string) (uint, error) {
	parsed, err := strconv.ParseUint(id, 10, 32)
	if err != nil || parsed == 0 {
		return 0, permiterrors.ErrInvalidLocationID
	}
	return uint(parsed), nil
}

func mapToResponse(l UmkmLocation, submissions []Submission) PermitResponse {
	resp := PermitResponse{
		ID:               l.ID,
		UserID:           l.UserID.String(),
		MasterLocationID: l.MasterLocationID.String(),
		NamaLapak:        l.NamaLapak,
		BusinessType:     l.BusinessType,
		IzinStatus:       l.IzinStatus,
		DateApplied:      l.DateApplied.Format("2006-01-02"),
	}
	if l.DateExpired != nil {
		v := l.DateExpired.Format("2006-01-02")
		resp.DateExpired = &v
	}
	for _, sub := range submissions {
		resp.Submissions = append(resp.Submissions, SubmissionResponse{
			ID:              sub.ID.String(),
			KTPFileURL:      sub.KTPFileURL,
			SuratLainnyaURL: sub.SuratLainnyaURL,
			Description:     sub.Description,
			DateSubmitted:   sub.DateSubmitted.Format(time.RFC3339),
		})
	}
	return resp
}

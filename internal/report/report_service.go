package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zkkaa/sipetak-sub000/internal/domain"
	"github.com/zkkaa/sipetak-sub000/internal/notification"
	reporterrors "github.com/zkkaa/sipetak-sub000/internal/report/errors"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateReportRequest) (ReportResponse, error)
	GetAll(ctx context.Context, actor domain.ActorContext, status string) ([]ReportResponse, error)
	GetByID(ctx context.Context, actor domain.ActorContext, id string) (ReportResponse, error)
	Take(ctx context.Context, actor domain.ActorContext, id string) (ReportResponse, error)
	Resolve(ctx context.Context, actor domain.ActorContext, id string) (ReportResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	notifRepo notification.Repository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, notifRepo notification.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{db: db, repo: repo, notifRepo: notifRepo, logger: l}
}

// Create menerima laporan warga tanpa login. Semua admin diberi tahu
// lewat notifikasi dalam transaksi yang sama.
func (s *service) Create(ctx context.Context, req CreateReportRequest) (ReportResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create report begin tx failed", zap.Error(err))
		return ReportResponse{}, err
	}
	defer tx.Rollback()

	rep := &Report{
		ID:          uuid.New(),
		Type:        req.Type,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		PhotoURL:    req.PhotoURL,
		Status:      StatusBelumDiperiksa,
	}
	if err := s.repo.WithTx(tx).Create(ctx, rep); err != nil {
		s.logger.Error("create report persist failed", zap.Error(err))
		return ReportResponse{}, err
	}

	relatedID := rep.ID.String()
	if err := s.notifRepo.WithTx(tx).CreateForAdmins(ctx, notification.Notification{
		Type:      notification.TypeReportCreated,
		Title:     "Laporan Warga Baru",
		Message:   fmt.Sprintf("Laporan baru bertipe %q menunggu pemeriksaan.", rep.Type),
		Link:      "/admin/reports/" + relatedID,
		RelatedID: &relatedID,
	}); err != nil {
		s.logger.Error("create report admin notification failed", zap.Error(err))
		return ReportResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create report commit failed", zap.Error(err))
		return ReportResponse{}, err
	}
	s.logger.Info("report created",
		zap.String("report_id", rep.ID.String()),
		zap.String("type", rep.Type),
	)

	return mapToResponse(*rep), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.ActorContext, status string) ([]ReportResponse, error) {
	if !actor.IsAdmin() {
		return nil, reporterrors.ErrForbidden
	}
	switch status {
	case "", StatusBelumDiperiksa, StatusSedangDiproses, StatusSelesai:
	default:
		return nil, reporterrors.ErrInvalidStatusFilter
	}

	reports, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	resp := make([]ReportResponse, len(reports))
	for i, rep := range reports {
		resp[i] = mapToResponse(rep)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.ActorContext, id string) (ReportResponse, error) {
	if !actor.IsAdmin() {
		return ReportResponse{}, reporterrors.ErrForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return ReportResponse{}, reporterrors.ErrInvalidReportID
	}

	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResponse{}, reporterrors.ErrReportNotFound
		}
		return ReportResponse{}, err
	}
	return mapToResponse(*rep), nil
}

// Take mengklaim laporan untuk ditangani admin pemanggil.
func (s *service) Take(ctx context.Context, actor domain.ActorContext, id string) (ReportResponse, error) {
	return s.advance(ctx, actor, id, StatusSedangDiproses, true)
}

// Resolve menutup laporan yang sedang ditangani.
func (s *service) Resolve(ctx context.Context, actor domain.ActorContext, id string) (ReportResponse, error) {
	return s.advance(ctx, actor, id, StatusSelesai, false)
}

func (s *service) advance(ctx context.Context, actor domain.ActorContext, id, targetStatus string, claim bool) (ReportResponse, error) {
	if !actor.IsAdmin() {
		return ReportResponse{}, reporterrors.ErrForbidden
	}
	adminID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return ReportResponse{}, reporterrors.ErrForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return ReportResponse{}, reporterrors.ErrInvalidReportID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("advance report begin tx failed", zap.Error(err))
		return ReportResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rep, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResponse{}, reporterrors.ErrReportNotFound
		}
		return ReportResponse{}, err
	}
	if !CanTransition(rep.Status, targetStatus) {
		s.logger.Warn("report invalid transition",
			zap.String("report_id", rep.ID.String()),
			zap.String("from_status", rep.Status),
			zap.String("to_status", targetStatus),
		)
		return ReportResponse{}, reporterrors.ErrInvalidStatusTransition
	}

	var handler *uuid.UUID
	if claim {
		handler = &adminID
	}
	if err := qtx.UpdateHandling(ctx, id, targetStatus, handler); err != nil {
		s.logger.Error("advance report persist failed", zap.Error(err))
		return ReportResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("advance report commit failed", zap.Error(err))
		return ReportResponse{}, err
	}
	s.logger.Info("report advanced",
		zap.String("report_id", rep.ID.String()),
		zap.String("status", targetStatus),
		zap.String("admin_id", actor.UserID),
	)

	rep.Status = targetStatus
	if claim {
		rep.AdminHandlerID = &adminID
	}
	return mapToResponse(*rep), nil
}

func mapToResponse(rep Report) ReportResponse {
	resp := ReportResponse{
		ID:          rep.ID.String(),
		Type:        rep.Type,
		Description: rep.Description,
		Latitude:    rep.Latitude,
		Longitude:   rep.Longitude,
		PhotoURL:    rep.PhotoURL,
		Status:      rep.Status,
		CreatedAt:   rep.CreatedAt.Format(time.RFC3339),
	}
	if rep.AdminHandlerID != nil {
		v := rep.AdminHandlerID.String()
		resp.AdminHandlerID = &v
	}
	return resp
}

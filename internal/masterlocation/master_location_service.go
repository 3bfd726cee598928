package masterlocation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	masterlocationerrors "github.com/zkkaa/sipetak-sub000/internal/masterlocation/errors"
)

//go:generate mockgen -source=master_location_service.go -destination=mock/master_location_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateMasterLocationRequest) (MasterLocationResponse, error)
	GetAll(ctx context.Context, statusFilter string) ([]MasterLocationResponse, error)
	GetByID(ctx context.Context, id string) (MasterLocationResponse, error)
	Restrict(ctx context.Context, id string, req RestrictMasterLocationRequest) (MasterLocationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("masterlocation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("masterlocation.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateMasterLocationRequest) (MasterLocationResponse, error) {
	status := StatusTersedia
	var reason *string
	if req.Restricted {
		if req.ReasonRestriction == nil || strings.TrimSpace(*req.ReasonRestriction) == "" {
			return MasterLocationResponse{}, masterlocationerrors.ErrReasonRequired
		}
		status = StatusTerlarang
		reason = req.ReasonRestriction
	}

	m := &MasterLocation{
		ID:                uuid.New(),
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Status:            status,
		ReasonRestriction: reason,
		PenandaName:       req.PenandaName,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("create master location persist failed", zap.Error(err))
		return MasterLocationResponse{}, err
	}

	s.logger.Info("master location created",
		zap.String("master_location_id", m.ID.String()),
		zap.String("status", m.Status),
	)
	return mapToResponse(*m), nil
}

func (s *service) GetAll(ctx context.Context, statusFilter string) ([]MasterLocationResponse, error) {
	switch statusFilter {
	case "", StatusTersedia, StatusTerisi, StatusTerlarang:
	default:
		return nil, masterlocationerrors.ErrInvalidStatusFilter
	}

	locations, err := s.repo.FindAll(ctx, statusFilter)
	if err != nil {
		return nil, err
	}

	resp := make([]MasterLocationResponse, len(locations))
	for i, m := range locations {
		resp[i] = mapToResponse(m)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (MasterLocationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return MasterLocationResponse{}, masterlocationerrors.ErrInvalidLocationID
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MasterLocationResponse{}, masterlocationerrors.ErrLocationNotFound
		}
		return MasterLocationResponse{}, err
	}
	return mapToResponse(*m), nil
}

func (s *service) Restrict(ctx context.Context, id string, req RestrictMasterLocationRequest) (MasterLocationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return MasterLocationResponse{}, masterlocationerrors.ErrInvalidLocationID
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MasterLocationResponse{}, masterlocationerrors.ErrLocationNotFound
		}
		return MasterLocationResponse{}, err
	}

	// Titik yang sedang dipakai lapak tidak bisa langsung dilarang;
	// izinnya harus dicabut dulu lewat alur penghapusan.
	if m.Status == StatusTerisi {
		return MasterLocationResponse{}, masterlocationerrors.ErrLocationOccupied
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusTerlarang, &req.ReasonRestriction); err != nil {
		s.logger.Error("restrict master location persist failed",
			zap.String("master_location_id", id),
			zap.Error(err),
		)
		return MasterLocationResponse{}, err
	}

	m.Status = StatusTerlarang
	m.ReasonRestriction = &req.ReasonRestriction

	s.logger.Info("master location restricted", zap.String("master_location_id", id))
	return mapToResponse(*m), nil
}

func mapToResponse(m MasterLocation) MasterLocationResponse {
	return MasterLocationResponse{
		ID:                m.ID.String(),
		Latitude:          m.Latitude,
		Longitude:         m.Longitude,
		Status:            m.Status,
		ReasonRestriction: m.ReasonRestriction,
		PenandaName:       m.PenandaName,
		CreatedAt:         m.CreatedAt.Format(time.RFC3339),
	}
}

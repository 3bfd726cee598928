package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zkkaa/sipetak-sub000/internal/auth"
	autherrors "github.com/zkkaa/sipetak-sub000/internal/auth/errors"
	"github.com/zkkaa/sipetak-sub000/internal/domain"
	usererrors "github.com/zkkaa/sipetak-sub000/internal/user/errors"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, actor domain.ActorContext, role string, page, pageSize int) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, actor domain.ActorContext, id string) (UserResponse, error)
	Update(ctx context.Context, actor domain.ActorContext, id string, req UpdateUserRequest) (UserResponse, error)
	SetActive(ctx context.Context, actor domain.ActorContext, id string, req SetActiveRequest) error
	Delete(ctx context.Context, actor domain.ActorContext, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, actor domain.ActorContext, role string, page, pageSize int) ([]UserResponse, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, usererrors.ErrForbidden
	}
	switch role {
	case "", domain.RoleAdmin, domain.RoleUMKM:
	default:
		return nil, 0, usererrors.ErrInvalidRoleFilter
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	users, total, err := s.repo.FindAll(ctx, role, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.ActorContext, id string) (UserResponse, error) {
	// Pengguna non-admin hanya boleh melihat profilnya sendiri.
	if !actor.IsAdmin() && actor.UserID != id {
		return UserResponse{}, usererrors.ErrForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, actor domain.ActorContext, id string, req UpdateUserRequest) (UserResponse, error) {
	if !actor.IsAdmin() && actor.UserID != id {
		return UserResponse{}, usererrors.ErrForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	if err := s.repo.Update(ctx, id, req.Nama, req.Phone, req.NIK); err != nil {
		return UserResponse{}, mapUniqueViolation(err)
	}
	s.logger.Info("user updated",
		zap.String("user_id", id),
		zap.String("updated_by", actor.UserID),
	)

	u.Nama = req.Nama
	u.Phone = req.Phone
	u.NIK = req.NIK
	return mapToResponse(*u), nil
}

func (s *service) SetActive(ctx context.Context, actor domain.ActorContext, id string, req SetActiveRequest) error {
	if !actor.IsAdmin() {
		return usererrors.ErrForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	affected, err := s.repo.SetActive(ctx, id, *req.IsActive)
	if err != nil {
		return err
	}
	if affected == 0 {
		return usererrors.ErrUserNotFound
	}
	s.logger.Info("user active flag changed",
		zap.String("user_id", id),
		zap.Bool("is_active", *req.IsActive),
		zap.String("updated_by", actor.UserID),
	)
	return nil
}

// Delete menghapus user beserta seluruh jejaknya dalam satu transaksi:
// submission, deletion request, lokasi, notifikasi, dan referensi
// penanganan laporan. Titik master yang didudukinya dibebaskan.
func (s *service) Delete(ctx context.Context, actor domain.ActorContext, id string) error {
	if !actor.IsAdmin() {
		return usererrors.ErrForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}
	if id == actor.UserID {
		return usererrors.ErrSelfDelete
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete user begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Urutan penting: anak dulu, lalu pembebasan titik master harus
	// terjadi SEBELUM baris lokasinya hilang.
	if err := qtx.DeleteSubmissionsByUser(ctx, id); err != nil {
		return err
	}
	if err := qtx.DeleteDeletionRequestsByUser(ctx, id); err != nil {
		return err
	}
	if err := qtx.ClearReportHandler(ctx, id); err != nil {
		return err
	}
	if err := qtx.FreeMasterLocations(ctx, id); err != nil {
		return err
	}
	if err := qtx.DeleteLocationsByUser(ctx, id); err != nil {
		return err
	}
	if err := qtx.DeleteNotificationsByUser(ctx, id); err != nil {
		return err
	}

	affected, err := qtx.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return usererrors.ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete user commit failed", zap.String("user_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("user deleted with cascade",
		zap.String("user_id", id),
		zap.String("deleted_by", actor.UserID),
	)
	return nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "nik") {
			return autherrors.ErrNIKAlreadyRegistered
		}
	}
	return err
}

func mapToResponse(u auth.User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		Nama:     u.Nama,
		Email:    u.Email,
		Role:     u.Role,
		NIK:      u.NIK,
		Phone:    u.Phone,
		IsActive: u.IsActive,
	}
}

package branch

import (
	"context"
	"database/sql"
	"strings"
	"time"

	brancherrors "go-hrm/internal/branch/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=branch_service.go -destination=mock/branch_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateBranchRequest) (BranchResponse, error)
	GetAll(ctx context.Context) ([]BranchResponse, error)
	GetByID(ctx context.Context, id string) (BranchResponse, error)
	Update(ctx context.Context, id string, req UpdateBranchRequest) (BranchResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("branch.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("branch.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateBranchRequest) (BranchResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BranchResponse{}, err
	}
	defer tx.Rollback()

	b := &Branch{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := s.repo.WithTx(tx).Create(ctx, b); err != nil {
		s.logger.Error("create branch failed", zap.Error(err))
		return BranchResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return BranchResponse{}, err
	}

	s.logger.Info("create branch success", zap.String("branch_id", b.ID.String()))
	return mapToResponse(*b), nil
}

func (s *service) GetAll(ctx context.Context) ([]BranchResponse, error) {
	branches, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]BranchResponse, len(branches))
	for i, b := range branches {
		res[i] = mapToResponse(b)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (BranchResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BranchResponse{}, brancherrors.ErrInvalidBranchID
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return BranchResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*b), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateBranchRequest) (BranchResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BranchResponse{}, brancherrors.ErrInvalidBranchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BranchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	b, err := qtx.FindByID(ctx, id)
	if err != nil {
		return BranchResponse{}, mapRepositoryError(err)
	}

	b.Name = strings.TrimSpace(req.Name)
	b.Address = req.Address
	b.Phone = req.Phone

	if err := qtx.Update(ctx, b); err != nil {
		s.logger.Error("update branch failed", zap.String("branch_id", id), zap.Error(err))
		return BranchResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return BranchResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return brancherrors.ErrInvalidBranchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete branch success", zap.String("branch_id", id))
	return nil
}

func mapToResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

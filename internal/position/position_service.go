package position

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	positionerrors "go-hrm/internal/position/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	PositionListKey = "positions:all"
	listCacheTTL    = 30 * time.Minute
)

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error)
	GetAll(ctx context.Context) ([]PositionResponse, error)
	GetByID(ctx context.Context, id string) (PositionResponse, error)
	Update(ctx context.Context, id string, req UpdatePositionRequest) (PositionResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("position.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("position.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error) {
	departmentID, err := parseOptionalUUID(req.DepartmentID)
	if err != nil {
		return PositionResponse{}, positionerrors.ErrDepartmentNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	post := &Position{
		ID:           uuid.New(),
		Name:         req.Name,
		Level:        req.Level,
		Description:  req.Description,
		DepartmentID: departmentID,
	}

	if err := qtx.Create(ctx, post); err != nil {
		s.logger.Error("create position failed", zap.Error(err))
		return PositionResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	s.invalidateCache(ctx)
	return mapToResponse(*post), nil
}

func (s *service) GetAll(ctx context.Context) ([]PositionResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, PositionListKey).Result()
		if err == nil {
			var resp []PositionResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Concurrent misses share one query.
	v, err, _ := s.sf.Do(PositionListKey, func() (interface{}, error) {
		positions, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(positions)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, PositionListKey, string(jsonData), listCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return v.([]PositionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PositionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidPositionID
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PositionResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*post), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePositionRequest) (PositionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidPositionID
	}
	departmentID, err := parseOptionalUUID(req.DepartmentID)
	if err != nil {
		return PositionResponse{}, positionerrors.ErrDepartmentNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	post, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PositionResponse{}, mapRepositoryError(err)
	}

	post.Name = req.Name
	post.Level = req.Level
	post.Description = req.Description
	post.DepartmentID = departmentID
	post.Department = nil

	if err := qtx.Update(ctx, post); err != nil {
		s.logger.Error("update position failed", zap.String("position_id", id), zap.Error(err))
		return PositionResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	s.invalidateCache(ctx)
	return mapToResponse(*post), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return positionerrors.ErrInvalidPositionID
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

	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, PositionListKey).Err(); err != nil {
		s.logger.Error("failed to invalidate cache", zap.String("key", PositionListKey), zap.Error(err))
	}
}

func mapToResponse(post Position) PositionResponse {
	resp := PositionResponse{
		ID:          post.ID.String(),
		Name:        post.Name,
		Level:       post.Level,
		Description: post.Description,
	}
	if post.DepartmentID != nil {
		resp.DepartmentID = post.DepartmentID.String()
	}
	if post.Department != nil {
		resp.DepartmentName = post.Department.Name
	}
	if !post.CreatedAt.IsZero() {
		resp.CreatedAt = post.CreatedAt.Format(time.RFC3339)
	}
	if !post.UpdatedAt.IsZero() {
		resp.UpdatedAt = post.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(posts []Position) []PositionResponse {
	res := make([]PositionResponse, len(posts))
	for i, d := range posts {
		res[i] = mapToResponse(d)
	}
	return res
}

func parseOptionalUUID(v string) (*uuid.UUID, error) {
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

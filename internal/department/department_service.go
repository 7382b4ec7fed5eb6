package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	departmenterrors "go-hrm/internal/department/errors"
	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	"go-hrm/internal/fives"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DepartmentListKey = "departments:all"
	listCacheTTL      = 30 * time.Minute
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, branchID string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, rdb: rdb, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	branchID, err := parseOptionalUUID(req.BranchID)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidBranchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:       uuid.New(),
		Name:     req.Name,
		BranchID: branchID,
		IsActive: req.IsActive == nil || *req.IsActive,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueChange(ctx, tx, events.ActionCreated, dept.ID.String()); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidateList(ctx)
	s.logger.Info("create department success", zap.String("department_id", dept.ID.String()))

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context, branchID string) ([]DepartmentResponse, error) {
	if branchID != "" {
		if _, err := uuid.Parse(branchID); err != nil {
			return nil, departmenterrors.ErrInvalidBranchID
		}
	}

	cacheable := branchID == "" && s.rdb != nil
	if cacheable {
		if cached, err := s.rdb.Get(ctx, DepartmentListKey).Result(); err == nil {
			var resp []DepartmentResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	depts, err := s.repo.FindAll(ctx, branchID)
	if err != nil {
		s.logger.Error("get all departments failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := mapToListResponse(depts)
	if cacheable {
		if data, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, DepartmentListKey, string(data), listCacheTTL)
		}
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}
	branchID, err := parseOptionalUUID(req.BranchID)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidBranchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	dept.Name = req.Name
	dept.BranchID = branchID
	dept.Branch = nil
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, dept); err != nil {
		s.logger.Error("update department persist failed", zap.String("department_id", id), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueChange(ctx, tx, events.ActionUpdated, id); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidateDerived(ctx)
	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		s.logger.Error("delete department failed", zap.String("department_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.enqueueChange(ctx, tx, events.ActionDeleted, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateDerived(ctx)
	s.logger.Info("delete department success", zap.String("department_id", id))
	return nil
}

func (s *service) enqueueChange(ctx context.Context, tx *sql.Tx, action, departmentID string) error {
	if s.outbox == nil {
		return nil
	}

	event, err := kafka.NewChangeOutboxEvent(events.ChangeEvent{
		EventType:  events.DepartmentChanged,
		RequestID:  contextutil.GetRequestID(ctx),
		Collection: events.CollectionDepartments,
		EntityID:   departmentID,
		Action:     action,
	})
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("department outbox persist failed", zap.String("department_id", departmentID), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) invalidateList(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DepartmentListKey).Err(); err != nil {
		s.logger.Error("failed to invalidate department cache", zap.Error(err))
	}
}

// invalidateDerived drops every cached view that embeds a department name.
func (s *service) invalidateDerived(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DepartmentListKey, employee.EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate department cache", zap.Error(err))
	}
	if err := fives.InvalidateRankings(ctx, s.rdb); err != nil {
		s.logger.Error("failed to invalidate ranking cache", zap.Error(err))
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:        dept.ID.String(),
		Name:      dept.Name,
		IsActive:  dept.IsActive,
		CreatedAt: dept.CreatedAt.Format(time.RFC3339),
		UpdatedAt: dept.UpdatedAt.Format(time.RFC3339),
	}
	if dept.BranchID != nil {
		resp.BranchID = dept.BranchID.String()
	}
	if dept.Branch != nil {
		resp.BranchName = dept.Branch.Name
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
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

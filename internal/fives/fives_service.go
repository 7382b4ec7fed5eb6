package fives

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrm/internal/events"
	fiveserrors "go-hrm/internal/fives/errors"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	rankingKeyPrefix  = "fives:ranking:"
	RankingVersionKey = "fives:ranking:version"
	RankingAllMonths  = "all"
	rankingCacheTTL   = 10 * time.Minute
)

// RankingCacheKey is the Redis key of a month's ranking under a cache
// version; an empty month is the all-time ranking.
func RankingCacheKey(version int64, month string) string {
	if month == "" {
		month = RankingAllMonths
	}
	return fmt.Sprintf("%s%d:%s", rankingKeyPrefix, version, month)
}

// InvalidateRankings moves every month to a new cache version. Entries written
// under an older version are never read again and expire on their TTL.
func InvalidateRankings(ctx context.Context, rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}
	return rdb.Incr(ctx, RankingVersionKey).Err()
}

//go:generate mockgen -source=fives_service.go -destination=mock/fives_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateInspectionRequest) (InspectionResponse, error)
	Update(ctx context.Context, id string, req UpdateInspectionRequest) (InspectionResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (InspectionResponse, error)
	GetAll(ctx context.Context, filter InspectionFilter) ([]InspectionResponse, error)
	Ranking(ctx context.Context, month string) (RankingResponse, error)
	Months(ctx context.Context) ([]string, error)
	ExportRanking(ctx context.Context, month string) ([]byte, error)
	ReportRanking(ctx context.Context, month string) ([]byte, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("fives.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("fives.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateInspectionRequest) (InspectionResponse, error) {
	ins, err := newInspection(req)
	if err != nil {
		return InspectionResponse{}, err
	}
	month := MonthOf(ins.InspectionDate)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InspectionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.guardDuplicate(ctx, qtx, ins, month); err != nil {
		return InspectionResponse{}, err
	}

	if err := qtx.Create(ctx, ins); err != nil {
		s.logger.Error("create inspection failed", zap.Error(err))
		return InspectionResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueChange(ctx, tx, ins.ID.String(), events.ActionCreated, month); err != nil {
		return InspectionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return InspectionResponse{}, err
	}

	s.invalidateRanking(ctx)
	s.logger.Info("create inspection success",
		zap.String("inspection_id", ins.ID.String()),
		zap.String("department_id", ins.DepartmentID.String()),
		zap.Int("total_score", ins.TotalScore),
	)

	return mapToResponse(*ins), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateInspectionRequest) (InspectionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return InspectionResponse{}, fiveserrors.ErrInvalidInspectionID
	}
	next, err := newInspection(req)
	if err != nil {
		return InspectionResponse{}, err
	}
	month := MonthOf(next.InspectionDate)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InspectionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ins, err := qtx.FindByID(ctx, id)
	if err != nil {
		return InspectionResponse{}, mapRepositoryError(err)
	}

	next.ID = ins.ID
	if err := s.guardDuplicate(ctx, qtx, next, month); err != nil {
		return InspectionResponse{}, err
	}

	ins.DepartmentID = next.DepartmentID
	ins.Department = nil
	ins.InspectorName = next.InspectorName
	ins.InspectorDepartmentID = next.InspectorDepartmentID
	ins.InspectionDate = next.InspectionDate
	ins.ScoreImprovement = next.ScoreImprovement
	ins.ScoreCleanliness = next.ScoreCleanliness
	ins.ScoreInnovation = next.ScoreInnovation
	ins.TotalScore = next.TotalScore
	ins.Notes = next.Notes

	if err := qtx.Update(ctx, ins); err != nil {
		s.logger.Error("update inspection failed", zap.String("inspection_id", id), zap.Error(err))
		return InspectionResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueChange(ctx, tx, id, events.ActionUpdated, month); err != nil {
		return InspectionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return InspectionResponse{}, err
	}

	s.invalidateRanking(ctx)
	return mapToResponse(*ins), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fiveserrors.ErrInvalidInspectionID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ins, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	month := MonthOf(ins.InspectionDate)

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.enqueueChange(ctx, tx, id, events.ActionDeleted, month); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateRanking(ctx)
	s.logger.Info("delete inspection success", zap.String("inspection_id", id))
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (InspectionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return InspectionResponse{}, fiveserrors.ErrInvalidInspectionID
	}

	ins, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return InspectionResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*ins), nil
}

func (s *service) GetAll(ctx context.Context, filter InspectionFilter) ([]InspectionResponse, error) {
	if filter.Month != "" {
		if _, _, err := MonthRange(filter.Month); err != nil {
			return nil, err
		}
	}
	if filter.DepartmentID != "" {
		if _, err := uuid.Parse(filter.DepartmentID); err != nil {
			return nil, fiveserrors.ErrInvalidDepartmentID
		}
	}

	records, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]InspectionResponse, len(records))
	for i, r := range records {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Ranking(ctx context.Context, month string) (RankingResponse, error) {
	month = strings.TrimSpace(month)
	if month != "" {
		if _, _, err := MonthRange(month); err != nil {
			return RankingResponse{}, err
		}
	}
	version, cacheable := s.rankingVersion(ctx)
	key := RankingCacheKey(version, month)

	if cacheable {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp RankingResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		// shared by every caller waiting on key
		ctx := context.WithoutCancel(ctx)

		records, err := s.repo.FindAll(ctx, InspectionFilter{Month: month})
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := RankingResponse{
			Month:       month,
			Departments: AggregateByDepartment(records),
			Summary:     Summarize(records),
		}
		if resp.Departments == nil {
			resp.Departments = []DepartmentRanking{}
		}

		if cacheable {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, key, string(data), rankingCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return RankingResponse{}, err
	}

	return v.(RankingResponse), nil
}

func (s *service) Months(ctx context.Context) ([]string, error) {
	months, err := s.repo.Months(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if months == nil {
		months = []string{}
	}
	return months, nil
}

// guardDuplicate rejects ins when its inspector already scored the department
// in month. The advisory lock keeps concurrent submitters from both passing.
func (s *service) guardDuplicate(ctx context.Context, qtx Repository, ins *Inspection, month string) error {
	if err := qtx.LockDepartmentMonth(ctx, ins.DepartmentID, month); err != nil {
		return err
	}

	monthRecords, err := qtx.FindAll(ctx, InspectionFilter{Month: month})
	if err != nil {
		return mapRepositoryError(err)
	}

	others := monthRecords[:0:0]
	for _, r := range monthRecords {
		if r.ID != ins.ID {
			others = append(others, r)
		}
	}

	if !IsDuplicateInspection(others, ins.InspectorName, ins.DepartmentID) {
		return nil
	}

	deptName := ins.DepartmentID.String()
	for _, r := range others {
		if r.DepartmentID == ins.DepartmentID && r.Department != nil {
			deptName = r.Department.Name
			break
		}
	}
	s.logger.Warn("duplicate inspection rejected",
		zap.String("inspector", ins.InspectorName),
		zap.String("department_id", ins.DepartmentID.String()),
		zap.String("month", month),
	)
	return apperror.Describe(fiveserrors.ErrDuplicateInspection,
		fmt.Sprintf("%s has already inspected %s in %s", ins.InspectorName, deptName, month))
}

func (s *service) enqueueChange(ctx context.Context, tx *sql.Tx, inspectionID, action, month string) error {
	if s.outbox == nil {
		return nil
	}

	event, err := kafka.NewChangeOutboxEvent(events.ChangeEvent{
		EventType:  events.InspectionChanged,
		RequestID:  contextutil.GetRequestID(ctx),
		Collection: events.CollectionInspections,
		EntityID:   inspectionID,
		Action:     action,
		Month:      month,
	})
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("inspection outbox persist failed", zap.String("inspection_id", inspectionID), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) invalidateRanking(ctx context.Context) {
	if err := InvalidateRankings(ctx, s.rdb); err != nil {
		s.logger.Error("failed to invalidate ranking cache", zap.Error(err))
	}
}

// rankingVersion reads the current cache version. The second result is false
// when Redis is absent or unreadable, in which case nothing is cached.
func (s *service) rankingVersion(ctx context.Context) (int64, bool) {
	if s.rdb == nil {
		return 0, false
	}
	v, err := s.rdb.Get(ctx, RankingVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		s.logger.Warn("read ranking cache version failed", zap.Error(err))
		return 0, false
	}
	return v, true
}

func newInspection(req CreateInspectionRequest) (*Inspection, error) {
	if req.ScoreImprovement == nil || req.ScoreCleanliness == nil || req.ScoreInnovation == nil {
		return nil, apperror.Describe(fiveserrors.ErrScoreOutOfRange, "All three scores are required")
	}
	scores, err := ValidateScores(*req.ScoreImprovement, *req.ScoreCleanliness, *req.ScoreInnovation)
	if err != nil {
		return nil, err
	}

	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return nil, fiveserrors.ErrInvalidDepartmentID
	}

	var inspectorDept *uuid.UUID
	if req.InspectorDepartmentID != "" {
		id, err := uuid.Parse(req.InspectorDepartmentID)
		if err != nil {
			return nil, fiveserrors.ErrInvalidDepartmentID
		}
		inspectorDept = &id
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(req.InspectionDate))
	if err != nil {
		return nil, fiveserrors.ErrInvalidInspectionDate
	}

	inspector := strings.TrimSpace(req.InspectorName)
	if inspector == "" {
		return nil, apperror.RequiredField("Inspector Name")
	}

	return &Inspection{
		ID:                    uuid.New(),
		DepartmentID:          departmentID,
		InspectorName:         inspector,
		InspectorDepartmentID: inspectorDept,
		InspectionDate:        date,
		ScoreImprovement:      scores.Improvement,
		ScoreCleanliness:      scores.Cleanliness,
		ScoreInnovation:       scores.Innovation,
		TotalScore:            scores.Total,
		Notes:                 req.Notes,
	}, nil
}

func mapToResponse(ins Inspection) InspectionResponse {
	resp := InspectionResponse{
		ID:               ins.ID.String(),
		DepartmentID:     ins.DepartmentID.String(),
		InspectorName:    ins.InspectorName,
		InspectionDate:   ins.InspectionDate.Format(dateLayout),
		ScoreImprovement: ins.ScoreImprovement,
		ScoreCleanliness: ins.ScoreCleanliness,
		ScoreInnovation:  ins.ScoreInnovation,
		TotalScore:       ins.TotalScore,
		RankLabel:        RankLabel(ins.TotalScore),
		Notes:            ins.Notes,
	}
	if ins.Department != nil {
		resp.DepartmentName = ins.Department.Name
	}
	if ins.InspectorDepartmentID != nil {
		resp.InspectorDepartmentID = ins.InspectorDepartmentID.String()
	}
	if !ins.CreatedAt.IsZero() {
		resp.CreatedAt = ins.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

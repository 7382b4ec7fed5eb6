package activity

import (
	"context"
	"database/sql"
	"strings"
	"time"

	activityerrors "go-hrm/internal/activity/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultUpcomingDays = 7
	MaxUpcomingDays     = 365
)

//go:generate mockgen -source=activity_service.go -destination=mock/activity_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateActivityRequest) (ActivityResponse, error)
	GetAll(ctx context.Context) ([]ActivityResponse, error)
	GetByID(ctx context.Context, id string) (ActivityResponse, error)
	Update(ctx context.Context, id string, req UpdateActivityRequest) (ActivityResponse, error)
	Delete(ctx context.Context, id string) error
	Upcoming(ctx context.Context, days int, now time.Time) ([]UpcomingActivity, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("activity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activity.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateActivityRequest) (ActivityResponse, error) {
	a := &Activity{ID: uuid.New()}
	if err := applyRequest(a, req); err != nil {
		return ActivityResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ActivityResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, a); err != nil {
		s.logger.Error("create activity failed", zap.Error(err))
		return ActivityResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueChange(ctx, tx, events.ActionCreated, a.ID.String()); err != nil {
		return ActivityResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ActivityResponse{}, err
	}

	s.logger.Info("create activity success",
		zap.String("activity_id", a.ID.String()),
		zap.String("activity_date", req.Date),
	)
	return mapToResponse(ActivityWithCount{Activity: *a}), nil
}

func (s *service) GetAll(ctx context.Context) ([]ActivityResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]ActivityResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ActivityResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ActivityResponse{}, activityerrors.ErrInvalidActivityID
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ActivityResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateActivityRequest) (ActivityResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ActivityResponse{}, activityerrors.ErrInvalidActivityID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ActivityResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ActivityResponse{}, mapRepositoryError(err)
	}

	if err := applyRequest(&row.Activity, req); err != nil {
		return ActivityResponse{}, err
	}

	if err := qtx.Update(ctx, &row.Activity); err != nil {
		s.logger.Error("update activity failed", zap.String("activity_id", id), zap.Error(err))
		return ActivityResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueChange(ctx, tx, events.ActionUpdated, id); err != nil {
		return ActivityResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ActivityResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return activityerrors.ErrInvalidActivityID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.enqueueChange(ctx, tx, events.ActionDeleted, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete activity success", zap.String("activity_id", id))
	return nil
}

// Upcoming lists activities dated within days of now, earliest first.
func (s *service) Upcoming(ctx context.Context, days int, now time.Time) ([]UpcomingActivity, error) {
	if days < 0 || days > MaxUpcomingDays {
		return nil, activityerrors.ErrInvalidDays
	}

	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := UpcomingWithinDays(all, days, now)
	res := make([]UpcomingActivity, len(upcoming))
	for i, a := range upcoming {
		n, _ := DaysUntil(a.Date, now)
		res[i] = UpcomingActivity{ActivityResponse: a, DaysUntil: n}
	}
	return res, nil
}

func (s *service) enqueueChange(ctx context.Context, tx *sql.Tx, action, activityID string) error {
	if s.outbox == nil {
		return nil
	}

	event, err := kafka.NewChangeOutboxEvent(events.ChangeEvent{
		EventType:  events.ActivityChanged,
		RequestID:  contextutil.GetRequestID(ctx),
		Collection: events.CollectionActivities,
		EntityID:   activityID,
		Action:     action,
	})
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("activity outbox persist failed", zap.String("activity_id", activityID), zap.Error(err))
		return err
	}
	return nil
}

func applyRequest(a *Activity, req CreateActivityRequest) error {
	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return activityerrors.ErrInvalidActivityDate
	}
	if req.StartTime != "" && req.EndTime != "" && req.EndTime <= req.StartTime {
		return activityerrors.ErrInvalidTimeRange
	}

	a.Name = strings.TrimSpace(req.Name)
	a.Description = req.Description
	a.ActivityDate = date
	a.StartTime = req.StartTime
	a.EndTime = req.EndTime
	a.Location = strings.TrimSpace(req.Location)
	return nil
}

func mapToResponse(row ActivityWithCount) ActivityResponse {
	resp := ActivityResponse{
		ID:            row.ID.String(),
		Name:          row.Name,
		Description:   row.Description,
		Date:          row.ActivityDate.Format(dateLayout),
		StartTime:     row.StartTime,
		EndTime:       row.EndTime,
		Location:      row.Location,
		AttendeeCount: row.AttendeeCount,
	}
	if !row.CreatedAt.IsZero() {
		resp.CreatedAt = row.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

package dashboard

import (
	"context"
	"time"

	"go-hrm/internal/attendance"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Counter is satisfied by every feature repository.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type AttendanceStats interface {
	AttendanceStats(ctx context.Context, now time.Time) (attendance.AttendanceStats, error)
}

// Sources bundles the read models the summary is built from.
type Sources struct {
	Employees     Counter
	Departments   Counter
	Branches      Counter
	Activities    Counter
	HealthRecords Counter
	Attendance    AttendanceStats
}

type Service interface {
	Summary(ctx context.Context, now time.Time) (SummaryResponse, error)
}

type service struct {
	src    Sources
	logger *zap.Logger
}

func NewService(src Sources, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{src: src, logger: l}
}

func (s *service) Summary(ctx context.Context, now time.Time) (SummaryResponse, error) {
	resp := SummaryResponse{GeneratedAt: now.Format(time.RFC3339)}

	g, gctx := errgroup.WithContext(ctx)
	count := func(c Counter, dst *int64) {
		g.Go(func() error {
			n, err := c.Count(gctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(s.src.Employees, &resp.Employees)
	count(s.src.Departments, &resp.Departments)
	count(s.src.Branches, &resp.Branches)
	count(s.src.Activities, &resp.Activities)
	count(s.src.HealthRecords, &resp.HealthRecords)
	g.Go(func() error {
		stats, err := s.src.Attendance.AttendanceStats(gctx, now)
		if err != nil {
			return err
		}
		resp.CheckInsToday = stats.Today
		resp.CheckInsTotal = stats.Total
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("dashboard summary failed", zap.Error(err))
		return SummaryResponse{}, err
	}
	return resp, nil
}

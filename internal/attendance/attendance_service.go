package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrm/internal/activity"
	attendanceerrors "go-hrm/internal/attendance/errors"
	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ActivityLookup resolves the activity a check-in belongs to.
type ActivityLookup interface {
	GetByID(ctx context.Context, id string) (activity.ActivityResponse, error)
}

// EmployeeLookup resolves the attendee, by id or by badge code.
type EmployeeLookup interface {
	GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error)
	GetByCode(ctx context.Context, code string) (employee.EmployeeResponse, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, activityID string, req CheckInRequest) (AttendanceResponse, error)
	IsCheckedIn(ctx context.Context, activityID, employeeID string) (CheckInStatus, error)
	ListAttendance(ctx context.Context, activityID string) ([]AttendanceResponse, error)
	AttendanceStats(ctx context.Context, now time.Time) (AttendanceStats, error)
	ExportAttendance(ctx context.Context, activityID string) ([]byte, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	activities ActivityLookup
	employees  EmployeeLookup
	outbox     kafka.OutboxRepository
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	activities ActivityLookup,
	employees EmployeeLookup,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		activities: activities,
		employees:  employees,
		outbox:     outboxRepo,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) CheckIn(ctx context.Context, activityID string, req CheckInRequest) (AttendanceResponse, error) {
	act, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	emp, method, err := s.resolveEmployee(ctx, req)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if !emp.IsActive {
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeInactive
	}

	rec := &AttendanceRecord{
		ID:            uuid.New(),
		ActivityID:    uuid.MustParse(act.ID),
		EmployeeID:    uuid.MustParse(emp.ID),
		CheckInMethod: method,
		CheckInTime:   s.now(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, rec); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, attendanceerrors.ErrAlreadyCheckedIn) {
			s.logger.Info("duplicate check-in rejected",
				zap.String("activity_id", act.ID),
				zap.String("employee_id", emp.ID),
			)
			return AttendanceResponse{}, alreadyCheckedIn(emp, act)
		}
		s.logger.Error("check-in failed", zap.String("activity_id", act.ID), zap.Error(err))
		return AttendanceResponse{}, mapped
	}

	if s.outbox != nil {
		event, err := kafka.NewChangeOutboxEvent(events.ChangeEvent{
			EventType:  events.AttendanceCheckedIn,
			RequestID:  contextutil.GetRequestID(ctx),
			Collection: events.CollectionAttendance,
			EntityID:   rec.ID.String(),
			Action:     events.ActionCreated,
		})
		if err != nil {
			return AttendanceResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("attendance outbox persist failed", zap.String("attendance_id", rec.ID.String()), zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in success",
		zap.String("activity_id", act.ID),
		zap.String("employee_id", emp.ID),
		zap.String("method", method),
	)
	return AttendanceResponse{
		ID:             rec.ID.String(),
		ActivityID:     act.ID,
		EmployeeID:     emp.ID,
		EmployeeCode:   emp.EmployeeCode,
		EmployeeName:   emp.FullName,
		DepartmentName: emp.DepartmentName,
		CheckInMethod:  method,
		CheckInTime:    rec.CheckInTime,
	}, nil
}

// resolveEmployee prefers an explicit id; a bare code means a badge scan.
func (s *service) resolveEmployee(ctx context.Context, req CheckInRequest) (employee.EmployeeResponse, string, error) {
	method := req.Method
	if method != "" && method != MethodQR && method != MethodManual {
		return employee.EmployeeResponse{}, "", attendanceerrors.ErrInvalidMethod
	}

	id := strings.TrimSpace(req.EmployeeID)
	code := strings.TrimSpace(req.EmployeeCode)

	switch {
	case id != "":
		if _, err := uuid.Parse(id); err != nil {
			return employee.EmployeeResponse{}, "", attendanceerrors.ErrInvalidEmployeeID
		}
		if method == "" {
			method = MethodManual
		}
		emp, err := s.employees.GetByID(ctx, id)
		return emp, method, err
	case code != "":
		if method == "" {
			method = MethodQR
		}
		emp, err := s.employees.GetByCode(ctx, code)
		return emp, method, err
	default:
		return employee.EmployeeResponse{}, "", attendanceerrors.ErrEmployeeRequired
	}
}

func alreadyCheckedIn(emp employee.EmployeeResponse, act activity.ActivityResponse) error {
	return apperror.Describe(attendanceerrors.ErrAlreadyCheckedIn,
		fmt.Sprintf("%s (%s) has already checked in to %s", emp.FullName, emp.EmployeeCode, act.Name))
}

func (s *service) IsCheckedIn(ctx context.Context, activityID, employeeID string) (CheckInStatus, error) {
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		return CheckInStatus{}, err
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return CheckInStatus{}, attendanceerrors.ErrInvalidEmployeeID
	}

	status := CheckInStatus{ActivityID: activityID, EmployeeID: employeeID}
	rec, err := s.repo.FindByActivityAndEmployee(ctx, activityID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return status, nil
		}
		return CheckInStatus{}, err
	}

	status.CheckedIn = true
	status.CheckInTime = &rec.CheckInTime
	return status, nil
}

func (s *service) ListAttendance(ctx context.Context, activityID string) ([]AttendanceResponse, error) {
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		return nil, err
	}

	recs, err := s.repo.FindByActivity(ctx, activityID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]AttendanceResponse, len(recs))
	for i, r := range recs {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// AttendanceStats counts check-ins made since local midnight and overall.
func (s *service) AttendanceStats(ctx context.Context, now time.Time) (AttendanceStats, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := s.repo.CountSince(ctx, midnight)
	if err != nil {
		return AttendanceStats{}, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return AttendanceStats{}, err
	}
	return AttendanceStats{Today: today, Total: total}, nil
}

func mapToResponse(r AttendanceRecord) AttendanceResponse {
	resp := AttendanceResponse{
		ID:            r.ID.String(),
		ActivityID:    r.ActivityID.String(),
		EmployeeID:    r.EmployeeID.String(),
		CheckInMethod: r.CheckInMethod,
		CheckInTime:   r.CheckInTime,
	}
	if r.Employee != nil {
		resp.EmployeeCode = r.Employee.EmployeeCode
		resp.EmployeeName = r.Employee.FullName()
		if r.Employee.Department != nil {
			resp.DepartmentName = r.Employee.Department.Name
		}
	}
	return resp
}

package health

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-hrm/internal/events"
	healtherrors "go-hrm/internal/health/errors"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultDashboardDays = 7
	MaxDashboardDays     = 365
	recordDateLayout     = "2006-01-02"
)

//go:generate mockgen -source=health_service.go -destination=mock/health_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHealthRecordRequest) (HealthRecordResponse, error)
	GetAll(ctx context.Context, filter HealthRecordFilter) ([]HealthRecordResponse, error)
	GetByID(ctx context.Context, id string) (HealthRecordResponse, error)
	Update(ctx context.Context, id string, req UpdateHealthRecordRequest) (HealthRecordResponse, error)
	Delete(ctx context.Context, id string) error
	Dashboard(ctx context.Context, days int, now time.Time) (DashboardResponse, error)
	ExportAtRisk(ctx context.Context, days int, now time.Time) ([]byte, error)
	ExportRecords(ctx context.Context, filter HealthRecordFilter) ([]byte, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	validate *validator.Validate
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("health.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("health.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		validate: apperror.NewValidator(),
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateHealthRecordRequest) (HealthRecordResponse, error) {
	if err := s.validateVitals(req); err != nil {
		return HealthRecordResponse{}, err
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return HealthRecordResponse{}, healtherrors.ErrInvalidEmployeeID
	}
	recordedAt, err := s.recordedAt(req.RecordDate, s.now())
	if err != nil {
		return HealthRecordResponse{}, err
	}

	rec := &HealthRecord{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		RecordedAt: recordedAt,
	}
	applyVitals(rec, req)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HealthRecordResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, rec); err != nil {
		s.logger.Error("create health record failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return HealthRecordResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueChange(ctx, tx, events.HealthRecordCreated, events.ActionCreated, rec.ID.String()); err != nil {
		return HealthRecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return HealthRecordResponse{}, err
	}

	risk := ScoreRisk(Vitals{
		Systolic:   rec.BloodPressureSystolic,
		Diastolic:  rec.BloodPressureDiastolic,
		HeartRate:  rec.HeartRate,
		BloodSugar: rec.BloodSugar,
	})
	s.logger.Info("create health record success",
		zap.String("health_record_id", rec.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("risk_score", risk.Score),
	)

	return mapToResponse(*rec), nil
}

func (s *service) GetAll(ctx context.Context, filter HealthRecordFilter) ([]HealthRecordResponse, error) {
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, healtherrors.ErrInvalidEmployeeID
		}
	}

	recs, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToResponses(recs), nil
}

func (s *service) GetByID(ctx context.Context, id string) (HealthRecordResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HealthRecordResponse{}, healtherrors.ErrInvalidHealthRecordID
	}

	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return HealthRecordResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*rec), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHealthRecordRequest) (HealthRecordResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HealthRecordResponse{}, healtherrors.ErrInvalidHealthRecordID
	}
	if err := s.validateVitals(req); err != nil {
		return HealthRecordResponse{}, err
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return HealthRecordResponse{}, healtherrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HealthRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByID(ctx, id)
	if err != nil {
		return HealthRecordResponse{}, mapRepositoryError(err)
	}

	if req.RecordDate != "" {
		// keep the original time of day when only the date moves
		recordedAt, err := s.recordedAt(req.RecordDate, rec.RecordedAt)
		if err != nil {
			return HealthRecordResponse{}, err
		}
		rec.RecordedAt = recordedAt
	}
	if rec.EmployeeID != employeeID {
		rec.EmployeeID = employeeID
		rec.Employee = nil
	}
	applyVitals(rec, req)

	if err := qtx.Update(ctx, rec); err != nil {
		s.logger.Error("update health record failed", zap.String("health_record_id", id), zap.Error(err))
		return HealthRecordResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueChange(ctx, tx, events.HealthRecordUpdated, events.ActionUpdated, id); err != nil {
		return HealthRecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return HealthRecordResponse{}, err
	}

	return mapToResponse(*rec), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return healtherrors.ErrInvalidHealthRecordID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.enqueueChange(ctx, tx, events.HealthRecordDeleted, events.ActionDeleted, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete health record success", zap.String("health_record_id", id))
	return nil
}

// Dashboard summarizes the records of the last days days up to now.
func (s *service) Dashboard(ctx context.Context, days int, now time.Time) (DashboardResponse, error) {
	records, from, err := s.window(ctx, days, now)
	if err != nil {
		return DashboardResponse{}, err
	}

	return DashboardResponse{
		Days:    days,
		From:    from.Format(recordDateLayout),
		Summary: SummarizeVitals(records),
		Trend:   DailyTrend(records),
		AtRisk:  RankAtRisk(records, DefaultMinRiskScore, DefaultAtRiskLimit),
	}, nil
}

func (s *service) window(ctx context.Context, days int, now time.Time) ([]HealthRecordResponse, time.Time, error) {
	if days < 1 || days > MaxDashboardDays {
		return nil, time.Time{}, healtherrors.ErrInvalidDays
	}
	from := now.AddDate(0, 0, -days)

	recs, err := s.repo.FindSince(ctx, from)
	if err != nil {
		return nil, time.Time{}, mapRepositoryError(err)
	}
	return mapToResponses(recs), from, nil
}

// validateVitals re-checks the request ranges so callers outside the HTTP
// layer cannot store an impossible reading.
func (s *service) validateVitals(req CreateHealthRecordRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "min" || fe.Tag() == "max" {
			if lo, hi, ok := vitalRange(fe.Field()); ok {
				return apperror.Describe(healtherrors.ErrVitalsOutOfRange,
					fmt.Sprintf("%s must be between %s and %s, got %v", vitalLabel(fe.Field()), lo, hi, valueOf(fe)))
			}
		}
	}
	return apperror.MapValidationError(err)
}

func (s *service) recordedAt(date string, clock time.Time) (time.Time, error) {
	if date == "" {
		return clock, nil
	}
	d, err := time.ParseInLocation(recordDateLayout, date, clock.Location())
	if err != nil {
		return time.Time{}, healtherrors.ErrInvalidRecordDate
	}
	return time.Date(d.Year(), d.Month(), d.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, clock.Location()), nil
}

func (s *service) enqueueChange(ctx context.Context, tx *sql.Tx, eventType, action, recordID string) error {
	if s.outbox == nil {
		return nil
	}

	event, err := kafka.NewChangeOutboxEvent(events.ChangeEvent{
		EventType:  eventType,
		RequestID:  contextutil.GetRequestID(ctx),
		Collection: events.CollectionHealthRecords,
		EntityID:   recordID,
		Action:     action,
	})
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("health outbox persist failed", zap.String("health_record_id", recordID), zap.Error(err))
		return err
	}
	return nil
}

var vitalRanges = map[string][2]string{
	"blood_pressure_systolic":  {"50", "300"},
	"blood_pressure_diastolic": {"30", "200"},
	"heart_rate":               {"20", "250"},
	"blood_sugar":              {"20", "800"},
	"weight":                   {"1", "500"},
	"height":                   {"30", "300"},
}

func vitalRange(field string) (string, string, bool) {
	r, ok := vitalRanges[field]
	return r[0], r[1], ok
}

func vitalLabel(field string) string {
	switch field {
	case "blood_pressure_systolic":
		return "Systolic pressure"
	case "blood_pressure_diastolic":
		return "Diastolic pressure"
	case "heart_rate":
		return "Heart rate"
	case "blood_sugar":
		return "Blood sugar"
	case "weight":
		return "Weight"
	default:
		return "Height"
	}
}

func valueOf(fe validator.FieldError) any {
	v := fe.Value()
	if p, ok := v.(*int); ok && p != nil {
		return *p
	}
	return v
}

func applyVitals(rec *HealthRecord, req CreateHealthRecordRequest) {
	rec.BloodPressureSystolic = req.BloodPressureSystolic
	rec.BloodPressureDiastolic = req.BloodPressureDiastolic
	rec.HeartRate = req.HeartRate
	rec.BloodSugar = req.BloodSugar
	rec.Weight = req.Weight
	rec.Height = req.Height
	rec.Notes = req.Notes
}

func mapToResponses(recs []HealthRecord) []HealthRecordResponse {
	res := make([]HealthRecordResponse, len(recs))
	for i, r := range recs {
		res[i] = mapToResponse(r)
	}
	return res
}

func mapToResponse(rec HealthRecord) HealthRecordResponse {
	resp := HealthRecordResponse{
		ID:                     rec.ID.String(),
		EmployeeID:             rec.EmployeeID.String(),
		BloodPressureSystolic:  rec.BloodPressureSystolic,
		BloodPressureDiastolic: rec.BloodPressureDiastolic,
		HeartRate:              rec.HeartRate,
		BloodSugar:             rec.BloodSugar,
		Weight:                 rec.Weight,
		Height:                 rec.Height,
		BMI:                    BMI(rec.Weight, rec.Height),
		BloodPressureStatus:    BloodPressureStatus(rec.BloodPressureSystolic, rec.BloodPressureDiastolic),
		Notes:                  rec.Notes,
		RecordedAt:             rec.RecordedAt,
	}
	if e := rec.Employee; e != nil {
		resp.EmployeeCode = e.EmployeeCode
		resp.EmployeeName = e.FullName()
		if e.Department != nil {
			resp.DepartmentName = e.Department.Name
		}
	}
	return resp
}

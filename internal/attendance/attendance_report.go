package attendance

import (
	"context"
	"fmt"

	"go-hrm/internal/shared/report"
)

func (s *service) ExportAttendance(ctx context.Context, activityID string) ([]byte, error) {
	act, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}

	recs, err := s.repo.FindByActivity(ctx, activityID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	rows := make([][]any, 0, len(recs))
	for i, r := range recs {
		resp := mapToResponse(r)
		rows = append(rows, []any{
			i + 1,
			resp.EmployeeCode,
			resp.EmployeeName,
			resp.DepartmentName,
			resp.CheckInMethod,
			resp.CheckInTime.Format("2006-01-02 15:04"),
		})
	}

	return report.WriteSheet(report.Sheet{
		Name:    "Attendance",
		Title:   fmt.Sprintf("Attendance %s (%s)", act.Name, act.Date),
		Headers: []string{"No", "Employee Code", "Name", "Department", "Method", "Check-in Time"},
		Rows:    rows,
		Widths:  []float64{6, 16, 28, 22, 10, 18},
	})
}

package health

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-hrm/internal/shared/report"
)

func (s *service) ExportAtRisk(ctx context.Context, days int, now time.Time) ([]byte, error) {
	records, from, err := s.window(ctx, days, now)
	if err != nil {
		return nil, err
	}
	atRisk := RankAtRisk(records, DefaultMinRiskScore, DefaultAtRiskLimit)

	rows := make([][]any, 0, len(atRisk))
	for i, r := range atRisk {
		rows = append(rows, []any{
			i + 1,
			r.EmployeeCode,
			r.EmployeeName,
			r.DepartmentName,
			fmt.Sprintf("%d/%d", r.BloodPressureSystolic, r.BloodPressureDiastolic),
			r.HeartRate,
			sugarCell(r.BloodSugar),
			r.RiskScore,
			strings.Join(r.Risks, ", "),
			r.RecordedAt.Format("2006-01-02 15:04"),
		})
	}

	return report.WriteSheet(report.Sheet{
		Name:  "At Risk",
		Title: fmt.Sprintf("Health risk report %s to %s", from.Format(recordDateLayout), now.Format(recordDateLayout)),
		Headers: []string{
			"No", "Employee Code", "Name", "Department", "Blood Pressure",
			"Heart Rate", "Blood Sugar", "Risk Score", "Risks", "Recorded At",
		},
		Rows:   rows,
		Widths: []float64{6, 16, 28, 22, 16, 12, 12, 12, 48, 18},
	})
}

func (s *service) ExportRecords(ctx context.Context, filter HealthRecordFilter) ([]byte, error) {
	records, err := s.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.RecordedAt.Format("2006-01-02 15:04"),
			r.EmployeeCode,
			r.EmployeeName,
			r.DepartmentName,
			fmt.Sprintf("%d/%d", r.BloodPressureSystolic, r.BloodPressureDiastolic),
			r.HeartRate,
			sugarCell(r.BloodSugar),
			r.Weight,
			r.Height,
			r.BMI,
			r.BloodPressureStatus,
			r.Notes,
		})
	}

	return report.WriteSheet(report.Sheet{
		Name:  "Health Records",
		Title: "Health records",
		Headers: []string{
			"Recorded At", "Employee Code", "Name", "Department", "Blood Pressure", "Heart Rate",
			"Blood Sugar", "Weight", "Height", "BMI", "BP Status", "Notes",
		},
		Rows:   rows,
		Widths: []float64{18, 16, 28, 22, 16, 12, 12, 10, 10, 8, 12, 40},
	})
}

func sugarCell(v *int) any {
	if v == nil {
		return "-"
	}
	return *v
}

package health

import "time"

// CreateHealthRecordRequest carries one vitals check. RecordDate backdates the
// record to a YYYY-MM-DD day; empty means now.
type CreateHealthRecordRequest struct {
	EmployeeID             string  `json:"employee_id" binding:"required,uuid"`
	BloodPressureSystolic  int     `json:"blood_pressure_systolic" binding:"required,min=50,max=300"`
	BloodPressureDiastolic int     `json:"blood_pressure_diastolic" binding:"required,min=30,max=200"`
	HeartRate              int     `json:"heart_rate" binding:"required,min=20,max=250"`
	BloodSugar             *int    `json:"blood_sugar" binding:"omitempty,min=20,max=800"`
	Weight                 float64 `json:"weight" binding:"required,min=1,max=500"`
	Height                 float64 `json:"height" binding:"required,min=30,max=300"`
	Notes                  string  `json:"notes" binding:"max=1000"`
	RecordDate             string  `json:"record_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateHealthRecordRequest = CreateHealthRecordRequest

type HealthRecordFilter struct {
	EmployeeID string
}

type HealthRecordResponse struct {
	ID                     string    `json:"id"`
	EmployeeID             string    `json:"employee_id"`
	EmployeeCode           string    `json:"employee_code"`
	EmployeeName           string    `json:"employee_name"`
	DepartmentName         string    `json:"department_name"`
	BloodPressureSystolic  int       `json:"blood_pressure_systolic"`
	BloodPressureDiastolic int       `json:"blood_pressure_diastolic"`
	HeartRate              int       `json:"heart_rate"`
	BloodSugar             *int      `json:"blood_sugar"`
	Weight                 float64   `json:"weight"`
	Height                 float64   `json:"height"`
	BMI                    float64   `json:"bmi"`
	BloodPressureStatus    string    `json:"bp_status"`
	Notes                  string    `json:"notes,omitempty"`
	RecordedAt             time.Time `json:"recorded_at"`
}

func (r HealthRecordResponse) Vitals() Vitals {
	return Vitals{
		Systolic:   r.BloodPressureSystolic,
		Diastolic:  r.BloodPressureDiastolic,
		HeartRate:  r.HeartRate,
		BloodSugar: r.BloodSugar,
	}
}

func (r HealthRecordResponse) RecordedDate() string {
	return r.RecordedAt.Format("2006-01-02")
}

type DashboardResponse struct {
	Days    int            `json:"days"`
	From    string         `json:"from"`
	Summary VitalsSummary  `json:"summary"`
	Trend   []DailyVitals  `json:"trend"`
	AtRisk  []AtRiskRecord `json:"at_risk"`
}

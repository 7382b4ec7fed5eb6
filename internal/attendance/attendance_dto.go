package attendance

import "time"

// CheckInRequest identifies the attendee either by id (manual pick) or by
// the employee code scanned from a QR badge.
type CheckInRequest struct {
	EmployeeID   string `json:"employee_id" binding:"omitempty,uuid"`
	EmployeeCode string `json:"employee_code" binding:"max=50"`
	Method       string `json:"method" binding:"omitempty,oneof=QR Manual"`
}

type AttendanceResponse struct {
	ID             string    `json:"id"`
	ActivityID     string    `json:"activity_id"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeCode   string    `json:"employee_code"`
	EmployeeName   string    `json:"employee_name"`
	DepartmentName string    `json:"department_name,omitempty"`
	CheckInMethod  string    `json:"check_in_method"`
	CheckInTime    time.Time `json:"check_in_time"`
}

type CheckInStatus struct {
	ActivityID  string     `json:"activity_id"`
	EmployeeID  string     `json:"employee_id"`
	CheckedIn   bool       `json:"checked_in"`
	CheckInTime *time.Time `json:"check_in_time,omitempty"`
}

type AttendanceStats struct {
	Today int64 `json:"today"`
	Total int64 `json:"total"`
}

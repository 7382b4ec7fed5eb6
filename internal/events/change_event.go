package events

import "time"

// ChangeFeedTopic carries every create/update/delete of a record collection.
const ChangeFeedTopic = "hrm.changes.v1"

const (
	CollectionBranches      = "branches"
	CollectionDepartments   = "departments"
	CollectionPositions     = "positions"
	CollectionEmployees     = "employees"
	CollectionActivities    = "activities"
	CollectionAttendance    = "attendance"
	CollectionHealthRecords = "health_records"
	CollectionInspections   = "inspections"
)

const (
	DepartmentChanged   = "department.changed"
	EmployeeCreated     = "employee.created"
	EmployeeUpdated     = "employee.updated"
	EmployeeDeleted     = "employee.deleted"
	ActivityChanged     = "activity.changed"
	AttendanceCheckedIn = "attendance.checked_in"
	HealthRecordCreated = "health_record.created"
	HealthRecordUpdated = "health_record.updated"
	HealthRecordDeleted = "health_record.deleted"
	InspectionChanged   = "inspection.changed"
)

type ChangeEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	Collection string    `json:"collection"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	Month      string    `json:"month,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

package app

import (
	"go-hrm/internal/activity"
	"go-hrm/internal/attendance"
	"go-hrm/internal/branch"
	"go-hrm/internal/department"
	"go-hrm/internal/employee"
	"go-hrm/internal/fives"
	"go-hrm/internal/health"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/position"
	"go-hrm/internal/rbac"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&counter.Counter{},
		&kafka.OutboxRecord{},
		&rbac.RolePermission{},
		&branch.Branch{},
		&department.Department{},
		&position.Position{},
		&employee.Employee{},
		&user.User{},
		&activity.Activity{},
		&attendance.AttendanceRecord{},
		&health.HealthRecord{},
		&fives.Inspection{},
	}
}

func Migrate(db *gorm.DB) error {
	zap.L().Named("app.migrate").Info("running auto migration")
	return db.AutoMigrate(Models()...)
}

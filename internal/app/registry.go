package app

import (
	"context"
	"net/http"

	"go-hrm/internal/activity"
	"go-hrm/internal/attendance"
	"go-hrm/internal/auth"
	"go-hrm/internal/branch"
	"go-hrm/internal/dashboard"
	"go-hrm/internal/department"
	"go-hrm/internal/employee"
	"go-hrm/internal/fives"
	"go-hrm/internal/health"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/position"
	"go-hrm/internal/rbac"
	"go-hrm/internal/rbac/infra"
	"go-hrm/internal/shared/config"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/shared/token"
	"go-hrm/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(ctx context.Context, router *gin.Engine, cfg config.Config, in *Infra) error {
	db, gormDB, rdb := in.SQLDB, in.GormDB, in.Redis
	logger := zap.L()

	// --- Repositories ---
	activityRepo := activity.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	branchRepo := branch.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	fivesRepo := fives.NewRepository(gormDB)
	healthRepo := health.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	positionRepo := position.NewRepository(gormDB)
	rbacRepo := rbac.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	if err := rbacService.LoadPolicy(ctx); err != nil {
		return err
	}

	issuer := token.NewIssuer(cfg.JWTSecret)
	guard := middleware.Guard{
		Issuer: issuer,
		RBAC:   rbacService,
		Redis:  rdb,
		Logger: logger,
	}

	// --- Services ---
	activityService := activity.NewService(db, activityRepo, outboxRepo, logger)
	branchService := branch.NewService(db, branchRepo, logger)
	departmentService := department.NewService(db, departmentRepo, outboxRepo, rdb, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, activityService, employeeService, outboxRepo, logger)
	fivesService := fives.NewService(db, fivesRepo, outboxRepo, rdb, logger)
	healthService := health.NewService(db, healthRepo, outboxRepo, logger)
	positionService := position.NewService(db, positionRepo, rdb, logger)
	userService := user.NewService(userRepo, logger)
	authService := auth.NewService(userRepo, issuer, logger)
	dashboardService := dashboard.NewService(dashboard.Sources{
		Employees:     employeeRepo,
		Departments:   departmentRepo,
		Branches:      branchRepo,
		Activities:    activityRepo,
		HealthRecords: healthRepo,
		Attendance:    attendanceService,
	}, logger)

	if err := userService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, auth.NewHandler(authService, cfg.IsProduction()), guard)
		user.RegisterRoutes(api, user.NewHandler(userService), guard)
		branch.RegisterRoutes(api, branch.NewHandler(branchService, logger), guard)
		department.RegisterRoutes(api, department.NewHandler(departmentService, logger), guard)
		position.RegisterRoutes(api, position.NewHandler(positionService, logger), guard)
		employee.RegisterRoutes(api, employee.NewHandler(employeeService, logger), guard)
		activity.RegisterRoutes(api, activity.NewHandler(activityService, logger), guard)
		attendance.RegisterRoutes(api, attendance.NewHandler(attendanceService, logger), guard)
		health.RegisterRoutes(api, health.NewHandler(healthService, logger), guard)
		fives.RegisterRoutes(api, fives.NewHandler(fivesService, logger), guard)
		dashboard.RegisterRoutes(api, dashboard.NewHandler(dashboardService), guard)

		rbacGuards := append(guard.Authenticated(), middleware.AdminOnly())
		rbac.RegisterRoutes(api, rbac.NewHandler(rbacService, logger), rbacGuards...)
	}

	router.GET("/healthz", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return nil
}

package app

import (
	"os"

	"mini-payrun/internal/auth"
	"mini-payrun/internal/employee"
	"mini-payrun/internal/messaging/kafka"
	"mini-payrun/internal/middleware"
	"mini-payrun/internal/monitoring"
	"mini-payrun/internal/payrun"
	"mini-payrun/internal/shared/metrics"
	"mini-payrun/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	collector := metrics.NewCollector()
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics(collector))

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	payrunRepo := payrun.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(auth.Config{
		Email:        os.Getenv("DEMO_EMAIL"),
		PasswordHash: os.Getenv("DEMO_PASSWORD_HASH"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
	})
	employeeService := employee.NewService(gormDB, employeeRepo, rdb)
	timesheetService := timesheet.NewService(gormDB, timesheetRepo)
	payrunService := payrun.NewServiceWithOutbox(gormDB, payrunRepo, timesheetRepo, outboxRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	timesheetHandler := timesheet.NewHandler(timesheetService)
	payrunHandler := payrun.NewHandler(payrunService, rdb)
	monitoringHandler := monitoring.NewHandler(gormDB, rdb, collector)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler)
		timesheet.RegisterRoutes(api, timesheetHandler)
		payrun.RegisterRoutes(api, payrunHandler, rdb)
	}

	monitoring.RegisterRoutes(router, monitoringHandler)

	return nil
}

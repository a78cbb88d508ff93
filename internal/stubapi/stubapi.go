// Package stubapi assembles the in-memory development backend the client is
// tested against.
package stubapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	appHTTP "github.com/cmlabs-hris/smart-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/smart-attendance-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/smart-attendance-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/smart-attendance-go/internal/service/dashboard"
	leaveService "github.com/cmlabs-hris/smart-attendance-go/internal/service/leave"
	summaryService "github.com/cmlabs-hris/smart-attendance-go/internal/service/summary"
)

type Options struct {
	JWTSecret        string
	AccessExpiration string // time.ParseDuration syntax, 24h when empty
	AllowedOrigins   []string
	Seed             bool
	Now              func() time.Time
	Logger           *slog.Logger
}

// New builds the stub router over a fresh in-memory database.
func New(ctx context.Context, opts Options) (*chi.Mux, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if opts.AccessExpiration == "" {
		opts.AccessExpiration = "24h"
	}

	db := memory.NewDB()
	if opts.Seed {
		if err := memory.Seed(ctx, db, now()); err != nil {
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	// Repository
	userRepo := memory.NewUserRepository(db)
	employeeRepo := memory.NewEmployeeRepository(db)
	groupRepo := memory.NewGroupRepository(db)
	holidayRepo := memory.NewHolidayRepository(db)
	attendanceRepo := memory.NewAttendanceRepository(db)
	leaveRepo := memory.NewLeaveRequestRepository(db)
	summaryRepo := memory.NewSummaryRepository(db)

	// Service
	JWTService := jwt.NewJWTService(opts.JWTSecret, opts.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, holidayRepo, leaveRepo, logger)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo, userRepo, logger)
	summarySvc := summaryService.NewSummaryService(summaryRepo, attendanceRepo, employeeRepo, logger)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, employeeRepo, leaveRepo, holidayRepo, now)

	// Handler
	authHandler := appHTTP.NewAuthHandler(JWTService, userRepo)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, attendanceRepo)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeRepo)
	groupHandler := appHTTP.NewGroupHandler(groupRepo)
	holidayHandler := appHTTP.NewHolidayHandler(holidayRepo)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, leaveRepo)
	summaryHandler := appHTTP.NewSummaryHandler(summarySvc, summaryRepo)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	return appHTTP.NewRouter(
		logger,
		JWTService,
		opts.AllowedOrigins,
		authHandler,
		attendanceHandler,
		employeeHandler,
		groupHandler,
		holidayHandler,
		leaveHandler,
		summaryHandler,
		dashboardHandler,
	), nil
}

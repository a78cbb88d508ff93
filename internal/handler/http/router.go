package http

import (
	"log/slog"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

var defaultAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

func NewRouter(
	logger *slog.Logger,
	JWTService jwt.Service,
	allowedOrigins []string,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	groupHandler GroupHandler,
	holidayHandler HolidayHandler,
	leaveHandler LeaveHandler,
	summaryHandler SummaryHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		allowedOrigins = defaultAllowedOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/google", authHandler.LoginWithGoogle)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Get("/me", authHandler.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceView))
					r.Get("/date/{date}", attendanceHandler.ListByDate)
					r.Get("/range", attendanceHandler.ListRange)
					r.Get("/employee/{employeeId}", attendanceHandler.ListByEmployee)
					r.Get("/employee/{employeeId}/range", attendanceHandler.ListEmployeeRange)
					r.Get("/{id}", attendanceHandler.Get)
				})
				r.With(middleware.RequirePermission(user.PermissionAttendanceEdit)).Put("/{id}", attendanceHandler.Update)
				r.With(middleware.RequirePermission(user.PermissionAttendanceProcess)).Post("/process", attendanceHandler.Process)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeView))
					r.Get("/", employeeHandler.ListEmployees)
					r.Get("/active", employeeHandler.ListActiveEmployees)
					r.Get("/group/{groupId}", employeeHandler.ListGroupEmployees)
					r.Get("/{id}", employeeHandler.GetEmployee)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", employeeHandler.CreateEmployee)
					r.Put("/{id}", employeeHandler.UpdateEmployee)
					r.Delete("/{id}", employeeHandler.DeleteEmployee)
				})
			})

			r.Route("/groups", func(r chi.Router) {
				r.Get("/", groupHandler.ListGroups)
				r.Get("/active", groupHandler.ListActiveGroups)
				r.Get("/{id}", groupHandler.GetGroup)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionGroupManage))
					r.Post("/", groupHandler.CreateGroup)
					r.Put("/{id}", groupHandler.UpdateGroup)
					r.Delete("/{id}", groupHandler.DeleteGroup)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.ListHolidays)
				r.Get("/range", holidayHandler.ListHolidaysInRange)
				r.Get("/{id}", holidayHandler.GetHoliday)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHolidayManage))
					r.Post("/", holidayHandler.CreateHoliday)
					r.Put("/{id}", holidayHandler.UpdateHoliday)
					r.Delete("/{id}", holidayHandler.DeleteHoliday)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveView))
					r.Get("/", leaveHandler.ListRequests)
					r.Get("/pending", leaveHandler.ListPendingRequests)
					r.Get("/employee/{employeeId}", leaveHandler.ListEmployeeRequests)
					r.Get("/{id}", leaveHandler.GetRequest)
				})
				r.With(middleware.RequirePermission(user.PermissionLeaveApply)).Post("/", leaveHandler.CreateRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Put("/{id}/approve", leaveHandler.ApproveRequest)
					r.Put("/{id}/reject", leaveHandler.RejectRequest)
				})
			})

			r.Route("/summary", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSummaryView))
					r.Get("/monthly", summaryHandler.GetMonthlySummary)
					r.Get("/employee/{employeeId}", summaryHandler.GetEmployeeSummary)
					r.Get("/export", summaryHandler.ExportSummary)
				})
				r.With(middleware.RequirePermission(user.PermissionSummaryGenerate)).Post("/generate", summaryHandler.GenerateSummary)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", dashboardHandler.GetStats)
			})
		})
	})
	return r
}

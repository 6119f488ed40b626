package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/redeposto/ponto-backend-go/internal/domain/user"
	"github.com/redeposto/ponto-backend-go/internal/handler/http/middleware"
	"github.com/redeposto/ponto-backend-go/internal/pkg/jwt"
)

type RouterOptions struct {
	Logger      *slog.Logger
	LogLevel    slog.Level
	FrontendURL string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	punchHandler PunchHandler,
	leaveHandler LeaveHandler,
	scheduleHandler ScheduleHandler,
	timesheetHandler TimesheetHandler,
	employeeHandler EmployeeHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/punches", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionPunchRecord)).Post("/", punchHandler.Record)
				r.Get("/my", punchHandler.GetMyPunches)

				// Ownership is checked by the service
				r.Get("/{id}", punchHandler.Get)
				r.Get("/{id}/photo", punchHandler.Photo)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", punchHandler.List)
					r.Post("/{id}/approve", punchHandler.Approve)
					r.Post("/{id}/reject", punchHandler.Reject)
					r.Delete("/{id}", punchHandler.Delete)
				})
			})

			r.With(middleware.RequirePermission(user.PermissionAbsenceMark)).Post("/absences", punchHandler.RecordAbsence)

			r.Route("/leave-grants", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLeaveGrantManage))
				r.Get("/", leaveHandler.ListGrants)
				r.Post("/", leaveHandler.CreateGrant)
				r.Delete("/{id}", leaveHandler.DeleteGrant)
			})

			r.Route("/shift-templates", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", scheduleHandler.ListShiftTemplates)
				r.Get("/{name}", scheduleHandler.GetShiftTemplate)
				r.With(middleware.RequireOwner).Put("/{name}", scheduleHandler.UpsertShiftTemplate)
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Route("/my", func(r chi.Router) {
					r.Get("/daily", timesheetHandler.GetMyDaily)
					r.Get("/monthly", timesheetHandler.GetMyMonthly)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimesheetViewAll))
					r.Get("/daily", timesheetHandler.GetDaily)
					r.Get("/monthly", timesheetHandler.GetMonthly)
				})
			})

			r.With(middleware.RequireManager).Get("/employees", employeeHandler.ListEmployees)
		})
	})
	return r
}

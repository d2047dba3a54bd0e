package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/wagewise-hq/wagewise-backend-go/internal/handler/http/middleware"
)

func NewRouter(
	tokenAuth *jwtauth.JWTAuth,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
	payrollHandler PayrollHandler,
	performanceHandler PerformanceHandler,
	settingsHandler SettingsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "wagewise"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/adjust", attendanceHandler.Adjust)
				r.Post("/mark-absentees", attendanceHandler.MarkAbsentees)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/report", reportHandler.GetPayrollReport)
				r.Post("/salaries/ensure", payrollHandler.EnsureMonthlySalary)
				r.Post("/bonuses/backfill", payrollHandler.BackfillBonuses)
				r.Post("/penalties", payrollHandler.CreateManualPenalty)
				r.Post("/advances", payrollHandler.CreateAdvance)
			})

			r.Route("/performance", func(r chi.Router) {
				r.Post("/scan", performanceHandler.RunScan)
				r.Get("/events", performanceHandler.ListEvents)
				r.Put("/events/{id}/admin-status", performanceHandler.UpdateAdminStatus)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.Get)
				r.Put("/", settingsHandler.Upsert)
			})
		})
	})

	return r
}

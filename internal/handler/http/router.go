package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/handler/http/middleware"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/jwt"
)

type RouterOptions struct {
	Env            string
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	payrollHandler PayrollHandler,
	absenceHandler AbsenceHandler,
	shiftHandler ShiftHandler,
	workerHandler WorkerHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "grupo-rubio-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService))

		r.Route("/payroll", func(r chi.Router) {
			r.Use(middleware.RequireRole(jwt.RolePayroll))
			r.Get("/matrix", payrollHandler.Matrix)
			r.Get("/nomina", payrollHandler.Nomina)
			r.Get("/matrix/export", payrollHandler.ExportMatrix)
		})

		r.Route("/absences/{id}", func(r chi.Router) {
			r.Use(middleware.RequireRole(jwt.RolePayroll, jwt.RolePlanner))
			r.Get("/compensation", absenceHandler.Compensation)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Use(middleware.RequireRole(jwt.RolePlanner, jwt.RolePayroll, jwt.RoleViewer))
			r.Post("/classify", shiftHandler.Classify)
		})

		r.Route("/workers/{id}", func(r chi.Router) {
			r.With(middleware.RequireRole(jwt.RolePlanner)).
				Post("/weeks/{date}/reconcile", workerHandler.ReconcileWeek)
			r.With(middleware.RequireRole(jwt.RolePayroll, jwt.RolePlanner)).
				Get("/rates", workerHandler.Rates)
		})
	})
	return r
}

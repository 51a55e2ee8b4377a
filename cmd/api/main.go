package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/config"
	appHTTP "github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/handler/http"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/cron"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/database"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/holiday"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/jwt"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/repository/postgresql"
	absenceService "github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/absence"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/hours"
	payrollService "github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/payroll"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/rate"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	workerRepo := postgresql.NewWorkerRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	absenceRepo := postgresql.NewAbsenceRepository(db)
	absenceTypeRepo := postgresql.NewAbsenceTypeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	calendar := holiday.NewCalendar(holidayRepo, cfg.Holiday.Region)
	classifier := hours.NewClassifier(calendar)
	resolver := rate.NewResolver(cfg.Payroll.WeeksPerMonth)

	compensation := absenceService.NewCompensationCalculator(absenceRepo, absenceTypeRepo, workerRepo, shiftRepo, resolver)
	matrix := payrollService.NewMatrixService(workerRepo, shiftRepo, absenceRepo, absenceTypeRepo, classifier, resolver, cfg.Payroll.OvertimeTier1Hours)
	reconciler := hours.NewAttentionReconciler(workerRepo, shiftRepo, postgresql.NewTransactor(db))
	rateCards := rate.NewCardService(workerRepo, resolver)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	scheduler := cron.NewScheduler(ctx)
	cron.NewHolidayJobs(calendar, cfg.Holiday.RefreshInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{Env: cfg.App.Env, AllowedOrigins: cfg.App.AllowedOrigins},
		JWTService,
		appHTTP.NewPayrollHandler(matrix),
		appHTTP.NewAbsenceHandler(compensation),
		appHTTP.NewShiftHandler(classifier),
		appHTTP.NewWorkerHandler(reconciler, rateCards),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

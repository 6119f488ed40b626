package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/redeposto/ponto-backend-go/internal/config"
	appHTTP "github.com/redeposto/ponto-backend-go/internal/handler/http"
	"github.com/redeposto/ponto-backend-go/internal/pkg/cron"
	"github.com/redeposto/ponto-backend-go/internal/pkg/database"
	"github.com/redeposto/ponto-backend-go/internal/pkg/jwt"
	"github.com/redeposto/ponto-backend-go/internal/pkg/logger"
	"github.com/redeposto/ponto-backend-go/internal/pkg/storage"
	"github.com/redeposto/ponto-backend-go/internal/repository/postgresql"
	employeeService "github.com/redeposto/ponto-backend-go/internal/service/employee"
	"github.com/redeposto/ponto-backend-go/internal/service/file"
	"github.com/redeposto/ponto-backend-go/internal/service/leave"
	punchService "github.com/redeposto/ponto-backend-go/internal/service/punch"
	scheduleService "github.com/redeposto/ponto-backend-go/internal/service/schedule"
	timesheetService "github.com/redeposto/ponto-backend-go/internal/service/timesheet"
	"github.com/redeposto/ponto-backend-go/migrations"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.App.LogLevel, cfg.App.Env, version)
	slog.SetDefault(log)

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("failed to load business timezone: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := migrations.Apply(ctx, db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	punchRepo := postgresql.NewPunchRepository(db, loc)
	leaveGrantRepo := postgresql.NewLeaveGrantRepository(db)
	shiftTemplateRepo := postgresql.NewShiftTemplateRepository(db)
	transactor := postgresql.NewTransactor(db)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	photoService := file.NewPhotoService(fileStorage, loc)
	shiftSvc := scheduleService.NewShiftService(shiftTemplateRepo, cfg.Timesheet.DefaultShift)
	punchSvc := punchService.NewPunchService(transactor, punchRepo, employeeRepo, photoService, loc)
	leaveGrantSvc := leave.NewLeaveGrantService(leaveGrantRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	timesheetSvc := timesheetService.NewTimesheetService(
		timesheetService.NewCalculator(loc),
		employeeRepo,
		punchRepo,
		leaveGrantRepo,
		shiftSvc,
	)

	scheduler := cron.NewScheduler()
	digest := cron.NewInconsistencyDigest(employeeRepo, timesheetSvc, loc)
	digest.RegisterJobs(scheduler, cfg.Timesheet.DigestInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:      log,
			LogLevel:    logger.ParseLevel(cfg.App.LogLevel),
			FrontendURL: cfg.App.FrontendURL,
		},
		JWTService,
		appHTTP.NewPunchHandler(punchSvc),
		appHTTP.NewLeaveHandler(leaveGrantSvc),
		appHTTP.NewScheduleHandler(shiftSvc),
		appHTTP.NewTimesheetHandler(timesheetSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

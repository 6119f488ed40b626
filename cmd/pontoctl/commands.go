package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redeposto/ponto-backend-go/internal/domain/user"
	"github.com/redeposto/ponto-backend-go/internal/pkg/cron"
	"github.com/redeposto/ponto-backend-go/internal/pkg/database"
	"github.com/redeposto/ponto-backend-go/internal/pkg/jwt"
	"github.com/redeposto/ponto-backend-go/internal/repository/postgresql"
	scheduleService "github.com/redeposto/ponto-backend-go/internal/service/schedule"
	timesheetService "github.com/redeposto/ponto-backend-go/internal/service/timesheet"
	"github.com/redeposto/ponto-backend-go/migrations"
)

type TokenCmd struct {
	UserID     string `help:"Subject user id." required:""`
	StationID  string `help:"Station the user acts on." required:""`
	Role       string `help:"owner, manager or employee." enum:"owner,manager,employee" default:"employee"`
	EmployeeID string `help:"Roster id; required for punching."`
}

func (c *TokenCmd) Run(ctx *Context) error {
	svc := jwt.NewJWTService(ctx.Config.JWT.Secret, ctx.Config.JWT.AccessExpiration)
	token, expiresAt, err := svc.GenerateAccessToken(user.Principal{
		UserID:     c.UserID,
		EmployeeID: c.EmployeeID,
		StationID:  c.StationID,
		Role:       user.Role(c.Role),
	})
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Fprintln(os.Stdout, token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
	return nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Apply(ctx, db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	slog.Info("Migrations applied")
	return nil
}

type DigestCmd struct {
	Date string `arg:"" help:"Local date to check (YYYY-MM-DD)."`
}

func (c *DigestCmd) Run(ctx *Context) error {
	loc, err := ctx.Config.Location()
	if err != nil {
		return err
	}
	date, err := time.ParseInLocation("2006-01-02", c.Date, loc)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", c.Date, err)
	}

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	punchRepo := postgresql.NewPunchRepository(db, loc)
	leaveGrantRepo := postgresql.NewLeaveGrantRepository(db)
	shiftSvc := scheduleService.NewShiftService(postgresql.NewShiftTemplateRepository(db), ctx.Config.Timesheet.DefaultShift)
	timesheetSvc := timesheetService.NewTimesheetService(
		timesheetService.NewCalculator(loc),
		employeeRepo,
		punchRepo,
		leaveGrantRepo,
		shiftSvc,
	)

	report, err := cron.NewInconsistencyDigest(employeeRepo, timesheetSvc, loc).Digest(ctx, date)
	fmt.Fprintf(os.Stdout, "%s: %d evaluated, %d flagged\n", report.Date, report.Evaluated, len(report.Flagged))
	for _, f := range report.Flagged {
		fmt.Fprintf(os.Stdout, "  %s %s (%s): %s\n", f.StationID, f.EmployeeName, f.EmployeeID, strings.Join(f.Observations, ", "))
	}
	return err
}

func connect(ctx *Context) (*database.DB, error) {
	cfg := ctx.Config
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: 2,
		MinConns: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

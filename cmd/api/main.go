package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	handler "github.com/cmlabs-hris/payroll-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	authService "github.com/cmlabs-hris/payroll-backend-go/internal/service/auth"
	payrollService "github.com/cmlabs-hris/payroll-backend-go/internal/service/payroll"
	userService "github.com/cmlabs-hris/payroll-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(cfg.MigrateURL()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessExpiresIn)

	userRepo := postgresql.NewUserRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	authSvc := authService.NewService(userRepo, jwtService)
	userSvc := userService.NewService(db, userRepo, salaryRepo)
	payrollSvc := payrollService.NewService(db, userRepo, salaryRepo, adjustmentRepo, payrollRepo)

	router := handler.NewRouter(
		cfg,
		jwtService,
		handler.NewAuthHandler(authSvc),
		handler.NewUserHandler(userSvc),
		handler.NewPayrollHandler(payrollSvc),
	)

	addr := ":" + cfg.App.Port
	slog.Info("starting server", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

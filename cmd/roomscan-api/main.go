package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"

	"github.com/helpify-project/roomscan/internal/attendance"
	"github.com/helpify-project/roomscan/internal/controllers"
	"github.com/helpify-project/roomscan/internal/database"
	"github.com/helpify-project/roomscan/internal/database/migrations"
	"github.com/helpify-project/roomscan/internal/router"
)

func main() {
	ctx := context.Background()
	ctx, _ = signal.NotifyContext(ctx, os.Interrupt)

	// Environment always wins over .env; a missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	app := &cli.App{
		Name:  "roomscan-api",
		Usage: "records room attendance scans",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Value: false,
				EnvVars: []string{
					"ROOMSCAN_API_DEBUG",
				},
			},
			&cli.StringFlag{
				Name:  "http-listen-address",
				Value: "127.0.0.1:3009",
				EnvVars: []string{
					"ROOMSCAN_API_HTTP_LISTEN_ADDRESS",
				},
			},
			&cli.StringFlag{
				Name:     "postgres-uri",
				Required: true,
				EnvVars: []string{
					"ROOMSCAN_API_POSTGRES_URI",
				},
			},
			&cli.BoolFlag{
				Name:  "auto-migrate",
				Usage: "apply pending migrations before serving",
				EnvVars: []string{
					"ROOMSCAN_API_AUTO_MIGRATE",
				},
			},
			&cli.StringSliceFlag{
				Name:  "cors-allowed-origins",
				Value: cli.NewStringSlice("*"),
				EnvVars: []string{
					"ROOMSCAN_API_CORS_ALLOWED_ORIGINS",
				},
			},
			&cli.StringSliceFlag{
				Name:  "allowed-roles",
				Usage: "accepted scan roles, any role when empty",
				EnvVars: []string{
					"ROOMSCAN_API_ALLOWED_ROLES",
				},
			},
			&cli.BoolFlag{
				Name:  "legacy-logout-scope",
				Usage: "on checkout, close every open session of the user instead of only the one in the scanned room",
				EnvVars: []string{
					"ROOMSCAN_API_LEGACY_LOGOUT_SCOPE",
				},
			},
		},
		Before: func(cctx *cli.Context) (err error) {
			err = setupLogging(cctx.Bool("debug"))
			return
		},
		Action: entrypoint,
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "manage the database schema",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply pending migrations", Action: migrateAction(migrations.Up)},
					{Name: "down", Usage: "roll back the latest migration", Action: migrateAction(migrations.Down)},
					{Name: "status", Usage: "print migration status", Action: migrateAction(migrations.Status)},
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		zap.L().Fatal("unhandled error", zap.Error(err))
	}
}

func setupLogging(debugMode bool) error {
	var cfg zap.Config

	if debugMode {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level.SetLevel(zapcore.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.Development = false
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level.SetLevel(zapcore.InfoLevel)
	}

	cfg.OutputPaths = []string{
		"stdout",
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(logger)

	return nil
}

func migrateAction(run func(*sql.DB) error) cli.ActionFunc {
	return func(cctx *cli.Context) (err error) {
		defer func() { _ = zap.L().Sync() }()

		db, err := database.Open(cctx.Context, cctx.String("postgres-uri"), cctx.Bool("debug"))
		if err != nil {
			return
		}
		defer func() { _ = db.Close() }()

		return run(db.DB)
	}
}

func entrypoint(cctx *cli.Context) (err error) {
	ctx := cctx.Context
	defer func() { _ = zap.L().Sync() }()

	db, err := database.Open(ctx, cctx.String("postgres-uri"), cctx.Bool("debug"))
	if err != nil {
		return
	}
	defer func() { _ = db.Close() }()

	if cctx.Bool("auto-migrate") {
		if err = migrations.Up(db.DB); err != nil {
			return
		}
	}

	if cctx.Bool("legacy-logout-scope") {
		zap.L().Warn("legacy logout scope enabled, checkouts close sessions in every room")
	}

	service := attendance.NewService(db, attendance.Options{
		AllowedRoles:      cctx.StringSlice("allowed-roles"),
		LegacyLogoutScope: cctx.Bool("legacy-logout-scope"),
	})

	var accessLog io.WriteCloser = &zapio.Writer{Log: zap.L().With(zap.String("section", "http")), Level: zapcore.InfoLevel}
	defer func() { _ = accessLog.Close() }()

	ctrls := []router.Controller{
		&controllers.HealthController{DB: db},
		&controllers.MetricsController{},
		&controllers.ScanController{Service: service},
	}
	if cctx.Bool("debug") {
		ctrls = append(ctrls, &controllers.GoDebugController{})
	}

	srv := &http.Server{
		Addr: cctx.String("http-listen-address"),
		Handler: router.New(router.Options{
			AllowedOrigins: cctx.StringSlice("cors-allowed-origins"),
			AccessLog:      accessLog,
		}, ctrls...),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	serverDone := make(chan interface{})
	go func() {
		zap.L().Info("serving requests", zap.String("addr", "http://"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("failed to listen for http requests", zap.Error(err))
		}
		close(serverDone)
	}()

	select {
	case <-serverDone:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err = srv.Shutdown(shutdownCtx); err != nil {
			err = fmt.Errorf("failed to shut down http server: %w", err)
		}
	}

	return
}
